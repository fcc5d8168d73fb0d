package models

type (
	// Commit is an immutable record read from the commit source.
	// Position is the index in the range walk (0 = newest commit) and
	// defines the relative output order of the generated notes.
	Commit struct {
		Hash     string
		Subject  string
		Body     string
		Author   string
		Parents  []string
		Position int
	}

	// PRSource tags which resolution strategy produced a PR reference.
	PRSource string

	// PRReference is a resolved pull request number plus its provenance.
	PRReference struct {
		Number int
		Source PRSource
	}
)

const (
	PRSourceSubject   PRSource = "subject-match"
	PRSourceMergeScan PRSource = "merge-scan"
	PRSourceAPISearch PRSource = "api-search"
)

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// ShortHash returns the abbreviated hash used in raw commit listings.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

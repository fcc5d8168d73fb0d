package models

type (
	// DependencyUpdate is a single automated bump of one package, extracted
	// from a dependency-bot commit. Versions are kept verbatim.
	DependencyUpdate struct {
		Package string
		From    string
		To      string
		Commit  Commit
		PR      *PRReference
	}

	// ConsolidatedEntry merges every DependencyUpdate of one package within
	// the processed range. From covers the chronologically earliest update,
	// To the highest version seen. PRNumbers are unique and only get an
	// ordering (descending) when rendered.
	ConsolidatedEntry struct {
		Package   string
		From      string
		To        string
		PRNumbers []int
		Major     bool
		Position  int
	}

	// ReleaseNoteLine is a rendered line plus the order key used for stable
	// output sequencing.
	ReleaseNoteLine struct {
		Text     string
		Position int
	}

	// PRData is the metadata fetched from the code host for one pull request.
	PRData struct {
		Number int
		Title  string
		Body   string
		Author string
	}
)

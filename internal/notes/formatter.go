package notes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/thomas-vilte/releasemate/internal/i18n"
	"github.com/thomas-vilte/releasemate/internal/models"
	"github.com/thomas-vilte/releasemate/internal/regex"
)

// RenderOptions control the output shape. Terse strips everything except
// the note lines themselves.
type RenderOptions struct {
	Terse          bool
	IncludePRs     bool
	ListRawCommits bool
}

// Formatter turns resolved commits and consolidated entries into the final
// release-notes text. All output strings flow through the translation
// bundle.
type Formatter struct {
	trans *i18n.Translations
}

func NewFormatter(trans *i18n.Translations) *Formatter {
	return &Formatter{trans: trans}
}

// CommitLine renders an ordinary commit as "- <subject> (#N) (<author>)".
// The PR segment appears only when requested and resolved, and is never
// duplicated when the subject already carries it; without the PR flag any
// embedded (#N) is stripped from the subject. The author segment is
// omitted when empty.
func (f *Formatter) CommitLine(commit models.Commit, pr *models.PRReference, includePR bool) string {
	subject := commit.Subject

	if includePR && pr != nil {
		segment := fmt.Sprintf("(#%d)", pr.Number)
		if !strings.Contains(subject, segment) {
			subject += " " + segment
		}
	} else if !includePR {
		subject = strings.Join(strings.Fields(regex.GitHubPR.ReplaceAllString(subject, "")), " ")
	}

	line := "- " + subject
	if commit.Author != "" {
		line += fmt.Sprintf(" (%s)", commit.Author)
	}
	return line
}

// DependencyLine renders a consolidated entry as
// "- Updates `pkg` from X to Y (#300, #200, #100)" with PR numbers sorted
// descending, plus a major marker when the leading version differs.
func (f *Formatter) DependencyLine(entry models.ConsolidatedEntry, includePR bool) string {
	line := fmt.Sprintf("- Updates `%s` from %s to %s", entry.Package, entry.From, entry.To)

	if includePR && len(entry.PRNumbers) > 0 {
		numbers := make([]int, len(entry.PRNumbers))
		copy(numbers, entry.PRNumbers)
		sort.Sort(sort.Reverse(sort.IntSlice(numbers)))

		segments := make([]string, len(numbers))
		for i, n := range numbers {
			segments[i] = fmt.Sprintf("#%d", n)
		}
		line += fmt.Sprintf(" (%s)", strings.Join(segments, ", "))
	}

	if entry.Major {
		line += " ⚠ major"
	}
	return line
}

// MajorWarning builds the aggregate warning line for every major change in
// the range, or "" when there is none.
func (f *Formatter) MajorWarning(entries []models.ConsolidatedEntry) string {
	var changes []string
	for _, entry := range entries {
		if entry.Major {
			changes = append(changes, fmt.Sprintf("%s: %s → %s", entry.Package, entry.From, entry.To))
		}
	}
	if len(changes) == 0 {
		return ""
	}
	return f.trans.GetMessage("notes_major_warning", 1, map[string]interface{}{
		"Changes": strings.Join(changes, "; "),
	})
}

// Render assembles the final text. Full mode prints the header, an
// optional major-change warning, the dependency and other-changes sections
// and an optional raw commit listing. Terse mode prints the note lines
// only. Both modes keep lines in range order, newest first.
func (f *Formatter) Render(ref string, entries []models.ConsolidatedEntry, others []models.ReleaseNoteLine, rawCommits []models.Commit, opts RenderOptions) string {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })
	sort.SliceStable(others, func(i, j int) bool { return others[i].Position < others[j].Position })

	depLines := make([]string, len(entries))
	for i, entry := range entries {
		depLines[i] = f.DependencyLine(entry, opts.IncludePRs)
	}

	if opts.Terse {
		lines := make([]string, 0, len(depLines)+len(others))
		lines = append(lines, depLines...)
		for _, line := range others {
			lines = append(lines, line.Text)
		}
		if len(lines) == 0 {
			return ""
		}
		return strings.Join(lines, "\n") + "\n"
	}

	data := map[string]interface{}{"Ref": ref}
	out := []string{
		"",
		f.trans.GetMessage("notes_latest_release", 1, data),
		"",
		f.trans.GetMessage("notes_commits_since", 1, data),
		strings.Repeat("-", 40),
	}

	if warning := f.MajorWarning(entries); warning != "" {
		out = append(out, warning)
	}

	if len(depLines) == 0 && len(others) == 0 {
		out = append(out, "", f.trans.GetMessage("notes_empty_range", 1, data))
	}

	if len(depLines) > 0 {
		out = append(out, "", f.trans.GetMessage("notes_dependency_header", 1, nil), "")
		out = append(out, depLines...)
	}

	if len(others) > 0 {
		out = append(out, "", f.trans.GetMessage("notes_other_header", 1, nil), "")
		for _, line := range others {
			out = append(out, line.Text)
		}
	}

	if opts.ListRawCommits && len(rawCommits) > 0 {
		out = append(out, "", f.trans.GetMessage("notes_raw_commits_header", 1, nil), "")
		for _, commit := range rawCommits {
			out = append(out, rawCommitLine(commit))
		}
	}

	return strings.Join(out, "\n") + "\n"
}

func rawCommitLine(commit models.Commit) string {
	line := fmt.Sprintf("%s %s", commit.ShortHash(), commit.Subject)
	if commit.Author != "" {
		line += fmt.Sprintf(" (%s)", commit.Author)
	}
	return line
}

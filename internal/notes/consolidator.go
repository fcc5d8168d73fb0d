package notes

import (
	"strconv"
	"strings"

	"github.com/thomas-vilte/releasemate/internal/models"
	"github.com/thomas-vilte/releasemate/internal/regex"
	"golang.org/x/mod/semver"
)

// Consolidator collapses multiple updates of the same package across a
// range into a single entry spanning the oldest starting version and the
// newest target version.
type Consolidator struct{}

func NewConsolidator() *Consolidator {
	return &Consolidator{}
}

// Consolidate merges updates by package name. For each package the entry
// keeps the From of the chronologically earliest update, the highest To
// seen in the range, the deduplicated set of contributing PR numbers, and
// the position of the newest contributing commit. Consolidating an already
// consolidated range is a no-op.
func (c *Consolidator) Consolidate(updates []models.DependencyUpdate) []models.ConsolidatedEntry {
	entries := make(map[string]*models.ConsolidatedEntry)
	var order []string

	// Positions count from the newest commit, so "earliest" means the
	// highest position and "newest" the lowest.
	fromPos := make(map[string]int)
	seen := make(map[string]map[int]bool)

	for _, update := range updates {
		entry, ok := entries[update.Package]
		if !ok {
			entry = &models.ConsolidatedEntry{
				Package:  update.Package,
				From:     update.From,
				To:       update.To,
				Position: update.Commit.Position,
			}
			entries[update.Package] = entry
			order = append(order, update.Package)
			fromPos[update.Package] = update.Commit.Position
			seen[update.Package] = make(map[int]bool)
		} else {
			if update.Commit.Position > fromPos[update.Package] {
				entry.From = update.From
				fromPos[update.Package] = update.Commit.Position
			}
			if compareVersions(update.To, entry.To) > 0 {
				entry.To = update.To
			}
			if update.Commit.Position < entry.Position {
				entry.Position = update.Commit.Position
			}
		}

		if update.PR != nil && !seen[update.Package][update.PR.Number] {
			seen[update.Package][update.PR.Number] = true
			entry.PRNumbers = append(entry.PRNumbers, update.PR.Number)
		}
	}

	result := make([]models.ConsolidatedEntry, 0, len(order))
	for _, pkg := range order {
		entry := entries[pkg]
		entry.Major = isMajorChange(entry.From, entry.To)
		result = append(result, *entry)
	}
	return result
}

// compareVersions orders two version strings, preferring semver semantics
// and falling back to a lexical comparison for anything semver cannot
// parse (dates, short tags, pseudo-versions).
func compareVersions(a, b string) int {
	ca, cb := canonical(a), canonical(b)
	if semver.IsValid(ca) && semver.IsValid(cb) {
		return semver.Compare(ca, cb)
	}
	return strings.Compare(a, b)
}

func canonical(v string) string {
	return "v" + strings.TrimPrefix(v, "v")
}

// isMajorChange reports whether the leading numeric components of the two
// versions differ. Versions without a parseable leading number are never
// flagged.
func isMajorChange(from, to string) bool {
	fromMajor, okFrom := leadingMajor(from)
	toMajor, okTo := leadingMajor(to)
	return okFrom && okTo && fromMajor != toMajor
}

func leadingMajor(v string) (int, bool) {
	match := regex.LeadingMajor.FindStringSubmatch(v)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

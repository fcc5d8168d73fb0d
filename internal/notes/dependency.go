package notes

import (
	"strings"

	"github.com/thomas-vilte/releasemate/internal/models"
	"github.com/thomas-vilte/releasemate/internal/regex"
)

// Parser recognizes commits produced by automated dependency-update bots
// and extracts the structured package updates they describe.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// IsBotCommit reports whether the commit author identifies an automated
// dependency-update bot.
func (p *Parser) IsBotCommit(commit models.Commit) bool {
	return strings.Contains(strings.ToLower(commit.Author), "dependabot")
}

// Parse extracts dependency updates from a single commit. A grouped bot
// commit can describe several packages in its body, so one commit may
// yield several updates. A nil result means the commit is not a parseable
// dependency update and flows through as an ordinary entry.
func (p *Parser) Parse(commit models.Commit, pr *models.PRReference) []models.DependencyUpdate {
	if p.IsBotCommit(commit) {
		if updates := p.ParseBody(commit, commit.Body, pr); len(updates) > 0 {
			return updates
		}
	}

	match := regex.BumpSubject.FindStringSubmatch(commit.Subject)
	if match == nil {
		return nil
	}
	return []models.DependencyUpdate{{
		Package: match[1],
		From:    match[2],
		To:      match[3],
		Commit:  commit,
		PR:      pr,
	}}
}

// ParseBody scans message or PR-description text line by line for the
// "Updates `pkg` from X to Y" and "Bumps [pkg](url) from X to Y" shapes
// that bots emit for grouped updates. Markdown table rows are skipped.
func (p *Parser) ParseBody(commit models.Commit, body string, pr *models.PRReference) []models.DependencyUpdate {
	var updates []models.DependencyUpdate
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "|") {
			continue
		}

		match := regex.UpdatesBodyLine.FindStringSubmatch(line)
		if match == nil {
			match = regex.BumpsLinkLine.FindStringSubmatch(line)
		}
		if match == nil {
			continue
		}

		updates = append(updates, models.DependencyUpdate{
			Package: match[1],
			From:    match[2],
			To:      match[3],
			Commit:  commit,
			PR:      pr,
		})
	}
	return updates
}

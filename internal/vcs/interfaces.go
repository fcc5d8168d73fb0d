package vcs

import (
	"context"

	"github.com/thomas-vilte/releasemate/internal/models"
)

// VCSClient defines the code-host operations the note-synthesis engine
// consumes. Implementations must be safe for concurrent use: PR searches
// are fanned out across commits.
type VCSClient interface {
	// SearchPRsByCommit returns the numbers of pull requests containing the
	// given commit, best match first. An empty slice means no match; errors
	// are reported so callers can degrade to "no PR found".
	SearchPRsByCommit(ctx context.Context, sha string) ([]int, error)
	// GetPR fetches title/body metadata for one pull request, used to
	// enrich grouped dependency-update commits.
	GetPR(ctx context.Context, prNumber int) (models.PRData, error)
}

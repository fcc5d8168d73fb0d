package notes

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/thomas-vilte/releasemate/internal/errors"
	"github.com/thomas-vilte/releasemate/internal/i18n"
	"github.com/thomas-vilte/releasemate/internal/models"
)

func newTestService(t *testing.T, git GitService, opts ...Option) *Service {
	t.Helper()
	trans, err := i18n.NewTranslations("en", t.TempDir())
	require.NoError(t, err)
	return NewService(git, trans, opts...)
}

func TestService_GenerateFromLatestTag(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)
	gitService.On("CommitsSince", mock.Anything, "v1.2.3").Return([]models.Commit{
		{Hash: "c0", Subject: "fix race in watcher (#123)", Author: "Jo Developer", Position: 0},
		{Hash: "c1", Subject: "add retry loop", Author: "Sam Coder", Position: 1},
	}, nil)

	service := newTestService(t, gitService)
	out, err := service.Generate(context.Background(), GenerateOptions{
		Render: RenderOptions{IncludePRs: true},
	})

	require.NoError(t, err)
	assert.Contains(t, out, "Latest release: v1.2.3")
	assert.Contains(t, out, "- fix race in watcher (#123) (Jo Developer)")
	assert.Contains(t, out, "- add retry loop (Sam Coder)")
	gitService.AssertExpectations(t)
}

func TestService_ConsolidatesDependencyUpdates(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)
	gitService.On("CommitsSince", mock.Anything, "v1.2.3").Return([]models.Commit{
		{Hash: "c0", Subject: "Bump foo from 1.2.0 to 1.3.0 (#300)", Author: "dependabot[bot]", Position: 0},
		{Hash: "c1", Subject: "Bump foo from 1.1.0 to 1.2.0 (#200)", Author: "dependabot[bot]", Position: 1},
		{Hash: "c2", Subject: "Bump foo from 1.0.0 to 1.1.0 (#100)", Author: "dependabot[bot]", Position: 2},
	}, nil)

	service := newTestService(t, gitService)
	out, err := service.Generate(context.Background(), GenerateOptions{
		Render: RenderOptions{IncludePRs: true},
	})

	require.NoError(t, err)
	assert.Contains(t, out, "## Dependency updates:")
	assert.Contains(t, out, "- Updates `foo` from 1.0.0 to 1.3.0 (#300, #200, #100)")
	assert.Equal(t, 1, strings.Count(out, "Updates `foo`"))
}

func TestService_MajorChangeWarning(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)
	gitService.On("CommitsSince", mock.Anything, "v1.2.3").Return([]models.Commit{
		{Hash: "c0", Subject: "Bump bar from 1.9.0 to 2.0.0 (#10)", Author: "dependabot[bot]", Position: 0},
	}, nil)

	service := newTestService(t, gitService)
	out, err := service.Generate(context.Background(), GenerateOptions{})

	require.NoError(t, err)
	assert.Contains(t, out, "⚠ WARNING: major version changes detected: bar: 1.9.0 → 2.0.0")
	assert.Contains(t, out, "- Updates `bar` from 1.9.0 to 2.0.0 ⚠ major")
}

func TestService_TerseOutput(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)
	gitService.On("CommitsSince", mock.Anything, "v1.2.3").Return([]models.Commit{
		{Hash: "c0", Subject: "add retry loop", Author: "Sam Coder", Position: 0},
	}, nil)

	service := newTestService(t, gitService)
	out, err := service.Generate(context.Background(), GenerateOptions{
		Render: RenderOptions{Terse: true, ListRawCommits: true},
	})

	require.NoError(t, err)
	assert.Equal(t, "- add retry loop (Sam Coder)\n", out)
}

func TestService_ExplicitTag(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("ValidateTagExists", mock.Anything, "v0.9.0").Return(nil)
	gitService.On("CommitsSince", mock.Anything, "v0.9.0").Return([]models.Commit{}, nil)

	service := newTestService(t, gitService)
	out, err := service.Generate(context.Background(), GenerateOptions{Tag: "v0.9.0"})

	require.NoError(t, err)
	assert.Contains(t, out, "Commits since v0.9.0:")
	gitService.AssertNotCalled(t, "GetLastTag", mock.Anything)
}

func TestService_ExplicitCommit(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("ResolveCommit", mock.Anything, "abc123").Return("abc123full", nil)
	gitService.On("CommitsSince", mock.Anything, "abc123full").Return([]models.Commit{}, nil)

	service := newTestService(t, gitService)
	_, err := service.Generate(context.Background(), GenerateOptions{Commit: "abc123"})

	require.NoError(t, err)
	gitService.AssertExpectations(t)
}

func TestService_NoTagsIsFatal(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("GetLastTag", mock.Anything).Return("", nil)

	service := newTestService(t, gitService)
	_, err := service.Generate(context.Background(), GenerateOptions{})

	assert.ErrorIs(t, err, apperrors.ErrNoTagsFound)
}

func TestService_UnknownTagIsFatal(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("ValidateTagExists", mock.Anything, "v9.9.9").
		Return(apperrors.ErrTagNotFound)

	service := newTestService(t, gitService)
	_, err := service.Generate(context.Background(), GenerateOptions{Tag: "v9.9.9"})

	assert.ErrorIs(t, err, apperrors.ErrTagNotFound)
}

func TestService_EmptyRange(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)
	gitService.On("CommitsSince", mock.Anything, "v1.2.3").Return([]models.Commit{}, nil)

	service := newTestService(t, gitService)

	full, err := service.Generate(context.Background(), GenerateOptions{})
	require.NoError(t, err)
	assert.Contains(t, full, "Latest release: v1.2.3")
	assert.Contains(t, full, "No commits since v1.2.3, nothing to do")

	terse, err := service.Generate(context.Background(), GenerateOptions{
		Render: RenderOptions{Terse: true},
	})
	require.NoError(t, err)
	assert.Empty(t, terse)
}

func TestService_SnapshotCommitsAreDropped(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)
	gitService.On("CommitsSince", mock.Anything, "v1.2.3").Return([]models.Commit{
		{Hash: "aaaa111aaaa", Subject: "Setting new SNAPSHOT version 1.3.0-SNAPSHOT", Author: "Release Bot", Position: 0},
		{Hash: "bbbb222bbbb", Subject: "add retry loop", Author: "Sam Coder", Position: 1},
	}, nil)

	service := newTestService(t, gitService)
	out, err := service.Generate(context.Background(), GenerateOptions{
		Render: RenderOptions{ListRawCommits: true},
	})

	require.NoError(t, err)
	assert.Contains(t, out, "- add retry loop (Sam Coder)")
	assert.NotContains(t, out, "- Setting new SNAPSHOT version")
	// The raw listing is verbatim and keeps the bookkeeping commit.
	assert.Contains(t, out, "aaaa111 Setting new SNAPSHOT version 1.3.0-SNAPSHOT (Release Bot)")
}

func TestService_GroupedBotCommitEnrichedFromPRBody(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)
	gitService.On("CommitsSince", mock.Anything, "v1.2.3").Return([]models.Commit{
		{Hash: "c0", Subject: "Bump the go-deps group with 2 updates (#55)", Author: "dependabot[bot]", Position: 0},
	}, nil)

	client := new(MockVCSClient)
	client.On("GetPR", mock.Anything, 55).Return(models.PRData{
		Number: 55,
		Body: "Updates `golang.org/x/sync` from 0.11.0 to 0.12.0\n" +
			"Updates `golang.org/x/text` from 0.22.0 to 0.23.0\n",
	}, nil)

	service := newTestService(t, gitService, WithVCSClient(client))
	out, err := service.Generate(context.Background(), GenerateOptions{
		Render: RenderOptions{IncludePRs: true},
	})

	require.NoError(t, err)
	assert.Contains(t, out, "- Updates `golang.org/x/sync` from 0.11.0 to 0.12.0 (#55)")
	assert.Contains(t, out, "- Updates `golang.org/x/text` from 0.22.0 to 0.23.0 (#55)")
	client.AssertExpectations(t)
}

func TestService_NoClientSkipsEveryLookup(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)
	gitService.On("CommitsSince", mock.Anything, "v1.2.3").Return([]models.Commit{
		{Hash: "c0", Subject: "tune worker pool", Author: "Jo Developer", Position: 0},
		{Hash: "c1", Subject: "Bump the go-deps group with 2 updates (#55)", Author: "dependabot[bot]", Position: 1},
	}, nil)

	service := newTestService(t, gitService)
	out, err := service.Generate(context.Background(), GenerateOptions{
		Render: RenderOptions{IncludePRs: true},
	})

	require.NoError(t, err)
	// Without a code host the grouped bot commit stays an ordinary entry.
	assert.Contains(t, out, "- tune worker pool (Jo Developer)")
	assert.Contains(t, out, "- Bump the go-deps group with 2 updates (#55) (dependabot[bot])")
	assert.NotContains(t, out, "Updates `")
}

func TestService_CommitRangeOrderIsPreserved(t *testing.T) {
	gitService := new(MockGitService)
	gitService.On("GetLastTag", mock.Anything).Return("v1.2.3", nil)
	gitService.On("CommitsSince", mock.Anything, "v1.2.3").Return([]models.Commit{
		{Hash: "c0", Subject: "newest change", Author: "Jo Developer", Position: 0},
		{Hash: "c1", Subject: "middle change", Author: "Jo Developer", Position: 1},
		{Hash: "c2", Subject: "oldest change", Author: "Jo Developer", Position: 2},
	}, nil)

	service := newTestService(t, gitService)
	out, err := service.Generate(context.Background(), GenerateOptions{})

	require.NoError(t, err)
	newest := strings.Index(out, "newest change")
	middle := strings.Index(out, "middle change")
	oldest := strings.Index(out, "oldest change")
	assert.Less(t, newest, middle)
	assert.Less(t, middle, oldest)
}

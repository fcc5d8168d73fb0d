package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/thomas-vilte/releasemate/internal/errors"
	"github.com/thomas-vilte/releasemate/internal/models"
	"github.com/thomas-vilte/releasemate/internal/regex"
)

// Field and record separators for git log output. Unit separators keep
// multi-line bodies intact inside a single record.
const (
	logFormat = "%H%x1f%P%x1f%an%x1f%s%x1f%b%x1e"
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

type GitService struct{}

func NewGitService() *GitService {
	return &GitService{}
}

// IsGitRepo reports whether the working directory is inside a git repository.
func (s *GitService) IsGitRepo(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// CommitsSince returns the commits in <ref>..HEAD, newest first, merge
// commits included. An empty ref lists the full history.
func (s *GitService) CommitsSince(ctx context.Context, ref string) ([]models.Commit, error) {
	args := []string{"log", "--pretty=format:" + logFormat}
	if ref != "" {
		args = []string{"log", ref + "..HEAD", "--pretty=format:" + logFormat}
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, errors.ErrGetCommits.
			WithError(err).
			WithContext("range", ref+"..HEAD").
			WithContext("stderr", stderr)
	}

	return parseLog(string(output)), nil
}

func parseLog(output string) []models.Commit {
	records := strings.Split(output, recordSep)
	commits := make([]models.Commit, 0, len(records))

	for _, record := range records {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}

		parts := strings.SplitN(record, fieldSep, 5)
		if len(parts) < 4 {
			continue
		}

		commit := models.Commit{
			Hash:     parts[0],
			Subject:  parts[3],
			Author:   parts[2],
			Position: len(commits),
		}
		if parents := strings.Fields(parts[1]); len(parents) > 0 {
			commit.Parents = parents
		}
		if len(parts) == 5 {
			commit.Body = strings.TrimRight(parts[4], "\n")
		}
		commits = append(commits, commit)
	}

	return commits
}

// GetLastTag returns the most recent tag reachable from HEAD, or "" when the
// repository has no tags. Other git failures surface as errors.
func (s *GitService) GetLastTag(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "describe", "--tags", "--abbrev=0")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.ToLower(string(exitErr.Stderr))
			if strings.Contains(stderr, "no names found") ||
				strings.Contains(stderr, "cannot describe") ||
				strings.Contains(stderr, "no tags can describe") {
				return "", nil
			}
		}
		return "", errors.ErrGetTags.WithError(err)
	}
	return strings.TrimSpace(string(output)), nil
}

// FetchTags updates tags from origin so the latest release is visible.
func (s *GitService) FetchTags(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "git", "fetch", "origin", "--tags")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrFetchTags, err)
	}
	return nil
}

// ValidateTagExists verifies the given name resolves to a tag.
func (s *GitService) ValidateTagExists(ctx context.Context, tag string) error {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--verify", "refs/tags/"+tag)
	if err := cmd.Run(); err != nil {
		return errors.ErrTagNotFound.WithError(err).WithContext("tag", tag)
	}
	return nil
}

// ResolveCommit verifies the given hash (or abbreviation) names a commit and
// returns its full hash.
func (s *GitService) ResolveCommit(ctx context.Context, hash string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--verify", hash+"^{commit}")
	output, err := cmd.Output()
	if err != nil {
		return "", errors.ErrCommitNotFound.WithError(err).WithContext("commit", hash)
	}
	return strings.TrimSpace(string(output)), nil
}

func (s *GitService) GetCurrentBranch(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "branch", "--show-current")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrGetBranch, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// HasLocalChanges reports whether the worktree or index is dirty.
func (s *GitService) HasLocalChanges(ctx context.Context) bool {
	unstaged := exec.CommandContext(ctx, "git", "diff", "--quiet")
	if err := unstaged.Run(); err != nil {
		return true
	}
	staged := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	return staged.Run() != nil
}

// GetRepoInfo extracts owner, repository name and provider from the origin
// remote URL.
func (s *GitService) GetRepoInfo(ctx context.Context) (string, string, string, error) {
	cmd := exec.CommandContext(ctx, "git", "remote", "get-url", "origin")
	output, err := cmd.Output()
	if err != nil {
		return "", "", "", fmt.Errorf("%w: %v", errors.ErrGetRepoURL, err)
	}

	url := strings.TrimSpace(string(output))
	return parseRepoURL(url)
}

func parseRepoURL(url string) (string, string, string, error) {
	var matches []string
	if regex.SSHRepo.MatchString(url) {
		matches = regex.SSHRepo.FindStringSubmatch(url)
	} else if regex.HTTPSRepo.MatchString(url) {
		matches = regex.HTTPSRepo.FindStringSubmatch(url)
	}

	if len(matches) >= 4 {
		provider := detectProvider(matches[1])
		repoName := strings.TrimSuffix(matches[3], ".git")
		return matches[2], repoName, provider, nil
	}

	return "", "", "", fmt.Errorf("%w [%s]", errors.ErrExtractRepoInfo, url)
}

func detectProvider(host string) string {
	if strings.Contains(host, "github") {
		return "github"
	}
	if strings.Contains(host, "gitlab") {
		return "gitlab"
	}
	return "unknown"
}

package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/releasemate/internal/errors"
	"github.com/thomas-vilte/releasemate/internal/logger"
	"github.com/thomas-vilte/releasemate/internal/models"
	"github.com/thomas-vilte/releasemate/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.VCSClient = (*GitHubClient)(nil)

// SearchService is the slice of go-github's search API the client needs,
// kept narrow for testing.
type SearchService interface {
	Issues(ctx context.Context, query string, opts *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error)
}

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
}

type GitHubClient struct {
	searchService SearchService
	prService     PullRequestsService
	owner         string
	repo          string
}

func NewGitHubClient(owner, repo, token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		searchService: client.Search,
		prService:     client.PullRequests,
		owner:         owner,
		repo:          repo,
	}
}

func NewGitHubClientWithServices(
	searchService SearchService,
	prService PullRequestsService,
	owner string,
	repo string,
) *GitHubClient {
	return &GitHubClient{
		searchService: searchService,
		prService:     prService,
		owner:         owner,
		repo:          repo,
	}
}

// SearchPRsByCommit looks for pull requests containing the commit via the
// search API ("repo:owner/repo sha:<hash>"), filtering out plain issues.
func (ghc *GitHubClient) SearchPRsByCommit(ctx context.Context, sha string) ([]int, error) {
	log := logger.FromContext(ctx)

	query := fmt.Sprintf("repo:%s/%s sha:%s", ghc.owner, ghc.repo, sha)
	result, resp, err := ghc.searchService.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 10},
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusForbidden {
			return nil, domainErrors.ErrGitHubRateLimit.
				WithError(err).
				WithContext("retry_after", resp.Header.Get("Retry-After"))
		}
		return nil, domainErrors.ErrVCSSearch.WithError(err).WithContext("sha", sha)
	}

	var numbers []int
	for _, issue := range result.Issues {
		if issue.IsPullRequest() {
			numbers = append(numbers, issue.GetNumber())
		}
	}

	log.Debug("searched PRs by commit",
		"sha", sha,
		"matches", len(numbers))

	return numbers, nil
}

// GetPR fetches the metadata of one pull request.
func (ghc *GitHubClient) GetPR(ctx context.Context, prNumber int) (models.PRData, error) {
	pr, resp, err := ghc.prService.Get(ctx, ghc.owner, ghc.repo, prNumber)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusForbidden {
			return models.PRData{}, domainErrors.ErrGitHubRateLimit.WithError(err)
		}
		return models.PRData{}, domainErrors.ErrVCSGetPR.
			WithError(err).
			WithContext("pr", prNumber)
	}

	return models.PRData{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Body:   pr.GetBody(),
		Author: pr.GetUser().GetLogin(),
	}, nil
}

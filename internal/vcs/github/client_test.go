package github

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/releasemate/internal/errors"
)

func newTestClient(search *MockSearchService, prs *MockPullRequestsService) *GitHubClient {
	return NewGitHubClientWithServices(search, prs, "test-owner", "test-repo")
}

func prSearchIssue(number int) *github.Issue {
	return &github.Issue{
		Number:           github.Ptr(number),
		PullRequestLinks: &github.PullRequestLinks{URL: github.Ptr("https://api.github.com/repos/test-owner/test-repo/pulls/1")},
	}
}

func TestGitHubClient_SearchPRsByCommit(t *testing.T) {
	t.Run("should return PR numbers for a commit", func(t *testing.T) {
		mockSearch := &MockSearchService{}
		mockPRs := &MockPullRequestsService{}
		client := newTestClient(mockSearch, mockPRs)

		result := &github.IssuesSearchResult{
			Issues: []*github.Issue{prSearchIssue(42), prSearchIssue(7)},
		}
		mockSearch.On("Issues", mock.Anything, "repo:test-owner/test-repo sha:abc123", mock.Anything).
			Return(result, &github.Response{}, nil)

		numbers, err := client.SearchPRsByCommit(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, []int{42, 7}, numbers)
		mockSearch.AssertExpectations(t)
	})

	t.Run("should skip plain issues in search results", func(t *testing.T) {
		mockSearch := &MockSearchService{}
		client := newTestClient(mockSearch, &MockPullRequestsService{})

		plainIssue := &github.Issue{Number: github.Ptr(99)}
		result := &github.IssuesSearchResult{
			Issues: []*github.Issue{plainIssue, prSearchIssue(42)},
		}
		mockSearch.On("Issues", mock.Anything, mock.Anything, mock.Anything).
			Return(result, &github.Response{}, nil)

		numbers, err := client.SearchPRsByCommit(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, []int{42}, numbers)
	})

	t.Run("should return empty slice when nothing matches", func(t *testing.T) {
		mockSearch := &MockSearchService{}
		client := newTestClient(mockSearch, &MockPullRequestsService{})

		mockSearch.On("Issues", mock.Anything, mock.Anything, mock.Anything).
			Return(&github.IssuesSearchResult{}, &github.Response{}, nil)

		numbers, err := client.SearchPRsByCommit(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Empty(t, numbers)
	})

	t.Run("should map rate limit responses", func(t *testing.T) {
		mockSearch := &MockSearchService{}
		client := newTestClient(mockSearch, &MockPullRequestsService{})

		resp := &github.Response{Response: &http.Response{
			StatusCode: http.StatusForbidden,
			Header:     http.Header{"Retry-After": []string{"60"}},
		}}
		mockSearch.On("Issues", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, resp, errors.New("403 rate limit"))

		_, err := client.SearchPRsByCommit(context.Background(), "abc123")

		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrGitHubRateLimit)
		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.TypeVCS, appErr.Type)
	})

	t.Run("should wrap transport failures", func(t *testing.T) {
		mockSearch := &MockSearchService{}
		client := newTestClient(mockSearch, &MockPullRequestsService{})

		mockSearch.On("Issues", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, nil, errors.New("connection refused"))

		_, err := client.SearchPRsByCommit(context.Background(), "abc123")

		require.Error(t, err)
		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.TypeVCS, appErr.Type)
	})
}

func TestGitHubClient_GetPR(t *testing.T) {
	t.Run("should fetch PR metadata", func(t *testing.T) {
		mockPRs := &MockPullRequestsService{}
		client := newTestClient(&MockSearchService{}, mockPRs)

		pr := &github.PullRequest{
			Number: github.Ptr(42),
			Title:  github.Ptr("Bump the deps group with 2 updates"),
			Body:   github.Ptr("Updates `lib-a` from 1.0.0 to 1.1.0"),
			User:   &github.User{Login: github.Ptr("dependabot[bot]")},
		}
		mockPRs.On("Get", mock.Anything, "test-owner", "test-repo", 42).
			Return(pr, &github.Response{}, nil)

		data, err := client.GetPR(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, 42, data.Number)
		assert.Equal(t, "Bump the deps group with 2 updates", data.Title)
		assert.Contains(t, data.Body, "Updates `lib-a`")
		assert.Equal(t, "dependabot[bot]", data.Author)
		mockPRs.AssertExpectations(t)
	})

	t.Run("should wrap API errors", func(t *testing.T) {
		mockPRs := &MockPullRequestsService{}
		client := newTestClient(&MockSearchService{}, mockPRs)

		mockPRs.On("Get", mock.Anything, "test-owner", "test-repo", 42).
			Return(nil, nil, errors.New("not found"))

		_, err := client.GetPR(context.Background(), 42)
		assert.Error(t, err)
	})
}

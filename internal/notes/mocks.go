package notes

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/releasemate/internal/models"
)

type MockGitService struct {
	mock.Mock
}

func (m *MockGitService) CommitsSince(ctx context.Context, ref string) ([]models.Commit, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Commit), args.Error(1)
}

func (m *MockGitService) GetLastTag(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) ValidateTagExists(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockGitService) ResolveCommit(ctx context.Context, hash string) (string, error) {
	args := m.Called(ctx, hash)
	return args.String(0), args.Error(1)
}

type MockVCSClient struct {
	mock.Mock
}

func (m *MockVCSClient) SearchPRsByCommit(ctx context.Context, sha string) ([]int, error) {
	args := m.Called(ctx, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockVCSClient) GetPR(ctx context.Context, prNumber int) (models.PRData, error) {
	args := m.Called(ctx, prNumber)
	return args.Get(0).(models.PRData), args.Error(1)
}

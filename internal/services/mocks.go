package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/matereview/internal/models"
)

type MockGitHubService struct {
	mock.Mock
}

func (m *MockGitHubService) GetPullRequest(ctx context.Context, prNumber int) (models.PullRequestInfo, error) {
	args := m.Called(ctx, prNumber)
	return args.Get(0).(models.PullRequestInfo), args.Error(1)
}

func (m *MockGitHubService) GetPullRequestFiles(ctx context.Context, prNumber int) ([]models.PullRequestFile, error) {
	args := m.Called(ctx, prNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PullRequestFile), args.Error(1)
}

func (m *MockGitHubService) GetPullRequestDiff(ctx context.Context, prNumber int) (models.PullRequestDiff, error) {
	args := m.Called(ctx, prNumber)
	return args.Get(0).(models.PullRequestDiff), args.Error(1)
}

func (m *MockGitHubService) TestAuth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

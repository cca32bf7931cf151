package github

import (
	"context"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/mock"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.PullRequest), respArg(args.Get(1)), args.Error(2)
}

func (m *MockPRService) ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).([]*github.CommitFile), respArg(args.Get(1)), args.Error(2)
}

func (m *MockPRService) GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	return args.String(0), respArg(args.Get(1)), args.Error(2)
}

type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, respArg(args.Get(1)), args.Error(2)
	}
	return args.Get(0).(*github.User), respArg(args.Get(1)), args.Error(2)
}

func respArg(v interface{}) *github.Response {
	if v == nil {
		return nil
	}
	return v.(*github.Response)
}

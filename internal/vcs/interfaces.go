package vcs

import (
	"context"

	"github.com/thomas-vilte/matereview/internal/models"
)

// GitHubService defines the operations the extraction flow needs from the
// hosting API. Implementations translate remote shapes and failures into the
// local models and error taxonomy.
type GitHubService interface {
	// GetPullRequest fetches the PR metadata in a single request.
	GetPullRequest(ctx context.Context, prNumber int) (models.PullRequestInfo, error)
	// GetPullRequestFiles pages through the changed-file listing, preserving
	// the API's per-page order.
	GetPullRequestFiles(ctx context.Context, prNumber int) ([]models.PullRequestFile, error)
	// GetPullRequestDiff fetches the unified diff, truncated to the configured
	// maximum byte size.
	GetPullRequestDiff(ctx context.Context, prNumber int) (models.PullRequestDiff, error)
	// TestAuth performs a who-am-i request for pre-flight diagnostics.
	TestAuth(ctx context.Context) error
}

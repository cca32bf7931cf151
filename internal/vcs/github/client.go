package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"
	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
	"github.com/thomas-vilte/matereview/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.GitHubService = (*GitHubClient)(nil)

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
	GetRaw(ctx context.Context, owner, repo string, number int, opts github.RawOptions) (string, *github.Response, error)
}

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type GitHubClient struct {
	prService    PullRequestsService
	usersService UsersService
	owner        string
	repo         string
	maxDiffSize  int
	pageSize     int
}

// NewGitHubClient prepares an authenticated client without performing any
// network I/O. apiURL may point at a GitHub Enterprise instance; the /api/v3/
// suffix is appended when missing.
func NewGitHubClient(owner, repo, token, apiURL string, cfg *config.Config) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if apiURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, domainErrors.ErrClientInit.WithError(err).
				WithContext("api_url", apiURL)
		}
	}

	return &GitHubClient{
		prService:    client.PullRequests,
		usersService: client.Users,
		owner:        owner,
		repo:         repo,
		maxDiffSize:  cfg.MaxDiffSize,
		pageSize:     cfg.PageSize,
	}, nil
}

// NewGitHubClientWithServices injects the API service seams, for tests.
func NewGitHubClientWithServices(
	prService PullRequestsService,
	usersService UsersService,
	owner string,
	repo string,
	cfg *config.Config,
) *GitHubClient {
	return &GitHubClient{
		prService:    prService,
		usersService: usersService,
		owner:        owner,
		repo:         repo,
		maxDiffSize:  cfg.MaxDiffSize,
		pageSize:     cfg.PageSize,
	}
}

func (ghc *GitHubClient) GetPullRequest(ctx context.Context, prNumber int) (models.PullRequestInfo, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github pull request",
		"owner", ghc.owner,
		"repo", ghc.repo,
		"pr_number", prNumber)

	pr, resp, err := ghc.prService.Get(ctx, ghc.owner, ghc.repo, prNumber)
	if err != nil {
		log.Error("failed to fetch github PR",
			"error", err,
			"owner", ghc.owner,
			"repo", ghc.repo,
			"pr_number", prNumber)
		return models.PullRequestInfo{}, ghc.mapAPIError(resp, err, "get PR", prNumber)
	}

	info := models.PullRequestInfo{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Body:   pr.GetBody(),
		State:  pr.GetState(),
		Author: authorLogin(pr.GetUser()),
		Head:   convertBranch(pr.GetHead()),
		Base:   convertBranch(pr.GetBase()),
	}

	log.Debug("github PR fetched successfully",
		"pr_number", prNumber,
		"title", info.Title,
		"state", info.State,
		"author", info.Author)

	return info, nil
}

func (ghc *GitHubClient) GetPullRequestFiles(ctx context.Context, prNumber int) ([]models.PullRequestFile, error) {
	log := logger.FromContext(ctx)

	var allFiles []models.PullRequestFile
	page := 1
	for {
		opts := &github.ListOptions{PerPage: ghc.pageSize, Page: page}
		files, resp, err := ghc.prService.ListFiles(ctx, ghc.owner, ghc.repo, prNumber, opts)
		if err != nil {
			log.Error("failed to list PR files",
				"error", err,
				"owner", ghc.owner,
				"repo", ghc.repo,
				"pr_number", prNumber,
				"page", page)
			return nil, ghc.mapAPIError(resp, err, "list PR files", prNumber)
		}

		for _, file := range files {
			allFiles = append(allFiles, models.PullRequestFile{
				Filename:  file.GetFilename(),
				Status:    file.GetStatus(),
				Additions: file.GetAdditions(),
				Deletions: file.GetDeletions(),
				Changes:   file.GetChanges(),
			})
		}

		log.Debug("fetched PR files page",
			"pr_number", prNumber,
			"page", page,
			"page_entries", len(files))

		// A short page is the last page. A full-but-final page costs one
		// extra empty fetch, which is the documented termination rule.
		if len(files) < ghc.pageSize {
			break
		}
		page++
	}

	return allFiles, nil
}

func (ghc *GitHubClient) GetPullRequestDiff(ctx context.Context, prNumber int) (models.PullRequestDiff, error) {
	log := logger.FromContext(ctx)

	raw, resp, err := ghc.prService.GetRaw(ctx, ghc.owner, ghc.repo, prNumber, github.RawOptions{Type: github.Diff})
	if err != nil {
		log.Error("failed to fetch PR diff",
			"error", err,
			"owner", ghc.owner,
			"repo", ghc.repo,
			"pr_number", prNumber)
		return models.PullRequestDiff{}, ghc.mapAPIError(resp, err, "get PR diff", prNumber)
	}

	diff := models.PullRequestDiff{
		Content: raw,
		Size:    len(raw),
	}
	if diff.Size > ghc.maxDiffSize {
		diff.Content = raw[:ghc.maxDiffSize]
		diff.Truncated = true
		log.Warn("PR diff truncated",
			"pr_number", prNumber,
			"diff_size", diff.Size,
			"max_diff_size", ghc.maxDiffSize)
	}

	log.Debug("PR diff fetched",
		"pr_number", prNumber,
		"diff_size", diff.Size,
		"truncated", diff.Truncated)

	return diff, nil
}

// TestAuth performs a who-am-i request. Diagnostic only, the extraction flow
// never calls it.
func (ghc *GitHubClient) TestAuth(ctx context.Context) error {
	log := logger.FromContext(ctx)

	user, resp, err := ghc.usersService.Get(ctx, "")
	if err != nil {
		log.Error("github authentication test failed", "error", err)
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return domainErrors.ErrGitHubTokenInvalid.WithError(err).
				WithContext("operation", "test auth")
		}
		return domainErrors.ErrGitHubAPI.WithError(err).
			WithContext("operation", "test auth")
	}

	log.Debug("github authentication successful", "login", user.GetLogin())
	return nil
}

func (ghc *GitHubClient) mapAPIError(resp *github.Response, err error, operation string, prNumber int) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.WithError(err).
				WithContext("operation", operation).
				WithContext("pr_number", prNumber)
		case http.StatusNotFound:
			return domainErrors.ErrResourceNotFound.WithError(err).
				WithContext("operation", operation).
				WithContext("pr_number", prNumber).
				WithContext("repo", fmt.Sprintf("%s/%s", ghc.owner, ghc.repo))
		}
	}
	return domainErrors.ErrGitHubAPI.WithError(err).
		WithContext("operation", operation).
		WithContext("pr_number", prNumber)
}

func authorLogin(user *github.User) string {
	if user == nil || user.Login == nil || *user.Login == "" {
		return "unknown"
	}
	return *user.Login
}

func convertBranch(branch *github.PullRequestBranch) models.BranchInfo {
	info := models.BranchInfo{
		Ref: branch.GetRef(),
		SHA: branch.GetSHA(),
	}
	if repo := branch.GetRepo(); repo != nil {
		info.Repo = models.RepoInfo{
			FullName: repo.GetFullName(),
			Name:     repo.GetName(),
			Owner:    repo.GetOwner().GetLogin(),
		}
	}
	return info
}

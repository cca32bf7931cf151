package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
	"github.com/thomas-vilte/matereview/internal/storage"
	"github.com/thomas-vilte/matereview/internal/vcs"
	githubvcs "github.com/thomas-vilte/matereview/internal/vcs/github"
)

// ExtractionInputs is the bundle of values the extraction flow runs from.
type ExtractionInputs struct {
	PRNumber     int
	RepoName     string
	GithubToken  string
	GithubAPIURL string
}

// ShouldExtract reports whether enough information exists to attempt an
// extraction. Pure predicate, no side effects.
func ShouldExtract(inputs ExtractionInputs) bool {
	return inputs.PRNumber > 0 && inputs.RepoName != "" && inputs.GithubToken != ""
}

// ExtractionService drives the three GitHub fetches and assembles the PRData
// record for template rendering.
type ExtractionService struct {
	githubService vcs.GitHubService
	cfg           *config.Config
}

// NewExtractionService eagerly builds the GitHub adapter. Incomplete or
// unparsable inputs never fail here; the service falls back to an
// unconfigured state and Extract fails with a precondition error instead.
func NewExtractionService(inputs ExtractionInputs, cfg *config.Config) *ExtractionService {
	svc := &ExtractionService{cfg: cfg}

	owner, repo, err := parseRepoName(inputs.RepoName)
	if err != nil {
		return svc
	}

	client, err := githubvcs.NewGitHubClient(owner, repo, inputs.GithubToken, inputs.GithubAPIURL, cfg)
	if err != nil {
		return svc
	}

	svc.githubService = client
	return svc
}

// NewExtractionServiceWithClient injects the GitHub service seam, for tests.
func NewExtractionServiceWithClient(githubService vcs.GitHubService, cfg *config.Config) *ExtractionService {
	return &ExtractionService{
		githubService: githubService,
		cfg:           cfg,
	}
}

// Extract runs the extraction steps in sequence, short-circuiting on the
// first failure. No partial record is returned.
func (s *ExtractionService) Extract(ctx context.Context, inputs ExtractionInputs) (models.PRData, error) {
	log := logger.FromContext(ctx)

	if s.githubService == nil {
		err := domainErrors.ErrServiceNotConfigured.
			WithContext("pr_number", inputs.PRNumber).
			WithContext("repo", inputs.RepoName)
		log.Error("extraction attempted without a configured github service",
			"error", err,
			"pr_number", inputs.PRNumber)
		return models.PRData{}, err
	}

	prInfo, err := s.githubService.GetPullRequest(ctx, inputs.PRNumber)
	if err != nil {
		return models.PRData{}, err
	}

	files, err := s.githubService.GetPullRequestFiles(ctx, inputs.PRNumber)
	if err != nil {
		return models.PRData{}, err
	}

	diff, err := s.githubService.GetPullRequestDiff(ctx, inputs.PRNumber)
	if err != nil {
		return models.PRData{}, err
	}

	diffPath, err := s.writeDiffFile(inputs.PRNumber, diff.Content)
	if err != nil {
		log.Error("failed to persist PR diff",
			"error", err,
			"pr_number", inputs.PRNumber,
			"diff_path", diffPath)
		return models.PRData{}, err
	}

	filenames := make([]string, len(files))
	for i, file := range files {
		filenames[i] = file.Filename
	}

	prData := models.PRData{
		Number:       prInfo.Number,
		Title:        prInfo.Title,
		Author:       prInfo.Author,
		Body:         prInfo.Body,
		State:        prInfo.State,
		Head:         prInfo.Head,
		Base:         prInfo.Base,
		ChangedFiles: strings.Join(filenames, "\n"),
		Files:        files,
		DiffFile:     diffPath,
	}

	log.Info("PR data extracted",
		"pr_number", prData.Number,
		"files_count", len(files),
		"diff_file", diffPath)

	return prData, nil
}

// CheckAuth runs the diagnostic who-am-i request. Not part of the extraction
// flow.
func (s *ExtractionService) CheckAuth(ctx context.Context) error {
	if s.githubService == nil {
		return domainErrors.ErrServiceNotConfigured
	}
	return s.githubService.TestAuth(ctx)
}

func (s *ExtractionService) writeDiffFile(prNumber int, content string) (string, error) {
	path := filepath.Join(s.cfg.TempDir, fmt.Sprintf(s.cfg.DiffFilePattern, prNumber))

	if err := storage.EnsureDir(s.cfg.TempDir); err != nil {
		return path, domainErrors.ErrDiffWrite.WithError(err).
			WithContext("temp_dir", s.cfg.TempDir)
	}
	if err := storage.WriteFile(path, content); err != nil {
		return path, domainErrors.ErrDiffWrite.WithError(err).
			WithContext("diff_path", path)
	}
	return path, nil
}

func parseRepoName(repoName string) (string, string, error) {
	parts := strings.Split(repoName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format: %q, expected owner/repo", repoName)
	}
	return parts[0], parts[1], nil
}

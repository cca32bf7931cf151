package main

import (
	"context"
	"fmt"
	"log"
	"os"

	cfg "github.com/thomas-vilte/matereview/internal/config"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/services"
	githubvcs "github.com/thomas-vilte/matereview/internal/vcs/github"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error initializing the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not get the user home directory: %w", err)
	}

	appConfig, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	app := &cli.Command{
		Name:  "matereview",
		Usage: "Extract pull request data for code review templates",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable info logging"},
		},
		Commands: []*cli.Command{
			newExtractCommand(appConfig),
			newAuthCommand(appConfig),
		},
	}

	return app, nil
}

func githubFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "repo",
			Usage: "repository in owner/repo format",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "GitHub token (falls back to GITHUB_TOKEN)",
		},
		&cli.StringFlag{
			Name:  "api-url",
			Usage: "GitHub Enterprise API URL (falls back to GITHUB_API_URL)",
		},
	}
}

func newExtractCommand(appConfig *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "Fetch PR metadata, changed files and diff, and write the diff to the temp dir",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:     "pr-number",
				Aliases:  []string{"n"},
				Usage:    "pull request number",
				Required: true,
			},
		}, githubFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))

			inputs := resolveInputs(cmd, appConfig)
			inputs.PRNumber = int(cmd.Int("pr-number"))

			if !services.ShouldExtract(inputs) {
				return fmt.Errorf("not enough information to extract: need a positive PR number, a repository and a token")
			}

			service := services.NewExtractionService(inputs, appConfig)
			prData, err := service.Extract(ctx, inputs)
			if err != nil {
				return err
			}

			fmt.Printf("PR #%d: %s\n", prData.Number, prData.Title)
			fmt.Printf("Author: %s (%s -> %s)\n", prData.Author, prData.Head.Ref, prData.Base.Ref)
			fmt.Printf("Changed files: %d\n", len(prData.Files))
			fmt.Printf("Diff written to: %s\n", prData.DiffFile)
			return nil
		},
	}
}

func newAuthCommand(appConfig *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Test GitHub authentication without touching any PR",
		Flags: githubFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))

			// Auth only needs credentials, not a repository, so the adapter
			// is built directly instead of going through the extraction
			// service.
			inputs := resolveInputs(cmd, appConfig)
			client, err := githubvcs.NewGitHubClient("", "", inputs.GithubToken, inputs.GithubAPIURL, appConfig)
			if err != nil {
				return err
			}
			if err := client.TestAuth(ctx); err != nil {
				return err
			}

			fmt.Println("GitHub authentication OK")
			return nil
		},
	}
}

func resolveInputs(cmd *cli.Command, appConfig *cfg.Config) services.ExtractionInputs {
	inputs := services.ExtractionInputs{
		RepoName:     firstNonEmpty(cmd.String("repo"), appConfig.RepoName),
		GithubToken:  firstNonEmpty(cmd.String("token"), os.Getenv("GITHUB_TOKEN"), appConfig.GithubToken),
		GithubAPIURL: firstNonEmpty(cmd.String("api-url"), os.Getenv("GITHUB_API_URL"), appConfig.GithubAPIURL),
	}
	return inputs
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

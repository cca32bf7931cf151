package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should create a default config on first run", func(t *testing.T) {
		tmpDir := t.TempDir()

		cfg, err := LoadConfig(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.MaxDiffSize != defaultMaxDiffSize {
			t.Errorf("expected default max diff size %d, got %d", defaultMaxDiffSize, cfg.MaxDiffSize)
		}
		if cfg.PageSize != defaultPageSize {
			t.Errorf("expected default page size %d, got %d", defaultPageSize, cfg.PageSize)
		}
		if cfg.DiffFilePattern != defaultDiffFilePattern {
			t.Errorf("expected default diff pattern %q, got %q", defaultDiffFilePattern, cfg.DiffFilePattern)
		}
		if cfg.TempDir == "" {
			t.Error("expected a default temp dir")
		}

		if _, err := os.Stat(filepath.Join(tmpDir, ".matereview", "config.json")); err != nil {
			t.Errorf("expected config file to be written: %v", err)
		}
	})

	t.Run("should load an existing config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		saved := &Config{
			GithubToken:     "token",
			RepoName:        "owner/repo",
			MaxDiffSize:     500,
			TempDir:         "/tmp/custom",
			DiffFilePattern: "diff-%d.patch",
			PageSize:        50,
		}
		data, _ := json.MarshalIndent(saved, "", "  ")
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.GithubToken != "token" || cfg.RepoName != "owner/repo" {
			t.Errorf("github settings not loaded: %+v", cfg)
		}
		if cfg.MaxDiffSize != 500 || cfg.PageSize != 50 {
			t.Errorf("limits not loaded: %+v", cfg)
		}
	})

	t.Run("should fill defaults for missing fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configPath, []byte(`{"github_token":"t"}`), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.MaxDiffSize != defaultMaxDiffSize {
			t.Errorf("expected max diff size default, got %d", cfg.MaxDiffSize)
		}
		if cfg.DiffFilePattern != defaultDiffFilePattern {
			t.Errorf("expected diff pattern default, got %q", cfg.DiffFilePattern)
		}
	})

	t.Run("should reject an invalid config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configPath, []byte(`{"max_diff_size":-1}`), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected an error for negative max_diff_size")
		}
	})

	t.Run("should reject a diff pattern without PR number placeholder", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configPath, []byte(`{"diff_file_pattern":"static.diff"}`), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadConfig(configPath)
		if err == nil || !strings.Contains(err.Error(), "placeholder") {
			t.Errorf("expected a placeholder validation error, got %v", err)
		}
	})

	t.Run("should reject malformed JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected a decode error")
		}
	})
}

func TestSaveConfig(t *testing.T) {
	t.Run("should round-trip through save and load", func(t *testing.T) {
		tmpDir := t.TempDir()

		cfg, err := LoadConfig(tmpDir)
		if err != nil {
			t.Fatal(err)
		}

		cfg.RepoName = "owner/repo"
		cfg.MaxDiffSize = 2048
		if err := SaveConfig(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		reloaded, err := LoadConfig(tmpDir)
		if err != nil {
			t.Fatal(err)
		}
		if reloaded.RepoName != "owner/repo" || reloaded.MaxDiffSize != 2048 {
			t.Errorf("round-trip mismatch: %+v", reloaded)
		}
	})

	t.Run("should refuse to save without a file path", func(t *testing.T) {
		cfg := &Config{
			MaxDiffSize:     defaultMaxDiffSize,
			TempDir:         "/tmp/x",
			DiffFilePattern: defaultDiffFilePattern,
			PageSize:        defaultPageSize,
		}

		if err := SaveConfig(cfg); err == nil {
			t.Error("expected an error without PathFile")
		}
	})

	t.Run("should refuse to save an invalid config", func(t *testing.T) {
		cfg := &Config{PathFile: "/tmp/config.json"}

		if err := SaveConfig(cfg); err == nil {
			t.Error("expected a validation error")
		}
	})
}

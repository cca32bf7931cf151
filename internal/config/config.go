package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	GithubToken  string `json:"github_token,omitempty"`
	RepoName     string `json:"repo_name,omitempty"`
	GithubAPIURL string `json:"github_api_url,omitempty"`

	MaxDiffSize     int    `json:"max_diff_size"`
	TempDir         string `json:"temp_dir"`
	DiffFilePattern string `json:"diff_file_pattern"`
	PageSize        int    `json:"page_size"`

	PathFile string `json:"path_file"`
}

const (
	defaultMaxDiffSize     = 100000
	defaultDiffFilePattern = "pr-%d.diff"
	defaultPageSize        = 100
)

func defaultTempDir() string {
	return filepath.Join(os.TempDir(), "matereview")
}

// LoadConfig reads the config file under path, creating one with defaults on
// first run. Passing a .json path directly is supported for tests.
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".matereview")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	applyDefaults(&config)
	config.PathFile = configPath

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded config is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		MaxDiffSize:     defaultMaxDiffSize,
		TempDir:         defaultTempDir(),
		DiffFilePattern: defaultDiffFilePattern,
		PageSize:        defaultPageSize,
		PathFile:        path,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

func applyDefaults(config *Config) {
	if config.MaxDiffSize == 0 {
		config.MaxDiffSize = defaultMaxDiffSize
	}
	if config.TempDir == "" {
		config.TempDir = defaultTempDir()
	}
	if config.DiffFilePattern == "" {
		config.DiffFilePattern = defaultDiffFilePattern
	}
	if config.PageSize == 0 {
		config.PageSize = defaultPageSize
	}
}

func validateConfig(config *Config) error {
	if config.MaxDiffSize <= 0 {
		return errors.New("max_diff_size must be greater than 0")
	}
	if config.PageSize <= 0 {
		return errors.New("page_size must be greater than 0")
	}
	if config.TempDir == "" {
		return errors.New("temp_dir cannot be empty")
	}
	if !strings.Contains(config.DiffFilePattern, "%d") {
		return errors.New("diff_file_pattern must contain a %d placeholder for the PR number")
	}
	return nil
}

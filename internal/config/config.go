package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	domainErrors "github.com/thomas-vilte/releasemate/internal/errors"
)

type Config struct {
	Language      string `json:"language"`
	DefaultBranch string `json:"default_branch"`
	GitHubToken   string `json:"github_token,omitempty"`
	PathFile      string `json:"path_file"`
}

const (
	defaultLang   = "en"
	defaultBranch = "main"
)

// LoadConfig reads the configuration from <home>/.releasemate/config.json,
// creating it with defaults on first run. Passing a path ending in .json
// loads that file directly (used by tests).
func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".releasemate")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.PathFile = configPath

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrConfigInvalid, err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Language:      defaultLang,
		DefaultBranch: defaultBranch,
		PathFile:      path,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error saving default config: %w", err)
	}

	return config, nil
}

// SaveConfig persists the configuration to its PathFile.
func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("%w: %v", domainErrors.ErrConfigInvalid, err)
	}

	if config.PathFile == "" {
		return fmt.Errorf("%w: config file path is not set", domainErrors.ErrConfigInvalid)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	return nil
}

// Token returns the GitHub credential, preferring the GITHUB_TOKEN
// environment variable over the stored value. An empty result means the
// API-search resolution strategy is skipped entirely.
func (c *Config) Token() string {
	if env := os.Getenv("GITHUB_TOKEN"); env != "" {
		return env
	}
	return c.GitHubToken
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return fmt.Errorf("language cannot be empty")
	}
	if config.DefaultBranch == "" {
		return fmt.Errorf("default_branch cannot be empty")
	}
	return nil
}

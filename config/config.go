// Package config loads the dashboard configuration from yaml files and the
// environment. The GitHub token is only ever read from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither file nor environment provide a value.
const (
	DefaultOwner    = "PowerShell"
	DefaultRepo     = "PowerShell"
	DefaultDaysBack = 7
	DefaultAddr     = ":5001"

	// Bounds for the days request parameter.
	MinDaysBack = 1
	MaxDaysBack = 180
)

// Config represents the application configuration.
type Config struct {
	Owner           string   `yaml:"owner,omitempty"`
	Repo            string   `yaml:"repo,omitempty"`
	DefaultDaysBack int      `yaml:"default_days_back,omitempty"`
	ListenAddr      string   `yaml:"listen_addr,omitempty"`
	TeamMembers     []string `yaml:"team_members,omitempty"`
	Contributors    []string `yaml:"contributors,omitempty"`
}

// DefaultConfigDir returns the default config directory.
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".ghdash"
	}
	return filepath.Join(configDir, "ghdash")
}

// ConfigPath returns the path to the global config file.
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current
// directory.
func LocalConfigPath() string {
	return ".ghdash.yaml"
}

// Load loads the configuration. It starts from defaults, merges the global
// config from the XDG config directory, then a local .ghdash.yaml, then
// environment variables (which take final precedence). A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Owner:           DefaultOwner,
		Repo:            DefaultRepo,
		DefaultDaysBack: DefaultDaysBack,
		ListenAddr:      DefaultAddr,
	}

	for _, path := range []string{ConfigPath(), LocalConfigPath()} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.DefaultDaysBack < MinDaysBack || cfg.DefaultDaysBack > MaxDaysBack {
		return nil, fmt.Errorf("default_days_back must be between %d and %d, got %d",
			MinDaysBack, MaxDaysBack, cfg.DefaultDaysBack)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GITHUB_OWNER"); v != "" {
		cfg.Owner = v
	}
	if v := os.Getenv("GITHUB_REPO"); v != "" {
		cfg.Repo = v
	}
	if v := os.Getenv("GHDASH_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DEFAULT_DAYS_BACK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultDaysBack = n
		}
	}
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment
// variable. Following 12-factor practice, tokens are only read from the
// environment, never from config files.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// Validate checks that everything a live upstream call needs is present.
func (c *Config) Validate() error {
	if c.GetGitHubToken() == "" {
		return fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}
	if c.Owner == "" || c.Repo == "" {
		return fmt.Errorf("owner and repo must be non-empty")
	}
	return nil
}

// Save writes the configuration to the global config path.
func (c *Config) Save() error {
	configDir := DefaultConfigDir()
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

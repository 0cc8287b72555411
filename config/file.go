package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pevans/detikscraper/scraper"
	"gopkg.in/yaml.v3"
)

// ScraperFileConfig holds the scrape settings from the config file.
// Durations are Go duration strings such as "10s".
type ScraperFileConfig struct {
	Timeout       string `yaml:"timeout"`
	Concurrency   int    `yaml:"concurrency"`
	FailurePolicy string `yaml:"failure_policy"`
	MaxPages      int    `yaml:"max_pages"`
	DefaultFormat string `yaml:"default_format"`
}

// ServerFileConfig holds the web interface settings from the config file.
type ServerFileConfig struct {
	Addr       string `yaml:"addr"`
	SessionTTL string `yaml:"session_ttl"`
}

// FileConfig represents the structure of ~/.detikscraper/config.yaml.
type FileConfig struct {
	Site    scraper.SiteConfig `yaml:"site"`
	Scraper ScraperFileConfig  `yaml:"scraper"`
	Server  ServerFileConfig   `yaml:"server"`
	Output  struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

// DefaultConfigPath returns ~/.detikscraper/config.yaml, or the path named by
// DETIKSCRAPER_CONFIG when set.
func DefaultConfigPath() (string, error) {
	if path := os.Getenv("DETIKSCRAPER_CONFIG"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".detikscraper", "config.yaml"), nil
}

// LoadConfigFile loads configuration from the default config path. Returns
// nil if the file doesn't exist (not an error). Returns error if the file
// exists but cannot be parsed.
func LoadConfigFile() (*FileConfig, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFileFrom(configPath)
}

// LoadConfigFileFrom loads configuration from configPath with the same
// missing-file semantics as LoadConfigFile.
func LoadConfigFileFrom(configPath string) (*FileConfig, error) {
	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// WriteDefaultConfigFile writes a config file holding the default settings
// to configPath. An existing file is left alone unless force is set. Returns
// whether a file was written.
func WriteDefaultConfigFile(configPath string, force bool) (bool, error) {
	if _, err := os.Stat(configPath); err == nil && !force {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(Default().FileConfig())
	if err != nil {
		return false, fmt.Errorf("failed to marshal config file: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

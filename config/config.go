// Package config resolves the scraper's settings from defaults, the YAML
// config file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pevans/detikscraper/export"
	"github.com/pevans/detikscraper/scraper"
)

// Configuration validation errors.
var (
	ErrInvalidTimeout     = errors.New("scraper.timeout must be a positive duration")
	ErrInvalidConcurrency = errors.New("scraper.concurrency must be at least 1")
	ErrInvalidMaxPages    = errors.New("scraper.max_pages must be at least 1")
	ErrInvalidSessionTTL  = errors.New("server.session_ttl must be a positive duration")
	ErrMissingAddr        = errors.New("server.addr is required")
)

// Config is the effective configuration after all sources are applied.
type Config struct {
	Site          scraper.SiteConfig
	Timeout       time.Duration
	Concurrency   int
	FailurePolicy scraper.FailurePolicy
	MaxPages      int
	DefaultFormat export.Format
	Addr          string
	SessionTTL    time.Duration
	OutputDir     string
	LogLevel      string
	LogFile       string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Site:          scraper.DefaultSiteConfig(),
		Timeout:       scraper.DefaultTimeout,
		Concurrency:   1,
		FailurePolicy: scraper.PolicyLenient,
		MaxPages:      50,
		DefaultFormat: export.CSV,
		Addr:          "localhost:8080",
		SessionTTL:    30 * time.Minute,
		OutputDir:     ".",
		LogLevel:      "info",
	}
}

// Load resolves configuration with precedence:
// 1. Environment variables (highest priority)
// 2. Configuration file (~/.detikscraper/config.yaml)
// 3. Default values (lowest priority)
func Load() (*Config, error) {
	file, err := LoadConfigFile()
	if err != nil {
		return nil, err
	}
	return Resolve(file)
}

// Resolve applies file (which may be nil) and then the environment over the
// defaults and validates the result.
func Resolve(file *FileConfig) (*Config, error) {
	cfg := Default()

	if file != nil {
		if err := cfg.applyFile(file); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFile overrides settings that are present in the config file.
func (c *Config) applyFile(file *FileConfig) error {
	mergeSite(&c.Site, file.Site)

	if file.Scraper.Timeout != "" {
		d, err := time.ParseDuration(file.Scraper.Timeout)
		if err != nil {
			return fmt.Errorf("invalid scraper.timeout: %w", err)
		}
		c.Timeout = d
	}
	if file.Scraper.Concurrency != 0 {
		c.Concurrency = file.Scraper.Concurrency
	}
	if file.Scraper.FailurePolicy != "" {
		policy, err := scraper.ParseFailurePolicy(file.Scraper.FailurePolicy)
		if err != nil {
			return fmt.Errorf("invalid scraper.failure_policy: %w", err)
		}
		c.FailurePolicy = policy
	}
	if file.Scraper.MaxPages != 0 {
		c.MaxPages = file.Scraper.MaxPages
	}
	if file.Scraper.DefaultFormat != "" {
		f, err := export.ParseFormat(file.Scraper.DefaultFormat)
		if err != nil {
			return fmt.Errorf("invalid scraper.default_format: %w", err)
		}
		c.DefaultFormat = f
	}

	if file.Server.Addr != "" {
		c.Addr = file.Server.Addr
	}
	if file.Server.SessionTTL != "" {
		d, err := time.ParseDuration(file.Server.SessionTTL)
		if err != nil {
			return fmt.Errorf("invalid server.session_ttl: %w", err)
		}
		c.SessionTTL = d
	}

	if file.Output.Dir != "" {
		c.OutputDir = file.Output.Dir
	}
	if file.Logging.Level != "" {
		c.LogLevel = file.Logging.Level
	}
	if file.Logging.File != "" {
		c.LogFile = file.Logging.File
	}

	return nil
}

// applyEnv overrides settings from DETIKSCRAPER_* environment variables.
func (c *Config) applyEnv() error {
	if val := os.Getenv("DETIKSCRAPER_ADDR"); val != "" {
		c.Addr = val
	}
	if val := os.Getenv("DETIKSCRAPER_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("DETIKSCRAPER_OUTPUT_DIR"); val != "" {
		c.OutputDir = val
	}
	if val := os.Getenv("DETIKSCRAPER_BASE_URL"); val != "" {
		c.Site.BaseURL = val
	}
	if val := os.Getenv("DETIKSCRAPER_TIMEOUT"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid DETIKSCRAPER_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if val := os.Getenv("DETIKSCRAPER_CONCURRENCY"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid DETIKSCRAPER_CONCURRENCY: %w", err)
		}
		c.Concurrency = n
	}
	if val := os.Getenv("DETIKSCRAPER_MAX_PAGES"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid DETIKSCRAPER_MAX_PAGES: %w", err)
		}
		c.MaxPages = n
	}
	if val := os.Getenv("DETIKSCRAPER_FAILURE_POLICY"); val != "" {
		policy, err := scraper.ParseFailurePolicy(val)
		if err != nil {
			return fmt.Errorf("invalid DETIKSCRAPER_FAILURE_POLICY: %w", err)
		}
		c.FailurePolicy = policy
	}

	return nil
}

// Validate checks the configuration for values the scraper cannot use.
func (c *Config) Validate() error {
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}
	if c.MaxPages < 1 {
		return ErrInvalidMaxPages
	}
	if c.SessionTTL <= 0 {
		return ErrInvalidSessionTTL
	}
	if c.Addr == "" {
		return ErrMissingAddr
	}
	return nil
}

// AggregatorConfig returns the aggregation settings.
func (c *Config) AggregatorConfig() *scraper.AggregatorConfig {
	return &scraper.AggregatorConfig{
		Policy:      c.FailurePolicy,
		Concurrency: c.Concurrency,
	}
}

// FileConfig converts the configuration back into its file form.
func (c *Config) FileConfig() *FileConfig {
	file := &FileConfig{
		Site: c.Site,
		Scraper: ScraperFileConfig{
			Timeout:       c.Timeout.String(),
			Concurrency:   c.Concurrency,
			FailurePolicy: string(c.FailurePolicy),
			MaxPages:      c.MaxPages,
			DefaultFormat: c.DefaultFormat.Extension(),
		},
		Server: ServerFileConfig{
			Addr:       c.Addr,
			SessionTTL: c.SessionTTL.String(),
		},
	}
	file.Output.Dir = c.OutputDir
	file.Logging.Level = c.LogLevel
	file.Logging.File = c.LogFile
	return file
}

// mergeSite copies the non-empty fields of src over dst.
func mergeSite(dst *scraper.SiteConfig, src scraper.SiteConfig) {
	setIfSet(&dst.BaseURL, src.BaseURL)
	setIfSet(&dst.SearchPath, src.SearchPath)
	setIfSet(&dst.QueryParam, src.QueryParam)
	setIfSet(&dst.PageParam, src.PageParam)
	setIfSet(&dst.UserAgent, src.UserAgent)
	setIfSet(&dst.ListConfig.ArticleSelector, src.ListConfig.ArticleSelector)
	setIfSet(&dst.ListConfig.TitleSelector, src.ListConfig.TitleSelector)
	setIfSet(&dst.ListConfig.LinkSelector, src.ListConfig.LinkSelector)
	setIfSet(&dst.ListConfig.DateSelector, src.ListConfig.DateSelector)
	setIfSet(&dst.ListConfig.CategorySelector, src.ListConfig.CategorySelector)
	setIfSet(&dst.ListConfig.SnippetSelector, src.ListConfig.SnippetSelector)
}

func setIfSet(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

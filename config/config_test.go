package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pevans/detikscraper/export"
	"github.com/pevans/detikscraper/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestDefault verifies the built-in configuration
func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, scraper.PolicyLenient, cfg.FailurePolicy)
	assert.Equal(t, 50, cfg.MaxPages)
	assert.Equal(t, export.CSV, cfg.DefaultFormat)
	assert.Equal(t, "localhost:8080", cfg.Addr)
	assert.NoError(t, cfg.Validate())
}

// TestResolve_NoFile verifies defaults are used without a config file
func TestResolve_NoFile(t *testing.T) {
	cfg, err := Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

// TestResolve_FileOverridesDefaults verifies file values win over defaults
func TestResolve_FileOverridesDefaults(t *testing.T) {
	file := &FileConfig{}
	file.Scraper.Timeout = "3s"
	file.Scraper.FailurePolicy = "strict"
	file.Scraper.DefaultFormat = "json"
	file.Site.ListConfig.TitleSelector = "h3.title"

	cfg, err := Resolve(file)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, scraper.PolicyStrict, cfg.FailurePolicy)
	assert.Equal(t, export.JSON, cfg.DefaultFormat)
	assert.Equal(t, "h3.title", cfg.Site.ListConfig.TitleSelector)
	assert.Equal(t, "article", cfg.Site.ListConfig.ArticleSelector, "unset selectors keep their defaults")
}

// TestResolve_EnvOverridesFile verifies environment variables win over the file
func TestResolve_EnvOverridesFile(t *testing.T) {
	file := &FileConfig{}
	file.Server.Addr = "0.0.0.0:9000"
	file.Scraper.Concurrency = 2

	t.Setenv("DETIKSCRAPER_ADDR", "127.0.0.1:7000")
	t.Setenv("DETIKSCRAPER_CONCURRENCY", "4")
	t.Setenv("DETIKSCRAPER_FAILURE_POLICY", "strict")
	t.Setenv("DETIKSCRAPER_TIMEOUT", "2s")

	cfg, err := Resolve(file)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", cfg.Addr)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, scraper.PolicyStrict, cfg.FailurePolicy)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

// TestResolve_InvalidValues verifies bad values are reported
func TestResolve_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		file   func(*FileConfig)
		env    map[string]string
		errMsg string
	}{
		{
			name:   "bad timeout",
			file:   func(f *FileConfig) { f.Scraper.Timeout = "soon" },
			errMsg: "invalid scraper.timeout",
		},
		{
			name:   "bad policy",
			file:   func(f *FileConfig) { f.Scraper.FailurePolicy = "retry" },
			errMsg: "invalid scraper.failure_policy",
		},
		{
			name:   "bad format",
			file:   func(f *FileConfig) { f.Scraper.DefaultFormat = "pdf" },
			errMsg: "invalid scraper.default_format",
		},
		{
			name:   "negative concurrency",
			file:   func(f *FileConfig) { f.Scraper.Concurrency = -1 },
			errMsg: ErrInvalidConcurrency.Error(),
		},
		{
			name:   "bad env concurrency",
			env:    map[string]string{"DETIKSCRAPER_CONCURRENCY": "many"},
			errMsg: "invalid DETIKSCRAPER_CONCURRENCY",
		},
		{
			name:   "zero env max pages",
			env:    map[string]string{"DETIKSCRAPER_MAX_PAGES": "0"},
			errMsg: ErrInvalidMaxPages.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := &FileConfig{}
			if tt.file != nil {
				tt.file(file)
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Resolve(file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

// TestAggregatorConfig verifies the aggregator settings mapping
func TestAggregatorConfig(t *testing.T) {
	cfg := Default()
	cfg.Concurrency = 4
	cfg.FailurePolicy = scraper.PolicyStrict

	agg := cfg.AggregatorConfig()
	assert.Equal(t, 4, agg.Concurrency)
	assert.Equal(t, scraper.PolicyStrict, agg.Policy)
}

// TestHandleGetConfig verifies the config endpoint
func TestHandleGetConfig(t *testing.T) {
	router := gin.New()
	NewConfigAPIServer(Default()).RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "10s", resp.Timeout)
	assert.Equal(t, "lenient", resp.FailurePolicy)
	assert.Equal(t, "csv", resp.DefaultFormat)
	assert.Equal(t, []string{"csv", "xlsx", "json"}, resp.Formats)
	assert.Equal(t, "https://www.detik.com", resp.Site.BaseURL)
}

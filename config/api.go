package config

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pevans/detikscraper/export"
	"github.com/pevans/detikscraper/scraper"
)

// ConfigAPIServer serves the effective configuration over HTTP. The
// configuration is read-only at runtime.
type ConfigAPIServer struct {
	config *Config
}

// NewConfigAPIServer creates a new config API server.
func NewConfigAPIServer(config *Config) *ConfigAPIServer {
	return &ConfigAPIServer{
		config: config,
	}
}

// ConfigResponse represents the response for GET /api/v1/config.
type ConfigResponse struct {
	Site          scraper.SiteConfig `json:"site"`
	Timeout       string             `json:"timeout"`
	Concurrency   int                `json:"concurrency"`
	FailurePolicy string             `json:"failure_policy"`
	MaxPages      int                `json:"max_pages"`
	DefaultFormat string             `json:"default_format"`
	Formats       []string           `json:"formats"`
}

// RegisterRoutes mounts the config routes on the given group.
func (c *ConfigAPIServer) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/config", c.HandleGetConfig)
}

// HandleGetConfig handles GET /api/v1/config.
func (c *ConfigAPIServer) HandleGetConfig(ctx *gin.Context) {
	file := c.config.FileConfig()

	formats := []string{}
	for _, f := range export.Formats() {
		formats = append(formats, f.Extension())
	}

	ctx.JSON(http.StatusOK, ConfigResponse{
		Site:          c.config.Site,
		Timeout:       file.Scraper.Timeout,
		Concurrency:   c.config.Concurrency,
		FailurePolicy: file.Scraper.FailurePolicy,
		MaxPages:      c.config.MaxPages,
		DefaultFormat: file.Scraper.DefaultFormat,
		Formats:       formats,
	})
}

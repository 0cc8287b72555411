// Package web serves the scraper's browser form and JSON API.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pevans/detikscraper"
	"github.com/pevans/detikscraper/config"
	"github.com/pevans/detikscraper/export"
	"github.com/pevans/detikscraper/logger"
	"github.com/pevans/detikscraper/scraper"
)

//go:embed templates/*.html
var templates embed.FS

// Server serves the scrape form, the download endpoint and the JSON API.
type Server struct {
	service  *detikscraper.Service
	config   *config.Config
	sessions *SessionStore
	tmpl     *template.Template
}

// NewServer creates a server that scrapes with service.
func NewServer(service *detikscraper.Service, cfg *config.Config) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Server{
		service:  service,
		config:   cfg,
		sessions: NewSessionStore(cfg.SessionTTL, 1, cfg.DefaultFormat),
		tmpl:     tmpl,
	}, nil
}

// Sessions returns the server's session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// SetupRouter configures the Gin router with the form and API routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetHTMLTemplate(s.tmpl)

	router.GET("/", s.HandleIndex)
	router.POST("/scrape", s.HandleScrapeForm)
	router.GET("/download", s.HandleDownload)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/scrape", s.HandleScrapeAPI)
		config.NewConfigAPIServer(s.config).RegisterRoutes(api)
	}

	return router
}

// requestLogger logs each request through the application logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.Debugf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// formOption is one entry of the format selector.
type formOption struct {
	Value    string
	Label    string
	Selected bool
}

// pageData is the data rendered by index.html.
type pageData struct {
	Keyword    string
	Pages      int
	MaxPages   int
	Formats    []formOption
	Error      string
	ErrorField string
	Outcome    *detikscraper.Outcome
}

func (s *Server) pageData(session Session) pageData {
	options := []formOption{}
	for _, f := range export.Formats() {
		options = append(options, formOption{
			Value:    f.Extension(),
			Label:    f.String(),
			Selected: f == session.Format,
		})
	}

	return pageData{
		Keyword:  session.Keyword,
		Pages:    session.Pages,
		MaxPages: s.service.MaxPages(),
		Formats:  options,
		Outcome:  session.Outcome,
	}
}

// HandleIndex handles GET /.
func (s *Server) HandleIndex(c *gin.Context) {
	session := s.sessions.Get(c)
	c.HTML(http.StatusOK, "index.html", s.pageData(session))
}

// HandleScrapeForm handles POST /scrape.
func (s *Server) HandleScrapeForm(c *gin.Context) {
	session := s.sessions.Get(c)

	req, err := formRequest(c.PostForm("keyword"), c.PostForm("pages"), c.PostForm("format"))

	// Keep what the user typed so the form is prefilled on error.
	session.Keyword = req.Keyword
	if req.Pages != 0 {
		session.Pages = req.Pages
	}
	if req.Format.IsValid() {
		session.Format = req.Format
	}

	var outcome *detikscraper.Outcome
	if err == nil {
		outcome, err = s.service.Scrape(c.Request.Context(), req)
	}
	if err != nil {
		status, _ := errorStatus(err)
		data := s.pageData(session)
		data.Outcome = nil
		data.Error = err.Error()
		var validationErr *detikscraper.ValidationError
		if errors.As(err, &validationErr) {
			data.Error = validationErr.Message
			data.ErrorField = validationErr.Field
		}
		s.sessions.Save(session)
		c.HTML(status, "index.html", data)
		return
	}

	session.Keyword = outcome.Request.Keyword
	session.Outcome = outcome
	s.sessions.Save(session)

	c.HTML(http.StatusOK, "index.html", s.pageData(session))
}

// HandleDownload handles GET /download.
func (s *Server) HandleDownload(c *gin.Context) {
	session := s.sessions.Get(c)
	if session.Outcome == nil {
		c.String(http.StatusNotFound, "Nothing to download yet. Run a scrape first.")
		return
	}

	outcome := session.Outcome
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": outcome.FileName}))
	c.Data(http.StatusOK, outcome.MIMEType, outcome.Data)
}

// formRequest converts raw form values into a request. Values that cannot be
// parsed are reported as validation errors.
func formRequest(keyword, pages, format string) (detikscraper.Request, error) {
	req := detikscraper.Request{Keyword: strings.TrimSpace(keyword)}

	n, err := strconv.Atoi(strings.TrimSpace(pages))
	if err != nil {
		return req, &detikscraper.ValidationError{Field: "pages", Message: "page count must be a whole number"}
	}
	req.Pages = n

	f, err := export.ParseFormat(format)
	if err != nil {
		return req, &detikscraper.ValidationError{Field: "format", Message: "format must be one of CSV, XLSX or JSON"}
	}
	req.Format = f

	return req, nil
}

// errorStatus maps a scrape error to an HTTP status and an error code.
func errorStatus(err error) (int, string) {
	var fetchErr *scraper.FetchError
	switch {
	case errors.Is(err, detikscraper.ErrInvalidInput):
		return http.StatusBadRequest, "validation_error"
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "fetch_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

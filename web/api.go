package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pevans/detikscraper"
	"github.com/pevans/detikscraper/export"
	"github.com/pevans/detikscraper/scraper"
)

// ScrapeRequest represents the request for POST /api/v1/scrape.
type ScrapeRequest struct {
	Keyword   string `json:"keyword"`
	Pages     int    `json:"pages"`
	StartPage int    `json:"start_page,omitempty"` // Default: 1
	Format    string `json:"format,omitempty"`     // Default: the configured format
}

// PageErrorResponse describes a page that was skipped.
type PageErrorResponse struct {
	Page    int    `json:"page"`
	Message string `json:"message"`
}

// ScrapeResponse represents the response for POST /api/v1/scrape.
type ScrapeResponse struct {
	Articles []scraper.Article     `json:"articles"`
	Total    int                   `json:"total"`
	Pages    []scraper.PageSummary `json:"pages"`
	Errors   []PageErrorResponse   `json:"errors"`
	FileName string                `json:"file_name"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// HandleScrapeAPI handles POST /api/v1/scrape. The export is kept in the
// caller's session so it can be fetched from /download.
func (s *Server) HandleScrapeAPI(c *gin.Context) {
	var body ScrapeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, ErrorDetail{Code: "bad_request", Message: "Invalid JSON body: " + err.Error()})
		return
	}

	format := s.config.DefaultFormat
	if body.Format != "" {
		f, err := export.ParseFormat(body.Format)
		if err != nil {
			writeError(c, http.StatusBadRequest, ErrorDetail{
				Code:    "validation_error",
				Field:   "format",
				Message: "format must be one of csv, xlsx or json",
			})
			return
		}
		format = f
	}

	outcome, err := s.service.Scrape(c.Request.Context(), detikscraper.Request{
		Keyword:   body.Keyword,
		Pages:     body.Pages,
		StartPage: body.StartPage,
		Format:    format,
	})
	if err != nil {
		status, code := errorStatus(err)
		detail := ErrorDetail{Code: code, Message: err.Error()}
		var validationErr *detikscraper.ValidationError
		if errors.As(err, &validationErr) {
			detail.Field = validationErr.Field
			detail.Message = validationErr.Message
		}
		writeError(c, status, detail)
		return
	}

	session := s.sessions.Get(c)
	session.Keyword = outcome.Request.Keyword
	session.Pages = outcome.Request.Pages
	session.Format = outcome.Request.Format
	session.Outcome = outcome
	s.sessions.Save(session)

	c.JSON(http.StatusOK, newScrapeResponse(outcome))
}

func newScrapeResponse(outcome *detikscraper.Outcome) ScrapeResponse {
	result := outcome.Result

	pages := result.Pages
	if pages == nil {
		pages = []scraper.PageSummary{}
	}

	errs := []PageErrorResponse{}
	for _, pageErr := range result.Errors {
		errs = append(errs, PageErrorResponse{Page: pageErr.Page, Message: pageErr.Err.Error()})
	}

	articles := result.Articles
	if articles == nil {
		articles = []scraper.Article{}
	}

	return ScrapeResponse{
		Articles: articles,
		Total:    len(articles),
		Pages:    pages,
		Errors:   errs,
		FileName: outcome.FileName,
	}
}

func writeError(c *gin.Context, status int, detail ErrorDetail) {
	c.JSON(status, ErrorResponse{Error: detail})
}

// Package detikscraper scrapes detik.com keyword searches into CSV, JSON or
// XLSX exports.
package detikscraper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pevans/detikscraper/config"
	"github.com/pevans/detikscraper/export"
	"github.com/pevans/detikscraper/logger"
	"github.com/pevans/detikscraper/scraper"
)

// ErrInvalidInput is matched by every *ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError reports a user input that was rejected before scraping.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Request is one scrape as submitted by a user.
type Request struct {
	Keyword   string
	Pages     int
	StartPage int // Default: 1
	Format    export.Format
}

// Validate checks the request against the page limit. The keyword is
// trimmed in place.
func (r *Request) Validate(maxPages int) error {
	r.Keyword = strings.TrimSpace(r.Keyword)
	if r.Keyword == "" {
		return &ValidationError{Field: "keyword", Message: "keyword is required"}
	}

	if r.Pages < 1 {
		return &ValidationError{Field: "pages", Message: "page count must be a positive number"}
	}
	if r.Pages > maxPages {
		return &ValidationError{Field: "pages", Message: fmt.Sprintf("page count must be at most %d", maxPages)}
	}

	if r.StartPage == 0 {
		r.StartPage = 1
	}
	if r.StartPage < 1 {
		return &ValidationError{Field: "start_page", Message: "start page must be a positive number"}
	}

	if !r.Format.IsValid() {
		return &ValidationError{Field: "format", Message: "format must be one of CSV, XLSX or JSON"}
	}

	return nil
}

// Outcome is a finished scrape: the result set and its serialized export.
type Outcome struct {
	Request  Request
	Result   *scraper.Result
	Data     []byte
	FileName string
	MIMEType string
}

// Aggregator is the part of the scraper the service drives.
type Aggregator interface {
	Aggregate(ctx context.Context, keyword string, startPage, pageCount int) (*scraper.Result, error)
}

// Service validates requests, runs the aggregator and exports the result.
type Service struct {
	aggregator Aggregator
	maxPages   int
	now        func() time.Time
}

// NewService creates a service that uses aggregator and allows at most
// maxPages pages per request.
func NewService(aggregator Aggregator, maxPages int) *Service {
	return &Service{
		aggregator: aggregator,
		maxPages:   maxPages,
		now:        time.Now,
	}
}

// NewServiceFromConfig wires a fetcher, parser and aggregator from cfg.
func NewServiceFromConfig(cfg *config.Config) *Service {
	fetcher := scraper.NewFetcher(cfg.Site, cfg.Timeout)
	parser := scraper.NewParser(cfg.Site)
	aggregator := scraper.NewAggregator(fetcher, parser, cfg.AggregatorConfig())
	return NewService(aggregator, cfg.MaxPages)
}

// MaxPages returns the largest page count a request may ask for.
func (s *Service) MaxPages() int {
	return s.maxPages
}

// Scrape validates req, scrapes the requested pages and exports the
// articles. Invalid input returns a *ValidationError without touching the
// network.
func (s *Service) Scrape(ctx context.Context, req Request) (*Outcome, error) {
	if err := req.Validate(s.maxPages); err != nil {
		return nil, err
	}

	logger.Log.Infof("Scraping %q: %d page(s) from page %d as %s", req.Keyword, req.Pages, req.StartPage, req.Format)

	result, err := s.aggregator.Aggregate(ctx, req.Keyword, req.StartPage, req.Pages)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape: %w", err)
	}

	data, err := export.Export(result.Articles, req.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}

	return &Outcome{
		Request:  req,
		Result:   result,
		Data:     data,
		FileName: export.FileName(req.Keyword, req.Pages, req.Format, s.now()),
		MIMEType: req.Format.MIMEType(),
	}, nil
}

// Save writes the export into dir, creating the directory if needed, and
// returns the file's path.
func (o *Outcome) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, o.FileName)
	if err := os.WriteFile(path, o.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	logger.Log.Infof("Wrote %d article(s) to %s", o.Result.Len(), path)
	return path, nil
}

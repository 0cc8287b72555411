package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pevans/detikscraper/logger"
)

// FailurePolicy decides what aggregation does when a page cannot be fetched.
type FailurePolicy string

const (
	// PolicyLenient skips failed pages and keeps going.
	PolicyLenient FailurePolicy = "lenient"
	// PolicyStrict aborts the whole scrape on the first failed page.
	PolicyStrict FailurePolicy = "strict"
)

// ErrInvalidPolicy is returned by ParseFailurePolicy for unknown names.
var ErrInvalidPolicy = errors.New("failure policy must be lenient or strict")

// ParseFailurePolicy converts a policy name into a FailurePolicy.
func ParseFailurePolicy(name string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(name))) {
	case PolicyLenient:
		return PolicyLenient, nil
	case PolicyStrict:
		return PolicyStrict, nil
	}
	return "", ErrInvalidPolicy
}

// PageFetcher retrieves the HTML of one result page.
type PageFetcher interface {
	Fetch(ctx context.Context, keyword string, page int) (string, error)
}

// PageParser extracts articles from the HTML of one result page.
type PageParser interface {
	Parse(html string) ([]Article, error)
}

// AggregatorConfig holds configuration for the aggregator.
type AggregatorConfig struct {
	// What to do when a page fails
	Policy FailurePolicy
	// Maximum number of pages fetched at the same time
	Concurrency int
}

// DefaultAggregatorConfig returns a sequential, lenient configuration.
func DefaultAggregatorConfig() *AggregatorConfig {
	return &AggregatorConfig{
		Policy:      PolicyLenient,
		Concurrency: 1,
	}
}

// Aggregator drives a fetcher and a parser across a range of pages.
type Aggregator struct {
	fetcher PageFetcher
	parser  PageParser
	config  AggregatorConfig
}

// NewAggregator creates a new aggregator. A nil config uses
// DefaultAggregatorConfig.
func NewAggregator(fetcher PageFetcher, parser PageParser, config *AggregatorConfig) *Aggregator {
	if config == nil {
		config = DefaultAggregatorConfig()
	}

	cfg := *config
	if cfg.Policy == "" {
		cfg.Policy = PolicyLenient
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return &Aggregator{
		fetcher: fetcher,
		parser:  parser,
		config:  cfg,
	}
}

// Config returns the effective aggregator configuration.
func (a *Aggregator) Config() AggregatorConfig {
	return a.config
}

// pageOutcome is the result of scraping a single page.
type pageOutcome struct {
	page     int
	articles []Article
	err      error
}

// Aggregate scrapes pageCount pages starting at startPage and concatenates
// their articles in page order. Pages may be fetched concurrently, but the
// result never depends on completion order.
func (a *Aggregator) Aggregate(ctx context.Context, keyword string, startPage, pageCount int) (*Result, error) {
	if startPage < 1 {
		return nil, ErrInvalidPage
	}
	if pageCount < 1 {
		return nil, ErrInvalidPageCount
	}

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]pageOutcome, pageCount)
	semaphore := make(chan struct{}, a.config.Concurrency)
	var wg sync.WaitGroup

	launched := 0
dispatch:
	for i := range pageCount {
		select {
		case <-workCtx.Done():
			break dispatch
		case semaphore <- struct{}{}:
		}

		launched++
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			outcomes[i] = a.scrapePage(workCtx, keyword, startPage+i)
			if outcomes[i].err != nil && a.config.Policy == PolicyStrict {
				cancel()
			}
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scrape cancelled: %w", err)
	}

	if a.config.Policy == PolicyStrict {
		if err := firstFailure(outcomes[:launched]); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Keyword:  keyword,
		Articles: []Article{},
	}
	for _, outcome := range outcomes[:launched] {
		if outcome.err != nil {
			logger.Log.Warnf("Skipping page %d: %v", outcome.page, outcome.err)
			result.Errors = append(result.Errors, PageError{Page: outcome.page, Err: outcome.err})
			continue
		}
		result.Articles = append(result.Articles, outcome.articles...)
		result.Pages = append(result.Pages, PageSummary{Page: outcome.page, Count: len(outcome.articles)})
	}

	logger.Log.Infof("Scraped %d articles for %q from %d page(s), %d failed",
		len(result.Articles), keyword, len(result.Pages), len(result.Errors))

	return result, nil
}

// scrapePage fetches and parses a single page.
func (a *Aggregator) scrapePage(ctx context.Context, keyword string, page int) pageOutcome {
	html, err := a.fetcher.Fetch(ctx, keyword, page)
	if err != nil {
		return pageOutcome{page: page, err: err}
	}

	articles, err := a.parser.Parse(html)
	if err != nil {
		return pageOutcome{page: page, err: fmt.Errorf("failed to parse page %d: %w", page, err)}
	}

	logger.Log.Debugf("Page %d yielded %d articles", page, len(articles))
	return pageOutcome{page: page, articles: articles}
}

// firstFailure returns the error of the lowest-numbered page that failed on
// its own. Pages that only failed because a sibling cancelled the scrape are
// passed over unless nothing else failed.
func firstFailure(outcomes []pageOutcome) error {
	var cancelled *pageOutcome
	for i := range outcomes {
		outcome := &outcomes[i]
		if outcome.err == nil {
			continue
		}
		if errors.Is(outcome.err, context.Canceled) {
			if cancelled == nil {
				cancelled = outcome
			}
			continue
		}
		return fmt.Errorf("scrape aborted: %w", outcome.err)
	}
	if cancelled != nil {
		return fmt.Errorf("scrape aborted: %w", cancelled.err)
	}
	return nil
}

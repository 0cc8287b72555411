package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pevans/detikscraper/logger"
)

// DefaultTimeout bounds a single page request.
const DefaultTimeout = 10 * time.Second

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrInvalidPage      = errors.New("page must be at least 1")
	ErrInvalidPageCount = errors.New("page count must be at least 1")
)

// FetchError describes a failure to retrieve one result page.
type FetchError struct {
	Page       int
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch page %d: HTTP error: %d %s", e.Page, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("failed to fetch page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves search result pages over HTTP.
type Fetcher struct {
	site   SiteConfig
	client *http.Client
}

// NewFetcher creates a fetcher whose requests are bounded by timeout. A
// non-positive timeout falls back to DefaultTimeout.
func NewFetcher(site SiteConfig, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewFetcherWithClient(site, &http.Client{Timeout: timeout})
}

// NewFetcherWithClient creates a fetcher using the given HTTP client.
func NewFetcherWithClient(site SiteConfig, client *http.Client) *Fetcher {
	return &Fetcher{
		site:   site,
		client: client,
	}
}

// SearchURL builds the search URL for keyword and the 1-based page number.
func (f *Fetcher) SearchURL(keyword string, page int) (string, error) {
	if page < 1 {
		return "", ErrInvalidPage
	}

	u, err := url.Parse(strings.TrimRight(f.site.BaseURL, "/") + f.site.SearchPath)
	if err != nil {
		return "", fmt.Errorf("failed to build search URL: %w", err)
	}

	q := u.Query()
	q.Set(f.site.QueryParam, keyword)
	q.Set(f.site.PageParam, strconv.Itoa(page))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Fetch performs a single GET for one result page and returns the body. Any
// failure is returned as a *FetchError; nothing is retried.
func (f *Fetcher) Fetch(ctx context.Context, keyword string, page int) (string, error) {
	searchURL, err := f.SearchURL(keyword, page)
	if err != nil {
		return "", &FetchError{Page: page, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, http.NoBody)
	if err != nil {
		return "", &FetchError{Page: page, URL: searchURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	if f.site.UserAgent != "" {
		req.Header.Set("User-Agent", f.site.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	logger.Log.Debugf("Fetching page %d: %s", page, searchURL)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{Page: page, URL: searchURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{
			Page:       page,
			URL:        searchURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Page: page, URL: searchURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return string(body), nil
}

package scraper

import "fmt"

// Article is one search listing extracted from a result page. Fields that
// were missing from the listing are empty strings.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publish_timestamp"`
	Snippet     string `json:"snippet"`
}

// Header returns the export column names in column order.
func Header() []string {
	return []string{"title", "url", "publish_timestamp", "snippet"}
}

// Row returns the article's fields in the same order as Header.
func (a Article) Row() []string {
	return []string{a.Title, a.URL, a.PublishedAt, a.Snippet}
}

// PageSummary records how many articles a successfully scraped page
// contributed.
type PageSummary struct {
	Page  int `json:"page"`
	Count int `json:"count"`
}

// PageError describes a page that was skipped during aggregation.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Result is the ordered set of articles for one scrape request. Articles are
// ordered by page, then by position within the page.
type Result struct {
	Keyword  string
	Articles []Article
	Pages    []PageSummary
	Errors   []PageError
}

// Len returns the number of articles in the result.
func (r *Result) Len() int {
	return len(r.Articles)
}

package scraper

import (
	"errors"
	"net/url"
)

// DefaultUserAgent is a desktop browser identity. The search endpoint serves
// a reduced page to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// SiteConfig defines how to query a site's search endpoint and how to
// extract listings from the result pages.
type SiteConfig struct {
	BaseURL    string     `json:"base_url" yaml:"base_url"`
	SearchPath string     `json:"search_path" yaml:"search_path"`
	QueryParam string     `json:"query_param" yaml:"query_param"`
	PageParam  string     `json:"page_param" yaml:"page_param"`
	UserAgent  string     `json:"user_agent" yaml:"user_agent"`
	ListConfig ListConfig `json:"list_config" yaml:"list"`
}

// ListConfig defines the selectors for listing nodes on a result page. Every
// selector except ArticleSelector is evaluated relative to one listing node.
type ListConfig struct {
	ArticleSelector  string `json:"article_selector" yaml:"article_selector"`
	TitleSelector    string `json:"title_selector" yaml:"title_selector"`
	LinkSelector     string `json:"link_selector" yaml:"link_selector"`
	DateSelector     string `json:"date_selector" yaml:"date_selector"`
	CategorySelector string `json:"category_selector,omitempty" yaml:"category_selector"` // stripped from the date text
	SnippetSelector  string `json:"snippet_selector" yaml:"snippet_selector"`
}

// DefaultSiteConfig returns the configuration for the detik.com search
// pages.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		BaseURL:    "https://www.detik.com",
		SearchPath: "/search/searchall",
		QueryParam: "query",
		PageParam:  "page",
		UserAgent:  DefaultUserAgent,
		ListConfig: ListConfig{
			ArticleSelector:  "article",
			TitleSelector:    "h2",
			LinkSelector:     "a[href]",
			DateSelector:     "span.date",
			CategorySelector: "span.category",
			SnippetSelector:  "span.box_text > p",
		},
	}
}

// Validate checks that the config can build search URLs and select
// listings.
func (c SiteConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("site base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return errors.New("site base_url is not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("site base_url must use http or https scheme")
	}
	if c.QueryParam == "" || c.PageParam == "" {
		return errors.New("site query_param and page_param are required")
	}
	if c.ListConfig.ArticleSelector == "" {
		return errors.New("list article_selector is required")
	}
	return nil
}

package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Parser extracts articles from result pages using a ListConfig.
type Parser struct {
	list ListConfig
	base *url.URL
}

// NewParser creates a parser for the site. Relative links are resolved
// against the site's base URL.
func NewParser(site SiteConfig) *Parser {
	base, err := url.Parse(site.BaseURL)
	if err != nil || base.Host == "" {
		base = nil
	}
	return &Parser{
		list: site.ListConfig,
		base: base,
	}
}

// Parse extracts the listings from one page of HTML. A page with no
// listings yields an empty slice, not an error.
func (p *Parser) Parse(html string) ([]Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return p.ParseDocument(doc), nil
}

// ParseDocument extracts the listings from an already parsed document.
func (p *Parser) ParseDocument(doc *goquery.Document) []Article {
	articles := []Article{}
	doc.Find(p.list.ArticleSelector).Each(func(i int, s *goquery.Selection) {
		articles = append(articles, p.parseListing(s))
	})
	return articles
}

// parseListing extracts one article from a listing node. Missing fields are
// left empty.
func (p *Parser) parseListing(s *goquery.Selection) Article {
	article := Article{
		Title:   p.text(s, p.list.TitleSelector),
		URL:     p.link(s),
		Snippet: p.text(s, p.list.SnippetSelector),
	}

	// The date node also carries the category label in front of the
	// timestamp
	date := p.text(s, p.list.DateSelector)
	if category := p.text(s, p.list.CategorySelector); category != "" {
		date = strings.TrimSpace(strings.TrimPrefix(date, category))
	}
	article.PublishedAt = date

	return article
}

// text returns the whitespace-normalized text of the first match of
// selector within s.
func (p *Parser) text(s *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return normalizeSpace(s.Find(selector).First().Text())
}

// link returns the href of the first link within s that carries one,
// resolved against the base URL when it is relative.
func (p *Parser) link(s *goquery.Selection) string {
	if p.list.LinkSelector == "" {
		return ""
	}

	anchor := s.Find(p.list.LinkSelector).FilterFunction(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		return ok && strings.TrimSpace(href) != ""
	}).First()

	href := strings.TrimSpace(anchor.AttrOr("href", ""))
	if href == "" || p.base == nil {
		return href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return p.base.ResolveReference(ref).String()
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/pevans/detikscraper/scraper"
)

// DefaultPreviewRows is how many articles a preview shows.
const DefaultPreviewRows = 10

// previewColumn is one column of the preview table. Every column gets at
// least minWidth cells; share is its part of the width left over after that.
type previewColumn struct {
	title    string
	minWidth int
	share    int
	value    func(a scraper.Article) string
}

// publishedWidth fits a full detik timestamp such as
// "Senin, 20 Jan 2025 10:01 WIB".
const publishedWidth = 28

var previewColumns = []previewColumn{
	{title: "Title", minWidth: 10, share: 5, value: func(a scraper.Article) string { return a.Title }},
	{title: "Published", minWidth: publishedWidth, value: func(a scraper.Article) string { return a.PublishedAt }},
	{title: "URL", minWidth: 10, share: 3, value: func(a scraper.Article) string { return a.URL }},
}

// FormatPreview renders the first limit articles as a table that fits in
// width terminal cells.
func FormatPreview(articles []scraper.Article, limit, width int) string {
	if len(articles) == 0 {
		return InfoStyle.Render("No articles found.")
	}

	shown := articles
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	numWidth := len(strconv.Itoa(len(shown)))
	widths := columnWidths(width - numWidth - 1 - len(previewColumns))

	var b strings.Builder

	header := []string{pad("#", numWidth)}
	for i, col := range previewColumns {
		header = append(header, pad(col.title, widths[i]))
	}
	b.WriteString(HeaderStyle.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	for i, a := range shown {
		row := []string{pad(strconv.Itoa(i+1), numWidth)}
		for j, col := range previewColumns {
			row = append(row, pad(truncate(col.value(a), widths[j]), widths[j]))
		}
		b.WriteString(strings.Join(row, " "))
		b.WriteString("\n")
	}

	if rest := len(articles) - len(shown); rest > 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("… and %d more", rest)))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(strings.TrimRight(b.String(), "\n"))
}

// columnWidths splits available cells between the preview columns. When
// the minimums do not fit, the table overflows and FormatPreview clips it.
func columnWidths(available int) []int {
	widths := make([]int, len(previewColumns))
	total := 0
	for i, col := range previewColumns {
		widths[i] = max(col.minWidth, runewidth.StringWidth(col.title))
		available -= widths[i]
		total += col.share
	}

	if available <= 0 || total == 0 {
		return widths
	}
	for i, col := range previewColumns {
		widths[i] += available * col.share / total
	}
	return widths
}

// truncate shortens s to width display cells
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

// pad fills s with spaces up to width display cells
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

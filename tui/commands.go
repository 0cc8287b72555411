package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pevans/detikscraper"
)

// scrapeCmd runs the scrape and writes the export into outputDir
func scrapeCmd(ctx context.Context, s Scraper, req detikscraper.Request, outputDir string) tea.Cmd {
	return func() tea.Msg {
		outcome, err := s.Scrape(ctx, req)
		if err != nil {
			return ScrapeCompleteMsg{Err: err}
		}

		path, err := outcome.Save(outputDir)
		if err != nil {
			return ScrapeCompleteMsg{Outcome: outcome, Err: err}
		}

		return ScrapeCompleteMsg{Outcome: outcome, Path: path}
	}
}

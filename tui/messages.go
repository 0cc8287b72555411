package tui

import "github.com/pevans/detikscraper"

// ScrapeCompleteMsg is sent when a scrape started from the form finishes.
// Path is where the export was written.
type ScrapeCompleteMsg struct {
	Outcome *detikscraper.Outcome
	Path    string
	Err     error
}

package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pevans/detikscraper"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if m.State != StateScraping {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	case ScrapeCompleteMsg:
		return m.handleScrapeComplete(msg)
	}

	return m.updateInput(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.cancelFunc != nil {
			m.cancelFunc()
		}
		return m, tea.Quit
	}

	// The form is locked while a scrape runs
	if m.State == StateScraping {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m.setFocus((m.Focus + 1) % fieldCount), nil
	case "shift+tab", "up":
		return m.setFocus((m.Focus + fieldCount - 1) % fieldCount), nil
	case "left":
		if m.Focus == FieldFormat {
			m.FormatIndex = (m.FormatIndex + len(m.Formats) - 1) % len(m.Formats)
			return m, nil
		}
	case "right":
		if m.Focus == FieldFormat {
			m.FormatIndex = (m.FormatIndex + 1) % len(m.Formats)
			return m, nil
		}
	case "enter":
		return m.submit()
	}

	return m.updateInput(msg)
}

// submit validates the form and starts the scrape
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.request()
	if err != nil {
		m.Err = err
		m.ErrField = ""
		var validationErr *detikscraper.ValidationError
		if errors.As(err, &validationErr) {
			m.ErrField = validationErr.Field
		}
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFunc = cancel
	m.State = StateScraping
	m.Err = nil
	m.ErrField = ""
	m.Outcome = nil
	m.SavedPath = ""

	return m, tea.Batch(m.Spinner.Tick, scrapeCmd(ctx, m.scraper, req, m.outputDir))
}

// handleScrapeComplete processes the end of a scrape
func (m Model) handleScrapeComplete(msg ScrapeCompleteMsg) (tea.Model, tea.Cmd) {
	if m.cancelFunc != nil {
		m.cancelFunc()
		m.cancelFunc = nil
	}

	m.Outcome = msg.Outcome
	m.SavedPath = msg.Path
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}

	m.State = StateDone
	return m, nil
}

// updateInput forwards msg to the focused text input
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Focus {
	case FieldKeyword:
		m.Keyword, cmd = m.Keyword.Update(msg)
	case FieldPages:
		m.Pages, cmd = m.Pages.Update(msg)
	}
	return m, cmd
}

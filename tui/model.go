// Package tui is the terminal form for the scraper: a keyword, a page count,
// a format and one action.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pevans/detikscraper"
	"github.com/pevans/detikscraper/export"
)

// State represents the form's state machine
type State string

const (
	StateIdle     State = "idle"
	StateScraping State = "scraping"
	StateDone     State = "done"
	StateError    State = "error"
)

// Field identifies a form input
type Field int

const (
	FieldKeyword Field = iota
	FieldPages
	FieldFormat
	fieldCount
)

// Scraper runs one scrape request.
type Scraper interface {
	Scrape(ctx context.Context, req detikscraper.Request) (*detikscraper.Outcome, error)
}

// Model is the terminal form
type Model struct {
	scraper   Scraper
	maxPages  int
	outputDir string

	Keyword     textinput.Model
	Pages       textinput.Model
	Formats     []export.Format
	FormatIndex int
	Focus       Field
	Spinner     spinner.Model

	State      State
	Err        error
	ErrField   string
	Outcome    *detikscraper.Outcome
	SavedPath  string
	Width      int
	cancelFunc context.CancelFunc
}

// NewModel creates a form that scrapes with s and writes exports into
// outputDir. The format selector starts at format.
func NewModel(s Scraper, maxPages int, format export.Format, outputDir string) Model {
	keyword := textinput.New()
	keyword.Placeholder = "e.g. banjir jakarta"
	keyword.CharLimit = 200
	keyword.Width = 40
	keyword.Focus()

	pages := textinput.New()
	pages.Placeholder = "1-" + strconv.Itoa(maxPages)
	pages.CharLimit = 4
	pages.Width = 6
	pages.SetValue("1")

	formats := export.Formats()
	formatIndex := 0
	for i, f := range formats {
		if f == format {
			formatIndex = i
		}
	}

	return Model{
		scraper:     s,
		maxPages:    maxPages,
		outputDir:   outputDir,
		Keyword:     keyword,
		Pages:       pages,
		Formats:     formats,
		FormatIndex: formatIndex,
		Focus:       FieldKeyword,
		Spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(StatusStyle)),
		State:       StateIdle,
		Width:       100,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Format returns the selected export format
func (m Model) Format() export.Format {
	return m.Formats[m.FormatIndex]
}

// request builds a scrape request from the current inputs. A page count that
// is not a number is reported the same way as one that is out of range.
func (m Model) request() (detikscraper.Request, error) {
	req := detikscraper.Request{
		Keyword: m.Keyword.Value(),
		Format:  m.Format(),
	}

	pages, err := strconv.Atoi(m.Pages.Value())
	if err != nil {
		return req, &detikscraper.ValidationError{Field: "pages", Message: "page count must be a whole number"}
	}
	req.Pages = pages

	if err := req.Validate(m.maxPages); err != nil {
		return req, err
	}
	return req, nil
}

// setFocus moves the cursor to field f
func (m Model) setFocus(f Field) Model {
	m.Focus = f
	m.Keyword.Blur()
	m.Pages.Blur()
	switch f {
	case FieldKeyword:
		m.Keyword.Focus()
	case FieldPages:
		m.Pages.Focus()
	}
	return m
}

// labelStyle returns the style for a field's label
func (m Model) labelStyle(f Field) lipgloss.Style {
	if m.Focus == f {
		return FocusedLabelStyle
	}
	return LabelStyle
}

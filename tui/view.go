package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pevans/detikscraper"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("detik.com Keyword Scraper"))
	b.WriteString("\n")

	b.WriteString(m.labelStyle(FieldKeyword).Render("Keyword"))
	b.WriteString(m.Keyword.View())
	b.WriteString(m.fieldError("keyword"))
	b.WriteString("\n")

	b.WriteString(m.labelStyle(FieldPages).Render("Pages"))
	b.WriteString(m.Pages.View())
	b.WriteString(m.fieldError("pages"))
	b.WriteString("\n")

	b.WriteString(m.labelStyle(FieldFormat).Render("Format"))
	b.WriteString(m.formatSelector())
	b.WriteString(m.fieldError("format"))
	b.WriteString("\n\n")

	switch m.State {
	case StateScraping:
		b.WriteString(m.Spinner.View())
		b.WriteString(StatusStyle.Render(" Scraping…"))
		b.WriteString("\n\n")
	case StateError:
		b.WriteString(ErrorStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n\n")
	case StateDone:
		b.WriteString(m.resultView())
		b.WriteString("\n\n")
	}

	if m.Err != nil && m.ErrField == "" && m.State != StateError {
		b.WriteString(ErrorStyle.Render(m.Err.Error()))
		b.WriteString("\n\n")
	}

	if m.State == StateScraping {
		b.WriteString(InfoStyle.Render("esc/ctrl+c: cancel and quit"))
	} else {
		b.WriteString(InfoStyle.Render("tab/shift+tab: move | ←/→: format | enter: scrape | esc/ctrl+c: quit"))
	}

	return b.String()
}

// formatSelector renders the format choices with the selected one marked
func (m Model) formatSelector() string {
	parts := make([]string, 0, len(m.Formats))
	for i, f := range m.Formats {
		if i == m.FormatIndex {
			parts = append(parts, HeaderStyle.Render(" "+f.String()+" "))
		} else {
			parts = append(parts, " "+f.String()+" ")
		}
	}
	return strings.Join(parts, " ")
}

// fieldError renders the inline message for a field that failed validation
func (m Model) fieldError(field string) string {
	var validationErr *detikscraper.ValidationError
	if !errors.As(m.Err, &validationErr) || validationErr.Field != field {
		return ""
	}
	return "  " + ErrorStyle.Render(validationErr.Message)
}

// resultView renders the summary, page warnings and a preview of the result
func (m Model) resultView() string {
	var b strings.Builder

	result := m.Outcome.Result
	b.WriteString(StatusStyle.Render(fmt.Sprintf("✓ %d article(s) from %d page(s)", result.Len(), len(result.Pages))))
	b.WriteString("\n")
	if m.SavedPath != "" {
		b.WriteString(InfoStyle.Render("Saved to " + m.SavedPath))
		b.WriteString("\n")
	}
	for _, pageErr := range result.Errors {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Skipped page %d: %v", pageErr.Page, pageErr.Err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(FormatPreview(result.Articles, DefaultPreviewRows, m.Width))

	return b.String()
}

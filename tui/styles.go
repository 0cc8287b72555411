package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary   = "#C8102E"
	colorSuccess   = "#04B575"
	colorError     = "#FF5F5F"
	colorWarning   = "#E5C07B"
	colorInfo      = "#7F7F7F"
	colorHighlight = "#FAFAFA"
)

// Styles for the terminal form and the preview table
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary)).
		MarginBottom(1)

	LabelStyle = lipgloss.NewStyle().
		Width(10)

	FocusedLabelStyle = LabelStyle.
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary))

	StatusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorSuccess))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError))

	WarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorWarning))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorHighlight)).
		Background(lipgloss.Color(colorPrimary))
)

package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pevans/detikscraper"
	"github.com/pevans/detikscraper/logger"
	"github.com/pevans/detikscraper/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the terminal form",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Log lines on stderr would tear the screen
		logger.Quiet()

		service := detikscraper.NewServiceFromConfig(cfg)
		model := tui.NewModel(service, service.MaxPages(), cfg.DefaultFormat, cfg.OutputDir)

		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

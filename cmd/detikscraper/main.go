package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pevans/detikscraper/config"
	"github.com/pevans/detikscraper/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFile    string

	// cfg is resolved before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "detikscraper",
	Short: "Scrape detik.com keyword searches into CSV, XLSX or JSON",
	Long: `detikscraper searches detik.com for a keyword, collects the article
listings from a number of result pages and exports them as CSV, XLSX or JSON.

Run it as a web form (serve), a terminal form (tui) or a one-off command
(scrape).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.detikscraper/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file")

	rootCmd.AddCommand(serveCmd, tuiCmd, scrapeCmd, configCmd)
}

// setup loads .env, resolves configuration and initializes logging
func setup(cmd *cobra.Command) error {
	// .env is optional
	_ = godotenv.Load()

	if configPath != "" {
		if err := os.Setenv("DETIKSCRAPER_CONFIG", configPath); err != nil {
			return err
		}
	}

	// config init must be able to replace a file that no longer parses
	if cmd == configInitCmd {
		return logger.InitLogger(logLevel, logFile)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	return logger.InitLogger(cfg.LogLevel, cfg.LogFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

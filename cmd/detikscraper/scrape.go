package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pevans/detikscraper"
	"github.com/pevans/detikscraper/export"
	"github.com/pevans/detikscraper/tui"
	"github.com/spf13/cobra"
)

var (
	scrapeKeyword     string
	scrapePages       int
	scrapeStartPage   int
	scrapeFormat      string
	scrapeOutput      string
	scrapePreviewRows int
	scrapeWidth       int
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a keyword and write the export file",
	Example: `  detikscraper scrape --keyword "banjir jakarta" --pages 3 --format xlsx
  detikscraper scrape -k pemilu -p 10 -f json -o ./exports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape()
	},
}

func init() {
	flags := scrapeCmd.Flags()
	flags.StringVarP(&scrapeKeyword, "keyword", "k", "", "Search keyword (required)")
	flags.IntVarP(&scrapePages, "pages", "p", 1, "Number of result pages to scrape")
	flags.IntVar(&scrapeStartPage, "start-page", 1, "First result page")
	flags.StringVarP(&scrapeFormat, "format", "f", "", "Export format: csv, xlsx or json (default from config)")
	flags.StringVarP(&scrapeOutput, "output", "o", "", "Output directory (default from config)")
	flags.IntVar(&scrapePreviewRows, "preview", tui.DefaultPreviewRows, "Number of articles to preview, 0 to disable")
	flags.IntVar(&scrapeWidth, "width", 100, "Preview table width")
	_ = scrapeCmd.MarkFlagRequired("keyword")
}

func runScrape() error {
	format := cfg.DefaultFormat
	if scrapeFormat != "" {
		f, err := export.ParseFormat(scrapeFormat)
		if err != nil {
			return err
		}
		format = f
	}

	outputDir := cfg.OutputDir
	if scrapeOutput != "" {
		outputDir = scrapeOutput
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service := detikscraper.NewServiceFromConfig(cfg)
	outcome, err := service.Scrape(ctx, detikscraper.Request{
		Keyword:   scrapeKeyword,
		Pages:     scrapePages,
		StartPage: scrapeStartPage,
		Format:    format,
	})
	if err != nil {
		return err
	}

	path, err := outcome.Save(outputDir)
	if err != nil {
		return err
	}

	result := outcome.Result
	fmt.Println(tui.StatusStyle.Render(fmt.Sprintf("✓ %d article(s) from %d page(s)", result.Len(), len(result.Pages))))
	for _, pageErr := range result.Errors {
		fmt.Println(tui.WarningStyle.Render(fmt.Sprintf("Skipped page %d: %v", pageErr.Page, pageErr.Err)))
	}
	fmt.Println(tui.InfoStyle.Render("Saved to " + path))

	if scrapePreviewRows > 0 {
		fmt.Println()
		fmt.Println(tui.FormatPreview(result.Articles, scrapePreviewRows, scrapeWidth))
	}

	return nil
}

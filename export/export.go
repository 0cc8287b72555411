// Package export serializes scraped articles to downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/pevans/detikscraper/scraper"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written to XLSX exports.
const SheetName = "Articles"

// ErrUnknownFormat is returned for formats other than CSV, JSON and XLSX.
var ErrUnknownFormat = errors.New("unknown export format")

// ExportError describes a failure to serialize articles.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %q: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Export encodes articles in the given format. An empty slice still produces
// a valid file holding only the header or schema.
func Export(articles []scraper.Article, f Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch f {
	case CSV:
		data, err = encodeCSV(articles)
	case JSON:
		data, err = encodeJSON(articles)
	case XLSX:
		data, err = encodeXLSX(articles)
	default:
		return nil, &ExportError{Format: f.name, Err: ErrUnknownFormat}
	}

	if err != nil {
		return nil, &ExportError{Format: f.name, Err: err}
	}
	return data, nil
}

// encodeCSV writes a header row followed by one row per article.
func encodeCSV(articles []scraper.Article) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(scraper.Header()); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, article := range articles {
		if err := w.Write(article.Row()); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// encodeJSON writes an array of article objects.
func encodeJSON(articles []scraper.Article) ([]byte, error) {
	if articles == nil {
		articles = []scraper.Article{}
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// encodeXLSX writes a single worksheet with a header row and one row per
// article.
func encodeXLSX(articles []scraper.Article) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	if err := setRow(f, 1, scraper.Header()); err != nil {
		return nil, err
	}
	for i, article := range articles {
		if err := setRow(f, i+2, article.Row()); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// setRow writes values to the given 1-based row of the articles sheet.
func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}

	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}

	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// FileName builds the download name for an export, e.g.
// "20250120_101500_banjir_2.csv".
func FileName(keyword string, pages int, f Format, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d.%s", at.Format("20060102_150405"), slug(keyword), pages, f.Extension())
}

// slug makes a keyword safe for use in a file name.
func slug(keyword string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(keyword) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && b.Len() > 0 {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}

	s := strings.TrimSuffix(b.String(), "_")
	if s == "" {
		return "scrape"
	}
	return s
}

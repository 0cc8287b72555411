package export

import (
	"fmt"
	"strings"
)

// Format is an export format. The only valid values are CSV, JSON and XLSX;
// other packages cannot construct a Format of their own, and the zero value
// is rejected by Export.
type Format struct {
	name string
}

var (
	CSV  = Format{name: "csv"}
	JSON = Format{name: "json"}
	XLSX = Format{name: "xlsx"}
)

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{CSV, XLSX, JSON}
}

// ParseFormat converts a format name such as "csv", "XLSX" or ".json" into a
// Format.
func ParseFormat(name string) (Format, error) {
	normalized := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	for _, f := range Formats() {
		if f.name == normalized {
			return f, nil
		}
	}
	return Format{}, &ExportError{Format: name, Err: ErrUnknownFormat}
}

// IsValid reports whether f is one of the supported formats.
func (f Format) IsValid() bool {
	return f == CSV || f == JSON || f == XLSX
}

// String returns the display name, e.g. "CSV".
func (f Format) String() string {
	if !f.IsValid() {
		return "unknown"
	}
	return strings.ToUpper(f.name)
}

// Extension returns the file extension without the leading dot.
func (f Format) Extension() string {
	return f.name
}

// MIMEType returns the content type used when serving the export.
func (f Format) MIMEType() string {
	switch f {
	case CSV:
		return "text/csv"
	case JSON:
		return "application/json"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, &ExportError{Format: f.name, Err: ErrUnknownFormat}
	}
	return []byte(f.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return fmt.Errorf("failed to parse format: %w", err)
	}
	*f = parsed
	return nil
}

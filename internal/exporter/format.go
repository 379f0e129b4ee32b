package exporter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for a format other than csv or xlsx
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat resolves a case-insensitive format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType is the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename is the download name for a table in this format
func (f Format) Filename(table domain.Table) string {
	return table.ChartID() + "." + string(f)
}

// Write encodes table to w in the given format
func Write(w io.Writer, format Format, table domain.Table) error {
	switch format {
	case FormatCSV:
		return WriteTableCSV(w, table, true)
	case FormatXLSX:
		return WriteTableXLSX(w, table)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// Required dataset columns
const (
	ColumnTitle       = "title"
	ColumnType        = "type"
	ColumnReleaseDate = "release_date"
	ColumnGenres      = "genres"
	ColumnCountry     = "country"
	ColumnIMDbScore   = "imdb_score"
	ColumnIMDbVotes   = "imdb_votes"
	ColumnClose       = "close"
	ColumnVolatility  = "volatility"
)

// RequiredColumns lists every header the loader needs, in reporting order
var RequiredColumns = []string{
	ColumnTitle,
	ColumnType,
	ColumnReleaseDate,
	ColumnGenres,
	ColumnCountry,
	ColumnIMDbScore,
	ColumnIMDbVotes,
	ColumnClose,
	ColumnVolatility,
}

// cancellation is checked once per this many rows
const cancelCheckInterval = 1000

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader reads the merged dataset from disk
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a dataset loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger: infrastructure.WithComponent(logger, "dataset_loader"),
	}
}

// LoadDataset reads the dataset at path with a default loader
func LoadDataset(path string) ([]domain.ContentRecord, error) {
	return NewLoader(nil).Load(context.Background(), path)
}

// Load reads the dataset at path. Files ending in .xlsx are read through
// excelize, anything else as comma-delimited text.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.ContentRecord, error) {
	start := time.Now()

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSXRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}

	records, err := l.parseRows(ctx, path, rows)
	if err != nil {
		l.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("rows", len(records)),
		slog.Duration("duration", time.Since(start)))

	return records, nil
}

// readCSVRows reads every row of a delimited text file, stripping a UTF-8 BOM
func readCSVRows(path string) ([][]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

// parseRows maps the header and converts every data row into a record
func (l *Loader) parseRows(ctx context.Context, path string, rows [][]string) ([]domain.ContentRecord, error) {
	if len(rows) == 0 {
		return nil, &DataLoadError{Path: path, Err: fmt.Errorf("file is empty")}
	}

	cols, err := findColumnIndices(rows[0])
	if err != nil {
		return nil, &DataLoadError{Path: path, Column: err.column, Err: ErrMissingColumn}
	}

	records := make([]domain.ContentRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &DataLoadError{Path: path, Err: err}
			}
		}
		if isBlankRow(row) {
			continue
		}

		line := i + 2
		record, err := parseRecord(row, cols)
		if err != nil {
			err.Path = path
			err.Row = line
			return nil, err
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, &DataLoadError{Path: path, Err: ErrNoDataRows}
	}
	return records, nil
}

type columnIndices map[string]int

type missingColumnError struct {
	column string
}

func (e *missingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.column)
}

// findColumnIndices locates the required columns in the header row
func findColumnIndices(header []string) (columnIndices, *missingColumnError) {
	indices := make(columnIndices, len(RequiredColumns))
	for i, col := range header {
		name := normalizeHeader(col)
		if _, seen := indices[name]; !seen {
			indices[name] = i
		}
	}

	for _, required := range RequiredColumns {
		if _, ok := indices[required]; !ok {
			return nil, &missingColumnError{column: required}
		}
	}
	return indices, nil
}

// normalizeHeader strips BOM and zero-width characters and lowercases the name
func normalizeHeader(col string) string {
	clean := strings.TrimSpace(col)
	clean = strings.TrimLeft(clean, "\u200B\u200C\u200D\u2060\uFEFF")
	clean = strings.TrimSpace(clean)
	clean = strings.ToLower(clean)
	return strings.ReplaceAll(clean, " ", "_")
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, cols columnIndices, name string) string {
	idx := cols[name]
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRecord converts one data row. The returned error carries the column only.
func parseRecord(row []string, cols columnIndices) (domain.ContentRecord, *DataLoadError) {
	record := domain.ContentRecord{
		Title:   cell(row, cols, ColumnTitle),
		Type:    domain.ContentType(cell(row, cols, ColumnType)),
		Genres:  cell(row, cols, ColumnGenres),
		Country: cell(row, cols, ColumnCountry),
	}

	if raw := cell(row, cols, ColumnReleaseDate); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return record, &DataLoadError{Column: ColumnReleaseDate, Err: fmt.Errorf("%w: %q", ErrInvalidDate, raw)}
		}
		record = record.WithReleaseDate(date)
	}

	var err error
	floats := []struct {
		column string
		target *float64
	}{
		{ColumnIMDbScore, &record.IMDbScore},
		{ColumnClose, &record.Close},
		{ColumnVolatility, &record.Volatility},
	}
	for _, f := range floats {
		if *f.target, err = parseOptionalFloat(cell(row, cols, f.column)); err != nil {
			return record, &DataLoadError{Column: f.column, Err: err}
		}
	}

	if record.IMDbVotes, err = parseVotes(cell(row, cols, ColumnIMDbVotes)); err != nil {
		return record, &DataLoadError{Column: ColumnIMDbVotes, Err: err}
	}

	return record, nil
}

// parseDate tries the date layouts seen in exported stock and catalog files
func parseDate(dateStr string) (time.Time, error) {
	dateFormats := []string{
		"2006-01-02",          // ISO format
		"2006-01-02 15:04:05", // With time
		time.RFC3339,          // Timestamp with zone
		"2006-01-02T15:04:05", // Timestamp without zone
		"01/02/2006",          // US format
		"1/2/2006",            // US format without padding
		"2006/01/02",          // Alternative ISO
		"January 2, 2006",     // Long form used by catalog exports
	}

	for _, format := range dateFormats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// parseOptionalFloat returns NaN for an empty cell
func parseOptionalFloat(str string) (float64, error) {
	if str == "" || strings.EqualFold(str, "nan") {
		return math.NaN(), nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(str, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, str)
	}
	return value, nil
}

// parseVotes accepts integer or float notation with optional thousands separators
func parseVotes(str string) (int64, error) {
	if str == "" || strings.EqualFold(str, "nan") {
		return 0, nil
	}
	clean := strings.ReplaceAll(str, ",", "")
	if votes, err := strconv.ParseInt(clean, 10, 64); err == nil {
		return votes, nil
	}
	value, err := strconv.ParseFloat(clean, 64)
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if err != nil || math.IsNaN(value) || value >= math.MaxInt64 || value < math.MinInt64 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, str)
	}
	return int64(value), nil
}

package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// sheet names are capped at 31 characters
const maxSheetName = 31

// XLSXWriter exports chart tables as single-sheet workbooks
type XLSXWriter struct {
	outDir string
	logger *slog.Logger
}

// NewXLSXWriter creates a workbook writer that places files under outDir
func NewXLSXWriter(outDir string, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{
		outDir: outDir,
		logger: infrastructure.WithComponent(logger, "xlsx_exporter"),
	}
}

// ExportTable writes table to <outDir>/<chart id>.xlsx and returns the path
func (w *XLSXWriter) ExportTable(table domain.Table) (string, error) {
	path := filepath.Join(w.outDir, FormatXLSX.Filename(table))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteTableXLSX(file, table); err != nil {
		return "", err
	}

	w.logger.Info("workbook written",
		slog.String("chart", table.ChartID()),
		slog.String("path", path),
		slog.Int("rows", table.Len()))
	return path, nil
}

// WriteTableXLSX writes the table as a workbook whose only sheet is named
// after the chart. Cells that parse as numbers are stored as numbers and
// empty cells are left blank.
func WriteTableXLSX(out io.Writer, table domain.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(table.ChartID())
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	stream, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet stream: %w", err)
	}

	columns := table.Columns()
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := stream.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i, err)
		}
		if err := stream.SetRow(cell, cellValues(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := stream.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SheetName trims a chart id to the sheet name limit
func SheetName(id string) string {
	if len(id) > maxSheetName {
		return id[:maxSheetName]
	}
	return id
}

func cellValues(row []string) []interface{} {
	values := make([]interface{}, len(row))
	for i, s := range row {
		if s == "" {
			values[i] = nil
			continue
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
			values[i] = v
			continue
		}
		values[i] = s
	}
	return values
}

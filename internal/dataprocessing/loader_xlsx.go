package dataprocessing

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSXRows reads the first sheet that carries a title column
func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		if len(rows) > 0 && hasTitleColumn(rows[0]) {
			return rows, nil
		}
	}

	// Fall back to the first sheet so the header check reports the missing columns
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func hasTitleColumn(header []string) bool {
	for _, col := range header {
		if normalizeHeader(col) == ColumnTitle {
			return true
		}
	}
	return false
}

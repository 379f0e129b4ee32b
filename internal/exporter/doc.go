// Package exporter writes chart tables to disk or to a response body.
//
// CSVWriter handles comma-separated output with an optional UTF-8 BOM for
// Excel compatibility, and supports streaming for long tables.
//
// XLSXWriter produces a single-sheet workbook through excelize, storing
// numeric cells as numbers so spreadsheets can chart them directly.
//
// Example usage:
//
//	csvWriter := exporter.NewCSVWriter("exports", logger)
//	path, err := csvWriter.ExportTable(table)
//
//	// or stream straight into an http.ResponseWriter
//	err = exporter.Write(w, exporter.FormatXLSX, table)
package exporter

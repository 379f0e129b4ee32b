package dataprocessing

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn indicates a required header is absent
	ErrMissingColumn = errors.New("missing required column")

	// ErrNoDataRows indicates the file has a header but no records
	ErrNoDataRows = errors.New("dataset has no data rows")

	// ErrInvalidDate indicates a non-empty date that matches no known layout
	ErrInvalidDate = errors.New("unparseable date")

	// ErrInvalidNumber indicates a malformed numeric cell
	ErrInvalidNumber = errors.New("malformed number")
)

// DataLoadError is returned for any failure while loading the dataset.
// Row is the 1-based line in the source file (the header is line 1), zero when
// the failure is not tied to a row.
type DataLoadError struct {
	Path   string
	Row    int
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("failed to load dataset %s: line %d, column %q: %v", e.Path, e.Row, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("failed to load dataset %s: column %q: %v", e.Path, e.Column, e.Err)
	default:
		return fmt.Sprintf("failed to load dataset %s: %v", e.Path, e.Err)
	}
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// IsDataLoadError reports whether err is or wraps a *DataLoadError
func IsDataLoadError(err error) bool {
	var loadErr *DataLoadError
	return errors.As(err, &loadErr)
}

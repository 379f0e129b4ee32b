package services

import "errors"

// Dashboard service errors
var (
	// Chart errors
	ErrChartNotFound = errors.New("chart not found")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// Build errors
	ErrDashboardNotReady = errors.New("dashboard not built yet")
	ErrNoAnalyses        = errors.New("no analyses registered")
)

// Package analytics holds the pure derived-metric functions the chart
// analyses are built from: quality flags, yearly grouping, percentage change,
// trailing rolling means, calendar resampling, least-squares trends and
// Pearson correlation.
//
// Degenerate input is never an error. Functions return NaN (or an undefined
// TrendResult) when there is not enough data, and callers format those values
// as placeholders.
package analytics

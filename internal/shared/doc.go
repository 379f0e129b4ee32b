// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides a capturing slog handler so tests can
// assert on what components log without parsing JSON output.
package shared

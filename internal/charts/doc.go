// Package charts turns the immutable dataset Snapshot into the twelve
// chart-ready tables of the dashboard.
//
// Every analysis is a pure function of the snapshot and is registered under a
// fixed ID in a Registry. The registry carries the page order together with
// the section, title and narrative text of each chart, and Validate checks at
// startup that every listed ID resolves. Analyses share no mutable state and
// may run concurrently; the only randomness is the hit-show timestamp jitter,
// which comes from an injected source.
package charts

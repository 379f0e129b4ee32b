// Package services holds the business logic between the HTTP handlers and
// the chart computations.
//
// # Available Services
//
//	- DashboardService: builds every chart table from one dataset snapshot,
//	  renders the SVGs and the page, and serves exports from the cache
//	- HealthService: liveness, readiness and version reporting
//
// # Error Handling
//
// Services return *errors.AppError values carrying a type and a stable code
// so handlers can map them to problem responses without importing this
// package's sentinels:
//
//	chart_not_found        -> 404
//	invalid_export_format  -> 400
//	service_unavailable    -> 503
//
// The sentinels in errors.go stay reachable through errors.Is.
//
// # Concurrency
//
// Build computes the charts on an errgroup and swaps the finished set in
// under a write lock. Readers only ever see a complete build.
package services

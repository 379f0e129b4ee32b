// Package http implements the HTTP handlers for the dashboard server. It is
// a thin layer between the chi router and the services: handlers parse and
// validate the request, call a service and render the result.
//
// # Routes
//
//	GET /                                  assembled dashboard page
//	GET /api/dashboard                     dataset and build summary
//	GET /api/charts                        chart listing in page order
//	GET /api/charts/{id}                   chart table as JSON
//	GET /api/charts/{id}/svg               rendered chart
//	GET /api/charts/{id}/export?format=    csv or xlsx download
//	GET /api/health[/ready|/live]          health checks
//	GET /api/version                       build information
//	GET /metrics                           Prometheus exposition
//
// # Error Handling
//
// Every failure goes through errors.ErrorHandler and is rendered as an
// RFC 7807 problem document. Service errors carry their HTTP mapping in the
// AppError type and code, so handlers never inspect sentinels themselves.
//
// # Testing
//
// Handlers depend on ChartServiceInterface and are tested against a
// testify mock with httptest.
package http

// Package app wires the dashboard server together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from .env, environment variables and YAML
//	2. Initialize logging and OpenTelemetry (Prometheus exporter)
//	3. Create the chart registry, renderer, page assembler and services
//	4. Set up the chi router, middleware and handlers
//	5. Load the dataset and build every chart (fatal on failure)
//	6. Serve until SIGINT or SIGTERM, then shut down gracefully
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// # Error Handling
//
// Initialization errors are returned to the caller. The package never calls
// os.Exit, so main decides the exit code.
package app

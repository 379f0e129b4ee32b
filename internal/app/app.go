package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/charts"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/config"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dashboard"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dataprocessing"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/errors"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
	customMiddleware "github.com/Xin-10/Netflix-Data-Visualization/internal/middleware"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/services"
	handlers "github.com/Xin-10/Netflix-Data-Visualization/internal/transport/http"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/validation"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config           *config.Config
	Router           *chi.Mux
	Server           *http.Server
	Logger           *slog.Logger
	OTelProviders    *infrastructure.OTelProviders
	Metrics          *infrastructure.BusinessMetrics
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	DatasetPath      string

	loader    *dataprocessing.Loader
	validator *validation.FileValidator
	listener  net.Listener
	serveErr  chan error
}

// NewApplication loads configuration, initialises logging and wires the
// application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires an application from an already loaded configuration
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.GetFullVersionString()))

	datasetPath, err := cfg.DatasetPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset path: %w", err)
	}
	if paths, err := config.GetPaths(); err == nil {
		paths.LogPathResolution(logger, datasetPath)
	}

	otelCfg := infrastructure.OTelConfigFrom(cfg.Telemetry)
	otelProviders, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		DatasetPath:   datasetPath,
		loader:        dataprocessing.NewLoader(logger),
		validator:     validation.NewFileValidator(logger),
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	registry := charts.NewRegistry(
		charts.WithJitter(charts.NewRandomJitter(a.Config.Dashboard.JitterSeed)),
	)
	if err := registry.Validate(charts.DefaultOrder); err != nil {
		return fmt.Errorf("invalid chart registry: %w", err)
	}

	assembler, err := dashboard.NewAssembler(a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create page assembler: %w", err)
	}
	renderer := dashboard.NewRenderer(a.Config.Dashboard.ChartWidth, a.Config.Dashboard.ChartHeight, a.Logger)

	a.DashboardService = services.NewDashboardService(registry, renderer, assembler, a.Logger,
		services.WithMetrics(a.Metrics))
	a.HealthService = services.NewHealthService(a.DashboardService, a.DatasetPath, a.Logger)
	return nil
}

// setupRouter builds the chi router.
// Order: RequestID → RealIP → logging/recovery → OTel → security → CORS → rate limit → timeout → compress
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := errors.NewErrorHandler(a.Logger, false)

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StripSlashes)
	r.Use(errors.NewErrorMiddleware(errorHandler, a.Logger).Handler)

	// metrics are scraped outside the traced group
	r.Method(http.MethodGet, config.MetricsEndpoint, handlers.NewMetricsHandler(a.OTelProviders))

	r.Group(func(r chi.Router) {
		otelMiddleware, err := customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics)
		if err != nil {
			a.Logger.Error("Failed to create OpenTelemetry middleware", slog.String("error", err.Error()))
		} else {
			r.Use(otelMiddleware.Handler)
		}

		r.Use(customMiddleware.DefaultSecureHeaders().Handler)
		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
			}))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}
		r.Use(customMiddleware.Timeout(a.Config.Server.WriteTimeout))
		r.Use(customMiddleware.Compress(5))

		pageHandler := handlers.NewPageHandler(a.DashboardService, a.Logger, errorHandler)
		chartHandler := handlers.NewChartHandler(a.DashboardService, a.Logger, errorHandler)
		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

		r.Get("/", pageHandler.Page)
		r.Get(config.DashboardEndpoint, pageHandler.Info)
		r.Get(config.VersionEndpoint, healthHandler.Version)
		r.Mount(config.HealthEndpoint, healthHandler.Routes())
		r.Mount(config.ChartsEndpoint, chartHandler.Routes())
	})

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// LoadDashboard reads the dataset and builds every chart. It is bounded by
// the dashboard build timeout.
func (a *Application) LoadDashboard(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Dashboard.BuildTimeout)
	defer cancel()

	if err := a.validator.ValidateDataset(a.DatasetPath); err != nil {
		return errors.NewDataLoadError("failed to load dataset", err).
			WithContext("path", a.DatasetPath)
	}

	records, err := a.loader.Load(ctx, a.DatasetPath)
	if err != nil {
		return errors.NewDataLoadError("failed to load dataset", err).
			WithContext("path", a.DatasetPath)
	}

	snap := dataprocessing.NewSnapshot(records, a.DatasetPath)
	if _, err := a.DashboardService.Build(ctx, snap); err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}
	return nil
}

// Start builds the dashboard and starts serving. A dataset that cannot be
// loaded is fatal.
func (a *Application) Start(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("name", config.AppName),
		slog.Int("port", a.Config.Server.Port),
		slog.String("dataset", a.DatasetPath),
		slog.String("level", a.Config.Logging.Level))

	if err := a.LoadDashboard(ctx); err != nil {
		return err
	}

	listener, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	a.listener = listener
	a.serveErr = make(chan error, 1)

	go func() {
		if err := a.Server.Serve(listener); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			a.serveErr <- err
		}
		close(a.serveErr)
	}()

	a.Logger.InfoContext(ctx, "Application started successfully",
		slog.String("address", "http://"+a.Addr()))
	return nil
}

// Addr is the address the server listens on once started
func (a *Application) Addr() string {
	if a.listener == nil {
		return a.Server.Addr
	}
	return a.listener.Addr().String()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted or the server fails
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx); err != nil {
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Received interrupt signal")
	case serveErr = <-a.serveErr:
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout+time.Second)
	defer cancel()
	if err := a.Stop(stopCtx); err != nil {
		return err
	}
	return serveErr
}

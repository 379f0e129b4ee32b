package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/charts"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dashboard"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/dataprocessing"
	apperrors "github.com/Xin-10/Netflix-Data-Visualization/internal/errors"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/exporter"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

// ChartResult is one computed and rendered chart
type ChartResult struct {
	Analysis charts.Analysis
	Table    domain.Table
	SVG      []byte
	Duration time.Duration
}

// ChartSummary describes a chart without its rows
type ChartSummary struct {
	ID          string   `json:"id"`
	Section     string   `json:"section"`
	Heading     string   `json:"heading"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
	Rows        int      `json:"rows"`
}

// ChartData is a chart summary together with its table. Table keeps typed
// values with undefined numbers as null; Data is the same table as text rows.
type ChartData struct {
	ChartSummary
	Table domain.Table `json:"table"`
	Data  [][]string   `json:"data"`
	Notes []string     `json:"notes,omitempty"`
}

// BuildInfo describes the dataset and build currently being served
type BuildInfo struct {
	Source   string        `json:"source"`
	Records  int           `json:"records"`
	Charts   int           `json:"charts"`
	LoadedAt time.Time     `json:"loaded_at"`
	BuiltAt  time.Time     `json:"built_at"`
	Duration time.Duration `json:"duration_ns"`
}

// ExportFile is an encoded chart table ready for download
type ExportFile struct {
	Format      exporter.Format
	Filename    string
	ContentType string
	Data        []byte
}

type dashboardBuild struct {
	info    BuildInfo
	results []*ChartResult
	byID    map[charts.ID]*ChartResult
	page    []byte
}

// DashboardOption configures a DashboardService
type DashboardOption func(*DashboardService)

// WithMetrics records chart builds and exports on the given instruments
func WithMetrics(metrics *infrastructure.BusinessMetrics) DashboardOption {
	return func(s *DashboardService) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithWorkers bounds how many charts are computed at once
func WithWorkers(n int) DashboardOption {
	return func(s *DashboardService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// DashboardService builds all charts from a snapshot and serves the results
type DashboardService struct {
	registry  *charts.Registry
	renderer  *dashboard.Renderer
	assembler *dashboard.Assembler
	metrics   *infrastructure.BusinessMetrics
	workers   int
	logger    *slog.Logger

	mu    sync.RWMutex
	build *dashboardBuild
}

// NewDashboardService creates a dashboard service. Nothing is served until
// Build succeeds.
func NewDashboardService(registry *charts.Registry, renderer *dashboard.Renderer, assembler *dashboard.Assembler, logger *slog.Logger, opts ...DashboardOption) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &DashboardService{
		registry:  registry,
		renderer:  renderer,
		assembler: assembler,
		metrics:   infrastructure.NoopBusinessMetrics(),
		workers:   runtime.NumCPU(),
		logger:    infrastructure.WithComponent(logger, "dashboard_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build computes every registered chart from snap, renders it and assembles
// the page. The previous build keeps being served until the new one is
// complete; a failed build leaves it in place.
func (s *DashboardService) Build(ctx context.Context, snap *dataprocessing.Snapshot) (BuildInfo, error) {
	if snap == nil {
		return BuildInfo{}, fmt.Errorf("dataset snapshot is required")
	}

	analyses := s.registry.Ordered()
	if len(analyses) == 0 {
		return BuildInfo{}, ErrNoAnalyses
	}
	ids := make([]charts.ID, len(analyses))
	for i, a := range analyses {
		ids[i] = a.ID
	}
	if err := s.registry.Validate(ids); err != nil {
		return BuildInfo{}, fmt.Errorf("invalid chart registry: %w", err)
	}

	start := time.Now()
	s.logger.InfoContext(ctx, "building dashboard",
		slog.String("source", snap.Source()),
		slog.Int("records", snap.Len()),
		slog.Int("charts", len(analyses)),
		slog.Int("workers", s.workers))

	results := make([]*ChartResult, len(analyses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, a := range analyses {
		i, a := i, a
		g.Go(func() error {
			result, err := s.buildChart(gctx, snap, a)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "dashboard build failed", slog.String("error", err.Error()))
		infrastructure.RecordError(ctx, err)
		return BuildInfo{}, fmt.Errorf("failed to build dashboard: %w", err)
	}

	entries := make([]dashboard.Entry, len(results))
	byID := make(map[charts.ID]*ChartResult, len(results))
	for i, r := range results {
		entries[i] = dashboard.Entry{
			ID:          string(r.Analysis.ID),
			Section:     r.Analysis.Section,
			Heading:     r.Analysis.Heading(),
			Description: r.Analysis.Description,
			SVG:         r.SVG,
			Notes:       dashboard.Notes(r.Table),
		}
		byID[r.Analysis.ID] = r
	}

	page, err := s.assembler.Assemble(ctx, entries)
	if err != nil {
		return BuildInfo{}, fmt.Errorf("failed to assemble page: %w", err)
	}

	info := BuildInfo{
		Source:   snap.Source(),
		Records:  snap.Len(),
		Charts:   len(results),
		LoadedAt: snap.LoadedAt(),
		BuiltAt:  time.Now(),
		Duration: time.Since(start),
	}

	s.mu.Lock()
	s.build = &dashboardBuild{info: info, results: results, byID: byID, page: page}
	s.mu.Unlock()

	s.metrics.DatasetRows.Record(ctx, int64(snap.Len()))
	s.logger.InfoContext(ctx, "dashboard built",
		slog.Int("charts", info.Charts),
		slog.Int("page_bytes", len(page)),
		slog.Duration("duration", info.Duration))
	return info, nil
}

func (s *DashboardService) buildChart(ctx context.Context, snap *dataprocessing.Snapshot, a charts.Analysis) (*ChartResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	table, err := a.Produce(snap)
	duration := time.Since(start)
	rows := 0
	if table != nil {
		rows = table.Len()
	}
	infrastructure.RecordChartBuild(ctx, s.metrics, string(a.ID), duration, rows, err)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s: %w", a.ID, err)
	}

	svg, err := s.renderer.Render(ctx, a.Title, table)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", a.ID, err)
	}

	s.logger.DebugContext(ctx, "chart built",
		slog.String("chart", string(a.ID)),
		slog.Int("rows", rows),
		slog.Duration("duration", duration))

	return &ChartResult{Analysis: a, Table: table, SVG: svg, Duration: duration}, nil
}

// Ready reports whether a build is being served
func (s *DashboardService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.build != nil
}

// Info describes the build currently served
func (s *DashboardService) Info(ctx context.Context) (BuildInfo, error) {
	b, err := s.current()
	if err != nil {
		return BuildInfo{}, err
	}
	return b.info, nil
}

// List returns a summary of every chart in page order
func (s *DashboardService) List(ctx context.Context) ([]ChartSummary, error) {
	b, err := s.current()
	if err != nil {
		return nil, err
	}
	out := make([]ChartSummary, len(b.results))
	for i, r := range b.results {
		out[i] = summarize(r)
	}
	return out, nil
}

// Chart returns one chart's summary and rows
func (s *DashboardService) Chart(ctx context.Context, id string) (ChartData, error) {
	r, err := s.lookup(id)
	if err != nil {
		return ChartData{}, err
	}
	return ChartData{
		ChartSummary: summarize(r),
		Table:        r.Table,
		Data:         r.Table.Rows(),
		Notes:        dashboard.Notes(r.Table),
	}, nil
}

// Table returns the computed table behind a chart
func (s *DashboardService) Table(ctx context.Context, id string) (domain.Table, error) {
	r, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return r.Table, nil
}

// SVG returns a chart's rendered image
func (s *DashboardService) SVG(ctx context.Context, id string) ([]byte, error) {
	r, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return r.SVG, nil
}

// Page returns the assembled dashboard page
func (s *DashboardService) Page(ctx context.Context) ([]byte, error) {
	b, err := s.current()
	if err != nil {
		return nil, err
	}
	return b.page, nil
}

// Export encodes one chart table as csv or xlsx
func (s *DashboardService) Export(ctx context.Context, id, format string) (*ExportFile, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	r, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := exporter.Write(&buf, f, r.Table); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to encode %s as %s", id, f), err).
			WithCode("export_failed")
	}

	infrastructure.RecordExport(ctx, s.metrics, id, string(f))
	s.logger.InfoContext(ctx, "chart exported",
		slog.String("chart", id),
		slog.String("format", string(f)),
		slog.Int("bytes", buf.Len()))

	return &ExportFile{
		Format:      f,
		Filename:    f.Filename(r.Table),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

type tableExporter interface {
	ExportTable(table domain.Table) (string, error)
}

// ExportAll writes every chart table to outDir and returns the file paths
// in page order
func (s *DashboardService) ExportAll(ctx context.Context, outDir, format string) ([]string, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	b, err := s.current()
	if err != nil {
		return nil, err
	}

	var w tableExporter
	switch f {
	case exporter.FormatXLSX:
		w = exporter.NewXLSXWriter(outDir, s.logger)
	default:
		w = exporter.NewCSVWriter(outDir, s.logger)
	}

	paths := make([]string, 0, len(b.results))
	for _, r := range b.results {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path, err := w.ExportTable(r.Table)
		if err != nil {
			return paths, apperrors.NewStorageError(fmt.Sprintf("failed to export %s", r.Analysis.ID), err).
				WithCode("export_failed").
				WithContext("dir", outDir)
		}
		infrastructure.RecordExport(ctx, s.metrics, string(r.Analysis.ID), string(f))
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *DashboardService) current() (*dashboardBuild, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.build == nil {
		return nil, apperrors.NewUnavailableError("dashboard is still being built", ErrDashboardNotReady)
	}
	return s.build, nil
}

func (s *DashboardService) lookup(id string) (*ChartResult, error) {
	b, err := s.current()
	if err != nil {
		return nil, err
	}
	chartID, err := charts.ParseID(id)
	if err != nil {
		return nil, chartNotFound(id)
	}
	r, ok := b.byID[chartID]
	if !ok {
		return nil, chartNotFound(id)
	}
	return r, nil
}

func chartNotFound(id string) error {
	return apperrors.NewNotFoundError("chart_not_found", fmt.Sprintf("chart %q", id), ErrChartNotFound).
		WithContext("chart_id", id)
}

func parseFormat(format string) (exporter.Format, error) {
	f, err := exporter.ParseFormat(format)
	if err != nil {
		return "", apperrors.NewAppValidationError("invalid_export_format",
			fmt.Sprintf("unsupported export format %q, expected csv or xlsx", format),
			fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)).
			WithContext("format", format)
	}
	return f, nil
}

func summarize(r *ChartResult) ChartSummary {
	return ChartSummary{
		ID:          string(r.Analysis.ID),
		Section:     r.Analysis.Section,
		Heading:     r.Analysis.Heading(),
		Title:       r.Analysis.Title,
		Description: r.Analysis.Description,
		Columns:     r.Table.Columns(),
		Rows:        r.Table.Len(),
	}
}

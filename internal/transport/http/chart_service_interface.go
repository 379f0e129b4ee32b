package http

import (
	"context"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/services"
)

// ChartServiceInterface defines the dashboard operations the handlers need
type ChartServiceInterface interface {
	Info(ctx context.Context) (services.BuildInfo, error)
	List(ctx context.Context) ([]services.ChartSummary, error)
	Chart(ctx context.Context, id string) (services.ChartData, error)
	SVG(ctx context.Context, id string) ([]byte, error)
	Page(ctx context.Context) ([]byte, error)
	Export(ctx context.Context, id, format string) (*services.ExportFile, error)
}

package http

import (
	"net/http"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
)

// MetricsHandler exposes the Prometheus registry behind the OTel exporter
type MetricsHandler struct {
	exposition http.Handler
}

// NewMetricsHandler creates a metrics handler. Without providers the
// endpoint answers 404.
func NewMetricsHandler(providers *infrastructure.OTelProviders) *MetricsHandler {
	h := &MetricsHandler{exposition: http.NotFoundHandler()}
	if providers != nil && providers.PrometheusHTTP != nil {
		h.exposition = providers.PrometheusHTTP
	}
	return h
}

// ServeHTTP handles GET /metrics
func (h *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.exposition.ServeHTTP(w, r)
}

package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "github.com/Xin-10/Netflix-Data-Visualization/internal/errors"
	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
	appmw "github.com/Xin-10/Netflix-Data-Visualization/internal/middleware"
)

// maxChartIDLength bounds the {id} path parameter before it reaches the service
const maxChartIDLength = 64

// exportQuery is the query string accepted by the export endpoint
type exportQuery struct {
	Format string `query:"format" validate:"required,oneof=csv xlsx"`
}

// ChartHandler serves chart tables, images and exports with RFC 7807 errors
type ChartHandler struct {
	service      ChartServiceInterface
	validator    *appmw.QueryValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service ChartServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	return &ChartHandler{
		service:      service,
		validator:    appmw.NewQueryValidator(),
		logger:       infrastructure.WithComponent(logger, "chart_handler"),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/", h.List)

	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.ChartCtx)
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/", h.Get)
		r.Get("/svg", h.SVG)
		r.Get("/export", h.Export)
	})

	return r
}

// ChartCtx rejects chart ids that cannot name a chart
func (h *ChartHandler) ChartCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" || len(id) > maxChartIDLength {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("id", "chart id must be 1-64 characters"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// List handles GET /api/charts
func (h *ChartHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   list,
		"count":  len(list),
	})
}

// Get handles GET /api/charts/{id}
func (h *ChartHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Chart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

// SVG handles GET /api/charts/{id}/svg
func (h *ChartHandler) SVG(w http.ResponseWriter, r *http.Request) {
	svg, err := h.service.SVG(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}

// Export handles GET /api/charts/{id}/export?format=csv|xlsx
func (h *ChartHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var q exportQuery
	fieldErrs, err := h.validator.Bind(r.URL.Query(), &q)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	if len(fieldErrs) > 0 {
		h.errorHandler.HandleError(w, r,
			apierrors.NewAppValidationError("invalid_export_format", fieldErrs[0].Message, nil).
				WithContext("errors", fieldErrs))
		return
	}

	file, err := h.service.Export(r.Context(), id, q.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "serving export",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("chart", id),
		slog.String("format", string(file.Format)),
		slog.Int("bytes", len(file.Data)),
	)

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+file.Filename+"\"")
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

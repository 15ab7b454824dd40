package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/boqworks/boqworks/internal/boq"
	"github.com/boqworks/boqworks/internal/observability"
	"github.com/boqworks/boqworks/internal/platform/httpx"
	"github.com/boqworks/boqworks/report"
)

// Handler serves CSV and PDF downloads of a project.
type Handler struct {
	logger  *slog.Logger
	service *boq.Service
	pdf     *report.Client
	metrics *observability.Metrics
}

// NewHandler constructs Handler. pdf may be nil when no Gotenberg
// endpoint is configured; the PDF route then responds 503.
func NewHandler(logger *slog.Logger, service *boq.Service, pdf *report.Client, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, service: service, pdf: pdf, metrics: metrics}
}

// MountRoutes attaches export routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/projects/{id}/export.csv", h.CSV)
	r.Get("/projects/{id}/export.pdf", h.PDF)
}

func (h *Handler) CSV(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", project.Name+".csv"))
	if err := WriteCSV(w, project); err != nil {
		// Headers are already out; all we can do is log.
		h.logger.Error("stream csv", slog.Any("error", err))
		return
	}
	h.metrics.ObserveExport("csv")
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	project, ok := h.loadProject(w, r)
	if !ok {
		return
	}

	pdf, err := RenderPDF(r.Context(), h.pdf, project)
	if err != nil {
		h.logger.Error("render pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Export Unavailable", "pdf rendering failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", project.Name+".pdf"))
	if _, err := w.Write(pdf); err != nil {
		h.logger.Error("write pdf", slog.Any("error", err))
		return
	}
	h.metrics.ObserveExport("pdf")
}

func (h *Handler) loadProject(w http.ResponseWriter, r *http.Request) (*boq.Project, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid project id")
		return nil, false
	}
	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, boq.ErrNotFound) {
			httpx.RespondError(w, httpx.ErrNotFound)
		} else {
			h.logger.Error("load project for export", slog.Any("error", err))
			httpx.RespondError(w, err)
		}
		return nil, false
	}
	return project, true
}

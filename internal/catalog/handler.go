package catalog

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/boqworks/boqworks/internal/platform/httpx"
)

// PriceRefreshEnqueuer fans a price change out to stored project items.
type PriceRefreshEnqueuer interface {
	EnqueuePriceRefresh(ctx context.Context, materialID string, priceUSD, priceZWG float64) error
}

// Handler serves catalog endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	enqueuer PriceRefreshEnqueuer
	validate *validator.Validate
}

// NewHandler constructs Handler. enqueuer may be nil when no worker is
// deployed; price updates then only affect newly generated items.
func NewHandler(logger *slog.Logger, service *Service, enqueuer PriceRefreshEnqueuer) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		enqueuer: enqueuer,
		validate: validator.New(),
	}
}

// MountRoutes attaches catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/materials", h.List)
	r.Get("/materials/{id}", h.Show)
	r.Post("/materials/{id}/price", h.UpdatePrice)
}

// List returns the effective catalog with its derived version.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Current(r.Context())
	if err != nil {
		h.logger.Error("load catalog", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"version":   cat.Version(),
		"materials": cat.Materials(),
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Current(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	m, ok := cat.Lookup(chi.URLParam(r, "id"))
	if !ok {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

type updatePriceRequest struct {
	PriceUSD float64 `json:"price_usd" validate:"gte=0"`
	PriceZWG float64 `json:"price_zwg" validate:"gte=0"`
}

// UpdatePrice stores a new average price and enqueues the fan-out that
// reconciles stored project items with the refreshed catalog.
func (h *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req updatePriceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	materialID := chi.URLParam(r, "id")
	m, err := h.service.UpdatePrice(r.Context(), materialID, req.PriceUSD, req.PriceZWG)
	if err != nil {
		h.logger.Error("update material price", slog.String("material", materialID), slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Update Failed", err.Error())
		return
	}

	if h.enqueuer != nil {
		if err := h.enqueuer.EnqueuePriceRefresh(r.Context(), materialID, req.PriceUSD, req.PriceZWG); err != nil {
			h.logger.Warn("enqueue price refresh", slog.String("material", materialID), slog.Any("error", err))
		}
	}

	httpx.JSON(w, http.StatusOK, m)
}

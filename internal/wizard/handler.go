package wizard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boqworks/boqworks/internal/platform/httpx"
)

// Handler serves wizard validation.
type Handler struct{}

// NewHandler constructs Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// MountRoutes attaches wizard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/validate", h.Validate)
}

type validateRequest struct {
	Step  Step  `json:"step"`
	State State `json:"state"`
}

// Validate checks one step's required fields and returns field errors
// plus a summary message. The endpoint never fails for incomplete
// input; incompleteness is its output.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	httpx.JSON(w, http.StatusOK, ValidateStep(req.Step, req.State))
}

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/retailos/internal/render"
	"github.com/georgemunganga/retailos/internal/tenant"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts GET /api/v1/stores/me on a router that already runs
// tenant.Middleware.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.With(tenant.RequireStore).Get("/api/v1/stores/me", h.getCurrentStore)
}

func (h *Handler) getCurrentStore(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())

	store, err := h.service.GetStore(r.Context(), storeID.String())
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, store)
}

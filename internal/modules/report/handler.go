package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/retailos/internal/render"
	"github.com/georgemunganga/retailos/internal/tenant"
)

// Handler exposes report HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Use(tenant.RequireStore)
		r.Get("/daily", h.daily)
		r.Get("/sellers", h.sellers)
	})
}

func (h *Handler) daily(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	stats, err := h.service.Daily(r.Context(), storeID)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, stats)
}

func (h *Handler) sellers(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	stats, err := h.service.Sellers(r.Context(), storeID)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, stats)
}

package employee

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/render"
	"github.com/georgemunganga/retailos/internal/tenant"
)

// Handler exposes employee HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/employees", func(r chi.Router) {
		r.Use(tenant.RequireStore)
		r.Get("/", h.list)     // GET  /api/v1/employees
		r.Post("/", h.add)     // POST /api/v1/employees
		r.Put("/{id}", h.edit) // PUT  /api/v1/employees/{id}
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	employees, err := h.service.List(r.Context(), storeID)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, employees)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, fmt.Errorf("%w: %v", apperror.ErrValidation, err))
		return
	}
	e, err := h.service.Add(r.Context(), storeID, req)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusCreated, e)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Error(w, fmt.Errorf("%w: invalid employee id", apperror.ErrValidation))
		return
	}
	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, fmt.Errorf("%w: %v", apperror.ErrValidation, err))
		return
	}
	req.ID = id
	if err := h.service.Edit(r.Context(), storeID, req); err != nil {
		render.Error(w, err)
		return
	}
	render.Success(w, http.StatusOK)
}

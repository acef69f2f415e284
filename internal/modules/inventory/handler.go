package inventory

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

// Handler exposes inventory HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Use(tenant.RequireStore)
		r.Get("/items", h.listItems)
		r.Post("/items", h.receive)
		r.Put("/items/{id}", h.editItem)
		r.Post("/items/{code}/restock", h.restock)
	})
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	items, err := h.service.ListItems(r.Context(), storeID)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, items)
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	var req ReceiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, fmt.Errorf("%w: %v", apperror.ErrValidation, err))
		return
	}
	item, err := h.service.Receive(r.Context(), storeID, req)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusCreated, item)
}

func (h *Handler) editItem(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Error(w, fmt.Errorf("%w: invalid item id", apperror.ErrValidation))
		return
	}
	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, fmt.Errorf("%w: %v", apperror.ErrValidation, err))
		return
	}
	req.ID = id
	if err := h.service.EditItem(r.Context(), storeID, req); err != nil {
		render.Error(w, err)
		return
	}
	render.Success(w, http.StatusOK)
}

func (h *Handler) restock(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	var body struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		render.Error(w, fmt.Errorf("%w: %v", apperror.ErrValidation, err))
		return
	}
	item, err := h.service.Restock(r.Context(), storeID, RestockRequest{Code: chi.URLParam(r, "code"), Qty: body.Qty})
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, item)
}

package shop

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/modules/auth"
	"github.com/georgemunganga/retailos/internal/modules/employee"
	"github.com/georgemunganga/retailos/internal/modules/inventory"
	"github.com/georgemunganga/retailos/internal/modules/pos"
	"github.com/georgemunganga/retailos/internal/render"
)

const maxBodyBytes = 1 << 20

type services struct {
	auth      auth.Service
	employees employee.Service
	inventory inventory.Service
	sales     pos.Service
}

// Handler serves the single-endpoint action protocol used by the browser
// client: GET returns the dashboard, POST runs one action.
type Handler struct {
	services  services
	dashboard http.Handler
}

func NewHandler(authSvc auth.Service, emp employee.Service, inv inventory.Service, sales pos.Service, dashboard http.Handler) *Handler {
	return &Handler{
		services:  services{auth: authSvc, employees: emp, inventory: inv, sales: sales},
		dashboard: dashboard,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/shop", h.dashboard.ServeHTTP)
	r.Post("/api/shop", h.dispatch)
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		render.Error(w, fmt.Errorf("%w: %v", apperror.ErrValidation, err))
		return
	}
	action, err := Decode(body)
	if err != nil {
		render.Error(w, err)
		return
	}
	result, err := action.run(r.Context(), &h.services)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, result)
}

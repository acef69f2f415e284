package auth

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/modules/user"
	"github.com/georgemunganga/retailos/internal/render"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/api/v1/stores/register", h.register)
	router.Post("/api/v1/stores/login", h.login)
}

// LoginRequest is the payload of the login endpoint and action.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, fmt.Errorf("%w: %v", apperror.ErrValidation, err))
		return
	}
	session, err := h.service.Register(r.Context(), req)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusCreated, session)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, fmt.Errorf("%w: %v", apperror.ErrValidation, err))
		return
	}
	session, err := h.service.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, session)
}

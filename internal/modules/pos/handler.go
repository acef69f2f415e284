package pos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/render"
	"github.com/georgemunganga/retailos/internal/tenant"
)

// Handler exposes POS HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/pos", func(r chi.Router) {
		r.Use(tenant.RequireStore)
		r.Post("/checkout", h.checkout)               // POST /api/v1/pos/checkout
		r.Get("/receipts", h.listReceipts)            // GET  /api/v1/pos/receipts?limit=50
		r.Get("/receipts/{receipt_id}", h.getReceipt) // GET  /api/v1/pos/receipts/{id}
		r.Get("/lines", h.listLines)                  // GET  /api/v1/pos/lines?limit=200
	})
}

// CheckoutResponse is the acknowledgement of a completed checkout.
type CheckoutResponse struct {
	Success   bool            `json:"success"`
	ReceiptID string          `json:"receiptId"`
	Change    decimal.Decimal `json:"change"`
	Receipt   *Receipt        `json:"receipt"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, fmt.Errorf("%w: %v", apperror.ErrValidation, err))
		return
	}
	receipt, err := h.service.Checkout(r.Context(), storeID, req)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusCreated, CheckoutResponse{
		Success:   true,
		ReceiptID: receipt.ReceiptID,
		Change:    receipt.Change(),
		Receipt:   receipt,
	})
}

func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	receipts, err := h.service.ListReceipts(r.Context(), storeID, queryLimit(r))
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, receipts)
}

func (h *Handler) getReceipt(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	receipt, err := h.service.GetReceipt(r.Context(), storeID, chi.URLParam(r, "receipt_id"))
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, receipt)
}

func (h *Handler) listLines(w http.ResponseWriter, r *http.Request) {
	storeID, _ := tenant.StoreFrom(r.Context())
	lines, err := h.service.ListLines(r.Context(), storeID, queryLimit(r))
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, lines)
}

// queryLimit returns ?limit= or 0, which lets the service pick its default.
func queryLimit(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 0 {
		return 0
	}
	if n > 1000 {
		return 1000
	}
	return n
}

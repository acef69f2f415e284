package dashboard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/modules/employee"
	"github.com/georgemunganga/retailos/internal/modules/inventory"
	"github.com/georgemunganga/retailos/internal/modules/pos"
	"github.com/georgemunganga/retailos/internal/modules/report"
	"github.com/georgemunganga/retailos/internal/render"
	"github.com/georgemunganga/retailos/internal/tenant"
)

var errUnauthorized = fmt.Errorf("%w: no store context", apperror.ErrUnauthorized)

// Dashboard is everything the client shows for a store, fetched in one call.
type Dashboard struct {
	Inventory    []*inventory.Item    `json:"inventory"`
	Employees    []*employee.Employee `json:"employees"`
	SalesList    []*pos.Receipt       `json:"salesList"`
	SalesDetails []*pos.SaleLine      `json:"salesDetails"`
	Reports      []*report.DailyStat  `json:"reports"`
	SellerStats  []*report.SellerStat `json:"sellerStats"`
}

// Service assembles a store's dashboard.
type Service interface {
	Get(ctx context.Context, storeID uuid.UUID) (*Dashboard, error)
}

type service struct {
	inventory inventory.Service
	employees employee.Service
	sales     pos.Service
	reports   report.Service
}

func NewService(inv inventory.Service, emp employee.Service, sales pos.Service, reports report.Service) Service {
	return &service{inventory: inv, employees: emp, sales: sales, reports: reports}
}

// Get runs the six reads concurrently; the first failure cancels the rest.
func (s *service) Get(ctx context.Context, storeID uuid.UUID) (*Dashboard, error) {
	d := &Dashboard{}
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() (err error) {
		d.Inventory, err = s.inventory.ListItems(ctx, storeID)
		return err
	})
	eg.Go(func() (err error) {
		d.Employees, err = s.employees.List(ctx, storeID)
		return err
	})
	eg.Go(func() (err error) {
		d.SalesList, err = s.sales.ListReceipts(ctx, storeID, pos.DefaultReceiptLimit)
		return err
	})
	eg.Go(func() (err error) {
		d.SalesDetails, err = s.sales.ListLines(ctx, storeID, pos.DefaultLineLimit)
		return err
	})
	eg.Go(func() (err error) {
		d.Reports, err = s.reports.Daily(ctx, storeID)
		return err
	})
	eg.Go(func() (err error) {
		d.SellerStats, err = s.reports.Sellers(ctx, storeID)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

// Handler exposes the dashboard endpoint.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(tenant.RequireStore).Get("/api/v1/dashboard", h.ServeHTTP)
}

// ServeHTTP writes the dashboard of the store in the request context.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	storeID, ok := tenant.StoreFrom(r.Context())
	if !ok {
		render.Error(w, errUnauthorized)
		return
	}
	d, err := h.service.Get(r.Context(), storeID)
	if err != nil {
		render.Error(w, err)
		return
	}
	render.JSON(w, http.StatusOK, d)
}

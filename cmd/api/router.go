package main

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/georgemunganga/retailos/internal/config"
	"github.com/georgemunganga/retailos/internal/database"
	"github.com/georgemunganga/retailos/internal/modules/auth"
	"github.com/georgemunganga/retailos/internal/modules/dashboard"
	"github.com/georgemunganga/retailos/internal/modules/employee"
	"github.com/georgemunganga/retailos/internal/modules/inventory"
	"github.com/georgemunganga/retailos/internal/modules/pos"
	"github.com/georgemunganga/retailos/internal/modules/report"
	"github.com/georgemunganga/retailos/internal/modules/schema"
	"github.com/georgemunganga/retailos/internal/modules/shop"
	"github.com/georgemunganga/retailos/internal/modules/user"
	"github.com/georgemunganga/retailos/internal/tenant"
)

func newRouter(db *sql.DB, dialect database.Dialect, schemas *schema.Manager, cfg *config.Config) chi.Router {
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(schemas.Middleware)
	router.Use(tenant.Middleware(issuer))

	// ── Stores & sessions ───────────────────────────────────
	userService := user.NewService(user.NewSQLRepository(db))
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userService, issuer)
	auth.NewHandler(authService).RegisterRoutes(router)

	employeeService := employee.NewService(employee.NewSQLRepository(db))
	employee.NewHandler(employeeService).RegisterRoutes(router)

	// ── Inventory & checkout ────────────────────────────────
	inventoryService := inventory.NewService(inventory.NewSQLRepository(db))
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	posService := pos.NewService(pos.NewSQLRepository(db), cfg.CheckoutRetries)
	pos.NewHandler(posService).RegisterRoutes(router)

	// ── Reporting ───────────────────────────────────────────
	reportService := report.NewService(report.NewSQLRepository(db, dialect))
	report.NewHandler(reportService).RegisterRoutes(router)

	dashboardHandler := dashboard.NewHandler(dashboard.NewService(inventoryService, employeeService, posService, reportService))
	dashboardHandler.RegisterRoutes(router)

	// ── Browser client action protocol ──────────────────────
	shop.NewHandler(authService, employeeService, inventoryService, posService, dashboardHandler).RegisterRoutes(router)

	return router
}

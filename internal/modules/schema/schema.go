package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/database"
)

// Manager creates the relations every module relies on.
type Manager struct {
	db      *sql.DB
	dialect database.Dialect
	ready   atomic.Bool
}

func NewManager(db *sql.DB, dialect database.Dialect) *Manager {
	return &Manager{db: db, dialect: dialect}
}

// Statements returns the DDL for the dialect. Every statement is idempotent.
func Statements(d database.Dialect) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			login         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			store_name    TEXT NOT NULL,
			created_at    %s NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, d.Timestamp),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS employees (
			id         %s,
			store_id   TEXT NOT NULL,
			name       TEXT NOT NULL,
			position   TEXT NOT NULL DEFAULT '',
			role       TEXT NOT NULL DEFAULT 'user',
			created_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, d.Serial, d.Timestamp),
		`CREATE INDEX IF NOT EXISTS idx_employees_store ON employees (store_id)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS inventory (
			id         %s,
			store_id   TEXT NOT NULL,
			code       TEXT NOT NULL,
			name       TEXT NOT NULL,
			price_buy  %s NOT NULL DEFAULT 0,
			price_sell %s NOT NULL DEFAULT 0,
			stock      INTEGER NOT NULL DEFAULT 0,
			updated_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (store_id, code)
		)`, d.Serial, d.Money, d.Money, d.Timestamp),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS sales (
			id          %s,
			store_id    TEXT NOT NULL,
			receipt_id  TEXT NOT NULL,
			code        TEXT NOT NULL,
			name        TEXT NOT NULL,
			price_buy   %s NOT NULL,
			price_sell  %s NOT NULL,
			qty         INTEGER NOT NULL,
			seller_name TEXT NOT NULL DEFAULT '',
			pay_cash    %s NOT NULL DEFAULT 0,
			pay_card    %s NOT NULL DEFAULT 0,
			created_at  %s NOT NULL
		)`, d.Serial, d.Money, d.Money, d.Money, d.Money, d.Timestamp),
		`CREATE INDEX IF NOT EXISTS idx_sales_store_created ON sales (store_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_store_receipt ON sales (store_id, receipt_id)`,
	}
}

// Ensure creates any missing relation. Safe to call repeatedly.
func (m *Manager) Ensure(ctx context.Context) error {
	err := database.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		for _, stmt := range Statements(m.dialect) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ensure schema: %w", apperror.Storage(err))
	}
	m.ready.Store(true)
	return nil
}

// Middleware ensures the schema before the first request that finds it
// missing. Failures are logged and the request continues; the queries it
// runs will report their own errors.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.ready.Load() {
			if err := m.Ensure(r.Context()); err != nil {
				log.Printf("schema: %v", err)
			}
		}
		next.ServeHTTP(w, r)
	})
}

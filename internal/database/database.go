package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/lib/pq"

	"github.com/georgemunganga/retailos/internal/apperror"
)

// MoneyPlaces is the scale of every money column. SQLite stores money as
// REAL, so sums computed by the store are rounded to it after scanning.
const MoneyPlaces = 2

// Dialect captures the SQL differences between the supported drivers.
// Queries are otherwise written once with $N placeholders, which both
// drivers accept.
type Dialect struct {
	Name      string
	Serial    string // auto-increment primary key column definition
	Money     string
	Timestamp string
	// DayExpr renders sales.created_at as a UTC YYYY-MM-DD string.
	DayExpr string
}

var (
	Postgres = Dialect{
		Name:      "postgres",
		Serial:    "BIGSERIAL PRIMARY KEY",
		Money:     "NUMERIC(14,2)",
		Timestamp: "TIMESTAMPTZ",
		DayExpr:   "to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')",
	}
	SQLite = Dialect{
		Name:      "sqlite",
		Serial:    "INTEGER PRIMARY KEY AUTOINCREMENT",
		Money:     "REAL",
		Timestamp: "TIMESTAMP",
		DayExpr:   "substr(created_at, 1, 10)",
	}
)

// DialectFor returns the dialect registered for a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pq":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported DB_DRIVER %q (allowed: postgres, sqlite)", driver)
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, Dialect{}, err
	}
	if dsn == "" {
		return nil, Dialect{}, fmt.Errorf("DATABASE_URL is required")
	}

	db, err := sql.Open(dialect.Name, dsn)
	if err != nil {
		return nil, Dialect{}, err
	}

	if dialect.Name == SQLite.Name {
		// single writer; also keeps per-connection pragmas in force
		db.SetMaxOpenConns(1)
		for _, p := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA journal_mode = WAL"} {
			if _, err := db.ExecContext(ctx, p); err != nil {
				db.Close()
				return nil, Dialect{}, fmt.Errorf("%s: %w", p, err)
			}
		}
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, Dialect{}, err
	}
	return db, dialect, nil
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Storage(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperror.Storage(fmt.Errorf("commit: %w", err))
	}
	return nil
}

package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/database"
)

type sqlRepo struct{ db *sql.DB }

func NewSQLRepository(db *sql.DB) Repository { return &sqlRepo{db: db} }

func (r *sqlRepo) Create(ctx context.Context, item *Item) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO inventory (store_id, code, name, price_buy, price_sell, stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		item.StoreID, item.Code, item.Name, item.PriceBuy, item.PriceSell, item.Stock, item.UpdatedAt).
		Scan(&item.ID)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("code %q: %w", item.Code, apperror.ErrDuplicateCode)
	}
	return apperror.Storage(err)
}

func (r *sqlRepo) Update(ctx context.Context, item *Item) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory
		SET code=$1, name=$2, price_buy=$3, price_sell=$4, stock=$5, updated_at=$6
		WHERE id=$7 AND store_id=$8`,
		item.Code, item.Name, item.PriceBuy, item.PriceSell, item.Stock, item.UpdatedAt,
		item.ID, item.StoreID)
	if database.IsUniqueViolation(err) {
		return false, fmt.Errorf("code %q: %w", item.Code, apperror.ErrDuplicateCode)
	}
	if err != nil {
		return false, apperror.Storage(err)
	}
	n, err := res.RowsAffected()
	return n > 0, apperror.Storage(err)
}

func (r *sqlRepo) AddStock(ctx context.Context, storeID uuid.UUID, code string, qty int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory SET stock = stock + $1, updated_at=$2
		WHERE store_id=$3 AND code=$4`,
		qty, time.Now().UTC(), storeID, code)
	if err != nil {
		return false, apperror.Storage(err)
	}
	n, err := res.RowsAffected()
	return n > 0, apperror.Storage(err)
}

func (r *sqlRepo) GetByCode(ctx context.Context, storeID uuid.UUID, code string) (*Item, error) {
	item, err := r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, store_id, code, name, price_buy, price_sell, stock, updated_at
		FROM inventory WHERE store_id=$1 AND code=$2`, storeID, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %q: %w", code, apperror.ErrNotFound)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return item, nil
}

func (r *sqlRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, code, name, price_buy, price_sell, stock, updated_at
		FROM inventory WHERE store_id=$1 ORDER BY name, code`, storeID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, apperror.Storage(err)
		}
		items = append(items, item)
	}
	return items, apperror.Storage(rows.Err())
}

// ── scanner ───────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *sqlRepo) scan(row rowScanner) (*Item, error) {
	item := &Item{}
	var updated database.Time
	err := row.Scan(&item.ID, &item.StoreID, &item.Code, &item.Name,
		&item.PriceBuy, &item.PriceSell, &item.Stock, &updated)
	if err != nil {
		return nil, err
	}
	item.UpdatedAt = updated.Time
	return item, nil
}

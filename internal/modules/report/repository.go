package report

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/database"
)

// Repository runs the grouped aggregations over the sales ledger.
type Repository interface {
	Daily(ctx context.Context, storeID uuid.UUID) ([]*DailyStat, error)
	Sellers(ctx context.Context, storeID uuid.UUID) ([]*SellerStat, error)
}

type sqlRepo struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewSQLRepository(db *sql.DB, dialect database.Dialect) Repository {
	return &sqlRepo{db: db, dialect: dialect}
}

func (r *sqlRepo) Daily(ctx context.Context, storeID uuid.UUID) ([]*DailyStat, error) {
	query := fmt.Sprintf(`
		SELECT %[1]s AS day,
		       COUNT(DISTINCT receipt_id),
		       SUM(price_sell * qty),
		       SUM((price_sell - price_buy) * qty)
		FROM sales
		WHERE store_id = $1
		GROUP BY %[1]s
		ORDER BY day DESC`, r.dialect.DayExpr)

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	defer rows.Close()

	stats := []*DailyStat{}
	for rows.Next() {
		s := &DailyStat{}
		if err := rows.Scan(&s.Day, &s.Receipts, &s.Revenue, &s.Profit); err != nil {
			return nil, apperror.Storage(err)
		}
		s.Revenue = s.Revenue.Round(database.MoneyPlaces)
		s.Profit = s.Profit.Round(database.MoneyPlaces)
		stats = append(stats, s)
	}
	return stats, apperror.Storage(rows.Err())
}

func (r *sqlRepo) Sellers(ctx context.Context, storeID uuid.UUID) ([]*SellerStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT seller_name,
		       COUNT(DISTINCT receipt_id),
		       SUM(price_sell * qty),
		       SUM((price_sell - price_buy) * qty)
		FROM sales
		WHERE store_id = $1
		GROUP BY seller_name
		ORDER BY SUM(price_sell * qty) DESC, seller_name`, storeID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	defer rows.Close()

	stats := []*SellerStat{}
	for rows.Next() {
		s := &SellerStat{}
		if err := rows.Scan(&s.SellerName, &s.Receipts, &s.Revenue, &s.Profit); err != nil {
			return nil, apperror.Storage(err)
		}
		s.Revenue = s.Revenue.Round(database.MoneyPlaces)
		s.Profit = s.Profit.Round(database.MoneyPlaces)
		stats = append(stats, s)
	}
	return stats, apperror.Storage(rows.Err())
}

package pos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/database"
)

type sqlRepo struct{ db *sql.DB }

func NewSQLRepository(db *sql.DB) Repository { return &sqlRepo{db: db} }

// Checkout runs every decrement and insert of the receipt inside one
// transaction. The decrement only matches while stock covers the quantity,
// so concurrent receipts cannot push stock below zero.
func (r *sqlRepo) Checkout(ctx context.Context, receipt *Receipt) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, line := range receipt.Lines {
			err := tx.QueryRowContext(ctx, `
				UPDATE inventory
				SET stock = stock - $1, updated_at = $2
				WHERE store_id = $3 AND code = $4 AND stock >= $1
				RETURNING name, price_buy, price_sell`,
				line.Qty, receipt.CreatedAt, receipt.StoreID, line.Code).
				Scan(&line.Name, &line.PriceBuy, &line.PriceSell)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: item %q (need %d)", apperror.ErrInsufficientStock, line.Code, line.Qty)
			}
			if err != nil {
				return apperror.Storage(fmt.Errorf("decrement %q: %w", line.Code, err))
			}

			err = tx.QueryRowContext(ctx, `
				INSERT INTO sales
				  (store_id, receipt_id, code, name, price_buy, price_sell, qty,
				   seller_name, pay_cash, pay_card, created_at)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
				RETURNING id`,
				receipt.StoreID, receipt.ReceiptID, line.Code, line.Name,
				line.PriceBuy, line.PriceSell, line.Qty, receipt.SellerName,
				receipt.PayCash, receipt.PayCard, receipt.CreatedAt).
				Scan(&line.ID)
			if err != nil {
				return apperror.Storage(fmt.Errorf("insert sale line %q: %w", line.Code, err))
			}
		}
		return nil
	})
}

func (r *sqlRepo) ListReceipts(ctx context.Context, storeID uuid.UUID, limit int) ([]*Receipt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT receipt_id, MIN(created_at), SUM(price_sell * qty),
		       MAX(seller_name), MAX(pay_cash), MAX(pay_card)
		FROM sales
		WHERE store_id = $1
		GROUP BY receipt_id
		ORDER BY MIN(created_at) DESC, MAX(id) DESC
		LIMIT $2`, storeID, limit)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	defer rows.Close()

	receipts := []*Receipt{}
	for rows.Next() {
		rc := &Receipt{StoreID: storeID}
		var created database.Time
		if err := rows.Scan(&rc.ReceiptID, &created, &rc.Total,
			&rc.SellerName, &rc.PayCash, &rc.PayCard); err != nil {
			return nil, apperror.Storage(err)
		}
		rc.Total = rc.Total.Round(database.MoneyPlaces)
		rc.CreatedAt = created.Time
		receipts = append(receipts, rc)
	}
	return receipts, apperror.Storage(rows.Err())
}

func (r *sqlRepo) GetReceipt(ctx context.Context, storeID uuid.UUID, receiptID string) (*Receipt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, receipt_id, code, name, price_buy, price_sell, qty,
		       seller_name, pay_cash, pay_card, created_at
		FROM sales
		WHERE store_id = $1 AND receipt_id = $2
		ORDER BY id`, storeID, receiptID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	lines, err := r.scanLines(rows)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("receipt %q: %w", receiptID, apperror.ErrNotFound)
	}

	first := lines[0]
	rc := &Receipt{
		ReceiptID:  receiptID,
		StoreID:    storeID,
		SellerName: first.SellerName,
		PayCash:    first.PayCash,
		PayCard:    first.PayCard,
		CreatedAt:  first.CreatedAt,
		Lines:      lines,
	}
	rc.Total = total(lines)
	return rc, nil
}

func (r *sqlRepo) ListLines(ctx context.Context, storeID uuid.UUID, limit int) ([]*SaleLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, receipt_id, code, name, price_buy, price_sell, qty,
		       seller_name, pay_cash, pay_card, created_at
		FROM sales
		WHERE store_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, storeID, limit)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return r.scanLines(rows)
}

// ── scanner ───────────────────────────────────────────────────────────────────

func (r *sqlRepo) scanLines(rows *sql.Rows) ([]*SaleLine, error) {
	defer rows.Close()
	lines := []*SaleLine{}
	for rows.Next() {
		l := &SaleLine{}
		var created database.Time
		if err := rows.Scan(&l.ID, &l.StoreID, &l.ReceiptID, &l.Code, &l.Name,
			&l.PriceBuy, &l.PriceSell, &l.Qty, &l.SellerName,
			&l.PayCash, &l.PayCard, &created); err != nil {
			return nil, apperror.Storage(err)
		}
		l.CreatedAt = created.Time
		lines = append(lines, l)
	}
	return lines, apperror.Storage(rows.Err())
}

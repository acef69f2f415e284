package pos

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for the sales ledger.
type Repository interface {
	// Checkout decrements stock and appends one sale line per entry of
	// receipt.Lines in a single transaction, filling in each line's name and
	// price snapshot. Nothing is written when any line fails.
	Checkout(ctx context.Context, receipt *Receipt) error
	ListReceipts(ctx context.Context, storeID uuid.UUID, limit int) ([]*Receipt, error)
	GetReceipt(ctx context.Context, storeID uuid.UUID, receiptID string) (*Receipt, error)
	ListLines(ctx context.Context, storeID uuid.UUID, limit int) ([]*SaleLine, error)
}

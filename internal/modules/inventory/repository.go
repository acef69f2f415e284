package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines tenant-scoped inventory storage.
type Repository interface {
	// Create inserts item; apperror.ErrDuplicateCode when the code exists.
	Create(ctx context.Context, item *Item) error
	// Update overwrites the item matching item.ID and item.StoreID and
	// reports whether a row matched.
	Update(ctx context.Context, item *Item) (bool, error)
	// AddStock increments stock of (storeID, code) and reports whether it exists.
	AddStock(ctx context.Context, storeID uuid.UUID, code string, qty int) (bool, error)
	GetByCode(ctx context.Context, storeID uuid.UUID, code string) (*Item, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Item, error)
}

package employee

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines tenant-scoped employee storage.
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	// Update changes name and position of the employee with id in storeID.
	// It reports whether a row matched.
	Update(ctx context.Context, storeID uuid.UUID, id int64, name, position string) (bool, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Employee, error)
}

package user

import "context"

// Repository defines store account storage.
type Repository interface {
	// CreateStore inserts the store and its admin employee atomically.
	CreateStore(ctx context.Context, s *Store, owner Owner) error
	GetStoreByLogin(ctx context.Context, login string) (*Store, error)
	GetStoreByID(ctx context.Context, id string) (*Store, error)
}

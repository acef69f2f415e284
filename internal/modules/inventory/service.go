package inventory

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/validate"
)

// Service defines inventory business logic. Every call is scoped to storeID.
type Service interface {
	ListItems(ctx context.Context, storeID uuid.UUID) ([]*Item, error)
	// Receive registers a new code. An existing code is rejected with
	// apperror.ErrDuplicateCode; use Restock to add quantity.
	Receive(ctx context.Context, storeID uuid.UUID, req ReceiveRequest) (*Item, error)
	Restock(ctx context.Context, storeID uuid.UUID, req RestockRequest) (*Item, error)
	// EditItem overwrites an item. An id from another store is a no-op.
	EditItem(ctx context.Context, storeID uuid.UUID, req EditRequest) error
}

type service struct{ repo Repository }

// NewService creates a new inventory service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListItems(ctx context.Context, storeID uuid.UUID) ([]*Item, error) {
	return s.repo.ListByStore(ctx, storeID)
}

func (s *service) Receive(ctx context.Context, storeID uuid.UUID, req ReceiveRequest) (*Item, error) {
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	item := &Item{
		StoreID:   storeID,
		Code:      req.Code,
		Name:      req.Name,
		PriceBuy:  req.Buy,
		PriceSell: req.Sell,
		Stock:     req.Qty,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Restock(ctx context.Context, storeID uuid.UUID, req RestockRequest) (*Item, error) {
	req.Code = strings.TrimSpace(req.Code)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	found, err := s.repo.AddStock(ctx, storeID, req.Code, req.Qty)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("item %q: %w", req.Code, apperror.ErrNotFound)
	}
	return s.repo.GetByCode(ctx, storeID, req.Code)
}

func (s *service) EditItem(ctx context.Context, storeID uuid.UUID, req EditRequest) error {
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return err
	}
	matched, err := s.repo.Update(ctx, &Item{
		ID:        req.ID,
		StoreID:   storeID,
		Code:      req.Code,
		Name:      req.Name,
		PriceBuy:  req.Buy,
		PriceSell: req.Sell,
		Stock:     req.Qty,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if !matched {
		log.Printf("inventory: edit of id %d matched nothing in store %s", req.ID, storeID)
	}
	return nil
}

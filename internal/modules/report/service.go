package report

import (
	"context"

	"github.com/google/uuid"
)

// Service derives revenue and profit figures from the sales ledger. Results
// are recomputed on every call.
type Service interface {
	Daily(ctx context.Context, storeID uuid.UUID) ([]*DailyStat, error)
	Sellers(ctx context.Context, storeID uuid.UUID) ([]*SellerStat, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Daily(ctx context.Context, storeID uuid.UUID) ([]*DailyStat, error) {
	return s.repo.Daily(ctx, storeID)
}

func (s *service) Sellers(ctx context.Context, storeID uuid.UUID) ([]*SellerStat, error) {
	return s.repo.Sellers(ctx, storeID)
}

package employee

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/retailos/internal/validate"
)

// Service defines employee business logic. Every call is scoped to storeID.
type Service interface {
	Add(ctx context.Context, storeID uuid.UUID, req AddRequest) (*Employee, error)
	Edit(ctx context.Context, storeID uuid.UUID, req EditRequest) error
	List(ctx context.Context, storeID uuid.UUID) ([]*Employee, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Add(ctx context.Context, storeID uuid.UUID, req AddRequest) (*Employee, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	role := Role(req.Role)
	if role == "" {
		role = RoleUser
	}
	e := &Employee{
		StoreID:   storeID,
		Name:      req.Name,
		Position:  strings.TrimSpace(req.Position),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Edit is a no-op when the employee belongs to another store.
func (s *service) Edit(ctx context.Context, storeID uuid.UUID, req EditRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return err
	}
	matched, err := s.repo.Update(ctx, storeID, req.ID, req.Name, strings.TrimSpace(req.Position))
	if err != nil {
		return err
	}
	if !matched {
		log.Printf("employee: edit of id %d matched nothing in store %s", req.ID, storeID)
	}
	return nil
}

func (s *service) List(ctx context.Context, storeID uuid.UUID) ([]*Employee, error) {
	return s.repo.ListByStore(ctx, storeID)
}

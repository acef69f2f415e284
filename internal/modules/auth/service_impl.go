package auth

import (
	"context"

	"github.com/georgemunganga/retailos/internal/modules/user"
)

type service struct {
	users  user.Service
	tokens *Issuer
}

// NewService creates a new auth service.
func NewService(users user.Service, tokens *Issuer) Service {
	return &service{users: users, tokens: tokens}
}

func (s *service) Register(ctx context.Context, req user.RegisterRequest) (*Session, error) {
	store, err := s.users.RegisterStore(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.session(store)
}

func (s *service) Login(ctx context.Context, login, password string) (*Session, error) {
	store, err := s.users.Authenticate(ctx, login, password)
	if err != nil {
		return nil, err
	}
	return s.session(store)
}

func (s *service) session(store *user.Store) (*Session, error) {
	token, err := s.tokens.Issue(store.ID)
	if err != nil {
		return nil, err
	}
	return &Session{
		User:  SessionUser{StoreID: store.ID, StoreName: store.Name},
		Token: token,
	}, nil
}

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/validate"
)

// Service defines store account business logic.
type Service interface {
	RegisterStore(ctx context.Context, req RegisterRequest) (*Store, error)
	// Authenticate returns the store whose credentials match.
	Authenticate(ctx context.Context, login, password string) (*Store, error)
	GetStore(ctx context.Context, id string) (*Store, error)
}

// RegisterRequest holds the data needed to open a store.
type RegisterRequest struct {
	Login     string `json:"login" validate:"required"`
	Password  string `json:"password" validate:"required,min=4"`
	StoreName string `json:"storeName" validate:"required"`
}

// ErrInvalidCredentials is returned by Authenticate for any login/password mismatch.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid login or password", apperror.ErrUnauthorized)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterStore(ctx context.Context, req RegisterRequest) (*Store, error) {
	req.Login = strings.TrimSpace(req.Login)
	req.StoreName = strings.TrimSpace(req.StoreName)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	store := &Store{
		ID:           uuid.New(),
		Login:        req.Login,
		PasswordHash: string(hashedPassword),
		Name:         req.StoreName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateStore(ctx, store, DefaultOwner); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *service) Authenticate(ctx context.Context, login, password string) (*Store, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", apperror.ErrValidation)
	}
	store, err := s.repo.GetStoreByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(store.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return store, nil
}

func (s *service) GetStore(ctx context.Context, id string) (*Store, error) {
	return s.repo.GetStoreByID(ctx, id)
}

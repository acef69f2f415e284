package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/georgemunganga/retailos/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Register(ctx context.Context, req user.RegisterRequest) (*Session, error)
	Login(ctx context.Context, login, password string) (*Session, error)
}

// Session is what the client keeps after register or login.
type Session struct {
	User  SessionUser `json:"user"`
	Token string      `json:"token"`
}

type SessionUser struct {
	StoreID   uuid.UUID `json:"storeId"`
	StoreName string    `json:"storeName"`
}

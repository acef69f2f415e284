package user

import (
	"time"

	"github.com/google/uuid"
)

// Store is a tenant account: one retail location and its login.
type Store struct {
	ID           uuid.UUID `json:"storeId"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"storeName"`
	CreatedAt    time.Time `json:"created_at"`
}

// Owner is the admin employee created together with a store.
type Owner struct {
	Name     string
	Position string
}

// DefaultOwner is used when registration does not name the owner.
var DefaultOwner = Owner{Name: "Owner", Position: "Director"}

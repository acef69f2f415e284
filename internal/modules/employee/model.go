package employee

import (
	"time"

	"github.com/google/uuid"
)

// Role controls what an employee may do in the client.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Employee is a person who can sell on behalf of a store.
type Employee struct {
	ID        int64     `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AddRequest is the payload for adding an employee.
type AddRequest struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// EditRequest is the payload for renaming or re-titling an employee.
// The role cannot be changed after creation.
type EditRequest struct {
	ID       int64  `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Position string `json:"position"`
}

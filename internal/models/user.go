package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Clients are users with RoleClient; they only see their own
// account summary.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// User represents a user in the system
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Cedula       string    `json:"cedula"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"` // Not serialized
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package domain

import (
	"context"
	"time"
)

// User represents a registered account. IDs are opaque strings assigned
// by the store at creation and never change.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepository defines persistence operations for users. Email matching
// is case-insensitive, and at most one user exists per email; the store
// itself enforces uniqueness so that create is an atomic check-and-create.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

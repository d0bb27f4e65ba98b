package identity

import (
	"context"

	"github.com/google/uuid"
)

type UserRepository interface {
	// Create inserts the user and fails with a conflict error when the
	// email is already registered.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

package identity

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user can register with. The role is fixed at registration; no
// role-change flow exists.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// User maps to the users table.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ValidRole reports whether role is one of the registrable roles.
func ValidRole(role string) bool {
	return role == RolePatient || role == RoleDoctor
}

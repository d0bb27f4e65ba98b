package directory

import (
	"context"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	// Create inserts the profile and fails with a conflict error when the
	// user already has one.
	Create(ctx context.Context, p *DoctorProfile) error
	Update(ctx context.Context, p *DoctorProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*DoctorProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*DoctorProfile, error)
	Search(ctx context.Context, f SearchFilter, limit, offset int) ([]*DoctorProfile, int, error)
}

package directory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/docsearch/docsearch/internal/domain/identity"
	"github.com/docsearch/docsearch/internal/platform/apperr"
)

// ProfileInput carries one profile write. Pointer fields distinguish
// "not supplied" from a zero value so updates stay partial.
type ProfileInput struct {
	Specialty    string             `json:"specialty"`
	Experience   *int               `json:"experience"`
	Fee          *float64           `json:"fee"`
	Bio          *string            `json:"bio"`
	Education    *string            `json:"education"`
	Location     *Location          `json:"location"`
	Availability WeeklyAvailability `json:"availability"`
}

type Service struct {
	profiles ProfileRepository
}

func NewService(profiles ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

// Upsert creates the calling doctor's profile on first write and merges
// subsequent writes into it. Fields absent from the input keep their
// stored values; the location is only replaced when both city and state
// are supplied.
func (s *Service) Upsert(ctx context.Context, userID, role string, in ProfileInput) (*DoctorProfile, error) {
	if role != identity.RoleDoctor {
		return nil, apperr.Authorization("only doctors can manage a profile")
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.Authentication("invalid user id in token")
	}

	in.Specialty = strings.TrimSpace(in.Specialty)
	if in.Specialty == "" {
		return nil, apperr.Validation("specialty is required")
	}
	if in.Experience == nil {
		return nil, apperr.Validation("experience is required")
	}
	if *in.Experience < 0 {
		return nil, apperr.Validation("experience must not be negative")
	}
	if in.Fee != nil && *in.Fee < 0 {
		return nil, apperr.Validation("fee must not be negative")
	}

	existing, err := s.profiles.GetByUserID(ctx, uid)
	switch {
	case err == nil:
		return s.merge(ctx, existing, in)
	case apperr.IsKind(err, apperr.KindNotFound):
		return s.create(ctx, uid, in)
	default:
		return nil, err
	}
}

func (s *Service) create(ctx context.Context, userID uuid.UUID, in ProfileInput) (*DoctorProfile, error) {
	p := &DoctorProfile{
		UserID:       userID,
		Specialty:    in.Specialty,
		Experience:   *in.Experience,
		Availability: DefaultAvailability(),
	}
	if in.Fee != nil {
		p.Fee = *in.Fee
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.Education != nil {
		p.Education = *in.Education
	}
	if in.Location != nil && in.Location.City != "" && in.Location.State != "" {
		p.Location = *in.Location
	}
	if in.Availability != nil {
		p.Availability = in.Availability.Normalize()
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) merge(ctx context.Context, p *DoctorProfile, in ProfileInput) (*DoctorProfile, error) {
	p.Specialty = in.Specialty
	p.Experience = *in.Experience
	if in.Fee != nil {
		p.Fee = *in.Fee
	}
	if in.Bio != nil {
		p.Bio = *in.Bio
	}
	if in.Education != nil {
		p.Education = *in.Education
	}
	if in.Location != nil && in.Location.City != "" && in.Location.State != "" {
		p.Location = *in.Location
	}
	if in.Availability != nil {
		p.Availability = in.Availability.Normalize()
	}
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetOwn returns the calling doctor's profile.
func (s *Service) GetOwn(ctx context.Context, userID string) (*DoctorProfile, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.Authentication("invalid user id in token")
	}
	return s.profiles.GetByUserID(ctx, uid)
}

// GetByID returns a public profile by profile id.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*DoctorProfile, error) {
	return s.profiles.GetByID(ctx, id)
}

// Search returns profiles matching f. An empty result is not an error.
func (s *Service) Search(ctx context.Context, f SearchFilter, limit, offset int) ([]*DoctorProfile, int, error) {
	return s.profiles.Search(ctx, f, limit, offset)
}

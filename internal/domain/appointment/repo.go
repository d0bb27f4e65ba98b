package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the appointment and fails with a conflict error when
	// another booked appointment already holds the same doctor, date and
	// time slot. The storage layer enforces this with a partial unique
	// index, so concurrent bookers cannot both win.
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// ActiveSlotExists reports whether a booked appointment already holds
	// the slot. Used as a pre-check for a friendlier error before insert.
	ActiveSlotExists(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
}

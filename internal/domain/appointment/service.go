package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/docsearch/docsearch/internal/domain/directory"
	"github.com/docsearch/docsearch/internal/domain/identity"
	"github.com/docsearch/docsearch/internal/platform/apperr"
	"github.com/docsearch/docsearch/internal/platform/notification"
)

type Service struct {
	appts      Repository
	profiles   directory.ProfileRepository
	users      identity.UserRepository
	dispatcher *notification.Dispatcher
}

func NewService(appts Repository, profiles directory.ProfileRepository, users identity.UserRepository, dispatcher *notification.Dispatcher) *Service {
	return &Service{appts: appts, profiles: profiles, users: users, dispatcher: dispatcher}
}

// BookInput is one booking request.
type BookInput struct {
	DoctorID        string `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	TimeSlot        string `json:"time_slot"`
	Notes           string `json:"notes"`
}

// Book records a new appointment for the calling patient. The slot
// pre-check gives concurrent bookers a friendly conflict message; the
// unique index underneath makes the invariant hold even when both pass
// the pre-check.
func (s *Service) Book(ctx context.Context, patientUserID string, in BookInput) (*Appointment, error) {
	if in.DoctorID == "" || in.AppointmentDate == "" || in.TimeSlot == "" {
		return nil, apperr.Validation("doctor_id, appointment_date and time_slot are required")
	}
	doctorID, err := uuid.Parse(in.DoctorID)
	if err != nil {
		return nil, apperr.Validation("invalid doctor_id")
	}
	if _, err := time.Parse("2006-01-02", in.AppointmentDate); err != nil {
		return nil, apperr.Validation("appointment_date must be in YYYY-MM-DD format")
	}
	patientID, err := uuid.Parse(patientUserID)
	if err != nil {
		return nil, apperr.Authentication("invalid user id in token")
	}

	profile, err := s.profiles.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	taken, err := s.appts.ActiveSlotExists(ctx, profile.ID, in.AppointmentDate, in.TimeSlot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("this time slot is already booked")
	}

	a := &Appointment{
		DoctorID:        profile.ID,
		PatientID:       patientID,
		AppointmentDate: in.AppointmentDate,
		TimeSlot:        in.TimeSlot,
		Status:          StatusBooked,
		Notes:           in.Notes,
	}
	if err := s.appts.Create(ctx, a); err != nil {
		return nil, err
	}
	a.DoctorName = profile.Name
	a.DoctorSpecialty = profile.Specialty
	a.DoctorLocation = &profile.Location

	s.notify(ctx, notification.BookingCreated, a, profile)
	return a, nil
}

// Cancel moves the appointment to cancelled. Only the booking patient may
// cancel, and only once.
func (s *Service) Cancel(ctx context.Context, requesterUserID string, appointmentID uuid.UUID) (*Appointment, error) {
	requester, err := uuid.Parse(requesterUserID)
	if err != nil {
		return nil, apperr.Authentication("invalid user id in token")
	}

	a, err := s.appts.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if a.PatientID != requester {
		return nil, apperr.Authorization("you can only cancel your own appointments")
	}
	if a.Status == StatusCancelled {
		return nil, apperr.Conflict("appointment already cancelled")
	}

	if err := s.appts.UpdateStatus(ctx, a.ID, StatusCancelled); err != nil {
		return nil, err
	}
	a.Status = StatusCancelled

	profile, err := s.profiles.GetByID(ctx, a.DoctorID)
	if err == nil {
		a.DoctorName = profile.Name
		a.DoctorSpecialty = profile.Specialty
		a.DoctorLocation = &profile.Location
		s.notify(ctx, notification.BookingCancelled, a, profile)
	}
	return a, nil
}

// ListForUser returns the caller's appointments. Patients see their own
// bookings with doctor details; doctors see bookings against their profile
// with patient details.
func (s *Service) ListForUser(ctx context.Context, userID, role string, limit, offset int) ([]*Appointment, int, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, apperr.Authentication("invalid user id in token")
	}

	if role == identity.RoleDoctor {
		profile, err := s.profiles.GetByUserID(ctx, uid)
		if err != nil {
			return nil, 0, err
		}
		return s.appts.ListByDoctor(ctx, profile.ID, limit, offset)
	}
	return s.appts.ListByPatient(ctx, uid, limit, offset)
}

// notify looks up the patient's contact details and hands both messages to
// the dispatcher. Lookup failures are logged by the dispatcher path being
// skipped; they never fail the ledger operation.
func (s *Service) notify(ctx context.Context, event notification.Event, a *Appointment, profile *directory.DoctorProfile) {
	patient, err := s.users.GetByID(ctx, a.PatientID)
	if err != nil {
		return
	}
	s.dispatcher.Dispatch(event,
		notification.AppointmentInfo{AppointmentDate: a.AppointmentDate, TimeSlot: a.TimeSlot},
		notification.Party{Name: patient.Name, Email: patient.Email},
		notification.Party{Name: profile.Name, Email: profile.Email},
	)
}

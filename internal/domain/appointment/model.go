package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/docsearch/docsearch/internal/domain/directory"
)

// Appointment statuses. A booking transitions once, from booked to
// cancelled, and never back.
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Appointment maps to the appointments table. The date is a calendar day
// in YYYY-MM-DD form and the time slot a label such as "09:00"; together
// with the doctor they form the booking key.
//
// The counterpart fields are joined in on list reads so each party sees
// who the appointment is with.
type Appointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	DoctorID        uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	AppointmentDate string    `db:"appointment_date" json:"appointment_date"`
	TimeSlot        string    `db:"time_slot" json:"time_slot"`
	Status          string    `db:"status" json:"status"`
	Notes           string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`

	DoctorName      string              `db:"-" json:"doctor_name,omitempty"`
	DoctorSpecialty string              `db:"-" json:"doctor_specialty,omitempty"`
	DoctorLocation  *directory.Location `db:"-" json:"doctor_location,omitempty"`
	PatientName     string              `db:"-" json:"patient_name,omitempty"`
	PatientEmail    string              `db:"-" json:"patient_email,omitempty"`
}

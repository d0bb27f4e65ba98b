package directory

import (
	"time"

	"github.com/google/uuid"
)

// Weekday names used as availability keys, in calendar order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DayAvailability is the bookable window for a single weekday.
type DayAvailability struct {
	Available bool   `json:"available"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// WeeklyAvailability maps each weekday name to its window. Stored as one
// JSONB column; always carries all seven days once normalized.
type WeeklyAvailability map[string]DayAvailability

// DefaultAvailability returns a full week of unavailable 09:00-17:00 windows.
func DefaultAvailability() WeeklyAvailability {
	w := make(WeeklyAvailability, len(Weekdays))
	for _, day := range Weekdays {
		w[day] = DayAvailability{Available: false, Start: "09:00", End: "17:00"}
	}
	return w
}

// Normalize fills in any weekday absent from w with the default window and
// drops unknown keys.
func (w WeeklyAvailability) Normalize() WeeklyAvailability {
	out := DefaultAvailability()
	for _, day := range Weekdays {
		if v, ok := w[day]; ok {
			if v.Start == "" {
				v.Start = "09:00"
			}
			if v.End == "" {
				v.End = "17:00"
			}
			out[day] = v
		}
	}
	return out
}

// Location is the doctor's practice location.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// DoctorProfile maps to the doctor_profiles table. Name and Email are
// denormalized from the owning user row on read.
type DoctorProfile struct {
	ID           uuid.UUID          `db:"id" json:"id"`
	UserID       uuid.UUID          `db:"user_id" json:"user_id"`
	Name         string             `db:"name" json:"name"`
	Email        string             `db:"email" json:"email"`
	Specialty    string             `db:"specialty" json:"specialty"`
	Experience   int                `db:"experience" json:"experience"`
	Fee          float64            `db:"fee" json:"fee"`
	Bio          string             `db:"bio" json:"bio"`
	Education    string             `db:"education" json:"education"`
	Location     Location           `db:"location" json:"location"`
	Availability WeeklyAvailability `db:"availability" json:"availability"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updated_at"`
}

// SearchFilter narrows a directory search. Empty fields match everything.
type SearchFilter struct {
	Specialty string `json:"specialty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Name      string `json:"name"`
}

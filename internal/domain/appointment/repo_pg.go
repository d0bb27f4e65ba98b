package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docsearch/docsearch/internal/domain/directory"
	"github.com/docsearch/docsearch/internal/platform/apperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const apptCols = `a.id, a.doctor_id, a.patient_id, a.appointment_date, a.time_slot, a.status, a.notes, a.created_at, a.updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.AppointmentDate, &a.TimeSlot,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("appointment not found")
	}
	if err != nil {
		return nil, apperr.Internal("scan appointment", err)
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, doctor_id, patient_id, appointment_date, time_slot, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		a.ID, a.DoctorID, a.PatientID, a.AppointmentDate, a.TimeSlot, a.Status, a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("this time slot is already booked")
		}
		return apperr.Internal("insert appointment", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	q := fmt.Sprintf(`SELECT %s FROM appointments a WHERE a.id = $1`, apptCols)
	return scanAppointment(r.pool.QueryRow(ctx, q, id))
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return apperr.Internal("update appointment status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("appointment not found")
	}
	return nil
}

func (r *repoPG) ActiveSlotExists(ctx context.Context, doctorID uuid.UUID, date, slot string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1 AND appointment_date = $2 AND time_slot = $3 AND status = $4
		)`, doctorID, date, slot, StatusBooked).Scan(&exists)
	if err != nil {
		return false, apperr.Internal("check slot", err)
	}
	return exists, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, apperr.Internal("count appointments", err)
	}

	q := fmt.Sprintf(`
		SELECT %s, u.name, p.specialty, p.location
		FROM appointments a
		JOIN doctor_profiles p ON p.id = a.doctor_id
		JOIN users u ON u.id = p.user_id
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date DESC, a.time_slot DESC
		LIMIT $2 OFFSET $3`, apptCols)
	rows, err := r.pool.Query(ctx, q, patientID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal("list appointments", err)
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		var a Appointment
		a.DoctorLocation = &directory.Location{}
		err := rows.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.AppointmentDate, &a.TimeSlot,
			&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt, &a.DoctorName, &a.DoctorSpecialty, a.DoctorLocation)
		if err != nil {
			return nil, 0, apperr.Internal("scan appointment", err)
		}
		items = append(items, &a)
	}
	return items, total, nil
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE doctor_id = $1`, doctorID).Scan(&total); err != nil {
		return nil, 0, apperr.Internal("count appointments", err)
	}

	q := fmt.Sprintf(`
		SELECT %s, u.name, u.email
		FROM appointments a
		JOIN users u ON u.id = a.patient_id
		WHERE a.doctor_id = $1
		ORDER BY a.appointment_date DESC, a.time_slot DESC
		LIMIT $2 OFFSET $3`, apptCols)
	rows, err := r.pool.Query(ctx, q, doctorID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal("list appointments", err)
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		var a Appointment
		err := rows.Scan(&a.ID, &a.DoctorID, &a.PatientID, &a.AppointmentDate, &a.TimeSlot,
			&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt, &a.PatientName, &a.PatientEmail)
		if err != nil {
			return nil, 0, apperr.Internal("scan appointment", err)
		}
		items = append(items, &a)
	}
	return items, total, nil
}

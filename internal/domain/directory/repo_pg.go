package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docsearch/docsearch/internal/platform/apperr"
)

type profileRepoPG struct{ pool *pgxpool.Pool }

func NewProfileRepoPG(pool *pgxpool.Pool) ProfileRepository { return &profileRepoPG{pool: pool} }

// Every read joins users so profiles come back with the doctor's display
// name and email.
const profileCols = `p.id, p.user_id, u.name, u.email, p.specialty, p.experience, p.fee,
	p.bio, p.education, p.location, p.availability, p.created_at, p.updated_at`

func scanProfile(row pgx.Row) (*DoctorProfile, error) {
	var p DoctorProfile
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Specialty, &p.Experience, &p.Fee,
		&p.Bio, &p.Education, &p.Location, &p.Availability, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("doctor profile not found")
	}
	if err != nil {
		return nil, apperr.Internal("scan doctor profile", err)
	}
	return &p, nil
}

func (r *profileRepoPG) Create(ctx context.Context, p *DoctorProfile) error {
	p.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO doctor_profiles (id, user_id, specialty, experience, fee, bio, education, location, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		p.ID, p.UserID, p.Specialty, p.Experience, p.Fee, p.Bio, p.Education, p.Location, p.Availability,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict("doctor profile already exists")
		}
		return apperr.Internal("insert doctor profile", err)
	}
	return nil
}

func (r *profileRepoPG) Update(ctx context.Context, p *DoctorProfile) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctor_profiles
		SET specialty = $2, experience = $3, fee = $4, bio = $5, education = $6,
		    location = $7, availability = $8, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Specialty, p.Experience, p.Fee, p.Bio, p.Education, p.Location, p.Availability,
	)
	if err != nil {
		return apperr.Internal("update doctor profile", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("doctor profile not found")
	}
	return nil
}

func (r *profileRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DoctorProfile, error) {
	q := fmt.Sprintf(`SELECT %s FROM doctor_profiles p JOIN users u ON u.id = p.user_id WHERE p.id = $1`, profileCols)
	return scanProfile(r.pool.QueryRow(ctx, q, id))
}

func (r *profileRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*DoctorProfile, error) {
	q := fmt.Sprintf(`SELECT %s FROM doctor_profiles p JOIN users u ON u.id = p.user_id WHERE p.user_id = $1`, profileCols)
	return scanProfile(r.pool.QueryRow(ctx, q, userID))
}

func (r *profileRepoPG) Search(ctx context.Context, f SearchFilter, limit, offset int) ([]*DoctorProfile, int, error) {
	where := []string{}
	args := []interface{}{}
	idx := 1

	if f.Specialty != "" {
		where = append(where, fmt.Sprintf("p.specialty ILIKE $%d", idx))
		args = append(args, "%"+f.Specialty+"%")
		idx++
	}
	if f.City != "" {
		where = append(where, fmt.Sprintf("p.location->>'city' ILIKE $%d", idx))
		args = append(args, "%"+f.City+"%")
		idx++
	}
	if f.State != "" {
		where = append(where, fmt.Sprintf("p.location->>'state' ILIKE $%d", idx))
		args = append(args, "%"+f.State+"%")
		idx++
	}
	if f.Name != "" {
		where = append(where, fmt.Sprintf("u.name ILIKE $%d", idx))
		args = append(args, "%"+f.Name+"%")
		idx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	countQ := fmt.Sprintf("SELECT COUNT(*) FROM doctor_profiles p JOIN users u ON u.id = p.user_id %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, apperr.Internal("count doctor profiles", err)
	}

	q := fmt.Sprintf(`SELECT %s FROM doctor_profiles p JOIN users u ON u.id = p.user_id %s
		ORDER BY p.created_at LIMIT $%d OFFSET $%d`,
		profileCols, whereClause, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, apperr.Internal("search doctor profiles", err)
	}
	defer rows.Close()

	var items []*DoctorProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

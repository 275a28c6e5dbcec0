package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/gym-service/internal/domain"
)

// RegistrationRepository defines persistence access for enrollments.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	Update(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	List(ctx context.Context, limit, offset int) ([]domain.Registration, error)
	// HasActive reports whether the student holds a registration with no
	// cancellation, ignoring excludeID (pass "" on create).
	HasActive(ctx context.Context, studentID, excludeID string) (bool, error)
	Cancel(ctx context.Context, id string, at time.Time) error
}

type registrationRepository struct {
	db Querier
}

// NewRegistrationRepository returns a Postgres-backed implementation.
func NewRegistrationRepository(db Querier) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	const query = `
        INSERT INTO registrations (student_id, plan_id, start_date, end_date, price)
        VALUES ($1, $2, $3, $4, $5::numeric)
        RETURNING id, created_at, updated_at`

	return querier(ctx, r.db).QueryRow(ctx, query,
		reg.StudentID,
		reg.PlanID,
		reg.StartDate,
		reg.EndDate,
		reg.Price.StringFixed(2),
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	const query = `
        UPDATE registrations
        SET student_id=$1, plan_id=$2, start_date=$3, end_date=$4, price=$5::numeric, updated_at=NOW()
        WHERE id=$6`

	cmd, err := querier(ctx, r.db).Exec(ctx, query,
		reg.StudentID,
		reg.PlanID,
		reg.StartDate,
		reg.EndDate,
		reg.Price.StringFixed(2),
		reg.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	const query = `
        SELECT id, student_id, plan_id, start_date, end_date, price::text, canceled_at, created_at, updated_at
        FROM registrations WHERE id=$1`

	var (
		reg   domain.Registration
		price string
	)
	if err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&reg.ID,
		&reg.StudentID,
		&reg.PlanID,
		&reg.StartDate,
		&reg.EndDate,
		&price,
		&reg.CanceledAt,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	reg.Price = parsed
	return &reg, nil
}

func (r *registrationRepository) List(ctx context.Context, limit, offset int) ([]domain.Registration, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, student_id, plan_id, start_date, end_date, price::text, canceled_at, created_at, updated_at
        FROM registrations ORDER BY start_date DESC LIMIT $1 OFFSET $2`

	rows, err := querier(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Registration
	for rows.Next() {
		var (
			reg   domain.Registration
			price string
		)
		if err := rows.Scan(
			&reg.ID,
			&reg.StudentID,
			&reg.PlanID,
			&reg.StartDate,
			&reg.EndDate,
			&price,
			&reg.CanceledAt,
			&reg.CreatedAt,
			&reg.UpdatedAt,
		); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		reg.Price = parsed
		result = append(result, reg)
	}
	return result, rows.Err()
}

func (r *registrationRepository) HasActive(ctx context.Context, studentID, excludeID string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM registrations
            WHERE student_id=$1 AND canceled_at IS NULL AND ($2 = '' OR id::text <> $2)
        )`

	var exists bool
	if err := querier(ctx, r.db).QueryRow(ctx, query, studentID, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *registrationRepository) Cancel(ctx context.Context, id string, at time.Time) error {
	const query = `
        UPDATE registrations SET canceled_at=$1, updated_at=NOW()
        WHERE id=$2 AND canceled_at IS NULL`

	cmd, err := querier(ctx, r.db).Exec(ctx, query, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"
	"time"

	"github.com/spec-kit/gym-service/internal/domain"
)

// CheckinRepository defines persistence access for attendance records.
// Check-ins are append-only; there is no update or delete.
type CheckinRepository interface {
	Create(ctx context.Context, checkin *domain.Checkin) error
	CountInRange(ctx context.Context, studentID string, from, to time.Time) (int, error)
	ListByStudent(ctx context.Context, studentID string, limit, offset int) ([]domain.Checkin, error)
}

type checkinRepository struct {
	db Querier
}

// NewCheckinRepository returns a Postgres-backed implementation.
func NewCheckinRepository(db Querier) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) Create(ctx context.Context, checkin *domain.Checkin) error {
	const query = `
        INSERT INTO checkins (student_id, created_at)
        VALUES ($1, $2)
        RETURNING id`

	return querier(ctx, r.db).QueryRow(ctx, query,
		checkin.StudentID,
		checkin.CreatedAt,
	).Scan(&checkin.ID)
}

func (r *checkinRepository) CountInRange(ctx context.Context, studentID string, from, to time.Time) (int, error) {
	const query = `
        SELECT COUNT(*) FROM checkins
        WHERE student_id=$1 AND created_at BETWEEN $2 AND $3`

	var count int
	if err := querier(ctx, r.db).QueryRow(ctx, query, studentID, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *checkinRepository) ListByStudent(ctx context.Context, studentID string, limit, offset int) ([]domain.Checkin, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, student_id, created_at FROM checkins
        WHERE student_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := querier(ctx, r.db).Query(ctx, query, studentID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Checkin
	for rows.Next() {
		var checkin domain.Checkin
		if err := rows.Scan(&checkin.ID, &checkin.StudentID, &checkin.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, checkin)
	}
	return result, rows.Err()
}

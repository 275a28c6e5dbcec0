package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gym-service/internal/domain"
)

// HelpOrderRepository defines persistence access for student questions.
type HelpOrderRepository interface {
	Create(ctx context.Context, order *domain.HelpOrder) error
	GetByID(ctx context.Context, id string) (*domain.HelpOrder, error)
	ListByStudent(ctx context.Context, studentID string, limit, offset int) ([]domain.HelpOrder, error)
	ListUnanswered(ctx context.Context, limit, offset int) ([]domain.HelpOrder, error)
	// Answer sets answer and answer_at in one statement, only when the order
	// is still unanswered. Returns pgx.ErrNoRows when no row transitioned.
	Answer(ctx context.Context, id, answer string, at time.Time) (*domain.HelpOrder, error)
}

type helpOrderRepository struct {
	db Querier
}

// NewHelpOrderRepository returns a Postgres-backed implementation.
func NewHelpOrderRepository(db Querier) HelpOrderRepository {
	return &helpOrderRepository{db: db}
}

func (r *helpOrderRepository) Create(ctx context.Context, order *domain.HelpOrder) error {
	const query = `
        INSERT INTO help_orders (student_id, question)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return querier(ctx, r.db).QueryRow(ctx, query,
		order.StudentID,
		order.Question,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *helpOrderRepository) GetByID(ctx context.Context, id string) (*domain.HelpOrder, error) {
	const query = `
        SELECT id, student_id, question, answer, answer_at, created_at, updated_at
        FROM help_orders WHERE id=$1`

	var order domain.HelpOrder
	if err := querier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.StudentID,
		&order.Question,
		&order.Answer,
		&order.AnswerAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *helpOrderRepository) ListByStudent(ctx context.Context, studentID string, limit, offset int) ([]domain.HelpOrder, error) {
	const query = `
        SELECT id, student_id, question, answer, answer_at, created_at, updated_at
        FROM help_orders WHERE student_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, studentID, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *helpOrderRepository) ListUnanswered(ctx context.Context, limit, offset int) ([]domain.HelpOrder, error) {
	const query = `
        SELECT id, student_id, question, answer, answer_at, created_at, updated_at
        FROM help_orders WHERE answer IS NULL
        ORDER BY created_at LIMIT $1 OFFSET $2`
	return r.list(ctx, query, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *helpOrderRepository) list(ctx context.Context, query string, args ...any) ([]domain.HelpOrder, error) {
	rows, err := querier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HelpOrder
	for rows.Next() {
		var order domain.HelpOrder
		if err := rows.Scan(
			&order.ID,
			&order.StudentID,
			&order.Question,
			&order.Answer,
			&order.AnswerAt,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *helpOrderRepository) Answer(ctx context.Context, id, answer string, at time.Time) (*domain.HelpOrder, error) {
	const query = `
        UPDATE help_orders SET answer=$1, answer_at=$2, updated_at=NOW()
        WHERE id=$3 AND answer IS NULL
        RETURNING id, student_id, question, answer, answer_at, created_at, updated_at`

	var order domain.HelpOrder
	if err := querier(ctx, r.db).QueryRow(ctx, query, answer, at, id).Scan(
		&order.ID,
		&order.StudentID,
		&order.Question,
		&order.Answer,
		&order.AnswerAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return &order, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

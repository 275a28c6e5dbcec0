package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/gym-service/internal/domain"
)

// PlanRepository defines persistence access for subscription plans.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	Update(ctx context.Context, plan *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetByTitle(ctx context.Context, title string) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Delete(ctx context.Context, id string) error
}

type planRepository struct {
	db Querier
}

// NewPlanRepository returns a Postgres-backed implementation.
func NewPlanRepository(db Querier) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.Plan) error {
	const query = `
        INSERT INTO plans (title, duration_months, price_per_month)
        VALUES ($1, $2, $3::numeric)
        RETURNING id, created_at, updated_at`

	return querier(ctx, r.db).QueryRow(ctx, query,
		plan.Title,
		plan.DurationMonths,
		plan.PricePerMonth.StringFixed(2),
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *planRepository) Update(ctx context.Context, plan *domain.Plan) error {
	const query = `
        UPDATE plans SET title=$1, duration_months=$2, price_per_month=$3::numeric, updated_at=NOW()
        WHERE id=$4`

	cmd, err := querier(ctx, r.db).Exec(ctx, query,
		plan.Title,
		plan.DurationMonths,
		plan.PricePerMonth.StringFixed(2),
		plan.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	const query = `
        SELECT id, title, duration_months, price_per_month::text, created_at, updated_at
        FROM plans WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *planRepository) GetByTitle(ctx context.Context, title string) (*domain.Plan, error) {
	const query = `
        SELECT id, title, duration_months, price_per_month::text, created_at, updated_at
        FROM plans WHERE title=$1`
	return r.fetchSingle(ctx, query, title)
}

func (r *planRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Plan, error) {
	var (
		plan  domain.Plan
		price string
	)
	if err := querier(ctx, r.db).QueryRow(ctx, query, arg).Scan(
		&plan.ID,
		&plan.Title,
		&plan.DurationMonths,
		&price,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	plan.PricePerMonth = parsed
	return &plan, nil
}

func (r *planRepository) List(ctx context.Context) ([]domain.Plan, error) {
	const query = `
        SELECT id, title, duration_months, price_per_month::text, created_at, updated_at
        FROM plans ORDER BY duration_months`

	rows, err := querier(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Plan
	for rows.Next() {
		var (
			plan  domain.Plan
			price string
		)
		if err := rows.Scan(
			&plan.ID,
			&plan.Title,
			&plan.DurationMonths,
			&price,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		plan.PricePerMonth = parsed
		result = append(result, plan)
	}
	return result, rows.Err()
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	cmd, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM plans WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gym-service/internal/domain"
)

// StudentRepository defines persistence access for gym members.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	Update(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	List(ctx context.Context, limit, offset int) ([]domain.Student, error)
	Delete(ctx context.Context, id string) error
}

type studentRepository struct {
	db Querier
}

// NewStudentRepository returns a Postgres-backed implementation.
func NewStudentRepository(db Querier) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	const query = `
        INSERT INTO students (name, email, age, weight_kg, height_m)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return querier(ctx, r.db).QueryRow(ctx, query,
		student.Name,
		student.Email,
		student.Age,
		student.WeightKG,
		student.HeightM,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
}

func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	const query = `
        UPDATE students SET name=$1, email=$2, age=$3, weight_kg=$4, height_m=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := querier(ctx, r.db).Exec(ctx, query,
		student.Name,
		student.Email,
		student.Age,
		student.WeightKG,
		student.HeightM,
		student.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	const query = `
        SELECT id, name, email, age, weight_kg, height_m, created_at, updated_at
        FROM students WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	const query = `
        SELECT id, name, email, age, weight_kg, height_m, created_at, updated_at
        FROM students WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *studentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Student, error) {
	var student domain.Student
	if err := querier(ctx, r.db).QueryRow(ctx, query, arg).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Age,
		&student.WeightKG,
		&student.HeightM,
		&student.CreatedAt,
		&student.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) List(ctx context.Context, limit, offset int) ([]domain.Student, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, name, email, age, weight_kg, height_m, created_at, updated_at
        FROM students ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := querier(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Student
	for rows.Next() {
		var student domain.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Age,
			&student.WeightKG,
			&student.HeightM,
			&student.CreatedAt,
			&student.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, student)
	}
	return result, rows.Err()
}

func (r *studentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := querier(ctx, r.db).Exec(ctx, `DELETE FROM students WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

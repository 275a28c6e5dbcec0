package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gym-service/internal/domain"
	"github.com/spec-kit/gym-service/internal/repository"
	"github.com/spec-kit/gym-service/pkg/util"
)

// StudentService manages gym member records.
type StudentService struct {
	students repository.StudentRepository
}

// StudentInput describes a student create or update request.
type StudentInput struct {
	Name     string
	Email    string
	Age      int
	WeightKG float64
	HeightM  float64
}

// NewStudentService constructs the service.
func NewStudentService(students repository.StudentRepository) *StudentService {
	return &StudentService{students: students}
}

// Create adds a student with a unique email.
func (s *StudentService) Create(ctx context.Context, input StudentInput) (*domain.Student, error) {
	student, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.students.GetByEmail(ctx, student.Email)
	if err != nil && err != pgx.ErrNoRows {
		return nil, util.MapError(err)
	}
	if existing != nil {
		return nil, util.NewConflict("email already in use", map[string]any{"email": student.Email})
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, util.MapError(err)
	}
	return student, nil
}

// Update changes a student's profile.
func (s *StudentService) Update(ctx context.Context, id string, input StudentInput) (*domain.Student, error) {
	current, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(notFoundAs(err, "student"))
	}

	student, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if student.Email != current.Email {
		existing, err := s.students.GetByEmail(ctx, student.Email)
		if err != nil && err != pgx.ErrNoRows {
			return nil, util.MapError(err)
		}
		if existing != nil {
			return nil, util.NewConflict("email already in use", map[string]any{"email": student.Email})
		}
	}

	student.ID = current.ID
	student.CreatedAt = current.CreatedAt
	if err := s.students.Update(ctx, student); err != nil {
		return nil, util.MapError(err)
	}
	return student, nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, util.MapError(notFoundAs(err, "student"))
	}
	return student, nil
}

// List returns students ordered by name.
func (s *StudentService) List(ctx context.Context, limit, offset int) ([]domain.Student, error) {
	students, err := s.students.List(ctx, limit, offset)
	if err != nil {
		return nil, util.MapError(err)
	}
	return students, nil
}

// Delete removes a student record.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if _, err := s.students.GetByID(ctx, id); err != nil {
		return util.MapError(notFoundAs(err, "student"))
	}
	if err := s.students.Delete(ctx, id); err != nil {
		return util.MapError(err)
	}
	return nil
}

func (s *StudentService) validate(input StudentInput) (*domain.Student, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" {
		return nil, util.NewValidationError("name is required", nil)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, util.NewValidationError("a valid email is required", map[string]any{"email": input.Email})
	}
	if input.Age <= 0 {
		return nil, util.NewValidationError("age must be positive", map[string]any{"age": input.Age})
	}
	if input.WeightKG <= 0 {
		return nil, util.NewValidationError("weight must be positive", map[string]any{"weight": input.WeightKG})
	}
	if input.HeightM <= 0 {
		return nil, util.NewValidationError("height must be positive", map[string]any{"height": input.HeightM})
	}

	return &domain.Student{
		Name:     name,
		Email:    email,
		Age:      input.Age,
		WeightKG: input.WeightKG,
		HeightM:  input.HeightM,
	}, nil
}

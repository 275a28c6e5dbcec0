package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-service/pkg/util"
)

func TestStudentCreateNormalizesEmail(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo())

	student, err := svc.Create(context.Background(), StudentInput{
		Name: " Ana Souza ", Email: " Ana@Example.com ", Age: 28, WeightKG: 62, HeightM: 1.68,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", student.Name)
	assert.Equal(t, "ana@example.com", student.Email)
}

func TestStudentCreateValidation(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo())

	cases := []StudentInput{
		{Name: "", Email: "a@b.com", Age: 20, WeightKG: 60, HeightM: 1.7},
		{Name: "Ana", Email: "not-an-email", Age: 20, WeightKG: 60, HeightM: 1.7},
		{Name: "Ana", Email: "a@b.com", Age: 0, WeightKG: 60, HeightM: 1.7},
		{Name: "Ana", Email: "a@b.com", Age: 20, WeightKG: 0, HeightM: 1.7},
		{Name: "Ana", Email: "a@b.com", Age: 20, WeightKG: 60, HeightM: 0},
	}
	for _, input := range cases {
		_, err := svc.Create(context.Background(), input)
		assert.True(t, util.IsCode(err, util.CodeValidationFailed), "input %+v", input)
	}
}

func TestStudentEmailUnique(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo())

	_, err := svc.Create(context.Background(), StudentInput{Name: "Ana", Email: "ana@example.com", Age: 28, WeightKG: 62, HeightM: 1.68})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), StudentInput{Name: "Outra Ana", Email: "ANA@example.com", Age: 30, WeightKG: 70, HeightM: 1.7})
	assert.True(t, util.IsCode(err, util.CodeConflict))
}

func TestStudentUpdate(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo())

	student, err := svc.Create(context.Background(), StudentInput{Name: "Ana", Email: "ana@example.com", Age: 28, WeightKG: 62, HeightM: 1.68})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), student.ID, StudentInput{Name: "Ana Souza", Email: "ana@example.com", Age: 29, WeightKG: 63, HeightM: 1.68})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", updated.Name)
	assert.Equal(t, 29, updated.Age)
	assert.Equal(t, student.ID, updated.ID)

	_, err = svc.Update(context.Background(), "missing", StudentInput{Name: "X", Email: "x@y.com", Age: 20, WeightKG: 60, HeightM: 1.7})
	assert.True(t, util.IsCode(err, util.CodeNotFound))
}

func TestStudentDelete(t *testing.T) {
	svc := NewStudentService(newFakeStudentRepo())

	student, err := svc.Create(context.Background(), StudentInput{Name: "Ana", Email: "ana@example.com", Age: 28, WeightKG: 62, HeightM: 1.68})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), student.ID))
	_, err = svc.Get(context.Background(), student.ID)
	assert.True(t, util.IsCode(err, util.CodeNotFound))
}

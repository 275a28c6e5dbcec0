package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gym-service/pkg/util"
)

func TestPlanCreateAndTotalPrice(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	plan, err := svc.Create(context.Background(), PlanInput{Title: "Start", DurationMonths: 1, PricePerMonth: "129.90"})
	require.NoError(t, err)
	assert.Equal(t, "129.90", plan.PricePerMonth.StringFixed(2))
	assert.Equal(t, "129.90", plan.TotalPrice().StringFixed(2))

	gold, err := svc.Create(context.Background(), PlanInput{Title: "Gold", DurationMonths: 3, PricePerMonth: "109.00"})
	require.NoError(t, err)
	assert.Equal(t, "327.00", gold.TotalPrice().StringFixed(2))
}

func TestPlanCreateValidation(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	cases := []PlanInput{
		{Title: "", DurationMonths: 1, PricePerMonth: "10.00"},
		{Title: "Bad", DurationMonths: 0, PricePerMonth: "10.00"},
		{Title: "Bad", DurationMonths: 1, PricePerMonth: "ten"},
		{Title: "Bad", DurationMonths: 1, PricePerMonth: "-1.00"},
	}
	for _, input := range cases {
		_, err := svc.Create(context.Background(), input)
		assert.True(t, util.IsCode(err, util.CodeValidationFailed), "input %+v", input)
	}
}

func TestPlanTitleUnique(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	_, err := svc.Create(context.Background(), PlanInput{Title: "Gold", DurationMonths: 3, PricePerMonth: "109.00"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), PlanInput{Title: "Gold", DurationMonths: 6, PricePerMonth: "99.00"})
	assert.True(t, util.IsCode(err, util.CodeConflict))
}

func TestPlanUpdate(t *testing.T) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo)

	plan, err := svc.Create(context.Background(), PlanInput{Title: "Gold", DurationMonths: 3, PricePerMonth: "109.00"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), plan.ID, PlanInput{Title: "Gold Plus", DurationMonths: 6, PricePerMonth: "99.00"})
	require.NoError(t, err)
	assert.Equal(t, "Gold Plus", updated.Title)
	assert.Equal(t, 6, updated.DurationMonths)

	_, err = svc.Update(context.Background(), "missing", PlanInput{Title: "X", DurationMonths: 1, PricePerMonth: "1.00"})
	assert.True(t, util.IsCode(err, util.CodeNotFound))
}

func TestPlanDelete(t *testing.T) {
	svc := NewPlanService(newFakePlanRepo())

	plan, err := svc.Create(context.Background(), PlanInput{Title: "Gold", DurationMonths: 3, PricePerMonth: "109.00"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), plan.ID))
	assert.True(t, util.IsCode(svc.Delete(context.Background(), plan.ID), util.CodeNotFound))
}

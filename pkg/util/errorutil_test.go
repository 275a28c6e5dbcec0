package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorCodesAndStatuses(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad", nil), CodeValidationFailed, http.StatusBadRequest},
		{NewNotFound("student", nil), CodeNotFound, http.StatusNotFound},
		{NewUnauthorized("nope"), CodeUnauthorized, http.StatusUnauthorized},
		{NewInvalidDate("past"), CodeInvalidDate, http.StatusBadRequest},
		{NewDuplicateRegistration("s1"), CodeDuplicateRegistration, http.StatusConflict},
		{NewDuplicateCheckin("s1"), CodeDuplicateCheckin, http.StatusBadRequest},
		{NewQuotaExceeded("s1", 5), CodeQuotaExceeded, http.StatusBadRequest},
		{NewAlreadyAnswered("h1"), CodeAlreadyAnswered, http.StatusConflict},
		{NewConflict("taken", nil), CodeConflict, http.StatusConflict},
		{NewTimeout(context.DeadlineExceeded), CodeTimeout, http.StatusGatewayTimeout},
		{NewInternalError(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			var domainErr *DomainError
			require.ErrorAs(t, tt.err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
			assert.Equal(t, tt.status, domainErr.HTTPStatus)
			assert.True(t, IsCode(tt.err, tt.code))
		})
	}
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	noRows := ToDomainError(fmt.Errorf("lookup: %w", pgx.ErrNoRows))
	assert.Equal(t, CodeNotFound, noRows.Code)

	deadline := ToDomainError(context.DeadlineExceeded)
	assert.Equal(t, CodeTimeout, deadline.Code)

	generic := ToDomainError(errors.New("disk on fire"))
	assert.Equal(t, CodeInternal, generic.Code)
	assert.Equal(t, http.StatusInternalServerError, generic.HTTPStatus)

	// Existing domain errors pass through untouched.
	orig := NewDuplicateCheckin("s1")
	assert.Same(t, orig.(*DomainError), ToDomainError(orig))
}

func TestQuotaExceededDetails(t *testing.T) {
	var domainErr *DomainError
	require.ErrorAs(t, NewQuotaExceeded("s1", 5), &domainErr)
	assert.Equal(t, "s1", domainErr.Details["student_id"])
	assert.Equal(t, 5, domainErr.Details["limit"])
}

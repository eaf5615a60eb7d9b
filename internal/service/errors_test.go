package service

import (
	"errors"
	"testing"

	"github.com/greenrise/greenrise-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrEmailNotFound, ErrInvalidCredentials, ErrOwnerNotFound}
	for i, a := range sentinels {
		for j, b := range sentinels {
			assert.Equal(t, i == j, errors.Is(a, b), "%v vs %v", a, b)
		}
	}
}

func TestServiceErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		service  string
		op       string
		err      error
		expected string
	}{
		{
			name:     "with underlying error",
			service:  "user",
			op:       "create",
			err:      errors.New("database connection failed"),
			expected: "user service create operation failed: database connection failed",
		},
		{
			name:     "without underlying error",
			service:  "hortalica",
			op:       "delete",
			expected: "hortalica service delete operation failed",
		},
		{
			name:     "with sentinel error",
			service:  "hortalica",
			op:       "create",
			err:      ErrOwnerNotFound,
			expected: "hortalica service create operation failed: owner user not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewServiceError(tt.service, tt.op, tt.err).Error())
		})
	}
}

func TestServiceErrorUnwrap(t *testing.T) {
	err := NewServiceError("user", "update", store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.NotErrorIs(t, err, store.ErrUserNotFound)

	outer := NewServiceError("wrapper", "wrap", err)
	var inner *ServiceError
	assert.True(t, errors.As(outer.Err, &inner))
	assert.Equal(t, "user", inner.Service)

	assert.Nil(t, NewServiceError("user", "get", nil).Unwrap())
}

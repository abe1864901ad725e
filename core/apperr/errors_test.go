package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidation("colorIds", "no active colors match %v", []string{"x"})
	assert.Equal(t, "validation failed for colorIds: no active colors match [x]", err.Error())
	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsConcurrency(err))
}

func TestCapExceeded(t *testing.T) {
	err := CapExceeded("combinations", 600, 500)
	assert.Equal(t, 600, err.Details["count"])
	assert.Equal(t, 500, err.Details["limit"])
	assert.Contains(t, err.Error(), "600")
	assert.Contains(t, err.Error(), "500")
}

func TestConcurrencyError(t *testing.T) {
	cause := errors.New("deadlock")
	err := &ConcurrencyError{Op: "generate variants", Attempts: 3, Err: cause}

	assert.Contains(t, err.Error(), "try again")
	assert.NotContains(t, err.Error(), "deadlock")
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsConcurrency(fmt.Errorf("outer: %w", err)))
}

func TestFromValidator(t *testing.T) {
	type input struct {
		Name string `validate:"required"`
	}
	err := validator.New().Struct(input{})
	require.Error(t, err)

	converted := FromValidator(err)
	var ve *ValidationError
	require.ErrorAs(t, converted, &ve)
	assert.Equal(t, "Name", ve.Field)
	assert.Equal(t, "required", ve.Details["Name"])

	plain := errors.New("boom")
	assert.Equal(t, plain, FromValidator(plain))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Validation", NewValidation("x", "bad"), http.StatusBadRequest},
		{"Concurrency", &ConcurrencyError{Op: "op"}, http.StatusConflict},
		{"Other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "not found wrapped", err: fmt.Errorf("category 3: %w", ErrNotFound), want: http.StatusNotFound},
		{name: "forbidden", err: ErrForbidden, want: http.StatusForbidden},
		{name: "validation", err: NewValidationError(FieldError{Field: "title", Message: "title is required"}), want: http.StatusBadRequest},
		{name: "empty quiz", err: ErrEmptyQuiz, want: http.StatusBadRequest},
		{name: "submit in progress", err: ErrSubmitInProgress, want: http.StatusConflict},
		{name: "unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: http.StatusConflict},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromError(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(
		FieldError{Field: "title", Message: "title is required"},
		FieldError{Field: "questions", Message: "questions is required"},
	)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "title is required; questions is required", err.Error())
	assert.Equal(t, []string{"title is required", "questions is required"}, err.Messages())

	empty := NewValidationError()
	assert.Equal(t, []string{ErrValidation.Error()}, empty.Messages())
}

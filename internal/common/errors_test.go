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
		{"nil", nil, http.StatusOK},
		{"duplicate username", ErrDuplicateUsername, http.StatusBadRequest},
		{"duplicate email", ErrDuplicateEmail, http.StatusBadRequest},
		{"missing credentials", ErrMissingCredentials, http.StatusBadRequest},
		{"invalid email", ErrInvalidEmail, http.StatusBadRequest},
		{"short password", ErrPasswordTooShort, http.StatusBadRequest},
		{"long username", ErrUsernameTooLong, http.StatusBadRequest},
		{"long email", ErrEmailTooLong, http.StatusBadRequest},
		{"long full name", ErrFullNameTooLong, http.StatusBadRequest},
		{"invalid role", ErrInvalidRole, http.StatusBadRequest},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"course not found", ErrCourseNotFound, http.StatusNotFound},
		{"already enrolled", ErrAlreadyEnrolled, http.StatusConflict},
		{"duplicate course", ErrDuplicateCourse, http.StatusConflict},
		{"store unavailable", ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"wrapped sentinel", fmt.Errorf("context: %w", ErrCourseNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromError(tt.err))
		})
	}
}

func TestHTTPStatusFromErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	assert.Equal(t, http.StatusConflict, HTTPStatusFromError(fmt.Errorf("insert: %w", pgErr)))
}

func TestClientMessage(t *testing.T) {
	assert.Equal(t, "Username already exists", ClientMessage(ErrDuplicateUsername))
	assert.Equal(t, "Invalid username or password", ClientMessage(ErrInvalidCredentials))

	// Internal details never reach the client.
	assert.Equal(t, "internal server error", ClientMessage(errors.New("pq: connection refused")))
}

package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain errors whose messages are the exact client-facing strings the
// endpoint layer returns. Services return these bare (unwrapped) so the
// handler can use err.Error() as the response message directly.
var (
	ErrDuplicateUsername  = errors.New("Username already exists")
	ErrDuplicateEmail     = errors.New("Email already exists")
	ErrInvalidCredentials = errors.New("Invalid username or password")

	ErrMissingCredentials = errors.New("username, email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrUsernameTooLong    = errors.New("username must be at most 50 characters")
	ErrEmailTooLong       = errors.New("email must be at most 100 characters")
	ErrFullNameTooLong    = errors.New("fullName must be at most 100 characters")
	ErrInvalidRole        = errors.New("invalid role")

	ErrCourseNotFound  = errors.New("Course not found")
	ErrDuplicateCourse = errors.New("A course with this title already exists")
	ErrAlreadyEnrolled = errors.New("Already enrolled in this course")
	ErrMissingCourseID = errors.New("courseId is required")
	ErrMissingFeedback = errors.New("feedback text is required")
	ErrMissingTitle    = errors.New("title is required")
)

// Infrastructure and generic errors.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden access")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")
	ErrInternalServer   = errors.New("internal server error")
	ErrStoreUnavailable = errors.New("storage unavailable")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch {
	case errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrUsernameTooLong),
		errors.Is(err, ErrEmailTooLong),
		errors.Is(err, ErrFullNameTooLong),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrMissingCourseID),
		errors.Is(err, ErrMissingFeedback),
		errors.Is(err, ErrMissingTitle),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCourseNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyEnrolled),
		errors.Is(err, ErrDuplicateCourse),
		errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	}

	// Unique violations that escaped repository translation.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// ClientMessage returns the message safe to put in a response body. Internal
// errors are never leaked; everything else carries its own client string.
func ClientMessage(err error) string {
	if HTTPStatusFromError(err) == http.StatusInternalServerError {
		return ErrInternalServer.Error()
	}
	return err.Error()
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

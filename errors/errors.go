package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries a message plus the HTTP status the handlers should answer
// with when it reaches the edge.
type Error struct {
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string, status int) *Error {
	return &Error{Message: message, Status: status}
}

// The closed set of engine outcomes. Business-rule rejections are
// recoverable and returned to the caller; only ErrStorageUnavailable marks
// infrastructure failure and is safe to retry.
var (
	ErrQuotaExceeded      = New("daily report limit reached", http.StatusTooManyRequests)
	ErrSelfVote           = New("cannot vote on your own report", http.StatusForbidden)
	ErrDuplicateVote      = New("already voted on this report", http.StatusConflict)
	ErrReportGone         = New("report no longer exists", http.StatusGone)
	ErrUserNotFound       = New("user not found", http.StatusNotFound)
	ErrInsufficientPoints = New("insufficient points", http.StatusPaymentRequired)
	ErrAlreadyPremium     = New("user is already premium", http.StatusConflict)
	ErrUsernameTaken      = New("username already taken", http.StatusConflict)
	ErrEmailTaken         = New("email already registered", http.StatusConflict)
	ErrInvalidCategory    = New("unknown report category", http.StatusBadRequest)

	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrStorageUnavailable  = New("storage unavailable, retry later", http.StatusServiceUnavailable)
)

// Is reports whether err is (or wraps) the given engine error.
func Is(err error, target *Error) bool {
	return errors.Is(err, target)
}

// StatusOf extracts the HTTP status from an error, defaulting to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Wrap annotates err with the operation that produced it.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

package errors

import (
	"errors"
	"fmt"
)

var (
	// Auth
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrEmptyAuthHeader      = errors.New("authorization header is missing")
	ErrInvalidAuthHeader    = errors.New("malformed authorization header")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")

	// Context
	ErrUserIDNotFoundInContext = errors.New("user id not found in request context")

	// Generic
	ErrNotFound   = errors.New("record not found")
	ErrBadRequest = errors.New("bad request")

	// Review workflow: rejecting a report or returning an approved one
	// for revision requires non-empty review notes.
	ErrMissingReviewNotes = errors.New("review notes are required")
)

// InvalidTransitionError reports a status edge that is not in the
// transition table of the entity's state machine.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition: %s -> %s", e.Entity, e.From, e.To)
}

func NewInvalidTransitionError(entity, from, to string) error {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

// ValidationError is a user-facing input error (missing required field,
// malformed value) detected before any write happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PartialWriteError wraps a failure in the middle of a multi-row write
// (parent plus child rows). By the time it is returned the surrounding
// transaction has been rolled back, so no orphaned rows remain.
type PartialWriteError struct {
	Table string
	Err   error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write on %s rolled back: %v", e.Table, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

func NewPartialWriteError(table string, err error) error {
	return &PartialWriteError{Table: table, Err: err}
}

// HttpError carries an explicit HTTP code and user message alongside the
// internal error and structured context for logging.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) error {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

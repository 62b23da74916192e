package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrMissingReason indicates a status or qualification change that requires a reason was requested without one.
var ErrMissingReason = errors.New("reason is required for this change")

// ErrConflict indicates the stored record changed since it was loaded (version mismatch).
var ErrConflict = errors.New("resource was modified concurrently")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrPersistence indicates the aggregate write itself failed. Nothing was committed.
var ErrPersistence = errors.New("persistence failure")

// ErrAuditWrite indicates the aggregate write succeeded but the history append failed.
var ErrAuditWrite = errors.New("audit history write failed")

// AppError carries an HTTP status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

// AuditWriteError reports that a mutation was persisted but its history entries were not.
// The mutation is not rolled back; callers treat the request as successful and escalate the log.
type AuditWriteError struct {
	OpportunityID string
	Entries       int
	Err           error
}

func (e *AuditWriteError) Error() string {
	return fmt.Sprintf("opportunity %s: failed to append %d history entries: %v", e.OpportunityID, e.Entries, e.Err)
}

// Is lets errors.Is(err, ErrAuditWrite) match.
func (e *AuditWriteError) Is(target error) bool {
	return target == ErrAuditWrite
}

func (e *AuditWriteError) Unwrap() error {
	return e.Err
}

package reminder

import (
	"errors"
	"fmt"

	"dua-reminders/internal/common"
)

// Error codes for reminder module
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeReminderNotFound = "REMINDER_NOT_FOUND"
	ErrCodePersistence      = "PERSISTENCE_ERROR"
	ErrCodePermissionDenied = "PERMISSION_DENIED"
	ErrCodeSchedulingFailed = "SCHEDULING_FAILED"
)

// ErrPermissionDenied is returned by a PlatformNotifier when notification permission was refused
var ErrPermissionDenied = errors.New("notification permission denied")

// ReminderError interface for reminder-specific errors
type ReminderError interface {
	error
	Code() string
	Message() string
	Temporary() bool
}

// ValidationError represents a rejected request shape
type ValidationError struct {
	Field      string
	Value      interface{}
	ErrMessage string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("reminder validation failed for field '%s': %s (value: %v)", e.Field, e.ErrMessage, e.Value)
}

func (e ValidationError) Code() string {
	return ErrCodeValidationFailed
}

func (e ValidationError) Message() string {
	return e.ErrMessage
}

func (e ValidationError) Temporary() bool {
	return false
}

// NotFoundError represents an operation on an unknown reminder id
type NotFoundError struct {
	ReminderID common.ID
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("reminder with ID '%s' not found", e.ReminderID)
}

func (e NotFoundError) Code() string {
	return ErrCodeReminderNotFound
}

func (e NotFoundError) Message() string {
	return e.Error()
}

func (e NotFoundError) Temporary() bool {
	return false
}

// PersistenceError represents a store read or write failure
type PersistenceError struct {
	Operation string
	Details   string
	Cause     error
}

func (e PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence error during %s: %s (caused by: %v)", e.Operation, e.Details, e.Cause)
	}
	return fmt.Sprintf("persistence error during %s: %s", e.Operation, e.Details)
}

func (e PersistenceError) Code() string {
	return ErrCodePersistence
}

func (e PersistenceError) Message() string {
	return e.Details
}

func (e PersistenceError) Temporary() bool {
	return true
}

func (e PersistenceError) Unwrap() error {
	return e.Cause
}

// PermissionError represents a refused notification permission
type PermissionError struct {
	ReminderID common.ID
	Cause      error
}

func (e PermissionError) Error() string {
	return fmt.Sprintf("notification permission denied while scheduling reminder '%s'", e.ReminderID)
}

func (e PermissionError) Code() string {
	return ErrCodePermissionDenied
}

func (e PermissionError) Message() string {
	return "notification permission is required to schedule reminders"
}

func (e PermissionError) Temporary() bool {
	return false
}

func (e PermissionError) Unwrap() error {
	return e.Cause
}

// SchedulingError represents any other notifier failure
type SchedulingError struct {
	ReminderID common.ID
	ErrMessage string
	Cause      error
}

func (e SchedulingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("notification scheduling failed for reminder '%s': %s (caused by: %v)", e.ReminderID, e.ErrMessage, e.Cause)
	}
	return fmt.Sprintf("notification scheduling failed for reminder '%s': %s", e.ReminderID, e.ErrMessage)
}

func (e SchedulingError) Code() string {
	return ErrCodeSchedulingFailed
}

func (e SchedulingError) Message() string {
	return e.ErrMessage
}

func (e SchedulingError) Temporary() bool {
	return true
}

func (e SchedulingError) Unwrap() error {
	return e.Cause
}

// Error wrapping utilities

// WrapPersistenceError wraps an error as a PersistenceError
func WrapPersistenceError(err error, operation string) error {
	if err == nil {
		return nil
	}
	var pe PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return PersistenceError{
		Operation: operation,
		Details:   "storage operation failed",
		Cause:     err,
	}
}

// WrapNotifierError classifies a PlatformNotifier failure
func WrapNotifierError(err error, id common.ID, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPermissionDenied) {
		return PermissionError{ReminderID: id, Cause: err}
	}
	return SchedulingError{
		ReminderID: id,
		ErrMessage: operation + " failed",
		Cause:      err,
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) error {
	return ValidationError{
		Field:      field,
		Value:      value,
		ErrMessage: message,
	}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(id common.ID) error {
	return NotFoundError{ReminderID: id}
}

// Error classification helpers

func errorCode(err error) string {
	var reminderErr ReminderError
	if errors.As(err, &reminderErr) {
		return reminderErr.Code()
	}
	return ""
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	if errorCode(err) == ErrCodeReminderNotFound {
		return true
	}
	var notFound common.NotFoundError
	return errors.As(err, &notFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	if errorCode(err) == ErrCodeValidationFailed {
		return true
	}
	var validation common.ValidationError
	return errors.As(err, &validation)
}

// IsPersistenceError checks if the error is a persistence error
func IsPersistenceError(err error) bool {
	return errorCode(err) == ErrCodePersistence
}

// IsPermissionError checks if the error is a permission error
func IsPermissionError(err error) bool {
	return errorCode(err) == ErrCodePermissionDenied || errors.Is(err, ErrPermissionDenied)
}

// IsTemporaryError checks if the error is temporary and can be retried
func IsTemporaryError(err error) bool {
	var reminderErr ReminderError
	if errors.As(err, &reminderErr) {
		return reminderErr.Temporary()
	}
	return false
}

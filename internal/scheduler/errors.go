package scheduler

import (
	"errors"
	"fmt"
)

// SchedulerError defines the interface for scheduler-specific errors
type SchedulerError interface {
	error
	Code() string
	Message() string
	Temporary() bool
}

// schedulerError implements the SchedulerError interface
type schedulerError struct {
	code      string
	message   string
	temporary bool
}

func (e *schedulerError) Error() string {
	return fmt.Sprintf("scheduler error [%s]: %s", e.code, e.message)
}

func (e *schedulerError) Code() string {
	return e.code
}

func (e *schedulerError) Message() string {
	return e.message
}

func (e *schedulerError) Temporary() bool {
	return e.temporary
}

// Error constants
const (
	ErrSchedulerNotRunning     = "scheduler_not_running"
	ErrSchedulerAlreadyRunning = "scheduler_already_running"
	ErrInvalidConfiguration    = "invalid_configuration"
	ErrDispatchFailed          = "dispatch_failed"
	ErrCleanupFailed           = "cleanup_failed"
	ErrWorkerPanic             = "worker_panic"
	ErrShutdownTimeout         = "shutdown_timeout"
)

// DispatchError reports a due notification that could not be delivered or announced
type DispatchError struct {
	schedulerError
	NotificationID string
	Operation      string
	Cause          error
}

func (e *DispatchError) Unwrap() error {
	return e.Cause
}

type WorkerError struct {
	schedulerError
	WorkerID  int
	Operation string
}

type ShutdownError struct {
	schedulerError
	TimeoutSeconds int
}

type ConfigurationError struct {
	schedulerError
	Field string
	Value interface{}
}

// Constructor functions
func NewSchedulerError(code, message string) error {
	return &schedulerError{
		code:      code,
		message:   message,
		temporary: false,
	}
}

func NewDispatchError(notificationID, operation string, err error) error {
	return &DispatchError{
		schedulerError: schedulerError{
			code:      ErrDispatchFailed,
			message:   fmt.Sprintf("failed to dispatch notification %s during %s: %v", notificationID, operation, err),
			temporary: true,
		},
		NotificationID: notificationID,
		Operation:      operation,
		Cause:          err,
	}
}

func NewCleanupError(err error) error {
	return &schedulerError{
		code:      ErrCleanupFailed,
		message:   fmt.Sprintf("expired reminder cleanup failed: %v", err),
		temporary: true,
	}
}

func NewWorkerError(workerID int, operation string, err error) error {
	return &WorkerError{
		schedulerError: schedulerError{
			code:      ErrWorkerPanic,
			message:   fmt.Sprintf("worker %d failed during %s: %v", workerID, operation, err),
			temporary: true,
		},
		WorkerID:  workerID,
		Operation: operation,
	}
}

func NewShutdownError(message string, timeoutSeconds int) error {
	return &ShutdownError{
		schedulerError: schedulerError{
			code:      ErrShutdownTimeout,
			message:   message,
			temporary: false,
		},
		TimeoutSeconds: timeoutSeconds,
	}
}

func NewConfigurationError(field string, value interface{}, message string) error {
	return &ConfigurationError{
		schedulerError: schedulerError{
			code:      ErrInvalidConfiguration,
			message:   fmt.Sprintf("invalid configuration for field %s (value: %v): %s", field, value, message),
			temporary: false,
		},
		Field: field,
		Value: value,
	}
}

// Error classification helpers
func IsTemporaryError(err error) bool {
	var schedErr SchedulerError
	if errors.As(err, &schedErr) {
		return schedErr.Temporary()
	}
	return false
}

func IsConfigurationError(err error) bool {
	var schedErr SchedulerError
	if errors.As(err, &schedErr) {
		return schedErr.Code() == ErrInvalidConfiguration
	}
	return false
}

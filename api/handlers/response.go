package handlers

import (
	"errors"
	"net/http"

	"dua-reminders/internal/reminder"
	"dua-reminders/pkg/logger"

	"github.com/gin-gonic/gin"
)

const errCodeInternal = "INTERNAL_ERROR"

// Response is the envelope of every API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data})
}

func respondError(c *gin.Context, log *logger.Logger, err error) {
	status, code := classify(err)

	message := err.Error()
	var reminderErr reminder.ReminderError
	if errors.As(err, &reminderErr) {
		message = reminderErr.Message()
	}
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	if status >= http.StatusInternalServerError {
		requestLogger(c, log).Errorw("Request failed", "status_code", status, "error", err)
	} else {
		requestLogger(c, log).Infow("Request rejected", "status_code", status, "error", err)
	}

	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}

// classify maps service errors to HTTP status codes and error codes
func classify(err error) (int, string) {
	code := errCodeInternal
	var reminderErr reminder.ReminderError
	if errors.As(err, &reminderErr) {
		code = reminderErr.Code()
	}

	switch {
	case reminder.IsValidationError(err):
		return http.StatusBadRequest, reminder.ErrCodeValidationFailed
	case reminder.IsNotFoundError(err):
		return http.StatusNotFound, reminder.ErrCodeReminderNotFound
	case reminder.IsPermissionError(err):
		return http.StatusForbidden, reminder.ErrCodePermissionDenied
	case reminder.IsTemporaryError(err):
		return http.StatusServiceUnavailable, code
	default:
		return http.StatusInternalServerError, code
	}
}

// requestLogger returns the request-scoped logger set by the logging middleware
func requestLogger(c *gin.Context, fallback *logger.Logger) *logger.Logger {
	if value, ok := c.Get("logger"); ok {
		if l, ok := value.(*logger.Logger); ok {
			return l
		}
	}
	return fallback
}

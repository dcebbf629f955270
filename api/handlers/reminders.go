package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"dua-reminders/internal/common"
	"dua-reminders/internal/reminder"
	"dua-reminders/pkg/logger"

	"github.com/gin-gonic/gin"
)

// maxImportBytes bounds the size of an uploaded backup document
const maxImportBytes = 8 << 20

// ReminderHandler exposes the reminder service over HTTP
type ReminderHandler struct {
	service reminder.ReminderService
	logger  *logger.Logger
}

// NewReminderHandler creates a new ReminderHandler instance
func NewReminderHandler(service reminder.ReminderService, logger *logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		service: service,
		logger:  logger,
	}
}

// List returns every stored reminder in creation order
func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.service.GetReminders(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, reminders)
}

// Create validates the request body and creates an active reminder
func (h *ReminderHandler) Create(c *gin.Context) {
	var req reminder.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, reminder.NewValidationError("body", nil, "request body is not a valid reminder: "+err.Error()))
		return
	}

	created, err := h.service.CreateReminder(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

// Get returns the reminder named by the :id path parameter
func (h *ReminderHandler) Get(c *gin.Context) {
	found, err := h.service.GetReminder(c.Request.Context(), reminderID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, found)
}

// Update applies a partial update and reschedules the reminder
func (h *ReminderHandler) Update(c *gin.Context) {
	var update reminder.ReminderUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, h.logger, reminder.NewValidationError("body", nil, "request body is not a valid update: "+err.Error()))
		return
	}

	updated, err := h.service.UpdateReminder(c.Request.Context(), reminderID(c), update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

// Delete removes a reminder and cancels its notification. History is kept.
func (h *ReminderHandler) Delete(c *gin.Context) {
	id := reminderID(c)
	if err := h.service.DeleteReminder(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

// Toggle flips a reminder between active and inactive
func (h *ReminderHandler) Toggle(c *gin.Context) {
	h.transition(c, h.service.ToggleReminder)
}

// Pause suspends an active reminder without deactivating it
func (h *ReminderHandler) Pause(c *gin.Context) {
	h.transition(c, h.service.PauseReminder)
}

// Resume reschedules a paused reminder from the current time
func (h *ReminderHandler) Resume(c *gin.Context) {
	h.transition(c, h.service.ResumeReminder)
}

// Complete records that the user recited the supplication
func (h *ReminderHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.MarkReminderCompleted)
}

// transition runs a single-reminder state change named by the :id path parameter
func (h *ReminderHandler) transition(c *gin.Context, op func(ctx context.Context, id common.ID) (*reminder.SupplicationReminder, error)) {
	updated, err := op(c.Request.Context(), reminderID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, updated)
}

// Stats returns the streak and completion statistics
func (h *ReminderHandler) Stats(c *gin.Context) {
	stats, err := h.service.GetReminderStats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, stats)
}

// History returns history entries, most recent first. An optional limit query
// parameter caps the number of entries.
func (h *ReminderHandler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, h.logger, reminder.NewValidationError("limit", raw, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	history, err := h.service.GetReminderHistory(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, history)
}

// Export returns the backup document of all reminders and history
func (h *ReminderHandler) Export(c *gin.Context) {
	doc, err := h.service.ExportReminders(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, doc)
}

// Import replaces the dataset with an uploaded backup document
func (h *ReminderHandler) Import(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, h.logger, reminder.NewValidationError("document", nil, "backup document is too large"))
			return
		}
		respondError(c, h.logger, reminder.NewValidationError("document", nil, "failed to read backup document"))
		return
	}

	// A request wrapping the document as {"data": {...}} is accepted so that an
	// export response can be posted back unchanged.
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Data) > 0 {
		body = envelope.Data
	}

	result, err := h.service.ImportReminders(c.Request.Context(), body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// Cleanup deactivates reminders whose end date has passed
func (h *ReminderHandler) Cleanup(c *gin.Context) {
	result, err := h.service.CleanupExpiredReminders(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// Reset deletes all reminders and history
func (h *ReminderHandler) Reset(c *gin.Context) {
	if err := h.service.ResetReminders(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"reset": true})
}

// TestNotification schedules a one-off notification a few seconds ahead
func (h *ReminderHandler) TestNotification(c *gin.Context) {
	scheduled, err := h.service.TestNotification(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusAccepted, scheduled)
}

// ScheduledNotifications lists the notifications pending on the notifier
func (h *ReminderHandler) ScheduledNotifications(c *gin.Context) {
	scheduled, err := h.service.ListScheduledNotifications(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, scheduled)
}

// Sync realigns the pending notifications with the stored reminders
func (h *ReminderHandler) Sync(c *gin.Context) {
	result, err := h.service.SyncNotifications(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

func reminderID(c *gin.Context) common.ID {
	return common.ID(c.Param("id"))
}

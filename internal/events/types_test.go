package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypes_EventCreation(t *testing.T) {
	before := time.Now()
	first := NewEvent()
	second := NewEvent()

	_, err := uuid.Parse(first.CorrelationID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.CorrelationID, second.CorrelationID)
	assert.False(t, first.Timestamp.Before(before))
}

func TestEventTypes_TopicConstants(t *testing.T) {
	topics := []string{
		TopicReminderCreated,
		TopicReminderUpdated,
		TopicReminderCompleted,
		TopicReminderDeactivated,
		TopicReminderDeleted,
		TopicNotificationFired,
		TopicRemindersImported,
	}

	seen := make(map[string]bool, len(topics))
	for _, topic := range topics {
		assert.NotEmpty(t, topic)
		assert.False(t, seen[topic], "duplicate topic %q", topic)
		seen[topic] = true
	}
}

func TestEventTypes_Serialization(t *testing.T) {
	scheduledFor := time.Date(2024, 3, 13, 8, 30, 0, 0, time.UTC)
	event := NotificationFired{
		Event:          Event{CorrelationID: "corr-1", Timestamp: scheduledFor},
		NotificationID: "r-1",
		Title:          "Morning remembrance",
		Sound:          true,
		ScheduledFor:   scheduledFor,
		FiredAt:        scheduledFor.Add(2 * time.Second),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"correlation_id": "corr-1",
		"timestamp": "2024-03-13T08:30:00Z",
		"notification_id": "r-1",
		"title": "Morning remembrance",
		"sound": true,
		"vibration": false,
		"scheduled_for": "2024-03-13T08:30:00Z",
		"fired_at": "2024-03-13T08:30:02Z"
	}`, string(data))

	var decoded NotificationFired
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.ScheduledFor.Equal(scheduledFor))

	created, err := json.Marshal(ReminderCreated{Event: event.Event, ReminderID: "r-1", SupplicationTitle: "t", Frequency: "daily"})
	require.NoError(t, err)
	assert.NotContains(t, string(created), "next_trigger")
}

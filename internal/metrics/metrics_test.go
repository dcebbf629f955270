package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_ObserveOperation(t *testing.T) {
	recorder := NewRecorder()

	before := testutil.ToFloat64(ReminderOperations.WithLabelValues("create", "success"))
	failedBefore := testutil.ToFloat64(ReminderOperations.WithLabelValues("create", "error"))

	recorder.ObserveOperation("create", nil)
	recorder.ObserveOperation("create", nil)
	recorder.ObserveOperation("create", errors.New("boom"))

	assert.Equal(t, before+2, testutil.ToFloat64(ReminderOperations.WithLabelValues("create", "success")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(ReminderOperations.WithLabelValues("create", "error")))
}

func TestRecorder_SetActiveReminders(t *testing.T) {
	NewRecorder().SetActiveReminders(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(ActiveReminders))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "success", Status(nil))
	assert.Equal(t, "error", Status(errors.New("x")))
}

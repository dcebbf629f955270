package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dua-reminders/internal/common"
	"dua-reminders/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestStore(t *testing.T) (*storage.MemoryStore, ReminderStore) {
	kv := storage.NewMemoryStore()
	return kv, NewReminderStore(kv, zaptest.NewLogger(t))
}

func sampleReminder(title string) SupplicationReminder {
	now := time.Date(2024, 3, 13, 8, 0, 0, 0, time.UTC)
	return SupplicationReminder{
		ID:                common.NewID(),
		SupplicationID:    "dua-001",
		SupplicationTitle: title,
		ScheduledTime:     TimeOfDay{Hour: 9},
		Frequency:         FrequencyDaily,
		IsActive:          true,
		NotificationStyle: StylePreview,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestReminderStore_EmptyBackend(t *testing.T) {
	ctx := context.Background()
	_, store := newTestStore(t)

	assert.Empty(t, store.GetAll(ctx))
	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	history, err := store.GetHistory(ctx)
	require.NoError(t, err)
	assert.NotNil(t, history)
}

func TestReminderStore_CorruptDataIsEmpty(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestStore(t)
	kv.Raw(RemindersKey, []byte("{not json"))
	kv.Raw(HistoryKey, []byte("42"))

	assert.Empty(t, store.GetAll(ctx))
	history, err := store.GetHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestReminderStore_UnavailableBackend(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestStore(t)
	require.NoError(t, store.SaveAll(ctx, []SupplicationReminder{sampleReminder("a")}))

	kv.FailReads(errors.New("connection reset"))

	assert.Empty(t, store.GetAll(ctx), "lenient read hides the failure")

	_, err := store.List(ctx)
	assert.True(t, IsPersistenceError(err))

	_, err = store.GetHistory(ctx)
	assert.True(t, IsPersistenceError(err))

	called := false
	err = store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
		called = true
		return list, nil
	})
	assert.True(t, IsPersistenceError(err))
	assert.False(t, called, "nothing is overwritten when the current list cannot be read")

	kv.FailReads(nil)
	assert.Len(t, store.GetAll(ctx), 1)
}

func TestReminderStore_SaveAndUpdate(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestStore(t)

	first := sampleReminder("first")
	second := sampleReminder("second")
	require.NoError(t, store.SaveAll(ctx, []SupplicationReminder{first, second}))

	err := store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
		list[1].CompletionCount = 3
		return list, nil
	})
	require.NoError(t, err)

	got := store.GetAll(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].SupplicationTitle, "creation order is kept")
	assert.Equal(t, 3, got[1].CompletionCount)

	writes := len(kv.Writes())
	errBoom := errors.New("boom")
	err = store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
		return nil, errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, kv.Writes(), writes, "a failing update writes nothing")
}

func TestReminderStore_WriteFailure(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestStore(t)
	kv.FailWrites(RemindersKey, errors.New("quota exceeded"))

	err := store.SaveAll(ctx, []SupplicationReminder{sampleReminder("a")})
	assert.True(t, IsPersistenceError(err))
	assert.True(t, IsTemporaryError(err))
}

func TestReminderStore_AppendHistoryKeepsOrder(t *testing.T) {
	ctx := context.Background()
	_, store := newTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.AppendHistory(ctx, ReminderHistory{
			ID:           common.NewID(),
			ReminderID:   "r",
			TriggeredAt:  time.Date(2024, 3, 10+i, 9, 0, 0, 0, time.UTC),
			WasCompleted: true,
		}))
	}

	history, err := store.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 10, history[0].TriggeredAt.Day())
	assert.Equal(t, 12, history[2].TriggeredAt.Day())
}

func TestReminderStore_ReplaceAllRollsBackReminders(t *testing.T) {
	ctx := context.Background()
	kv, store := newTestStore(t)

	original := sampleReminder("original")
	require.NoError(t, store.SaveAll(ctx, []SupplicationReminder{original}))

	kv.FailWrites(HistoryKey, errors.New("disk full"))
	err := store.ReplaceAll(ctx, []SupplicationReminder{sampleReminder("imported")}, []ReminderHistory{})
	assert.True(t, IsPersistenceError(err))

	got := store.GetAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, original.ID, got[0].ID)

	kv.FailWrites(HistoryKey, nil)
	require.NoError(t, store.ReplaceAll(ctx, []SupplicationReminder{}, []ReminderHistory{}))
	assert.Empty(t, store.GetAll(ctx))
}

func TestReminderStore_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	ctx := context.Background()
	_, store := newTestStore(t)
	require.NoError(t, store.SaveAll(ctx, []SupplicationReminder{sampleReminder("counter")}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, func(list []SupplicationReminder) ([]SupplicationReminder, error) {
				list[0].CompletionCount++
				return list, nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.GetAll(ctx)[0].CompletionCount)
}

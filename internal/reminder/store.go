package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"dua-reminders/internal/storage"

	"go.uber.org/zap"
)

// Fixed keys of the two persisted records
const (
	RemindersKey = "supplication_reminders"
	HistoryKey   = "reminder_history"
)

// ReminderStore persists the reminder list and the history log as whole JSON arrays.
// Mutations rewrite the full list; concurrent writers are serialized and the last
// writer wins on the whole list.
type ReminderStore interface {
	// GetAll never fails: unavailable or corrupt data yields an empty list and a warning
	GetAll(ctx context.Context) []SupplicationReminder
	// List is the strict variant of GetAll that reports an unavailable backend
	List(ctx context.Context) ([]SupplicationReminder, error)
	SaveAll(ctx context.Context, reminders []SupplicationReminder) error
	// Update runs fn on the current list and persists its result atomically.
	// An error from fn is returned unchanged and nothing is written.
	Update(ctx context.Context, fn func([]SupplicationReminder) ([]SupplicationReminder, error)) error
	AppendHistory(ctx context.Context, entry ReminderHistory) error
	GetHistory(ctx context.Context) ([]ReminderHistory, error)
	// ReplaceAll swaps both collections, restoring the previous reminders if the history write fails
	ReplaceAll(ctx context.Context, reminders []SupplicationReminder, history []ReminderHistory) error
}

type kvReminderStore struct {
	kv        storage.KeyValueStore
	logger    *zap.Logger
	mu        sync.Mutex
	historyMu sync.Mutex
}

// NewReminderStore creates a ReminderStore on top of a key-value backend
func NewReminderStore(kv storage.KeyValueStore, logger *zap.Logger) ReminderStore {
	return &kvReminderStore{
		kv:     kv,
		logger: logger,
	}
}

func (s *kvReminderStore) GetAll(ctx context.Context) []SupplicationReminder {
	reminders, err := s.loadReminders(ctx)
	if err != nil {
		s.logger.Warn("Reminder storage unavailable, returning empty list", zap.Error(err))
		return []SupplicationReminder{}
	}
	return reminders
}

func (s *kvReminderStore) List(ctx context.Context) ([]SupplicationReminder, error) {
	return s.loadReminders(ctx)
}

func (s *kvReminderStore) SaveAll(ctx context.Context, reminders []SupplicationReminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveReminders(ctx, reminders)
}

func (s *kvReminderStore) Update(ctx context.Context, fn func([]SupplicationReminder) ([]SupplicationReminder, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadReminders(ctx)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	return s.saveReminders(ctx, next)
}

func (s *kvReminderStore) AppendHistory(ctx context.Context, entry ReminderHistory) error {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	history, err := s.loadHistory(ctx)
	if err != nil {
		return err
	}

	return s.saveHistory(ctx, append(history, entry))
}

func (s *kvReminderStore) GetHistory(ctx context.Context) ([]ReminderHistory, error) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	return s.loadHistory(ctx)
}

func (s *kvReminderStore) ReplaceAll(ctx context.Context, reminders []SupplicationReminder, history []ReminderHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	previous, err := s.kv.Get(ctx, RemindersKey)
	hadPrevious := err == nil
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return WrapPersistenceError(err, "replace reminders")
	}

	if err := s.saveReminders(ctx, reminders); err != nil {
		return err
	}

	if err := s.saveHistory(ctx, history); err != nil {
		var rollbackErr error
		if hadPrevious {
			rollbackErr = s.kv.Set(ctx, RemindersKey, previous)
		} else {
			rollbackErr = s.kv.Delete(ctx, RemindersKey)
		}
		if rollbackErr != nil {
			s.logger.Error("Failed to roll back reminders after history write failure",
				zap.Error(rollbackErr))
		}
		return err
	}

	return nil
}

// loadReminders distinguishes an unavailable backend (error) from corrupt data (empty list)
func (s *kvReminderStore) loadReminders(ctx context.Context) ([]SupplicationReminder, error) {
	data, err := s.kv.Get(ctx, RemindersKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []SupplicationReminder{}, nil
		}
		return nil, WrapPersistenceError(err, "load reminders")
	}

	var reminders []SupplicationReminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		s.logger.Warn("Corrupt reminder record, treating as empty",
			zap.String("key", RemindersKey),
			zap.Error(err))
		return []SupplicationReminder{}, nil
	}
	if reminders == nil {
		reminders = []SupplicationReminder{}
	}
	return reminders, nil
}

func (s *kvReminderStore) saveReminders(ctx context.Context, reminders []SupplicationReminder) error {
	if reminders == nil {
		reminders = []SupplicationReminder{}
	}
	data, err := json.Marshal(reminders)
	if err != nil {
		return WrapPersistenceError(err, "encode reminders")
	}
	if err := s.kv.Set(ctx, RemindersKey, data); err != nil {
		return WrapPersistenceError(err, "save reminders")
	}
	return nil
}

func (s *kvReminderStore) loadHistory(ctx context.Context) ([]ReminderHistory, error) {
	data, err := s.kv.Get(ctx, HistoryKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []ReminderHistory{}, nil
		}
		return nil, WrapPersistenceError(err, "load history")
	}

	var history []ReminderHistory
	if err := json.Unmarshal(data, &history); err != nil {
		s.logger.Warn("Corrupt history record, treating as empty",
			zap.String("key", HistoryKey),
			zap.Error(err))
		return []ReminderHistory{}, nil
	}
	if history == nil {
		history = []ReminderHistory{}
	}
	return history, nil
}

func (s *kvReminderStore) saveHistory(ctx context.Context, history []ReminderHistory) error {
	if history == nil {
		history = []ReminderHistory{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return WrapPersistenceError(err, "encode history")
	}
	if err := s.kv.Set(ctx, HistoryKey, data); err != nil {
		return WrapPersistenceError(err, "save history")
	}
	return nil
}

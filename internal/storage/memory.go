package storage

import (
	"context"
	"sync"
)

// MemoryStore is a process-local KeyValueStore. Values are copied on the way
// in and out. Failures can be injected per operation for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string][]byte
	closed   bool
	getErr   error
	setErr   map[string]error
	writeLog []string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:   make(map[string][]byte),
		setErr: make(map[string]error),
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	if m.getErr != nil {
		return nil, m.getErr
	}
	value, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if err := m.setErr[key]; err != nil {
		return err
	}
	m.data[key] = append([]byte(nil), value...)
	m.writeLog = append(m.writeLog, key)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrStoreClosed
	}
	return m.getErr
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}

// FailReads makes every Get fail with err until reset with nil
func (m *MemoryStore) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.getErr = err
}

// FailWrites makes every Set of key fail with err until reset with nil
func (m *MemoryStore) FailWrites(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err == nil {
		delete(m.setErr, key)
		return
	}
	m.setErr[key] = err
}

// Raw stores value without any failure injection
func (m *MemoryStore) Raw(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
}

// Writes returns the keys of successful Set calls in order
func (m *MemoryStore) Writes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.writeLog...)
}

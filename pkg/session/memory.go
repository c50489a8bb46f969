package session

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Token(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return string(m.data[KeyToken]), nil
}

func (m *MemoryStore) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[KeyToken] = []byte(token)
	return nil
}

func (m *MemoryStore) User(_ context.Context) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeUser(m.data[KeyUser]), nil
}

func (m *MemoryStore) SetUser(_ context.Context, user json.RawMessage) error {
	if err := validateUser(user); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[KeyUser] = append([]byte(nil), user...)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, KeyToken)
	delete(m.data, KeyUser)
	return nil
}

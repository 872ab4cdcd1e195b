package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ruralpay/assistant/internal/models"
)

// MemoryStore keeps sessions in process memory. Values are stored as JSON
// so callers never share a session between turns.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, conversationID string) (*models.Session, error) {
	m.mu.RLock()
	data, ok := m.sessions[conversationID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.sessions[s.ConversationID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, conversationID string) error {
	m.mu.Lock()
	delete(m.sessions, conversationID)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }

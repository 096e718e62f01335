package server

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MemoryStorage is an in-memory Storage, used by tests and for running
// the server without a database. Data is lost on restart.
type MemoryStorage struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string // normalized email -> user id
	docs    map[string]json.RawMessage
}

// NewMemoryStorage creates an empty in-memory Storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
		docs:    make(map[string]json.RawMessage),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser implements Storage.
func (m *MemoryStorage) CreateUser(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := normalizeEmail(u.Email)
	if _, taken := m.byEmail[key]; taken {
		return ErrEmailTaken
	}
	m.byID[u.ID] = u
	m.byEmail[key] = u.ID
	return nil
}

// UserByEmail implements Storage.
func (m *MemoryStorage) UserByEmail(_ context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[normalizeEmail(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return m.byID[id], nil
}

// UserByID implements Storage.
func (m *MemoryStorage) UserByID(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// SaveDocument implements Storage.
func (m *MemoryStorage) SaveDocument(_ context.Context, userID string, doc json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make(json.RawMessage, len(doc))
	copy(cp, doc)
	m.docs[userID] = cp
	return nil
}

// Document implements Storage.
func (m *MemoryStorage) Document(_ context.Context, userID string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make(json.RawMessage, len(doc))
	copy(cp, doc)
	return cp, nil
}

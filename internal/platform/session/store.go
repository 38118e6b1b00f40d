// Package session persists voice-agent chat sessions. Sessions are keyed by
// an opaque session id and expire after a configurable TTL; the Redis-backed
// store is the production implementation, the in-memory store serves
// development and tests.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound indicates the session id is unknown or the session expired.
var ErrNotFound = errors.New("session not found")

// Message is a single turn in an agent conversation.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant", "tool"
	Content string `json:"content"`
}

// Session holds the conversation history for one agent session.
type Session struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the persistence interface for agent sessions.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore is a TTL-aware in-memory Store. It does not survive restarts
// and does not scale across instances; use the Redis store in production.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok || m.now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	s := entry.session
	s.Messages = append([]Message(nil), entry.session.Messages...)
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	copied.Messages = append([]Message(nil), s.Messages...)
	m.sessions[s.ID] = memoryEntry{
		session:   copied,
		expiresAt: m.now().Add(m.ttl),
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Package session keeps per-session conversation history. History is
// append-only during a session, cleared by an explicit user action, and not
// durable: the durable interaction log lives in the history package.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// TTL is how long an idle session's history is retained.
const TTL = 24 * time.Hour

// Turn is one (user, response) pair in a conversation.
type Turn struct {
	User     string `json:"user"`
	Response string `json:"response"`
}

// Store manages conversation history keyed by session ID.
type Store interface {
	// Append adds a turn to the session's history.
	Append(ctx context.Context, id string, turn Turn) error
	// Turns returns the session's history in append order.
	// A missing session yields an empty history, not an error.
	Turns(ctx context.Context, id string) ([]Turn, error)
	// Clear removes the session's history.
	Clear(ctx context.Context, id string) error
}

// NewID creates a cryptographically random session ID.
func NewID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ============================================================================
// In-Memory Store (for development/testing)
// ============================================================================

// memoryEntry holds one session's turns with its last activity time.
type memoryEntry struct {
	turns    []Turn
	lastSeen time.Time
}

// MemoryStore keeps conversation history in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
}

// NewMemoryStore creates a new in-memory conversation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
	}
}

// Append adds a turn to the session's history, creating the session if
// needed.
func (s *MemoryStore) Append(_ context.Context, id string, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok || time.Since(entry.lastSeen) > TTL {
		entry = &memoryEntry{}
		s.sessions[id] = entry
	}
	entry.turns = append(entry.turns, turn)
	entry.lastSeen = time.Now()
	return nil
}

// Turns returns the session's history in append order.
func (s *MemoryStore) Turns(_ context.Context, id string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[id]
	if !ok || time.Since(entry.lastSeen) > TTL {
		return nil, nil
	}

	turns := make([]Turn, len(entry.turns))
	copy(turns, entry.turns)
	return turns, nil
}

// Clear removes the session's history.
func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)

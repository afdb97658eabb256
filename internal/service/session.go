package service

import (
	"context"
	"sync"
)

// State is the position of one conversation in the find-a-recipe state
// machine: Idle -> (searching) -> Disambiguating | Resolved | NotFound.
// Auto-resolution lands directly in Resolved within the same turn; searching
// itself is never observable between turns, so it has no stored state.
type State string

const (
	StateIdle           State = "idle"
	StateDisambiguating State = "disambiguating"
	StateResolved       State = "resolved"
	StateNotFound       State = "not_found"
)

// Session is the transient selection state of one conversation. It is the
// only mutable state in the system and is isolated per conversation id; the
// repository and vocabularies stay shared and read-only.
type Session struct {
	Conversation string `json:"conversation"`
	State        State  `json:"state"`
	Query        string `json:"query,omitempty"`
	Choices      []int  `json:"choices,omitempty"`
	SelectedID   *int   `json:"selected_id,omitempty"`
}

// SessionStore persists sessions between turns. Get returns a fresh idle
// session when the conversation has none.
type SessionStore interface {
	Get(ctx context.Context, conversation string) (Session, error)
	Put(ctx context.Context, session Session) error
	Delete(ctx context.Context, conversation string) error
}

// MemorySessionStore keeps sessions in process memory. It backs tests and
// single-instance deployments.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session)}
}

// Get returns the stored session or a fresh idle one.
func (m *MemorySessionStore) Get(_ context.Context, conversation string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[conversation]; ok {
		return sess, nil
	}
	return Session{Conversation: conversation, State: StateIdle}, nil
}

// Put stores the session under its conversation id.
func (m *MemorySessionStore) Put(_ context.Context, session Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Conversation] = session
	return nil
}

// Delete removes the session for the conversation, if any.
func (m *MemorySessionStore) Delete(_ context.Context, conversation string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, conversation)
	return nil
}

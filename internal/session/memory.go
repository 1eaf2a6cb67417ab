package session

import (
	"errors"
	"sync"
	"time"

	"github.com/ferg-cod3s/opencode-nexus/pkg/types"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a session id is not known to the store.
var ErrNotFound = errors.New("session not found")

const defaultTitle = "New Chat Session"

type Store interface {
	Create(title string) types.Session
	Get(id string) (types.Session, error)
	Append(id string, m types.Message) error
	Messages(id string) ([]types.Message, error)
	List() []types.Session
}

// MemoryStore keeps sessions and their messages for the process lifetime.
// Sessions are never destroyed.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]types.Session
	messages map[string][]types.Message
	order    []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]types.Session),
		messages: make(map[string][]types.Message),
	}
}

// Create registers a new session with a fresh id. It always succeeds.
func (s *MemoryStore) Create(title string) types.Session {
	if title == "" {
		title = defaultTitle
	}
	sess := types.Session{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	s.messages[sess.ID] = nil
	s.order = append(s.order, sess.ID)
	return sess
}

func (s *MemoryStore) Get(id string) (types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return types.Session{}, ErrNotFound
	}
	return sess, nil
}

// Append adds a message to a session's history. Insertion order is the
// retrieval order.
func (s *MemoryStore) Append(id string, m types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	s.messages[id] = append(s.messages[id], m)
	return nil
}

func (s *MemoryStore) Messages(id string) ([]types.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sessions[id]; !ok {
		return nil, ErrNotFound
	}
	msgs := s.messages[id]
	out := make([]types.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// List returns session metadata (no message bodies) in creation order.
func (s *MemoryStore) List() []types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id])
	}
	return out
}

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 60 * time.Minute

// MemoryStore is a process-local Store. Nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// MemoryStoreOption configures optional behaviour.
type MemoryStoreOption func(*MemoryStore)

// WithClock overrides the time source. Intended for expiry tests.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore constructs an in-memory store. A ttl <= 0 falls back to
// DefaultTTL.
func NewMemoryStore(ttl time.Duration, opts ...MemoryStoreOption) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	store := &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

// expired reports whether the session is past its expiry. The boundary is
// inclusive-live: a session accessed exactly at expires_at is still valid.
func (s *MemoryStore) expired(sess *Session, now time.Time) bool {
	return now.After(sess.ExpiresAt)
}

func (s *MemoryStore) Create(_ context.Context) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        fmt.Sprintf("sess-%s", uuid.NewString()),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		Data:      make(map[string]any),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return copySession(sess), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.expired(sess, s.now()) {
		delete(s.sessions, id)
		return nil, ErrExpired
	}
	return copySession(sess), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if s.expired(sess, s.now()) {
		delete(s.sessions, id)
		return ErrNotFound
	}
	for k, v := range partial {
		sess.Data[k] = v
	}
	sess.UpdatedAt = s.now()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored sessions, live or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// copySession returns a snapshot whose payload map is detached from the
// stored one, so callers cannot mutate store state without Update.
func copySession(sess *Session) *Session {
	data := make(map[string]any, len(sess.Data))
	for k, v := range sess.Data {
		data[k] = v
	}
	return &Session{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
		ExpiresAt: sess.ExpiresAt,
		Data:      data,
	}
}

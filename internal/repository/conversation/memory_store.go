// File: internal/repository/conversation/memory_store.go
package conversation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.ConversationSession
	now      func() time.Time
}

// NewMemoryStore returns a process-local store. Contents are lost on restart.
func NewMemoryStore() SessionStore {
	return newMemoryStore(time.Now)
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		sessions: make(map[string]*domain.ConversationSession),
		now:      now,
	}
}

func (s *memoryStore) Get(ctx context.Context, key string) (*domain.ConversationSession, error) {
	if key == "" {
		return nil, errors.New("invalid session key")
	}
	s.mu.RLock()
	session, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok || session.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}

	out := *session
	out.Messages = append([]domain.Message(nil), session.Messages...)
	return &out, nil
}

func (s *memoryStore) Put(ctx context.Context, key string, messages []domain.Message, ttl time.Duration) error {
	if key == "" {
		return errors.New("invalid session key")
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[key]
	if !ok {
		session = &domain.ConversationSession{Key: key, CreatedAt: now}
		s.sessions[key] = session
	}
	session.Messages = append([]domain.Message(nil), messages...)
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(ttl)
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.sessions, key)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var purged int64
	for key, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, key)
			purged++
		}
	}
	return purged, nil
}

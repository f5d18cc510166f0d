// File: internal/services/vault/vault.go
package vault

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/iyunix/go-vendornexus/internal/domain"
	"github.com/iyunix/go-vendornexus/internal/keylock"
	vaultrepo "github.com/iyunix/go-vendornexus/internal/repository/vault"
)

// StoreName is the vault key for the anonymous owner. Named owners get
// StoreName + ":" + owner.
const StoreName = "vendor-nexus-vault"

var ErrSessionNotFound = errors.New("vault session not found")

// Logger defines the logging interface used by the vault
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Service keeps saved sourcing sessions. Every mutation is a
// load-modify-store of the owner's whole list, serialized per key.
type Service struct {
	store  vaultrepo.ListStore
	locks  *keylock.KeyedMutex
	logger Logger
	now    func() time.Time
}

func NewService(store vaultrepo.ListStore, logger Logger) *Service {
	return &Service{
		store:  store,
		locks:  keylock.New(),
		logger: logger,
		now:    time.Now,
	}
}

// Key returns the storage key for owner.
func Key(owner string) string {
	if owner == "" {
		return StoreName
	}
	return StoreName + ":" + owner
}

// NewSessionID derives a session id from the current time in milliseconds.
func NewSessionID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// nextSessionID returns the later of now and one past the highest numeric id
// in sessions, so saves within one millisecond still get distinct ids.
func nextSessionID(sessions []domain.VaultSession, now time.Time) string {
	id := now.UnixMilli()
	for _, existing := range sessions {
		if n, err := strconv.ParseInt(existing.ID, 10, 64); err == nil && n >= id {
			id = n + 1
		}
	}
	return strconv.FormatInt(id, 10)
}

// Save upserts session by id. An existing entry is replaced in place; a new
// one goes to the front. Timestamp is set to now, a missing id is assigned
// and a missing title is derived from the requirement.
func (s *Service) Save(ctx context.Context, owner string, session domain.VaultSession) (domain.VaultSession, error) {
	key := Key(owner)
	unlock := s.locks.Lock(key)
	defer unlock()

	now := s.now()
	session.Timestamp = now
	if session.Title == "" {
		session.Title = domain.SessionTitle(session.Requirement)
	}
	if session.Messages == nil {
		session.Messages = []domain.Message{}
	}
	if session.Vendors == nil {
		session.Vendors = []domain.Vendor{}
	}

	sessions, err := s.store.Load(ctx, key)
	if err != nil {
		return domain.VaultSession{}, fmt.Errorf("vault: load: %w", err)
	}
	if session.ID == "" {
		session.ID = nextSessionID(sessions, now)
	}

	replaced := false
	for i := range sessions {
		if sessions[i].ID == session.ID {
			sessions[i] = session
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append([]domain.VaultSession{session}, sessions...)
	}

	if err := s.store.Store(ctx, key, sessions); err != nil {
		return domain.VaultSession{}, fmt.Errorf("vault: store: %w", err)
	}
	s.logger.Debug("vault session saved", "id", session.ID, "replaced", replaced, "total", len(sessions))
	return session, nil
}

// List returns the owner's sessions in stored order.
func (s *Service) List(ctx context.Context, owner string) ([]domain.VaultSession, error) {
	sessions, err := s.store.Load(ctx, Key(owner))
	if err != nil {
		return nil, fmt.Errorf("vault: load: %w", err)
	}
	return sessions, nil
}

func (s *Service) Get(ctx context.Context, owner, id string) (domain.VaultSession, error) {
	sessions, err := s.List(ctx, owner)
	if err != nil {
		return domain.VaultSession{}, err
	}
	for _, session := range sessions {
		if session.ID == id {
			return session, nil
		}
	}
	return domain.VaultSession{}, ErrSessionNotFound
}

// Delete removes id and returns the remaining list. Unknown ids are not an
// error.
func (s *Service) Delete(ctx context.Context, owner, id string) ([]domain.VaultSession, error) {
	key := Key(owner)
	unlock := s.locks.Lock(key)
	defer unlock()

	sessions, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("vault: load: %w", err)
	}

	kept := make([]domain.VaultSession, 0, len(sessions))
	for _, session := range sessions {
		if session.ID != id {
			kept = append(kept, session)
		}
	}
	if len(kept) == len(sessions) {
		return kept, nil
	}

	if err := s.store.Store(ctx, key, kept); err != nil {
		return nil, fmt.Errorf("vault: store: %w", err)
	}
	s.logger.Info("vault session deleted", "id", id, "remaining", len(kept))
	return kept, nil
}

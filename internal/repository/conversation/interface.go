// File: internal/repository/conversation/interface.go
package conversation

import (
	"context"
	"errors"
	"time"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// ErrSessionNotFound is returned for unknown and expired keys alike.
var ErrSessionNotFound = errors.New("conversation session not found")

// SessionStore keeps bot-side rolling histories keyed by chat identity.
// Implementations must be safe for concurrent use; serializing turns for
// one key is the caller's job.
type SessionStore interface {
	Get(ctx context.Context, key string) (*domain.ConversationSession, error)
	Put(ctx context.Context, key string, messages []domain.Message, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// PurgeExpired removes sessions whose TTL elapsed before now and
	// reports how many were dropped.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

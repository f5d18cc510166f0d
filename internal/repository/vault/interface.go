// File: internal/repository/vault/interface.go
package vault

import (
	"context"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// ListStore persists the whole session list under a single key. Load of an
// unknown key returns an empty list; Store replaces whatever was there.
type ListStore interface {
	Load(ctx context.Context, key string) ([]domain.VaultSession, error)
	Store(ctx context.Context, key string, sessions []domain.VaultSession) error
	Close() error
}

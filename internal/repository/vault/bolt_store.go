// File: internal/repository/vault/bolt_store.go
package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

var vaultBucket = []byte("vault")

type boltListStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) a bbolt file holding a single "vault"
// bucket keyed by vault key.
func NewBoltStore(path string) (ListStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open vault file: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(vaultBucket)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create vault bucket: %w", err)
	}
	return &boltListStore{db: db}, nil
}

func (s *boltListStore) Load(ctx context.Context, key string) ([]domain.VaultSession, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(vaultBucket).Get([]byte(key)); v != nil {
			// v is only valid inside the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}
	return decodeList(key, data), nil
}

func (s *boltListStore) Store(ctx context.Context, key string, sessions []domain.VaultSession) error {
	data, err := encodeList(sessions)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(vaultBucket).Put([]byte(key), data)
	})
}

func (s *boltListStore) Close() error {
	return s.db.Close()
}

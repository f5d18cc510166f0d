// File: internal/repository/vault/gorm_store.go
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

type gormListStore struct {
	db *gorm.DB
}

// NewGormStore keeps each list as one JSON value in the vault_entries table.
func NewGormStore(db *gorm.DB) ListStore {
	return &gormListStore{db: db}
}

func (r *gormListStore) Load(ctx context.Context, key string) ([]domain.VaultSession, error) {
	var entry domain.VaultEntry
	err := r.db.WithContext(ctx).Where("vault_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []domain.VaultSession{}, nil
	}
	if err != nil {
		log.Printf("[VaultRepository] Database error loading %s: %v", key, err)
		return nil, fmt.Errorf("database error loading vault: %w", err)
	}
	return decodeList(key, []byte(entry.Value)), nil
}

func (r *gormListStore) Store(ctx context.Context, key string, sessions []domain.VaultSession) error {
	data, err := encodeList(sessions)
	if err != nil {
		return err
	}

	entry := domain.VaultEntry{Key: key, Value: string(data)}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vault_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		log.Printf("[VaultRepository] Database error storing %s: %v", key, err)
		return fmt.Errorf("database error storing vault: %w", err)
	}
	return nil
}

// Close is a no-op; the *gorm.DB belongs to the caller.
func (r *gormListStore) Close() error { return nil }

func encodeList(sessions []domain.VaultSession) ([]byte, error) {
	if sessions == nil {
		sessions = []domain.VaultSession{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return nil, fmt.Errorf("encode vault: %w", err)
	}
	return data, nil
}

// decodeList treats an unreadable value as an empty vault so one corrupt
// write cannot lock the user out of saving again.
func decodeList(key string, data []byte) []domain.VaultSession {
	if len(data) == 0 {
		return []domain.VaultSession{}
	}
	var sessions []domain.VaultSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		log.Printf("[VaultRepository] Discarding malformed vault value for %s: %v", key, err)
		return []domain.VaultSession{}
	}
	if sessions == nil {
		sessions = []domain.VaultSession{}
	}
	return sessions
}

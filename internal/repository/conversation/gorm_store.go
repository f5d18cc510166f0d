// File: internal/repository/conversation/gorm_store.go
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

type gormSessionStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore persists sessions in the conversation_sessions table so
// history survives restarts. The table is migrated by the caller.
func NewGormStore(db *gorm.DB) SessionStore {
	return &gormSessionStore{db: db, now: time.Now}
}

func (r *gormSessionStore) Get(ctx context.Context, key string) (*domain.ConversationSession, error) {
	if key == "" {
		return nil, errors.New("invalid session key")
	}

	var session domain.ConversationSession
	err := r.db.WithContext(ctx).Where("session_key = ?", key).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		log.Printf("[SessionRepository] Database error loading session %s: %v", key, err)
		return nil, fmt.Errorf("database error loading session: %w", err)
	}

	if session.Expired(r.now().UTC()) {
		if err := r.Delete(ctx, key); err != nil {
			log.Printf("[SessionRepository] Failed to drop expired session %s: %v", key, err)
		}
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Put upserts the whole message list. created_at survives overwrites.
func (r *gormSessionStore) Put(ctx context.Context, key string, messages []domain.Message, ttl time.Duration) error {
	if key == "" {
		return errors.New("invalid session key")
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	now := r.now().UTC()
	session := domain.ConversationSession{
		Key:       key,
		Messages:  messages,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"messages", "expires_at", "updated_at"}),
	}).Create(&session).Error
	if err != nil {
		log.Printf("[SessionRepository] Database error saving session %s: %v", key, err)
		return fmt.Errorf("database error saving session: %w", err)
	}
	return nil
}

func (r *gormSessionStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("invalid session key")
	}
	if err := r.db.WithContext(ctx).Where("session_key = ?", key).Delete(&domain.ConversationSession{}).Error; err != nil {
		log.Printf("[SessionRepository] Database error deleting session %s: %v", key, err)
		return fmt.Errorf("database error deleting session: %w", err)
	}
	return nil
}

func (r *gormSessionStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&domain.ConversationSession{})
	if result.Error != nil {
		log.Printf("[SessionRepository] Database error purging sessions: %v", result.Error)
		return 0, fmt.Errorf("database error purging sessions: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("[SessionRepository] Purged %d expired sessions", result.RowsAffected)
	}
	return result.RowsAffected, nil
}

// File: internal/domain/conversation.go
package domain

import "time"

// ConversationSession is the bot-side rolling history for one chat
// identity. It mirrors the message sequence only to give the model context
// and never carries vendor data.
type ConversationSession struct {
	Key       string    `gorm:"column:session_key;primaryKey;size:128" json:"key"`
	Messages  []Message `gorm:"serializer:json;type:text" json:"messages"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the session's time-to-live has elapsed.
func (s *ConversationSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

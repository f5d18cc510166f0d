// File: internal/services/ai/interface.go
package ai

import (
	"context"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// Logger defines the logging interface used by the gateway
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ProviderStatus represents completion endpoint health
type ProviderStatus struct {
	IsHealthy bool
	Models    []string
	Message   string
}

// CompletionProvider performs one chat completion over a fully assembled
// message list (system prompt included).
type CompletionProvider interface {
	CreateChatCompletion(ctx context.Context, messages []domain.Message) (string, error)
	HealthCheck(ctx context.Context) error
	GetStatus(ctx context.Context) ProviderStatus
}

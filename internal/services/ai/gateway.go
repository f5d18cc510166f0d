// File: internal/services/ai/gateway.go
package ai

import (
	"context"
	"time"

	"github.com/iyunix/go-vendornexus/internal/domain"
	"github.com/iyunix/go-vendornexus/internal/services/chat"
)

// Gateway wraps a single completion call behind the fixed system prompt.
// It performs no trimming: callers pass an already-bounded history.
type Gateway struct {
	provider     CompletionProvider
	parser       *chat.ReplyParser
	systemPrompt string
	logger       Logger
}

// NewGateway creates a gateway using SystemPrompt.
func NewGateway(provider CompletionProvider, logger Logger) (*Gateway, error) {
	if provider == nil {
		return nil, NewConfigError("completion provider is required")
	}
	if logger == nil {
		return nil, NewConfigError("logger is required")
	}
	return &Gateway{
		provider:     provider,
		parser:       chat.NewReplyParser(logger),
		systemPrompt: SystemPrompt,
		logger:       logger,
	}, nil
}

// Complete returns the raw model text for [system, ...history].
func (g *Gateway) Complete(ctx context.Context, history []domain.Message) (string, error) {
	messages := make([]domain.Message, 0, len(history)+1)
	messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: g.systemPrompt})
	for _, m := range history {
		if m.Role == domain.RoleSystem {
			continue
		}
		messages = append(messages, m)
	}
	return g.provider.CreateChatCompletion(ctx, messages)
}

// Respond implements chat.Responder. Any failure becomes FallbackMessage
// with no vendors; the error is logged and never returned.
func (g *Gateway) Respond(ctx context.Context, history []domain.Message) chat.Reply {
	start := time.Now()
	raw, err := g.Complete(ctx, history)
	if err != nil {
		g.logger.Error("model call failed",
			"error", err,
			"error_type", string(ErrorTypeOf(err)),
			"history_len", len(history),
			"duration", time.Since(start),
		)
		return chat.Reply{Prose: FallbackMessage, Vendors: []domain.Vendor{}, Fallback: true}
	}

	reply := g.parser.Parse(raw)
	g.logger.Debug("model call succeeded",
		"history_len", len(history),
		"vendors", len(reply.Vendors),
		"duration", time.Since(start),
	)
	return reply
}

// HealthCheck probes the completion endpoint.
func (g *Gateway) HealthCheck(ctx context.Context) error {
	return g.provider.HealthCheck(ctx)
}

// Status reports endpoint health and visible models.
func (g *Gateway) Status(ctx context.Context) ProviderStatus {
	return g.provider.GetStatus(ctx)
}

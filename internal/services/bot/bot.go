// File: internal/services/bot/bot.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iyunix/go-vendornexus/internal/domain"
	"github.com/iyunix/go-vendornexus/internal/keylock"
	"github.com/iyunix/go-vendornexus/internal/repository/conversation"
	"github.com/iyunix/go-vendornexus/internal/services/chat"
)

// Bot runs chat turns for a messaging platform. Each chat keeps a bounded
// rolling history in the session store; turns for one chat never overlap.
type Bot struct {
	transport Transport
	responder chat.Responder
	store     conversation.SessionStore
	history   *chat.History
	ttl       time.Duration
	locks     *keylock.KeyedMutex
	logger    Logger
	now       func() time.Time
}

func NewBot(transport Transport, responder chat.Responder, store conversation.SessionStore, config *chat.Config, logger Logger) (*Bot, error) {
	if config == nil {
		config = chat.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("bot: invalid config: %w", err)
	}
	if transport == nil || responder == nil || store == nil {
		return nil, errors.New("bot: transport, responder and store are required")
	}
	if logger == nil {
		return nil, errors.New("bot: logger is required")
	}
	return &Bot{
		transport: transport,
		responder: responder,
		store:     store,
		history:   chat.NewHistory(config.HistoryLimit),
		ttl:       config.SessionTTL,
		locks:     keylock.New(),
		logger:    logger,
		now:       time.Now,
	}, nil
}

// SessionKey is the store key for a chat.
func SessionKey(chatID int64) string {
	return "telegram:" + strconv.FormatInt(chatID, 10)
}

// HandleText processes one inbound text message. Empty text is ignored.
// Commands reset the chat's history without contacting the model.
func (b *Bot) HandleText(ctx context.Context, chatID int64, text string) error {
	if text == "" {
		return nil
	}
	key := SessionKey(chatID)
	b.logger.Info("received message", "chat_id", chatID, "length", len(text))

	unlock := b.locks.Lock(key)
	defer unlock()

	if cmd, ok := chat.ParseCommand(text); ok {
		return b.handleCommand(ctx, chatID, key, cmd)
	}

	if err := b.transport.SendTyping(ctx, chatID); err != nil {
		b.logger.Warn("failed to send typing action", "chat_id", chatID, "error", err)
	}

	conv := chat.Conversation{Key: key}
	session, err := b.store.Get(ctx, key)
	switch {
	case err == nil:
		conv.Messages = session.Messages
	case errors.Is(err, conversation.ErrSessionNotFound):
	default:
		b.logger.Error("failed to load conversation", "chat_id", chatID, "error", chat.NewStoreError("load", key, err))
		return b.send(ctx, chatID, ErrorMessage, false)
	}

	conv = b.history.Append(conv, domain.NewMessage(domain.RoleUser, text, b.now()))
	reply := b.responder.Respond(ctx, conv.Messages)
	conv = b.history.Append(conv, domain.NewMessage(domain.RoleAssistant, reply.Prose, b.now()))

	if err := b.store.Put(ctx, key, conv.Messages, b.ttl); err != nil {
		b.logger.Error("failed to save conversation", "chat_id", chatID, "error", chat.NewStoreError("save", key, err))
	}

	b.logger.Info("turn completed",
		"chat_id", chatID,
		"history_len", len(conv.Messages),
		"vendors", len(reply.Vendors),
		"fallback", reply.Fallback,
	)

	if err := b.sendWithFallback(ctx, chatID, reply.Prose, reply.Prose); err != nil {
		return err
	}
	for _, v := range reply.Vendors {
		card := FormatVendorCard(v)
		if err := b.sendWithFallback(ctx, chatID, card, StripMarkdown(card)); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, key string, cmd chat.Command) error {
	if err := b.store.Delete(ctx, key); err != nil {
		b.logger.Error("failed to reset conversation", "chat_id", chatID, "command", string(cmd), "error", err)
	}
	b.logger.Info("conversation reset", "chat_id", chatID, "command", string(cmd))

	if cmd == chat.CommandStart {
		return b.send(ctx, chatID, GreetingMessage, false)
	}
	return b.send(ctx, chatID, ClearedMessage, false)
}

// sendWithFallback tries Markdown first and resends plain on any failure.
func (b *Bot) sendWithFallback(ctx context.Context, chatID int64, markdown, plain string) error {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}
	err := b.transport.SendText(ctx, chatID, markdown, true)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRenderRejected) {
		b.logger.Warn("markdown rejected, sending plain text", "chat_id", chatID, "error", err)
	} else {
		b.logger.Warn("markdown send failed, retrying as plain text", "chat_id", chatID, "error", err)
	}
	return b.send(ctx, chatID, plain, false)
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, markdown bool) error {
	if err := b.transport.SendText(ctx, chatID, text, markdown); err != nil {
		b.logger.Error("failed to send message", "chat_id", chatID, "error", err)
		return fmt.Errorf("bot: send to %d: %w", chatID, err)
	}
	return nil
}

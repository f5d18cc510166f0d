// File: internal/transport/telegram/adapter.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/iyunix/go-vendornexus/internal/services/bot"
)

// SecretHeader carries the webhook secret configured with setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Logger defines the logging interface used by the adapter
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

type Config struct {
	Token string
	// Endpoint is the Bot API URL format with two %s verbs (token, method).
	Endpoint string
	Timeout  time.Duration
	// Retry defaults to DefaultRetryConfig.
	Retry *RetryConfig
}

func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.Endpoint != "" && strings.Count(c.Endpoint, "%s") != 2 {
		return fmt.Errorf("telegram endpoint must contain two %%s verbs")
	}
	if c.Retry != nil && c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("telegram retry attempts must be at least 1")
	}
	return nil
}

// Adapter implements bot.Transport on top of the Telegram Bot API.
type Adapter struct {
	api    *tgbotapi.BotAPI
	retry  *RetryConfig
	logger Logger
}

// NewAdapter authenticates with getMe before returning.
func NewAdapter(config *Config, logger Logger) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	api, err := tgbotapi.NewBotAPIWithClient(config.Token, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("telegram: connect: %w", err)
	}
	retry := config.Retry
	if retry == nil {
		retry = DefaultRetryConfig()
	}
	logger.Info("telegram bot authorized", "username", api.Self.UserName)
	return &Adapter{api: api, retry: retry, logger: logger}, nil
}

// Username returns the bot's account name.
func (a *Adapter) Username() string {
	return a.api.Self.UserName
}

func (a *Adapter) SendText(ctx context.Context, chatID int64, text string, markdown bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	err := a.withRetry(ctx, "sendMessage", func() error {
		_, err := a.api.Send(msg)
		return err
	})
	if err != nil {
		return classifySendError(err)
	}
	return nil
}

func (a *Adapter) SendTyping(ctx context.Context, chatID int64) error {
	_, err := a.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
	return err
}

// classifySendError maps entity parse failures to bot.ErrRenderRejected.
func classifySendError(err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Message), "can't parse entities") {
		return fmt.Errorf("%w: %s", bot.ErrRenderRejected, apiErr.Message)
	}
	return err
}

// Inbound is the part of an update the bot acts on.
type Inbound struct {
	ChatID int64
	Text   string
}

// ParseUpdate extracts the text message from a webhook request. ok is
// false for updates without a text message.
func (a *Adapter) ParseUpdate(r *http.Request) (in Inbound, ok bool, err error) {
	update, err := a.api.HandleUpdate(r)
	if err != nil {
		return Inbound{}, false, err
	}
	return inboundFrom(*update)
}

func inboundFrom(update tgbotapi.Update) (Inbound, bool, error) {
	if update.Message == nil || update.Message.Chat == nil || update.Message.Text == "" {
		return Inbound{}, false, nil
	}
	return Inbound{ChatID: update.Message.Chat.ID, Text: update.Message.Text}, true, nil
}

// Handler processes one inbound text message.
type Handler func(ctx context.Context, chatID int64, text string) error

// Poll runs the long-poll loop until ctx is cancelled. Chats are handled
// concurrently, updates within one chat strictly in order. Poll returns
// after the turns in flight have finished.
func (a *Adapter) Poll(ctx context.Context, handle Handler) error {
	if _, err := a.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		a.logger.Warn("failed to delete webhook before polling", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := a.api.GetUpdatesChan(u)
	a.logger.Info("long polling started", "username", a.api.Self.UserName)

	workers := newChatDispatcher(ctx, handle, a.logger)
	defer workers.wait()

	for {
		select {
		case <-ctx.Done():
			a.api.StopReceivingUpdates()
			a.logger.Info("long polling stopped")
			return nil
		case update, open := <-updates:
			if !open {
				return nil
			}
			in, ok, _ := inboundFrom(update)
			if !ok {
				continue
			}
			workers.dispatch(in)
		}
	}
}

// File: internal/handlers/webhook_handler.go
package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"io"
	"net/http"

	"github.com/iyunix/go-vendornexus/internal/transport/telegram"
)

// UpdateParser extracts a text message from a webhook request.
type UpdateParser interface {
	ParseUpdate(r *http.Request) (telegram.Inbound, bool, error)
}

// TextHandler runs one bot turn.
type TextHandler interface {
	HandleText(ctx context.Context, chatID int64, text string) error
}

type WebhookHandler struct {
	parser UpdateParser
	bot    TextHandler
	secret string
	logger Logger
}

func NewWebhookHandler(parser UpdateParser, bot TextHandler, secret string, logger Logger) *WebhookHandler {
	return &WebhookHandler{parser: parser, bot: bot, secret: secret, logger: logger}
}

// Receive handles POST updates. It answers 200 for anything that is not an
// auth failure so the platform does not redeliver.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		got := r.Header.Get(telegram.SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			h.logger.Warn("webhook secret mismatch", "remote", r.RemoteAddr)
			writeError(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
	}

	in, ok, err := h.parser.ParseUpdate(r)
	switch {
	case errors.Is(err, io.EOF):
		h.logger.Debug("empty webhook body")
	case err != nil:
		h.logger.Warn("undecodable webhook update", "error", err)
	case ok:
		if err := h.bot.HandleText(r.Context(), in.ChatID, in.Text); err != nil {
			h.logger.Error("webhook turn failed", "chat_id", in.ChatID, "error", err)
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

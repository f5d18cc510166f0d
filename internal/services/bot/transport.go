// File: internal/services/bot/transport.go
package bot

import (
	"context"
	"errors"
)

// ErrRenderRejected is returned by a Transport when the platform refused
// the message because of its formatting. The same text can be resent plain.
var ErrRenderRejected = errors.New("message formatting rejected by platform")

// Transport delivers bot output to a chat platform.
type Transport interface {
	// SendText sends text to chatID, parsed as Markdown when markdown is set.
	SendText(ctx context.Context, chatID int64, text string, markdown bool) error
	// SendTyping shows a typing indicator. Failures are advisory.
	SendTyping(ctx context.Context, chatID int64) error
}

// Logger defines the logging interface used by the bot
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// File: internal/transport/telegram/retry.go
package telegram

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RetryConfig bounds how long a send waits out Telegram flood control.
type RetryConfig struct {
	MaxAttempts int
	// MaxWait caps a single retry_after wait.
	MaxWait time.Duration
}

// DefaultRetryConfig provides sensible defaults
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		MaxWait:     30 * time.Second,
	}
}

// retryAfter returns the wait requested by a 429 response. Other errors are
// not retried: a request that may have been delivered must not be sent twice.
func retryAfter(err error) (time.Duration, bool) {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != 429 {
		return 0, false
	}
	return time.Duration(apiErr.RetryAfter) * time.Second, true
}

// withRetry runs call, waiting out flood control between attempts.
func (a *Adapter) withRetry(ctx context.Context, op string, call func() error) error {
	var lastErr error
	for attempt := 1; attempt <= a.retry.MaxAttempts; attempt++ {
		err := call()
		if err == nil {
			if attempt > 1 {
				a.logger.Info("telegram request succeeded after retry", "op", op, "attempts", attempt)
			}
			return nil
		}
		lastErr = err

		wait, retryable := retryAfter(err)
		if !retryable || attempt == a.retry.MaxAttempts {
			break
		}
		if wait > a.retry.MaxWait {
			wait = a.retry.MaxWait
		}
		a.logger.Warn("telegram flood control, retrying", "op", op, "attempt", attempt, "retry_after", wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}

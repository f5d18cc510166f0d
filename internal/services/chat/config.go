// File: internal/services/chat/config.go
package chat

import (
	"fmt"
	"time"
)

// DefaultHistoryLimit is the rolling window kept for (and sent to) the model.
const DefaultHistoryLimit = 12

// LoadMorePrompt is the canned turn behind "Load More Suppliers".
const LoadMorePrompt = "Please find 5 more different suppliers for the same requirement."

type Config struct {
	HistoryLimit int           // messages kept after each assistant turn
	SessionTTL   time.Duration // bot-side history lifetime in the session store
	MaxInputLen  int           // runes accepted per user turn; 0 disables
}

func (c *Config) Validate() error {
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.MaxInputLen < 0 {
		return fmt.Errorf("max_input_len cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		HistoryLimit: DefaultHistoryLimit,
		SessionTTL:   24 * time.Hour,
		MaxInputLen:  20000,
	}
}

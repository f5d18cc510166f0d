// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	APIKey  string
	BaseURL string // OpenAI-compatible root, e.g. https://api.deepseek.com
	Model   string

	// Timeout bounds the HTTP client. Zero leaves the call unbounded; the
	// gateway itself never retries.
	Timeout time.Duration

	Temperature float32
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}
	if c.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://api.deepseek.com",
		Model:       "deepseek-chat",
		Temperature: 0.7,
	}
}

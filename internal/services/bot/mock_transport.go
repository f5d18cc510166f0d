// File: internal/services/bot/mock_transport.go
package bot

import (
	"context"
	"sync"
)

// SentMessage is one message recorded by MockTransport.
type SentMessage struct {
	ChatID   int64
	Text     string
	Markdown bool
}

// MockTransport implements Transport for tests and the ask command. It
// records every send and can be told to reject Markdown.
type MockTransport struct {
	mu             sync.Mutex
	sent           []SentMessage
	typing         int
	RejectMarkdown bool
}

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

func (m *MockTransport) SendText(ctx context.Context, chatID int64, text string, markdown bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if markdown && m.RejectMarkdown {
		return ErrRenderRejected
	}
	m.sent = append(m.sent, SentMessage{ChatID: chatID, Text: text, Markdown: markdown})
	return nil
}

func (m *MockTransport) SendTyping(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.typing++
	return nil
}

// AllSent returns a copy of all recorded messages.
func (m *MockTransport) AllSent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// TypingCount returns how many typing actions were sent.
func (m *MockTransport) TypingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.typing
}

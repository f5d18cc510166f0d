// File: internal/services/chat/history.go
package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// State of a conversation. There is no terminal state: a conversation goes
// back to StateEmpty only on an explicit reset or store eviction.
type State string

const (
	StateEmpty  State = "EMPTY"
	StateActive State = "ACTIVE"
)

// Command is a chat command that resets history without calling the model.
type Command string

const (
	CommandStart Command = "/start"
	CommandClear Command = "/clear"
)

// ParseCommand recognizes /start and /clear as case-sensitive prefixes.
func ParseCommand(text string) (Command, bool) {
	switch {
	case strings.HasPrefix(text, string(CommandStart)):
		return CommandStart, true
	case strings.HasPrefix(text, string(CommandClear)):
		return CommandClear, true
	}
	return "", false
}

// Conversation is an ordered message sequence. Values are treated as
// immutable; History methods return new values.
type Conversation struct {
	Key      string
	Messages []domain.Message
}

// State reports EMPTY until the first message is appended.
func (c Conversation) State() State {
	if len(c.Messages) == 0 {
		return StateEmpty
	}
	return StateActive
}

// History applies the rolling-window policy.
type History struct {
	limit int
}

// NewHistory creates a policy keeping the most recent limit messages.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Limit returns the window size.
func (h *History) Limit() int { return h.limit }

// Append adds msg in arrival order. Appending an assistant message closes a
// turn and applies Truncate.
func (h *History) Append(c Conversation, msg domain.Message) Conversation {
	messages := make([]domain.Message, 0, len(c.Messages)+1)
	messages = append(messages, c.Messages...)
	messages = append(messages, msg)
	next := Conversation{Key: c.Key, Messages: messages}
	if msg.Role == domain.RoleAssistant {
		return h.Truncate(next)
	}
	return next
}

// Truncate keeps only the most recent limit messages, dropping the oldest.
func (h *History) Truncate(c Conversation) Conversation {
	return Conversation{Key: c.Key, Messages: h.Window(c.Messages)}
}

// Window returns a copy of the trailing limit messages.
func (h *History) Window(messages []domain.Message) []domain.Message {
	start := 0
	if len(messages) > h.limit {
		start = len(messages) - h.limit
	}
	out := make([]domain.Message, len(messages)-start)
	copy(out, messages[start:])
	return out
}

// Reset returns the conversation to StateEmpty.
func (h *History) Reset(c Conversation) Conversation {
	return Conversation{Key: c.Key}
}

// ComposeInitialTurn builds the first user turn from the intake form. echo is
// what the user sees; prompt carries every requirement field and is what the
// model receives for this one turn. Both share an id and timestamp.
func ComposeInitialTurn(req domain.Requirement, at time.Time) (echo, prompt domain.Message) {
	echo = domain.NewMessage(domain.RoleUser,
		fmt.Sprintf("I'm looking for suppliers for %s in %s. \n\n%s", req.ItemName, req.PreferredLocation, req.Description),
		at)

	quantity := req.Quantity
	if quantity == "" {
		quantity = "Not specified"
	}
	specs := req.AdditionalSpecs
	if specs == "" {
		specs = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I have a sourcing request for: %s.\n\n", req.ItemName)
	b.WriteString("Initial Details Provided:\n")
	fmt.Fprintf(&b, "- Description: %s\n", req.Description)
	fmt.Fprintf(&b, "- Target Location: %s\n", req.PreferredLocation)
	fmt.Fprintf(&b, "- Quantity: %s\n", quantity)
	fmt.Fprintf(&b, "- Additional Specs: %s\n\n", specs)
	b.WriteString("Please review these details. If you need more specific info (like material, standards, " +
		"target price, or current benchmarks) to find the best manufacturers, please ask me those questions now. " +
		"Do not provide a generic list yet.")

	prompt = echo
	prompt.Content = SanitizeForPrompt(b.String())
	return echo, prompt
}

// AttachDocument appends extracted file text to a draft message or
// requirement description.
func AttachDocument(draft, fileName, content string) string {
	return draft + fmt.Sprintf("\n\n[Attached File: %s]\nContent:\n%s\n\n", fileName, content)
}

// File: internal/services/chat/turn.go
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

// Workspace is the client's working copy of a sourcing task: the visible
// transcript and the vendors accumulated so far. The vault snapshot is
// derived from it, never the other way round.
type Workspace struct {
	SessionID   string             `json:"sessionId,omitempty"`
	Requirement domain.Requirement `json:"requirement"`
	Messages    []domain.Message   `json:"messages"`
	Vendors     []domain.Vendor    `json:"vendors"`
}

// Meaningful reports whether the workspace is worth saving to the vault.
func (w *Workspace) Meaningful() bool {
	return len(w.Messages) > 0 || len(w.Vendors) > 0 || w.Requirement.ItemName != ""
}

// TurnResult is the updated workspace plus the reply that produced it.
type TurnResult struct {
	Workspace Workspace `json:"workspace"`
	Reply     Reply     `json:"reply"`
}

// TurnService runs UI-side turns: the full transcript stays with the
// client, only the trailing window goes to the model.
type TurnService struct {
	config    *Config
	responder Responder
	history   *History
	logger    Logger
	now       func() time.Time
}

// NewTurnService wires a TurnService.
func NewTurnService(config *Config, responder Responder, logger Logger) (*TurnService, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, &ChatError{Type: ErrTypeConfig, Operation: "constructor", Message: err.Error()}
	}
	if responder == nil {
		return nil, NewValidationError("constructor", "responder is required")
	}
	if logger == nil {
		logger = nopLogger{}
	}
	return &TurnService{
		config:    config,
		responder: responder,
		history:   NewHistory(config.HistoryLimit),
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Start opens a task from the intake form. The transcript starts with the
// short echo while the model gets the composite brief.
func (s *TurnService) Start(ctx context.Context, req domain.Requirement) (*TurnResult, error) {
	if strings.TrimSpace(req.ItemName) == "" {
		return nil, NewValidationError("start", "item name is required")
	}
	if req.PreferredLocation == "" {
		req.PreferredLocation = domain.DefaultLocation
	}

	echo, prompt := ComposeInitialTurn(req, s.now())
	ws := Workspace{
		Requirement: req,
		Messages:    []domain.Message{echo},
		Vendors:     []domain.Vendor{},
	}

	s.logger.Info("starting sourcing task", "item", req.ItemName, "location", req.PreferredLocation)
	return s.complete(ctx, ws, []domain.Message{prompt}), nil
}

// Continue appends a user message and runs one turn.
func (s *TurnService) Continue(ctx context.Context, ws Workspace, text string) (*TurnResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewValidationError("continue", "message cannot be empty")
	}
	if s.config.MaxInputLen > 0 && len([]rune(text)) > s.config.MaxInputLen {
		return nil, NewValidationError("continue", "message is too long")
	}

	msg := domain.NewMessage(domain.RoleUser, SanitizeForPrompt(text), s.now())
	ws.Messages = append(append([]domain.Message{}, ws.Messages...), msg)
	return s.complete(ctx, ws, s.history.Window(ws.Messages)), nil
}

// LoadMore asks for another batch of suppliers for the same requirement.
func (s *TurnService) LoadMore(ctx context.Context, ws Workspace) (*TurnResult, error) {
	return s.Continue(ctx, ws, LoadMorePrompt)
}

func (s *TurnService) complete(ctx context.Context, ws Workspace, window []domain.Message) *TurnResult {
	reply := s.responder.Respond(ctx, window)

	ws.Messages = append(ws.Messages, domain.NewMessage(domain.RoleAssistant, reply.Prose, s.now()))
	if len(reply.Vendors) > 0 {
		ws.Vendors = Merge(ws.Vendors, reply.Vendors)
	}
	if ws.Vendors == nil {
		ws.Vendors = []domain.Vendor{}
	}

	s.logger.Info("turn completed",
		"messages", len(ws.Messages),
		"new_vendors", len(reply.Vendors),
		"total_vendors", len(ws.Vendors),
		"fallback", reply.Fallback,
	)
	return &TurnResult{Workspace: ws, Reply: reply}
}

package chat

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/iyunix/go-vendornexus/internal/domain"
)

type scriptedResponder struct {
	replies []Reply
	calls   [][]domain.Message
}

func (r *scriptedResponder) Respond(_ context.Context, history []domain.Message) Reply {
	r.calls = append(r.calls, history)
	if len(r.replies) == 0 {
		return Reply{Prose: "ok", Vendors: []domain.Vendor{}}
	}
	next := r.replies[0]
	r.replies = r.replies[1:]
	return next
}

func newTestTurnService(t *testing.T, r Responder) *TurnService {
	t.Helper()
	s, err := NewTurnService(DefaultConfig(), r, nil)
	if err != nil {
		t.Fatalf("NewTurnService: %v", err)
	}
	return s
}

func TestTurnStartSendsCompositePrompt(t *testing.T) {
	r := &scriptedResponder{replies: []Reply{{Prose: "What grade?", Vendors: []domain.Vendor{}}}}
	s := newTestTurnService(t, r)

	res, err := s.Start(context.Background(), domain.Requirement{ItemName: "Valves"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if res.Workspace.Requirement.PreferredLocation != domain.DefaultLocation {
		t.Errorf("location = %q, want %q", res.Workspace.Requirement.PreferredLocation, domain.DefaultLocation)
	}
	if len(r.calls) != 1 || len(r.calls[0]) != 1 {
		t.Fatalf("responder calls = %v", r.calls)
	}
	if !strings.HasPrefix(r.calls[0][0].Content, "I have a sourcing request for: Valves.") {
		t.Errorf("model saw %q", r.calls[0][0].Content)
	}
	msgs := res.Workspace.Messages
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(msgs))
	}
	if !strings.HasPrefix(msgs[0].Content, "I'm looking for suppliers for Valves in Hyderabad.") {
		t.Errorf("echo = %q", msgs[0].Content)
	}
	if msgs[1].Role != domain.RoleAssistant || msgs[1].Content != "What grade?" {
		t.Errorf("assistant = %+v", msgs[1])
	}
}

func TestTurnStartRequiresItemName(t *testing.T) {
	s := newTestTurnService(t, &scriptedResponder{})
	_, err := s.Start(context.Background(), domain.Requirement{ItemName: "  "})
	if !IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestTurnContinueMergesVendorsAndWindows(t *testing.T) {
	r := &scriptedResponder{}
	s := newTestTurnService(t, r)

	ws := Workspace{}
	for i := 0; i < 10; i++ {
		res, err := s.Continue(context.Background(), ws, fmt.Sprintf("turn %d", i))
		if err != nil {
			t.Fatalf("Continue: %v", err)
		}
		ws = res.Workspace
	}
	if len(ws.Messages) != 20 {
		t.Errorf("client transcript = %d messages, want 20", len(ws.Messages))
	}
	last := r.calls[len(r.calls)-1]
	if len(last) != DefaultHistoryLimit {
		t.Errorf("model window = %d, want %d", len(last), DefaultHistoryLimit)
	}
	if last[len(last)-1].Content != "turn 9" {
		t.Errorf("last window message = %q, want turn 9", last[len(last)-1].Content)
	}

	r.replies = []Reply{{Prose: "found", Vendors: []domain.Vendor{{Name: "Acme", Rating: domain.Float64(4)}}}}
	res, err := s.LoadMore(context.Background(), ws)
	if err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if got := res.Workspace.Messages[len(res.Workspace.Messages)-2].Content; got != LoadMorePrompt {
		t.Errorf("load more sent %q", got)
	}
	if len(res.Workspace.Vendors) != 1 || res.Workspace.Vendors[0].ID != "acme" {
		t.Errorf("Vendors = %+v", res.Workspace.Vendors)
	}
	if !res.Workspace.Meaningful() {
		t.Error("Meaningful = false, want true")
	}
}

func TestTurnContinueRejectsEmptyInput(t *testing.T) {
	r := &scriptedResponder{}
	s := newTestTurnService(t, r)
	if _, err := s.Continue(context.Background(), Workspace{}, "   "); !IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("responder called %d times, want 0", len(r.calls))
	}
}

func TestTurnFallbackKeepsVendors(t *testing.T) {
	r := &scriptedResponder{replies: []Reply{{Prose: "sorry", Vendors: []domain.Vendor{}, Fallback: true}}}
	s := newTestTurnService(t, r)
	ws := Workspace{Vendors: []domain.Vendor{{ID: "acme", Name: "Acme"}}}

	res, err := s.Continue(context.Background(), ws, "more please")
	if err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if !res.Reply.Fallback {
		t.Error("Fallback = false, want true")
	}
	if len(res.Workspace.Vendors) != 1 {
		t.Errorf("Vendors = %+v, want existing set unchanged", res.Workspace.Vendors)
	}
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iyunix/go-vendornexus/internal/services/bot"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type fakeBotAPI struct {
	mu             sync.Mutex
	rejectMarkdown bool
	floodReplies   int
	pendingUpdates string // JSON array served once by getUpdates
	sendCalls      int
	sent           []map[string]string
	actions        int
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	w.Header().Set("Content-Type", "application/json")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"Nexus","username":"nexus_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/deleteWebhook"):
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	case strings.HasSuffix(r.URL.Path, "/getUpdates"):
		if f.pendingUpdates != "" {
			_, _ = w.Write([]byte(`{"ok":true,"result":` + f.pendingUpdates + `}`))
			f.pendingUpdates = ""
			return
		}
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	case strings.HasSuffix(r.URL.Path, "/sendChatAction"):
		f.actions++
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		f.sendCalls++
		if f.floodReplies > 0 {
			f.floodReplies--
			_, _ = w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 0","parameters":{"retry_after":0}}`))
			return
		}
		if f.rejectMarkdown && r.Form.Get("parse_mode") != "" {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities: Can't find end of the entity starting at byte offset 3"}`))
			return
		}
		f.sent = append(f.sent, map[string]string{
			"chat_id":    r.Form.Get("chat_id"),
			"text":       r.Form.Get("text"),
			"parse_mode": r.Form.Get("parse_mode"),
		})
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":5,"type":"private"},"text":"ok"}}`))
	default:
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func newTestAdapter(t *testing.T, fake *fakeBotAPI) *Adapter {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	a, err := NewAdapter(&Config{Token: "123:abc", Endpoint: srv.URL + "/bot%s/%s"}, nopLogger{})
	if err != nil {
		t.Fatalf("NewAdapter: %v", err)
	}
	return a
}

func TestAdapter_SendText(t *testing.T) {
	fake := &fakeBotAPI{}
	a := newTestAdapter(t, fake)

	if a.Username() != "nexus_bot" {
		t.Errorf("Username = %q, want nexus_bot", a.Username())
	}
	if err := a.SendText(context.Background(), 5, "*hi*", true); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if err := a.SendTyping(context.Background(), 5); err != nil {
		t.Fatalf("SendTyping: %v", err)
	}

	if len(fake.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(fake.sent))
	}
	if fake.sent[0]["parse_mode"] != "Markdown" || fake.sent[0]["chat_id"] != "5" {
		t.Errorf("sent = %v", fake.sent[0])
	}
	if fake.actions != 1 {
		t.Errorf("actions = %d, want 1", fake.actions)
	}
}

func TestAdapter_RenderRejected(t *testing.T) {
	fake := &fakeBotAPI{rejectMarkdown: true}
	a := newTestAdapter(t, fake)

	err := a.SendText(context.Background(), 5, "*broken", true)
	if !errors.Is(err, bot.ErrRenderRejected) {
		t.Fatalf("err = %v, want ErrRenderRejected", err)
	}
	if err := a.SendText(context.Background(), 5, "*broken", false); err != nil {
		t.Fatalf("plain SendText: %v", err)
	}
}

func TestAdapter_ParseUpdate(t *testing.T) {
	a := newTestAdapter(t, &fakeBotAPI{})

	body := `{"update_id":1,"message":{"message_id":3,"date":0,"chat":{"id":77,"type":"private"},"text":"need valves"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader(body))
	in, ok, err := a.ParseUpdate(req)
	if err != nil || !ok {
		t.Fatalf("ParseUpdate = %v, %v", ok, err)
	}
	if in.ChatID != 77 || in.Text != "need valves" {
		t.Errorf("Inbound = %+v", in)
	}

	sticker := `{"update_id":2,"message":{"message_id":4,"date":0,"chat":{"id":77,"type":"private"}}}`
	req = httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader(sticker))
	if _, ok, err := a.ParseUpdate(req); ok || err != nil {
		t.Errorf("non-text update = %v, %v; want ignored", ok, err)
	}
}

func TestAdapter_WithBotFallback(t *testing.T) {
	fake := &fakeBotAPI{rejectMarkdown: true}
	a := newTestAdapter(t, fake)

	var transport bot.Transport = a
	err := transport.SendText(context.Background(), 1, "_x", true)
	if !errors.Is(err, bot.ErrRenderRejected) {
		t.Errorf("err = %v, want ErrRenderRejected", err)
	}
}

func TestAdapter_RetriesFloodControl(t *testing.T) {
	fake := &fakeBotAPI{floodReplies: 2}
	a := newTestAdapter(t, fake)

	if err := a.SendText(context.Background(), 5, "hello", false); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if fake.sendCalls != 3 || len(fake.sent) != 1 {
		t.Errorf("sendCalls = %d, sent = %d; want 3, 1", fake.sendCalls, len(fake.sent))
	}

	fake.floodReplies = 5
	fake.sendCalls = 0
	if err := a.SendText(context.Background(), 5, "hello", false); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if fake.sendCalls != DefaultRetryConfig().MaxAttempts {
		t.Errorf("sendCalls = %d, want %d", fake.sendCalls, DefaultRetryConfig().MaxAttempts)
	}
}

func TestAdapter_RenderRejectedIsNotRetried(t *testing.T) {
	fake := &fakeBotAPI{rejectMarkdown: true}
	a := newTestAdapter(t, fake)

	_ = a.SendText(context.Background(), 5, "*broken", true)
	if fake.sendCalls != 1 {
		t.Errorf("sendCalls = %d, want 1", fake.sendCalls)
	}
}

func textUpdate(id int, chatID int64, text string) string {
	return fmt.Sprintf(`{"update_id":%d,"message":{"message_id":%d,"date":0,"chat":{"id":%d,"type":"private"},"text":%q}}`, id, id, chatID, text)
}

func TestAdapter_PollKeepsChatOrderAndWaitsForTurns(t *testing.T) {
	fake := &fakeBotAPI{pendingUpdates: "[" + strings.Join([]string{
		textUpdate(1, 1, "first"),
		textUpdate(2, 1, "second"),
		textUpdate(3, 2, "other chat"),
	}, ",") + "]"}
	a := newTestAdapter(t, fake)

	var (
		mu       sync.Mutex
		finished []string
	)
	otherStarted := make(chan struct{})
	handle := func(ctx context.Context, chatID int64, text string) error {
		switch text {
		case "first":
			time.Sleep(100 * time.Millisecond)
		case "other chat":
			close(otherStarted)
			time.Sleep(300 * time.Millisecond)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		mu.Lock()
		finished = append(finished, text)
		mu.Unlock()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Poll(ctx, handle) }()

	deadline := time.After(3 * time.Second)
	for {
		mu.Lock()
		n := len(finished)
		mu.Unlock()
		if n >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for chat 1 turns")
		case <-time.After(10 * time.Millisecond):
		}
	}
	<-otherStarted
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Poll: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Poll did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"first", "second", "other chat"}
	if len(finished) != len(want) {
		t.Fatalf("finished = %v, want %v", finished, want)
	}
	for i := range want {
		if finished[i] != want[i] {
			t.Errorf("finished[%d] = %q, want %q", i, finished[i], want[i])
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (&Config{}).Validate(); err == nil {
		t.Error("expected missing token to fail")
	}
	if err := (&Config{Token: "t", Endpoint: "http://x/%s"}).Validate(); err == nil {
		t.Error("expected malformed endpoint to fail")
	}
	if err := (&Config{Token: "t", Retry: &RetryConfig{}}).Validate(); err == nil {
		t.Error("expected zero retry attempts to fail")
	}
}

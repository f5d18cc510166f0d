package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iyunix/go-vendornexus/internal/domain"
	"github.com/iyunix/go-vendornexus/internal/repository/conversation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (c *countingPurger) PurgeExpired(context.Context, time.Time) (int64, error) {
	c.calls.Add(1)
	return 0, c.err
}

func TestNewSessionPurger_InvalidSchedule(t *testing.T) {
	if _, err := NewSessionPurger(&countingPurger{}, "not a cron expr", nopLogger{}); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestNextDelay(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

	every, err := NewSessionPurger(&countingPurger{}, "@every 10m", nopLogger{})
	if err != nil {
		t.Fatalf("NewSessionPurger: %v", err)
	}
	if d := every.NextDelay(now); d != 10*time.Minute {
		t.Errorf("@every 10m delay = %v, want 10m", d)
	}

	daily, err := NewSessionPurger(&countingPurger{}, "0 9 * * *", nopLogger{})
	if err != nil {
		t.Fatalf("NewSessionPurger: %v", err)
	}
	if d := daily.NextDelay(now); d != 30*time.Minute {
		t.Errorf("daily delay = %v, want 30m", d)
	}
}

func TestRunOnce_PurgesExpiredSessions(t *testing.T) {
	ctx := context.Background()
	store := conversation.NewMemoryStore()
	msgs := []domain.Message{domain.NewMessage(domain.RoleUser, "hi", time.Now())}
	if err := store.Put(ctx, "telegram:1", msgs, time.Nanosecond); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, "telegram:2", msgs, time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}

	p, err := NewSessionPurger(store, "@every 1m", nopLogger{})
	if err != nil {
		t.Fatalf("NewSessionPurger: %v", err)
	}
	p.now = func() time.Time { return time.Now().Add(time.Minute) }

	n, err := p.RunOnce(ctx)
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}
	if _, err := store.Get(ctx, "telegram:2"); err != nil {
		t.Errorf("live session was purged: %v", err)
	}
}

func TestRunOnce_ReportsStoreError(t *testing.T) {
	p, _ := NewSessionPurger(&countingPurger{err: errors.New("disk full")}, "@every 1m", nopLogger{})
	if _, err := p.RunOnce(context.Background()); err == nil {
		t.Fatal("expected store error")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	purger := &countingPurger{}
	p, err := NewSessionPurger(purger, "@every 1s", nopLogger{})
	if err != nil {
		t.Fatalf("NewSessionPurger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		if err := p.Run(ctx); err != nil {
			t.Errorf("Run: %v", err)
		}
		close(done)
	}()

	time.Sleep(1500 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if purger.calls.Load() < 1 {
		t.Errorf("calls = %d, want at least 1", purger.calls.Load())
	}
}

type slowPurger struct {
	started  chan struct{}
	finished atomic.Bool
	once     atomic.Bool
}

func (s *slowPurger) PurgeExpired(context.Context, time.Time) (int64, error) {
	if s.once.CompareAndSwap(false, true) {
		close(s.started)
	}
	time.Sleep(500 * time.Millisecond)
	s.finished.Store(true)
	return 0, nil
}

func TestRun_WaitsForPurgeInProgress(t *testing.T) {
	purger := &slowPurger{started: make(chan struct{})}
	p, err := NewSessionPurger(purger, "@every 1s", nopLogger{})
	if err != nil {
		t.Fatalf("NewSessionPurger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = p.Run(ctx)
		close(done)
	}()

	select {
	case <-purger.started:
	case <-time.After(3 * time.Second):
		t.Fatal("purge never started")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if !purger.finished.Load() {
		t.Error("Run returned while a purge was still running")
	}
}

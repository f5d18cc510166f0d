// File: internal/scheduler/purge.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts 5-field expressions and descriptors such as "@every 10m".
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ExpiredPurger removes sessions whose TTL has passed.
type ExpiredPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// SessionPurger evicts expired bot conversations on a cron schedule so idle
// chats do not keep rows forever.
type SessionPurger struct {
	store    ExpiredPurger
	expr     string
	schedule cron.Schedule
	logger   Logger
	now      func() time.Time
}

// NewSessionPurger parses expr up front so a bad schedule fails at startup.
func NewSessionPurger(store ExpiredPurger, expr string, logger Logger) (*SessionPurger, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("scheduler: parse %q: %w", expr, err)
	}
	return &SessionPurger{store: store, expr: expr, schedule: sched, logger: logger, now: time.Now}, nil
}

// NextDelay returns the time until the next run after now.
func (p *SessionPurger) NextDelay(now time.Time) time.Duration {
	d := p.schedule.Next(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// RunOnce purges once and returns how many sessions were removed.
func (p *SessionPurger) RunOnce(ctx context.Context) (int64, error) {
	n, err := p.store.PurgeExpired(ctx, p.now())
	if err != nil {
		p.logger.Error("session purge failed", "error", err)
		return 0, err
	}
	if n > 0 {
		p.logger.Info("purged expired sessions", "count", n)
	} else {
		p.logger.Debug("no expired sessions")
	}
	return n, nil
}

// Run blocks until ctx is cancelled, purging at every scheduled time. A purge
// still running when the next tick fires is not started twice. Run returns
// once any running purge has finished.
func (p *SessionPurger) Run(ctx context.Context) error {
	c := cron.New(
		cron.WithParser(cronParser),
		cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(p.expr, func() { _, _ = p.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("scheduler: schedule %q: %w", p.expr, err)
	}
	c.Start()
	p.logger.Info("session purge scheduled", "schedule", p.expr)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

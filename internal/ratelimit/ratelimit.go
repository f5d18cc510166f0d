// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting configuration
type Config struct {
	WindowSize    time.Duration // fixed window length
	MaxRequests   int           // requests allowed per window
	CleanupPeriod time.Duration // how often idle records are dropped
	BanDuration   time.Duration // cool-down after exceeding the limit; 0 waits for the window
}

// DefaultAPIConfig suits the sourcing API: every turn is one model call.
func DefaultAPIConfig() *Config {
	return &Config{
		WindowSize:    time.Minute,
		MaxRequests:   30,
		CleanupPeriod: 10 * time.Minute,
		BanDuration:   0,
	}
}

// UploadConfig is stricter for document uploads.
func UploadConfig() *Config {
	return &Config{
		WindowSize:    time.Minute,
		MaxRequests:   10,
		CleanupPeriod: 10 * time.Minute,
		BanDuration:   5 * time.Minute,
	}
}

type record struct {
	count     int
	firstSeen time.Time
	bannedAt  *time.Time
}

// Info contains information about rate limit status
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
	Banned     bool
}

// MemoryRateLimiter implements per-identifier fixed-window limiting.
type MemoryRateLimiter struct {
	config  *Config
	records map[string]*record
	mu      sync.Mutex
	stopCh  chan struct{}
	once    sync.Once
	now     func() time.Time
}

// NewMemoryRateLimiter starts a limiter with a background cleanup loop.
// Call Close to stop it.
func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	if config == nil {
		config = DefaultAPIConfig()
	}
	limiter := &MemoryRateLimiter{
		config:  config,
		records: make(map[string]*record),
		stopCh:  make(chan struct{}),
		now:     time.Now,
	}
	if config.CleanupPeriod > 0 {
		go limiter.cleanupLoop()
	}
	return limiter
}

// Allow records one request for identifier and reports whether it may proceed.
func (rl *MemoryRateLimiter) Allow(identifier string) (bool, *Info) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rec, ok := rl.records[identifier]

	if ok && rec.bannedAt != nil {
		if until := rec.bannedAt.Add(rl.config.BanDuration); now.Before(until) {
			return false, &Info{
				Limit:      rl.config.MaxRequests,
				ResetTime:  until,
				RetryAfter: until.Sub(now),
				Banned:     true,
			}
		}
		ok = false
	}

	if !ok || now.Sub(rec.firstSeen) >= rl.config.WindowSize {
		rec = &record{firstSeen: now}
		rl.records[identifier] = rec
	}

	rec.count++
	reset := rec.firstSeen.Add(rl.config.WindowSize)

	if rec.count > rl.config.MaxRequests {
		info := &Info{
			Limit:      rl.config.MaxRequests,
			ResetTime:  reset,
			RetryAfter: reset.Sub(now),
		}
		if rl.config.BanDuration > 0 {
			banTime := now
			rec.bannedAt = &banTime
			info.ResetTime = now.Add(rl.config.BanDuration)
			info.RetryAfter = rl.config.BanDuration
			info.Banned = true
		}
		return false, info
	}

	return true, &Info{
		Allowed:   true,
		Limit:     rl.config.MaxRequests,
		Remaining: rl.config.MaxRequests - rec.count,
		ResetTime: reset,
	}
}

func (rl *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for id, rec := range rl.records {
		windowExpired := now.Sub(rec.firstSeen) > rl.config.WindowSize
		banExpired := rec.bannedAt == nil || now.Sub(*rec.bannedAt) > rl.config.BanDuration
		if windowExpired && banExpired {
			delete(rl.records, id)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (rl *MemoryRateLimiter) Close() {
	rl.once.Do(func() { close(rl.stopCh) })
}

// GetClientIP extracts the real client IP from request
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := strings.TrimSpace(strings.Split(forwarded, ",")[0]); ip != "" {
			return ip
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(cfg *Config, now *time.Time) *MemoryRateLimiter {
	cfg.CleanupPeriod = 0
	rl := NewMemoryRateLimiter(cfg)
	rl.now = func() time.Time { return *now }
	return rl
}

func TestAllow_WindowResets(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := newTestLimiter(&Config{WindowSize: time.Minute, MaxRequests: 2}, &now)
	defer rl.Close()

	for i := 0; i < 2; i++ {
		if ok, _ := rl.Allow("1.2.3.4"); !ok {
			t.Fatalf("request %d denied", i)
		}
	}
	ok, info := rl.Allow("1.2.3.4")
	if ok {
		t.Fatal("third request allowed")
	}
	if info.Banned || info.RetryAfter != time.Minute {
		t.Errorf("info = %+v", info)
	}
	if ok, _ := rl.Allow("5.6.7.8"); !ok {
		t.Error("other identifier denied")
	}

	now = now.Add(time.Minute)
	if ok, info := rl.Allow("1.2.3.4"); !ok || info.Remaining != 1 {
		t.Errorf("after window: ok = %v, info = %+v", ok, info)
	}
}

func TestAllow_Ban(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := newTestLimiter(&Config{WindowSize: time.Minute, MaxRequests: 1, BanDuration: 5 * time.Minute}, &now)
	defer rl.Close()

	rl.Allow("ip")
	if ok, info := rl.Allow("ip"); ok || !info.Banned {
		t.Fatalf("expected ban, got ok = %v info = %+v", ok, info)
	}
	now = now.Add(2 * time.Minute)
	if ok, _ := rl.Allow("ip"); ok {
		t.Error("allowed during ban")
	}
	now = now.Add(4 * time.Minute)
	if ok, _ := rl.Allow("ip"); !ok {
		t.Error("denied after ban expired")
	}
}

func TestCleanupDropsIdleRecords(t *testing.T) {
	now := time.Unix(1000, 0)
	rl := newTestLimiter(&Config{WindowSize: time.Minute, MaxRequests: 5}, &now)
	defer rl.Close()

	rl.Allow("ip")
	now = now.Add(2 * time.Minute)
	rl.cleanup()
	if len(rl.records) != 0 {
		t.Errorf("records = %d, want 0", len(rl.records))
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	if got := GetClientIP(r); got != "10.0.0.1" {
		t.Errorf("GetClientIP = %q, want 10.0.0.1", got)
	}
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := GetClientIP(r); got != "203.0.113.7" {
		t.Errorf("GetClientIP = %q, want 203.0.113.7", got)
	}
}

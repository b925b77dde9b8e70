package service

import (
	"testing"
	"time"

	"videograb/internal/model"
)

func TestRateLimitDisabledAllowsEverything(t *testing.T) {
	rls := NewRateLimitService(&model.RateLimitConfig{Enabled: false})
	defer rls.Stop()

	for i := 0; i < 100; i++ {
		if !rls.IsAllowed("1.2.3.4") {
			t.Fatalf("request %d rejected with limiting disabled", i)
		}
	}
	if got := rls.GetRemaining("1.2.3.4"); got != -1 {
		t.Errorf("GetRemaining = %d, want -1", got)
	}
}

func TestRateLimitRejectsPastBurst(t *testing.T) {
	rls := NewRateLimitService(&model.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 1,
		BurstSize:         3,
	})
	defer rls.Stop()

	for i := 0; i < 3; i++ {
		if !rls.IsAllowed("10.0.0.1") {
			t.Fatalf("request %d rejected inside burst", i)
		}
	}
	if rls.IsAllowed("10.0.0.1") {
		t.Error("request past burst should be rejected")
	}
	if !rls.IsAllowed("10.0.0.2") {
		t.Error("other IPs must have their own bucket")
	}
	if got := rls.GetRemaining("10.0.0.1"); got != 0 {
		t.Errorf("GetRemaining = %d, want 0", got)
	}
}

func TestRateLimitCleanupDropsIdleEntries(t *testing.T) {
	rls := NewRateLimitService(&model.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 60,
		BurstSize:         1,
		CleanupInterval:   60,
	})
	defer rls.Stop()

	rls.IsAllowed("a")
	rls.cleanup(time.Now().Add(2 * time.Minute))

	rls.mu.Lock()
	defer rls.mu.Unlock()
	if len(rls.limits) != 0 {
		t.Errorf("limits = %d entries, want 0", len(rls.limits))
	}
}

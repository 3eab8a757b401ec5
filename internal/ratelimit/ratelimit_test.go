package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWait_SameHost_EnforcesMinGap(t *testing.T) {
	limiter := NewHostLimiter(100 * time.Millisecond)
	ctx := context.Background()

	// First navigation should return immediately.
	if err := limiter.Wait(ctx, "https://himalayas.app/jobs/engineering"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "https://himalayas.app/jobs/acme/backend"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)

	// Should have waited at least ~100ms (allow 80ms for timer jitter).
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait, got %v", elapsed)
	}
}

func TestWait_DifferentHosts_NoCrossBlocking(t *testing.T) {
	limiter := NewHostLimiter(200 * time.Millisecond)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://himalayas.app/jobs"); err != nil {
		t.Fatalf("himalayas wait: %v", err)
	}

	// Immediately navigate to another board. Should NOT block.
	start := time.Now()
	if err := limiter.Wait(ctx, "https://www.workingnomads.com/jobs"); err != nil {
		t.Fatalf("workingnomads wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected cross-host wait to be near-instant, got %v", elapsed)
	}
}

func TestWait_ContextCancellation(t *testing.T) {
	limiter := NewHostLimiter(5 * time.Second) // long gap
	if err := limiter.Wait(context.Background(), "https://himalayas.app/a"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if err := limiter.Wait(ctx, "https://himalayas.app/b"); err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}

func TestHostOf_FallsBackToRawValue(t *testing.T) {
	if got := hostOf("https://himalayas.app/jobs"); got != "himalayas.app" {
		t.Errorf("hostOf = %q, want himalayas.app", got)
	}
	if got := hostOf("not a url"); got != "not a url" {
		t.Errorf("hostOf = %q, want raw value back", got)
	}
}

package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"
)

// HostLimiter enforces a minimum gap between navigations to the same host,
// so card discovery and detail fetching stay polite to each board. Page
// adapters and the detail fetcher share one instance per run.
type HostLimiter struct {
	mu      sync.Mutex
	lastNav map[string]time.Time // key: URL host
	minGap  time.Duration
}

// NewHostLimiter creates a limiter that enforces minGap between consecutive
// navigations to the same host.
func NewHostLimiter(minGap time.Duration) *HostLimiter {
	return &HostLimiter{
		lastNav: make(map[string]time.Time),
		minGap:  minGap,
	}
}

// Wait blocks until the courtesy gap for rawURL's host has elapsed. Returns
// an error only if the context is cancelled while waiting.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string) error {
	host := hostOf(rawURL)

	l.mu.Lock()
	last, ok := l.lastNav[host]
	now := time.Now()

	if !ok || now.Sub(last) >= l.minGap {
		l.lastNav[host] = now
		l.mu.Unlock()
		return nil
	}

	remaining := l.minGap - now.Sub(last)
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", host, ctx.Err())
	case <-time.After(remaining):
	}

	l.mu.Lock()
	l.lastNav[host] = time.Now()
	l.mu.Unlock()

	return nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

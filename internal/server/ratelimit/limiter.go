// Package ratelimit counts login attempts per key in fixed windows.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

// Limiter decides whether one more attempt for key fits the current window.
//
// Allow returns true with a non-nil error when the backend failed: callers
// log the error and let the attempt through.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

// MemoryLimiter keeps counters in process memory.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]windowState

	stop chan struct{}
	once sync.Once
}

type windowState struct {
	count int
	end   time.Time
}

// NewMemoryLimiter allows limit attempts per window. A non-positive limit
// disables limiting.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	l := newMemoryLimiter(limit, window, time.Now)
	go l.sweepLoop()
	return l
}

func newMemoryLimiter(limit int, window time.Duration, now func() time.Time) *MemoryLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     now,
		entries: make(map[string]windowState),
		stop:    make(chan struct{}),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	st, ok := l.entries[key]
	if !ok || !now.Before(st.end) {
		l.entries[key] = windowState{count: 1, end: now.Add(l.window)}
		return true, nil
	}
	if st.count >= l.limit {
		return false, nil
	}
	st.count++
	l.entries[key] = st
	return true, nil
}

func (l *MemoryLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops windows that have ended.
func (l *MemoryLimiter) sweep() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, st := range l.entries {
		if !now.Before(st.end) {
			delete(l.entries, key)
		}
	}
}

func (l *MemoryLimiter) Close() error {
	l.once.Do(func() { close(l.stop) })
	return nil
}

package auth

import (
	"sync"
	"time"
)

// LoginLimiter throttles failed login attempts per key, e.g. the submitted
// username. Successful logins reset the counter.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attempts
	max      int
	window   time.Duration
}

type attempts struct {
	count int
	first time.Time
}

// NewLoginLimiter returns a limiter allowing max failed attempts per key
// within the window.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts: make(map[string]*attempts),
		max:      max,
		window:   window,
	}
}

// Allow reports whether another attempt for the key is permitted.
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[key]
	if !ok {
		return true
	}

	if time.Since(a.first) > l.window {
		delete(l.attempts, key)
		return true
	}

	return a.count < l.max
}

// Failure records a failed attempt for the key.
func (l *LoginLimiter) Failure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[key]
	if !ok || time.Since(a.first) > l.window {
		l.attempts[key] = &attempts{count: 1, first: time.Now()}
		return
	}

	a.count++
}

// Success clears the failure counter for the key.
func (l *LoginLimiter) Success(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, key)
}

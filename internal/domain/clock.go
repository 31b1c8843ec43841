package domain

import (
	"sync"
	"time"
)

// Clock supplies the current time to services that stamp records.
type Clock interface {
	Now() time.Time
}

// SystemClock reports wall-clock time in UTC.
type SystemClock struct{}

// Now returns the current time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// StubClock is a settable clock for tests. It is safe for concurrent use.
type StubClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewStubClock creates a StubClock frozen at t.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{current: t}
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

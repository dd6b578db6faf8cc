// Package clock supplies the current time to booking rules and views.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// Precision matches the seconds resolution of the wire timestamp format, so a
// booking starting "now" is not already in the past.
const Precision = time.Second

type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now().Truncate(Precision)
}

// MockClock is a settable clock for tests.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Package clock supplies the current time, in unix seconds, to the stream engine.
package clock

import (
	"sync"
	"time"
)

// Clock returns the current wall-clock time in unix seconds.
type Clock interface {
	Now() uint64
}

// System reads the host clock.
type System struct{}

func (System) Now() uint64 { return uint64(time.Now().Unix()) }

// Manual is a clock that only moves when told to. Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now uint64
}

// NewManual creates a Manual clock fixed at now.
func NewManual(now uint64) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to now, which may be in the past.
func (m *Manual) Set(now uint64) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// Advance moves the clock forward by d, truncated to whole seconds.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += uint64(d / time.Second)
	m.mu.Unlock()
}

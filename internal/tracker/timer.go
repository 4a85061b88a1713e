// Package tracker models the browser client: a stopwatch-style timer and the
// new-session form that gates saving it.
package tracker

import (
	"sync"
	"time"
)

// Timer accumulates elapsed time between Start and Stop calls.
type Timer struct {
	mu        sync.Mutex
	now       func() time.Time
	startedAt time.Time // first start since the last reset
	resumedAt time.Time // start of the current running span
	elapsed   time.Duration
	running   bool
}

// NewTimer returns a stopped timer. A nil clock uses time.Now.
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Start begins or resumes timing. It is a no-op while running.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}
	now := t.now()
	if t.startedAt.IsZero() {
		t.startedAt = now
	}
	t.resumedAt = now
	t.running = true
}

// Stop pauses timing and folds the current span into the total.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}
	t.elapsed += t.now().Sub(t.resumedAt)
	t.running = false
}

// Reset clears the timer. Ignored while running.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}
	t.startedAt = time.Time{}
	t.resumedAt = time.Time{}
	t.elapsed = 0
}

// Elapsed reports total timed duration, including the running span.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsedLocked()
}

func (t *Timer) elapsedLocked() time.Duration {
	if t.running {
		return t.elapsed + t.now().Sub(t.resumedAt)
	}
	return t.elapsed
}

// StartedAt is the instant of the first Start since the last Reset; zero if never started.
func (t *Timer) StartedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startedAt
}

// Running reports whether the timer is ticking.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Controls are the enabled states of the timer buttons.
type Controls struct {
	Start bool
	Stop  bool
	Reset bool
}

// Controls derives which buttons are usable right now.
func (t *Timer) Controls() Controls {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Controls{
		Start: !t.running,
		Stop:  t.running,
		Reset: !t.running && t.elapsedLocked() > 0,
	}
}

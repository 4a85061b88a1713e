package tracker

import (
	"context"
	"errors"
	"sync"

	"github.com/zhouzirui/z-timer/backend/internal/model/session"
)

// ErrSaveDisabled is returned by Save when the form may not be submitted.
var ErrSaveDisabled = errors.New("save is disabled")

// Transport is the HTTP collaborator the form submits through.
type Transport interface {
	CreateSession(ctx context.Context, candidate session.Candidate) (session.Record, error)
	ListSessions(ctx context.Context) ([]session.Record, error)
}

// Form is the "New Session" form bound to a timer.
type Form struct {
	mu        sync.Mutex
	timer     *Timer
	transport Transport
	name      string
	touched   bool
}

// NewForm binds a form to a timer and transport. Nothing is fetched here.
func NewForm(timer *Timer, transport Transport) *Form {
	return &Form{timer: timer, transport: transport}
}

// Timer returns the timer the form is bound to.
func (f *Form) Timer() *Timer {
	return f.timer
}

// SetName records the typed name.
func (f *Form) SetName(name string) {
	f.mu.Lock()
	f.name = name
	f.touched = true
	f.mu.Unlock()
}

// Name returns the current name input.
func (f *Form) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name
}

// ErrorMessage is the inline error text; empty when the name is fine or untouched.
func (f *Form) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.touched {
		return ""
	}
	if verr := session.ValidateName(f.name); verr != nil {
		return verr.Message()
	}
	return ""
}

// SaveEnabled reports whether the Save button is active: a valid name and a
// timer that has been started and is now stopped.
func (f *Form) SaveEnabled() bool {
	f.mu.Lock()
	name := f.name
	f.mu.Unlock()

	if session.ValidateName(name) != nil {
		return false
	}
	return !f.timer.StartedAt().IsZero() && !f.timer.Running()
}

// Save submits the session. No request is issued when SaveEnabled is false.
func (f *Form) Save(ctx context.Context) (session.Record, error) {
	if !f.SaveEnabled() {
		return session.Record{}, ErrSaveDisabled
	}

	elapsed := float64(int64(f.timer.Elapsed().Seconds()))
	candidate := session.NewCandidate(f.Name(), elapsed, f.timer.StartedAt())
	return f.transport.CreateSession(ctx, candidate)
}

// SavedSessions loads the saved sessions view on demand.
func (f *Form) SavedSessions(ctx context.Context) ([]session.Record, error) {
	return f.transport.ListSessions(ctx)
}

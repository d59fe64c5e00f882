package dashstate

import (
	"sync"
	"time"

	"github.com/dalemusser/opsdash/internal/domain/models"
)

// View owns the current State of one dashboard tab. Dispatch runs one action
// to completion before the next is accepted, so no caller ever observes a
// record edit without its aggregates.
type View struct {
	mu         sync.Mutex
	state      State
	lastActive time.Time
	now        func() time.Time
}

// NewView creates a view holding the seed state of role.
func NewView(role models.Role) *View {
	return newViewWithClock(role, time.Now)
}

func newViewWithClock(role models.Role, now func() time.Time) *View {
	return &View{
		state:      Seed(role),
		lastActive: now(),
		now:        now,
	}
}

// Role returns the view's role.
func (v *View) Role() models.Role {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Role
}

// Snapshot returns a deep copy of the current state.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastActive = v.now()
	return v.state.Clone()
}

// Dispatch applies a and returns a copy of the resulting state.
func (v *View) Dispatch(a Action) (State, Outcome) {
	v.mu.Lock()
	defer v.mu.Unlock()
	next, out := Apply(v.state, a)
	v.state = next
	v.lastActive = v.now()
	return next.Clone(), out
}

// Reset restores the seed state and returns a copy of it.
func (v *View) Reset() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.state.Reset()
	v.lastActive = v.now()
	return v.state.Clone()
}

// Touch marks the view active without reading or changing its state.
func (v *View) Touch() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastActive = v.now()
}

// LastActive is the time of the most recent read or dispatch.
func (v *View) LastActive() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastActive
}

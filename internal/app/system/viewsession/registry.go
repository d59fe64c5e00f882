package viewsession

import (
	"sync"
	"time"

	"github.com/dalemusser/opsdash/internal/app/system/dashstate"
	"github.com/dalemusser/opsdash/internal/domain/models"
)

// Registry holds the live views of every session.
type Registry struct {
	mu    sync.Mutex
	views map[string]map[models.Role]*dashstate.View
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string]map[models.Role]*dashstate.View)}
}

// View returns the session's view for role, seeding it on first use. The
// view is marked active before the registry lock is released, so a Sweep
// with a cutoff in the past cannot drop a view a caller is about to use.
func (g *Registry) View(sessionID string, role models.Role) *dashstate.View {
	g.mu.Lock()
	defer g.mu.Unlock()

	byRole, ok := g.views[sessionID]
	if !ok {
		byRole = make(map[models.Role]*dashstate.View, len(models.Roles))
		g.views[sessionID] = byRole
	}
	v, ok := byRole[role]
	if !ok {
		v = dashstate.NewView(role)
		byRole[role] = v
	}
	v.Touch()
	return v
}

// Len returns the number of live views across all sessions.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, byRole := range g.views {
		n += len(byRole)
	}
	return n
}

// Sweep drops views last active before cutoff and returns how many it removed.
// A session with no views left is forgotten; its next request starts from seed data.
func (g *Registry) Sweep(cutoff time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for id, byRole := range g.views {
		for role, v := range byRole {
			if v.LastActive().Before(cutoff) {
				delete(byRole, role)
				removed++
			}
		}
		if len(byRole) == 0 {
			delete(g.views, id)
		}
	}
	return removed
}

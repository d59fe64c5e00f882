// internal/app/features/dashboard/routes.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/opsdash/internal/app/system/ratelimit"
	"github.com/dalemusser/opsdash/internal/app/system/viewsession"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard feature under whatever mount point
// the top-level router chooses (e.g., "/dashboard").
//
// Every request is bound to a view session first, so each browser gets its
// own copy of the three role views. When limiter is non-nil, mutations are
// throttled per session.
func Routes(h *Handler, sm *viewsession.Manager, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.Attach)

	r.Get("/", h.ServeTabs)

	r.Route("/{role}", func(rr chi.Router) {
		rr.Get("/", h.ServeView)
		rr.Get("/activity", h.ServeActivity)

		rr.Group(func(mr chi.Router) {
			if limiter != nil {
				mr.Use(limiter.Middleware(sessionKey))
			}
			mr.Post("/jobs/{id}/status", h.ServeStatus)
			mr.Post("/inventory/{name}/quantity", h.ServeQuantity)
			mr.Post("/sales", h.ServeSales)
			mr.Post("/reset", h.ServeReset)
		})
	})

	return r
}

func sessionKey(r *http.Request) string {
	id, _ := viewsession.SessionID(r)
	return id
}

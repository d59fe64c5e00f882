package dashboard

import (
	"net/http"

	"github.com/dalemusser/opsdash/internal/domain/models"
)

type tab struct {
	Role  models.Role `json:"role"`
	Title string      `json:"title"`
	Path  string      `json:"path"`
}

type tabsResponse struct {
	Tabs []tab `json:"tabs"`
}

// ServeTabs handles GET /dashboard/ and lists the role tabs in display order.
func (h *Handler) ServeTabs(w http.ResponseWriter, r *http.Request) {
	resp := tabsResponse{Tabs: make([]tab, 0, len(models.Roles))}
	for _, role := range models.Roles {
		resp.Tabs = append(resp.Tabs, tab{
			Role:  role,
			Title: role.Title(),
			Path:  "/dashboard/" + string(role),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ServeView handles GET /dashboard/{role}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	_, view, ok := h.resolve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSnapshot(view.Snapshot()))
}

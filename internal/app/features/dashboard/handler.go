// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/opsdash/internal/app/store/audit"
	"github.com/dalemusser/opsdash/internal/app/system/auditlog"
	"github.com/dalemusser/opsdash/internal/app/system/dashstate"
	"github.com/dalemusser/opsdash/internal/app/system/htmlsanitize"
	"github.com/dalemusser/opsdash/internal/app/system/inputval"
	"github.com/dalemusser/opsdash/internal/app/system/limits"
	"github.com/dalemusser/opsdash/internal/app/system/viewsession"
	"github.com/dalemusser/opsdash/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ActivityReader reads a session's recorded actions. *audit.Store implements it.
type ActivityReader interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	CountByFilter(ctx context.Context, filter audit.QueryFilter) (int64, error)
}

// Handler serves the role dashboards of the caller's view session.
type Handler struct {
	Views  *viewsession.Registry
	Audit  *auditlog.Logger
	Events ActivityReader
	Log    *zap.Logger
}

// NewHandler creates a dashboard Handler. auditLog and events may be nil.
func NewHandler(views *viewsession.Registry, auditLog *auditlog.Logger, events ActivityReader, logger *zap.Logger) *Handler {
	return &Handler{
		Views:  views,
		Audit:  auditLog,
		Events: events,
		Log:    logger,
	}
}

type roleParam struct {
	Role string `validate:"required,role" label:"Dashboard"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// snapshotResponse is everything the renderer needs to draw one tab.
type snapshotResponse struct {
	Role       models.Role      `json:"role"`
	Title      string           `json:"title"`
	Cards      []dashstate.Card `json:"cards"`
	CurrentJob *models.Job      `json:"current_job,omitempty"`
	State      dashstate.State  `json:"state"`
}

// mutationResponse wraps the Outcome of an action with the resulting snapshot.
// A rejected action is still a 200 with applied=false.
type mutationResponse struct {
	Applied  bool             `json:"applied"`
	Reason   string           `json:"reason,omitempty"`
	Notice   string           `json:"notice,omitempty"`
	Message  string           `json:"message,omitempty"`
	Snapshot snapshotResponse `json:"snapshot"`
}

func newSnapshot(s dashstate.State) snapshotResponse {
	resp := snapshotResponse{
		Role:  s.Role,
		Title: s.Role.Title(),
		Cards: s.Cards(),
		State: s,
	}
	if job, ok := s.CurrentJob(); ok {
		resp.CurrentJob = &job
	}
	return resp
}

func newMutation(s dashstate.State, out dashstate.Outcome) mutationResponse {
	return mutationResponse{
		Applied:  out.Applied,
		Reason:   out.Reason,
		Notice:   out.Notice,
		Snapshot: newSnapshot(s),
	}
}

// resolve finds the caller's session and the view named by the {role} path
// segment. It writes the error response itself and reports false on failure.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (string, *dashstate.View, bool) {
	sessionID, ok := viewsession.SessionID(r)
	if !ok {
		h.Log.Error("dashboard request without a view session", zap.String("path", r.URL.Path))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "session unavailable"})
		return "", nil, false
	}

	p := roleParam{Role: chi.URLParam(r, "role")}
	if res := inputval.Validate(p); res.HasErrors() {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: res.First()})
		return "", nil, false
	}
	role, _ := models.ParseRole(p.Role)

	return sessionID, h.Views.View(sessionID, role), true
}

// decodeBody reads a JSON body into dst. An empty body leaves dst zero.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxMutationBodySize))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return false
	}
	return true
}

// pathText returns a URL parameter as plain text suitable for record lookup.
// The router has already decoded the segment, so it is not unescaped again.
func pathText(r *http.Request, key string) string {
	return htmlsanitize.Text(chi.URLParam(r, key))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/opsdash/internal/app/store/audit"
	"github.com/dalemusser/opsdash/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type activityResponse struct {
	Events []audit.Event `json:"events"`
	Total  int64         `json:"total"`
}

// activityFilter reads the optional query parameters of the activity feed:
// limit, offset, type, since and until (RFC 3339). It reports an error
// message for a parameter it cannot use.
func activityFilter(r *http.Request, sessionID, role string) (audit.QueryFilter, string) {
	q := r.URL.Query()
	f := audit.QueryFilter{
		SessionID: sessionID,
		Role:      role,
		Limit:     defaultActivityLimit,
	}

	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		f.Limit = int64(min(n, maxActivityLimit))
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return f, "offset must be a non-negative integer"
		}
		f.Offset = n
	}
	if t := q.Get("type"); t != "" {
		if !audit.IsEventType(t) {
			return f, "type must be a known event type"
		}
		f.EventType = t
	}
	for _, p := range []struct {
		key string
		dst **time.Time
	}{
		{"since", &f.StartTime},
		{"until", &f.EndTime},
	} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return f, p.key + " must be an RFC 3339 timestamp"
		}
		*p.dst = &t
	}
	return f, ""
}

// ServeActivity handles GET /dashboard/{role}/activity: the caller's recent
// actions on this tab, newest first, with the number of matching events.
func (h *Handler) ServeActivity(w http.ResponseWriter, r *http.Request) {
	sessionID, view, ok := h.resolve(w, r)
	if !ok {
		return
	}

	role := string(view.Role())
	filter, msg := activityFilter(r, sessionID, role)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	resp := activityResponse{Events: []audit.Event{}}
	if h.Events == nil {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Ping(), h.Log, "read dashboard activity")
	defer cancel()

	events, err := h.Events.Query(ctx, filter)
	if err == nil {
		resp.Total, err = h.Events.CountByFilter(ctx, filter)
	}
	if err != nil {
		h.Log.Error("activity query failed", zap.Error(err), zap.String("role", role))
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "activity unavailable"})
		return
	}
	if events != nil {
		resp.Events = events
	}
	writeJSON(w, http.StatusOK, resp)
}

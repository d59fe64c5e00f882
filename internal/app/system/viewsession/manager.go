// Package viewsession gives each browser its own set of dashboard views.
//
// A signed cookie carries an opaque session id. The Registry maps that id to
// one dashstate.View per role, created on first use and dropped when idle.
package viewsession

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const sessionIDKey = "view_session_id"

type ctxKey string

const currentSessionKey ctxKey = "viewSessionID"

// Manager issues and reads the view session cookie.
type Manager struct {
	store  *sessions.CookieStore
	name   string
	logger *zap.Logger
}

// NewManager creates a Manager signing cookies with sessionKey.
//
// In production (secure=true), cookies are Secure + SameSite=None.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if name == "" {
		return nil, errors.New("session name is empty")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("view session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &Manager{store: store, name: name, logger: logger}, nil
}

// Attach ensures every request carries a view session id, issuing a new
// cookie when the browser has none or presents one we cannot decode.
func (m *Manager) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			var scErr securecookie.Error
			if errors.As(err, &scErr) && scErr.IsDecode() {
				// Stale or foreign cookie: start over with a fresh session.
				m.logger.Debug("discarding undecodable view session cookie")
				sess, _ = m.store.New(r, m.name)
			} else {
				m.logger.Error("view session load failed", zap.Error(err))
				http.Error(w, "session error", http.StatusInternalServerError)
				return
			}
		}

		id, _ := sess.Values[sessionIDKey].(string)
		if id == "" {
			id = uuid.NewString()
			sess.Values[sessionIDKey] = id
			if err := sess.Save(r, w); err != nil {
				m.logger.Error("view session save failed", zap.Error(err))
				http.Error(w, "session error", http.StatusInternalServerError)
				return
			}
		}

		next.ServeHTTP(w, WithSessionID(r, id))
	})
}

// WithSessionID returns r carrying id as its view session.
func WithSessionID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentSessionKey, id))
}

// SessionID returns the view session id attached to r.
func SessionID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(currentSessionKey).(string)
	return id, ok && id != ""
}

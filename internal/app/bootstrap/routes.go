// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/opsdash/internal/app/features/dashboard"
	healthfeature "github.com/dalemusser/opsdash/internal/app/features/health"
	"github.com/dalemusser/opsdash/internal/app/store/audit"
	"github.com/dalemusser/opsdash/internal/app/system/auditlog"
	"github.com/dalemusser/opsdash/internal/app/system/viewsession"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := viewsession.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	views := deps.Views
	if views == nil {
		views = viewsession.NewRegistry()
	}

	return newRouter(deps, views, sessionMgr, appCfg.AuditLogActions, logger), nil
}

func newRouter(deps DBDeps, views *viewsession.Registry, sessionMgr *viewsession.Manager, auditMode string, logger *zap.Logger) chi.Router {
	var events *audit.Store
	if deps.MongoDatabase != nil {
		events = audit.New(deps.MongoDatabase)
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	if deps.MongoClient != nil {
		healthHandler := healthfeature.NewHandler(deps.MongoClient, views, logger)
		r.Mount("/health", healthfeature.Routes(healthHandler))
	}

	// Role dashboards. A nil *audit.Store must not reach the interface fields.
	var dashboardHandler *dashboardfeature.Handler
	if events != nil {
		auditLog := auditlog.New(events, logger, auditlog.Config{Actions: auditMode})
		dashboardHandler = dashboardfeature.NewHandler(views, auditLog, events, logger)
	} else {
		auditLog := auditlog.New(nil, logger, auditlog.Config{Actions: auditMode})
		dashboardHandler = dashboardfeature.NewHandler(views, auditLog, nil, logger)
	}
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr, deps.Limiter))

	return r
}

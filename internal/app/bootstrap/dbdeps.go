// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/opsdash/internal/app/system/ratelimit"
	"github.com/dalemusser/opsdash/internal/app/system/viewsession"
	"github.com/dalemusser/opsdash/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DBDeps holds database/back-end dependencies for the app.
//
// The in-memory structures live here too: they are created with the DB
// handles, started in Startup and stopped in Shutdown.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Views    *viewsession.Registry
	Limiter  *ratelimit.Limiter // nil when mutation throttling is disabled
	Sweepers []*workers.IdleSweeper
}

// newMemoryDeps builds the view registry, optional limiter and their sweepers.
func newMemoryDeps(appCfg AppConfig, deps DBDeps, logger *zap.Logger) DBDeps {
	deps.Views = viewsession.NewRegistry()
	deps.Sweepers = append(deps.Sweepers,
		workers.NewIdleSweeper("views", deps.Views, logger, appCfg.ViewSweepInterval, appCfg.ViewIdleTimeout))

	if appCfg.MutationRateLimit > 0 {
		deps.Limiter = ratelimit.New(appCfg.MutationRateLimit, time.Minute)
		deps.Sweepers = append(deps.Sweepers,
			workers.NewIdleSweeper("rate_limits", deps.Limiter, logger, appCfg.ViewSweepInterval, 0))
	}
	return deps
}

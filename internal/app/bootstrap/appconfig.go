// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/opsdash/internal/app/system/timeouts"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers ports, TLS, logging and CORS. Everything
// below is specific to the dashboard service.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// MongoDB operation timeouts; zero keeps the built-in default
	Timeouts timeouts.Config

	// View session cookie
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name (default: opsdash-view)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// In-memory views
	ViewIdleTimeout   time.Duration // Views untouched this long are dropped
	ViewSweepInterval time.Duration // How often idle views are swept

	// Mutations allowed per view session per minute; 0 disables throttling
	MutationRateLimit int

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLogActions string
}

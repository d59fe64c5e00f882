// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/opsdash/internal/app/system/auditlog"
	"github.com/dalemusser/opsdash/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for opsdash.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: OPSDASH_MONGO_URI, OPSDASH_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "opsdash", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 50, Desc: "MongoDB max connection pool size (default: 50)"},
	{Name: "mongo_min_pool_size", Default: 2, Desc: "MongoDB min connection pool size (default: 2)"},
	{Name: "db_ping_timeout", Default: "2s", Desc: "MongoDB ping timeout (health checks, connect)"},
	{Name: "db_write_timeout", Default: "3s", Desc: "MongoDB timeout for recording one dashboard event"},
	{Name: "db_schema_timeout", Default: "30s", Desc: "MongoDB timeout for index creation at startup"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "opsdash-view", Desc: "View session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "View session cookie lifetime (e.g., 24h)"},

	// In-memory views
	{Name: "view_idle_timeout", Default: "30m", Desc: "Drop dashboard views untouched for this long"},
	{Name: "view_sweep_interval", Default: "1m", Desc: "How often idle views are swept"},

	{Name: "mutation_rate_limit", Default: 120, Desc: "Dashboard updates allowed per session per minute (0 disables)"},

	// Audit logging settings
	{Name: "audit_log_actions", Default: "all", Desc: "Dashboard action logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, OPSDASH_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "OPSDASH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		Timeouts: timeouts.Config{
			Ping:   appValues.Duration("db_ping_timeout", timeouts.DefaultPing),
			Write:  appValues.Duration("db_write_timeout", timeouts.DefaultWrite),
			Schema: appValues.Duration("db_schema_timeout", timeouts.DefaultSchema),
		},

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		ViewIdleTimeout:   appValues.Duration("view_idle_timeout", 30*time.Minute),
		ViewSweepInterval: appValues.Duration("view_sweep_interval", time.Minute),
		MutationRateLimit: appValues.Int("mutation_rate_limit"),

		AuditLogActions: appValues.String("audit_log_actions"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateAppConfig(appCfg)
}

// validateAppConfig checks the settings that do not depend on WAFFLE.
func validateAppConfig(appCfg AppConfig) error {
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database must be set")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.ViewIdleTimeout <= 0 {
		return fmt.Errorf("view_idle_timeout must be positive, got %s", appCfg.ViewIdleTimeout)
	}
	if appCfg.ViewSweepInterval <= 0 {
		return fmt.Errorf("view_sweep_interval must be positive, got %s", appCfg.ViewSweepInterval)
	}
	if appCfg.MutationRateLimit < 0 {
		return fmt.Errorf("mutation_rate_limit must not be negative, got %d", appCfg.MutationRateLimit)
	}
	switch appCfg.AuditLogActions {
	case auditlog.ModeAll, auditlog.ModeDB, auditlog.ModeLog, auditlog.ModeOff:
	default:
		return fmt.Errorf("audit_log_actions must be one of all, db, log, off; got %q", appCfg.AuditLogActions)
	}
	return nil
}

// Package timeouts holds the deadlines used for MongoDB calls made on behalf
// of the dashboard.
//
//   - Ping: health checks
//   - Write: recording one dashboard event
//   - Schema: index creation at startup
//
// Values start at their defaults and may be replaced once at startup with
// Configure.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultWrite  = 3 * time.Second
	DefaultSchema = 30 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	write  = DefaultWrite
	schema = DefaultSchema
)

// Ping is the deadline for a database ping.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Write is the deadline for a single event insert.
func Write() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return write
}

// Schema is the deadline for creating indexes.
func Schema() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return schema
}

// Config overrides timeouts. Zero fields keep the current value.
type Config struct {
	Ping   time.Duration
	Write  time.Duration
	Schema time.Duration
}

// Configure applies the non-zero fields of cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Write > 0 {
		write = cfg.Write
	}
	if cfg.Schema > 0 {
		schema = cfg.Schema
	}
}

// Reset restores the defaults. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, write, schema = DefaultPing, DefaultWrite, DefaultSchema
}

// WithTimeout is context.WithTimeout whose cancel func logs a warning when
// the deadline was what ended the operation.
func WithTimeout(parent context.Context, d time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", d),
			)
		}
		cancel()
	}
}

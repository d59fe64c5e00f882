// internal/app/system/workers/sweeper.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper is implemented by anything that can drop entries idle since cutoff.
type Sweeper interface {
	Sweep(cutoff time.Time) int
}

// IdleSweeper is a background worker that periodically drops idle entries
// from an in-memory structure (dashboard views, rate limit windows).
type IdleSweeper struct {
	name          string
	target        Sweeper
	log           *zap.Logger
	interval      time.Duration
	idleThreshold time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup
}

// NewIdleSweeper creates a new sweeper.
//
// Parameters:
//   - name: what is being swept, used in log messages (e.g., "views")
//   - target: the structure to sweep
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
//   - idleThreshold: how long an entry must be untouched before it is dropped (e.g., 30 minutes)
func NewIdleSweeper(name string, target Sweeper, logger *zap.Logger, interval, idleThreshold time.Duration) *IdleSweeper {
	return &IdleSweeper{
		name:          name,
		target:        target,
		log:           logger.With(zap.String("sweeper", name)),
		interval:      interval,
		idleThreshold: idleThreshold,
		now:           time.Now,
		stopCh:        make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *IdleSweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("idle sweeper started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_threshold", w.idleThreshold))
}

// Stop signals the worker to stop and waits for it to finish.
// Calling Stop more than once is safe.
func (w *IdleSweeper) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("idle sweeper stopped")
	})
}

func (w *IdleSweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.SweepOnce()
		}
	}
}

// SweepOnce runs a single sweep and returns the number of entries dropped.
func (w *IdleSweeper) SweepOnce() int {
	count := w.target.Sweep(w.now().Add(-w.idleThreshold))
	if count > 0 {
		w.log.Info("dropped idle entries", zap.Int("count", count))
	}
	return count
}

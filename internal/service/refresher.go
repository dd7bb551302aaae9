package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DataStore is the slice of the cache the refresher drives.
type DataStore interface {
	// Refresh re-fetches all collections with the given force flag.
	Refresh(ctx context.Context, force bool)

	// Persist writes the current cache state to the snapshot store.
	Persist(ctx context.Context) error
}

// RefresherConfig holds configuration for the background refresher.
type RefresherConfig struct {
	// Interval is how often a refresh pass runs. Default: 5 minutes.
	Interval time.Duration

	// Timeout bounds a single refresh pass. Default: 1 minute.
	Timeout time.Duration
}

// DefaultRefresherConfig returns the default refresher configuration.
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		Interval: 5 * time.Minute,
		Timeout:  time.Minute,
	}
}

// Refresher periodically refreshes the cache and persists its snapshot.
// Refresh passes are unforced, so collections inside their freshness window
// are skipped; this stays pull-based, there is no push invalidation.
type Refresher struct {
	store     DataStore
	config    RefresherConfig
	ticker    *time.Ticker
	stopCh    chan struct{}
	isRunning bool
	mu        sync.Mutex
	log       zerolog.Logger
}

// NewRefresher creates a background refresher for the given store.
func NewRefresher(store DataStore, config RefresherConfig, logger zerolog.Logger) *Refresher {
	if config.Interval <= 0 {
		config.Interval = 5 * time.Minute
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}

	return &Refresher{
		store:  store,
		config: config,
		log:    logger,
	}
}

// Start begins the refresh loop. Calling Start on a running refresher is a
// no-op; a stopped refresher may be started again.
func (r *Refresher) Start() {
	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return
	}
	r.isRunning = true
	r.ticker = time.NewTicker(r.config.Interval)
	r.stopCh = make(chan struct{})
	ticker, stopCh := r.ticker, r.stopCh
	r.mu.Unlock()

	r.log.Info().
		Dur("interval", r.config.Interval).
		Dur("timeout", r.config.Timeout).
		Msg("refresher started")

	go r.run(ticker, stopCh)
}

// run is the main refresh loop. The ticker and stop channel are passed in so
// a restart cannot race the loop of a previous generation.
func (r *Refresher) run(ticker *time.Ticker, stopCh chan struct{}) {
	for {
		select {
		case <-ticker.C:
			r.runRefresh()
		case <-stopCh:
			r.log.Info().Msg("refresher stopped")
			return
		}
	}
}

// runRefresh performs one refresh pass and persists the result.
func (r *Refresher) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	r.store.Refresh(ctx, false)
	if err := r.store.Persist(ctx); err != nil {
		r.log.Error().Err(err).Msg("failed to persist snapshot after refresh")
	}
}

// Stop stops the refresh loop. Safe to call more than once, and on a
// refresher that was never started.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRunning {
		return
	}
	r.isRunning = false
	r.ticker.Stop()
	close(r.stopCh)
}

// RunNow triggers an immediate refresh pass.
func (r *Refresher) RunNow() {
	r.runRefresh()
}

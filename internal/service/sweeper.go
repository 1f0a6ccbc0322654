package service

import (
	"context"
	"log"
	"sync"
	"time"

	"footcaster-market-api/internal/store"
)

// SweeperConfig holds configuration for the idempotency sweeper.
type SweeperConfig struct {
	// SweepInterval is how often the sweep runs.
	// Default: 10 minutes
	SweepInterval time.Duration
}

// Sweeper periodically purges expired idempotency records. Idempotency
// rows carry their own TTL but no business operation consults them, so
// expiry is the only thing that removes them.
type Sweeper struct {
	store     *store.Store
	config    SweeperConfig
	ticker    *time.Ticker
	stopCh    chan struct{}
	stopOnce  sync.Once
	isRunning bool
	mu        sync.Mutex
}

// NewSweeper creates a new idempotency sweeper.
func NewSweeper(st *store.Store, config SweeperConfig) *Sweeper {
	if config.SweepInterval == 0 {
		config.SweepInterval = 10 * time.Minute
	}

	return &Sweeper{
		store:  st,
		config: config,
		stopCh: make(chan struct{}),
	}
}

// Start begins the sweep loop.
func (s *Sweeper) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.ticker = time.NewTicker(s.config.SweepInterval)
	s.mu.Unlock()

	log.Printf("[Sweeper] Started - Interval: %v", s.config.SweepInterval)

	go s.run()
}

// run is the main sweep loop.
func (s *Sweeper) run() {
	for {
		select {
		case <-s.ticker.C:
			s.runSweep()
		case <-s.stopCh:
			log.Printf("[Sweeper] Stopped")
			return
		}
	}
}

// runSweep performs one sweep pass.
func (s *Sweeper) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.store.DeleteExpiredIdempotency(ctx, time.Now().UnixMilli())
	if err != nil {
		log.Printf("[Sweeper] Error during sweep: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("[Sweeper] Purged %d expired idempotency records", deleted)
	}
}

// Stop stops the sweeper.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.isRunning = false
	})
}

// RunNow triggers an immediate sweep.
func (s *Sweeper) RunNow() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	return s.store.DeleteExpiredIdempotency(ctx, time.Now().UnixMilli())
}

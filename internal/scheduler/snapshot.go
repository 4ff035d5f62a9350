package scheduler

import (
	"context"
	"time"

	"github.com/promptdeck/promptdeck/internal/library"
	"github.com/promptdeck/promptdeck/internal/logger"
	redisstore "github.com/promptdeck/promptdeck/internal/store/redis"
)

// Snapshotter periodically writes the full library snapshot to Redis.
// Per-mutation saves from the handlers are best-effort; the periodic
// snapshot repairs anything they missed.
type Snapshotter struct {
	store    *redisstore.Store
	library  *library.Library
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewSnapshotter creates a new snapshotter
func NewSnapshotter(
	store *redisstore.Store,
	lib *library.Library,
	log logger.Logger,
	interval time.Duration,
) *Snapshotter {
	return &Snapshotter{
		store:    store,
		library:  lib,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic snapshot process
func (s *Snapshotter) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.Save(ctx); err != nil {
					s.logger.Error("library snapshot failed",
						logger.Error(err))
				}
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the snapshotter
func (s *Snapshotter) Stop() {
	close(s.stopCh)
}

// Save writes the current library snapshot to Redis in one pipeline.
// Also called once on shutdown for a final flush.
func (s *Snapshotter) Save(ctx context.Context) error {
	records := s.library.Snapshot()
	if len(records) == 0 {
		s.logger.Debug("library empty, nothing to snapshot")
		return nil
	}

	if err := s.store.SavePromptsMany(ctx, records); err != nil {
		return err
	}

	s.logger.Info("library snapshot saved to redis",
		logger.Int("count", len(records)))

	return nil
}

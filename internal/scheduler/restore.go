package scheduler

import (
	"context"

	"github.com/promptdeck/promptdeck/internal/library"
	"github.com/promptdeck/promptdeck/internal/logger"
	redisstore "github.com/promptdeck/promptdeck/internal/store/redis"
)

// Restorer rebuilds the in-memory library from Redis at startup.
type Restorer struct {
	store   *redisstore.Store
	library *library.Library
	logger  logger.Logger
}

// NewRestorer creates a new restorer
func NewRestorer(
	store *redisstore.Store,
	lib *library.Library,
	log logger.Logger,
) *Restorer {
	return &Restorer{
		store:   store,
		library: lib,
		logger:  log,
	}
}

// Restore loads prompt records from Redis and appends them to the library
// in creation order. Records that fail validation (or collide with an id
// already present) are skipped with a warning rather than aborting startup.
func (r *Restorer) Restore(ctx context.Context) error {
	r.logger.Info("restoring prompt library from redis")

	records, err := r.store.GetAllPrompts(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		r.logger.Info("no prompt records found in redis")
		return nil
	}

	restored := 0
	for _, record := range records {
		if err := r.library.Add(record); err != nil {
			r.logger.Warn("skipping prompt record from redis",
				logger.String("id", record.ID),
				logger.Error(err))
			continue
		}
		restored++
	}

	r.logger.Info("restored prompt library from redis",
		logger.Int("count", restored))

	return nil
}

// Package store holds the per-session schedule datasets. A session has at
// most one dataset; uploading a new file replaces whatever the session held
// before.
package store

import (
	"context"
	"errors"
	"log"

	"github.com/setlab/labsched/config"
	"github.com/setlab/labsched/model"
)

// ErrNoDataset is returned when a session has no uploaded dataset.
var ErrNoDataset = errors.New("no dataset uploaded for session")

// Storage is the session dataset store.
type Storage interface {
	// Replace installs the dataset for a session, discarding any previous one.
	Replace(ctx context.Context, sessionID string, dataset *model.Dataset) error
	// Snapshot returns the session's current dataset, or ErrNoDataset.
	Snapshot(ctx context.Context, sessionID string) (*model.Dataset, error)
	// Clear removes the session's dataset. Clearing an empty session is a no-op.
	Clear(ctx context.Context, sessionID string) error
	// Sessions lists session IDs that currently hold a dataset.
	Sessions(ctx context.Context) ([]string, error)
	Close() error
}

// Start picks the store backend from the environment: Redis when REDIS_URL is
// set and reachable, the in-process store otherwise.
func Start() (Storage, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	if getEnv.REDIS_URL != "" {
		redisStore, err := StartRedis(getEnv)
		if err != nil {
			log.Println("Unable to connect to Redis, falling back to in-memory store:", err)
		} else {
			log.Println("Successfully connected to Redis dataset store.")
			return redisStore, nil
		}
	}

	log.Println("Using in-memory dataset store.")
	return NewMemoryStore(), nil
}

package services

import (
	"context"
	"fmt"

	"fintrack/internal/backend"
	"fintrack/internal/cache"
	"fintrack/internal/core"
)

const snapshotKey = "snapshot"

// SnapshotService fetches and caches the backend data set. All
// analytics read through it so one refresh serves every view.
type SnapshotService struct {
	backend backend.Backend
	cache   *cache.LRUCache[core.Snapshot]
}

func NewSnapshotService(b backend.Backend, c *cache.LRUCache[core.Snapshot]) *SnapshotService {
	return &SnapshotService{backend: b, cache: c}
}

// Snapshot returns the cached data set, fetching from the backend on
// a cold or expired cache.
func (s *SnapshotService) Snapshot(ctx context.Context) (core.Snapshot, error) {
	if snap, ok := s.cache.Get(snapshotKey); ok {
		return snap, nil
	}

	snap, err := backend.Snapshot(ctx, s.backend)
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	s.cache.Set(snapshotKey, snap)
	return snap, nil
}

// Invalidate drops the cached snapshot so the next read refetches.
func (s *SnapshotService) Invalidate() {
	s.cache.Delete(snapshotKey)
}

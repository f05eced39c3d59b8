// Package cache provides a small generic LRU cache with TTL, used to
// hold backend snapshots and derived views between refreshes.
package cache

import (
	"context"
	"time"
)

// Cache is the read/write surface consumers depend on.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Janitor periodically sweeps expired entries from registered caches.
type Janitor struct {
	caches []Cleaner
}

// NewJanitor creates an empty janitor.
func NewJanitor() *Janitor {
	return &Janitor{}
}

// Register adds a cache to the sweep set. Not safe to call after Run.
func (j *Janitor) Register(c Cleaner) {
	j.caches = append(j.caches, c)
}

// Run sweeps every interval until ctx is done.
func (j *Janitor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, c := range j.caches {
				c.CleanExpired()
			}
		case <-ctx.Done():
			return
		}
	}
}

// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/NVIDIA/craftcost/pkg/catalog"
	"github.com/NVIDIA/craftcost/pkg/defaults"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// LoadFunc builds a fresh snapshot from the catalog source.
type LoadFunc func(ctx context.Context) (*catalog.Snapshot, error)

// Option configures a SnapshotCache.
type Option func(*SnapshotCache)

// WithTTL sets the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *SnapshotCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKey sets the store key.
func WithKey(key string) Option {
	return func(c *SnapshotCache) {
		if key != "" {
			c.key = key
		}
	}
}

// withClock overrides time.Now in tests.
func withClock(now func() time.Time) Option {
	return func(c *SnapshotCache) {
		c.now = now
	}
}

// SnapshotCache reuses a built snapshot for a bounded time. It keeps the
// snapshot in process and a serialized copy in an external Store. It is safe
// for concurrent use.
type SnapshotCache struct {
	store Store
	local *gocache.Cache
	ttl   time.Duration
	key   string
	now   func() time.Time
	group singleflight.Group

	// gen counts invalidations; a load started under an older generation
	// does not populate the cache.
	mu  sync.Mutex
	gen uint64
}

// New returns a cache over store. A nil store keeps only the in-process
// layer.
func New(store Store, opts ...Option) *SnapshotCache {
	c := &SnapshotCache{
		store: store,
		ttl:   defaults.SnapshotCacheTTL,
		key:   defaults.SnapshotCacheKey,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.local = gocache.New(c.ttl, defaults.SnapshotCacheCleanupInterval)
	return c
}

// TTL returns the freshness window.
func (c *SnapshotCache) TTL() time.Duration {
	return c.ttl
}

// GetOrBuild returns a fresh cached snapshot or builds one with load.
// Concurrent misses share a single load. Errors from load are returned
// unchanged; store failures are logged and treated as misses.
func (c *SnapshotCache) GetOrBuild(ctx context.Context, load LoadFunc) (*catalog.Snapshot, error) {
	if snap, ok := c.getLocal(); ok {
		cacheHits.WithLabelValues(layerLocal).Inc()
		return snap, nil
	}

	v, err, _ := c.group.Do(c.key, func() (any, error) {
		if snap, ok := c.getLocal(); ok {
			cacheHits.WithLabelValues(layerLocal).Inc()
			return snap, nil
		}
		if snap, ok := c.getExternal(ctx); ok {
			cacheHits.WithLabelValues(layerExternal).Inc()
			return snap, nil
		}

		cacheMisses.Inc()
		gen := c.generation()
		start := c.now()
		snap, err := load(ctx)
		catalogLoadDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}
		c.put(ctx, gen, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*catalog.Snapshot), nil
}

// Invalidate drops the snapshot from both layers so the next GetOrBuild
// loads from source. A load already in flight still answers its callers but
// is not cached, and later callers do not join it.
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	c.local.Delete(c.key)
	c.mu.Unlock()
	c.group.Forget(c.key)

	if c.store == nil {
		return nil
	}
	if err := c.store.Delete(ctx, c.key); err != nil {
		return err
	}
	slog.Debug("snapshot cache invalidated", "key", c.key)
	return nil
}

func (c *SnapshotCache) getLocal() (*catalog.Snapshot, bool) {
	v, ok := c.local.Get(c.key)
	if !ok {
		return nil, false
	}
	snap, ok := v.(*catalog.Snapshot)
	return snap, ok
}

// getExternal reads and decodes the stored copy. The remaining freshness is
// measured from the snapshot build time so a reload never extends it.
func (c *SnapshotCache) getExternal(ctx context.Context) (*catalog.Snapshot, bool) {
	if c.store == nil {
		return nil, false
	}
	data, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		slog.Warn("snapshot store read failed, rebuilding", "key", c.key, "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	snap, err := catalog.Decode(data)
	if err != nil {
		cacheDecodeFailures.Inc()
		slog.Warn("cached snapshot could not be decoded, rebuilding", "key", c.key, "error", err)
		return nil, false
	}

	remaining := c.ttl - c.now().Sub(snap.BuiltAt())
	if remaining <= 0 {
		return nil, false
	}
	c.local.Set(c.key, snap, remaining)
	return snap, true
}

func (c *SnapshotCache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// put stores snap unless the cache was invalidated after generation gen
// started loading.
func (c *SnapshotCache) put(ctx context.Context, gen uint64, snap *catalog.Snapshot) {
	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		slog.Debug("discarding snapshot loaded before invalidation", "key", c.key)
		return
	}
	c.local.Set(c.key, snap, c.ttl)
	c.mu.Unlock()
	if c.store == nil {
		return
	}
	data, err := catalog.Encode(snap)
	if err != nil {
		slog.Warn("failed to encode snapshot for store", "error", err)
		return
	}
	if err := c.store.Set(ctx, c.key, data, c.ttl); err != nil {
		slog.Warn("snapshot store write failed", "key", c.key, "error", err)
	}
}

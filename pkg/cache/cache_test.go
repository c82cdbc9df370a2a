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
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NVIDIA/craftcost/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSnapshot(t *testing.T, buy float64) *catalog.Snapshot {
	t.Helper()
	snap, err := catalog.Build(
		catalog.Rows{{"name"}},
		catalog.Rows{{"out"}},
		catalog.Rows{{"name", "buy"}, {"Ore", buy}},
	)
	require.NoError(t, err)
	return snap
}

// countingLoader returns snapshots with an increasing price per call.
type countingLoader struct {
	t     *testing.T
	calls atomic.Int32
	err   error
}

func (l *countingLoader) load(context.Context) (*catalog.Snapshot, error) {
	n := l.calls.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	return buildSnapshot(l.t, float64(n)), nil
}

func TestGetOrBuild_LocalHit(t *testing.T) {
	l := &countingLoader{t: t}
	c := New(NewMemoryStore())
	ctx := context.Background()

	first, err := c.GetOrBuild(ctx, l.load)
	require.NoError(t, err)
	second, err := c.GetOrBuild(ctx, l.load)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, l.calls.Load())
}

func TestGetOrBuild_ExternalHit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	l := &countingLoader{t: t}
	built, err := New(store).GetOrBuild(ctx, l.load)
	require.NoError(t, err)

	// a second process sharing the store
	other := &countingLoader{t: t}
	got, err := New(store).GetOrBuild(ctx, other.load)
	require.NoError(t, err)

	assert.EqualValues(t, 0, other.calls.Load())
	assert.Equal(t, built.Fingerprint(), got.Fingerprint())
	assert.Equal(t, 1.0, got.BuyPrice("ore"))
}

func TestGetOrBuild_StaleExternalCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := New(store).GetOrBuild(ctx, (&countingLoader{t: t}).load)
	require.NoError(t, err)

	later := func() time.Time { return time.Now().Add(10 * time.Minute) }
	l := &countingLoader{t: t}
	_, err = New(store, withClock(later)).GetOrBuild(ctx, l.load)
	require.NoError(t, err)
	assert.EqualValues(t, 1, l.calls.Load(), "copy older than the window is rebuilt")
}

func TestGetOrBuild_DecodeFailureRebuilds(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "snap", []byte("{corrupt"), time.Minute))

	l := &countingLoader{t: t}
	snap, err := New(store, WithKey("snap")).GetOrBuild(ctx, l.load)
	require.NoError(t, err)
	assert.EqualValues(t, 1, l.calls.Load())

	data, found, err := store.Get(ctx, "snap")
	require.NoError(t, err)
	require.True(t, found)
	decoded, err := catalog.Decode(data)
	require.NoError(t, err, "store refreshed with a valid copy")
	assert.Equal(t, snap.Fingerprint(), decoded.Fingerprint())
}

func TestGetOrBuild_LoadError(t *testing.T) {
	boom := errors.New("sheet missing")
	l := &countingLoader{t: t, err: boom}
	c := New(NewMemoryStore())

	_, err := c.GetOrBuild(context.Background(), l.load)
	assert.ErrorIs(t, err, boom)

	_, err = c.GetOrBuild(context.Background(), l.load)
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 2, l.calls.Load(), "failures are not cached")
}

func TestInvalidate(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)
	ctx := context.Background()
	l := &countingLoader{t: t}

	_, err := c.GetOrBuild(ctx, l.load)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))

	_, found, _ := store.Get(ctx, c.key)
	assert.False(t, found)

	snap, err := c.GetOrBuild(ctx, l.load)
	require.NoError(t, err)
	assert.EqualValues(t, 2, l.calls.Load())
	assert.Equal(t, 2.0, snap.BuyPrice("ore"), "fresh build observes new data")
}

func TestInvalidate_DuringLoad(t *testing.T) {
	store := NewMemoryStore()
	c := New(store)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	slow := func(context.Context) (*catalog.Snapshot, error) {
		close(started)
		<-release
		return buildSnapshot(t, 1), nil
	}

	done := make(chan *catalog.Snapshot)
	go func() {
		snap, err := c.GetOrBuild(ctx, slow)
		assert.NoError(t, err)
		done <- snap
	}()

	<-started
	require.NoError(t, c.Invalidate(ctx))

	// a caller after the invalidation starts its own load
	var calls atomic.Int32
	reload := func(context.Context) (*catalog.Snapshot, error) {
		calls.Add(1)
		return buildSnapshot(t, 9), nil
	}
	fresh, err := c.GetOrBuild(ctx, reload)
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 9.0, fresh.BuyPrice("ore"))

	close(release)
	stale := <-done
	assert.Equal(t, 1.0, stale.BuyPrice("ore"), "in-flight callers still get their result")

	// the stale load must not replace the fresh snapshot
	got, err := c.GetOrBuild(ctx, reload)
	require.NoError(t, err)
	assert.Same(t, fresh, got)
	assert.EqualValues(t, 1, calls.Load())
}

func TestNilStore(t *testing.T) {
	c := New(nil, WithTTL(time.Minute))
	l := &countingLoader{t: t}
	ctx := context.Background()

	_, err := c.GetOrBuild(ctx, l.load)
	require.NoError(t, err)
	_, err = c.GetOrBuild(ctx, l.load)
	require.NoError(t, err)
	assert.EqualValues(t, 1, l.calls.Load())
	assert.Equal(t, time.Minute, c.TTL())
	assert.NoError(t, c.Invalidate(ctx))
}

type brokenStore struct{}

var errStore = errors.New("store down")

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errStore }
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errStore
}
func (brokenStore) Delete(context.Context, string) error { return errStore }

func TestBrokenStore(t *testing.T) {
	c := New(brokenStore{})
	l := &countingLoader{t: t}

	_, err := c.GetOrBuild(context.Background(), l.load)
	require.NoError(t, err, "store failures never fail a build")
	assert.ErrorIs(t, c.Invalidate(context.Background()), errStore)
}

func TestGetOrBuild_ConcurrentMissesShareLoad(t *testing.T) {
	c := New(NewMemoryStore())
	release := make(chan struct{})
	var calls atomic.Int32
	load := func(context.Context) (*catalog.Snapshot, error) {
		calls.Add(1)
		<-release
		return buildSnapshot(t, 1), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetOrBuild(context.Background(), load)
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	v := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", v, time.Minute))
	v[0] = 'x'
	got, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc", string(got), "value is copied on set")

	require.NoError(t, s.Set(ctx, "short", v, time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, found, _ = s.Get(ctx, "short")
	assert.False(t, found)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := NewRedisStore(ctx, RedisOptions{Addr: addr, Prefix: "craftcost-test:"})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	got, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", string(got))

	require.NoError(t, s.Delete(ctx, "k"))
	_, found, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	l := &countingLoader{t: t}
	_, err = New(s).GetOrBuild(ctx, l.load)
	require.NoError(t, err)
	_, err = New(s).GetOrBuild(ctx, l.load)
	require.NoError(t, err)
	assert.EqualValues(t, 1, l.calls.Load())
	require.NoError(t, New(s).Invalidate(ctx))
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	_, err := NewRedisStore(context.Background(), RedisOptions{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestOpenStore_MemoryWithoutAddr(t *testing.T) {
	s, err := OpenStore(context.Background(), RedisOptions{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
}

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

package costing

import (
	"context"
	"log/slog"
	"time"

	"github.com/NVIDIA/craftcost/pkg/batch"
	"github.com/NVIDIA/craftcost/pkg/cache"
	"github.com/NVIDIA/craftcost/pkg/catalog"
	"github.com/NVIDIA/craftcost/pkg/defaults"
	"github.com/NVIDIA/craftcost/pkg/errors"
	"github.com/NVIDIA/craftcost/pkg/header"
	"github.com/NVIDIA/craftcost/pkg/item"
	"github.com/NVIDIA/craftcost/pkg/resolver"
)

// Service answers cost queries against the cached snapshot of one catalog
// source. It is safe for concurrent use; every query runs on its own
// Resolver.
type Service struct {
	source      catalog.Source
	cache       *cache.SnapshotCache
	loadTimeout time.Duration
	version     string
}

// Option configures a Service.
type Option func(*Service)

// WithCache sets the snapshot cache. Without it an in-process cache with
// the default TTL is used.
func WithCache(c *cache.SnapshotCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLoadTimeout bounds a catalog load on a cache miss.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// WithVersion records the producing version in report headers.
func WithVersion(v string) Option {
	return func(s *Service) {
		s.version = v
	}
}

// New returns a Service reading from src.
func New(src catalog.Source, opts ...Option) *Service {
	s := &Service{
		source:      src,
		loadTimeout: defaults.CatalogLoadTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = cache.New(cache.NewMemoryStore())
	}
	return s
}

// Snapshot returns the cached snapshot, loading the catalog on a miss.
func (s *Service) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	return s.cache.GetOrBuild(ctx, s.load)
}

func (s *Service) load(ctx context.Context) (*catalog.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	start := time.Now()
	snap, err := catalog.Load(ctx, s.source)
	if err != nil {
		return nil, err
	}
	st := snap.Stats()
	slog.Info("catalog loaded",
		"items", st.Items,
		"recipes", st.Recipes,
		"prices", st.Prices,
		"fingerprint", snap.Fingerprint(),
		"duration", time.Since(start).String())
	return snap, nil
}

// Resolver returns a fresh Resolver bound to the current snapshot.
func (s *Service) Resolver(ctx context.Context) (*resolver.Resolver, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return resolver.New(snap), nil
}

// Evaluate maps a scalar, list or list of single-cell rows of names through
// the cost of kind, preserving the input shape.
func (s *Service) Evaluate(ctx context.Context, kind batch.Kind, input any) (any, error) {
	r, err := s.Resolver(ctx)
	if err != nil {
		return nil, err
	}
	return batch.Evaluate(input, batch.For(r, kind))
}

// Costs evaluates names and reports each with its normalized key.
func (s *Service) Costs(ctx context.Context, kind batch.Kind, names []string) (*CostReport, error) {
	r, err := s.Resolver(ctx)
	if err != nil {
		return nil, err
	}
	fn := batch.For(r, kind)

	rep := &CostReport{Evaluation: kind, Entries: make([]Entry, 0, len(names))}
	rep.Init(header.KindCostReport, s.version)
	rep.Metadata["fingerprint"] = r.Snapshot().Fingerprint()
	for _, n := range names {
		key := item.Normalize(n)
		rep.Entries = append(rep.Entries, Entry{Name: n, Item: key, Result: fn(key)})
	}
	return rep, nil
}

// Explain reports how the cost of name was derived.
func (s *Service) Explain(ctx context.Context, kind batch.Kind, name string) (*resolver.Breakdown, error) {
	key, err := requireName(name)
	if err != nil {
		return nil, err
	}
	r, err := s.Resolver(ctx)
	if err != nil {
		return nil, err
	}
	return r.Explain(key, kind == batch.KindStrict), nil
}

// Profit compares sell prices with strict craft costs for names.
func (s *Service) Profit(ctx context.Context, names []string) (*resolver.ProfitSheet, error) {
	keys := make([]item.Key, 0, len(names))
	for _, n := range names {
		key, err := requireName(n)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	r, err := s.Resolver(ctx)
	if err != nil {
		return nil, err
	}
	return r.ProfitSheet(keys), nil
}

// Items lists every item the current snapshot knows.
func (s *Service) Items(ctx context.Context) ([]item.Key, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Items(), nil
}

// Invalidate drops the cached snapshot so the next query reloads the catalog.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx)
}

func requireName(name string) (item.Key, error) {
	key := item.Normalize(name)
	if key.IsEmpty() {
		return "", errors.New(errors.ErrCodeInvalidRequest, "item name is required")
	}
	return key, nil
}

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
	stderrors "errors"
	"fmt"
	"io"

	"github.com/NVIDIA/craftcost/pkg/cache"
	"github.com/NVIDIA/craftcost/pkg/catalog"
	"github.com/NVIDIA/craftcost/pkg/config"
)

// Runtime is a Service opened from configuration, together with the
// catalog source and snapshot store it holds.
type Runtime struct {
	*Service

	Source catalog.ReadWriter
	Store  cache.Store

	closers []io.Closer
}

// Open resolves cfg.Catalog and the configured snapshot store and returns
// a Runtime serving them. Close releases both.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Runtime, error) {
	src, srcCloser, err := catalog.OpenSource(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	store, err := cache.OpenStore(ctx, cache.RedisOptions{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   cfg.Cache.Redis.Prefix,
	})
	if err != nil {
		_ = srcCloser.Close()
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	rt := &Runtime{Source: src, Store: store, closers: []io.Closer{srcCloser}}
	if c, ok := store.(io.Closer); ok {
		rt.closers = append(rt.closers, c)
	}

	sc := cache.New(store, cache.WithTTL(cfg.Cache.TTL), cache.WithKey(cfg.Cache.Key))
	rt.Service = New(src, append([]Option{WithCache(sc)}, opts...)...)
	return rt, nil
}

// Close releases the catalog source and the snapshot store.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

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

// Package cache keeps a recently built catalog snapshot around so repeated
// evaluations do not reread the catalog source.
//
// SnapshotCache has two layers. The in-process layer holds the decoded
// snapshot in a go-cache map. The external layer is any Store (RedisStore for
// sharing between processes, MemoryStore otherwise) holding the serialized
// snapshot. Both expire after the same window, five minutes by default,
// measured from when the snapshot was built.
//
//	c := cache.New(store, cache.WithTTL(cfg.Cache.TTL))
//	snap, err := c.GetOrBuild(ctx, func(ctx context.Context) (*catalog.Snapshot, error) {
//		return catalog.Load(ctx, src)
//	})
//
// A stored copy that fails to decode is discarded and rebuilt. Invalidate
// clears both layers.
package cache

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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	layerLocal    = "local"
	layerExternal = "external"
)

var (
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "craftcost_snapshot_cache_hits_total",
			Help: "Snapshot cache hits by layer",
		},
		[]string{"layer"},
	)

	cacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "craftcost_snapshot_cache_misses_total",
			Help: "Snapshot cache misses that triggered a catalog load",
		},
	)

	cacheDecodeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "craftcost_snapshot_cache_decode_failures_total",
			Help: "Externally cached snapshots that could not be decoded",
		},
	)

	catalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "craftcost_catalog_load_duration_seconds",
			Help:    "Time spent loading and building a catalog snapshot",
			Buckets: prometheus.DefBuckets,
		},
	)
)

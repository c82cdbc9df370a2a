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

package defaults

import "time"

// Snapshot cache settings.
const (
	// SnapshotCacheTTL is the freshness window for a cached catalog snapshot,
	// both in process and in the external store.
	SnapshotCacheTTL = 5 * time.Minute

	// SnapshotCacheCleanupInterval is how often expired in-process entries are purged.
	SnapshotCacheCleanupInterval = 10 * time.Minute

	// SnapshotCacheKey is the store key under which the serialized snapshot lives.
	SnapshotCacheKey = "craftcost:snapshot"

	// CatalogLoadTimeout bounds a full read of the three catalog tables.
	CatalogLoadTimeout = 30 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// CostHandlerTimeout is the timeout for single and batch cost requests.
	CostHandlerTimeout = 30 * time.Second

	// MaxBatchNames caps the number of names in one batch request.
	MaxBatchNames = 5000
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Market data client settings.
const (
	// MarketChunkSize is the number of item ids requested per prices call.
	MarketChunkSize = 150

	// MarketRequestInterval is the minimum spacing between prices calls.
	MarketRequestInterval = 300 * time.Millisecond

	// MarketPricesURL is the commerce prices endpoint.
	MarketPricesURL = "https://api.guildwars2.com/v2/commerce/prices"

	// MarketNamesURL is the bulk name index used to fill missing ids.
	MarketNamesURL = "http://api.gw2tp.com/1/bulk/items-names.json"
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// Redis client settings.
const (
	// RedisDialTimeout bounds connecting to the external snapshot store.
	RedisDialTimeout = 5 * time.Second

	// RedisOperationTimeout bounds a single get/set/delete.
	RedisOperationTimeout = 3 * time.Second
)

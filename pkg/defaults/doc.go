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

// Package defaults provides centralized configuration constants for craftcost.
//
// # Categories
//
//   - Snapshot cache: freshness window, store key, catalog load budget
//   - Handler timeouts: for HTTP cost requests
//   - Server timeouts: for HTTP server configuration
//   - Market client: chunk size, request pacing, endpoints
//   - HTTP client timeouts: for outbound requests
//   - Redis: dial and per-operation timeouts
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CatalogLoadTimeout)
//	defer cancel()
//
// Values here are defaults only; pkg/config lets operators override the
// cache TTL, market endpoints and pacing.
package defaults

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

// Package api wires the cost service into the HTTP server run by craftcostd.
//
// # Endpoints
//
//	GET  /v1/cost?name=<name>&kind=effective|strict
//	POST /v1/costs             {"kind": "...", "names": <name | [names] | [[name], ...]>}
//	GET  /v1/explain?name=<name>&kind=effective|strict
//	GET  /v1/profit?name=<name>[&name=<name>...]
//	POST /v1/cache/invalidate
//
// The server package adds /health, /ready and /metrics.
//
// A single cost is returned as a bare result:
//
//	{"status": "priced", "cost": 5.5, "source": "craft"}
//	{"status": "unpriceable"}
//	{"status": "not_applicable"}
//
// A batch response mirrors the shape of the request names. POST bodies may
// be JSON or, with a YAML Content-Type, YAML.
//
// Errors use the server ErrorResponse envelope. A missing catalog table is
// CONFIGURATION (500, not retryable); an unreachable source is
// SERVICE_UNAVAILABLE (503, retryable).
//
// # Configuration
//
// Serve takes a config.Config; see package config for the file, .env and
// CRAFTCOST_* environment variables that populate it. PORT and
// SHUTDOWN_TIMEOUT_SECONDS are honoured as well.
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/craftcost/pkg/version.version=1.0.0'"
package api

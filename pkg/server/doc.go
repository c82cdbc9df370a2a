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

// Package server provides the HTTP server shared by craftcost services.
//
// Application routes are registered through WithHandler and wrapped with a
// fixed middleware chain:
//
//   - Prometheus RED metrics labeled by route pattern
//   - API version negotiation via the Accept header
//     (application/vnd.nvidia.craftcost.v1+json), echoed as X-API-Version
//   - X-Request-Id propagation, generated when absent or not a UUID
//   - Panic recovery into a 500 ErrorResponse
//   - Token bucket rate limiting (golang.org/x/time/rate) with
//     X-RateLimit-* headers and 429 plus Retry-After when exhausted
//   - Request logging through log/slog
//
// System endpoints bypass the chain:
//
//	GET /health   liveness, always 200
//	GET /ready    200 once listening and every ReadinessCheck passes, else 503
//	GET /metrics  Prometheus exposition
//
// Errors are written as:
//
//	{
//	  "code": "CONFIGURATION",
//	  "message": "required catalog table is missing",
//	  "details": {"table": "Prices"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2026-01-02T15:04:05Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr derives the status and retryable flag from the
// pkg/errors code of the error.
//
// Usage:
//
//	s := server.New(
//	    server.WithName("craftcostd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/cost": h.HandleCost,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// PORT and SHUTDOWN_TIMEOUT_SECONDS override the listening port and the
// graceful shutdown window.
package server

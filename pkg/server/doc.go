// Copyright (c) 2025, The Tally Authors.  All rights reserved.
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

// Package server provides the reusable HTTP server underneath the tally API
// daemon. Application packages contribute route handlers; this package owns
// the middleware chain, system endpoints, error envelope, and lifecycle.
//
// # Architecture
//
// The server is stateless and built from these pieces:
//
//   - Token-bucket rate limiting (golang.org/x/time/rate)
//   - Request ID tracking via the X-Request-Id header (github.com/google/uuid)
//   - API version negotiation via vendor Accept headers
//   - Panic recovery with structured 500 responses
//   - Request body size caps for run-log uploads
//   - Prometheus RED metrics on every application route
//   - Health and readiness probes plus graceful shutdown
//   - systemd readiness notification (sd_notify) when run as a unit
//
// # Usage
//
// Application routes are injected as a pattern-to-handler map:
//
//	routes := map[string]http.HandlerFunc{
//	    "/v1/summary": summaryHandler.Handle,
//	}
//
//	s := server.New(
//	    server.WithName("tallyd"),
//	    server.WithVersion(version),
//	    server.WithHandler(routes),
//	)
//
//	if err := s.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests within
// the configured shutdown timeout. Use Start directly when the caller owns
// signal handling.
//
// Custom configuration:
//
//	cfg := server.NewConfig()
//	cfg.Port = 9090
//	cfg.RateLimit = 200
//	cfg.RateLimitBurst = 400
//
//	s := server.New(server.WithConfig(cfg))
//
// # System Endpoints
//
// These are mounted outside the middleware chain:
//
//	GET /health  - liveness probe; always 200 with {"status": "healthy", ...}
//	GET /ready   - readiness probe; 200 when serving, 503 while starting or draining
//	GET /metrics - Prometheus metrics (tally_http_* plus collectors registered
//	               by other packages)
//
// The root route serves a JSON index of mounted routes unless the application
// registers its own "/" handler.
//
// # Observability
//
// Request ID tracking:
//
//	Requests may carry an X-Request-Id header (UUID format). Missing or
//	malformed ids are replaced with generated ones. The id is echoed in the
//	response header and included in every error envelope.
//
// Rate limiting:
//
//	Response headers indicate limiter state:
//	  X-RateLimit-Limit: requests allowed per second
//	  X-RateLimit-Remaining: tokens left in the bucket
//	  X-RateLimit-Reset: Unix timestamp when the bucket refills
//
//	Rejected requests get 429 with a Retry-After header.
//
// Version negotiation:
//
//	Clients may pin an API version via the Accept header:
//	  Accept: application/vnd.tally.v1+json
//	The negotiated version is echoed in X-API-Version and defaults to v1.
//
// # Error Handling
//
// All errors share one JSON envelope:
//
//	{
//	  "code": "MALFORMED_RECORD",
//	  "message": "decoding case definition",
//	  "details": {"seq": 12},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-08-25T12:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr maps structured error codes to HTTP statuses: run-log
// parse codes (MALFORMED_RECORD, MALFORMED_HEADER, MISSING_CASE,
// UNKNOWN_RECORD) and INVALID_REQUEST become 400, NOT_FOUND 404,
// METHOD_NOT_ALLOWED 405, RATE_LIMIT_EXCEEDED 429, SERVICE_UNAVAILABLE 503,
// TIMEOUT 504, and everything else 500. The retryable flag follows the same
// classification.
//
// # Configuration
//
// Environment variables read by parseConfig:
//
//	PORT                     - listener port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS - graceful shutdown window, e.g. to match the
//	                           orchestrator's eviction grace period
//	REPORTS_DIR              - run-log directory served by the API process
//	                           (default "reports")
//
// LOG_LEVEL is consumed by pkg/logging when the daemon installs its default
// logger.
package server

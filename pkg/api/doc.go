// Package api provides the HTTP API layer for the tally report service.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// configuring it with application-specific routes and handlers. It exposes
// run-log summarization, stored report browsing, the compliance matrix, and
// badge generation via REST API.
//
// # Usage
//
// To start the API server:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/harnesslab/tally/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Loading the report store and watching its directory for new run logs
//   - Setting up route handlers (e.g., /v1/summary)
//   - Delegating server lifecycle management to pkg/server
//
// The pkg/server package handles:
//   - HTTP server setup and graceful shutdown
//   - Middleware (rate limiting, logging, metrics, panic recovery)
//   - Health and readiness endpoints
//   - Prometheus metrics
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - POST /v1/summary            - Summarize an uploaded run log
//   - GET  /v1/reports            - List stored runs
//   - GET  /v1/reports/{id}       - Fetch one stored run's full report
//   - GET  /v1/compliance         - Project stored runs into the compliance matrix
//   - GET  /v1/badges/{name}      - Badge document for an implementation
//   - GET  /v1/badges/{name}?run= - Single-run shields.io endpoint payload
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Request Body (POST /v1/summary)
//
// POST requests accept a line-delimited JSON run log in the request body,
// exactly as written by the harness.
//
// Example curl command:
//
//	curl -X POST http://localhost:8080/v1/summary \
//	  --data-binary @draft2020.jsonl
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - REPORTS_DIR: Directory of stored run logs (default: reports)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - SHUTDOWN_TIMEOUT_SECONDS: Graceful shutdown window
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/harnesslab/tally/pkg/api.version=1.0.0'"
package api

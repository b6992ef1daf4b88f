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

package defaults

import "time"

// Parse timeouts for run-log processing operations.
const (
	// ParseTimeout is the default timeout for parsing a single run log.
	// Parsers should respect parent context deadlines when shorter.
	ParseTimeout = 30 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// SummaryHandlerTimeout is the timeout for summary generation requests.
	// These parse an uploaded run log end to end.
	SummaryHandlerTimeout = 30 * time.Second

	// SummaryParseTimeout is the internal timeout for parsing within the
	// summary handler. Should be less than SummaryHandlerTimeout to allow
	// error handling.
	SummaryParseTimeout = 25 * time.Second

	// ReportHandlerTimeout is the timeout for serving stored reports.
	ReportHandlerTimeout = 10 * time.Second

	// BadgeCacheTTL is the default cache duration for badge responses.
	BadgeCacheTTL = 5 * time.Minute
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

// Store timeouts for report store operations.
const (
	// StoreLoadTimeout is the timeout for loading a report directory.
	// Longer than a single parse since directories hold many run logs.
	StoreLoadTimeout = 2 * time.Minute

	// StoreWatchDebounce is the quiet period after a filesystem event
	// before the store reloads, coalescing bursts of writes.
	StoreWatchDebounce = 500 * time.Millisecond
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

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLIParseTimeout is the default timeout for parse-backed commands.
	CLIParseTimeout = 2 * time.Minute
)

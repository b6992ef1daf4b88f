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

// Package serializer provides encoding and decoding of report documents in multiple formats.
//
// # Overview
//
// The serializer package handles conversion between report data structures and
// various output formats including JSON, YAML, and human-readable tables. It supports
// both encoding (writing documents) and decoding (reading documents) operations with
// automatic format detection.
//
// # Supported Formats
//
// JSON:
//   - Machine-parseable, compact representation
//   - Suitable for API responses and programmatic consumption
//   - Standard encoding/json package
//
// YAML:
//   - Human-readable with preserved structure
//   - Suitable for checked-in summaries and version control
//   - gopkg.in/yaml.v3 package
//
// Table:
//   - Flattened key/value text representation
//   - Suitable for terminal/console viewing
//   - Write-only (no deserialization support)
//
// # Core Types
//
// Format: Enum representing output formats (JSON, YAML, Table)
//
// Serializer: Interface for encoding documents to output
//
//	type Serializer interface {
//	    Serialize(ctx context.Context, document any) error
//	}
//
// Reader: Handles decoding documents from input sources
//
//	type Reader struct {
//	    format Format
//	    input  io.Reader
//	    closer io.Closer
//	}
//
// # Usage - Encoding
//
// Write to stdout (YAML):
//
//	writer := serializer.NewStdoutWriter(serializer.FormatYAML)
//	if err := writer.Serialize(ctx, summary); err != nil {
//	    log.Fatal(err)
//	}
//
// Write to a file, falling back to stdout when the path is empty:
//
//	writer := serializer.NewFileWriterOrStdout(serializer.FormatJSON, outputPath)
//	if closer, ok := writer.(serializer.Closer); ok {
//	    defer closer.Close()
//	}
//	if err := writer.Serialize(ctx, summary); err != nil {
//	    log.Fatal(err)
//	}
//
// # Usage - Decoding
//
// Read from a file with automatic format detection:
//
//	reader, err := serializer.NewFileReaderAuto("summary.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
//
//	var summary report.Summary
//	if err := reader.Deserialize(&summary); err != nil {
//	    log.Fatal(err)
//	}
//
// Load a typed document in one call:
//
//	summary, err := serializer.FromFile[report.Summary]("summary.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Read with a custom io.Reader:
//
//	reader, err := serializer.NewReader(serializer.FormatJSON, strings.NewReader(jsonData))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var doc map[string]any
//	if err := reader.Deserialize(&doc); err != nil {
//	    log.Fatal(err)
//	}
//
// # Format Detection
//
// File extension-based detection:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table
//   - Other → JSON (default)
//
// Format detection is automatic when using:
//   - NewFileReaderAuto(path)
//   - FromFile[T](path)
//
// # Remote Sources
//
// Readers accept http:// and https:// URLs in place of file paths. Remote
// documents are downloaded through HttpReader, which carries pooled
// connections, TLS 1.2 minimum, and configurable timeouts:
//
//	reader := serializer.NewHttpReader(
//	    serializer.WithTotalTimeout(10 * time.Second),
//	)
//	data, err := reader.ReadWithContext(ctx, "https://example.com/runs/latest.json")
//
// # HTTP Responses
//
// RespondJSON buffers the JSON encoding before writing headers so encoding
// failures surface as a 500 instead of a truncated 200:
//
//	serializer.RespondJSON(w, http.StatusOK, summary)
//
// # Table Format
//
// The table format flattens nested structures into dotted keys:
//
//	FIELD                      VALUE
//	-----                      -----
//	Totals.ErroredTests        1
//	Totals.FailedTests         1
//	Totals.SkippedTests        2
//	Totals.TotalTests          3
//
// Table format:
//   - Does not support deserialization (write-only)
//   - Best for human viewing in terminals
//   - Sorts keys for stable output
//
// # Resource Management
//
// Always close readers and writers that manage files:
//
//	reader, err := serializer.NewFileReaderAuto("summary.json")
//	if err != nil {
//	    return err
//	}
//	defer reader.Close()  // Required for file resources
//
// Stdout writers don't require closing but Close() is safe to call.
//
// # Error Handling
//
// Errors are returned when:
//   - Format is unknown or unsupported
//   - File cannot be opened or created
//   - Data cannot be marshaled/unmarshaled
//   - Table format used for deserialization
//
// All errors include context for debugging.
//
// # Integration
//
// Used throughout tally for document I/O:
//   - pkg/cli - Command output formatting
//   - pkg/store - Loading stored summaries
//   - pkg/server - HTTP response encoding
package serializer

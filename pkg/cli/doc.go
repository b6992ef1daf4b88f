// Package cli implements the command-line interface for the tally tool.
//
// # Overview
//
// The tally CLI turns line-delimited JSON run logs written by a JSON Schema
// test harness into reports: per-run summaries, a cross-run compliance
// matrix, shields.io badges, and wire-format validation results. It is
// designed for implementation maintainers and CI pipelines that publish
// compliance results.
//
// # Commands
//
// summary - Summarize one run log:
//
//	tally summary --log draft2020.jsonl [--output FILE] [--format json|yaml|table]
//
// Parses a run log and reduces it to run metadata, per-implementation
// pass/fail/error/skip statistics, run totals, and a derived status. Output
// defaults to stdout in JSON format.
//
// compliance - Project stored runs into the compliance matrix:
//
//	tally compliance [--dir reports] [--output FILE]
//
// Loads every *.jsonl run log in a directory and inverts them into
// per-implementation rows with one cell of failure counts per run.
//
// badge - Grade an implementation as a shields.io badge:
//
//	tally badge --implementation impl-a [--run draft2020] [--summary FILE] [--output FILE]
//
// Computes the compliance percentage for one implementation. With --run the
// output is the bare shields.io endpoint payload for that run; without it,
// a document covering every stored run. With --summary the grade is taken
// from a previously saved summary document (path or URL) instead of the
// reports directory.
//
// validate - Check a run log against the documented wire format:
//
//	tally validate --log draft2020.jsonl [--fail-on-error]
//
// Validates every record against the harness IO schema and reports one
// issue per failing record. With --fail-on-error the command exits non-zero
// when any record does not conform.
//
// # Global Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format       Output format: json, yaml, table (default: json)
//	--log-level    Logging verbosity (debug, info, warn, error)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Output Formats
//
// JSON (default):
//   - Machine-parseable
//   - Matches the API server's response bodies
//
// YAML:
//   - Human-readable, preserves structure
//   - Suitable for version control
//
// Table:
//   - Flattened field/value text representation
//   - Suitable for terminal viewing
//
// # Usage Examples
//
// Summarize a published run log as YAML:
//
//	tally summary -l https://example.com/runs/draft2020.jsonl --format yaml
//
// Project a directory of runs and save the matrix:
//
//	tally compliance --dir ./runs -o matrix.json
//
// Gate CI on wire-format conformance:
//
//	tally validate -l draft2020.jsonl --fail-on-error
//
// Publish a badge from a saved summary:
//
//	tally badge -i impl-a --summary summary.json -o badge.json
//
// # Environment Variables
//
//	LOG_LEVEL     Set logging verbosity (debug, info, warn, error)
//	REPORTS_DIR   Default run-log directory for compliance and badge
//	TALLY_FORMAT  Default output format
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure, --fail-on-error)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized packages:
//   - pkg/report - Run-log parsing, summaries, validation
//   - pkg/store - Run-log directory loading
//   - pkg/compliance - Matrix projection
//   - pkg/badge - Badge grading
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/harnesslab/tally/pkg/cli.version=1.0.0'"
package cli

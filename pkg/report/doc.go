// Package report parses harness run logs into structured reports.
//
// # Overview
//
// A harness run exercises many implementations of a schema-validation engine
// against a shared suite of test cases and writes one newline-delimited JSON
// record per event. This package reduces such a log into a single in-memory
// report: per-implementation pass/fail/error/skip statistics keyed by test
// case, plus run-wide totals.
//
// The stream carries no explicit type tag; a record's kind is inferred from
// which fields are present. Result records refer back to earlier case
// definitions by sequence number and are joined in order during a single
// left-to-right pass.
//
// # Core Types
//
// Record: one decoded log line, fields kept raw until bound
//
//	type Record map[string]json.RawMessage
//
// ReportData: one fully parsed run
//
//	type ReportData struct {
//	    RunMetadata RunMetadata                       // header extraction result
//	    Cases       map[int64]Case                    // seq -> case definition
//	    Results     map[string]*ImplementationResults // id -> aggregate
//	    DidFailFast bool                              // run terminated early
//	}
//
// Parser: the single-pass aggregator
//
//	parser := report.New(report.WithResolver(registry))
//	data, err := parser.ParseReader(ctx, file)
//
// # Usage
//
// Parse a run log and fold it into totals:
//
//	parser := report.New()
//	data, err := parser.ParseReader(ctx, f)
//	if err != nil {
//	    return err
//	}
//	totals := data.Totals()
//
// Build the output document:
//
//	summary, err := report.NewSummary(data, version)
//
// # Error Handling
//
// Every parse failure carries a structured code: MALFORMED_RECORD for lines
// or fields with the wrong shape, MALFORMED_HEADER for a broken first
// record, MISSING_CASE when a result references a case that was never
// announced, and UNKNOWN_RECORD for unrecognized shapes under
// WithStrictRecords. All of them abort the parse of that run; there is no
// partial report and required fields are never defaulted.
//
// # Strict Validation
//
// ValidateRecords checks decoded records against the embedded harness IO
// schema and reports per-record diagnostics. This is a linting surface for
// log producers, separate from the parser's own shape checks.
package report

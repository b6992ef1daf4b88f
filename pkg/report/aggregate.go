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

package report

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/harnesslab/tally/pkg/dialect"
	"github.com/harnesslab/tally/pkg/errors"
)

// Parser turns an ordered run-log record sequence into a ReportData. All
// aggregation state is owned by a single Parse invocation; a Parser value is
// safe for concurrent use across runs.
type Parser struct {
	resolver dialect.Resolver
	strict   bool
}

// Option is a functional option for configuring Parser instances.
type Option func(*Parser)

// WithResolver returns an Option that sets the dialect resolver consulted
// during header extraction.
func WithResolver(r dialect.Resolver) Option {
	return func(p *Parser) {
		p.resolver = r
	}
}

// WithStrictRecords returns an Option under which records matching no known
// shape abort the parse with an UNKNOWN_RECORD error instead of being
// ignored.
func WithStrictRecords() Option {
	return func(p *Parser) {
		p.strict = true
	}
}

// New creates a new Parser with the provided options. The default resolver
// is the registry of published JSON Schema dialects.
func New(opts ...Option) *Parser {
	p := &Parser{
		resolver: dialect.NewRegistry(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseReader decodes and parses a run log in one step.
func (p *Parser) ParseReader(ctx context.Context, r io.Reader) (*ReportData, error) {
	records, err := DecodeRecords(r)
	if err != nil {
		parsesTotal.WithLabelValues(metricStatusError).Inc()
		return nil, err
	}
	return p.Parse(ctx, records)
}

// Parse consumes the ordered record sequence of one run in a single pass:
// record 0 is the header, every later record either defines a case, reports
// results against one, or closes the run. Any malformed record aborts the
// whole parse; there is no partial report.
func (p *Parser) Parse(ctx context.Context, records []Record) (*ReportData, error) {
	start := time.Now()

	data, err := p.parse(ctx, records)
	if err != nil {
		parsesTotal.WithLabelValues(metricStatusError).Inc()
		return nil, err
	}

	totals := data.Totals()
	parseDuration.Observe(time.Since(start).Seconds())
	parsesTotal.WithLabelValues(metricStatusSuccess).Inc()
	lastRunTests.Set(float64(totals.TotalTests))

	slog.Debug("run log parsed",
		"dialect", data.RunMetadata.Dialect.Short,
		"implementations", len(data.RunMetadata.Implementations),
		"cases", len(data.Cases),
		"tests", totals.TotalTests,
		"failFast", data.DidFailFast,
		"duration", time.Since(start))

	return data, nil
}

func (p *Parser) parse(ctx context.Context, records []Record) (*ReportData, error) {
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedHeader, "run log carries no records")
	}

	meta, err := parseRunMetadata(records[0], p.resolver)
	if err != nil {
		return nil, err
	}

	data := &ReportData{
		RunMetadata: *meta,
		Cases:       make(map[int64]Case),
		Results:     make(map[string]*ImplementationResults, len(meta.Implementations)),
	}
	// Pre-seed one zeroed aggregate per implementation in the roster so
	// implementations that never report still appear in the output.
	for id := range meta.Implementations {
		data.Results[id] = &ImplementationResults{
			ID:    id,
			Cases: make(map[int64][]CaseResult),
		}
	}

	for _, rec := range records[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := p.consume(data, rec); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// consume classifies one record and applies it to the aggregation state.
func (p *Parser) consume(data *ReportData, rec Record) error {
	kind := rec.Kind()
	recordsConsumed.WithLabelValues(kind.String()).Inc()

	switch kind {
	case KindCase:
		return registerCase(data, rec)
	case KindCaughtError:
		return applyCaughtError(data, rec)
	case KindSkipped:
		return applySkipped(data, rec)
	case KindResults:
		return applyResults(data, rec)
	case KindEndMarker:
		return applyEndMarker(data, rec)
	default:
		if p.strict {
			return errors.NewWithContext(errors.ErrCodeUnknownRecord,
				"record matched no known shape", map[string]any{"fields": fieldNames(rec)})
		}
		// Unrecognized records are ignored for forward compatibility.
		return nil
	}
}

// registerCase inserts a case definition into the registry under the
// record's sequence number. No aggregate changes.
func registerCase(data *ReportData, rec Record) error {
	seq, err := rec.Seq()
	if err != nil {
		return err
	}
	var c Case
	if err := json.Unmarshal(rec["case"], &c); err != nil {
		return errors.WrapWithContext(errors.ErrCodeMalformedRecord,
			"decoding case definition", err, map[string]any{"seq": seq})
	}
	if len(c.Tests) == 0 {
		return errors.NewWithContext(errors.ErrCodeMalformedRecord,
			"case carries no tests", map[string]any{"seq": seq})
	}
	data.Cases[seq] = c
	return nil
}

// applyCaughtError records an implementation erroring on an entire case:
// one errored result per test, all carrying the same message.
func applyCaughtError(data *ReportData, rec Record) error {
	seq, c, ir, err := resultTarget(data, rec)
	if err != nil {
		return err
	}
	msg, err := contextMessage(rec["context"])
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeMalformedRecord,
			"decoding caught-error context", err, map[string]any{"seq": seq, "implementation": ir.ID})
	}

	results := make([]CaseResult, len(c.Tests))
	for i := range results {
		results[i] = erroredResult(msg)
	}
	ir.Cases[seq] = results
	ir.ErroredCases++
	ir.ErroredTests += len(c.Tests)
	return nil
}

// applySkipped records an implementation skipping an entire case: one
// skipped result per test carrying the record-level message. Skips do not
// touch the errored-case counter.
func applySkipped(data *ReportData, rec Record) error {
	seq, c, ir, err := resultTarget(data, rec)
	if err != nil {
		return err
	}
	msg, _, err := rec.stringField("message")
	if err != nil {
		return err
	}

	results := make([]CaseResult, len(c.Tests))
	for i := range results {
		results[i] = skippedResult(msg)
	}
	ir.Cases[seq] = results
	ir.SkippedTests += len(c.Tests)
	return nil
}

// applyResults records per-test outcomes, positionally aligned with the
// case's tests.
func applyResults(data *ReportData, rec Record) error {
	seq, c, ir, err := resultTarget(data, rec)
	if err != nil {
		return err
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(rec["results"], &elems); err != nil {
		return errors.WrapWithContext(errors.ErrCodeMalformedRecord,
			"record results is not an array", err, map[string]any{"seq": seq, "implementation": ir.ID})
	}
	if len(elems) != len(c.Tests) {
		return errors.NewWithContext(errors.ErrCodeMalformedRecord,
			"results are not aligned with the case's tests", map[string]any{
				"seq":            seq,
				"implementation": ir.ID,
				"tests":          len(c.Tests),
				"results":        len(elems),
			})
	}

	results := make([]CaseResult, 0, len(elems))
	for i, raw := range elems {
		cr, err := decodeTestResult(raw, c.Tests[i], ir)
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeMalformedRecord,
				"decoding test result", err, map[string]any{
					"seq":            seq,
					"implementation": ir.ID,
					"test":           i,
				})
		}
		results = append(results, cr)
	}
	ir.Cases[seq] = results
	return nil
}

// decodeTestResult turns one results element into a CaseResult and bumps the
// matching counter. Precedence mirrors record classification: errored, then
// skipped, then the validity comparison.
func decodeTestResult(raw json.RawMessage, test Test, ir *ImplementationResults) (CaseResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return CaseResult{}, errors.Wrap(errors.ErrCodeMalformedRecord,
			"test result is not an object", err)
	}

	errored, err := boolField(fields, "errored")
	if err != nil {
		return CaseResult{}, err
	}
	if errored {
		msg, err := contextMessage(fields["context"])
		if err != nil {
			return CaseResult{}, err
		}
		ir.ErroredTests++
		return erroredResult(msg), nil
	}

	skipped, err := boolField(fields, "skipped")
	if err != nil {
		return CaseResult{}, err
	}
	if skipped {
		msg, err := messageField(fields)
		if err != nil {
			return CaseResult{}, err
		}
		ir.SkippedTests++
		return skippedResult(msg), nil
	}

	rawValid, ok := fields["valid"]
	if !ok || isJSONNull(rawValid) {
		return CaseResult{}, errors.New(errors.ErrCodeMalformedRecord,
			"test result carries no validity")
	}
	var observed bool
	if err := json.Unmarshal(rawValid, &observed); err != nil {
		return CaseResult{}, errors.Wrap(errors.ErrCodeMalformedRecord,
			"test result validity is not a boolean", err)
	}

	// A mismatch counts only when the test declares an expectation.
	if test.Valid != nil && *test.Valid != observed {
		ir.FailedTests++
		return failedResult(observed), nil
	}
	return successfulResult(observed), nil
}

// applyEndMarker overwrites the run's fail-fast flag. Counters are never
// touched.
func applyEndMarker(data *ReportData, rec Record) error {
	var failFast bool
	if err := json.Unmarshal(rec["did_fail_fast"], &failFast); err != nil {
		return errors.Wrap(errors.ErrCodeMalformedRecord,
			"record did_fail_fast is not a boolean", err)
	}
	data.DidFailFast = failFast
	return nil
}

// resultTarget resolves the case and implementation aggregate a result-typed
// record refers to. A sequence number with no registered case means the log
// itself is inconsistent and the parse cannot continue.
func resultTarget(data *ReportData, rec Record) (int64, Case, *ImplementationResults, error) {
	seq, err := rec.Seq()
	if err != nil {
		return 0, Case{}, nil, err
	}
	c, ok := data.Cases[seq]
	if !ok {
		return 0, Case{}, nil, errors.NewWithContext(errors.ErrCodeMissingCase,
			"result references an unregistered case", map[string]any{"seq": seq})
	}
	id, err := rec.implementationID()
	if err != nil {
		return 0, Case{}, nil, err
	}
	ir, ok := data.Results[id]
	if !ok {
		return 0, Case{}, nil, errors.NewWithContext(errors.ErrCodeMalformedRecord,
			"result references an implementation absent from the header roster",
			map[string]any{"seq": seq, "implementation": id})
	}
	return seq, c, ir, nil
}

// contextMessage extracts the error message from a caught-error context,
// preferring the structured message field and falling back to raw stderr.
// The fallback is keyed on field absence, not emptiness.
func contextMessage(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || isJSONNull(raw) {
		return "", nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", errors.Wrap(errors.ErrCodeMalformedRecord,
			"error context is not an object", err)
	}
	if msg, ok := fields["message"]; ok {
		return decodeNullableString("message", msg)
	}
	if stderr, ok := fields["stderr"]; ok {
		return decodeNullableString("stderr", stderr)
	}
	return "", nil
}

// messageField extracts an optional top-level message from a decoded field
// set.
func messageField(fields map[string]json.RawMessage) (string, error) {
	raw, ok := fields["message"]
	if !ok {
		return "", nil
	}
	return decodeNullableString("message", raw)
}

// decodeNullableString decodes a string field, treating JSON null the same
// as an empty string.
func decodeNullableString(field string, raw json.RawMessage) (string, error) {
	if isJSONNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeMalformedRecord,
			"record field is not a string", err, map[string]any{"field": field})
	}
	return s, nil
}

// boolField decodes an optional boolean marker; absence and JSON null both
// read as false.
func boolField(fields map[string]json.RawMessage, field string) (bool, error) {
	raw, ok := fields[field]
	if !ok || isJSONNull(raw) {
		return false, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, errors.WrapWithContext(errors.ErrCodeMalformedRecord,
			"record field is not a boolean", err, map[string]any{"field": field})
	}
	return b, nil
}

// fieldNames lists a record's keys for diagnostics.
func fieldNames(rec Record) []string {
	names := make([]string, 0, len(rec))
	for name := range rec {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

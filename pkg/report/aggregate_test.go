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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tallyerrors "github.com/harnesslab/tally/pkg/errors"
)

// caseTwoTests defines seq 1 with one test expected valid and one expected
// invalid.
const caseTwoTests = `{"seq": 1, "case": {"description": "type keyword", "schema": {"type": "integer"}, "tests": [{"description": "an integer", "instance": 12, "valid": true}, {"description": "a string", "instance": "x", "valid": false}]}}`

// sampleLog is a complete two-case, two-implementation run.
const sampleLog = `{"dialect": "https://json-schema.org/draft/2020-12/schema", "bowtie_version": "1.35.0", "implementations": {"ghcr.io/harness-suite/impl-a": {"name": "impl-a", "language": "go", "version": "1.0.0", "dialects": ["https://json-schema.org/draft/2020-12/schema"]}, "ghcr.io/harness-suite/impl-b": {"name": "impl-b", "language": "rust", "version": "2.1.0", "dialects": ["https://json-schema.org/draft/2020-12/schema"]}}, "started": 1756000000.5, "metadata": {}}
{"seq": 1, "case": {"description": "type keyword", "schema": {"type": "integer"}, "tests": [{"description": "an integer", "instance": 12, "valid": true}, {"description": "a string", "instance": "x", "valid": false}]}}
{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": true}, {"valid": false}]}
{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-b", "skipped": true, "message": "not supported"}
{"seq": 2, "case": {"description": "enum keyword", "schema": {"enum": [1, 2]}, "tests": [{"description": "member", "instance": 1, "valid": true}]}}
{"seq": 2, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": false}]}
{"seq": 2, "implementation": "ghcr.io/harness-suite/impl-b", "caught": true, "context": {"message": "panic"}}
{"did_fail_fast": false}
`

// parseRun feeds a header record plus raw JSON lines through a default parser.
func parseRun(t *testing.T, hdr Record, lines ...string) (*ReportData, error) {
	t.Helper()
	records := make([]Record, 0, len(lines)+1)
	records = append(records, hdr)
	for _, line := range lines {
		records = append(records, record(t, line))
	}
	return New().Parse(context.Background(), records)
}

func TestParseMatchingResults(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": true}, {"valid": false}]}`,
	)
	require.NoError(t, err)

	ir := data.Results[implA]
	require.NotNil(t, ir)
	require.Len(t, ir.Cases[1], 2)
	assert.Equal(t, successfulResult(true), ir.Cases[1][0])
	assert.Equal(t, successfulResult(false), ir.Cases[1][1])

	totals := data.Totals()
	assert.Equal(t, 2, totals.TotalTests)
	assert.Zero(t, totals.FailedTests)
	assert.Zero(t, totals.SkippedTests)
	assert.Zero(t, totals.ErroredTests)
	assert.Zero(t, totals.ErroredCases)
}

func TestParseMismatchedResults(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": false}, {"valid": false}]}`,
	)
	require.NoError(t, err)

	// First test expected valid but observed invalid; second matched.
	ir := data.Results[implA]
	require.Len(t, ir.Cases[1], 2)
	assert.Equal(t, StateFailed, ir.Cases[1][0].State)
	assert.Equal(t, StateSuccessful, ir.Cases[1][1].State)
	assert.Equal(t, 1, ir.FailedTests)
	assert.Equal(t, 1, data.Totals().FailedTests)
}

func TestParseNoExpectation(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		`{"seq": 1, "case": {"description": "open", "schema": true, "tests": [{"description": "anything", "instance": 1}]}}`,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": false}]}`,
	)
	require.NoError(t, err)

	// Without a declared expectation the observed validity cannot mismatch.
	ir := data.Results[implA]
	assert.Equal(t, StateSuccessful, ir.Cases[1][0].State)
	assert.Zero(t, ir.FailedTests)
}

func TestParseSkippedCase(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "skipped": true, "message": "not supported"}`,
	)
	require.NoError(t, err)

	ir := data.Results[implA]
	require.Len(t, ir.Cases[1], 2)
	for _, cr := range ir.Cases[1] {
		assert.Equal(t, StateSkipped, cr.State)
		assert.Equal(t, "not supported", cr.Message)
	}
	assert.Equal(t, 2, ir.SkippedTests)
	assert.Zero(t, ir.ErroredCases)
	assert.Equal(t, 2, data.Totals().SkippedTests)
}

func TestParseSkippedWithoutMessage(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "skipped": true}`,
	)
	require.NoError(t, err)

	ir := data.Results[implA]
	assert.Equal(t, 2, ir.SkippedTests)
	assert.Empty(t, ir.Cases[1][0].Message)
}

func TestParseCaughtError(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "caught": true, "context": {"message": "boom"}}`,
	)
	require.NoError(t, err)

	ir := data.Results[implA]
	require.Len(t, ir.Cases[1], 2)
	for _, cr := range ir.Cases[1] {
		assert.Equal(t, StateErrored, cr.State)
		assert.Equal(t, "boom", cr.Message)
	}
	assert.Equal(t, 1, ir.ErroredCases)
	assert.Equal(t, 2, ir.ErroredTests)

	totals := data.Totals()
	assert.Equal(t, 1, totals.ErroredCases)
	assert.Equal(t, 2, totals.ErroredTests)
}

func TestParseCaughtErrorMessageFallback(t *testing.T) {
	tests := []struct {
		name    string
		context string
		message string
	}{
		{
			name:    "message preferred",
			context: `{"message": "boom", "stderr": "trace"}`,
			message: "boom",
		},
		{
			name:    "stderr fallback",
			context: `{"stderr": "trace"}`,
			message: "trace",
		},
		{
			// The fallback keys on field absence, so a present null message
			// still wins over stderr.
			name:    "null message still wins",
			context: `{"message": null, "stderr": "trace"}`,
			message: "",
		},
		{
			name:    "empty context",
			context: `{}`,
			message: "",
		},
		{
			name:    "null context",
			context: `null`,
			message: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := parseRun(t, testHeader(t, implA),
				caseTwoTests,
				`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "caught": true, "context": `+tt.context+`}`,
			)
			require.NoError(t, err)
			assert.Equal(t, tt.message, data.Results[implA].Cases[1][0].Message)
		})
	}
}

func TestParseCaughtErrorWithoutContext(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "caught": true}`,
	)
	require.NoError(t, err)

	ir := data.Results[implA]
	assert.Equal(t, 1, ir.ErroredCases)
	assert.Empty(t, ir.Cases[1][0].Message)
}

func TestParsePerTestOutcomes(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"errored": true, "context": {"message": "bad input"}}, {"skipped": true, "message": "n/a"}]}`,
	)
	require.NoError(t, err)

	ir := data.Results[implA]
	require.Len(t, ir.Cases[1], 2)
	assert.Equal(t, erroredResult("bad input"), ir.Cases[1][0])
	assert.Equal(t, skippedResult("n/a"), ir.Cases[1][1])
	assert.Equal(t, 1, ir.ErroredTests)
	assert.Equal(t, 1, ir.SkippedTests)

	// A per-test error is not a whole-case error.
	assert.Zero(t, ir.ErroredCases)
}

func TestParseEndMarker(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": true}, {"valid": false}]}`,
		`{"did_fail_fast": true}`,
	)
	require.NoError(t, err)
	assert.True(t, data.DidFailFast)

	// The marker only flips the flag; counters stay as they were.
	totals := data.Totals()
	assert.Equal(t, 2, totals.TotalTests)
	assert.Zero(t, totals.FailedTests)
	assert.Zero(t, totals.ErroredTests)
	assert.Zero(t, totals.SkippedTests)
	assert.Zero(t, totals.ErroredCases)
}

func TestParseEndMarkerOverwrites(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		`{"did_fail_fast": true}`,
		`{"did_fail_fast": false}`,
	)
	require.NoError(t, err)
	assert.False(t, data.DidFailFast)
}

func TestParseRosterPreSeeded(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA, implB),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": true}, {"valid": false}]}`,
	)
	require.NoError(t, err)

	// Silent implementations still appear, zeroed.
	ir := data.Results[implB]
	require.NotNil(t, ir)
	assert.Equal(t, implB, ir.ID)
	assert.Empty(t, ir.Cases)
	assert.Zero(t, ir.FailedTests)
	assert.Zero(t, ir.SkippedTests)
	assert.Zero(t, ir.ErroredTests)
	assert.Zero(t, ir.ErroredCases)
}

func TestParseMissingCase(t *testing.T) {
	_, err := parseRun(t, testHeader(t, implA),
		`{"seq": 9, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": true}]}`,
	)
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeMissingCase))
}

func TestParseUnknownImplementation(t *testing.T) {
	_, err := parseRun(t, testHeader(t, implA),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-z", "results": [{"valid": true}, {"valid": false}]}`,
	)
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeMalformedRecord))
}

func TestParseMisalignedResults(t *testing.T) {
	_, err := parseRun(t, testHeader(t, implA),
		caseTwoTests,
		`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": true}]}`,
	)
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeMalformedRecord))

	var se *tallyerrors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Context["tests"])
	assert.Equal(t, 1, se.Context["results"])
}

func TestParseResultMissingValidity(t *testing.T) {
	tests := []struct {
		name    string
		results string
	}{
		{name: "empty element", results: `[{}, {"valid": false}]`},
		{name: "null validity", results: `[{"valid": null}, {"valid": false}]`},
		{name: "non-object element", results: `[true, {"valid": false}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRun(t, testHeader(t, implA),
				caseTwoTests,
				`{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "results": `+tt.results+`}`,
			)
			require.Error(t, err)
			assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeMalformedRecord))
		})
	}
}

func TestParseCaseWithoutTests(t *testing.T) {
	_, err := parseRun(t, testHeader(t, implA),
		`{"seq": 1, "case": {"description": "empty", "schema": true, "tests": []}}`,
	)
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeMalformedRecord))
}

func TestParseEmptyLog(t *testing.T) {
	_, err := New().Parse(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeMalformedHeader))
}

func TestParseUnrecognizedRecordIgnored(t *testing.T) {
	data, err := parseRun(t, testHeader(t, implA),
		`{"note": "future record shape"}`,
		caseTwoTests,
	)
	require.NoError(t, err)
	assert.Len(t, data.Cases, 1)
}

func TestParseStrictUnknownRecord(t *testing.T) {
	records := []Record{
		testHeader(t, implA),
		record(t, `{"note": "future record shape"}`),
	}

	_, err := New(WithStrictRecords()).Parse(context.Background(), records)
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeUnknownRecord))
}

func TestParseCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []Record{testHeader(t, implA), record(t, caseTwoTests)}
	_, err := New().Parse(ctx, records)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseReader(t *testing.T) {
	data, err := New().ParseReader(context.Background(), strings.NewReader(sampleLog))
	require.NoError(t, err)

	assert.Len(t, data.Cases, 2)
	assert.False(t, data.DidFailFast)

	totals := data.Totals()
	assert.Equal(t, 3, totals.TotalTests)
	assert.Equal(t, 1, totals.FailedTests)
	assert.Equal(t, 2, totals.SkippedTests)
	assert.Equal(t, 1, totals.ErroredTests)
	assert.Equal(t, 1, totals.ErroredCases)

	a := data.Results[implA]
	assert.Equal(t, Counts{FailedTests: 1}, a.Counts())

	b := data.Results[implB]
	assert.Equal(t, Counts{SkippedTests: 2, ErroredTests: 1}, b.Counts())
}

func TestParseReaderMalformed(t *testing.T) {
	_, err := New().ParseReader(context.Background(), strings.NewReader("{broken\n"))
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeMalformedRecord))
}

func TestParseIdempotent(t *testing.T) {
	first, err := New().ParseReader(context.Background(), strings.NewReader(sampleLog))
	require.NoError(t, err)
	second, err := New().ParseReader(context.Background(), strings.NewReader(sampleLog))
	require.NoError(t, err)

	d1, err := Digest(first)
	require.NoError(t, err)
	d2, err := Digest(second)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

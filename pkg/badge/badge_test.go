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

package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harnesslab/tally/pkg/dialect"
	tallyerrors "github.com/harnesslab/tally/pkg/errors"
	"github.com/harnesslab/tally/pkg/header"
	"github.com/harnesslab/tally/pkg/report"
)

const (
	implA = "ghcr.io/harness-suite/impl-a"
	implB = "ghcr.io/harness-suite/impl-b"
)

// testRun builds a parsed run with a single case of the given test count.
func testRun(short string, tests int, results map[string]*report.ImplementationResults) *report.ReportData {
	caseTests := make([]report.Test, tests)
	for i := range caseTests {
		caseTests[i] = report.Test{Description: "t", Instance: i}
	}
	return &report.ReportData{
		RunMetadata: report.RunMetadata{
			Dialect: dialect.Dialect{Short: short, Name: "Draft " + short},
		},
		Cases:   map[int64]report.Case{1: {Description: "c", Schema: true, Tests: caseTests}},
		Results: results,
	}
}

func implResults(id string, failed, skipped, errored int) *report.ImplementationResults {
	return &report.ImplementationResults{
		ID:           id,
		FailedTests:  failed,
		SkippedTests: skipped,
		ErroredTests: errored,
	}
}

func TestNew(t *testing.T) {
	data := testRun("2020-12", 4, map[string]*report.ImplementationResults{
		implA: implResults(implA, 1, 0, 0),
	})

	ep, err := New(data, implA)
	require.NoError(t, err)

	assert.Equal(t, 1, ep.SchemaVersion)
	assert.Equal(t, "2020-12", ep.Label)
	assert.Equal(t, "75% compliant", ep.Message)
	assert.Equal(t, "yellowgreen", ep.Color)
}

func TestNewPerfectRun(t *testing.T) {
	data := testRun("draft7", 10, map[string]*report.ImplementationResults{
		implA: implResults(implA, 0, 0, 0),
	})

	ep, err := New(data, implA)
	require.NoError(t, err)

	assert.Equal(t, "100% compliant", ep.Message)
	assert.Equal(t, "brightgreen", ep.Color)
}

func TestNewFloorsPercentage(t *testing.T) {
	// 2 of 3 is 66.66..%; the grade floors rather than rounds.
	data := testRun("draft7", 3, map[string]*report.ImplementationResults{
		implA: implResults(implA, 0, 1, 0),
	})

	ep, err := New(data, implA)
	require.NoError(t, err)

	assert.Equal(t, "66.6% compliant", ep.Message)
	assert.Equal(t, "yellow", ep.Color)
}

func TestNewNeverRoundsUpToPerfect(t *testing.T) {
	data := testRun("2020-12", 1000, map[string]*report.ImplementationResults{
		implA: implResults(implA, 1, 0, 0),
	})

	ep, err := New(data, implA)
	require.NoError(t, err)

	assert.Equal(t, "99.9% compliant", ep.Message)
	assert.Equal(t, "green", ep.Color)
}

func TestNewUnknownImplementation(t *testing.T) {
	data := testRun("2020-12", 4, map[string]*report.ImplementationResults{
		implA: implResults(implA, 0, 0, 0),
	})

	_, err := New(data, implB)
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeNotFound))
}

func TestNewRunWithoutTests(t *testing.T) {
	data := &report.ReportData{
		Results: map[string]*report.ImplementationResults{
			implA: implResults(implA, 0, 0, 0),
		},
	}

	_, err := New(data, implA)
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeInvalidRequest))
}

func TestColorRamp(t *testing.T) {
	tests := []struct {
		pct      float64
		expected string
	}{
		{100, "brightgreen"},
		{99.9, "green"},
		{90, "green"},
		{89.9, "yellowgreen"},
		{75, "yellowgreen"},
		{60, "yellow"},
		{30, "orange"},
		{10, "red"},
		{0, "red"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, color(tt.pct), "pct %v", tt.pct)
	}
}

func testSummary(short string, total int, rows ...report.ImplementationSummary) *report.Summary {
	return &report.Summary{
		Dialect:         dialect.Dialect{Short: short, Name: "Draft " + short},
		Totals:          report.Totals{TotalTests: total},
		Implementations: rows,
	}
}

func TestNewFromSummary(t *testing.T) {
	s := testSummary("2020-12", 4,
		report.ImplementationSummary{ID: implA, DisplayName: "impl-a", FailedTests: 1},
		report.ImplementationSummary{ID: implB, DisplayName: "impl-b"},
	)

	ep, err := NewFromSummary(s, implA)
	require.NoError(t, err)

	assert.Equal(t, 1, ep.SchemaVersion)
	assert.Equal(t, "2020-12", ep.Label)
	assert.Equal(t, "75% compliant", ep.Message)
	assert.Equal(t, "yellowgreen", ep.Color)
}

func TestNewFromSummaryByDisplayName(t *testing.T) {
	s := testSummary("draft7", 10,
		report.ImplementationSummary{ID: implA, DisplayName: "impl-a", SkippedTests: 2},
	)

	ep, err := NewFromSummary(s, "impl-a")
	require.NoError(t, err)

	assert.Equal(t, "80% compliant", ep.Message)
	assert.Equal(t, "yellowgreen", ep.Color)
}

func TestNewFromSummaryUnknownImplementation(t *testing.T) {
	s := testSummary("2020-12", 4,
		report.ImplementationSummary{ID: implA, DisplayName: "impl-a"},
	)

	_, err := NewFromSummary(s, "impl-z")
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeNotFound))
}

func TestNewFromSummaryWithoutTests(t *testing.T) {
	s := testSummary("2020-12", 0,
		report.ImplementationSummary{ID: implA, DisplayName: "impl-a"},
	)

	_, err := NewFromSummary(s, implA)
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeInvalidRequest))
}

func TestNewDocument(t *testing.T) {
	runs := map[string]*report.ReportData{
		"2020-12": testRun("2020-12", 4, map[string]*report.ImplementationResults{
			implA: implResults(implA, 0, 0, 0),
			implB: implResults(implB, 2, 0, 0),
		}),
		"draft7": testRun("draft7", 4, map[string]*report.ImplementationResults{
			implA: implResults(implA, 1, 0, 0),
		}),
	}

	doc, err := NewDocument(runs, implA, "1.0.0")
	require.NoError(t, err)

	assert.Equal(t, header.KindBadge, doc.Kind)
	assert.Equal(t, report.APIVersion, doc.APIVersion)
	assert.Equal(t, "1.0.0", doc.Metadata["version"])
	assert.Equal(t, implA, doc.Implementation)
	assert.Equal(t, "impl-a", doc.DisplayName)

	require.Len(t, doc.Badges, 2)
	assert.Equal(t, "100% compliant", doc.Badges["2020-12"].Message)
	assert.Equal(t, "75% compliant", doc.Badges["draft7"].Message)
}

func TestNewDocumentUnknownImplementation(t *testing.T) {
	runs := map[string]*report.ReportData{
		"2020-12": testRun("2020-12", 4, map[string]*report.ImplementationResults{
			implA: implResults(implA, 0, 0, 0),
		}),
	}

	_, err := NewDocument(runs, "ghcr.io/harness-suite/impl-z", "1.0.0")
	require.Error(t, err)
	assert.True(t, tallyerrors.IsCode(err, tallyerrors.ErrCodeNotFound))
}

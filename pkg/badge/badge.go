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
	"fmt"
	"math"
	"sort"
	"strconv"

	tallyerrors "github.com/harnesslab/tally/pkg/errors"
	"github.com/harnesslab/tally/pkg/header"
	"github.com/harnesslab/tally/pkg/report"
)

// endpointSchemaVersion is the shields.io endpoint schema this package emits.
const endpointSchemaVersion = 1

// Endpoint is a shields.io endpoint payload for one implementation in one
// run. It carries no envelope so the response can be fed to shields.io
// directly.
type Endpoint struct {
	// SchemaVersion is always 1, per the shields endpoint contract.
	SchemaVersion int `json:"schemaVersion" yaml:"schemaVersion"`

	// Label is the left-hand badge text, the run's dialect short name.
	Label string `json:"label" yaml:"label"`

	// Message is the right-hand badge text, e.g. "98.3% compliant".
	Message string `json:"message" yaml:"message"`

	// Color is the badge color keyed to the compliance percentage.
	Color string `json:"color" yaml:"color"`
}

// Document groups one implementation's badges across runs under the usual
// resource envelope.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	// Implementation is the full implementation id.
	Implementation string `json:"implementation" yaml:"implementation"`

	// DisplayName is the compact label derived from the id.
	DisplayName string `json:"displayName" yaml:"displayName"`

	// Badges maps run identifier to that run's endpoint payload.
	Badges map[string]Endpoint `json:"badges" yaml:"badges"`
}

// New builds the shields endpoint for one implementation in one parsed run.
// Compliance counts tests whose outcome matched expectations: the run total
// minus failed, errored and skipped tests.
func New(data *report.ReportData, implID string) (*Endpoint, error) {
	ir, ok := data.Results[implID]
	if !ok {
		return nil, tallyerrors.NewWithContext(tallyerrors.ErrCodeNotFound,
			"implementation not present in run", map[string]any{"implementation": implID})
	}

	total := data.Totals().TotalTests
	if total == 0 {
		return nil, tallyerrors.NewWithContext(tallyerrors.ErrCodeInvalidRequest,
			"run carries no tests to grade", map[string]any{"implementation": implID})
	}

	pct := percentage(total, ir.Counts())
	return &Endpoint{
		SchemaVersion: endpointSchemaVersion,
		Label:         data.RunMetadata.Dialect.Short,
		Message:       fmt.Sprintf("%s%% compliant", strconv.FormatFloat(pct, 'f', -1, 64)),
		Color:         color(pct),
	}, nil
}

// NewFromSummary builds the shields endpoint for one implementation from a
// saved summary document, so a badge can be produced without re-parsing the
// run log. The name matches an implementation id exactly, or failing that a
// display name; rows are sorted by id so the first display-name hit is the
// lowest id.
func NewFromSummary(s *report.Summary, name string) (*Endpoint, error) {
	row, ok := resolveRow(s.Implementations, name)
	if !ok {
		return nil, tallyerrors.NewWithContext(tallyerrors.ErrCodeNotFound,
			"implementation not present in summary", map[string]any{"implementation": name})
	}

	total := s.Totals.TotalTests
	if total == 0 {
		return nil, tallyerrors.NewWithContext(tallyerrors.ErrCodeInvalidRequest,
			"summary carries no tests to grade", map[string]any{"implementation": row.ID})
	}

	pct := percentage(total, report.Counts{
		FailedTests:  row.FailedTests,
		SkippedTests: row.SkippedTests,
		ErroredTests: row.ErroredTests,
	})
	return &Endpoint{
		SchemaVersion: endpointSchemaVersion,
		Label:         s.Dialect.Short,
		Message:       fmt.Sprintf("%s%% compliant", strconv.FormatFloat(pct, 'f', -1, 64)),
		Color:         color(pct),
	}, nil
}

func resolveRow(rows []report.ImplementationSummary, name string) (report.ImplementationSummary, bool) {
	for _, row := range rows {
		if row.ID == name {
			return row, true
		}
	}
	for _, row := range rows {
		if row.DisplayName == name {
			return row, true
		}
	}
	return report.ImplementationSummary{}, false
}

// NewDocument collects one implementation's badges across all runs that
// mention it. Runs that cannot be graded are left out; an implementation no
// run mentions is a NOT_FOUND error.
func NewDocument(runs map[string]*report.ReportData, implID, version string) (*Document, error) {
	runIDs := make([]string, 0, len(runs))
	for id := range runs {
		runIDs = append(runIDs, id)
	}
	sort.Strings(runIDs)

	badges := make(map[string]Endpoint)
	for _, runID := range runIDs {
		data := runs[runID]
		if data == nil {
			continue
		}
		ep, err := New(data, implID)
		if err != nil {
			continue
		}
		badges[runID] = *ep
	}
	if len(badges) == 0 {
		return nil, tallyerrors.NewWithContext(tallyerrors.ErrCodeNotFound,
			"implementation not present in any run", map[string]any{"implementation": implID})
	}

	d := &Document{
		Implementation: implID,
		DisplayName:    report.DisplayName(implID),
		Badges:         badges,
	}
	d.Init(header.KindBadge, report.APIVersion, version)
	return d, nil
}

// percentage grades an implementation: matched tests over the run total,
// floored to one decimal so a near-perfect run never rounds up to 100.
func percentage(total int, c report.Counts) float64 {
	matched := total - c.FailedTests - c.ErroredTests - c.SkippedTests
	pct := float64(matched) / float64(total) * 100
	return math.Floor(pct*10) / 10
}

// color maps a compliance percentage onto the shields color ramp.
func color(pct float64) string {
	switch {
	case pct >= 100:
		return "brightgreen"
	case pct >= 90:
		return "green"
	case pct >= 75:
		return "yellowgreen"
	case pct >= 50:
		return "yellow"
	case pct >= 25:
		return "orange"
	default:
		return "red"
	}
}

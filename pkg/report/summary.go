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
	"log/slog"
	"sort"
	"time"

	"github.com/harnesslab/tally/pkg/dialect"
	"github.com/harnesslab/tally/pkg/header"
)

const (
	// APIVersion is the API version for report documents.
	APIVersion = "tally.harnesslab.io/v1alpha1"
)

// Status represents the overall outcome of a run or of one implementation.
type Status string

const (
	// StatusPass indicates every expectation was met.
	StatusPass Status = "pass"

	// StatusFail indicates failed or errored tests.
	StatusFail Status = "fail"

	// StatusPartial indicates skips but no failures or errors.
	StatusPartial Status = "partial"
)

// Summary is the rendered-agnostic output document for one parsed run:
// run metadata, per-implementation rows, run-wide totals, and a derived
// status for CI-style consumers.
type Summary struct {
	header.Header `json:",inline" yaml:",inline"`

	// Source is the path or URI the run log was read from, when known.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Dialect is the JSON Schema dialect the run exercised.
	Dialect dialect.Dialect `json:"dialect" yaml:"dialect"`

	// HarnessVersion is the version of the harness that produced the log.
	HarnessVersion string `json:"harnessVersion" yaml:"harnessVersion"`

	// Started is the instant the run began.
	Started time.Time `json:"started" yaml:"started"`

	// DidFailFast records whether the run terminated early.
	DidFailFast bool `json:"didFailFast" yaml:"didFailFast"`

	// Digest is the canonical content address of the parsed report.
	Digest string `json:"digest" yaml:"digest"`

	// Implementations holds one row per implementation, sorted by id.
	Implementations []ImplementationSummary `json:"implementations" yaml:"implementations"`

	// Totals are the run-wide counts.
	Totals Totals `json:"totals" yaml:"totals"`

	// Status is the derived run outcome.
	Status Status `json:"status" yaml:"status"`
}

// ImplementationSummary is one implementation's row in a Summary.
type ImplementationSummary struct {
	// ID is the implementation id from the header roster.
	ID string `json:"id" yaml:"id"`

	// DisplayName is the compact label derived from the id.
	DisplayName string `json:"displayName" yaml:"displayName"`

	// Name, Language and Version come from the descriptor.
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`

	// ErroredCases, SkippedTests, FailedTests and ErroredTests mirror the
	// aggregate counters.
	ErroredCases int `json:"erroredCases" yaml:"erroredCases"`
	SkippedTests int `json:"skippedTests" yaml:"skippedTests"`
	FailedTests  int `json:"failedTests" yaml:"failedTests"`
	ErroredTests int `json:"erroredTests" yaml:"erroredTests"`

	// Status is the derived per-implementation outcome.
	Status Status `json:"status" yaml:"status"`
}

// NewSummary builds a Summary document from a parsed report. The version
// argument is the tool version stamped into the document header.
func NewSummary(data *ReportData, version string) (*Summary, error) {
	digest, err := Digest(data)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Dialect:        data.RunMetadata.Dialect,
		HarnessVersion: data.RunMetadata.HarnessVersion,
		Started:        data.RunMetadata.Started,
		DidFailFast:    data.DidFailFast,
		Digest:         digest,
		Implementations: make([]ImplementationSummary, 0,
			len(data.RunMetadata.Implementations)),
	}
	s.Init(header.KindSummary, APIVersion, version)

	ids := make([]string, 0, len(data.Results))
	for id := range data.Results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ir := data.Results[id]
		impl := data.RunMetadata.Implementations[id]
		s.Implementations = append(s.Implementations, ImplementationSummary{
			ID:           id,
			DisplayName:  DisplayName(id),
			Name:         impl.Name,
			Language:     impl.Language,
			Version:      impl.Version,
			ErroredCases: ir.ErroredCases,
			SkippedTests: ir.SkippedTests,
			FailedTests:  ir.FailedTests,
			ErroredTests: ir.ErroredTests,
			Status:       deriveStatus(ir.FailedTests, ir.ErroredTests, ir.ErroredCases, ir.SkippedTests),
		})
	}

	s.Totals = data.Totals()
	s.Status = deriveStatus(s.Totals.FailedTests, s.Totals.ErroredTests,
		s.Totals.ErroredCases, s.Totals.SkippedTests)

	slog.Debug("summary built",
		"dialect", s.Dialect.Short,
		"implementations", len(s.Implementations),
		"totalTests", s.Totals.TotalTests,
		"status", s.Status)

	return s, nil
}

// deriveStatus folds failure-mode counters into a single outcome: any
// failure or error is a fail, skips alone are partial, otherwise pass.
func deriveStatus(failed, errored, erroredCases, skipped int) Status {
	switch {
	case failed > 0 || errored > 0 || erroredCases > 0:
		return StatusFail
	case skipped > 0:
		return StatusPartial
	default:
		return StatusPass
	}
}

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
	"encoding/json"
	"time"

	"github.com/harnesslab/tally/pkg/dialect"
)

// RunMetadata describes a single harness run, extracted from the header
// record. Immutable once constructed.
type RunMetadata struct {
	// Dialect is the JSON Schema dialect the run exercised.
	Dialect dialect.Dialect `json:"dialect" yaml:"dialect"`

	// HarnessVersion is the version of the harness that produced the log
	// (the bowtie_version header field).
	HarnessVersion string `json:"harnessVersion" yaml:"harnessVersion"`

	// Implementations maps implementation id to its descriptor.
	Implementations map[string]Implementation `json:"implementations" yaml:"implementations"`

	// Started is the instant the run began.
	Started time.Time `json:"started" yaml:"started"`

	// Metadata carries the free-form header metadata mapping.
	Metadata map[string]any `json:"metadata" yaml:"metadata"`
}

// Implementation describes one validator under test. The typed fields cover
// the descriptor attributes the harness publishes today; anything it adds
// later lands in Extra instead of being dropped.
type Implementation struct {
	// Name is the implementation's own name, e.g. "go-jsonschema".
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Language is the implementation language, e.g. "go".
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// Version is the implementation version, when reported.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Dialects lists the JSON Schema dialects the implementation supports,
	// resolved from the descriptor's URI list during header extraction.
	Dialects []dialect.Dialect `json:"dialects,omitempty" yaml:"dialects,omitempty"`

	// Homepage, Issues, Source and Documentation are project links.
	Homepage      string `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Issues        string `json:"issues,omitempty" yaml:"issues,omitempty"`
	Source        string `json:"source,omitempty" yaml:"source,omitempty"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`

	// OS, OSVersion and LanguageVersion describe the runtime environment.
	OS              string `json:"os,omitempty" yaml:"os,omitempty"`
	OSVersion       string `json:"osVersion,omitempty" yaml:"osVersion,omitempty"`
	LanguageVersion string `json:"languageVersion,omitempty" yaml:"languageVersion,omitempty"`

	// Extra holds descriptor attributes with no typed field.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`

	// DialectURIs holds the unresolved dialect URI list from the wire form.
	// Header extraction resolves it into Dialects and callers should not
	// rely on it afterward.
	DialectURIs []string `json:"-" yaml:"-"`
}

// knownImplementationFields are the descriptor keys bound to typed fields.
// Every other key is preserved in Extra.
var knownImplementationFields = map[string]struct{}{
	"name":             {},
	"language":         {},
	"version":          {},
	"dialects":         {},
	"homepage":         {},
	"issues":           {},
	"source":           {},
	"documentation":    {},
	"os":               {},
	"os_version":       {},
	"language_version": {},
}

// UnmarshalJSON decodes the raw descriptor shape used in run-log headers,
// where dialects is a list of URI strings. Unrecognized keys are kept in
// Extra rather than silently dropped.
func (i *Implementation) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	get := func(key string, dst any) error {
		raw, ok := fields[key]
		if !ok || isJSONNull(raw) {
			return nil
		}
		return json.Unmarshal(raw, dst)
	}

	if err := get("name", &i.Name); err != nil {
		return err
	}
	if err := get("language", &i.Language); err != nil {
		return err
	}
	if err := get("version", &i.Version); err != nil {
		return err
	}
	if err := get("dialects", &i.DialectURIs); err != nil {
		return err
	}
	if err := get("homepage", &i.Homepage); err != nil {
		return err
	}
	if err := get("issues", &i.Issues); err != nil {
		return err
	}
	if err := get("source", &i.Source); err != nil {
		return err
	}
	if err := get("documentation", &i.Documentation); err != nil {
		return err
	}
	if err := get("os", &i.OS); err != nil {
		return err
	}
	if err := get("os_version", &i.OSVersion); err != nil {
		return err
	}
	if err := get("language_version", &i.LanguageVersion); err != nil {
		return err
	}

	for key, raw := range fields {
		if _, known := knownImplementationFields[key]; known {
			continue
		}
		var val any
		if err := json.Unmarshal(raw, &val); err != nil {
			return err
		}
		if i.Extra == nil {
			i.Extra = make(map[string]any)
		}
		i.Extra[key] = val
	}
	return nil
}

// Case is one test scenario, identified within a run by its sequence number
// rather than by content.
type Case struct {
	// Description names the scenario.
	Description string `json:"description" yaml:"description"`

	// Comment is optional free-form commentary.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Schema is the schema document under test (an object or a boolean).
	Schema any `json:"schema" yaml:"schema"`

	// Registry optionally maps URIs to schemas shared by the case.
	Registry map[string]any `json:"registry,omitempty" yaml:"registry,omitempty"`

	// Tests is the ordered, non-empty list of assertions.
	Tests []Test `json:"tests" yaml:"tests"`
}

// Test is one assertion within a case.
type Test struct {
	// Description names the assertion.
	Description string `json:"description" yaml:"description"`

	// Comment is optional free-form commentary.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	// Instance is the input the implementation validates.
	Instance any `json:"instance" yaml:"instance"`

	// Valid is the expected validity. When absent, validity is not a
	// pass/fail criterion for this test.
	Valid *bool `json:"valid,omitempty" yaml:"valid,omitempty"`
}

// ResultState classifies the outcome of one implementation running one test.
type ResultState string

const (
	// StateSuccessful indicates the observed validity matched expectations.
	StateSuccessful ResultState = "successful"

	// StateFailed indicates the observed validity contradicted the expected one.
	StateFailed ResultState = "failed"

	// StateSkipped indicates the implementation declined the test.
	StateSkipped ResultState = "skipped"

	// StateErrored indicates the implementation raised an error.
	StateErrored ResultState = "errored"
)

// CaseResult is the outcome of running one implementation against one test.
// Exactly one state applies; Valid is meaningful for successful/failed
// results and Message for skipped/errored ones.
type CaseResult struct {
	State   ResultState `json:"state" yaml:"state"`
	Valid   bool        `json:"valid,omitempty" yaml:"valid,omitempty"`
	Message string      `json:"message,omitempty" yaml:"message,omitempty"`
}

func successfulResult(valid bool) CaseResult {
	return CaseResult{State: StateSuccessful, Valid: valid}
}

func failedResult(valid bool) CaseResult {
	return CaseResult{State: StateFailed, Valid: valid}
}

func skippedResult(message string) CaseResult {
	return CaseResult{State: StateSkipped, Message: message}
}

func erroredResult(message string) CaseResult {
	return CaseResult{State: StateErrored, Message: message}
}

// ImplementationResults is the per-implementation aggregate for one run.
// Counters are accumulated incrementally as records are consumed and are
// never recomputed from the result lists.
type ImplementationResults struct {
	// ID is the implementation id from the header roster.
	ID string `json:"id" yaml:"id"`

	// Cases maps case sequence number to the ordered result list, one
	// entry per test in that case.
	Cases map[int64][]CaseResult `json:"cases" yaml:"cases"`

	// ErroredCases counts cases the implementation failed to attempt at all.
	ErroredCases int `json:"erroredCases" yaml:"erroredCases"`

	// SkippedTests counts individual skipped tests.
	SkippedTests int `json:"skippedTests" yaml:"skippedTests"`

	// FailedTests counts tests whose observed validity contradicted the
	// expected one.
	FailedTests int `json:"failedTests" yaml:"failedTests"`

	// ErroredTests counts individual errored tests.
	ErroredTests int `json:"erroredTests" yaml:"erroredTests"`
}

// ReportData is one fully parsed run.
type ReportData struct {
	// RunMetadata is the header extraction result.
	RunMetadata RunMetadata `json:"runMetadata" yaml:"runMetadata"`

	// Cases maps sequence number to case definition.
	Cases map[int64]Case `json:"cases" yaml:"cases"`

	// Results maps implementation id to its aggregate.
	Results map[string]*ImplementationResults `json:"results" yaml:"results"`

	// DidFailFast records whether the run terminated early.
	DidFailFast bool `json:"didFailFast" yaml:"didFailFast"`
}

// Totals are the run-wide counts folded from per-implementation aggregates.
type Totals struct {
	// TotalTests is the number of tests across all registered cases,
	// independent of implementation count.
	TotalTests int `json:"totalTests" yaml:"totalTests"`

	// ErroredCases is the sum of per-implementation errored-case counters.
	ErroredCases int `json:"erroredCases" yaml:"erroredCases"`

	// SkippedTests is the sum of per-implementation skipped-test counters.
	SkippedTests int `json:"skippedTests" yaml:"skippedTests"`

	// FailedTests is the sum of per-implementation failed-test counters.
	FailedTests int `json:"failedTests" yaml:"failedTests"`

	// ErroredTests is the sum of per-implementation errored-test counters.
	ErroredTests int `json:"erroredTests" yaml:"erroredTests"`
}

// Counts are the partial per-implementation totals used by the compliance
// projection: failure modes only, no total and no errored-case count.
type Counts struct {
	FailedTests  int `json:"failedTests" yaml:"failedTests"`
	SkippedTests int `json:"skippedTests" yaml:"skippedTests"`
	ErroredTests int `json:"erroredTests" yaml:"erroredTests"`
}

// isJSONNull reports whether raw is the JSON null literal.
func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

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
	"github.com/harnesslab/tally/pkg/header"
)

// Validation is the strict-validation report for one run log: every decoded
// record checked against the documented wire format, one issue per failing
// record.
type Validation struct {
	header.Header `json:",inline" yaml:",inline"`

	// Source is the path or URI the run log was read from, when known.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Records is the number of decoded records checked.
	Records int `json:"records" yaml:"records"`

	// Valid reports whether every record conformed.
	Valid bool `json:"valid" yaml:"valid"`

	// Issues lists the failing records. Empty when Valid.
	Issues []ValidationIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// NewValidation checks every decoded record against the embedded harness IO
// schema and wraps the outcome in a document envelope. A non-nil error means
// validation itself could not run, not that the log failed it.
func NewValidation(records []Record, source, version string) (*Validation, error) {
	issues, err := ValidateRecords(records)
	if err != nil {
		return nil, err
	}

	v := &Validation{
		Source:  source,
		Records: len(records),
		Valid:   len(issues) == 0,
		Issues:  issues,
	}
	v.Init(header.KindValidation, APIVersion, version)
	return v, nil
}

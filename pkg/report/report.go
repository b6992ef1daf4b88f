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

// Report wraps one fully parsed run in the resource envelope, so it can be
// stored and served whole. Digest is computed once at construction and acts
// as the document's strong validator.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// Source is the path or URI the run log was read from, when known.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Digest is the canonical content address of the parsed report.
	Digest string `json:"digest" yaml:"digest"`

	// Data is the parsed run.
	Data *ReportData `json:"data" yaml:"data"`
}

// NewReport builds the Report document for a parsed run. The version
// argument is the tool version stamped into the document header.
func NewReport(data *ReportData, source, version string) (*Report, error) {
	digest, err := Digest(data)
	if err != nil {
		return nil, err
	}
	r := &Report{
		Source: source,
		Digest: digest,
		Data:   data,
	}
	r.Init(header.KindReport, APIVersion, version)
	return r, nil
}

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

package compliance

import (
	"log/slog"
	"sort"

	"github.com/harnesslab/tally/pkg/header"
	"github.com/harnesslab/tally/pkg/report"
)

// Matrix is the cross-run comparison document: one row per implementation,
// one column per run, each cell holding the partial failure-mode totals for
// that implementation in that run.
type Matrix struct {
	header.Header `json:",inline" yaml:",inline"`

	// Runs lists the run identifiers covered by the matrix, sorted.
	Runs []string `json:"runs" yaml:"runs"`

	// Implementations holds one row per implementation, sorted by id.
	Implementations []Row `json:"implementations" yaml:"implementations"`
}

// Row is one implementation's compliance across runs. The descriptor fields
// come from whichever run first mentions the implementation; descriptors are
// assumed consistent across runs for the same id.
type Row struct {
	// ID is the implementation id from the run header roster.
	ID string `json:"id" yaml:"id"`

	// DisplayName is the compact label derived from the id.
	DisplayName string `json:"displayName" yaml:"displayName"`

	// Name, Language and Version come from the descriptor.
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`

	// LanguageDisplay is the human form of Language.
	LanguageDisplay string `json:"languageDisplay,omitempty" yaml:"languageDisplay,omitempty"`

	// Counts maps run identifier to the implementation's partial totals in
	// that run. An implementation absent from a run has no entry for it.
	Counts map[string]report.Counts `json:"counts" yaml:"counts"`
}

// Project reshapes parsed runs, keyed by an external run identifier such as a
// dialect label, into a per-implementation matrix. Each run contributes the
// failure-mode totals only: failed, skipped and errored test counts, no total
// and no errored-case count. Run ids are walked in sorted order so the first
// run mentioning an implementation, and with it the descriptor a row carries,
// is deterministic.
func Project(runs map[string]*report.ReportData) *Matrix {
	runIDs := make([]string, 0, len(runs))
	for id := range runs {
		runIDs = append(runIDs, id)
	}
	sort.Strings(runIDs)

	rows := make(map[string]*Row)
	for _, runID := range runIDs {
		data := runs[runID]
		if data == nil {
			continue
		}
		for implID, ir := range data.Results {
			row, ok := rows[implID]
			if !ok {
				impl := data.RunMetadata.Implementations[implID]
				row = &Row{
					ID:              implID,
					DisplayName:     report.DisplayName(implID),
					Name:            impl.Name,
					Language:        impl.Language,
					Version:         impl.Version,
					LanguageDisplay: LanguageDisplay(impl.Language),
					Counts:          make(map[string]report.Counts),
				}
				rows[implID] = row
			}
			row.Counts[runID] = ir.Counts()
		}
	}

	implIDs := make([]string, 0, len(rows))
	for id := range rows {
		implIDs = append(implIDs, id)
	}
	sort.Strings(implIDs)

	m := &Matrix{
		Runs:            runIDs,
		Implementations: make([]Row, 0, len(implIDs)),
	}
	for _, id := range implIDs {
		m.Implementations = append(m.Implementations, *rows[id])
	}

	slog.Debug("compliance matrix projected",
		"runs", len(m.Runs),
		"implementations", len(m.Implementations))

	return m
}

// NewMatrix builds the versioned compliance document for parsed runs. The
// version argument is the tool version stamped into the document header.
func NewMatrix(runs map[string]*report.ReportData, version string) *Matrix {
	m := Project(runs)
	m.Init(header.KindComplianceMatrix, report.APIVersion, version)
	return m
}

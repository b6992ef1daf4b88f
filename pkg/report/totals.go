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

// Totals folds the per-implementation aggregates into run-wide counts. The
// fold is pure: it trusts the counters accumulated during the parse and
// never recomputes them from the result lists.
func (d *ReportData) Totals() Totals {
	var t Totals
	for _, c := range d.Cases {
		t.TotalTests += len(c.Tests)
	}
	for _, ir := range d.Results {
		t.ErroredCases += ir.ErroredCases
		t.SkippedTests += ir.SkippedTests
		t.FailedTests += ir.FailedTests
		t.ErroredTests += ir.ErroredTests
	}
	return t
}

// Counts returns the partial totals used by the compliance projection.
func (ir *ImplementationResults) Counts() Counts {
	return Counts{
		FailedTests:  ir.FailedTests,
		SkippedTests: ir.SkippedTests,
		ErroredTests: ir.ErroredTests,
	}
}

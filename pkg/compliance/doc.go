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

// Package compliance projects parsed runs into a cross-run comparison
// matrix.
//
// A run is one parsed report.ReportData keyed by an external identifier,
// typically the dialect label of the run log it came from. The projection
// reduces each implementation's per-run outcome to its failure modes (failed,
// skipped and errored test counts) and inverts the result into one row per
// implementation with one cell per run, so the same implementation can be
// compared across dialects at a glance.
//
// Rows carry the implementation descriptor from whichever run first mentions
// the id, with run ids walked in sorted order to keep the choice
// deterministic. Descriptors are assumed consistent across runs for the same
// id.
package compliance

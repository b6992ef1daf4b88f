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

// Package badge grades implementations into shields.io endpoint payloads.
//
// A badge reads "{dialect} | {percentage}% compliant" where the percentage is
// the share of a run's tests whose outcome matched expectations. Failed,
// errored and skipped tests all count against the grade, and the value is
// floored to one decimal so a near-perfect run never shows as 100%.
//
// The bare Endpoint type matches the shields.io endpoint JSON schema and can
// be served to shields.io directly; Document wraps one implementation's
// badges across runs in the standard resource envelope. Grades come either
// from a parsed run or from a previously saved summary document.
package badge

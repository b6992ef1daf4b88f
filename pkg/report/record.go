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

	"github.com/harnesslab/tally/pkg/errors"
)

// Record is one decoded run-log line: an opaque JSON object keyed by field
// name. Values stay raw until a consumer binds them to a shape.
type Record map[string]json.RawMessage

// RecordKind is the classified shape of a record. The stream carries no
// explicit tag, so the kind is inferred from which fields are present.
type RecordKind int

const (
	// KindUnrecognized matches no known shape.
	KindUnrecognized RecordKind = iota

	// KindCase defines a test case under a sequence number.
	KindCase

	// KindCaughtError reports an implementation erroring on an entire case.
	KindCaughtError

	// KindSkipped reports an implementation skipping an entire case.
	KindSkipped

	// KindResults reports per-test outcomes for one implementation and case.
	KindResults

	// KindEndMarker closes the run and carries the fail-fast flag.
	KindEndMarker
)

// String returns the metric-friendly name of the kind.
func (k RecordKind) String() string {
	switch k {
	case KindCase:
		return "case"
	case KindCaughtError:
		return "caught_error"
	case KindSkipped:
		return "skipped"
	case KindResults:
		return "results"
	case KindEndMarker:
		return "end_marker"
	default:
		return "unrecognized"
	}
}

// Kind classifies the record by field presence. Precedence follows the log
// producer's emit order: case, caught error, skipped, results, end marker.
// Classification happens in one place so a record can never satisfy two
// shapes at once downstream.
func (r Record) Kind() RecordKind {
	_, hasImpl := r["implementation"]
	switch {
	case r.has("case"):
		return KindCase
	case hasImpl && r.has("caught"):
		return KindCaughtError
	case hasImpl && r.has("skipped"):
		return KindSkipped
	case hasImpl && r.has("results"):
		return KindResults
	case r.has("did_fail_fast") && !hasImpl:
		return KindEndMarker
	default:
		return KindUnrecognized
	}
}

func (r Record) has(field string) bool {
	_, ok := r[field]
	return ok
}

// Seq returns the record's case sequence number.
func (r Record) Seq() (int64, error) {
	raw, ok := r["seq"]
	if !ok {
		return 0, errors.New(errors.ErrCodeMalformedRecord, "record is missing seq")
	}
	var seq int64
	if err := json.Unmarshal(raw, &seq); err != nil || isJSONNull(raw) {
		return 0, errors.Wrap(errors.ErrCodeMalformedRecord, "record seq is not an integer", err)
	}
	return seq, nil
}

// implementationID returns the record's implementation id.
func (r Record) implementationID() (string, error) {
	raw, ok := r["implementation"]
	if !ok {
		return "", errors.New(errors.ErrCodeMalformedRecord, "record is missing implementation")
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil || isJSONNull(raw) {
		return "", errors.Wrap(errors.ErrCodeMalformedRecord, "record implementation is not a string", err)
	}
	return id, nil
}

// stringField returns the value of an optional string field. A JSON null is
// treated the same as a present empty string, distinct from an absent field.
func (r Record) stringField(field string) (value string, present bool, err error) {
	raw, ok := r[field]
	if !ok {
		return "", false, nil
	}
	if isJSONNull(raw) {
		return "", true, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, errors.WrapWithContext(errors.ErrCodeMalformedRecord,
			"record field is not a string", err, map[string]any{"field": field})
	}
	return s, true, nil
}

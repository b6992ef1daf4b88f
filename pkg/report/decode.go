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
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/harnesslab/tally/pkg/errors"
)

// Scanner buffer sizing: run logs routinely carry multi-megabyte case
// records (full schema documents inline), so the line buffer grows from
// 64KB up to 10MB before a line is considered oversized.
const (
	scanBufferInitial = 64 * 1024
	scanBufferMax     = 10 * 1024 * 1024
)

// DecodeRecords reads a newline-delimited run log into an ordered record
// sequence. Blank lines are skipped, trailing CR from CRLF line endings is
// trimmed, and every remaining line must be a JSON object. The function has
// no side effects and is safe to call repeatedly on the same input.
func DecodeRecords(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, scanBufferInitial), scanBufferMax)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeMalformedRecord,
				"decoding run-log record", err, map[string]any{"line": line})
		}
		if rec == nil {
			// A bare JSON null decodes without error but is not a record.
			return nil, errors.NewWithContext(errors.ErrCodeMalformedRecord,
				"run-log record is not an object", map[string]any{"line": line})
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedRecord, "reading run log", err)
	}
	return records, nil
}

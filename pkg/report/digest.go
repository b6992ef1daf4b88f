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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/gowebpki/jcs"

	"github.com/harnesslab/tally/pkg/errors"
)

// digestPrefix names the hash algorithm, OCI-style.
const digestPrefix = "sha256:"

// Digest returns the content address of a parsed report: the sha256 of its
// RFC 8785 (JCS) canonical JSON form. Two structurally equal reports always
// digest identically, which makes the value usable as an HTTP ETag and as a
// cheap idempotence check across repeated parses of the same log.
func Digest(data *ReportData) (string, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "encoding report for digest", err)
	}
	canonical, err := jcs.Transform(encoded)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "canonicalizing report", err)
	}
	sum := sha256.Sum256(canonical)
	return digestPrefix + hex.EncodeToString(sum[:]), nil
}

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
	"strings"

	"github.com/distribution/reference"
)

// DisplayName derives a compact label from an implementation id. Harness
// rosters key implementations by the container image reference they run as
// (e.g. "ghcr.io/harness-suite/go-jsonschema"), so the final repository path
// component is the implementation's common name. Ids that do not parse as
// image references pass through unchanged.
func DisplayName(id string) string {
	named, err := reference.ParseNormalizedNamed(id)
	if err != nil {
		return id
	}
	path := reference.Path(named)
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if path == "" {
		return id
	}
	return path
}

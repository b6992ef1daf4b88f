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
	"net/http"

	tallyerrors "github.com/harnesslab/tally/pkg/errors"
	"github.com/harnesslab/tally/pkg/report"
	"github.com/harnesslab/tally/pkg/serializer"
	"github.com/harnesslab/tally/pkg/server"
)

// RunSource provides the parsed runs the compliance projection consumes.
// The report store satisfies it.
type RunSource interface {
	Runs() map[string]*report.ReportData
}

// Handler serves the cross-run compliance matrix.
type Handler struct {
	source  RunSource
	version string
}

// NewHandler creates a compliance handler over the given run source. The
// version string is stamped into every document header.
func NewHandler(source RunSource, version string) *Handler {
	return &Handler{
		source:  source,
		version: version,
	}
}

// HandleCompliance serves GET requests with the compliance matrix projected
// from the current run set. An empty run set yields an empty matrix, not an
// error: a store with nothing loaded is a valid state.
func (h *Handler) HandleCompliance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, tallyerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodGet},
			})
		return
	}

	m := NewMatrix(h.source.Runs(), h.version)
	serializer.RespondJSON(w, http.StatusOK, m)
}

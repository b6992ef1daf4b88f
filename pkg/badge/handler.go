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

package badge

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/harnesslab/tally/pkg/defaults"
	tallyerrors "github.com/harnesslab/tally/pkg/errors"
	"github.com/harnesslab/tally/pkg/report"
	"github.com/harnesslab/tally/pkg/serializer"
	"github.com/harnesslab/tally/pkg/server"
)

// RoutePrefix is the path prefix the badge handler is mounted under.
const RoutePrefix = "/v1/badges/"

// RunSource provides the parsed runs badges are graded from. The report
// store satisfies it.
type RunSource interface {
	Runs() map[string]*report.ReportData
}

// Handler serves shields.io badges for stored runs.
type Handler struct {
	source  RunSource
	version string
}

// NewHandler creates a badge handler over the given run source. The version
// string is stamped into document responses.
func NewHandler(source RunSource, version string) *Handler {
	return &Handler{
		source:  source,
		version: version,
	}
}

// HandleBadges serves GET requests under /v1/badges/{implementation}. The
// implementation may be named by its full id or by its display name. Without
// a query parameter the response is the Document covering every run that
// mentions the implementation; with ?run={id} it is the bare shields
// endpoint payload for that run, consumable by shields.io directly. Badge
// responses are cacheable: grades only move when the underlying run logs do.
func (h *Handler) HandleBadges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, tallyerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodGet},
			})
		return
	}

	name := strings.TrimPrefix(r.URL.Path, RoutePrefix)
	name = strings.Trim(name, "/")
	if name == "" {
		server.WriteError(w, r, http.StatusBadRequest, tallyerrors.ErrCodeInvalidRequest,
			"Implementation name required", false, nil)
		return
	}

	runs := h.source.Runs()
	implID, ok := ResolveImplementation(runs, name)
	if !ok {
		server.WriteError(w, r, http.StatusNotFound, tallyerrors.ErrCodeNotFound,
			"Implementation not found", false, map[string]any{"implementation": name})
		return
	}

	if runID := r.URL.Query().Get("run"); runID != "" {
		data, ok := runs[runID]
		if !ok || data == nil {
			server.WriteError(w, r, http.StatusNotFound, tallyerrors.ErrCodeNotFound,
				"Run not found", false, map[string]any{"run": runID})
			return
		}
		ep, err := New(data, implID)
		if err != nil {
			server.WriteErrorFromErr(w, r, err, "Failed to build badge", nil)
			return
		}
		setBadgeCacheHeader(w)
		serializer.RespondJSON(w, http.StatusOK, ep)
		return
	}

	doc, err := NewDocument(runs, implID, h.version)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to build badges", nil)
		return
	}
	setBadgeCacheHeader(w)
	serializer.RespondJSON(w, http.StatusOK, doc)
}

// ResolveImplementation finds the full implementation id behind a request
// name, which may be the id itself or its display name. Display names are
// assumed unique across the roster; the smallest matching id wins if they
// are not.
func ResolveImplementation(runs map[string]*report.ReportData, name string) (string, bool) {
	var match string
	for _, data := range runs {
		if data == nil {
			continue
		}
		for id := range data.Results {
			if id == name {
				return id, true
			}
			if report.DisplayName(id) == name && (match == "" || id < match) {
				match = id
			}
		}
	}
	return match, match != ""
}

func setBadgeCacheHeader(w http.ResponseWriter) {
	w.Header().Set("Cache-Control",
		fmt.Sprintf("public, max-age=%d", int(defaults.BadgeCacheTTL.Seconds())))
}

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

package store

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	tallyerrors "github.com/harnesslab/tally/pkg/errors"
	"github.com/harnesslab/tally/pkg/header"
	"github.com/harnesslab/tally/pkg/report"
	"github.com/harnesslab/tally/pkg/serializer"
	"github.com/harnesslab/tally/pkg/server"
)

// RoutePrefix is the path prefix report routes are mounted under.
const RoutePrefix = "/v1/reports"

// RunInfo is one row in the report listing: enough to pick a run without
// fetching its full document.
type RunInfo struct {
	ID              string        `json:"id" yaml:"id"`
	Dialect         string        `json:"dialect" yaml:"dialect"`
	HarnessVersion  string        `json:"harnessVersion" yaml:"harnessVersion"`
	Started         time.Time     `json:"started" yaml:"started"`
	Implementations int           `json:"implementations" yaml:"implementations"`
	Cases           int           `json:"cases" yaml:"cases"`
	Totals          report.Totals `json:"totals" yaml:"totals"`
	Digest          string        `json:"digest" yaml:"digest"`
}

// Listing is the report index document.
type Listing struct {
	header.Header `json:",inline" yaml:",inline"`

	// Runs holds one row per stored run, sorted by id.
	Runs []RunInfo `json:"runs" yaml:"runs"`
}

// Handler serves stored reports.
type Handler struct {
	store   *Store
	version string
}

// NewHandler creates a report handler over the given store. The version
// string is stamped into listing documents.
func NewHandler(store *Store, version string) *Handler {
	return &Handler{
		store:   store,
		version: version,
	}
}

// HandleReports serves GET requests under /v1/reports. The bare path returns
// the listing; /v1/reports/{id} returns one run's full document. Single-run
// responses carry the report digest as a strong ETag and honor
// If-None-Match, so pollers pay for a body only when the run actually
// changed.
func (h *Handler) HandleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, tallyerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodGet},
			})
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, RoutePrefix), "/")
	if id == "" {
		h.handleList(w, r)
		return
	}
	h.handleGet(w, r, id)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	listing := &Listing{
		Runs: make([]RunInfo, 0, h.store.Len()),
	}
	listing.Init(header.KindReportList, report.APIVersion, h.version)

	for _, id := range h.store.IDs() {
		doc, ok := h.store.Get(id)
		if !ok {
			continue
		}
		data := doc.Data
		listing.Runs = append(listing.Runs, RunInfo{
			ID:              id,
			Dialect:         data.RunMetadata.Dialect.Short,
			HarnessVersion:  data.RunMetadata.HarnessVersion,
			Started:         data.RunMetadata.Started,
			Implementations: len(data.RunMetadata.Implementations),
			Cases:           len(data.Cases),
			Totals:          data.Totals(),
			Digest:          doc.Digest,
		})
	}

	serializer.RespondJSON(w, http.StatusOK, listing)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	doc, ok := h.store.Get(id)
	if !ok {
		server.WriteError(w, r, http.StatusNotFound, tallyerrors.ErrCodeNotFound,
			"Report not found", false, map[string]any{"id": id})
		return
	}

	etag := fmt.Sprintf("%q", doc.Digest)
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, doc)
}

// etagMatches reports whether an If-None-Match header value matches the
// given quoted entity tag. Weak comparison is fine for a digest-backed tag.
func etagMatches(headerValue, etag string) bool {
	if headerValue == "" {
		return false
	}
	if headerValue == "*" {
		return true
	}
	for _, candidate := range strings.Split(headerValue, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}

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
	"context"
	"fmt"
	"net/http"

	"github.com/harnesslab/tally/pkg/defaults"
	tallyerrors "github.com/harnesslab/tally/pkg/errors"
	"github.com/harnesslab/tally/pkg/serializer"
	"github.com/harnesslab/tally/pkg/server"
)

// SummaryHandler turns uploaded run logs into Summary documents. The version
// string is stamped into every document header.
type SummaryHandler struct {
	parser  *Parser
	version string
}

// NewSummaryHandler creates a handler backed by the given parser. A nil
// parser gets the default configuration.
func NewSummaryHandler(parser *Parser, version string) *SummaryHandler {
	if parser == nil {
		parser = New()
	}
	return &SummaryHandler{
		parser:  parser,
		version: version,
	}
}

// HandleSummary processes run-log uploads. It accepts POST requests whose
// body is a newline-delimited JSON run log and responds with the Summary
// document for the parsed run. Parse failures surface as structured errors
// with the offending line or field in the details.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	// Add request-scoped timeout
	ctx, cancel := context.WithTimeout(r.Context(), defaults.SummaryHandlerTimeout)
	defer cancel()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, tallyerrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodPost},
			})
		return
	}
	defer func() {
		if r.Body != nil {
			r.Body.Close()
		}
	}()

	data, err := h.parser.ParseReader(ctx, r.Body)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to parse run log", nil)
		return
	}

	summary, err := NewSummary(data, h.version)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to build summary", nil)
		return
	}

	// The digest doubles as a strong validator for the parsed content.
	w.Header().Set("ETag", fmt.Sprintf("%q", summary.Digest))

	serializer.RespondJSON(w, http.StatusOK, summary)
}

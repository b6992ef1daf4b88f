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
	"log/slog"
	"time"

	"github.com/harnesslab/tally/pkg/dialect"
	"github.com/harnesslab/tally/pkg/errors"
	"github.com/harnesslab/tally/pkg/version"
)

// verifiedHarnessVersion is the newest harness release this parser has been
// verified against. Logs from newer harnesses still parse; a warning notes
// the gap so format drift is visible before it bites.
const verifiedHarnessVersion = "1.35.0"

// parseRunMetadata interprets the first record of a run log. Every required
// header field is validated before use; absence or a wrong shape is a
// MALFORMED_HEADER error, never a silent default. Extraction happens exactly
// once per run.
func parseRunMetadata(rec Record, resolver dialect.Resolver) (*RunMetadata, error) {
	dialectURI, err := headerString(rec, "dialect")
	if err != nil {
		return nil, err
	}
	d, err := resolver.Resolve(dialectURI)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeMalformedHeader,
			"resolving header dialect", err, map[string]any{"dialect": dialectURI})
	}

	harnessVersion, err := headerString(rec, "bowtie_version")
	if err != nil {
		return nil, err
	}
	warnIfNewerHarness(harnessVersion)

	started, err := headerStarted(rec)
	if err != nil {
		return nil, err
	}

	metadata, err := headerMetadata(rec)
	if err != nil {
		return nil, err
	}

	implementations, err := headerImplementations(rec, resolver)
	if err != nil {
		return nil, err
	}

	return &RunMetadata{
		Dialect:         d,
		HarnessVersion:  harnessVersion,
		Implementations: implementations,
		Started:         started,
		Metadata:        metadata,
	}, nil
}

// headerString extracts a required string header field.
func headerString(rec Record, field string) (string, error) {
	raw, ok := rec[field]
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeMalformedHeader,
			"required header field is missing", map[string]any{"field": field})
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || isJSONNull(raw) {
		return "", errors.WrapWithContext(errors.ErrCodeMalformedHeader,
			"header field is not a string", err, map[string]any{"field": field})
	}
	return s, nil
}

// headerStarted extracts the required numeric epoch start instant. The wire
// carries fractional seconds, so the value decodes as a float before turning
// into a time.Time.
func headerStarted(rec Record) (time.Time, error) {
	raw, ok := rec["started"]
	if !ok {
		return time.Time{}, errors.NewWithContext(errors.ErrCodeMalformedHeader,
			"required header field is missing", map[string]any{"field": "started"})
	}
	var epoch float64
	if err := json.Unmarshal(raw, &epoch); err != nil || isJSONNull(raw) {
		return time.Time{}, errors.WrapWithContext(errors.ErrCodeMalformedHeader,
			"header started is not a numeric timestamp", err, map[string]any{"field": "started"})
	}
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC(), nil
}

// headerMetadata extracts the required open metadata mapping.
func headerMetadata(rec Record) (map[string]any, error) {
	raw, ok := rec["metadata"]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeMalformedHeader,
			"required header field is missing", map[string]any{"field": "metadata"})
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return nil, errors.WrapWithContext(errors.ErrCodeMalformedHeader,
			"header metadata is not a mapping", err, map[string]any{"field": "metadata"})
	}
	return m, nil
}

// headerImplementations extracts the implementation roster, resolving each
// descriptor's dialect URI list through the resolver.
func headerImplementations(rec Record, resolver dialect.Resolver) (map[string]Implementation, error) {
	raw, ok := rec["implementations"]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeMalformedHeader,
			"required header field is missing", map[string]any{"field": "implementations"})
	}
	var descriptors map[string]json.RawMessage
	if err := json.Unmarshal(raw, &descriptors); err != nil || descriptors == nil {
		return nil, errors.WrapWithContext(errors.ErrCodeMalformedHeader,
			"header implementations is not a mapping", err, map[string]any{"field": "implementations"})
	}

	implementations := make(map[string]Implementation, len(descriptors))
	for id, desc := range descriptors {
		impl, err := decodeImplementation(desc, resolver)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeMalformedHeader,
				"decoding implementation descriptor", err, map[string]any{"implementation": id})
		}
		implementations[id] = impl
	}
	return implementations, nil
}

// decodeImplementation decodes one raw descriptor and resolves its dialect
// URIs into dialect values.
func decodeImplementation(raw json.RawMessage, resolver dialect.Resolver) (Implementation, error) {
	if isJSONNull(raw) {
		return Implementation{}, errors.New(errors.ErrCodeMalformedHeader,
			"implementation descriptor is not an object")
	}
	var impl Implementation
	if err := json.Unmarshal(raw, &impl); err != nil {
		return Implementation{}, err
	}
	if len(impl.DialectURIs) > 0 {
		impl.Dialects = make([]dialect.Dialect, 0, len(impl.DialectURIs))
		for _, uri := range impl.DialectURIs {
			d, err := resolver.Resolve(uri)
			if err != nil {
				return Implementation{}, err
			}
			impl.Dialects = append(impl.Dialects, d)
		}
		impl.DialectURIs = nil
	}
	return impl, nil
}

// warnIfNewerHarness logs an advisory when the log was produced by a harness
// newer than this parser has been verified against. The version string is
// free-form, so unparseable values only get a debug note.
func warnIfNewerHarness(harnessVersion string) {
	v, err := version.ParseVersion(harnessVersion)
	if err != nil {
		slog.Debug("harness version is not semver", "version", harnessVersion)
		return
	}
	verified := version.MustParseVersion(verifiedHarnessVersion)
	if v.IsNewer(verified) {
		slog.Warn("run log produced by a newer harness than this parser was verified against",
			"harness", harnessVersion,
			"verified", verifiedHarnessVersion)
	}
}

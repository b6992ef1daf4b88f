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

// Package dialect resolves JSON Schema dialect URIs into display metadata.
//
// Run logs identify the dialect under test by its canonical URI. This package
// maps the published dialect URIs to human-facing names and keeps forward
// compatibility by synthesizing metadata for URIs it has never seen.
package dialect

import (
	"sort"
	"strings"

	"github.com/harnesslab/tally/pkg/errors"
)

// Canonical URIs of the published JSON Schema dialects.
const (
	Draft202012URI = "https://json-schema.org/draft/2020-12/schema"
	Draft201909URI = "https://json-schema.org/draft/2019-09/schema"
	Draft7URI      = "http://json-schema.org/draft-07/schema#"
	Draft6URI      = "http://json-schema.org/draft-06/schema#"
	Draft4URI      = "http://json-schema.org/draft-04/schema#"
	Draft3URI      = "http://json-schema.org/draft-03/schema#"
)

// Dialect describes a JSON Schema dialect.
type Dialect struct {
	// URI is the canonical identifier as it appears in run logs.
	URI string `json:"uri" yaml:"uri"`

	// Name is the human-facing name, e.g. "Draft 2020-12".
	Name string `json:"name" yaml:"name"`

	// Short is the compact form used in labels and file stems,
	// e.g. "2020-12" or "draft7".
	Short string `json:"short" yaml:"short"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`
}

// Resolver maps a dialect URI to its metadata.
type Resolver interface {
	Resolve(uri string) (Dialect, error)
}

// Registry is the default Resolver. It knows the published dialects and
// synthesizes metadata for unknown URIs rather than rejecting them, so logs
// produced against future dialects still parse.
type Registry struct {
	known map[string]Dialect
}

// NewRegistry creates a Registry pre-populated with the published dialects.
func NewRegistry() *Registry {
	known := make(map[string]Dialect)
	for _, d := range []Dialect{
		{URI: Draft202012URI, Name: "Draft 2020-12", Short: "2020-12", Year: 2020},
		{URI: Draft201909URI, Name: "Draft 2019-09", Short: "2019-09", Year: 2019},
		{URI: Draft7URI, Name: "Draft 7", Short: "draft7", Year: 2017},
		{URI: Draft6URI, Name: "Draft 6", Short: "draft6", Year: 2017},
		{URI: Draft4URI, Name: "Draft 4", Short: "draft4", Year: 2013},
		{URI: Draft3URI, Name: "Draft 3", Short: "draft3", Year: 2010},
	} {
		known[d.URI] = d
	}
	return &Registry{known: known}
}

// Resolve returns the metadata for uri. Unknown URIs yield a synthesized
// Dialect with a short name derived from the URI path. An empty URI is an
// error.
func (r *Registry) Resolve(uri string) (Dialect, error) {
	if strings.TrimSpace(uri) == "" {
		return Dialect{}, errors.New(errors.ErrCodeInvalidRequest, "dialect URI is empty")
	}
	if d, ok := r.known[uri]; ok {
		return d, nil
	}
	short := shortFromURI(uri)
	return Dialect{
		URI:   uri,
		Name:  short,
		Short: short,
	}, nil
}

// Known returns the registered dialects, newest first.
func (r *Registry) Known() []Dialect {
	out := make([]Dialect, 0, len(r.known))
	for _, d := range r.known {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Short > out[j].Short
	})
	return out
}

// shortFromURI derives a compact label from an unrecognized dialect URI by
// taking the last informative path segment.
func shortFromURI(uri string) string {
	s := strings.TrimSuffix(uri, "#")
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimSuffix(s, "/")

	segments := strings.Split(s, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg == "" || seg == "schema" {
			continue
		}
		return seg
	}
	return s
}

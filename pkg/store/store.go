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
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/harnesslab/tally/pkg/defaults"
	tallyerrors "github.com/harnesslab/tally/pkg/errors"
	"github.com/harnesslab/tally/pkg/report"
)

// runLogSuffix is the file extension run logs are recognized by.
const runLogSuffix = ".jsonl"

// entry pairs a parsed run with its pre-built document form. The document
// carries the digest, computed once at load time rather than per request.
type entry struct {
	data *report.ReportData
	doc  *report.Report
}

// Store holds the parsed runs of one reports directory, keyed by run id (the
// run log's file stem, conventionally a dialect label). Contents live in
// memory only and are replaced wholesale by Load.
type Store struct {
	dir     string
	parser  *report.Parser
	version string

	mu   sync.RWMutex
	runs map[string]entry
}

// Option is a functional option for configuring Store instances.
type Option func(*Store)

// WithParser returns an Option that sets the parser run logs are parsed
// with.
func WithParser(p *report.Parser) Option {
	return func(s *Store) {
		s.parser = p
	}
}

// WithVersion returns an Option that sets the tool version stamped into
// stored report documents.
func WithVersion(version string) Option {
	return func(s *Store) {
		s.version = version
	}
}

// New creates a store over the given directory. Nothing is read until Load.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		parser: report.New(),
		runs:   make(map[string]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Load parses every run log in the directory and replaces the current run
// set with the result. Run logs are parsed in parallel, one goroutine per
// file; runs are independent, so the per-run aggregates never share state. A
// missing directory is an empty store, not an error, and a log that fails to
// parse is skipped with an error logged so one corrupt upload cannot take
// the whole directory offline. Cancellation aborts the load.
func (s *Store) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.StoreLoadTimeout)
	defer cancel()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("reports directory does not exist, starting empty", "dir", s.dir)
			s.replace(make(map[string]entry))
			return nil
		}
		return tallyerrors.WrapWithContext(tallyerrors.ErrCodeInternal,
			"reading reports directory", err, map[string]any{"dir": s.dir})
	}

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	runs := make(map[string]entry)
	skipped := 0

	for _, dirEntry := range entries {
		name := dirEntry.Name()
		if dirEntry.IsDir() || !strings.HasSuffix(name, runLogSuffix) {
			continue
		}
		g.Go(func() error {
			e, err := s.loadFile(gctx, name)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.Error("skipping unparseable run log", "file", name, "error", err)
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			runs[runID(name)] = e
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.replace(runs)
	slog.Info("report store loaded",
		"dir", s.dir,
		"runs", len(runs),
		"skipped", skipped)
	return nil
}

// loadFile parses one run log and builds its document form.
func (s *Store) loadFile(ctx context.Context, name string) (entry, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return entry{}, tallyerrors.Wrap(tallyerrors.ErrCodeInternal, "opening run log", err)
	}
	defer f.Close()

	data, err := s.parser.ParseReader(ctx, f)
	if err != nil {
		return entry{}, err
	}
	doc, err := report.NewReport(data, path, s.version)
	if err != nil {
		return entry{}, err
	}
	return entry{data: data, doc: doc}, nil
}

// replace swaps in a freshly loaded run set.
func (s *Store) replace(runs map[string]entry) {
	s.mu.Lock()
	s.runs = runs
	s.mu.Unlock()
	storeRuns.Set(float64(len(runs)))
}

// Runs returns a snapshot of the current run set. The snapshot map is the
// caller's to keep; the parsed runs themselves are shared and must not be
// mutated.
func (s *Store) Runs() map[string]*report.ReportData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*report.ReportData, len(s.runs))
	for id, e := range s.runs {
		out[id] = e.data
	}
	return out
}

// Get returns one stored report document by run id.
func (s *Store) Get(id string) (*report.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.runs[id]
	if !ok {
		return nil, false
	}
	return e.doc, true
}

// IDs returns the sorted run identifiers currently held.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of runs currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// runID derives the run identifier from a run log file name: the file stem,
// conventionally the dialect label the run exercised.
func runID(name string) string {
	return strings.TrimSuffix(filepath.Base(name), runLogSuffix)
}

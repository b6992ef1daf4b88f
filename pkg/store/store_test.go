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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harnesslab/tally/pkg/header"
)

// sampleLog is a complete two-case, two-implementation run.
const sampleLog = `{"dialect": "https://json-schema.org/draft/2020-12/schema", "bowtie_version": "1.35.0", "implementations": {"ghcr.io/harness-suite/impl-a": {"name": "impl-a", "language": "go", "version": "1.0.0", "dialects": ["https://json-schema.org/draft/2020-12/schema"]}, "ghcr.io/harness-suite/impl-b": {"name": "impl-b", "language": "rust", "version": "2.1.0", "dialects": ["https://json-schema.org/draft/2020-12/schema"]}}, "started": 1756000000.5, "metadata": {}}
{"seq": 1, "case": {"description": "type keyword", "schema": {"type": "integer"}, "tests": [{"description": "an integer", "instance": 12, "valid": true}, {"description": "a string", "instance": "x", "valid": false}]}}
{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": true}, {"valid": false}]}
{"seq": 1, "implementation": "ghcr.io/harness-suite/impl-b", "skipped": true, "message": "not supported"}
{"seq": 2, "case": {"description": "enum keyword", "schema": {"enum": [1, 2]}, "tests": [{"description": "member", "instance": 1, "valid": true}]}}
{"seq": 2, "implementation": "ghcr.io/harness-suite/impl-a", "results": [{"valid": false}]}
{"seq": 2, "implementation": "ghcr.io/harness-suite/impl-b", "caught": true, "context": {"message": "panic"}}
{"did_fail_fast": false}
`

// writeRunLog drops a run log into dir under the given file name.
func writeRunLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// loadedStore builds a store over dir and loads it.
func loadedStore(t *testing.T, dir string, opts ...Option) *Store {
	t.Helper()
	s := New(dir, opts...)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeRunLog(t, dir, "draft2020.jsonl", sampleLog)
	writeRunLog(t, dir, "draft7.jsonl", sampleLog)

	s := loadedStore(t, dir)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"draft2020", "draft7"}, s.IDs())
	assert.Equal(t, dir, s.Dir())
}

func TestLoadMissingDirectory(t *testing.T) {
	s := loadedStore(t, filepath.Join(t.TempDir(), "no-such-dir"))
	assert.Zero(t, s.Len())
	assert.Empty(t, s.IDs())
}

func TestLoadSkipsUnparseable(t *testing.T) {
	dir := t.TempDir()
	writeRunLog(t, dir, "good.jsonl", sampleLog)
	writeRunLog(t, dir, "bad.jsonl", "{broken\n")

	// One corrupt upload must not take the directory offline.
	s := loadedStore(t, dir)
	assert.Equal(t, []string{"good"}, s.IDs())
}

func TestLoadIgnoresNonRunLogs(t *testing.T) {
	dir := t.TempDir()
	writeRunLog(t, dir, "run.jsonl", sampleLog)
	writeRunLog(t, dir, "notes.txt", "not a run log")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.jsonl"), 0o750))

	s := loadedStore(t, dir)
	assert.Equal(t, []string{"run"}, s.IDs())
}

func TestLoadReplacesPrevious(t *testing.T) {
	dir := t.TempDir()
	old := writeRunLog(t, dir, "old.jsonl", sampleLog)

	s := loadedStore(t, dir)
	require.Equal(t, []string{"old"}, s.IDs())

	require.NoError(t, os.Remove(old))
	writeRunLog(t, dir, "new.jsonl", sampleLog)
	require.NoError(t, s.Load(context.Background()))

	// Reload swaps the whole view; removed runs do not linger.
	assert.Equal(t, []string{"new"}, s.IDs())
}

func TestGet(t *testing.T) {
	dir := t.TempDir()
	path := writeRunLog(t, dir, "draft2020.jsonl", sampleLog)

	s := loadedStore(t, dir, WithVersion("test"))

	doc, ok := s.Get("draft2020")
	require.True(t, ok)
	assert.Equal(t, header.KindReport, doc.Kind)
	assert.Equal(t, "test", doc.Metadata["version"])
	assert.Equal(t, path, doc.Source)
	assert.Contains(t, doc.Digest, "sha256:")

	require.NotNil(t, doc.Data)
	totals := doc.Data.Totals()
	assert.Equal(t, 3, totals.TotalTests)
	assert.Equal(t, 1, totals.FailedTests)
}

func TestGetUnknown(t *testing.T) {
	s := loadedStore(t, t.TempDir())
	doc, ok := s.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, doc)
}

func TestRunsSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeRunLog(t, dir, "run.jsonl", sampleLog)

	s := loadedStore(t, dir)
	runs := s.Runs()
	require.Len(t, runs, 1)

	// Callers get a copy; mutating it leaves the store intact.
	delete(runs, "run")
	assert.Equal(t, 1, s.Len())
}

func TestRunIDKeepsInnerDots(t *testing.T) {
	dir := t.TempDir()
	writeRunLog(t, dir, "draft2020.ordered.jsonl", sampleLog)

	s := loadedStore(t, dir)
	assert.Equal(t, []string{"draft2020.ordered"}, s.IDs())
}

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

package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harnesslab/tally/pkg/badge"
	"github.com/harnesslab/tally/pkg/header"
)

func TestBadgeCommandDocument(t *testing.T) {
	dir := t.TempDir()
	writeRunLog(t, dir, "draft2020.jsonl", sampleLog)
	outPath := filepath.Join(t.TempDir(), "badges.json")

	err := badgeCmd().Run(context.Background(),
		[]string{"badge", "--implementation", "impl-a", "--dir", dir, "--output", outPath})
	if err != nil {
		t.Fatalf("badge command failed: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}

	var doc badge.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("failed to decode badge document: %v", err)
	}

	if doc.Kind != header.KindBadge {
		t.Errorf("expected kind %q, got %q", header.KindBadge, doc.Kind)
	}
	if doc.Implementation != "ghcr.io/harness-suite/impl-a" {
		t.Errorf("expected display name resolved to the full id, got %q", doc.Implementation)
	}
	if doc.DisplayName != "impl-a" {
		t.Errorf("expected display name impl-a, got %q", doc.DisplayName)
	}

	ep, ok := doc.Badges["draft2020"]
	if !ok {
		t.Fatalf("expected a badge for run draft2020, got %v", doc.Badges)
	}
	if ep.Label != "2020-12" {
		t.Errorf("expected label 2020-12, got %q", ep.Label)
	}
	if ep.Message != "66.6% compliant" {
		t.Errorf("expected message floored to one decimal, got %q", ep.Message)
	}
	if ep.Color != "yellow" {
		t.Errorf("expected color yellow, got %q", ep.Color)
	}
}

func TestBadgeCommandSingleRun(t *testing.T) {
	dir := t.TempDir()
	writeRunLog(t, dir, "draft2020.jsonl", sampleLog)
	outPath := filepath.Join(t.TempDir(), "badge.json")

	err := badgeCmd().Run(context.Background(),
		[]string{"badge", "-i", "impl-b", "--run", "draft2020", "--dir", dir, "-o", outPath})
	if err != nil {
		t.Fatalf("badge command failed: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}

	// A single-run badge is the bare shields.io payload, no envelope.
	var ep badge.Endpoint
	if err := json.Unmarshal(content, &ep); err != nil {
		t.Fatalf("failed to decode endpoint: %v", err)
	}
	if ep.SchemaVersion != 1 {
		t.Errorf("expected schema version 1, got %d", ep.SchemaVersion)
	}
	if ep.Label != "2020-12" {
		t.Errorf("expected label 2020-12, got %q", ep.Label)
	}
	if ep.Message != "0% compliant" {
		t.Errorf("expected message 0%% compliant, got %q", ep.Message)
	}
	if ep.Color != "red" {
		t.Errorf("expected color red, got %q", ep.Color)
	}
}

func TestBadgeCommandUnknownImplementation(t *testing.T) {
	dir := t.TempDir()
	writeRunLog(t, dir, "draft2020.jsonl", sampleLog)

	err := badgeCmd().Run(context.Background(),
		[]string{"badge", "--implementation", "impl-z", "--dir", dir})
	if err == nil {
		t.Error("expected error for unknown implementation")
	}
}

func TestBadgeCommandUnknownRun(t *testing.T) {
	dir := t.TempDir()
	writeRunLog(t, dir, "draft2020.jsonl", sampleLog)

	err := badgeCmd().Run(context.Background(),
		[]string{"badge", "-i", "impl-a", "--run", "draft7", "--dir", dir})
	if err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestBadgeCommandFromSummary(t *testing.T) {
	logPath := writeRunLog(t, t.TempDir(), "draft2020.jsonl", sampleLog)
	summaryPath := filepath.Join(t.TempDir(), "summary.json")

	err := summaryCmd().Run(context.Background(),
		[]string{"summary", "--log", logPath, "--output", summaryPath})
	if err != nil {
		t.Fatalf("summary command failed: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "badge.json")
	err = badgeCmd().Run(context.Background(),
		[]string{"badge", "-i", "impl-a", "--summary", summaryPath, "-o", outPath})
	if err != nil {
		t.Fatalf("badge command failed: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}

	// Grading the saved summary yields the same bare payload as grading
	// the run it came from.
	var ep badge.Endpoint
	if err := json.Unmarshal(content, &ep); err != nil {
		t.Fatalf("failed to decode endpoint: %v", err)
	}
	if ep.SchemaVersion != 1 {
		t.Errorf("expected schema version 1, got %d", ep.SchemaVersion)
	}
	if ep.Label != "2020-12" {
		t.Errorf("expected label 2020-12, got %q", ep.Label)
	}
	if ep.Message != "66.6% compliant" {
		t.Errorf("expected message 66.6%% compliant, got %q", ep.Message)
	}
	if ep.Color != "yellow" {
		t.Errorf("expected color yellow, got %q", ep.Color)
	}
}

func TestBadgeCommandFromSummaryUnknownImplementation(t *testing.T) {
	logPath := writeRunLog(t, t.TempDir(), "draft2020.jsonl", sampleLog)
	summaryPath := filepath.Join(t.TempDir(), "summary.json")

	err := summaryCmd().Run(context.Background(),
		[]string{"summary", "-l", logPath, "-o", summaryPath})
	if err != nil {
		t.Fatalf("summary command failed: %v", err)
	}

	err = badgeCmd().Run(context.Background(),
		[]string{"badge", "-i", "impl-z", "--summary", summaryPath})
	if err == nil {
		t.Error("expected error for implementation absent from the summary")
	}
}

func TestBadgeCommandFromSummaryMissingFile(t *testing.T) {
	err := badgeCmd().Run(context.Background(),
		[]string{"badge", "-i", "impl-a", "--summary",
			filepath.Join(t.TempDir(), "no-such-summary.json")})
	if err == nil {
		t.Error("expected error for missing summary file")
	}
}

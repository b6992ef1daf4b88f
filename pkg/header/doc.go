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

// Package header provides common header types for Tally data structures.
//
// This package defines the Header type used across summaries, compliance
// matrices, and other Tally documents to provide consistent metadata and
// versioning information.
//
// # Header Structure
//
// The Header contains standard fields for API versioning and metadata:
//
//	type Header struct {
//	    Kind       Kind              `json:"kind,omitempty"`       // Resource type (e.g., "Summary", "Badge")
//	    APIVersion string            `json:"apiVersion,omitempty"` // API version
//	    Metadata   map[string]string `json:"metadata,omitempty"`   // Key-value metadata
//	}
//
// # Usage
//
// Initialize a header on an embedding document:
//
//	var s Summary
//	s.Init(header.KindSummary, "tally.harnesslab.io/v1alpha1", version)
//
// Or construct one directly:
//
//	h := header.New(
//	    header.WithKind(header.KindComplianceMatrix),
//	    header.WithAPIVersion("tally.harnesslab.io/v1alpha1"),
//	    header.WithMetadata("runs", "6"),
//	)
//
// # Serialization
//
// Headers serialize consistently to JSON and YAML:
//
//	{
//	  "kind": "Summary",
//	  "apiVersion": "tally.harnesslab.io/v1alpha1",
//	  "metadata": {
//	    "timestamp": "2025-12-30T10:30:00Z",
//	    "version": "v1.0.0"
//	  }
//	}
//
// # API Versioning
//
// The APIVersion field enables evolution of document formats. Tools should
// check APIVersion before parsing:
//
//	if h.APIVersion != "tally.harnesslab.io/v1alpha1" {
//	    return fmt.Errorf("unsupported API version: %s", h.APIVersion)
//	}
//
// # Kind Field
//
// The Kind field identifies the resource type:
//   - Report: Full parsed run report
//   - Summary: Aggregated per-implementation statistics
//   - ComplianceMatrix: Cross-run per-implementation projection
//   - Badge: Shields endpoint payload
//
// # Timestamps
//
// Timestamps use RFC3339 format for consistency:
//
//	h.Metadata["timestamp"] = time.Now().UTC().Format(time.RFC3339)
//	// Serializes as: "2025-12-30T10:30:00Z"
package header

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

// Package store keeps parsed run logs in memory and serves them over HTTP.
//
// A Store loads every *.jsonl file from a single directory, keyed by file
// stem, and can watch the directory for changes so new uploads appear
// without a restart. Parse failures in one file never take the rest of the
// directory offline; the bad file is logged and skipped.
//
// Each run is parsed once at load time into a full report document with a
// canonical content digest, so read paths serve cached documents and
// conditional requests compare digests instead of re-hashing per request.
package store

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
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/harnesslab/tally/pkg/defaults"
	tallyerrors "github.com/harnesslab/tally/pkg/errors"
)

// Watch reloads the store whenever run logs under its directory change,
// blocking until the context is cancelled. Events are debounced: a burst of
// writes triggers one reload after the directory has been quiet for the
// debounce window. A directory that cannot be watched disables hot reload
// with a warning instead of failing the caller.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return tallyerrors.Wrap(tallyerrors.ErrCodeInternal, "creating directory watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		slog.Warn("reports directory not watchable, hot reload disabled",
			"dir", s.dir, "error", err)
		return nil
	}
	slog.Debug("watching reports directory", "dir", s.dir)

	// The debounce timer starts drained so only filesystem events arm it.
	debounce := time.NewTimer(defaults.StoreWatchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRunLogEvent(event) {
				continue
			}
			slog.Debug("run log changed", "file", event.Name, "op", event.Op.String())
			debounce.Reset(defaults.StoreWatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("directory watch error", "dir", s.dir, "error", err)

		case <-debounce.C:
			if err := s.Load(ctx); err != nil {
				slog.Error("store reload failed", "dir", s.dir, "error", err)
			}
		}
	}
}

// isRunLogEvent reports whether a filesystem event concerns a run log in a
// way that changes store contents.
func isRunLogEvent(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, runLogSuffix) {
		return false
	}
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}

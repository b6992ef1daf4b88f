/*
Copyright (c) 2025, The Tally Authors.  All rights reserved.
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/harnesslab/tally/pkg/logging"
	"github.com/harnesslab/tally/pkg/serializer"
)

const (
	name           = "tally"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	// e.g., -X "github.com/harnesslab/tally/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Shared flags mounted on every functional command. These are constructors
// rather than vars because cli flags carry parse state and must not be
// reused across command instances.
func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write the result to this file path (default: stdout)",
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Sources: cli.EnvVars("TALLY_FORMAT"),
		Value:   string(serializer.FormatJSON),
		Usage: fmt.Sprintf("Output format (supported values: %s)",
			strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func dirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Sources: cli.EnvVars("REPORTS_DIR"),
		Value:   "reports",
		Usage:   "Directory of stored run logs (*.jsonl, one file per run)",
	}
}

// rootCmd assembles the base command with every subcommand attached.
func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               version,
		EnableShellCompletion: true,
		Usage:                 "Summarize and grade JSON Schema test-harness run logs",
		Description: fmt.Sprintf(`tally - test-harness run-log report toolkit

Version: %s
Commit:  %s
Built:   %s

Tooling to turn line-delimited harness run logs into reports:

summary    - parse one run log into per-implementation statistics
compliance - project a directory of runs into the compliance matrix
badge      - grade one implementation as a shields.io badge
validate   - check a run log against the documented wire format`, version, commit, date),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			initLogger(cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			summaryCmd(),
			complianceCmd(),
			badgeCmd(),
			validateCmd(),
		},
	}
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(logLevel string) {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", logLevel)
}

// parseFormat validates the shared --format flag.
func parseFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", outFormat)
	}
	return outFormat, nil
}

// openRunLog opens a run log from a local path or an HTTP/HTTPS URL. Remote
// logs are downloaded to a temporary file that is removed on Close.
func openRunLog(path string) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("tally-%d.jsonl", time.Now().UnixNano()))
		if err := serializer.NewHttpReader().Download(path, tempPath); err != nil {
			return nil, fmt.Errorf("failed to download run log from %q: %w", path, err)
		}
		f, err := os.Open(tempPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open downloaded run log: %w", err)
		}
		return &tempFileReader{File: f, path: tempPath}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log %q: %w", path, err)
	}
	return f, nil
}

// tempFileReader removes its backing file once closed.
type tempFileReader struct {
	*os.File
	path string
}

func (t *tempFileReader) Close() error {
	err := t.File.Close()
	if removeErr := os.Remove(t.path); removeErr != nil && err == nil {
		err = removeErr
	}
	return err
}

// closeSerializer releases file-backed serializer resources.
func closeSerializer(ser serializer.Serializer) {
	if closer, ok := ser.(serializer.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}
}

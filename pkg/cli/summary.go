/*
Copyright (c) 2025, The Tally Authors.  All rights reserved.
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/harnesslab/tally/pkg/defaults"
	"github.com/harnesslab/tally/pkg/report"
	"github.com/harnesslab/tally/pkg/serializer"
)

func summaryCmd() *cli.Command {
	return &cli.Command{
		Name:                  "summary",
		EnableShellCompletion: true,
		Usage:                 "Summarize a harness run log",
		Description: `Parse one line-delimited JSON run log and reduce it to a summary document:
  - Run metadata (dialect, harness version, start instant)
  - Per-implementation pass/fail/error/skip statistics
  - Run totals and an overall pass/fail/partial status
  - A canonical content digest for change detection

The summary can be output in JSON, YAML, or table format.

# Examples

Summarize a local run log:
  tally summary --log draft2020.jsonl

Summarize a published run log:
  tally summary --log https://example.com/runs/draft2020.jsonl

Write the summary to a YAML file:
  tally summary -l draft2020.jsonl -o summary.yaml --format yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "log",
				Aliases:  []string{"l"},
				Required: true,
				Usage:    "Path/URI to the run log. Supports file paths and HTTP/HTTPS URLs.",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseFormat(cmd)
			if err != nil {
				return err
			}

			logPath := cmd.String("log")
			slog.Info("parsing run log", "uri", logPath)

			in, err := openRunLog(logPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := in.Close(); err != nil {
					slog.Warn("failed to close run log", "error", err)
				}
			}()

			parseCtx, cancel := context.WithTimeout(ctx, defaults.CLIParseTimeout)
			defer cancel()

			data, err := report.New().ParseReader(parseCtx, in)
			if err != nil {
				return fmt.Errorf("failed to parse run log %q: %w", logPath, err)
			}

			summary, err := report.NewSummary(data, version)
			if err != nil {
				return fmt.Errorf("failed to build summary: %w", err)
			}
			summary.Source = logPath

			totals := data.Totals()
			slog.Info("run log parsed",
				"status", summary.Status,
				"implementations", len(summary.Implementations),
				"tests", totals.TotalTests,
				"failed", totals.FailedTests,
				"skipped", totals.SkippedTests,
				"errored", totals.ErroredTests)

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			return ser.Serialize(ctx, summary)
		},
	}
}

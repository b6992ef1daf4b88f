/*
Copyright (c) 2025, The Tally Authors.  All rights reserved.
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/harnesslab/tally/pkg/badge"
	"github.com/harnesslab/tally/pkg/report"
	"github.com/harnesslab/tally/pkg/serializer"
	"github.com/harnesslab/tally/pkg/store"
)

func badgeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "badge",
		EnableShellCompletion: true,
		Usage:                 "Grade an implementation as a shields.io badge",
		Description: `Compute compliance badges for one implementation from stored run logs.

Each badge is a shields.io endpoint payload: the label is the run's dialect
short name and the message is the compliance percentage, floored to one
decimal so a near-perfect run never shows as 100%. Skipped tests count
against the grade.

The implementation may be named by its full id (a container image reference
such as ghcr.io/org/impl) or by its display name (the trailing path segment).

# Examples

Badges across every stored run:
  tally badge --implementation impl-a

The bare shields.io payload for one run:
  tally badge -i impl-a --run draft2020

Grade a previously saved summary document instead of the reports directory:
  tally badge -i impl-a --summary summary.json

Publish for shields.io consumption:
  tally badge -i impl-a --run draft2020 -o badge.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "implementation",
				Aliases:  []string{"i"},
				Required: true,
				Usage:    "Implementation id or display name to grade",
			},
			&cli.StringFlag{
				Name:  "run",
				Usage: "Grade a single run; the output is the bare shields.io endpoint payload",
			},
			&cli.StringFlag{
				Name:  "summary",
				Usage: "Grade a saved summary document (path or URL) instead of the reports directory",
			},
			dirFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseFormat(cmd)
			if err != nil {
				return err
			}

			if summaryPath := cmd.String("summary"); summaryPath != "" {
				return badgeFromSummary(ctx, cmd, outFormat, summaryPath)
			}

			st := store.New(cmd.String("dir"), store.WithVersion(version))
			if err := st.Load(ctx); err != nil {
				return err
			}

			runs := st.Runs()
			implName := cmd.String("implementation")
			implID, ok := badge.ResolveImplementation(runs, implName)
			if !ok {
				return fmt.Errorf("implementation %q not found in %q", implName, cmd.String("dir"))
			}

			var document any
			if runID := cmd.String("run"); runID != "" {
				data, ok := runs[runID]
				if !ok {
					return fmt.Errorf("run %q not found in %q", runID, cmd.String("dir"))
				}
				ep, err := badge.New(data, implID)
				if err != nil {
					return fmt.Errorf("failed to build badge: %w", err)
				}
				document = ep
			} else {
				doc, err := badge.NewDocument(runs, implID, version)
				if err != nil {
					return fmt.Errorf("failed to build badges: %w", err)
				}
				document = doc
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			return ser.Serialize(ctx, document)
		},
	}
}

// badgeFromSummary grades an implementation from a saved summary document
// rather than the reports directory. One summary covers one run, so the
// output is always the bare shields.io endpoint payload.
func badgeFromSummary(ctx context.Context, cmd *cli.Command, outFormat serializer.Format, summaryPath string) error {
	summary, err := serializer.FromFile[report.Summary](summaryPath)
	if err != nil {
		return fmt.Errorf("failed to read summary %q: %w", summaryPath, err)
	}

	ep, err := badge.NewFromSummary(summary, cmd.String("implementation"))
	if err != nil {
		return fmt.Errorf("failed to build badge: %w", err)
	}

	ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	defer closeSerializer(ser)

	return ser.Serialize(ctx, ep)
}

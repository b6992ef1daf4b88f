/*
Copyright (c) 2025, The Tally Authors.  All rights reserved.
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/harnesslab/tally/pkg/compliance"
	"github.com/harnesslab/tally/pkg/serializer"
	"github.com/harnesslab/tally/pkg/store"
)

func complianceCmd() *cli.Command {
	return &cli.Command{
		Name:                  "compliance",
		EnableShellCompletion: true,
		Usage:                 "Project stored runs into the compliance matrix",
		Description: `Load a directory of run logs and invert them into a per-implementation
compliance matrix: one row per implementation, one cell per run, each cell
carrying the failed/skipped/errored test counts for that pairing.

Run logs are *.jsonl files; the file stem becomes the run id (typically the
dialect label, e.g. draft2020.jsonl -> draft2020).

The matrix can be output in JSON, YAML, or table format.

# Examples

Project the default reports directory:
  tally compliance

Project a specific directory to a YAML file:
  tally compliance --dir ./runs -o matrix.yaml --format yaml`,
		Flags: []cli.Flag{
			dirFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseFormat(cmd)
			if err != nil {
				return err
			}

			st := store.New(cmd.String("dir"), store.WithVersion(version))
			if err := st.Load(ctx); err != nil {
				return err
			}
			if st.Len() == 0 {
				slog.Warn("no run logs found, the matrix will be empty", "dir", cmd.String("dir"))
			}

			m := compliance.NewMatrix(st.Runs(), version)

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			return ser.Serialize(ctx, m)
		},
	}
}

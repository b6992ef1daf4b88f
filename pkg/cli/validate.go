/*
Copyright (c) 2025, The Tally Authors.  All rights reserved.
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	tallyerrors "github.com/harnesslab/tally/pkg/errors"
	"github.com/harnesslab/tally/pkg/header"
	"github.com/harnesslab/tally/pkg/report"
	"github.com/harnesslab/tally/pkg/serializer"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Check a run log against the documented wire format",
		Description: `Validate every record of a run log against the harness IO schema.

This is stricter than parsing: the parser tolerates unrecognized record
shapes for forward compatibility, while validate reports every record that
does not conform to the documented format. Use it to catch format drift
before a log lands in the reports directory.

The result lists one issue per failing record with its 1-based position.

# Examples

Validate a run log:
  tally validate --log draft2020.jsonl

Fail the command if any record does not conform (useful for CI/CD):
  tally validate -l draft2020.jsonl --fail-on-error

Write the validation result to a file:
  tally validate -l draft2020.jsonl -o result.yaml --format yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "log",
				Aliases:  []string{"l"},
				Required: true,
				Usage:    "Path/URI to the run log. Supports file paths and HTTP/HTTPS URLs.",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if any record fails validation",
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
			failOnError := cmd.Bool("fail-on-error")

			slog.Info("validating run log", "uri", logPath)

			in, err := openRunLog(logPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := in.Close(); err != nil {
					slog.Warn("failed to close run log", "error", err)
				}
			}()

			var result *report.Validation
			records, err := report.DecodeRecords(in)
			if err != nil {
				// A log that does not even decode is a validation failure,
				// not a command failure.
				result = decodeFailure(err, logPath)
			} else {
				result, err = report.NewValidation(records, logPath, version)
				if err != nil {
					return fmt.Errorf("validation failed to run: %w", err)
				}
			}

			slog.Info("validation completed",
				"valid", result.Valid,
				"records", result.Records,
				"issues", len(result.Issues))

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			if err := ser.Serialize(ctx, result); err != nil {
				return fmt.Errorf("failed to serialize validation result: %w", err)
			}

			if failOnError && !result.Valid {
				return fmt.Errorf("validation failed: %d record(s) did not conform", len(result.Issues))
			}

			return nil
		},
	}
}

// decodeFailure wraps a run-log decode error as a single-issue validation
// result, carrying the failing line when the error identifies one.
func decodeFailure(err error, logPath string) *report.Validation {
	issue := report.ValidationIssue{Message: err.Error()}
	var se *tallyerrors.StructuredError
	if errors.As(err, &se) {
		if line, ok := se.Context["line"].(int); ok {
			issue.Record = line
		}
	}

	result := &report.Validation{
		Source: logPath,
		Valid:  false,
		Issues: []report.ValidationIssue{issue},
	}
	result.Init(header.KindValidation, report.APIVersion, version)
	return result
}

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

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/harnesslab/tally/schemas"
)

const ioSchemaFile = "io.schema.json"

var (
	recordSchema *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileRecordSchema compiles the embedded harness IO schema once.
func compileRecordSchema() error {
	compileOnce.Do(func() {
		data, err := schemafs.FS.ReadFile(ioSchemaFile)
		if err != nil {
			compileErr = fmt.Errorf("read io schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal io schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(ioSchemaFile, doc); err != nil {
			compileErr = fmt.Errorf("add io schema resource: %w", err)
			return
		}

		recordSchema, compileErr = compiler.Compile(ioSchemaFile)
	})
	return compileErr
}

// ValidationIssue describes one record that failed schema validation.
type ValidationIssue struct {
	// Record is the 1-based position in the decoded record sequence.
	Record int `json:"record" yaml:"record"`

	// Message is the validator's diagnostic.
	Message string `json:"message" yaml:"message"`
}

// ValidateRecord checks one decoded record against the embedded harness IO
// schema. The parser itself never runs this; it backs the strict validation
// surface that flags drift between a log and the documented wire format.
func ValidateRecord(rec Record) error {
	if err := compileRecordSchema(); err != nil {
		return err
	}

	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return recordSchema.Validate(doc)
}

// ValidateRecords checks every decoded record and returns one issue per
// failing record. A non-nil error means validation itself could not run.
func ValidateRecords(records []Record) ([]ValidationIssue, error) {
	if err := compileRecordSchema(); err != nil {
		return nil, err
	}

	var issues []ValidationIssue
	for i, rec := range records {
		if err := ValidateRecord(rec); err != nil {
			issues = append(issues, ValidationIssue{
				Record:  i + 1,
				Message: err.Error(),
			})
		}
	}
	return issues, nil
}

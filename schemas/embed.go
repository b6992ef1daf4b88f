// Package schemas provides the embedded JSON schemas describing the harness
// run-log wire format.
package schemas

import "embed"

// FS contains the embedded schema files.
//
//go:embed *.schema.json
var FS embed.FS

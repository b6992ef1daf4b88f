// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeMalformedRecord,
//	    "failed to decode run-log record",
//	    decodeErr,
//	    map[string]interface{}{
//	        "line": lineNum,
//	        "path": logPath,
//	    },
//	)
//
// Callers branch on error codes rather than message text:
//
//	if errors.IsCode(err, errors.ErrCodeMissingCase) {
//	    // the log referenced a case it never announced
//	}
package errors

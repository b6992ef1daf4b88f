// Package logging provides structured logging utilities for Tally components.
//
// # Overview
//
// This package wraps the standard library slog package with Tally-specific
// defaults and conventions for consistent logging across all components. It
// supports environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("tally", "v1.0.0")
//
//	    // Use slog as normal
//	    slog.Info("parsing run log", "path", "run.jsonl")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("tallyd", "v2.0.0", "debug")
//	logger.Info("server starting", "port", 8080)
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cli", "v1.0.0", "warn")
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug tally summary run.jsonl
//	LOG_LEVEL=error tallyd
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "report parsed",
//	    "module": "tally",
//	    "version": "v1.0.0",
//	    "implementations": 12
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "report.(*Parser).Parse",
//	        "file": "aggregate.go",
//	        "line": 45
//	    },
//	    "msg": "classified record",
//	    "module": "tally",
//	    "version": "v1.0.0"
//	}
//
// # Best Practices
//
// 1. Set default logger early in main():
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("tally", version)
//	    // ...
//	}
//
// 2. Include context in log messages:
//
//	slog.Info("report parsed",
//	    "cases", caseCount,
//	    "implementations", implCount,
//	    "duration_ms", 125,
//	)
//
// 3. Use appropriate log levels:
//
//	slog.Debug("case registered", "seq", seq)  // Development/troubleshooting
//	slog.Info("server started")                // Normal operations
//	slog.Warn("version behind harness")        // Potential issues
//	slog.Error("log parse failed")             // Errors requiring action
//
// 4. Log errors with context:
//
//	slog.Error("failed to parse run log",
//	    "error", err,
//	    "path", path,
//	    "line", lineNum,
//	)
//
// # Integration
//
// This package is used by:
//   - pkg/api - API server logging
//   - pkg/cli - CLI command logging
//   - pkg/report - Run-log parse and aggregation logging
//   - pkg/store - Report store logging
//   - pkg/server - HTTP request logging
//
// All components share consistent logging format and configuration.
package logging

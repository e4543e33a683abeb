// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production).
//
// # Run Awareness
//
// Every consistency run gets a run ID. The WithRun helper attaches it to the
// log entry, so all logs of one run (exports, downloads, diff) can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Run started")
//
//	l := logger.WithRun(log, runID)
//	l.Error("Export failed", zap.Error(err))
package logger

// Package logger provides a structured logging interface for telegraphdl.
//
// It wraps zerolog behind a small Logger interface so pipeline components can
// be handed a NopLogger or TestLogger in tests. The global logger is set up
// once by the CLI:
//
//	if err := logger.Initialize(&cfg.Logging); err != nil {
//	    return err
//	}
//	logger.WithField("url", articleURL).Info("Starting download")
//
// Console output goes to stderr; when Logging.File is set, JSON lines are
// appended to that file instead.
package logger

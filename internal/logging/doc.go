// Package logging builds the slog loggers used by voskcap.
//
// It owns the console and JSON handlers, level parsing, and the component
// helpers that tag log lines with the part of the pipeline that emitted them.
// A no-op logger is provided for tests and for wiring code that has none.
package logging

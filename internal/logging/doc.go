// Package logging assembles structured slog loggers and formatting helpers used
// across setlist.
//
// It owns the console/JSON handlers, centralizes level and output plumbing, and
// exposes context-aware helpers so resolver code tags log lines with the run
// identifier and the resolution stage (artist, album, track). The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Interactive prompts own the terminal, so the CLI routes logs to a file under
// the configured log directory rather than stdout.
package logging

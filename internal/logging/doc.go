// Package logging assembles structured slog loggers and formatting helpers used
// across comicbox.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes helpers so metadata code can tag log lines with the
// component, archive path, and canonical key involved. Field coercion warnings
// go through WarnWithContext so every one carries an event type, a hint, and
// the user-facing impact. The package also provides a no-op logger for tests
// and wiring code that cannot fail.
package logging

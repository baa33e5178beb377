package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests a next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldArchive is the path of the comic archive being processed.
	FieldArchive = "archive"
	// FieldFormat is the metadata format of a source or output.
	FieldFormat = "format"
	// FieldKey is the canonical metadata key a message refers to.
	FieldKey = "key"
	// FieldOrigin is the archive member or file a source was read from.
	FieldOrigin = "origin"
)

type archiveKey struct{}

// WithArchivePath stores the archive path on ctx for log enrichment.
func WithArchivePath(ctx context.Context, path string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, archiveKey{}, path)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	if path, ok := ctx.Value(archiveKey{}).(string); ok && path != "" {
		return []slog.Attr{slog.String(FieldArchive, path)}
	}
	return nil
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}

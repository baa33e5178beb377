package synth

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"comicbox/internal/formats"
	"comicbox/internal/logging"
	"comicbox/internal/metadata"
)

// ErrNoRegistry is returned by Run when the engine cannot decode sources.
var ErrNoRegistry = errors.New("synthesis engine has no format registry")

// SourceRecord is one metadata source of an archive.
type SourceRecord struct {
	Format formats.Format
	// Origin names the member or file the source came from, for logs.
	Origin string
	// Rank orders sources; higher ranks win.
	Rank int
	Raw  []byte
	// Tree holds an already decoded document. Raw is decoded when nil.
	Tree metadata.Metadata
}

// SourceDecoder turns raw bytes into a canonical document, or nil when the
// source must be dropped.
type SourceDecoder interface {
	DecodeSource(f formats.Format, origin string, raw []byte) metadata.Metadata
}

// Engine decodes and synthesizes source records.
type Engine struct {
	decoder SourceDecoder
	logger  *slog.Logger
}

// NewEngine returns an engine decoding through decoder.
func NewEngine(decoder SourceDecoder, logger *slog.Logger) *Engine {
	return &Engine{decoder: decoder, logger: logging.NewComponentLogger(logger, "synth")}
}

// Run orders records by rank, keeping list order for ties, decodes them and
// merges the results. Sources that fail to decode are dropped.
func (e *Engine) Run(ctx context.Context, records []SourceRecord) (metadata.Metadata, error) {
	if e == nil || e.decoder == nil {
		return nil, ErrNoRegistry
	}
	ordered := slices.Clone(records)
	slices.SortStableFunc(ordered, func(a, b SourceRecord) int {
		return a.Rank - b.Rank
	})

	logger := logging.WithContext(ctx, e.logger)
	sources := make([]metadata.Metadata, 0, len(ordered))
	for _, rec := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tree := rec.Tree
		if tree == nil {
			tree = e.decoder.DecodeSource(rec.Format, rec.Origin, rec.Raw)
		}
		if tree == nil {
			continue
		}
		logger.Debug("metadata source loaded",
			logging.String(logging.FieldFormat, rec.Format.String()),
			logging.String(logging.FieldOrigin, rec.Origin),
			logging.Int("keys", len(tree)),
		)
		sources = append(sources, tree)
	}
	return Synthesize(logger, sources), nil
}

// Rank returns the position of f in precedence, lowest first. Formats not
// listed rank below every listed one.
func Rank(precedence []formats.Format, f formats.Format) int {
	return slices.Index(precedence, f)
}

package comic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"comicbox/internal/archive"
	"comicbox/internal/computed"
	"comicbox/internal/formats"
	"comicbox/internal/logging"
	"comicbox/internal/metadata"
	"comicbox/internal/pages"
	"comicbox/internal/synth"
)

const commentOrigin = "archive comment"

// Comic is the synthesized view of one archive.
type Comic struct {
	Path         string
	PageOriented bool
	// Members lists the archive member names, nil when the container
	// cannot be listed.
	Members  []string
	Sources  []Source
	Metadata metadata.Metadata
}

// Source summarizes one record that took part in synthesis.
type Source struct {
	Format formats.Format
	Origin string
	Rank   int
}

// Loader reads and synthesizes archive metadata.
type Loader struct {
	registry *formats.Registry
	engine   *synth.Engine
	opts     Options
	logger   *slog.Logger
}

// NewLoader returns a loader decoding through registry.
func NewLoader(registry *formats.Registry, opts Options, logger *slog.Logger) *Loader {
	logger = logging.NewComponentLogger(logger, "comic")
	return &Loader{
		registry: registry,
		engine:   synth.NewEngine(registry, logger),
		opts:     opts,
		logger:   logger,
	}
}

// LoadPath opens path, loads it and closes it again.
func (l *Loader) LoadPath(ctx context.Context, path string) (*Comic, error) {
	a, err := archive.Open(path)
	if err != nil {
		return nil, err
	}
	defer a.Close()
	return l.Load(ctx, a)
}

// Load synthesizes the metadata of an open archive.
func (l *Loader) Load(ctx context.Context, a archive.Archive) (*Comic, error) {
	ctx = logging.WithArchivePath(ctx, a.Path())
	records, members, err := l.Records(ctx, a)
	if err != nil {
		return nil, err
	}
	md, err := l.engine.Run(ctx, records)
	if err != nil {
		return nil, err
	}
	logger := logging.WithContext(ctx, l.logger)
	md = computed.Apply(logger, md)
	if members != nil {
		md = pages.Resolve(logger, md, members, a.PageOriented())
	}

	c := &Comic{
		Path:         a.Path(),
		PageOriented: a.PageOriented(),
		Members:      members,
		Metadata:     md,
	}
	for _, rec := range records {
		c.Sources = append(c.Sources, Source{Format: rec.Format, Origin: rec.Origin, Rank: rec.Rank})
	}
	return c, nil
}

// Records collects the metadata sources of a. Containers that cannot list
// members or carry no comment contribute only their filename.
func (l *Loader) Records(ctx context.Context, a archive.Archive) ([]synth.SourceRecord, []string, error) {
	var records []synth.SourceRecord
	add := func(f formats.Format, origin string, raw []byte) {
		if !l.opts.reads(f) {
			return
		}
		records = append(records, synth.SourceRecord{Format: f, Origin: origin, Rank: l.opts.rank(f), Raw: raw})
	}

	base := filepath.Base(a.Path())
	add(formats.FormatFilename, base, []byte(base))

	members, err := a.ListMemberNames()
	switch {
	case errors.Is(err, archive.ErrUnsupported):
		members = nil
	case err != nil:
		return nil, nil, err
	}
	for _, name := range members {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		f, ok := formats.ForMemberName(name)
		if !ok || !l.opts.reads(f) {
			continue
		}
		raw, err := a.ReadMember(name)
		if err != nil {
			return nil, nil, err
		}
		add(f, name, raw)
	}

	comment, err := a.Comment()
	switch {
	case errors.Is(err, archive.ErrUnsupported):
	case err != nil:
		return nil, nil, err
	case formats.LooksLikeComicBookInfo(comment):
		add(formats.FormatComicBookInfo, commentOrigin, comment)
	}

	for _, path := range l.opts.ImportPaths {
		rec, ok := l.importRecord(ctx, path)
		if ok && l.opts.reads(rec.Format) {
			records = append(records, rec)
		}
	}

	for i, text := range l.opts.CLI {
		add(formats.FormatCLI, fmt.Sprintf("cli[%d]", i), []byte(text))
	}
	return records, members, nil
}

// importRecord reads an extra metadata file. The format comes from the file
// name when it is a standard member name, otherwise from the content.
func (l *Loader) importRecord(ctx context.Context, path string) (synth.SourceRecord, bool) {
	logger := logging.WithContext(ctx, l.logger)
	raw, err := os.ReadFile(path)
	if err != nil {
		logging.WarnWithContext(logger, "import file skipped", "import_read",
			logging.String(logging.FieldOrigin, path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check sources.import_paths"),
		)
		return synth.SourceRecord{}, false
	}
	if f, ok := formats.ForMemberName(path); ok {
		return synth.SourceRecord{Format: f, Origin: path, Rank: l.opts.rank(f), Raw: raw}, true
	}
	f, tree := l.registry.Sniff(raw)
	if f == "" {
		logging.WarnWithContext(logger, "import file format not recognized", "import_format",
			logging.String(logging.FieldOrigin, path),
			logging.String(logging.FieldErrorHint, "name the file after its format, e.g. ComicInfo.xml"),
		)
		return synth.SourceRecord{}, false
	}
	return synth.SourceRecord{Format: f, Origin: path, Rank: l.opts.rank(f), Tree: tree}, true
}

package comic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"comicbox/internal/archive"
	"comicbox/internal/computed"
	"comicbox/internal/fileutil"
	"comicbox/internal/formats"
	"comicbox/internal/logging"
	"comicbox/internal/metadata"
	"comicbox/internal/pages"
)

// Writer encodes documents back into archives.
type Writer struct {
	registry *formats.Registry
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewWriter returns a writer encoding through registry.
func NewWriter(registry *formats.Registry, opts Options, logger *slog.Logger) *Writer {
	return &Writer{
		registry: registry,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "comic"),
		now:      time.Now,
	}
}

// Prepare returns a copy of md ready to be written into a: configured keys
// deleted, pages rebuilt from the members when enabled, and the tagger
// stamp applied.
func (w *Writer) Prepare(a archive.Archive, md metadata.Metadata) (metadata.Metadata, error) {
	doc := md.Clone()
	if doc == nil {
		doc = metadata.New()
	}
	for _, key := range w.opts.DeleteKeys {
		if strings.Contains(key, ".") {
			doc.SetPath(key, nil)
			continue
		}
		delete(doc, key)
	}
	if w.opts.ComputePages && a != nil {
		sizes, err := a.MemberSizes()
		switch {
		case errors.Is(err, archive.ErrUnsupported):
		case err != nil:
			return nil, err
		default:
			names := make([]string, 0, len(sizes))
			for name := range sizes {
				names = append(names, name)
			}
			files := pages.PageFilenames(names, a.PageOriented())
			doc = pages.RebuildPages(doc, files, sizes)
		}
	}
	if w.opts.StampNotes {
		doc = computed.Stamp(doc, w.opts.Tagger, w.now())
	}
	return doc.Prune(), nil
}

// Encode renders doc in every write format, keyed by format. ComicBookInfo
// lives in the archive comment and is returned separately.
func (w *Writer) Encode(doc metadata.Metadata) (map[formats.Format][]byte, error) {
	out := make(map[formats.Format][]byte, len(w.opts.WriteFormats))
	for _, f := range w.opts.WriteFormats {
		if f == formats.FormatFilename {
			continue
		}
		data, err := w.registry.Encode(f, doc)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f, err)
		}
		out[f] = data
	}
	return out, nil
}

// Write prepares md and stores it in a. ComicBookInfo is written to the
// archive comment; containers without comments skip it with a warning.
func (w *Writer) Write(ctx context.Context, a archive.Archive, md metadata.Metadata) error {
	ctx = logging.WithArchivePath(ctx, a.Path())
	logger := logging.WithContext(ctx, w.logger)

	doc, err := w.Prepare(a, md)
	if err != nil {
		return err
	}
	encoded, err := w.Encode(doc)
	if err != nil {
		return err
	}

	members := make(map[string][]byte, len(encoded))
	var comment []byte
	for f, data := range encoded {
		if f != formats.FormatComicBookInfo {
			members[f.MemberName()] = data
			continue
		}
		if _, err := a.Comment(); errors.Is(err, archive.ErrUnsupported) {
			logging.WarnWithContext(logger, "container has no comment", "comment_write",
				logging.String(logging.FieldFormat, f.String()),
				logging.String(logging.FieldImpact, "ComicBookInfo not written"),
				logging.String(logging.FieldErrorHint, "use comicbox export for this container"),
			)
			continue
		}
		comment = data
	}
	if len(members) == 0 && comment == nil {
		return nil
	}
	if err := a.WriteMembers(ctx, members, comment); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	logger.Info("metadata written",
		logging.Int("members", len(members)),
		logging.Bool("comment", comment != nil),
	)
	return nil
}

// Export writes each write format of md as a file in dir and returns the
// paths written.
func (w *Writer) Export(ctx context.Context, a archive.Archive, md metadata.Metadata, dir string) ([]string, error) {
	doc, err := w.Prepare(a, md)
	if err != nil {
		return nil, err
	}
	encoded, err := w.Encode(doc)
	if err != nil {
		return nil, err
	}
	var written []string
	for _, f := range w.opts.WriteFormats {
		data, ok := encoded[f]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}
		path := filepath.Join(dir, f.MemberName())
		if err := fileutil.WriteFileAtomic(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

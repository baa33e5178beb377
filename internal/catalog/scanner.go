package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"comicbox/internal/archive"
	"comicbox/internal/comic"
	"comicbox/internal/formats"
	"comicbox/internal/logging"
	"comicbox/internal/metadata"
)

// Outcome classifies what a scan did with one archive.
type Outcome string

const (
	OutcomeAdded     Outcome = "added"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

// ScanResult counts scan outcomes.
type ScanResult struct {
	Added     int
	Updated   int
	Unchanged int
	Failed    int
}

func (r *ScanResult) record(o Outcome) {
	switch o {
	case OutcomeAdded:
		r.Added++
	case OutcomeUpdated:
		r.Updated++
	case OutcomeUnchanged:
		r.Unchanged++
	case OutcomeFailed:
		r.Failed++
	}
}

// Scanner loads archives and records their documents in a Store.
type Scanner struct {
	store    *Store
	loader   *comic.Loader
	registry *formats.Registry
	logger   *slog.Logger
}

// NewScanner returns a scanner writing to store.
func NewScanner(store *Store, loader *comic.Loader, registry *formats.Registry, logger *slog.Logger) *Scanner {
	return &Scanner{
		store:    store,
		loader:   loader,
		registry: registry,
		logger:   logging.NewComponentLogger(logger, "catalog"),
	}
}

// Scan walks root, which may be a single archive, and refreshes every comic
// found. Archives whose size and modification time match their entry are
// skipped unless force is set. Per-archive failures are logged and counted.
func (s *Scanner) Scan(ctx context.Context, root string, force bool) (ScanResult, error) {
	var result ScanResult
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() || !archive.IsComic(path) {
			return nil
		}
		outcome, err := s.Refresh(ctx, path, force)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logging.WarnWithContext(s.logger, "archive not cataloged", "catalog_scan",
				logging.String(logging.FieldArchive, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "entry left unchanged"),
			)
		}
		result.record(outcome)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("scan %s: %w", root, err)
	}
	s.logger.Info("catalog scan finished",
		logging.String("root", root),
		logging.Int("added", result.Added),
		logging.Int("updated", result.Updated),
		logging.Int("unchanged", result.Unchanged),
		logging.Int("failed", result.Failed),
	)
	return result, nil
}

// Refresh loads one archive and stores its document.
func (s *Scanner) Refresh(ctx context.Context, path string, force bool) (Outcome, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return OutcomeFailed, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return OutcomeFailed, err
	}
	existing, err := s.store.GetByPath(ctx, abs)
	if err != nil {
		return OutcomeFailed, err
	}
	if !force && existing != nil && existing.Size == info.Size() && existing.ModTime.Equal(info.ModTime().UTC()) {
		return OutcomeUnchanged, nil
	}

	c, err := s.loader.LoadPath(ctx, abs)
	if err != nil {
		return OutcomeFailed, err
	}
	doc, err := s.registry.Encode(formats.FormatComicboxJSON, c.Metadata)
	if err != nil {
		return OutcomeFailed, err
	}
	md := c.Metadata
	_, err = s.store.Upsert(ctx, Entry{
		Path:     abs,
		ModTime:  info.ModTime(),
		Size:     info.Size(),
		Series:   md.Series().Name,
		Issue:    md.Issue().Name,
		Title:    md.String(metadata.KeyTitle),
		Document: string(doc),
	})
	if err != nil {
		return OutcomeFailed, err
	}
	if existing == nil {
		return OutcomeAdded, nil
	}
	return OutcomeUpdated, nil
}

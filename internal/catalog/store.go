package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"comicbox/internal/config"
	"comicbox/internal/formats"
	"comicbox/internal/metadata"
)

// Entry is the cataloged state of one archive.
type Entry struct {
	ID      string
	Path    string
	ModTime time.Time
	Size    int64
	Series  string
	Issue   string
	Title   string
	// Document is the synthesized metadata in comicbox JSON.
	Document  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Metadata decodes the stored document.
func (e *Entry) Metadata(registry *formats.Registry) (metadata.Metadata, error) {
	return registry.Decode(formats.FormatComicboxJSON, []byte(e.Document))
}

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	Series string
}

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Catalog.Path
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Upsert stores e keyed by its path. A new entry gets a fresh id; an
// existing one keeps its id and creation time.
func (s *Store) Upsert(ctx context.Context, e Entry) (*Entry, error) {
	if e.Path == "" {
		return nil, errors.New("entry path is empty")
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO entries (
            id, path, mod_time, size, series, issue, title, document, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            mod_time = excluded.mod_time,
            size = excluded.size,
            series = excluded.series,
            issue = excluded.issue,
            title = excluded.title,
            document = excluded.document,
            updated_at = excluded.updated_at`,
		uuid.NewString(),
		e.Path,
		e.ModTime.UTC().Format(time.RFC3339Nano),
		e.Size,
		nullableString(e.Series),
		nullableString(e.Issue),
		nullableString(e.Title),
		e.Document,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert entry: %w", err)
	}
	return s.GetByPath(ctx, e.Path)
}

// GetByPath fetches the entry for an archive path, or nil when none exists.
func (s *Store) GetByPath(ctx context.Context, path string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE path = ?`, path)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// GetByID fetches an entry by id, or nil when none exists.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// Lookup resolves an entry id or archive path.
func (s *Store) Lookup(ctx context.Context, ref string) (*Entry, error) {
	if _, err := uuid.Parse(ref); err == nil {
		return s.GetByID(ctx, ref)
	}
	return s.GetByPath(ctx, ref)
}

// List returns entries ordered by series, issue and path.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries`
	var args []any
	if filter.Series != "" {
		query += ` WHERE series = ? COLLATE NOCASE`
		args = append(args, filter.Series)
	}
	query += ` ORDER BY series COLLATE NOCASE, issue, path`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Remove deletes the entry for path and reports whether one existed.
func (s *Store) Remove(ctx context.Context, path string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("remove entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove entry: %w", err)
	}
	return n > 0, nil
}

// RemoveMissing deletes entries whose archive no longer exists and returns
// the removed paths.
func (s *Store) RemoveMissing(ctx context.Context) ([]string, error) {
	entries, err := s.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, entry := range entries {
		if _, err := os.Stat(entry.Path); !errors.Is(err, os.ErrNotExist) {
			continue
		}
		if _, err := s.Remove(ctx, entry.Path); err != nil {
			return removed, err
		}
		removed = append(removed, entry.Path)
	}
	return removed, nil
}

package catalog

import (
	"database/sql"
	"errors"
	"time"
)

const entryColumns = "id, path, mod_time, size, series, issue, title, document, created_at, updated_at"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		entry      Entry
		modRaw     string
		series     sql.NullString
		issue      sql.NullString
		title      sql.NullString
		createdRaw sql.NullString
		updatedRaw sql.NullString
	)
	if err := scanner.Scan(
		&entry.ID,
		&entry.Path,
		&modRaw,
		&entry.Size,
		&series,
		&issue,
		&title,
		&entry.Document,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	entry.Series = series.String
	entry.Issue = issue.String
	entry.Title = title.String
	if mod, err := parseTimeString(modRaw); err == nil {
		entry.ModTime = mod
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		entry.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		entry.UpdatedAt = updated
	}
	return &entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}

package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrUnsupported is returned for container operations a backend cannot do.
var ErrUnsupported = errors.New("unsupported archive operation")

// Archive is an open comic container.
type Archive interface {
	// Path returns the container location on disk.
	Path() string
	// PageOriented reports whether the container holds pages rather than
	// named image files, as a PDF does.
	PageOriented() bool
	ListMemberNames() ([]string, error)
	// MemberSizes maps member names to their uncompressed size.
	MemberSizes() (map[string]int64, error)
	// ReadMember returns a member's bytes. Names match exactly first, then
	// case-insensitively.
	ReadMember(name string) ([]byte, error)
	Comment() ([]byte, error)
	// WriteMembers adds or replaces members and sets the comment. A nil
	// member value deletes the member. A nil comment keeps the current one.
	WriteMembers(ctx context.Context, members map[string][]byte, comment []byte) error
	Close() error
}

// Open returns the backend for path, chosen by file type and extension.
func Open(path string) (Archive, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if info.IsDir() {
		return openDir(path), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cbz", ".zip":
		return openZip(path)
	case ".pdf":
		return &unsupported{path: path, pageOriented: true}, nil
	case ".cbr", ".rar", ".cb7", ".7z", ".cbt", ".tar":
		return &unsupported{path: path}, nil
	default:
		return nil, fmt.Errorf("open archive %s: %w", filepath.Base(path), ErrUnsupported)
	}
}

// IsComic reports whether path has a container extension Open accepts.
func IsComic(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cbz", ".zip", ".pdf", ".cbr", ".rar", ".cb7", ".7z", ".cbt", ".tar":
		return true
	}
	return false
}

// matchName finds name in names, exactly or else ignoring case.
func matchName(names []string, name string) (string, bool) {
	if slices.Contains(names, name) {
		return name, true
	}
	for _, candidate := range names {
		if strings.EqualFold(candidate, name) {
			return candidate, true
		}
	}
	return "", false
}

type unsupported struct {
	path         string
	pageOriented bool
}

func (u *unsupported) Path() string       { return u.path }
func (u *unsupported) PageOriented() bool { return u.pageOriented }
func (u *unsupported) Close() error       { return nil }

func (u *unsupported) ListMemberNames() ([]string, error) {
	return nil, u.err("list members")
}

func (u *unsupported) MemberSizes() (map[string]int64, error) {
	return nil, u.err("list members")
}

func (u *unsupported) ReadMember(string) ([]byte, error) {
	return nil, u.err("read member")
}

func (u *unsupported) Comment() ([]byte, error) {
	return nil, u.err("read comment")
}

func (u *unsupported) WriteMembers(context.Context, map[string][]byte, []byte) error {
	return u.err("write members")
}

func (u *unsupported) err(op string) error {
	return fmt.Errorf("%s %s: %w", op, filepath.Base(u.path), ErrUnsupported)
}

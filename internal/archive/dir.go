package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"comicbox/internal/fileutil"
)

// dirArchive treats a directory tree of images and metadata files as an
// archive. Directories carry no comment.
type dirArchive struct {
	root string
}

func openDir(root string) *dirArchive {
	return &dirArchive{root: root}
}

func (d *dirArchive) Path() string       { return d.root }
func (d *dirArchive) PageOriented() bool { return false }
func (d *dirArchive) Close() error       { return nil }

func (d *dirArchive) ListMemberNames() ([]string, error) {
	sizes, err := d.MemberSizes()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(sizes)), nil
}

func (d *dirArchive) MemberSizes() (map[string]int64, error) {
	sizes := make(map[string]int64)
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		sizes[filepath.ToSlash(rel)] = info.Size()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", filepath.Base(d.root), err)
	}
	return sizes, nil
}

func (d *dirArchive) ReadMember(name string) ([]byte, error) {
	names, err := d.ListMemberNames()
	if err != nil {
		return nil, err
	}
	match, ok := matchName(names, name)
	if !ok {
		return nil, fmt.Errorf("read %s from %s: %w", name, filepath.Base(d.root), fs.ErrNotExist)
	}
	data, err := os.ReadFile(d.memberPath(match))
	if err != nil {
		return nil, fmt.Errorf("read %s from %s: %w", name, filepath.Base(d.root), err)
	}
	return data, nil
}

func (d *dirArchive) Comment() ([]byte, error) {
	return nil, fmt.Errorf("read comment %s: %w", filepath.Base(d.root), ErrUnsupported)
}

func (d *dirArchive) WriteMembers(ctx context.Context, members map[string][]byte, comment []byte) error {
	if comment != nil {
		return fmt.Errorf("write comment %s: %w", filepath.Base(d.root), ErrUnsupported)
	}
	names, err := d.ListMemberNames()
	if err != nil {
		return err
	}
	return fileutil.WithLock(ctx, d.root, func() error {
		for _, name := range slices.Sorted(maps.Keys(members)) {
			if err := ctx.Err(); err != nil {
				return err
			}
			target := name
			if match, ok := matchName(names, name); ok {
				target = match
			}
			path := d.memberPath(target)
			data := members[name]
			if data == nil {
				if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("remove %s: %w", target, err)
				}
				continue
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create directory for %s: %w", target, err)
			}
			if err := fileutil.WriteFileAtomic(path, data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *dirArchive) memberPath(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(name))
}

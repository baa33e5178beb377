package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"comicbox/internal/fileutil"
)

// maxCommentLen is the largest comment a zip end record can hold.
const maxCommentLen = 1<<16 - 1

type zipArchive struct {
	path   string
	reader *zip.ReadCloser
}

func openZip(path string) (*zipArchive, error) {
	z := &zipArchive{path: path}
	if err := z.reopen(); err != nil {
		return nil, err
	}
	return z, nil
}

func (z *zipArchive) reopen() error {
	reader, err := zip.OpenReader(z.path)
	if err != nil {
		return fmt.Errorf("open zip %s: %w", filepath.Base(z.path), err)
	}
	if z.reader != nil {
		_ = z.reader.Close()
	}
	z.reader = reader
	return nil
}

func (z *zipArchive) Path() string       { return z.path }
func (z *zipArchive) PageOriented() bool { return false }

func (z *zipArchive) Close() error {
	if z.reader == nil {
		return nil
	}
	err := z.reader.Close()
	z.reader = nil
	return err
}

func (z *zipArchive) files() []*zip.File {
	out := make([]*zip.File, 0, len(z.reader.File))
	for _, f := range z.reader.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (z *zipArchive) ListMemberNames() ([]string, error) {
	files := z.files()
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names, nil
}

func (z *zipArchive) MemberSizes() (map[string]int64, error) {
	sizes := make(map[string]int64)
	for _, f := range z.files() {
		sizes[f.Name] = int64(f.UncompressedSize64)
	}
	return sizes, nil
}

func (z *zipArchive) ReadMember(name string) ([]byte, error) {
	files := z.files()
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	match, ok := matchName(names, name)
	if !ok {
		return nil, fmt.Errorf("read %s from %s: %w", name, filepath.Base(z.path), fs.ErrNotExist)
	}
	rc, err := files[slices.Index(names, match)].Open()
	if err != nil {
		return nil, fmt.Errorf("read %s from %s: %w", name, filepath.Base(z.path), err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s from %s: %w", name, filepath.Base(z.path), err)
	}
	return data, nil
}

func (z *zipArchive) Comment() ([]byte, error) {
	return []byte(z.reader.Comment), nil
}

func (z *zipArchive) WriteMembers(ctx context.Context, members map[string][]byte, comment []byte) error {
	if len(comment) > maxCommentLen {
		return fmt.Errorf("write %s: comment is %d bytes, zip allows %d", filepath.Base(z.path), len(comment), maxCommentLen)
	}
	return fileutil.WithLock(ctx, z.path, func() error {
		data, err := z.rewrite(members, comment)
		if err != nil {
			return fmt.Errorf("rewrite %s: %w", filepath.Base(z.path), err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(z.path, data); err != nil {
			return err
		}
		return z.reopen()
	})
}

// rewrite copies every untouched member without recompressing it, then
// appends the new members in name order.
func (z *zipArchive) rewrite(members map[string][]byte, comment []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, f := range z.reader.File {
		if replaced(members, f.Name) {
			continue
		}
		if err := copyRaw(w, f); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	for _, name := range slices.Sorted(maps.Keys(members)) {
		data := members[name]
		if data == nil {
			continue
		}
		dst, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: now})
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", name, err)
		}
		if _, err := dst.Write(data); err != nil {
			return nil, fmt.Errorf("add %s: %w", name, err)
		}
	}

	text := z.reader.Comment
	if comment != nil {
		text = string(comment)
	}
	if err := w.SetComment(text); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func copyRaw(w *zip.Writer, f *zip.File) error {
	src, err := f.OpenRaw()
	if err != nil {
		return fmt.Errorf("copy %s: %w", f.Name, err)
	}
	header := f.FileHeader
	dst, err := w.CreateRaw(&header)
	if err != nil {
		return fmt.Errorf("copy %s: %w", f.Name, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy %s: %w", f.Name, err)
	}
	return nil
}

func replaced(members map[string][]byte, name string) bool {
	for candidate := range members {
		if strings.EqualFold(candidate, name) {
			return true
		}
	}
	return false
}

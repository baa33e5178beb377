package fileutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
)

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ComicInfo.xml")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("new")); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content = %q, want new", got)
	}
}

func TestLockPathIsStable(t *testing.T) {
	dir := t.TempDir()
	a := LockPath(filepath.Join(dir, "a.cbz"))
	if a != LockPath(filepath.Join(dir, "a.cbz")) {
		t.Fatal("lock path changed between calls")
	}
	if a == LockPath(filepath.Join(dir, "b.cbz")) {
		t.Fatal("different archives share a lock path")
	}
}

func TestWithLockWaitsForContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.cbz")
	held := flock.New(LockPath(path))
	if err := held.Lock(); err != nil {
		t.Fatal(err)
	}
	defer held.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	called := false
	err := WithLock(ctx, path, func() error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("WithLock ran while the lock was held (err=%v)", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want deadline exceeded", err)
	}
}

func TestWithLockRunsFunction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.cbz")
	want := errors.New("boom")
	if err := WithLock(context.Background(), path, func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("WithLock error = %v, want %v", err, want)
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.cbz")
	dst := filepath.Join(dir, "src.cbz.bak")

	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileVerifiedMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

package testsupport

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// Member is one file written into a test archive.
type Member struct {
	Name string
	Body string
}

// WriteCBZ creates a zip archive at path holding members in order, with an
// optional archive comment.
func WriteCBZ(t testing.TB, path string, comment string, members ...Member) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, m := range members {
		dst, err := w.Create(m.Name)
		if err != nil {
			t.Fatalf("add %s: %v", m.Name, err)
		}
		if _, err := dst.Write([]byte(m.Body)); err != nil {
			t.Fatalf("write %s: %v", m.Name, err)
		}
	}
	if err := w.SetComment(comment); err != nil {
		t.Fatalf("set comment: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}

// WriteFile writes body to path, creating parent directories.
func WriteFile(t testing.TB, path string, body string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

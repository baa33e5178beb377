package archive

import (
	"archive/zip"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeZip(t *testing.T, path string, members map[string]string, order []string, comment string) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(file)
	for _, name := range order {
		dst, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := dst.Write([]byte(members[name])); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.SetComment(comment); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}
}

func newTestZip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Saga 001.cbz")
	members := map[string]string{
		"pages/":        "",
		"pages/001.jpg": "page-one",
		"pages/002.jpg": "page-two!",
		"comicinfo.xml": "<ComicInfo/>",
	}
	writeZip(t, path, members, []string{"pages/", "pages/001.jpg", "pages/002.jpg", "comicinfo.xml"}, `{"appID":"x"}`)
	return path
}

func TestZipListsAndReadsMembers(t *testing.T) {
	a, err := Open(newTestZip(t))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	names, err := a.ListMemberNames()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"pages/001.jpg", "pages/002.jpg", "comicinfo.xml"}, names); diff != "" {
		t.Fatalf("members mismatch (-want +got):\n%s", diff)
	}
	data, err := a.ReadMember("ComicInfo.xml")
	if err != nil {
		t.Fatalf("case-insensitive read failed: %v", err)
	}
	if string(data) != "<ComicInfo/>" {
		t.Fatalf("member = %q", data)
	}
	if _, err := a.ReadMember("MetronInfo.xml"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing member error = %v, want fs.ErrNotExist", err)
	}
	comment, err := a.Comment()
	if err != nil || string(comment) != `{"appID":"x"}` {
		t.Fatalf("comment = %q, %v", comment, err)
	}
	sizes, err := a.MemberSizes()
	if err != nil {
		t.Fatal(err)
	}
	if sizes["pages/002.jpg"] != 9 {
		t.Fatalf("size = %d, want 9", sizes["pages/002.jpg"])
	}
}

func TestZipWriteMembersReplacesAndKeepsPages(t *testing.T) {
	path := newTestZip(t)
	a, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	members := map[string][]byte{
		"ComicInfo.xml":  []byte("<ComicInfo><Title>New</Title></ComicInfo>"),
		"MetronInfo.xml": []byte("<MetronInfo/>"),
		"pages/002.jpg":  nil,
	}
	if err := a.WriteMembers(context.Background(), members, nil); err != nil {
		t.Fatalf("WriteMembers failed: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	names, err := reopened.ListMemberNames()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"pages/001.jpg", "ComicInfo.xml", "MetronInfo.xml"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("members mismatch (-want +got):\n%s", diff)
	}
	page, err := reopened.ReadMember("pages/001.jpg")
	if err != nil || string(page) != "page-one" {
		t.Fatalf("page = %q, %v", page, err)
	}
	comment, _ := reopened.Comment()
	if string(comment) != `{"appID":"x"}` {
		t.Fatalf("nil comment should keep the old one, got %q", comment)
	}

	// The open handle sees the rewritten archive too.
	data, err := a.ReadMember("ComicInfo.xml")
	if err != nil || string(data) != "<ComicInfo><Title>New</Title></ComicInfo>" {
		t.Fatalf("stale handle read %q, %v", data, err)
	}
}

func TestZipWriteMembersSetsComment(t *testing.T) {
	path := newTestZip(t)
	a, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if err := a.WriteMembers(context.Background(), nil, []byte("")); err != nil {
		t.Fatal(err)
	}
	comment, _ := a.Comment()
	if len(comment) != 0 {
		t.Fatalf("comment = %q, want cleared", comment)
	}
	if err := a.WriteMembers(context.Background(), nil, make([]byte, maxCommentLen+1)); err == nil {
		t.Fatal("oversized comment accepted")
	}
}

func TestZipWriteMembersHonorsCancellation(t *testing.T) {
	path := newTestZip(t)
	a, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.WriteMembers(ctx, map[string][]byte{"x.xml": []byte("x")}, nil); err == nil {
		t.Fatal("write succeeded with a cancelled context")
	}
	names, _ := a.ListMemberNames()
	if len(names) != 3 {
		t.Fatalf("archive changed after cancelled write: %v", names)
	}
}

func TestDirArchive(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "pages"), 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range map[string]string{"pages/01.png": "a", "ComicInfo.xml": "<ComicInfo/>"} {
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	a, err := Open(root)
	if err != nil {
		t.Fatal(err)
	}
	names, err := a.ListMemberNames()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"ComicInfo.xml", "pages/01.png"}, names); diff != "" {
		t.Fatalf("members mismatch (-want +got):\n%s", diff)
	}
	if _, err := a.Comment(); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("comment error = %v, want ErrUnsupported", err)
	}

	members := map[string][]byte{"comicinfo.xml": nil, "meta/comicbox.json": []byte("{}")}
	if err := a.WriteMembers(context.Background(), members, nil); err != nil {
		t.Fatalf("WriteMembers failed: %v", err)
	}
	names, _ = a.ListMemberNames()
	if diff := cmp.Diff([]string{"meta/comicbox.json", "pages/01.png"}, names); diff != "" {
		t.Fatalf("members after write mismatch (-want +got):\n%s", diff)
	}
	if err := a.WriteMembers(context.Background(), nil, []byte("c")); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("comment write error = %v, want ErrUnsupported", err)
	}
}

func TestOpenUnsupportedContainers(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"book.pdf", "book.cbr"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		a, err := Open(path)
		if err != nil {
			t.Fatalf("Open(%s) failed: %v", name, err)
		}
		if _, err := a.ListMemberNames(); !errors.Is(err, ErrUnsupported) {
			t.Fatalf("%s list error = %v, want ErrUnsupported", name, err)
		}
		if got, want := a.PageOriented(), name == "book.pdf"; got != want {
			t.Fatalf("%s PageOriented = %v, want %v", name, got, want)
		}
	}
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(txt); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Open(txt) error = %v, want ErrUnsupported", err)
	}
	if !IsComic("A.CBZ") || IsComic("notes.txt") {
		t.Fatal("IsComic misclassified")
	}
}

package pages

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"comicbox/internal/enums"
	"comicbox/internal/logging"
	"comicbox/internal/metadata"
)

func TestPageFilenames(t *testing.T) {
	names := []string{
		"ComicInfo.xml",
		"b.JPG",
		"A.png",
		".hidden.jpg",
		"__MACOSX/._a.png",
		"sub/",
		"sub/c.webp",
		"notes.txt",
	}
	got := PageFilenames(names, false)
	want := []string{"A.png", "b.JPG", "sub/c.webp"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("PageFilenames mismatch (-want +got):\n%s", diff)
	}

	pdfPages := []string{"2", "1", "3"}
	if diff := cmp.Diff(pdfPages, PageFilenames(pdfPages, true)); diff != "" {
		t.Fatalf("page-oriented names changed (-want +got):\n%s", diff)
	}
}

func TestResolveCover(t *testing.T) {
	files := []string{"a.jpg", "b.jpg", "c.jpg"}
	tests := []struct {
		name string
		md   metadata.Metadata
		want string
	}{
		{
			name: "tagged zero based",
			md: metadata.Metadata{metadata.KeyPages: []metadata.Page{
				{Index: 0},
				{Index: 1, Type: enums.PageFrontCover},
			}},
			want: "b.jpg",
		},
		{
			name: "tagged one based",
			md: metadata.Metadata{metadata.KeyPages: []metadata.Page{
				{Index: 3, Type: enums.PageFrontCover},
			}},
			want: "c.jpg",
		},
		{
			name: "explicit cover image",
			md:   metadata.Metadata{metadata.KeyCoverImage: "c.jpg"},
			want: "c.jpg",
		},
		{
			name: "unknown cover image falls back",
			md:   metadata.Metadata{metadata.KeyCoverImage: "missing.jpg"},
			want: "a.jpg",
		},
		{
			name: "tag out of range falls back",
			md: metadata.Metadata{metadata.KeyPages: []metadata.Page{
				{Index: 0},
				{Index: 9, Type: enums.PageFrontCover},
			}},
			want: "a.jpg",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := Resolve(logging.NewNop(), tt.md, files, false)
			if got := md.String(metadata.KeyCoverImage); got != tt.want {
				t.Fatalf("cover = %q, want %q", got, tt.want)
			}
			if got := md.Int(metadata.KeyPageCount); got != 3 {
				t.Fatalf("page_count = %d, want 3", got)
			}
		})
	}
}

func TestResolveWithoutPages(t *testing.T) {
	md := Resolve(logging.NewNop(), metadata.Metadata{metadata.KeyCoverImage: "x.jpg"}, []string{"ComicInfo.xml"}, false)
	if _, ok := md[metadata.KeyCoverImage]; ok {
		t.Fatalf("cover_image = %v, want unset", md[metadata.KeyCoverImage])
	}
	if _, ok := md[metadata.KeyPageCount]; ok {
		t.Fatalf("page_count = %v, want unset", md[metadata.KeyPageCount])
	}
}

func TestRebuildPages(t *testing.T) {
	md := metadata.Metadata{
		metadata.KeyCoverImage: "b.jpg",
		metadata.KeyPages: []metadata.Page{
			{Index: 2, Type: enums.PageBackCover, Bookmark: "End"},
			{Index: 7, Type: enums.PageStory},
		},
	}
	files := []string{"a.jpg", "b.jpg", "c.jpg"}
	sizes := map[string]int64{"a.jpg": 10, "b.jpg": 20, "c.jpg": 30}
	got := RebuildPages(md, files, sizes).Pages()
	want := []metadata.Page{
		{Index: 0, Size: 10},
		{Index: 1, Size: 20, Type: enums.PageFrontCover},
		{Index: 2, Size: 30, Type: enums.PageBackCover, Bookmark: "End"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("RebuildPages mismatch (-want +got):\n%s", diff)
	}
	if got := md.Int(metadata.KeyPageCount); got != 3 {
		t.Fatalf("page_count = %d, want 3", got)
	}
}

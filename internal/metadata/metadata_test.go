package metadata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestPruneDropsEmptyValues(t *testing.T) {
	md := Metadata{
		KeyTitle:      "",
		KeySummary:    "kept",
		KeyCharacters: StringSet{},
		KeyCredits:    []Credit{},
		KeyArcs:       map[string]int{},
		KeySeries:     Series{},
		KeyVolume:     Volume{Number: 2},
		KeyNotes:      nil,
	}
	md.Prune()
	want := Metadata{KeySummary: "kept", KeyVolume: Volume{Number: 2}}
	if diff := cmp.Diff(want, md); diff != "" {
		t.Fatalf("Prune mismatch (-want +got):\n%s", diff)
	}
}

func TestSetPathBuildsNestedRecords(t *testing.T) {
	md := New()
	if !md.SetPath(PathSeriesName, "Saga") {
		t.Fatal("SetPath(series.name) rejected string")
	}
	if !md.SetPath(PathVolumeIssueCount, 12) {
		t.Fatal("SetPath(volume.issue_count) rejected int")
	}
	if !md.SetPath(PathIssueNumber, decimal.RequireFromString("1.5")) {
		t.Fatal("SetPath(issue.number) rejected decimal")
	}
	if md.SetPath(PathVolumeNumber, "two") {
		t.Fatal("SetPath(volume.number) accepted a string")
	}

	if got := md.Series().Name; got != "Saga" {
		t.Fatalf("series name = %q, want Saga", got)
	}
	if got := md.GetPath(PathVolumeIssueCount); got != 12 {
		t.Fatalf("GetPath(volume.issue_count) = %v, want 12", got)
	}
	if got := md.GetPath(PathVolumeNumber); got != nil {
		t.Fatalf("GetPath(volume.number) = %v, want nil", got)
	}
	num, ok := md.GetPath(PathIssueNumber).(decimal.Decimal)
	if !ok || !num.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("GetPath(issue.number) = %v, want 1.5", md.GetPath(PathIssueNumber))
	}

	md.SetPath(PathSeriesName, nil)
	if _, ok := md[KeySeries]; ok {
		t.Fatal("clearing the only series field should remove the record")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := Metadata{
		KeyTags:    NewStringSet("a"),
		KeyCredits: []Credit{{Person: "Ann", Role: "Writer", Primary: BoolPtr(true)}},
		KeyArcs:    map[string]int{"Arc": 1},
	}
	clone := orig.Clone()
	clone.Set(KeyTags).Add("b")
	*clone.Credits()[0].Primary = false
	clone.Arcs()["Arc"] = 2

	if orig.Set(KeyTags).Has("b") {
		t.Fatal("clone shares tag set")
	}
	if !*orig.Credits()[0].Primary {
		t.Fatal("clone shares credit primary flag")
	}
	if orig.Arcs()["Arc"] != 1 {
		t.Fatal("clone shares arcs map")
	}
}

func TestCreditKeyIsCaseInsensitive(t *testing.T) {
	a := Credit{Person: "Jane Doe", Role: "Writer"}
	b := Credit{Person: "jane doe", Role: "WRITER"}
	if a.Key() != b.Key() {
		t.Fatalf("Key() = %q and %q, want equal", a.Key(), b.Key())
	}
}

func TestAddIdentifierKeepsExistingParts(t *testing.T) {
	md := New()
	md.AddIdentifier("comicvine", Identifier{Type: "issue", NSS: "123"})
	md.AddIdentifier("comicvine", Identifier{URL: "https://comicvine.gamespot.com/c/4000-123/"})
	got := md.Identifiers()["comicvine"]
	want := Identifier{Type: "issue", NSS: "123", URL: "https://comicvine.gamespot.com/c/4000-123/"}
	if got != want {
		t.Fatalf("identifier = %+v, want %+v", got, want)
	}
}

func TestMergeCreditsLaterAttributesWin(t *testing.T) {
	got := MergeCredits(
		[]Credit{{Person: "Ann", Role: "Writer"}, {Person: "Bob", Role: "Inker", Primary: BoolPtr(true)}},
		[]Credit{{Person: "ann", Role: "writer", Primary: BoolPtr(true)}, {Person: "Bob", Role: "Inker"}},
	)
	want := []Credit{
		{Person: "ann", Role: "writer", Primary: BoolPtr(true)},
		{Person: "Bob", Role: "Inker", Primary: BoolPtr(true)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MergeCredits mismatch (-want +got):\n%s", diff)
	}
}

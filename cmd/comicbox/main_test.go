package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"comicbox/internal/testsupport"
)

type cliTestEnv struct {
	baseDir     string
	homeDir     string
	catalogPath string
	archive     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("COMICBOX_CONFIG", "")
	t.Setenv("COMICBOX_LOG_LEVEL", "error")
	catalogPath := filepath.Join(base, "data", "catalog.db")
	t.Setenv("COMICBOX_CATALOG_PATH", catalogPath)

	archive := filepath.Join(base, "library", "Saga 001 (2012).cbz")
	testsupport.WriteCBZ(t, archive, "",
		testsupport.Member{Name: "001.jpg", Body: "cover"},
		testsupport.Member{Name: "002.jpg", Body: "page"},
		testsupport.Member{Name: "ComicInfo.xml", Body: `<ComicInfo><Title>Chapter One</Title><Publisher>Image</Publisher></ComicInfo>`},
	)

	return &cliTestEnv{
		baseDir:     base,
		homeDir:     homeDir,
		catalogPath: catalogPath,
		archive:     archive,
	}
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func decodeDocument(t *testing.T, out string) map[string]any {
	t.Helper()
	var doc map[string]map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	return doc["comicbox"]
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(env.baseDir, "config.toml")
	out, _, err = runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("config init overwrote an existing file without --overwrite")
	}

	out, _, err = runCLI(t, "--config", target, "config", "validate")
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "Config path: "+target)
	requireContains(t, out, "Write formats: comicinfo")
}

func TestConfigShowPrintsEffectiveTOML(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.baseDir, "show.toml")
	content := "[write]\nformats = [\"MetronInfo\", \"comicinfo\"]\n"
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	out, _, err := runCLI(t, "--config", target, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[write]")
	requireContains(t, out, "metroninfo")

	again := filepath.Join(env.baseDir, "roundtrip.toml")
	if err := os.WriteFile(again, []byte(out), 0o644); err != nil {
		t.Fatalf("write shown config: %v", err)
	}
	out, _, err = runCLI(t, "--config", again, "config", "validate")
	if err != nil {
		t.Fatalf("validate shown config: %v", err)
	}
	requireContains(t, out, "Write formats: metroninfo, comicinfo")
}

func TestReadMergesCLIMetadata(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, "read", "--format", "json", "-m", "title=From CLI;tags=cli", env.archive)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doc := decodeDocument(t, out)
	if doc["title"] != "From CLI" {
		t.Fatalf("title = %v, want the CLI value", doc["title"])
	}
	if doc["publisher"] != "Image" {
		t.Fatalf("publisher = %v, want Image", doc["publisher"])
	}
	if doc["cover_image"] != "001.jpg" {
		t.Fatalf("cover_image = %v, want 001.jpg", doc["cover_image"])
	}

	out, _, err = runCLI(t, "read", "--format", "table", "--sources", env.archive)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	requireContains(t, out, "ComicInfo.xml")
	requireContains(t, out, "Chapter One")
}

func TestWriteThenRead(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, "write", "--formats", "comicinfo,metroninfo", "--delete-keys", "publisher", "--backup", "-m", "genres=Space Opera", env.archive)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	requireContains(t, out, "Wrote "+env.archive)
	if _, err := os.Stat(env.archive + ".bak"); err != nil {
		t.Fatalf("backup missing: %v", err)
	}

	out, _, err = runCLI(t, "read", "--format", "json", env.archive)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doc := decodeDocument(t, out)
	if _, ok := doc["publisher"]; ok {
		t.Fatalf("publisher survived delete-keys: %v", doc["publisher"])
	}
	if doc["tagger"] != "comicbox" {
		t.Fatalf("tagger = %v, want comicbox", doc["tagger"])
	}
	genres, _ := doc["genres"].([]any)
	if len(genres) != 1 || genres[0] != "Space Opera" {
		t.Fatalf("genres = %v, want the written genre", doc["genres"])
	}
}

func TestExportWritesSidecars(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "export")

	out, _, err := runCLI(t, "export", "--formats", "comicbox_yaml", "--dir", dir, env.archive)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, filepath.Join(dir, "comicbox.yaml"))
	data, err := os.ReadFile(filepath.Join(dir, "comicbox.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	requireContains(t, string(data), "Chapter One")
}

func TestParseFilename(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "parse-filename", "--format", "json", "Saga 001 (2012).cbz")
	if err != nil {
		t.Fatalf("parse-filename: %v", err)
	}
	doc := decodeDocument(t, out)
	if doc["year"] != float64(2012) {
		t.Fatalf("year = %v, want 2012", doc["year"])
	}
}

func TestIdentifierCommands(t *testing.T) {
	setupCLITestEnv(t)

	out, _, err := runCLI(t, "identifier", "parse", "--json", "urn:comicvine:issue:4000-123")
	if err != nil {
		t.Fatalf("identifier parse: %v", err)
	}
	var views []identifierView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(views) != 1 || views[0].NID != "comicvine" || views[0].NSS != "123" {
		t.Fatalf("views = %+v", views)
	}

	out, _, err = runCLI(t, "identifier", "link", "metron", "44")
	if err != nil {
		t.Fatalf("identifier link: %v", err)
	}
	requireContains(t, out, "https://")

	if _, _, err := runCLI(t, "identifier", "link", "nowhere", "1"); err == nil {
		t.Fatal("unknown namespace accepted")
	}
}

func TestCatalogLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)
	library := filepath.Dir(env.archive)

	out, _, err := runCLI(t, "catalog", "scan", library)
	if err != nil {
		t.Fatalf("catalog scan: %v", err)
	}
	requireContains(t, out, "Added 1")

	out, _, err = runCLI(t, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "Chapter One")

	out, _, err = runCLI(t, "catalog", "show", "--format", "json", env.archive)
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	if doc := decodeDocument(t, out); doc["title"] != "Chapter One" {
		t.Fatalf("title = %v", doc["title"])
	}

	out, _, err = runCLI(t, "catalog", "remove", env.archive)
	if err != nil {
		t.Fatalf("catalog remove: %v", err)
	}
	requireContains(t, out, "Removed")

	out, _, err = runCLI(t, "catalog", "list")
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "Catalog is empty")
}

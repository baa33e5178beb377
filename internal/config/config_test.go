package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"comicbox/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("COMICBOX_CONFIG", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCatalog := filepath.Join(tempHome, ".local", "share", "comicbox", "catalog.db")
	if cfg.Catalog.Path != wantCatalog {
		t.Fatalf("unexpected catalog path: got %q want %q", cfg.Catalog.Path, wantCatalog)
	}
	if got := strings.Join(cfg.Sources.Precedence, ","); got != strings.Join(config.KnownFormats, ",") {
		t.Fatalf("unexpected default precedence: %q", got)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigNormalizesFormatNames(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[logging]
level = "DEBUG"

[sources]
precedence = ["Filename", "comicinfo", "comicbox-json", "cli"]
read = ["comicinfo"]

[write]
formats = ["MetronInfo"]

[catalog]
path = "~/catalog.db"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level: %q", cfg.Logging.Level)
	}
	if got := strings.Join(cfg.Sources.Precedence, ","); got != "filename,comicinfo,comicbox_json,cli" {
		t.Fatalf("unexpected precedence: %q", got)
	}
	if got := strings.Join(cfg.Sources.Read, ","); got != "comicinfo" {
		t.Fatalf("unexpected read filter: %q", got)
	}
	if cfg.Write.Formats[0] != "metroninfo" {
		t.Fatalf("unexpected write formats: %v", cfg.Write.Formats)
	}
	if !filepath.IsAbs(cfg.Catalog.Path) || strings.Contains(cfg.Catalog.Path, "~") {
		t.Fatalf("expected expanded catalog path, got %q", cfg.Catalog.Path)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := map[string]string{
		"unknown precedence": "[sources]\nprecedence = [\"comicinfo\", \"acbf\"]\n",
		"duplicate":          "[sources]\nprecedence = [\"comicinfo\", \"ComicInfo\"]\n",
		"filename write":     "[write]\nformats = [\"filename\"]\n",
		"bad log format":     "[logging]\nformat = \"xml\"\n",
		"unknown key":        "[sources]\nprecedance = [\"cli\"]\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("COMICBOX_LOG_LEVEL", "warn")
	t.Setenv("COMICBOX_CATALOG_PATH", filepath.Join(home, "alt.db"))

	cfg, _, _, err := config.Load(filepath.Join(home, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected level: %q", cfg.Logging.Level)
	}
	if cfg.Catalog.Path != filepath.Join(home, "alt.db") {
		t.Fatalf("unexpected catalog path: %q", cfg.Catalog.Path)
	}
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("COMICBOX_CONFIG", "")
	xdg := filepath.Join(home, "xdg")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	project := t.TempDir()
	t.Chdir(project)

	write := func(path, level string) {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		content := "[logging]\nlevel = \"" + level + "\"\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}

	projectFile := filepath.Join(project, "comicbox.toml")
	write(projectFile, "error")
	cfg, resolved, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != projectFile || cfg.Logging.Level != "error" {
		t.Fatalf("project file not used: %q level=%q", resolved, cfg.Logging.Level)
	}

	xdgFile := filepath.Join(xdg, "comicbox", "config.toml")
	write(xdgFile, "warn")
	cfg, resolved, _, err = config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != xdgFile || cfg.Logging.Level != "warn" {
		t.Fatalf("xdg file not preferred: %q level=%q", resolved, cfg.Logging.Level)
	}

	envFile := filepath.Join(home, "elsewhere.toml")
	write(envFile, "debug")
	t.Setenv("COMICBOX_CONFIG", envFile)
	cfg, resolved, _, err = config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != envFile || cfg.Logging.Level != "debug" {
		t.Fatalf("COMICBOX_CONFIG not preferred: %q level=%q", resolved, cfg.Logging.Level)
	}
}

func TestEncodeReloads(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	cfg := config.Default()
	cfg.Write.Formats = []string{"metroninfo", "comet"}
	cfg.Sources.ImportPaths = []string{filepath.Join(home, "extra.yaml")}
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	path := filepath.Join(home, "encoded.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loaded, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("encoded config failed to load: %v", err)
	}
	if got := strings.Join(loaded.Write.Formats, ","); got != "metroninfo,comet" {
		t.Fatalf("unexpected write formats: %q", got)
	}
	if len(loaded.Sources.ImportPaths) != 1 || loaded.Sources.ImportPaths[0] != cfg.Sources.ImportPaths[0] {
		t.Fatalf("unexpected import paths: %v", loaded.Sources.ImportPaths)
	}
}

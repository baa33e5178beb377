package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"comicbox/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Sources controls which metadata sources are read and how they rank.
type Sources struct {
	// Precedence lists format names from lowest to highest precedence.
	Precedence []string `toml:"precedence"`
	// Read lists the formats to read. Empty means every format.
	Read []string `toml:"read"`
	// ImportPaths are extra metadata files merged after embedded sources.
	ImportPaths []string `toml:"import_paths"`
}

// Write controls metadata write-back.
type Write struct {
	Formats      []string `toml:"formats"`
	Tagger       string   `toml:"tagger"`
	ComputePages bool     `toml:"compute_pages"`
	DeleteKeys   []string `toml:"delete_keys"`
	StampNotes   bool     `toml:"stamp_notes"`
}

// Catalog configures the persistent store of synthesized documents.
type Catalog struct {
	Path string `toml:"path"`
}

// Config is the decoded config.toml. Sections map one to one onto TOML tables.
type Config struct {
	Logging Logging `toml:"logging"`
	Sources Sources `toml:"sources"`
	Write   Write   `toml:"write"`
	Catalog Catalog `toml:"catalog"`
}

// DefaultConfigPath is where config init writes when no path is given.
func DefaultConfigPath() (string, error) {
	if base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); base != "" {
		return expandPath(filepath.Join(base, "comicbox", "config.toml"))
	}
	return expandPath(defaultConfigPath)
}

// Load reads the first config file found among the search locations, applies
// environment overrides and validates the result. With an explicit path only
// that file is considered; a missing file yields defaults.
func Load(path string) (*Config, string, bool, error) {
	candidates, err := searchPaths(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	resolved, exists := candidates[0], false
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			continue
		}
		resolved, exists = candidate, true
		break
	}

	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

// searchPaths lists config locations in lookup order. The first entry is
// reported when none exist.
func searchPaths(explicit string) ([]string, error) {
	var raw []string
	if explicit != "" {
		raw = []string{explicit}
	} else {
		if env := strings.TrimSpace(os.Getenv("COMICBOX_CONFIG")); env != "" {
			raw = append(raw, env)
		}
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		raw = append(raw, defaultPath, "comicbox.toml")
	}
	paths := make([]string, 0, len(raw))
	for _, p := range raw {
		expanded, err := expandPath(p)
		if err != nil {
			return nil, err
		}
		paths = append(paths, expanded)
	}
	return paths, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// EnsureDirectories creates the directories the catalog and log files live in.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Catalog.Path)}
	if c.Logging.Dir != "" {
		dirs = append(dirs, c.Logging.Dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath resolves a leading ~ and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCatalogPath() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "comicbox", "catalog.db")
	}
	return defaultCatalogFile
}

// CreateSample writes the commented sample configuration to path.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return fileutil.WriteFileAtomic(path, []byte(sampleConfig))
}

package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeLogging()
	c.normalizeSources()
	c.normalizeWrite()
	return c.normalizePaths()
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("COMICBOX_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func (c *Config) normalizeSources() {
	c.Sources.Precedence = normalizeNames(c.Sources.Precedence)
	if len(c.Sources.Precedence) == 0 {
		c.Sources.Precedence = append([]string(nil), KnownFormats...)
	}
	c.Sources.Read = normalizeNames(c.Sources.Read)
}

func (c *Config) normalizeWrite() {
	c.Write.Formats = normalizeNames(c.Write.Formats)
	c.Write.Tagger = strings.TrimSpace(c.Write.Tagger)
	keys := c.Write.DeleteKeys[:0]
	for _, key := range c.Write.DeleteKeys {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	c.Write.DeleteKeys = keys
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := os.LookupEnv("COMICBOX_CATALOG_PATH"); ok && strings.TrimSpace(value) != "" {
		c.Catalog.Path = value
	}
	if strings.TrimSpace(c.Catalog.Path) == "" {
		c.Catalog.Path = defaultCatalogPath()
	}
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	for i, path := range c.Sources.ImportPaths {
		if c.Sources.ImportPaths[i], err = expandPath(strings.TrimSpace(path)); err != nil {
			return fmt.Errorf("sources.import_paths[%d]: %w", i, err)
		}
	}
	return nil
}

// normalizeNames lowercases format names and maps dashes to underscores so
// "comicbox-json" and "ComicBox_JSON" both match.
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		name = strings.ReplaceAll(name, "-", "_")
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

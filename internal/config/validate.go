package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateWrite(); err != nil {
		return err
	}
	if c.Catalog.Path == "" {
		return errors.New("catalog.path must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateSources() error {
	seen := make(map[string]struct{}, len(c.Sources.Precedence))
	for _, name := range c.Sources.Precedence {
		if !slices.Contains(KnownFormats, name) {
			return fmt.Errorf("sources.precedence: unknown format %q", name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("sources.precedence: format %q listed twice", name)
		}
		seen[name] = struct{}{}
	}
	for _, name := range c.Sources.Read {
		if !slices.Contains(KnownFormats, name) {
			return fmt.Errorf("sources.read: unknown format %q", name)
		}
	}
	return nil
}

func (c *Config) validateWrite() error {
	for _, name := range c.Write.Formats {
		if !slices.Contains(KnownFormats, name) {
			return fmt.Errorf("write.formats: unknown format %q", name)
		}
		if name == "filename" {
			return errors.New("write.formats: filename cannot be written into an archive")
		}
	}
	return nil
}

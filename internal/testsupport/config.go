package testsupport

import (
	"path/filepath"
	"testing"

	"comicbox/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Catalog.Path = filepath.Join(base, "data", "catalog.db")
	cfgVal.Logging.Dir = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithWriteFormats overrides the formats written back into archives.
func WithWriteFormats(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Write.Formats = names
	}
}

// WithPrecedence overrides the source precedence, lowest first.
func WithPrecedence(names ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sources.Precedence = names
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Catalog.Path))
}

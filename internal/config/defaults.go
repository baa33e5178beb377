package config

const (
	defaultConfigPath  = "~/.config/comicbox/config.toml"
	defaultCatalogFile = "~/.local/share/comicbox/catalog.db"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultTagger      = "comicbox"
)

// KnownFormats lists every metadata format name, lowest default precedence first.
var KnownFormats = []string{
	"filename",
	"pdf",
	"comet",
	"comicbookinfo",
	"comicinfo",
	"metroninfo",
	"comicbox_yaml",
	"comicbox_json",
	"cli",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	precedence := make([]string, len(KnownFormats))
	copy(precedence, KnownFormats)
	return Config{
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Sources: Sources{
			Precedence: precedence,
		},
		Write: Write{
			Formats:      []string{"comicinfo"},
			Tagger:       defaultTagger,
			ComputePages: true,
			StampNotes:   true,
		},
		Catalog: Catalog{
			Path: defaultCatalogPath(),
		},
	}
}

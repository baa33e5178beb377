package comic

import (
	"fmt"
	"slices"

	"comicbox/internal/config"
	"comicbox/internal/formats"
	"comicbox/internal/synth"
)

// Options controls loading and write-back.
type Options struct {
	// Precedence lists formats lowest first.
	Precedence []formats.Format
	// Read limits the formats read. Empty reads every format.
	Read        []formats.Format
	ImportPaths []string
	// CLI holds metadata strings given on the command line.
	CLI []string

	WriteFormats []formats.Format
	Tagger       string
	ComputePages bool
	StampNotes   bool
	DeleteKeys   []string
}

// DefaultOptions reads every format at the default precedence and writes
// ComicInfo.
func DefaultOptions() Options {
	return Options{
		Precedence:   slices.Clone(formats.All),
		WriteFormats: []formats.Format{formats.FormatComicInfo},
		Tagger:       "comicbox",
		ComputePages: true,
		StampNotes:   true,
	}
}

// OptionsFromConfig converts the [sources] and [write] sections.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}
	var err error
	if opts.Precedence, err = parseFormats("sources.precedence", cfg.Sources.Precedence); err != nil {
		return Options{}, err
	}
	if len(opts.Precedence) == 0 {
		opts.Precedence = slices.Clone(formats.All)
	}
	if opts.Read, err = parseFormats("sources.read", cfg.Sources.Read); err != nil {
		return Options{}, err
	}
	if opts.WriteFormats, err = parseFormats("write.formats", cfg.Write.Formats); err != nil {
		return Options{}, err
	}
	opts.ImportPaths = slices.Clone(cfg.Sources.ImportPaths)
	opts.Tagger = cfg.Write.Tagger
	opts.ComputePages = cfg.Write.ComputePages
	opts.StampNotes = cfg.Write.StampNotes
	opts.DeleteKeys = slices.Clone(cfg.Write.DeleteKeys)
	return opts, nil
}

func parseFormats(field string, names []string) ([]formats.Format, error) {
	out := make([]formats.Format, 0, len(names))
	for _, name := range names {
		f, err := formats.ParseFormat(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func (o Options) reads(f formats.Format) bool {
	return len(o.Read) == 0 || slices.Contains(o.Read, f)
}

// rank places unlisted formats below every listed one, except CLI strings,
// which outrank everything unless listed.
func (o Options) rank(f formats.Format) int {
	if r := synth.Rank(o.Precedence, f); r >= 0 {
		return r
	}
	if f == formats.FormatCLI {
		return len(o.Precedence)
	}
	return -1
}

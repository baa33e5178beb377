package formats

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrUnknownFormat is returned for format names no adapter handles.
var ErrUnknownFormat = errors.New("unknown metadata format")

// Format names one metadata standard.
type Format string

const (
	FormatFilename      Format = "filename"
	FormatPDF           Format = "pdf"
	FormatCoMet         Format = "comet"
	FormatComicBookInfo Format = "comicbookinfo"
	FormatComicInfo     Format = "comicinfo"
	FormatMetronInfo    Format = "metroninfo"
	FormatComicboxYAML  Format = "comicbox_yaml"
	FormatComicboxJSON  Format = "comicbox_json"
	FormatCLI           Format = "cli"
)

// All lists every format, lowest default precedence first.
var All = []Format{
	FormatFilename,
	FormatPDF,
	FormatCoMet,
	FormatComicBookInfo,
	FormatComicInfo,
	FormatMetronInfo,
	FormatComicboxYAML,
	FormatComicboxJSON,
	FormatCLI,
}

var memberNames = map[Format]string{
	FormatFilename:      "comicbox-filename.txt",
	FormatPDF:           "pdf.xml",
	FormatCoMet:         "CoMet.xml",
	FormatComicBookInfo: "comic-book-info.json",
	FormatComicInfo:     "ComicInfo.xml",
	FormatMetronInfo:    "MetronInfo.xml",
	FormatComicboxYAML:  "comicbox.yaml",
	FormatComicboxJSON:  "comicbox.json",
	FormatCLI:           "comicbox-cli.txt",
}

var formatAliases = map[string]Format{
	"cr":            FormatComicInfo,
	"ci":            FormatComicInfo,
	"cix":           FormatComicInfo,
	"comicinfoxml":  FormatComicInfo,
	"comicrack":     FormatComicInfo,
	"mi":            FormatMetronInfo,
	"mix":           FormatMetronInfo,
	"metroninfoxml": FormatMetronInfo,
	"cometxml":      FormatCoMet,
	"cbi":           FormatComicBookInfo,
	"cb":            FormatComicboxYAML,
	"yaml":          FormatComicboxYAML,
	"json":          FormatComicboxJSON,
	"cbj":           FormatComicboxJSON,
	"fn":            FormatFilename,
	"xmp":           FormatPDF,
	"comicboxcli":   FormatCLI,
}

// String returns the config name of the format.
func (f Format) String() string { return string(f) }

// MemberName is the archive member or sidecar file the format is stored in.
func (f Format) MemberName() string { return memberNames[f] }

// ParseFormat resolves a format name or short alias, case-insensitively.
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(key)
	for _, f := range All {
		if string(f) == key {
			return f, nil
		}
	}
	if f, ok := formatAliases[strings.ReplaceAll(key, "_", "")]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ForMemberName returns the format stored in an archive member, matching
// the base name case-insensitively.
func ForMemberName(name string) (Format, bool) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	for _, f := range All {
		if f == FormatFilename || f == FormatCLI {
			continue
		}
		if strings.EqualFold(base, memberNames[f]) {
			return f, true
		}
	}
	return "", false
}

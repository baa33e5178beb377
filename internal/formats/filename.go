package formats

import (
	"errors"
	"strings"

	"comicbox/internal/filename"
	"comicbox/internal/metadata"
)

var errNotFilename = errors.New("text is a structured document, not a file name")

var filenameTagMap = TagMap{
	{Tag: "series", Path: metadata.PathSeriesName},
	{Tag: "volume", Path: metadata.PathVolumeNumber},
	{Tag: "issue", Path: metadata.PathIssueName},
	{Tag: "issue_count", Path: metadata.PathVolumeIssueCount},
	{Tag: "year", Path: metadata.KeyYear},
	{Tag: "title", Path: metadata.KeyTitle},
	{Tag: "ext", Path: metadata.KeyExt},
	{Tag: "remainder", Path: metadata.KeyRemainders},
}

// Filename reads metadata from an archive file name, or from the first line
// of comicbox-filename.txt, and writes the preferred file name.
type Filename struct{}

// NewFilename returns the file name adapter.
func NewFilename() *Filename {
	return &Filename{}
}

func (a *Filename) Format() Format { return FormatFilename }

func (a *Filename) TagMap() TagMap { return filenameTagMap }

func (a *Filename) Decode(raw []byte) (metadata.Metadata, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, ErrEmptyDocument
	}
	if line, _, ok := strings.Cut(text, "\n"); ok {
		text = strings.TrimSpace(line)
	}
	if strings.HasPrefix(text, "<") || strings.HasPrefix(text, "{") || strings.HasPrefix(text, comicboxRoot+":") {
		return nil, errNotFilename
	}
	return filename.Parse(text).Prune(), nil
}

func (a *Filename) Encode(md metadata.Metadata) ([]byte, error) {
	return []byte(filename.Unparse(md)), nil
}

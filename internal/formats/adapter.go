package formats

import (
	"errors"
	"fmt"
	"log/slog"

	"comicbox/internal/fields"
	"comicbox/internal/logging"
	"comicbox/internal/metadata"
)

// Adapter converts one metadata standard to and from canonical documents.
type Adapter interface {
	Format() Format
	// Decode parses raw. Only input that is not well formed returns an
	// error; bad fields are dropped with a warning.
	Decode(raw []byte) (metadata.Metadata, error)
	Encode(md metadata.Metadata) ([]byte, error)
	TagMap() TagMap
}

// ErrEmptyDocument is returned when input holds no document at all.
var ErrEmptyDocument = errors.New("empty metadata document")

// Registry holds one adapter per format.
type Registry struct {
	logger   *slog.Logger
	adapters map[Format]Adapter
}

// NewRegistry builds adapters for every format.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "formats")
	c := fields.NewCoercer(logger)
	r := &Registry{logger: logger, adapters: make(map[Format]Adapter, len(All))}
	r.add(NewComicInfo(c))
	r.add(NewMetronInfo(c))
	r.add(NewCoMet(c))
	r.add(NewComicBookInfo(c))
	r.add(NewComicboxJSON(c))
	r.add(NewComicboxYAML(c))
	r.add(NewFilename())
	r.add(NewPDF(c, r))
	r.add(NewCLI(c, r))
	return r
}

func (r *Registry) add(a Adapter) {
	r.adapters[a.Format()] = a
}

// Adapter returns the adapter for f.
func (r *Registry) Adapter(f Format) (Adapter, error) {
	a, ok := r.adapters[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	return a, nil
}

// Decode parses raw as format f.
func (r *Registry) Decode(f Format, raw []byte) (metadata.Metadata, error) {
	a, err := r.Adapter(f)
	if err != nil {
		return nil, err
	}
	return a.Decode(raw)
}

// Encode renders md as format f.
func (r *Registry) Encode(f Format, md metadata.Metadata) ([]byte, error) {
	a, err := r.Adapter(f)
	if err != nil {
		return nil, err
	}
	return a.Encode(md)
}

// DecodeSource decodes raw and turns a document failure into nil plus one
// warning naming the origin.
func (r *Registry) DecodeSource(f Format, origin string, raw []byte) metadata.Metadata {
	md, err := r.Decode(f, raw)
	if err != nil {
		logging.WarnWithContext(r.logger, "metadata source dropped", "source_decode",
			logging.String(logging.FieldFormat, string(f)),
			logging.String(logging.FieldOrigin, origin),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "repair or remove the metadata file"),
			logging.String(logging.FieldImpact, "source excluded from synthesis"),
		)
		return nil
	}
	return md
}

// Sniff guesses the format of an untyped document. It returns an empty
// format when no structured adapter accepts raw.
func (r *Registry) Sniff(raw []byte) (Format, metadata.Metadata) {
	for _, f := range []Format{FormatComicInfo, FormatMetronInfo, FormatCoMet, FormatComicboxJSON, FormatComicBookInfo, FormatComicboxYAML} {
		md, err := r.Decode(f, raw)
		if err == nil && len(md) > 0 {
			return f, md
		}
	}
	return "", nil
}

package formats

import (
	"fmt"

	"comicbox/internal/enums"
	"comicbox/internal/fields"
	"comicbox/internal/metadata"
)

// yesNoRule is a boolean spelled Yes or No on the wire.
type yesNoRule struct{}

func (yesNoRule) Name() string { return "yes_no" }

func (yesNoRule) Decode(raw any) (any, error) {
	return fields.BoolRule{}.Decode(raw)
}

func (yesNoRule) Encode(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("%T is not a boolean", value)
	}
	if b {
		return "Yes", nil
	}
	return "No", nil
}

// formatRule normalizes known format spellings and keeps unknown ones.
type formatRule struct{}

func (formatRule) Name() string { return "format" }

func (formatRule) Decode(raw any) (any, error) {
	s, err := fields.RawString(raw)
	if err != nil || s == "" {
		return nil, err
	}
	return enums.NormalizeFormat(s), nil
}

func (formatRule) Encode(value any) (any, error) {
	return fields.StringRule{}.Encode(value)
}

// directionRule reads CamelCase or code spellings and writes CamelCase.
type directionRule struct{}

func (directionRule) Name() string { return "reading_direction" }

func (directionRule) Decode(raw any) (any, error) {
	s, err := fields.RawString(raw)
	if err != nil || s == "" {
		return nil, err
	}
	if code := enums.ReadingDirections.MapOne(s); code != "" {
		return code, nil
	}
	return nil, fmt.Errorf("unknown reading direction %q", s)
}

func (directionRule) Encode(value any) (any, error) {
	s, _ := value.(string)
	if name := enums.DirectionName(s); name != "" {
		return name, nil
	}
	return nil, fmt.Errorf("unknown reading direction %v", value)
}

var (
	comicInfoAgeRating = fields.EnumRule{Table: enums.ComicInfoAgeRatings}
	metronAgeRating    = fields.EnumRule{Table: enums.MetronAgeRatings}
	metronFormat       = fields.EnumRule{Table: enums.MetronFormats}
	languageCode       = fields.LanguageRule{EncodeCode: true}
	countryCode        = fields.CountryRule{EncodeCode: true}
	rawInt             = fields.AtLeast("integer", 0)
)

// issueName returns the issue designation, built from the number and suffix
// when no name is stored.
func issueName(md metadata.Metadata) string {
	issue := md.Issue()
	if issue.Name != "" {
		return issue.Name
	}
	if issue.Number == nil {
		return issue.Suffix
	}
	return issue.Number.String() + issue.Suffix
}

// encodeView clones md and fills derived fields adapters write.
func encodeView(md metadata.Metadata) metadata.Metadata {
	view := md.Clone()
	if view == nil {
		view = metadata.New()
	}
	if name := issueName(view); name != "" {
		view.SetPath(metadata.PathIssueName, name)
	}
	return view
}

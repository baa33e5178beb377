package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tailscale/hujson"

	"comicbox/internal/fields"
	"comicbox/internal/metadata"
)

// decodeJSONObject parses JSON that may carry comments and trailing commas.
// Numbers stay json.Number so decimals keep their exact text.
func decodeJSONObject(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyDocument
	}
	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("json document is %T, not an object", value)
	}
	return obj, nil
}

// lookupKey finds key exactly, then case-insensitively.
func lookupKey(obj map[string]any, key string) (any, bool) {
	if v, ok := obj[key]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func decodeObjectScalars(c *fields.Coercer, md metadata.Metadata, obj map[string]any, m TagMap) {
	for _, p := range m {
		if v, ok := lookupKey(obj, p.Tag); ok {
			decodeInto(c, md, p, v)
		}
	}
}

func encodeObjectScalars(c *fields.Coercer, md metadata.Metadata, m TagMap) map[string]any {
	out := make(map[string]any, len(m))
	for _, p := range m {
		if v := encodeFrom(c, md, p); v != nil {
			out[p.Tag] = v
		}
	}
	return out
}

func marshalJSON(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

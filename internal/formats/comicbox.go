package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"comicbox/internal/fields"
	"comicbox/internal/metadata"
)

// ComicboxJSON reads and writes comicbox.json.
type ComicboxJSON struct {
	c      *fields.Coercer
	tagMap TagMap
}

// NewComicboxJSON returns the native JSON adapter.
func NewComicboxJSON(c *fields.Coercer) *ComicboxJSON {
	return &ComicboxJSON{c: c, tagMap: nativeTagMap()}
}

func (a *ComicboxJSON) Format() Format { return FormatComicboxJSON }

func (a *ComicboxJSON) TagMap() TagMap { return a.tagMap }

func (a *ComicboxJSON) Decode(raw []byte) (metadata.Metadata, error) {
	obj, err := decodeJSONObject(raw)
	if err != nil {
		return nil, err
	}
	body, err := nativeBody(obj)
	if err != nil {
		return nil, err
	}
	return fromTree(a.c, body), nil
}

func (a *ComicboxJSON) Encode(md metadata.Metadata) ([]byte, error) {
	return marshalJSON(map[string]any{comicboxRoot: toTree(a.c, md)})
}

func nativeBody(obj map[string]any) (map[string]any, error) {
	raw, ok := obj[comicboxRoot]
	if !ok {
		return nil, fmt.Errorf("missing %q root key", comicboxRoot)
	}
	if raw == nil {
		return map[string]any{}, nil
	}
	body, ok := asObject(raw)
	if !ok {
		return nil, fmt.Errorf("%q is %T, not an object", comicboxRoot, raw)
	}
	return body, nil
}

// ComicboxYAML reads and writes comicbox.yaml.
type ComicboxYAML struct {
	c      *fields.Coercer
	tagMap TagMap
}

// NewComicboxYAML returns the native YAML adapter.
func NewComicboxYAML(c *fields.Coercer) *ComicboxYAML {
	return &ComicboxYAML{c: c, tagMap: nativeTagMap()}
}

func (a *ComicboxYAML) Format() Format { return FormatComicboxYAML }

func (a *ComicboxYAML) TagMap() TagMap { return a.tagMap }

func (a *ComicboxYAML) Decode(raw []byte) (metadata.Metadata, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyDocument
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	obj, ok := asObject(doc)
	if !ok {
		return nil, fmt.Errorf("yaml document is %T, not a mapping", doc)
	}
	body, err := nativeBody(obj)
	if err != nil {
		return nil, err
	}
	return fromTree(a.c, body), nil
}

func (a *ComicboxYAML) Encode(md metadata.Metadata) ([]byte, error) {
	return MarshalYAML(map[string]any{comicboxRoot: toTree(a.c, md)})
}

// MarshalYAML renders a plain tree with canonical keys first in document
// order and a 2 space indent.
func MarshalYAML(tree any) ([]byte, error) {
	node, err := yamlNode(tree)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlNode(value any) (*yaml.Node, error) {
	switch v := value.(type) {
	case map[string]any:
		node := &yaml.Node{Kind: yaml.MappingNode}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		slices.SortFunc(keys, compareTreeKeys)
		for _, key := range keys {
			child, err := yamlNode(v[key])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", key), child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v {
			child, err := yamlNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case []string:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range v {
			node.Content = append(node.Content, scalarNode("!!str", item))
		}
		return node, nil
	case string:
		return scalarNode("!!str", v), nil
	case json.Number:
		if strings.ContainsAny(v.String(), ".eE") {
			return scalarNode("!!float", v.String()), nil
		}
		return scalarNode("!!int", v.String()), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(v)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(v, 10)), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(v)), nil
	}
	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return nil, err
	}
	return node, nil
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func compareTreeKeys(a, b string) int {
	ra, rb := treeKeyRank(a), treeKeyRank(b)
	if ra != rb {
		return ra - rb
	}
	return strings.Compare(a, b)
}

func treeKeyRank(key string) int {
	if i := slices.Index(treeKeyOrder, key); i >= 0 {
		return i
	}
	return len(treeKeyOrder)
}

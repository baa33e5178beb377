package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"comicbox/internal/formats"
	"comicbox/internal/metadata"
)

const (
	outputYAML  = "yaml"
	outputJSON  = "json"
	outputTable = "table"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeDocument prints md as YAML, JSON, a key/value table or any metadata
// format name.
func writeDocument(cmd *cobra.Command, registry *formats.Registry, md metadata.Metadata, output string) error {
	out := cmd.OutOrStdout()
	var f formats.Format
	switch output {
	case outputYAML, "":
		f = formats.FormatComicboxYAML
	case outputJSON:
		f = formats.FormatComicboxJSON
	case outputTable:
		rows, err := documentRows(registry, md)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderTable([]string{"Key", "Value"}, rows, shouldColorize(out)))
		return nil
	default:
		parsed, err := formats.ParseFormat(output)
		if err != nil {
			return fmt.Errorf("output format: %w", err)
		}
		f = parsed
	}
	data, err := registry.Encode(f, md)
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = out.Write(data)
	return err
}

// documentRows flattens the top level of the native JSON tree into rows.
// Nested values are shown as compact JSON.
func documentRows(registry *formats.Registry, md metadata.Metadata) ([][]string, error) {
	data, err := registry.Encode(formats.FormatComicboxJSON, md)
	if err != nil {
		return nil, err
	}
	var doc map[string]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	tree := doc["comicbox"]
	keys := make([]string, 0, len(tree))
	for key := range tree {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	slices.SortStableFunc(keys, func(a, b string) int {
		return keyPosition(a) - keyPosition(b)
	})
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, cellValue(tree[key])})
	}
	return rows, nil
}

func keyPosition(key string) int {
	if i := slices.Index(metadata.Keys, key); i >= 0 {
		return i
	}
	return len(metadata.Keys)
}

func cellValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

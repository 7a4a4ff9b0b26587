// Package tabload reads ordered key-value tables from YAML and JSON files.
// The order of the entries in the file defines the insertion order.
package tabload

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/graph-guard/odict/pkg/dict"
	"github.com/graph-guard/odict/pkg/keycode"
	"github.com/graph-guard/odict/pkg/tabload/header"
	"github.com/tidwall/gjson"
	yaml "gopkg.in/yaml.v3"
)

type Format int8

const (
	_ Format = iota
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int8(f))
}

// FormatOf returns the format of the file at path based on its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("unsupported table file extension: %q", path)
}

// Table is a sequence of key-value pairs in file order.
// Keys may contain duplicates, they're rejected when the table
// is turned into a dictionary.
type Table struct {
	Header header.Header
	Keys   []string
	Values []any
}

// Dict creates a dictionary from the table.
// A hasher defined in the table header overrides o.Hasher.
func (t *Table) Dict(o dict.Options) (dict.Dict[string, any], error) {
	if t.Header.Hasher != "" {
		h, err := keycode.HasherByName(t.Header.Hasher, 0)
		if err != nil {
			return dict.Dict[string, any]{}, fmt.Errorf("table header: %w", err)
		}
		o.Hasher = h
	}
	return dict.From[string, any](keycode.String{}, o, t.Keys, t.Values)
}

var ErrNotAnObject = errors.New("root is not an object")

// Load reads the table file at path from filesystem.
func Load(filesystem fs.FS, path string) (*Table, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(filesystem, path)
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	t, err := Parse(f, b)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// Parse parses a table from src.
func Parse(f Format, src []byte) (*Table, error) {
	h, body, err := header.Parse(src)
	if err != nil {
		return nil, err
	}
	t := &Table{Header: h}
	switch f {
	case FormatYAML:
		err = parseYAML(t, body)
	case FormatJSON:
		err = parseJSON(t, body)
	default:
		err = fmt.Errorf("unsupported format: %s", f)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func parseYAML(t *Table, src []byte) error {
	if len(bytes.TrimSpace(src)) < 1 {
		return nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return err
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) < 1 {
			return nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 || (root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null") {
		// Comments only or an empty document
		return nil
	}
	if root.Kind != yaml.MappingNode {
		return ErrNotAnObject
	}
	t.Keys = make([]string, 0, len(root.Content)/2)
	t.Values = make([]any, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: key is not a scalar", k.Line)
		}
		var value any
		if err := v.Decode(&value); err != nil {
			return fmt.Errorf("line %d: %w", v.Line, err)
		}
		t.Keys = append(t.Keys, k.Value)
		t.Values = append(t.Values, value)
	}
	return nil
}

func parseJSON(t *Table, src []byte) error {
	if !gjson.ValidBytes(src) {
		return errors.New("invalid json")
	}
	root := gjson.ParseBytes(src)
	if !root.IsObject() {
		return ErrNotAnObject
	}
	root.ForEach(func(key, value gjson.Result) bool {
		t.Keys = append(t.Keys, key.String())
		t.Values = append(t.Values, value.Value())
		return true
	})
	return nil
}

// ParseValue parses a single YAML value as used by the command line.
func ParseValue(s string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

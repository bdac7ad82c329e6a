package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/ineffable/internal/config"
)

// Format is a descriptor document syntax.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat parses "toml", "yaml", "yml" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFor returns the format implied by a file extension.
func FormatFor(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Unmarshal parses data into a descriptor document. name labels errors.
func Unmarshal(name string, data []byte, format Format) (map[string]any, error) {
	var doc map[string]any
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			pe := &ParseError{Path: name, Message: err.Error(), Err: err}
			var de *toml.DecodeError
			if errors.As(err, &de) {
				pe.Line, pe.Column = de.Position()
			}
			return nil, pe
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ParseError{Path: name, Message: err.Error(), Err: err}
		}
	case FormatJSON:
		if !gjson.ValidBytes(data) {
			return nil, &ParseError{Path: name, Message: "invalid JSON"}
		}
		res := gjson.ParseBytes(data)
		if !res.IsObject() {
			return nil, &ParseError{Path: name, Message: "document must be a JSON object"}
		}
		doc, _ = res.Value().(map[string]any)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}

// Marshal writes cfg as a descriptor document.
func Marshal(cfg *config.InputConfig, format Format) ([]byte, error) {
	doc := Encode(cfg)
	switch format {
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		return marshalJSON(doc)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// marshalJSON writes doc key by key so settings come first and groups and
// actions appear in sorted order.
func marshalJSON(doc map[string]any) ([]byte, error) {
	out := []byte("{}")
	var err error
	for _, key := range sortedKeys(doc) {
		if key == KeyBindings {
			continue
		}
		if out, err = sjson.SetBytes(out, escapePath(key), doc[key]); err != nil {
			return nil, err
		}
	}

	groups, _ := doc[KeyBindings].(map[string]any)
	for _, group := range sortedKeys(groups) {
		acts, _ := groups[group].(map[string]any)
		for _, act := range sortedKeys(acts) {
			path := KeyBindings + "." + escapePath(group) + "." + escapePath(act)
			if out, err = sjson.SetBytes(out, path, acts[act]); err != nil {
				return nil, fmt.Errorf("encoding %s.%s: %w", group, act, err)
			}
		}
	}
	return pretty.Pretty(out), nil
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`, ".", `\.`, "*", `\*`, "?", `\?`,
	"|", `\|`, "#", `\#`, "@", `\@`, ":", `\:`,
)

func escapePath(key string) string {
	return pathEscaper.Replace(key)
}

package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization of a country data file, also its extension.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatJSON, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown data format %q, use json or yaml", s)
	}
}

// Decode parses a code to name mapping.
func (f Format) Decode(data []byte) (map[string]string, error) {
	names := make(map[string]string)
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &names)
	default:
		err = json.Unmarshal(data, &names)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	return names, nil
}

// Encode serializes a code to name mapping.
func (f Format) Encode(names map[string]string) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(names)
	default:
		return json.MarshalIndent(names, "", "  ")
	}
}

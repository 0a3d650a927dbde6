package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// IsStructured reports whether documents of this format are merged by the
// structural engine rather than patched line by line.
func (f Format) IsStructured() bool {
	return f != FormatText
}

// DetectFormat derives the format from the path extension, falling back to
// text for anything unrecognised.
func DetectFormat(path string) Format {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "json":
		return FormatJSON
	case "toml":
		return FormatTOML
	case "yml", "yaml":
		return FormatYAML
	default:
		return FormatText
	}
}

func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yml", "yaml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return FormatText, fmt.Errorf("unknown format %q", name)
	}
}

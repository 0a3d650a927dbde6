// Package codec converts between raw file contents and domain.Value for every
// supported format. Dispatch is a closed switch over domain.Format.
package codec

import (
	"bytes"
	"fmt"

	"confedit/internal/core/domain"
)

// Options controls serialisation layout.
type Options struct {
	JSONIndent         int
	YAMLIndent         int
	YAMLIndentSequence bool
}

func DefaultOptions() Options {
	return Options{
		JSONIndent:         4,
		YAMLIndent:         2,
		YAMLIndentSequence: true,
	}
}

// OptionsFromConfig maps the tool configuration onto codec options.
func OptionsFromConfig(config *domain.Config) Options {
	return Options{
		JSONIndent:         config.JSON.Indent,
		YAMLIndent:         config.YAML.Indent,
		YAMLIndentSequence: config.YAML.IndentSequence,
	}
}

// Decode parses data in the given format. Empty input decodes to Null for
// structured formats and to an empty sequence for text.
func Decode(format domain.Format, data []byte) (domain.Value, error) {
	var (
		value domain.Value
		err   error
	)
	switch format {
	case domain.FormatText:
		return decodeText(data), nil
	case domain.FormatJSON:
		value, err = decodeJSON(data)
	case domain.FormatYAML:
		value, err = decodeYAML(data)
	case domain.FormatTOML:
		value, err = decodeTOML(data)
	default:
		return domain.Null(), fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return domain.Null(), &domain.DecodeError{Format: format, Err: err}
	}
	return value, nil
}

// DecodeWithFallback decodes data and, when a structured format fails to
// parse, re-reads the same bytes as text. The returned format is the one
// actually used; a non-nil fallback explains why it differs.
func DecodeWithFallback(format domain.Format, data []byte) (domain.Value, domain.Format, *domain.DecodeFallback) {
	value, err := Decode(format, data)
	if err == nil {
		return value, format, nil
	}
	return decodeText(data), domain.FormatText, &domain.DecodeFallback{Requested: format, Err: err}
}

func Encode(format domain.Format, value domain.Value, options Options) ([]byte, error) {
	switch format {
	case domain.FormatText:
		return encodeText(value)
	case domain.FormatJSON:
		return encodeJSON(value, options.JSONIndent)
	case domain.FormatYAML:
		return encodeYAML(value, options.YAMLIndent, options.YAMLIndentSequence)
	case domain.FormatTOML:
		return encodeTOML(value)
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}

func isEmpty(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}

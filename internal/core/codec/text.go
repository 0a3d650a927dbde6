package codec

import (
	"strings"

	"confedit/internal/core/domain"
)

func decodeText(data []byte) domain.Value {
	return domain.Strings(SplitLines(string(data))...)
}

// SplitLines splits s after every "\n", keeping the terminators. A final
// line without a terminator is kept as is.
func SplitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// Lines returns the lines held by a text document value.
func Lines(value domain.Value) ([]string, error) {
	switch value.Kind() {
	case domain.NullKind:
		return nil, nil
	case domain.SequenceKind:
		lines := make([]string, 0, value.Len())
		for _, item := range value.Items() {
			lines = append(lines, item.Text())
		}
		return lines, nil
	default:
		return nil, &domain.UnsupportedRootShapeError{Format: domain.FormatText, Kind: value.Kind()}
	}
}

// encodeText writes each line followed by exactly one "\n".
func encodeText(value domain.Value) ([]byte, error) {
	lines, err := Lines(value)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(strings.TrimRight(line, "\n"))
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

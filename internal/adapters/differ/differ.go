package differ

import (
	"fmt"
	"strings"

	"confedit/internal/ports"

	jsonpatch "github.com/evanphx/json-patch/v5"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"sigs.k8s.io/yaml"
)

const defaultContext = 3

var _ ports.Differ = (*TextDiffer)(nil)

type TextDiffer struct {
	context int
}

func ProvideDiffer() *TextDiffer {
	return &TextDiffer{context: defaultContext}
}

func (d *TextDiffer) LineDiff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for i, diff := range diffs {
		chunk := splitLines(diff.Text)
		switch diff.Type {
		case diffpatch.DiffInsert:
			writeLines(&out, "+", chunk)
		case diffpatch.DiffDelete:
			writeLines(&out, "-", chunk)
		case diffpatch.DiffEqual:
			d.writeContext(&out, chunk, i == 0, i == len(diffs)-1)
		}
	}
	return out.String()
}

// writeContext keeps a few unchanged lines around each change and replaces
// the rest with a marker.
func (d *TextDiffer) writeContext(out *strings.Builder, chunk []string, first, last bool) {
	head, tail := d.context, d.context
	if first {
		head = 0
	}
	if last {
		tail = 0
	}
	if len(chunk) <= head+tail {
		writeLines(out, " ", chunk)
		return
	}
	writeLines(out, " ", chunk[:head])
	fmt.Fprintf(out, "@@ %d unchanged lines @@\n", len(chunk)-head-tail)
	writeLines(out, " ", chunk[len(chunk)-tail:])
}

func writeLines(out *strings.Builder, prefix string, lines []string) {
	for _, line := range lines {
		out.WriteString(prefix)
		out.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			out.WriteByte('\n')
		}
	}
}

func splitLines(s string) []string {
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

func (d *TextDiffer) MergePatch(before, after []byte) ([]byte, error) {
	beforeJSON, err := toJSON(before)
	if err != nil {
		return nil, fmt.Errorf("failed to convert original document: %w", err)
	}
	afterJSON, err := toJSON(after)
	if err != nil {
		return nil, fmt.Errorf("failed to convert updated document: %w", err)
	}

	patch, err := jsonpatch.CreateMergePatch(beforeJSON, afterJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge patch: %w", err)
	}
	return patch, nil
}

// toJSON treats empty input as an empty object so new files diff cleanly.
func toJSON(doc []byte) ([]byte, error) {
	if len(strings.TrimSpace(string(doc))) == 0 {
		return []byte("{}"), nil
	}
	return yaml.YAMLToJSON(doc)
}

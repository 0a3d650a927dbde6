package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"confedit/internal/core"
	"confedit/internal/core/domain"
	"confedit/internal/ports"
)

// Line operation kinds as accepted on the command line.
const (
	LineInsert           = "insert"
	LineInsertAt         = "insert-at"
	LineSet              = "set-line"
	LineReplace          = "replace-line"
	LineSubstitute       = "substitute"
	LineSubstituteIn     = "substitute-in"
	LineRemoveContaining = "remove-containing"
	LineRemoveAt         = "remove-at"
)

// ParseLineOperation converts one line flag into an operation.
//
//	insert TEXT, insert-at N=TEXT, set-line N=TEXT, replace-line PATTERN=TEXT,
//	substitute OLD=NEW, substitute-in PATTERN:OLD=NEW, remove-containing PATTERN,
//	remove-at N
func ParseLineOperation(kind, raw string) (domain.Operation, error) {
	switch kind {
	case LineInsert:
		return domain.AppendLine(raw), nil
	case LineInsertAt:
		index, text, err := indexedText(raw)
		if err != nil {
			return nil, err
		}
		return domain.InsertLineAt(index, text), nil
	case LineSet:
		index, text, err := indexedText(raw)
		if err != nil {
			return nil, err
		}
		return domain.SetLine{Index: index, Text: text}, nil
	case LineReplace:
		pattern, text, ok := strings.Cut(raw, "=")
		if !ok || pattern == "" {
			return nil, fmt.Errorf("expected PATTERN=TEXT, got %q", raw)
		}
		return domain.ReplaceLineIfContains{Pattern: pattern, Text: text}, nil
	case LineSubstitute:
		old, replacement, ok := strings.Cut(raw, "=")
		if !ok || old == "" {
			return nil, fmt.Errorf("expected OLD=NEW, got %q", raw)
		}
		return domain.ReplaceSubstring{Old: old, New: replacement}, nil
	case LineSubstituteIn:
		pattern, rest, ok := strings.Cut(raw, ":")
		old, replacement, ok2 := strings.Cut(rest, "=")
		if !ok || !ok2 || pattern == "" || old == "" {
			return nil, fmt.Errorf("expected PATTERN:OLD=NEW, got %q", raw)
		}
		return domain.ReplaceSubstring{Old: old, New: replacement, Pattern: pattern}, nil
	case LineRemoveContaining:
		if raw == "" {
			return nil, errors.New("empty pattern")
		}
		return domain.RemoveLineContaining{Pattern: raw}, nil
	case LineRemoveAt:
		index, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid line index %q", raw)
		}
		return domain.RemoveLineAtIndex{Index: index}, nil
	default:
		return nil, fmt.Errorf("unknown line operation %q", kind)
	}
}

func indexedText(raw string) (int, string, error) {
	n, text, ok := strings.Cut(raw, "=")
	if !ok {
		return 0, "", fmt.Errorf("expected N=TEXT, got %q", raw)
	}
	index, err := strconv.Atoi(strings.TrimSpace(n))
	if err != nil {
		return 0, "", fmt.Errorf("invalid line index %q", n)
	}
	return index, text, nil
}

type LinesCommandHandler struct {
	editor *core.FileEditor
	differ ports.Differ
}

func ProvideLinesCommandHandler(
	editor *core.FileEditor,
	differ ports.Differ,
) LinesCommandHandler {
	return LinesCommandHandler{
		editor: editor,
		differ: differ,
	}
}

func (h *LinesCommandHandler) Handle(file string, ops []domain.Operation, options EditOptions) error {
	if len(ops) == 0 {
		return errors.New("no line operations given")
	}

	builder := options.open(h.editor, file)
	for _, op := range ops {
		builder.AddUpdate(op)
	}

	return commit(builder, options.DryRun, h.differ)
}

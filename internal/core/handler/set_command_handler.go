package handler

import (
	"errors"
	"fmt"
	"strings"

	"confedit/internal/core"
	"confedit/internal/core/codec"
	"confedit/internal/core/domain"
	"confedit/internal/ports"
)

type SetMode int

const (
	// SetModeMerge sets keys, merging into existing mappings and sequences.
	SetModeMerge SetMode = iota
	SetModeAppend
	SetModeReplace
)

// Assignment is a parsed PATH=VALUE argument. An empty path is the document
// root.
type Assignment struct {
	Path  string
	Value domain.Value
}

// ParseAssignment splits PATH=VALUE at the first "=" and parses VALUE as a
// YAML flow value.
func ParseAssignment(arg string) (Assignment, error) {
	path, raw, ok := strings.Cut(arg, "=")
	if !ok {
		return Assignment{}, fmt.Errorf("expected PATH=VALUE, got %q", arg)
	}
	return Assignment{Path: strings.TrimSpace(path), Value: ParseValue(raw)}, nil
}

// ParseValue reads a command line value as YAML so numbers, booleans and
// flow collections keep their type. Anything that does not parse is a
// string.
func ParseValue(raw string) domain.Value {
	if strings.TrimSpace(raw) == "" {
		return domain.String(raw)
	}
	value, err := codec.Decode(domain.FormatYAML, []byte(raw))
	if err != nil || value.IsNull() && raw != "null" && raw != "~" {
		return domain.String(raw)
	}
	return value
}

type SetCommandHandler struct {
	editor *core.FileEditor
	differ ports.Differ
}

func ProvideSetCommandHandler(
	editor *core.FileEditor,
	differ ports.Differ,
) SetCommandHandler {
	return SetCommandHandler{
		editor: editor,
		differ: differ,
	}
}

func (h *SetCommandHandler) Handle(file string, assignments []Assignment, mode SetMode, options EditOptions) error {
	if len(assignments) == 0 {
		return errors.New("no assignments given")
	}

	builder := options.open(h.editor, file)
	for _, a := range assignments {
		switch mode {
		case SetModeAppend:
			builder.AppendAt(a.Path, a.Value)
		case SetModeReplace:
			values := []domain.Value{a.Value}
			if a.Value.IsSequence() {
				values = a.Value.Items()
			}
			builder.ReplaceAt(a.Path, values...)
		default:
			if a.Path == "" {
				if !a.Value.IsMapping() {
					return fmt.Errorf("a value without a key must be a mapping, got %s", a.Value.Kind())
				}
				builder.Merge(a.Value)
				continue
			}
			builder.SetPath(a.Path, a.Value)
		}
	}

	return commit(builder, options.DryRun, h.differ)
}

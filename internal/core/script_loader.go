package core

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"confedit/internal/core/codec"
	"confedit/internal/core/domain"
	"confedit/internal/ports"

	"github.com/xeipuuv/gojsonschema"
	"sigs.k8s.io/yaml"
)

//go:embed schema/update_script.schema.json
var updateScriptSchema []byte

// UpdateScript is a validated list of targets, executed in order.
type UpdateScript struct {
	Source  string
	Targets []ScriptTarget
}

type ScriptTarget struct {
	File         string
	Format       *domain.Format
	Output       string
	OutputFormat *domain.Format
	Blank        bool
	Delete       bool
	Operations   []domain.Operation
}

// Paths returns every path the target reads or writes.
func (t ScriptTarget) Paths() []string {
	if t.Output != "" && t.Output != t.File {
		return []string{t.File, t.Output}
	}
	return []string{t.File}
}

// Builder configures a FileBuilder for the target. Delete targets are not
// handled here.
func (t ScriptTarget) Builder(editor *FileEditor) *FileBuilder {
	builder := editor.Open(t.File)
	if t.Format != nil {
		builder.As(*t.Format)
	}
	if t.Blank {
		builder.Blank()
	}
	switch {
	case t.OutputFormat != nil:
		output := t.Output
		if output == "" {
			output = t.File
		}
		builder.WriteAs(output, *t.OutputFormat)
	case t.Output != "":
		builder.WriteTo(t.Output)
	}
	for _, op := range t.Operations {
		builder.AddUpdate(op)
	}
	return builder
}

// scriptDocument mirrors the script layout. Operation values are taken from
// the order-preserving document tree instead.
type scriptDocument struct {
	Targets []scriptTarget `json:"targets"`
}

type scriptTarget struct {
	File         string            `json:"file"`
	Format       string            `json:"format,omitempty"`
	Output       string            `json:"output,omitempty"`
	OutputFormat string            `json:"outputFormat,omitempty"`
	Blank        bool              `json:"blank,omitempty"`
	Delete       bool              `json:"delete,omitempty"`
	Operations   []scriptOperation `json:"operations,omitempty"`
}

type scriptOperation struct {
	Op       string `json:"op"`
	Path     string `json:"path,omitempty"`
	Key      string `json:"key,omitempty"`
	Index    *int   `json:"index,omitempty"`
	Text     string `json:"text,omitempty"`
	Position *int   `json:"position,omitempty"`
	Pattern  string `json:"pattern,omitempty"`
	Old      string `json:"old,omitempty"`
	New      string `json:"new,omitempty"`
}

type ScriptLoader struct {
	fileSystem ports.FileSystem
}

func ProvideScriptLoader(fileSystem ports.FileSystem) *ScriptLoader {
	return &ScriptLoader{fileSystem: fileSystem}
}

// Load reads, validates and converts an update script. YAML and JSON scripts
// are both accepted.
func (l *ScriptLoader) Load(path string) (*UpdateScript, error) {
	data, err := l.fileSystem.ReadFile(path)
	if err != nil {
		return nil, &domain.IOError{Op: "read", Path: path, Err: err}
	}
	script, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	script.Source = path
	return script, nil
}

func ParseScript(data []byte) (*UpdateScript, error) {
	tree, err := codec.Decode(domain.FormatYAML, data)
	if err != nil {
		return nil, err
	}
	if err := validateScript(tree); err != nil {
		return nil, err
	}

	var document scriptDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}

	targetValues, _ := tree.Get("targets")
	script := &UpdateScript{}
	for i, raw := range document.Targets {
		targetValue, _ := targetValues.Index(i)
		target, err := convertTarget(raw, targetValue)
		if err != nil {
			return nil, fmt.Errorf("target %d (%s): %w", i, raw.File, err)
		}
		script.Targets = append(script.Targets, target)
	}
	return script, nil
}

func validateScript(tree domain.Value) error {
	schemaLoader := gojsonschema.NewBytesLoader(updateScriptSchema)
	documentLoader := gojsonschema.NewGoLoader(tree.ToAny())
	res, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("jsonschema validate error: %w", err)
	}
	if res.Valid() {
		return nil
	}
	var b strings.Builder
	for _, e := range res.Errors() {
		fmt.Fprintf(&b, "- %s: %s\n", e.Field(), e.Description())
	}
	return errors.New("script validation failed:\n" + b.String())
}

func convertTarget(raw scriptTarget, tree domain.Value) (ScriptTarget, error) {
	target := ScriptTarget{
		File:   raw.File,
		Output: raw.Output,
		Blank:  raw.Blank,
		Delete: raw.Delete,
	}
	if raw.Format != "" {
		format, err := domain.ParseFormat(raw.Format)
		if err != nil {
			return ScriptTarget{}, err
		}
		target.Format = &format
	}
	if raw.OutputFormat != "" {
		format, err := domain.ParseFormat(raw.OutputFormat)
		if err != nil {
			return ScriptTarget{}, err
		}
		target.OutputFormat = &format
	}
	if raw.Delete && (len(raw.Operations) > 0 || raw.Output != "") {
		return ScriptTarget{}, errors.New("a delete target cannot have operations or an output")
	}

	opValues, _ := tree.Get("operations")
	for j, op := range raw.Operations {
		opValue, _ := opValues.Index(j)
		value, _ := opValue.Get("value")
		converted, err := convertOperation(op, value)
		if err != nil {
			return ScriptTarget{}, fmt.Errorf("operation %d (%s): %w", j, op.Op, err)
		}
		target.Operations = append(target.Operations, converted...)
	}
	return target, nil
}

func convertOperation(op scriptOperation, value domain.Value) ([]domain.Operation, error) {
	path := domain.ParsePath(op.Path)
	switch op.Op {
	case "set":
		parent, key, err := keyPath(op)
		if err != nil {
			return nil, err
		}
		return []domain.Operation{domain.SetKey{Path: parent, Key: key, Value: value}}, nil
	case "merge":
		return []domain.Operation{domain.MergeMapping{Path: path, Partial: value}}, nil
	case "append":
		return []domain.Operation{domain.AppendSequence{Path: path, Value: value}}, nil
	case "replace":
		return []domain.Operation{domain.ReplaceSequence{Path: path, Values: value.Items()}}, nil
	case "set-index":
		return []domain.Operation{domain.SetIndex{Path: path, Index: *op.Index, Value: value}}, nil
	case "remove":
		parent, key, err := keyPath(op)
		if err != nil {
			return nil, err
		}
		return []domain.Operation{domain.RemoveKey{Path: parent, Key: key}}, nil
	case "override":
		return OverrideOperations(path, value)
	case "insert-line":
		if op.Position == nil {
			return []domain.Operation{domain.AppendLine(op.Text)}, nil
		}
		return []domain.Operation{domain.InsertLineAt(*op.Position, op.Text)}, nil
	case "set-line":
		return []domain.Operation{domain.SetLine{Index: *op.Index, Text: op.Text}}, nil
	case "replace-line":
		return []domain.Operation{domain.ReplaceLineIfContains{Pattern: op.Pattern, Text: op.Text}}, nil
	case "substitute":
		return []domain.Operation{domain.ReplaceSubstring{Old: op.Old, New: op.New, Pattern: op.Pattern}}, nil
	case "remove-line":
		return []domain.Operation{domain.RemoveLineContaining{Pattern: op.Pattern}}, nil
	case "remove-line-at":
		return []domain.Operation{domain.RemoveLineAtIndex{Index: *op.Index}}, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", op.Op)
	}
}

// keyPath resolves the addressed key. With an explicit key, path names the
// parent mapping; otherwise the last segment of path is the key.
func keyPath(op scriptOperation) ([]string, string, error) {
	if op.Key != "" {
		return domain.ParsePath(op.Path), op.Key, nil
	}
	return domain.SplitKeyPath(op.Path)
}

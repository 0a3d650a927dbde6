package core

import (
	"bytes"
	"fmt"
	"log/slog"
	"slices"

	"confedit/internal/core/codec"
	"confedit/internal/core/domain"
	"confedit/internal/ports"
)

// FileEditor opens documents for editing.
type FileEditor struct {
	fileSystem ports.FileSystem
	options    codec.Options
	patcher    LinePatcher
	logger     *slog.Logger
}

func ProvideFileEditor(
	fileSystem ports.FileSystem,
	config *domain.Config,
	patcher LinePatcher,
	logger *slog.Logger,
) *FileEditor {
	return &FileEditor{
		fileSystem: fileSystem,
		options:    codec.OptionsFromConfig(config),
		patcher:    patcher,
		logger:     logger,
	}
}

// Open starts a builder for path. Nothing is read until Render or Save.
func (e *FileEditor) Open(path string) *FileBuilder {
	return &FileBuilder{editor: e, path: path}
}

// FileBuilder accumulates operations against one document. Methods return
// the builder so calls can be chained; an invalid argument is reported by
// Render, Save or Operations.
type FileBuilder struct {
	editor       *FileEditor
	path         string
	format       *domain.Format
	outputPath   string
	outputFormat *domain.Format
	blank        bool
	ops          []domain.Operation
	err          error
}

// Result describes one read-merge-encode cycle.
type Result struct {
	Path            string
	OutputPath      string
	InputFormat     domain.Format
	EffectiveFormat domain.Format
	OutputFormat    domain.Format
	Existed         bool
	// Fallback is set when the document could not be decoded as InputFormat
	// and was edited as text.
	Fallback *domain.DecodeFallback
	Base     domain.Value
	Document domain.Value
	Before   []byte
	Output   []byte
}

// Changed reports whether saving would alter the output file.
func (r Result) Changed() bool {
	if !r.Existed || r.OutputPath != r.Path {
		return true
	}
	return !bytes.Equal(r.Before, r.Output)
}

// As overrides the input format detected from the path.
func (b *FileBuilder) As(format domain.Format) *FileBuilder {
	b.format = &format
	return b
}

// Blank ignores the current contents of the file.
func (b *FileBuilder) Blank() *FileBuilder {
	b.blank = true
	return b
}

// WriteTo sends the result to another path. The output format is detected
// from that path.
func (b *FileBuilder) WriteTo(path string) *FileBuilder {
	b.outputPath = path
	b.outputFormat = nil
	return b
}

func (b *FileBuilder) WriteAs(path string, format domain.Format) *FileBuilder {
	b.outputPath = path
	b.outputFormat = &format
	return b
}

func (b *FileBuilder) AddUpdate(op domain.Operation) *FileBuilder {
	if op == nil {
		b.fail(fmt.Errorf("nil operation"))
		return b
	}
	b.ops = append(b.ops, op)
	return b
}

func (b *FileBuilder) SetKey(key string, value domain.Value) *FileBuilder {
	return b.AddUpdate(domain.SetKey{Key: key, Value: value})
}

// SetPath sets the value at a dotted key path such as "server.http.port".
func (b *FileBuilder) SetPath(path string, value domain.Value) *FileBuilder {
	parent, key, err := domain.SplitKeyPath(path)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.AddUpdate(domain.SetKey{Path: parent, Key: key, Value: value})
}

func (b *FileBuilder) Merge(partial domain.Value) *FileBuilder {
	return b.AddUpdate(domain.MergeMapping{Partial: partial})
}

func (b *FileBuilder) MergeAt(path string, partial domain.Value) *FileBuilder {
	return b.AddUpdate(domain.MergeMapping{Path: domain.ParsePath(path), Partial: partial})
}

func (b *FileBuilder) Append(value domain.Value) *FileBuilder {
	return b.AddUpdate(domain.AppendSequence{Value: value})
}

func (b *FileBuilder) AppendAt(path string, value domain.Value) *FileBuilder {
	return b.AddUpdate(domain.AppendSequence{Path: domain.ParsePath(path), Value: value})
}

func (b *FileBuilder) Replace(values ...domain.Value) *FileBuilder {
	return b.AddUpdate(domain.ReplaceSequence{Values: values})
}

func (b *FileBuilder) ReplaceAt(path string, values ...domain.Value) *FileBuilder {
	return b.AddUpdate(domain.ReplaceSequence{Path: domain.ParsePath(path), Values: values})
}

func (b *FileBuilder) SetIndex(index int, value domain.Value) *FileBuilder {
	return b.AddUpdate(domain.SetIndex{Index: index, Value: value})
}

func (b *FileBuilder) SetIndexAt(path string, index int, value domain.Value) *FileBuilder {
	return b.AddUpdate(domain.SetIndex{Path: domain.ParsePath(path), Index: index, Value: value})
}

func (b *FileBuilder) RemoveKey(key string) *FileBuilder {
	return b.AddUpdate(domain.RemoveKey{Key: key})
}

// RemovePath removes the key at a dotted key path.
func (b *FileBuilder) RemovePath(path string) *FileBuilder {
	parent, key, err := domain.SplitKeyPath(path)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.AddUpdate(domain.RemoveKey{Path: parent, Key: key})
}

// Override merges partial but replaces the sequences it names instead of
// growing them.
func (b *FileBuilder) Override(partial domain.Value) *FileBuilder {
	ops, err := OverrideOperations(nil, partial)
	if err != nil {
		b.fail(err)
		return b
	}
	b.ops = append(b.ops, ops...)
	return b
}

func (b *FileBuilder) InsertLine(text string) *FileBuilder {
	return b.AddUpdate(domain.AppendLine(text))
}

func (b *FileBuilder) InsertLineAt(position int, text string) *FileBuilder {
	return b.AddUpdate(domain.InsertLineAt(position, text))
}

func (b *FileBuilder) SetLine(index int, text string) *FileBuilder {
	return b.AddUpdate(domain.SetLine{Index: index, Text: text})
}

func (b *FileBuilder) ReplaceLineIfContains(pattern, text string) *FileBuilder {
	return b.AddUpdate(domain.ReplaceLineIfContains{Pattern: pattern, Text: text})
}

func (b *FileBuilder) ReplaceSubstring(old, new string) *FileBuilder {
	return b.AddUpdate(domain.ReplaceSubstring{Old: old, New: new})
}

// ReplaceSubstringIn substitutes only in lines containing pattern.
func (b *FileBuilder) ReplaceSubstringIn(pattern, old, new string) *FileBuilder {
	return b.AddUpdate(domain.ReplaceSubstring{Old: old, New: new, Pattern: pattern})
}

func (b *FileBuilder) RemoveLineContaining(pattern string) *FileBuilder {
	return b.AddUpdate(domain.RemoveLineContaining{Pattern: pattern})
}

func (b *FileBuilder) RemoveLineAt(index int) *FileBuilder {
	return b.AddUpdate(domain.RemoveLineAtIndex{Index: index})
}

// Operations returns a copy of the accumulated operations.
func (b *FileBuilder) Operations() ([]domain.Operation, error) {
	if b.err != nil {
		return nil, b.err
	}
	return slices.Clone(b.ops), nil
}

func (b *FileBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Render runs the full read, merge and encode cycle without writing.
func (b *FileBuilder) Render() (Result, error) {
	if b.err != nil {
		return Result{}, fmt.Errorf("invalid update for %s: %w", b.path, b.err)
	}

	result := Result{
		Path:        b.path,
		OutputPath:  b.path,
		InputFormat: domain.DetectFormat(b.path),
	}
	if b.format != nil {
		result.InputFormat = *b.format
	}
	if b.outputPath != "" {
		result.OutputPath = b.outputPath
	}

	if err := b.load(&result); err != nil {
		return Result{}, err
	}

	document, err := b.apply(result.Base, result.EffectiveFormat)
	if err != nil {
		return Result{}, fmt.Errorf("failed to update %s: %w", b.path, err)
	}
	result.Document = document

	result.OutputFormat = result.EffectiveFormat
	switch {
	case b.outputFormat != nil:
		result.OutputFormat = *b.outputFormat
	case result.OutputPath != result.Path:
		result.OutputFormat = domain.DetectFormat(result.OutputPath)
	}

	output, err := codec.Encode(result.OutputFormat, document, b.editor.options)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode %s as %s: %w", result.OutputPath, result.OutputFormat, err)
	}
	result.Output = output

	return result, nil
}

func (b *FileBuilder) load(result *Result) error {
	fs := b.editor.fileSystem
	result.EffectiveFormat = result.InputFormat

	if b.blank {
		exists, err := fs.FileExists(b.path)
		if err != nil {
			return &domain.IOError{Op: "stat", Path: b.path, Err: err}
		}
		result.Existed = exists
		result.Base = emptyDocument(result.InputFormat)
		return nil
	}

	content, exists, err := fs.ReadFileIfExists(b.path)
	if err != nil {
		return &domain.IOError{Op: "read", Path: b.path, Err: err}
	}
	result.Existed = exists
	result.Before = content

	if !exists {
		result.Base = emptyDocument(result.InputFormat)
		b.editor.logger.Debug("document does not exist, starting empty", "path", b.path, "format", result.InputFormat)
		return nil
	}

	base, effective, fallback := codec.DecodeWithFallback(result.InputFormat, content)
	if fallback != nil {
		b.editor.logger.Warn("could not decode document, editing it as text",
			"path", b.path, "format", fallback.Requested, "error", fallback.Err)
	}
	if base.IsNull() {
		base = emptyDocument(effective)
	}
	result.Base = base
	result.EffectiveFormat = effective
	result.Fallback = fallback

	b.editor.logger.Debug("loaded document", "path", b.path, "format", effective, "bytes", len(content))
	return nil
}

func (b *FileBuilder) apply(base domain.Value, format domain.Format) (domain.Value, error) {
	if format == domain.FormatText {
		lines, err := codec.Lines(base)
		if err != nil {
			return domain.Null(), err
		}
		patched, err := b.editor.patcher.ApplyText(lines, b.ops)
		if err != nil {
			return domain.Null(), err
		}
		return domain.Strings(patched...), nil
	}

	for _, op := range b.ops {
		if lineOp, ok := op.(domain.LineOperation); ok {
			return domain.Null(), &domain.UnsupportedOperationError{Operation: lineOp.String(), Format: format}
		}
	}
	return Merge(base, b.ops)
}

// Save renders the document and writes it. Nothing is written when any step
// fails.
func (b *FileBuilder) Save() (Result, error) {
	result, err := b.Render()
	if err != nil {
		return Result{}, err
	}

	if err := b.editor.fileSystem.WriteFile(result.OutputPath, result.Output, ports.ReadAllWriteOwner); err != nil {
		return Result{}, &domain.IOError{Op: "write", Path: result.OutputPath, Err: err}
	}

	b.editor.logger.Debug("saved document",
		"path", result.OutputPath, "format", result.OutputFormat, "operations", len(b.ops))
	return result, nil
}

// Delete removes the input file. A missing file is not an error.
func (b *FileBuilder) Delete() error {
	if err := b.editor.fileSystem.RemoveFile(b.path); err != nil {
		return &domain.IOError{Op: "remove", Path: b.path, Err: err}
	}
	b.editor.logger.Debug("deleted document", "path", b.path)
	return nil
}

func emptyDocument(format domain.Format) domain.Value {
	if format == domain.FormatText {
		return domain.Sequence()
	}
	return domain.Mapping()
}

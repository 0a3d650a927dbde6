package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Operation is one requested change to a document. The set of operations is
// closed: the structural operations below and the LineOperation variants.
type Operation interface {
	fmt.Stringer
	isOperation()
}

// LineOperation is an Operation that only applies to text documents.
type LineOperation interface {
	Operation
	isLineOperation()
}

// SetKey upserts Key in the mapping at Path, merging into an existing
// composite of the same kind.
type SetKey struct {
	Path  []string
	Key   string
	Value Value
}

// MergeMapping applies SetKey for every field of Partial.
type MergeMapping struct {
	Path    []string
	Partial Value
}

// AppendSequence extends the sequence at Path with Value, or with each of its
// elements when Value is itself a sequence.
type AppendSequence struct {
	Path  []string
	Value Value
}

// ReplaceSequence discards the node at Path and adopts Values verbatim.
type ReplaceSequence struct {
	Path   []string
	Values []Value
}

// SetIndex replaces an existing element of the sequence at Path.
type SetIndex struct {
	Path  []string
	Index int
	Value Value
}

// RemoveKey deletes Key from the mapping at Path if present.
type RemoveKey struct {
	Path []string
	Key  string
}

// InsertLine inserts Text before Position, or appends when Position is nil.
type InsertLine struct {
	Text     string
	Position *int
}

type ReplaceLineIfContains struct {
	Pattern string
	Text    string
}

// ReplaceSubstring replaces Old with New in lines containing Pattern, or in
// every line when Pattern is empty.
type ReplaceSubstring struct {
	Old     string
	New     string
	Pattern string
}

type RemoveLineContaining struct {
	Pattern string
}

type RemoveLineAtIndex struct {
	Index int
}

// SetLine replaces the line at Index.
type SetLine struct {
	Index int
	Text  string
}

func (SetKey) isOperation()          {}
func (MergeMapping) isOperation()    {}
func (AppendSequence) isOperation()  {}
func (ReplaceSequence) isOperation() {}
func (SetIndex) isOperation()        {}
func (RemoveKey) isOperation()       {}

func (InsertLine) isOperation()            {}
func (ReplaceLineIfContains) isOperation() {}
func (ReplaceSubstring) isOperation()      {}
func (RemoveLineContaining) isOperation()  {}
func (RemoveLineAtIndex) isOperation()     {}
func (SetLine) isOperation()               {}

func (InsertLine) isLineOperation()            {}
func (ReplaceLineIfContains) isLineOperation() {}
func (ReplaceSubstring) isLineOperation()      {}
func (RemoveLineContaining) isLineOperation()  {}
func (RemoveLineAtIndex) isLineOperation()     {}
func (SetLine) isLineOperation()               {}

func (o SetKey) String() string {
	return fmt.Sprintf("set %s", FormatPath(append(clonePath(o.Path), o.Key)))
}

func (o MergeMapping) String() string {
	return fmt.Sprintf("merge into %s", FormatPath(o.Path))
}

func (o AppendSequence) String() string {
	return fmt.Sprintf("append to %s", FormatPath(o.Path))
}

func (o ReplaceSequence) String() string {
	return fmt.Sprintf("replace %s", FormatPath(o.Path))
}

func (o SetIndex) String() string {
	return fmt.Sprintf("set index %d of %s", o.Index, FormatPath(o.Path))
}

func (o RemoveKey) String() string {
	return fmt.Sprintf("remove %s", FormatPath(append(clonePath(o.Path), o.Key)))
}

func (o InsertLine) String() string {
	if o.Position == nil {
		return "append line"
	}
	return fmt.Sprintf("insert line at %d", *o.Position)
}

func (o ReplaceLineIfContains) String() string {
	return fmt.Sprintf("replace lines containing %q", o.Pattern)
}

func (o ReplaceSubstring) String() string {
	return fmt.Sprintf("substitute %q", o.Old)
}

func (o RemoveLineContaining) String() string {
	return fmt.Sprintf("remove lines containing %q", o.Pattern)
}

func (o RemoveLineAtIndex) String() string {
	return fmt.Sprintf("remove line %d", o.Index)
}

func (o SetLine) String() string {
	return fmt.Sprintf("set line %d", o.Index)
}

// AppendLine is an InsertLine without a position.
func AppendLine(text string) InsertLine {
	return InsertLine{Text: text}
}

func InsertLineAt(position int, text string) InsertLine {
	return InsertLine{Text: text, Position: &position}
}

// ParsePath splits a dotted key path. Empty input is the root.
func ParsePath(path string) []string {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// SplitKeyPath separates the parent path from the final key of a dotted path.
func SplitKeyPath(path string) ([]string, string, error) {
	segments := ParsePath(path)
	if len(segments) == 0 {
		return nil, "", fmt.Errorf("empty key path")
	}
	for _, s := range segments {
		if s == "" {
			return nil, "", fmt.Errorf("key path %q has an empty segment", path)
		}
	}
	return segments[:len(segments)-1], segments[len(segments)-1], nil
}

// SequenceIndex interprets a path segment as a sequence index.
func SequenceIndex(segment string) (int, bool) {
	i, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return i, true
}

func clonePath(path []string) []string {
	return append(make([]string, 0, len(path)+1), path...)
}

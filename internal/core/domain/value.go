package domain

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"
)

type Kind int

const (
	NullKind Kind = iota
	ScalarKind
	MappingKind
	SequenceKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case ScalarKind:
		return "scalar"
	case MappingKind:
		return "mapping"
	case SequenceKind:
		return "sequence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Field is one key/value pair of an ordered mapping.
type Field struct {
	Key   string
	Value Value
}

// Value is the in-memory representation of a decoded document. The zero
// value is Null. Scalars hold string, int64, float64 or bool; TOML date and
// time values are carried through unchanged.
type Value struct {
	kind   Kind
	scalar any
	fields []Field
	items  []Value
}

func Null() Value {
	return Value{}
}

func String(s string) Value {
	return Value{kind: ScalarKind, scalar: s}
}

func Int(i int64) Value {
	return Value{kind: ScalarKind, scalar: i}
}

func Float(f float64) Value {
	return Value{kind: ScalarKind, scalar: f}
}

func Bool(b bool) Value {
	return Value{kind: ScalarKind, scalar: b}
}

// Pair builds a mapping field.
func Pair(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// Mapping builds an ordered mapping. Later duplicates of a key replace the
// earlier value in place.
func Mapping(fields ...Field) Value {
	v := Value{kind: MappingKind, fields: make([]Field, 0, len(fields))}
	for _, f := range fields {
		v.Set(f.Key, f.Value)
	}
	return v
}

func Sequence(items ...Value) Value {
	return Value{kind: SequenceKind, items: append(make([]Value, 0, len(items)), items...)}
}

// Strings builds a sequence of string scalars.
func Strings(items ...string) Value {
	v := Value{kind: SequenceKind, items: make([]Value, 0, len(items))}
	for _, s := range items {
		v.items = append(v.items, String(s))
	}
	return v
}

// FromAny converts plain Go values (as produced by encoding/json, yaml or
// toml decoders) into a Value. Keys of Go maps are sorted since their order
// is unspecified.
func FromAny(in any) Value {
	switch t := in.(type) {
	case nil:
		return Null()
	case Value:
		return t.Clone()
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return unsignedValue(uint64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return unsignedValue(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case []any:
		v := Value{kind: SequenceKind, items: make([]Value, 0, len(t))}
		for _, item := range t {
			v.items = append(v.items, FromAny(item))
		}
		return v
	case []string:
		return Strings(t...)
	case []map[string]any:
		v := Value{kind: SequenceKind, items: make([]Value, 0, len(t))}
		for _, item := range t {
			v.items = append(v.items, FromAny(item))
		}
		return v
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		v := Value{kind: MappingKind, fields: make([]Field, 0, len(t))}
		for _, k := range keys {
			v.fields = append(v.fields, Field{Key: k, Value: FromAny(t[k])})
		}
		return v
	case map[any]any:
		converted := make(map[string]any, len(t))
		for k, val := range t {
			converted[fmt.Sprintf("%v", k)] = val
		}
		return FromAny(converted)
	default:
		return Value{kind: ScalarKind, scalar: t}
	}
}

func unsignedValue(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}
	return Int(int64(u))
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == NullKind
}

func (v Value) IsScalar() bool {
	return v.kind == ScalarKind
}

func (v Value) IsMapping() bool {
	return v.kind == MappingKind
}

func (v Value) IsSequence() bool {
	return v.kind == SequenceKind
}

// IsBlank reports whether v carries no structure worth merging into: null,
// a bare scalar, or an empty mapping or sequence.
func (v Value) IsBlank() bool {
	switch v.kind {
	case MappingKind:
		return len(v.fields) == 0
	case SequenceKind:
		return len(v.items) == 0
	default:
		return true
	}
}

// Scalar returns the underlying scalar, or nil for non-scalars.
func (v Value) Scalar() any {
	if v.kind != ScalarKind {
		return nil
	}
	return v.scalar
}

// Len returns the number of fields or items; zero for null and scalars.
func (v Value) Len() int {
	switch v.kind {
	case MappingKind:
		return len(v.fields)
	case SequenceKind:
		return len(v.items)
	default:
		return 0
	}
}

func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.fields))
	for _, f := range v.fields {
		keys = append(keys, f.Key)
	}
	return keys
}

func (v Value) Fields() []Field {
	return v.fields
}

func (v Value) Items() []Value {
	return v.items
}

func (v Value) Get(key string) (Value, bool) {
	if v.kind != MappingKind {
		return Null(), false
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Null(), false
}

func (v Value) Index(i int) (Value, bool) {
	if v.kind != SequenceKind || i < 0 || i >= len(v.items) {
		return Null(), false
	}
	return v.items[i], true
}

// Set upserts key, keeping the position of an existing key. A non-mapping
// receiver becomes an empty mapping first.
func (v *Value) Set(key string, value Value) {
	if v.kind != MappingKind {
		*v = Value{kind: MappingKind}
	}
	for i := range v.fields {
		if v.fields[i].Key == key {
			v.fields[i].Value = value
			return
		}
	}
	v.fields = append(v.fields, Field{Key: key, Value: value})
}

// Delete removes key and reports whether it was present.
func (v *Value) Delete(key string) bool {
	if v.kind != MappingKind {
		return false
	}
	for i := range v.fields {
		if v.fields[i].Key == key {
			v.fields = slices.Delete(v.fields, i, i+1)
			return true
		}
	}
	return false
}

// Append pushes items onto a sequence. A non-sequence receiver becomes an
// empty sequence first.
func (v *Value) Append(items ...Value) {
	if v.kind != SequenceKind {
		*v = Value{kind: SequenceKind}
	}
	v.items = append(v.items, items...)
}

// SetItem replaces the element at i; it reports false when i is out of range.
func (v *Value) SetItem(i int, value Value) bool {
	if v.kind != SequenceKind || i < 0 || i >= len(v.items) {
		return false
	}
	v.items[i] = value
	return true
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	switch v.kind {
	case MappingKind:
		out := Value{kind: MappingKind, fields: make([]Field, len(v.fields))}
		for i, f := range v.fields {
			out.fields[i] = Field{Key: f.Key, Value: f.Value.Clone()}
		}
		return out
	case SequenceKind:
		out := Value{kind: SequenceKind, items: make([]Value, len(v.items))}
		for i, item := range v.items {
			out.items[i] = item.Clone()
		}
		return out
	default:
		return v
	}
}

// Equal compares structurally. Mapping key order is significant; numbers
// compare by numeric value so 1 and 1.0 are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case ScalarKind:
		return scalarsEqual(v.scalar, o.scalar)
	case MappingKind:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Key != o.fields[i].Key || !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	case SequenceKind:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func scalarsEqual(a, b any) bool {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum && bNum {
		return af == bf
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return a == b
}

func asFloat(s any) (float64, bool) {
	switch n := s.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// ToAny converts v to plain Go values. Mapping order is lost.
func (v Value) ToAny() any {
	switch v.kind {
	case ScalarKind:
		return v.scalar
	case MappingKind:
		out := make(map[string]any, len(v.fields))
		for _, f := range v.fields {
			out[f.Key] = f.Value.ToAny()
		}
		return out
	case SequenceKind:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.ToAny()
		}
		return out
	default:
		return nil
	}
}

// Text renders a scalar the way it would appear on a line of a text file.
func (v Value) Text() string {
	switch v.kind {
	case NullKind:
		return ""
	case ScalarKind:
		switch s := v.scalar.(type) {
		case string:
			return s
		case time.Time:
			return s.Format(time.RFC3339Nano)
		default:
			return fmt.Sprint(s)
		}
	default:
		return v.String()
	}
}

func (v Value) String() string {
	var b strings.Builder
	v.writeTo(&b)
	return b.String()
}

func (v Value) writeTo(b *strings.Builder) {
	switch v.kind {
	case NullKind:
		b.WriteString("null")
	case ScalarKind:
		if s, ok := v.scalar.(string); ok {
			fmt.Fprintf(b, "%q", s)
			return
		}
		fmt.Fprint(b, v.scalar)
	case MappingKind:
		b.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%q: ", f.Key)
			f.Value.writeTo(b)
		}
		b.WriteByte('}')
	case SequenceKind:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteString(", ")
			}
			item.writeTo(b)
		}
		b.WriteByte(']')
	}
}

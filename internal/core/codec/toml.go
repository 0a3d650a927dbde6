package codec

import (
	"bytes"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"confedit/internal/core/domain"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// decodeTOML unmarshals values through a plain map and then restores the
// document's key order from a second pass over the parser's expressions.
func decodeTOML(data []byte) (domain.Value, error) {
	if isEmpty(data) {
		return domain.Null(), nil
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return domain.Null(), err
	}
	if doc == nil {
		return domain.Mapping(), nil
	}

	order, err := scanTOMLKeyOrder(data)
	if err != nil {
		return domain.Null(), err
	}
	return order.apply(domain.FromAny(doc), nil), nil
}

// tomlKeyOrder maps a table path (segments joined by NUL, array indices
// left out) to its keys in first-appearance order.
type tomlKeyOrder map[string][]string

func scanTOMLKeyOrder(data []byte) (tomlKeyOrder, error) {
	order := tomlKeyOrder{}

	p := unstable.Parser{}
	p.Reset(data)

	var table []string
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = order.addPath(nil, keyParts(e.Key()))
		case unstable.KeyValue:
			order.addKeyValue(table, e)
		}
	}
	return order, p.Error()
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func (o tomlKeyOrder) add(parent []string, key string) {
	p := strings.Join(parent, "\x00")
	if !slices.Contains(o[p], key) {
		o[p] = append(o[p], key)
	}
}

func (o tomlKeyOrder) addPath(parent, keys []string) []string {
	path := slices.Clone(parent)
	for _, k := range keys {
		o.add(path, k)
		path = append(path, k)
	}
	return path
}

func (o tomlKeyOrder) addKeyValue(parent []string, kv *unstable.Node) {
	path := o.addPath(parent, keyParts(kv.Key()))
	o.addValue(path, kv.Value())
}

func (o tomlKeyOrder) addValue(path []string, v *unstable.Node) {
	it := v.Children()
	switch v.Kind {
	case unstable.InlineTable:
		for it.Next() {
			o.addKeyValue(path, it.Node())
		}
	case unstable.Array:
		for it.Next() {
			o.addValue(path, it.Node())
		}
	}
}

func (o tomlKeyOrder) apply(value domain.Value, path []string) domain.Value {
	switch value.Kind() {
	case domain.MappingKind:
		keys := o[strings.Join(path, "\x00")]
		rank := func(key string) int {
			if i := slices.Index(keys, key); i >= 0 {
				return i
			}
			return len(keys)
		}

		fields := slices.Clone(value.Fields())
		slices.SortStableFunc(fields, func(a, b domain.Field) int {
			return rank(a.Key) - rank(b.Key)
		})
		for i, f := range fields {
			fields[i].Value = o.apply(f.Value, append(slices.Clone(path), f.Key))
		}
		return domain.Mapping(fields...)
	case domain.SequenceKind:
		items := make([]domain.Value, 0, value.Len())
		for _, item := range value.Items() {
			items = append(items, o.apply(item, path))
		}
		return domain.Sequence(items...)
	default:
		return value
	}
}

// encodeTOML only accepts a mapping root. Null fields are omitted since
// TOML has no null.
func encodeTOML(value domain.Value) ([]byte, error) {
	switch value.Kind() {
	case domain.NullKind:
		return []byte{}, nil
	case domain.MappingKind:
	default:
		return nil, &domain.UnsupportedRootShapeError{Format: domain.FormatTOML, Kind: value.Kind()}
	}

	doc, err := toTOMLValue(value, nil)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// toTOMLValue turns mappings into anonymous structs so the encoder keeps
// field order. Within a table the encoder still writes plain keys before
// sub-tables, which TOML requires.
func toTOMLValue(value domain.Value, path []string) (any, error) {
	switch value.Kind() {
	case domain.MappingKind:
		return toTOMLTable(value, path)
	case domain.SequenceKind:
		out := make([]any, 0, value.Len())
		for i, item := range value.Items() {
			if item.IsNull() {
				return nil, fmt.Errorf("toml arrays cannot hold null (at %s[%d])", domain.FormatPath(path), i)
			}
			v, err := toTOMLValue(item, path)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return value.Scalar(), nil
	}
}

func toTOMLTable(value domain.Value, path []string) (any, error) {
	var (
		fields  []reflect.StructField
		values  []any
		ordered = true
	)
	for _, f := range value.Fields() {
		if f.Value.IsNull() {
			continue
		}
		v, err := toTOMLValue(f.Value, append(slices.Clone(path), f.Key))
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		ordered = ordered && tomlTagName(f.Key)
		fields = append(fields, reflect.StructField{
			Name: "F" + strconv.Itoa(len(fields)),
			Type: reflect.TypeOf(v),
			Tag:  reflect.StructTag("toml:" + strconv.Quote(f.Key)),
		})
		values = append(values, v)
	}

	// Keys the encoder cannot take from a struct tag go through a map,
	// which sorts them.
	if !ordered {
		out := make(map[string]any, len(values))
		for i, f := range fields {
			key, _ := strconv.Unquote(strings.TrimPrefix(string(f.Tag), "toml:"))
			out[key] = values[i]
		}
		return out, nil
	}

	table := reflect.New(reflect.StructOf(fields)).Elem()
	for i, v := range values {
		table.Field(i).Set(reflect.ValueOf(v))
	}
	return table.Interface(), nil
}

// tomlTagName reports whether go-toml accepts key verbatim as a struct tag
// name.
func tomlTagName(key string) bool {
	if key == "" || key == "-" {
		return false
	}
	for _, c := range key {
		switch {
		case strings.ContainsRune("!#$%&()*+-./:;<=>?@[]^_{|}~ ", c):
		case !unicode.IsLetter(c) && !unicode.IsDigit(c):
			return false
		}
	}
	return true
}

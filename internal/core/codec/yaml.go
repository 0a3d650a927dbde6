package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"confedit/internal/core/domain"

	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

const (
	yamlMergeTag = "!!merge"
	yamlStrTag   = "!!str"
	yamlNullTag  = "!!null"
)

var errMultipleDocuments = errors.New("yaml streams with more than one document are not supported")

// decodeYAML reads the document through the node API so mapping order
// survives. Anchors are expanded in place. A stream holding more than one
// non-empty document is rejected; writing back only one would drop the rest.
func decodeYAML(data []byte) (domain.Value, error) {
	if isEmpty(data) {
		return domain.Null(), nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc *yaml.Node
	for {
		var next yaml.Node
		err := dec.Decode(&next)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Null(), err
		}
		if isEmptyDocument(&next) {
			continue
		}
		if doc != nil {
			return domain.Null(), errMultipleDocuments
		}
		doc = &next
	}
	if doc == nil {
		return domain.Null(), nil
	}
	return fromYAMLNode(doc)
}

// isEmptyDocument reports a document with no content, such as the one a
// trailing "---" opens.
func isEmptyDocument(doc *yaml.Node) bool {
	if len(doc.Content) == 0 {
		return true
	}
	root := doc.Content[0]
	return root.Kind == yaml.ScalarNode && root.Value == "" && root.Style == 0 && root.ShortTag() == yamlNullTag
}

func fromYAMLNode(node *yaml.Node) (domain.Value, error) {
	switch node.Kind {
	case 0:
		return domain.Null(), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return domain.Null(), nil
		}
		return fromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		if node.Alias == nil {
			return domain.Null(), fmt.Errorf("line %d: unresolved alias %q", node.Line, node.Value)
		}
		return fromYAMLNode(node.Alias)
	case yaml.SequenceNode:
		seq := domain.Sequence()
		for _, item := range node.Content {
			v, err := fromYAMLNode(item)
			if err != nil {
				return domain.Null(), err
			}
			seq.Append(v)
		}
		return seq, nil
	case yaml.MappingNode:
		return fromYAMLMapping(node)
	case yaml.ScalarNode:
		var out any
		if err := node.Decode(&out); err != nil {
			return domain.Null(), fmt.Errorf("line %d: %w", node.Line, err)
		}
		return domain.FromAny(out), nil
	default:
		return domain.Null(), fmt.Errorf("line %d: unsupported node kind %d", node.Line, node.Kind)
	}
}

// fromYAMLMapping honours "<<" merge keys: merged fields come first and
// explicit keys of the mapping win.
func fromYAMLMapping(node *yaml.Node) (domain.Value, error) {
	explicit := domain.Mapping()
	merged := domain.Mapping()

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		v, err := fromYAMLNode(valueNode)
		if err != nil {
			return domain.Null(), err
		}

		if keyNode.Tag == yamlMergeTag {
			sources := []domain.Value{v}
			if v.IsSequence() {
				sources = v.Items()
			}
			for _, src := range sources {
				if !src.IsMapping() {
					return domain.Null(), fmt.Errorf("line %d: merge key expects a mapping", keyNode.Line)
				}
				for _, f := range src.Fields() {
					if _, ok := merged.Get(f.Key); !ok {
						merged.Set(f.Key, f.Value)
					}
				}
			}
			continue
		}

		explicit.Set(keyNode.Value, v)
	}

	if merged.Len() == 0 {
		return explicit, nil
	}
	out := domain.Mapping()
	for _, f := range merged.Fields() {
		if _, ok := explicit.Get(f.Key); !ok {
			out.Set(f.Key, f.Value)
		}
	}
	for _, f := range explicit.Fields() {
		out.Set(f.Key, f.Value)
	}
	return out, nil
}

func encodeYAML(value domain.Value, indent int, indentSequence bool) ([]byte, error) {
	if indent <= 0 {
		indent = 2
	}

	var buf bytes.Buffer
	enc := gyaml.NewEncoder(&buf, gyaml.Indent(indent), gyaml.IndentSequence(indentSequence))
	if err := enc.Encode(toOrdered(value)); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}

	return buf.Bytes(), nil
}

// toOrdered converts a Value into goccy's ordered representation.
func toOrdered(value domain.Value) any {
	switch value.Kind() {
	case domain.MappingKind:
		ms := make(gyaml.MapSlice, 0, value.Len())
		for _, f := range value.Fields() {
			ms = append(ms, gyaml.MapItem{Key: f.Key, Value: toOrdered(f.Value)})
		}
		return ms
	case domain.SequenceKind:
		items := make([]any, 0, value.Len())
		for _, item := range value.Items() {
			items = append(items, toOrdered(item))
		}
		return items
	case domain.ScalarKind:
		if s, ok := value.Scalar().(string); ok && !plainIsString(s) {
			return quotedString(s)
		}
		return value.Scalar()
	default:
		return nil
	}
}

// plainIsString reports whether the decoder reads s back as a string when it
// is written unquoted. goccy leaves strings such as 1e3 or .inf plain, which
// would come back as floats.
func plainIsString(s string) bool {
	node := yaml.Node{Kind: yaml.ScalarNode, Value: s}
	return node.ShortTag() == yamlStrTag
}

// quotedString is always emitted double quoted.
type quotedString string

func (s quotedString) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

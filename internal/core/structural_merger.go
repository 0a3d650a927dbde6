package core

import (
	"fmt"

	"confedit/internal/core/domain"
)

// Merge applies structural operations to a copy of base, in order. The base
// value is never modified. Any failure aborts the whole merge.
func Merge(base domain.Value, ops []domain.Operation) (domain.Value, error) {
	doc := base.Clone()
	for i, op := range ops {
		if err := applyStructural(&doc, op); err != nil {
			return domain.Null(), fmt.Errorf("operation %d (%s): %w", i+1, op, err)
		}
	}
	return doc, nil
}

func applyStructural(doc *domain.Value, op domain.Operation) error {
	switch o := op.(type) {
	case domain.SetKey:
		return applyAt(doc, o.Path, true, nil, func(node *domain.Value, path []string) error {
			return setKey(node, path, o.Key, o.Value)
		})
	case domain.MergeMapping:
		if !o.Partial.IsMapping() {
			return &domain.ShapeMismatchError{Path: o.Path, Operation: "merge of a non-mapping", Kind: o.Partial.Kind()}
		}
		return applyAt(doc, o.Path, true, nil, func(node *domain.Value, path []string) error {
			if node.IsBlank() && !node.IsMapping() {
				*node = domain.Mapping()
			}
			for _, f := range o.Partial.Fields() {
				if err := setKey(node, path, f.Key, f.Value); err != nil {
					return err
				}
			}
			return nil
		})
	case domain.AppendSequence:
		return applyAt(doc, o.Path, true, nil, func(node *domain.Value, path []string) error {
			return appendValue(node, path, o.Value)
		})
	case domain.ReplaceSequence:
		return applyAt(doc, o.Path, true, nil, func(node *domain.Value, _ []string) error {
			items := make([]domain.Value, 0, len(o.Values))
			for _, v := range o.Values {
				items = append(items, v.Clone())
			}
			*node = domain.Sequence(items...)
			return nil
		})
	case domain.SetIndex:
		return applyAt(doc, o.Path, true, nil, func(node *domain.Value, path []string) error {
			return setIndex(node, path, o.Index, o.Value)
		})
	case domain.RemoveKey:
		return applyAt(doc, o.Path, false, nil, func(node *domain.Value, path []string) error {
			return removeKey(node, path, o.Key)
		})
	case domain.LineOperation:
		return &domain.UnsupportedOperationError{
			Operation: o.String(),
			Reason:    "line operations only apply to text documents",
		}
	default:
		return fmt.Errorf("unknown operation %T", op)
	}
}

// applyAt walks path from node and calls fn on the addressed node. With
// create set, missing mapping keys are created and blank intermediate nodes
// become mappings; without it, a missing node makes the call a no-op.
func applyAt(node *domain.Value, path []string, create bool, visited []string, fn func(*domain.Value, []string) error) error {
	if len(path) == 0 {
		return fn(node, visited)
	}

	segment := path[0]
	here := append(append(make([]string, 0, len(visited)+1), visited...), segment)

	if node.IsSequence() {
		if index, ok := domain.SequenceIndex(segment); ok {
			child, found := node.Index(index)
			if !found {
				if !create {
					return nil
				}
				return &domain.IndexOutOfRangeError{Path: visited, Index: index, Length: node.Len()}
			}
			if err := applyAt(&child, path[1:], create, here, fn); err != nil {
				return err
			}
			node.SetItem(index, child)
			return nil
		}
		if !node.IsBlank() {
			if !create {
				return nil
			}
			return &domain.ShapeMismatchError{Path: visited, Operation: fmt.Sprintf("key %q", segment), Kind: domain.SequenceKind}
		}
	}

	if !node.IsMapping() {
		if !create {
			return nil
		}
		*node = domain.Mapping()
	}

	child, found := node.Get(segment)
	if !found && !create {
		return nil
	}
	if err := applyAt(&child, path[1:], create, here, fn); err != nil {
		return err
	}
	node.Set(segment, child)
	return nil
}

func setKey(node *domain.Value, path []string, key string, value domain.Value) error {
	switch {
	case node.IsMapping():
		if existing, ok := node.Get(key); ok {
			node.Set(key, mergeValue(existing, value))
		} else {
			node.Set(key, value.Clone())
		}
		return nil
	case node.IsBlank():
		*node = domain.Mapping(domain.Pair(key, value.Clone()))
		return nil
	default:
		return &domain.ShapeMismatchError{Path: path, Operation: fmt.Sprintf("set %q", key), Kind: node.Kind()}
	}
}

// mergeValue combines an existing value with an incoming one: mappings merge
// key by key, sequences grow, anything else is overwritten.
func mergeValue(existing, incoming domain.Value) domain.Value {
	switch {
	case existing.IsMapping() && incoming.IsMapping():
		out := existing.Clone()
		for _, f := range incoming.Fields() {
			if current, ok := out.Get(f.Key); ok {
				out.Set(f.Key, mergeValue(current, f.Value))
			} else {
				out.Set(f.Key, f.Value.Clone())
			}
		}
		return out
	case existing.IsSequence() && incoming.IsSequence():
		out := existing.Clone()
		out.Append(incoming.Clone().Items()...)
		return out
	default:
		return incoming.Clone()
	}
}

func appendValue(node *domain.Value, path []string, value domain.Value) error {
	incoming := value.Clone()
	switch {
	case node.IsSequence():
		if incoming.IsSequence() {
			node.Append(incoming.Items()...)
		} else {
			node.Append(incoming)
		}
		return nil
	case node.IsBlank():
		if incoming.IsSequence() {
			*node = incoming
		} else {
			*node = domain.Sequence(incoming)
		}
		return nil
	default:
		return &domain.ShapeMismatchError{Path: path, Operation: "append", Kind: node.Kind()}
	}
}

func setIndex(node *domain.Value, path []string, index int, value domain.Value) error {
	if !node.IsSequence() && !node.IsBlank() {
		return &domain.ShapeMismatchError{Path: path, Operation: fmt.Sprintf("set index %d", index), Kind: node.Kind()}
	}
	if !node.SetItem(index, value.Clone()) {
		return &domain.IndexOutOfRangeError{Path: path, Index: index, Length: node.Len()}
	}
	return nil
}

func removeKey(node *domain.Value, path []string, key string) error {
	switch {
	case node.IsMapping():
		node.Delete(key)
		return nil
	case node.IsBlank():
		return nil
	default:
		return &domain.ShapeMismatchError{Path: path, Operation: fmt.Sprintf("remove %q", key), Kind: node.Kind()}
	}
}

// OverrideOperations expands partial into operations that replace every
// sequence it names instead of growing it, and set its scalar leaves.
func OverrideOperations(path []string, partial domain.Value) ([]domain.Operation, error) {
	switch partial.Kind() {
	case domain.SequenceKind:
		return []domain.Operation{domain.ReplaceSequence{Path: path, Values: partial.Clone().Items()}}, nil
	case domain.MappingKind:
	default:
		return nil, &domain.ShapeMismatchError{Path: path, Operation: "override with a non-collection", Kind: partial.Kind()}
	}

	var ops []domain.Operation
	for _, f := range partial.Fields() {
		child := append(append(make([]string, 0, len(path)+1), path...), f.Key)
		switch {
		case f.Value.IsSequence():
			ops = append(ops, domain.ReplaceSequence{Path: child, Values: f.Value.Clone().Items()})
		case f.Value.IsMapping() && f.Value.Len() > 0:
			nested, err := OverrideOperations(child, f.Value)
			if err != nil {
				return nil, err
			}
			ops = append(ops, nested...)
		default:
			ops = append(ops, domain.SetKey{Path: path, Key: f.Key, Value: f.Value})
		}
	}
	return ops, nil
}

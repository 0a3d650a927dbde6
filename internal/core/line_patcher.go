package core

import (
	"fmt"
	"slices"
	"strings"

	"confedit/internal/core/domain"
)

// LinePatcher applies line operations to the lines of a text document.
//
// Rewrite rules (ReplaceLineIfContains, ReplaceSubstring, RemoveLineContaining)
// are matched against every existing line first. Positional removals, line
// assignments and inserts follow, in that order.
type LinePatcher struct {
	// Strategy is domain.MatchStrategyFirstMatch (also the zero value) or
	// domain.MatchStrategyCumulative.
	Strategy string
}

func ProvideLinePatcher(config *domain.Config) LinePatcher {
	return LinePatcher{Strategy: config.Text.MatchStrategy}
}

// Patch applies ops with the first-match strategy.
func Patch(lines []string, ops []domain.LineOperation) ([]string, error) {
	return LinePatcher{}.Patch(lines, ops)
}

func (p LinePatcher) Patch(lines []string, ops []domain.LineOperation) ([]string, error) {
	var (
		rules   []domain.LineOperation
		removes []domain.RemoveLineAtIndex
		sets    []domain.SetLine
		inserts []domain.InsertLine
	)
	for _, op := range ops {
		switch o := op.(type) {
		case domain.ReplaceLineIfContains:
			if o.Pattern == "" {
				return nil, fmt.Errorf("%s: pattern must not be empty", o)
			}
			rules = append(rules, o)
		case domain.RemoveLineContaining:
			if o.Pattern == "" {
				return nil, fmt.Errorf("%s: pattern must not be empty", o)
			}
			rules = append(rules, o)
		case domain.ReplaceSubstring:
			if o.Old == "" {
				return nil, fmt.Errorf("%s: search string must not be empty", o)
			}
			rules = append(rules, o)
		case domain.RemoveLineAtIndex:
			removes = append(removes, o)
		case domain.SetLine:
			sets = append(sets, o)
		case domain.InsertLine:
			inserts = append(inserts, o)
		default:
			return nil, fmt.Errorf("unknown line operation %T", op)
		}
	}

	out := make([]string, 0, len(lines)+len(inserts))
	for _, line := range lines {
		rewritten, keep := p.rewrite(line, rules)
		if keep {
			out = append(out, rewritten)
		}
	}

	out, err := removeAt(out, removes)
	if err != nil {
		return nil, err
	}

	for _, s := range sets {
		if s.Index < 0 || s.Index >= len(out) {
			return nil, &domain.IndexOutOfRangeError{Index: s.Index, Length: len(out)}
		}
		out[s.Index] = normalizeLine(s.Text)
	}

	for _, ins := range inserts {
		if ins.Position == nil {
			out = append(out, normalizeLine(ins.Text))
			continue
		}
		position := *ins.Position
		if position < 0 || position > len(out) {
			return nil, &domain.IndexOutOfRangeError{Index: position, Length: len(out)}
		}
		out = slices.Insert(out, position, normalizeLine(ins.Text))
	}

	return out, nil
}

// rewrite runs the rules over one line. It reports false when the line is
// removed.
func (p LinePatcher) rewrite(line string, rules []domain.LineOperation) (string, bool) {
	cumulative := p.Strategy == domain.MatchStrategyCumulative

	for _, rule := range rules {
		switch r := rule.(type) {
		case domain.ReplaceLineIfContains:
			if !strings.Contains(line, r.Pattern) {
				continue
			}
			line = normalizeLine(r.Text)
		case domain.ReplaceSubstring:
			if !strings.Contains(line, r.Old) || (r.Pattern != "" && !strings.Contains(line, r.Pattern)) {
				continue
			}
			body, terminator := splitTerminator(line)
			line = strings.ReplaceAll(body, r.Old, r.New) + terminator
		case domain.RemoveLineContaining:
			if !strings.Contains(line, r.Pattern) {
				continue
			}
			return "", false
		}
		if !cumulative {
			break
		}
	}
	return line, true
}

// removeAt drops every listed index from lines at once, so indices refer to
// the numbering before any removal.
func removeAt(lines []string, removes []domain.RemoveLineAtIndex) ([]string, error) {
	if len(removes) == 0 {
		return lines, nil
	}

	drop := make(map[int]struct{}, len(removes))
	for _, r := range removes {
		if r.Index < 0 || r.Index >= len(lines) {
			return nil, &domain.IndexOutOfRangeError{Index: r.Index, Length: len(lines)}
		}
		drop[r.Index] = struct{}{}
	}

	out := make([]string, 0, len(lines)-len(drop))
	for i, line := range lines {
		if _, ok := drop[i]; !ok {
			out = append(out, line)
		}
	}
	return out, nil
}

// normalizeLine ends text with exactly one "\n".
func normalizeLine(text string) string {
	return strings.TrimRight(text, "\r\n") + "\n"
}

// splitTerminator separates a line from its "\n" or "\r\n" ending. A line
// without one gets "\n".
func splitTerminator(line string) (string, string) {
	if body, ok := strings.CutSuffix(line, "\r\n"); ok {
		return body, "\r\n"
	}
	if body, ok := strings.CutSuffix(line, "\n"); ok {
		return body, "\n"
	}
	return line, "\n"
}

// ApplyText runs a mixed operation list against a text document. Structural
// operations are translated into line operations: appends insert lines, key
// sets replace lines containing the key, key removals drop such lines, index
// sets assign a line and a root ReplaceSequence resets the document.
func (p LinePatcher) ApplyText(lines []string, ops []domain.Operation) ([]string, error) {
	var pending []domain.LineOperation
	for i, op := range ops {
		projected, reset, err := projectText(op)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i+1, op, err)
		}
		if reset != nil {
			lines = reset
			pending = nil
			continue
		}
		pending = append(pending, projected...)
	}
	return p.Patch(lines, pending)
}

func projectText(op domain.Operation) ([]domain.LineOperation, []string, error) {
	if lineOp, ok := op.(domain.LineOperation); ok {
		return []domain.LineOperation{lineOp}, nil, nil
	}

	var path []string
	switch o := op.(type) {
	case domain.SetKey:
		path = o.Path
	case domain.MergeMapping:
		path = o.Path
	case domain.AppendSequence:
		path = o.Path
	case domain.ReplaceSequence:
		path = o.Path
	case domain.SetIndex:
		path = o.Path
	case domain.RemoveKey:
		path = o.Path
	}
	if len(path) > 0 {
		return nil, nil, &domain.UnsupportedOperationError{
			Operation: op.String(),
			Reason:    "text documents have no nested keys",
		}
	}

	switch o := op.(type) {
	case domain.SetKey:
		return []domain.LineOperation{domain.ReplaceLineIfContains{Pattern: o.Key, Text: o.Value.Text()}}, nil, nil
	case domain.MergeMapping:
		if !o.Partial.IsMapping() {
			return nil, nil, &domain.ShapeMismatchError{Operation: "merge of a non-mapping", Kind: o.Partial.Kind()}
		}
		var out []domain.LineOperation
		for _, f := range o.Partial.Fields() {
			out = append(out, domain.ReplaceLineIfContains{Pattern: f.Key, Text: f.Value.Text()})
		}
		return out, nil, nil
	case domain.AppendSequence:
		if !o.Value.IsSequence() {
			return []domain.LineOperation{domain.AppendLine(o.Value.Text())}, nil, nil
		}
		var out []domain.LineOperation
		for _, item := range o.Value.Items() {
			out = append(out, domain.AppendLine(item.Text()))
		}
		return out, nil, nil
	case domain.ReplaceSequence:
		reset := make([]string, 0, len(o.Values))
		for _, v := range o.Values {
			reset = append(reset, normalizeLine(v.Text()))
		}
		return nil, reset, nil
	case domain.SetIndex:
		return []domain.LineOperation{domain.SetLine{Index: o.Index, Text: o.Value.Text()}}, nil, nil
	case domain.RemoveKey:
		return []domain.LineOperation{domain.RemoveLineContaining{Pattern: o.Key}}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown operation %T", op)
	}
}

package core

import (
	"errors"
	"testing"

	"confedit/internal/core/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatch_RemoveThenInsert(t *testing.T) {
	got, err := Patch([]string{"a\n", "b\n", "c\n"}, []domain.LineOperation{
		domain.RemoveLineAtIndex{Index: 1},
		domain.InsertLineAt(1, "z"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a\n", "z\n", "c\n"}, got)
}

func TestPatch(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		ops   []domain.LineOperation
		want  []string
	}{
		{
			name:  "append to empty",
			lines: nil,
			ops:   []domain.LineOperation{domain.AppendLine("first"), domain.AppendLine("second\n")},
			want:  []string{"first\n", "second\n"},
		},
		{
			name:  "replace whole line",
			lines: []string{"VERSION=1\n", "NAME=app\n"},
			ops:   []domain.LineOperation{domain.ReplaceLineIfContains{Pattern: "VERSION=", Text: "VERSION=2"}},
			want:  []string{"VERSION=2\n", "NAME=app\n"},
		},
		{
			name:  "substitute everywhere",
			lines: []string{"foo foo\n", "bar\n", "foo"},
			ops:   []domain.LineOperation{domain.ReplaceSubstring{Old: "foo", New: "baz"}},
			want:  []string{"baz baz\n", "bar\n", "baz\n"},
		},
		{
			name:  "substitute keeps crlf",
			lines: []string{"a=1\r\n"},
			ops:   []domain.LineOperation{domain.ReplaceSubstring{Old: "1", New: "2"}},
			want:  []string{"a=2\r\n"},
		},
		{
			name:  "substitute only in matching lines",
			lines: []string{"host=a port=1\n", "db port=1\n"},
			ops:   []domain.LineOperation{domain.ReplaceSubstring{Old: "port=1", New: "port=2", Pattern: "host="}},
			want:  []string{"host=a port=2\n", "db port=1\n"},
		},
		{
			name:  "remove containing",
			lines: []string{"keep\n", "# drop me\n", "keep too\n"},
			ops:   []domain.LineOperation{domain.RemoveLineContaining{Pattern: "#"}},
			want:  []string{"keep\n", "keep too\n"},
		},
		{
			name:  "remove containing without match is a noop",
			lines: []string{"a\n", "b\n"},
			ops:   []domain.LineOperation{domain.RemoveLineContaining{Pattern: "zzz"}},
			want:  []string{"a\n", "b\n"},
		},
		{
			name:  "removals use numbering after rewrites",
			lines: []string{"x\n", "drop\n", "y\n", "z\n"},
			ops: []domain.LineOperation{
				domain.RemoveLineAtIndex{Index: 2},
				domain.RemoveLineContaining{Pattern: "drop"},
				domain.RemoveLineAtIndex{Index: 0},
			},
			want: []string{"y\n"},
		},
		{
			name:  "set line then insert",
			lines: []string{"a\n", "b\n"},
			ops: []domain.LineOperation{
				domain.InsertLineAt(0, "head"),
				domain.SetLine{Index: 1, Text: "B"},
			},
			want: []string{"head\n", "a\n", "B\n"},
		},
		{
			name:  "insert at length appends",
			lines: []string{"a\n"},
			ops:   []domain.LineOperation{domain.InsertLineAt(1, "b")},
			want:  []string{"a\n", "b\n"},
		},
		{
			name:  "inserted text gets exactly one terminator",
			lines: nil,
			ops:   []domain.LineOperation{domain.AppendLine("a\n\n"), domain.AppendLine("b\r\n")},
			want:  []string{"a\n", "b\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Patch(tt.lines, tt.ops)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Patch mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatch_FirstMatchWins(t *testing.T) {
	lines := []string{"port=80 host=a\n"}
	ops := []domain.LineOperation{
		domain.ReplaceSubstring{Old: "80", New: "8080"},
		domain.ReplaceSubstring{Old: "host=a", New: "host=b"},
		domain.RemoveLineContaining{Pattern: "port"},
	}

	got, err := LinePatcher{Strategy: domain.MatchStrategyFirstMatch}.Patch(lines, ops)
	require.NoError(t, err)
	assert.Equal(t, []string{"port=8080 host=a\n"}, got)
}

func TestPatch_CumulativeAppliesEveryRule(t *testing.T) {
	lines := []string{"port=80 host=a\n", "other\n"}
	ops := []domain.LineOperation{
		domain.ReplaceSubstring{Old: "80", New: "8080"},
		domain.ReplaceSubstring{Old: "host=a", New: "host=b"},
	}

	got, err := LinePatcher{Strategy: domain.MatchStrategyCumulative}.Patch(lines, ops)
	require.NoError(t, err)
	assert.Equal(t, []string{"port=8080 host=b\n", "other\n"}, got)

	got, err = LinePatcher{Strategy: domain.MatchStrategyCumulative}.Patch(lines, append(ops, domain.RemoveLineContaining{Pattern: "host=b"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"other\n"}, got)
}

func TestPatch_IndexOutOfRange(t *testing.T) {
	lines := []string{"a\n", "b\n"}

	for _, op := range []domain.LineOperation{
		domain.RemoveLineAtIndex{Index: 2},
		domain.RemoveLineAtIndex{Index: -1},
		domain.SetLine{Index: 5, Text: "x"},
		domain.InsertLineAt(3, "x"),
	} {
		_, err := Patch(lines, []domain.LineOperation{op})
		assert.True(t, errors.Is(err, domain.ErrIndexOutOfRange), op.String())
	}
}

func TestPatch_EmptySearchIsRejected(t *testing.T) {
	for _, op := range []domain.LineOperation{
		domain.ReplaceSubstring{Old: "", New: "x"},
		domain.ReplaceLineIfContains{Pattern: "", Text: "x"},
		domain.RemoveLineContaining{Pattern: ""},
	} {
		lines := []string{"a\n", "b\n"}
		got, err := Patch(lines, []domain.LineOperation{op})
		assert.Error(t, err, op.String())
		assert.Nil(t, got, op.String())
		assert.Equal(t, []string{"a\n", "b\n"}, lines)
	}
}

func TestLinePatcher_ApplyTextRejectsEmptyKey(t *testing.T) {
	for _, op := range []domain.Operation{
		domain.SetKey{Key: "", Value: domain.String("x")},
		domain.RemoveKey{Key: ""},
	} {
		_, err := LinePatcher{}.ApplyText([]string{"keep\n"}, []domain.Operation{op})
		assert.Error(t, err, op.String())
	}
}

func TestLinePatcher_ApplyTextProjectsStructuralOperations(t *testing.T) {
	lines := []string{"flask==2.0\n", "requests==2.31\n", "numpy==1.26\n"}

	got, err := LinePatcher{}.ApplyText(lines, []domain.Operation{
		domain.SetKey{Key: "flask", Value: domain.String("flask==3.0")},
		domain.RemoveKey{Key: "numpy"},
		domain.AppendSequence{Value: domain.Strings("pyyaml==6.0", "rich==13.7")},
		domain.SetIndex{Index: 1, Value: domain.String("requests==2.32")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"flask==3.0\n", "requests==2.32\n", "pyyaml==6.0\n", "rich==13.7\n"}, got)
}

func TestLinePatcher_ApplyTextReplaceResets(t *testing.T) {
	got, err := LinePatcher{}.ApplyText([]string{"old\n"}, []domain.Operation{
		domain.AppendLine("discarded"),
		domain.ReplaceSequence{Values: []domain.Value{domain.String("one"), domain.Int(2)}},
		domain.AppendLine("three"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one\n", "2\n", "three\n"}, got)
}

func TestLinePatcher_ApplyTextRejectsNestedPaths(t *testing.T) {
	_, err := LinePatcher{}.ApplyText(nil, []domain.Operation{
		domain.SetKey{Path: []string{"server"}, Key: "port", Value: domain.Int(1)},
	})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedOperation))
}

func TestProvideLinePatcher(t *testing.T) {
	config := domain.CreateDefaultConfig()
	config.Text.MatchStrategy = domain.MatchStrategyCumulative

	assert.Equal(t, domain.MatchStrategyCumulative, ProvideLinePatcher(&config).Strategy)
}

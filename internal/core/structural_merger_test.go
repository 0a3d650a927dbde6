package core

import (
	"errors"
	"testing"

	"confedit/internal/core/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/uuid"
)

func TestMerge_AbsentBaseSetKeys(t *testing.T) {
	got, err := Merge(domain.Null(), []domain.Operation{
		domain.SetKey{Key: "a", Value: domain.Int(1)},
		domain.SetKey{Key: "b", Value: domain.Int(2)},
	})
	require.NoError(t, err)

	want := domain.Mapping(domain.Pair("a", domain.Int(1)), domain.Pair("b", domain.Int(2)))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_SetKeyGrowsSequence(t *testing.T) {
	base := domain.Mapping(domain.Pair("list", domain.Sequence(domain.Int(1), domain.Int(2), domain.Int(3))))

	got, err := Merge(base, []domain.Operation{
		domain.SetKey{Key: "list", Value: domain.Sequence(domain.Int(4))},
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(domain.Mapping(domain.Pair("list", domain.Sequence(domain.Int(1), domain.Int(2), domain.Int(3), domain.Int(4))))), "got %s", got)

	got, err = Merge(base, []domain.Operation{
		domain.ReplaceSequence{Path: []string{"list"}, Values: []domain.Value{domain.Int(9)}},
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(domain.Mapping(domain.Pair("list", domain.Sequence(domain.Int(9))))), "got %s", got)
}

func TestMerge_DoesNotModifyBase(t *testing.T) {
	base := domain.Mapping(domain.Pair("nested", domain.Mapping(domain.Pair("a", domain.Int(1)))))
	snapshot := base.Clone()

	_, err := Merge(base, []domain.Operation{
		domain.SetKey{Path: []string{"nested"}, Key: "b", Value: domain.Int(2)},
		domain.RemoveKey{Path: []string{"nested"}, Key: "a"},
	})
	require.NoError(t, err)
	assert.True(t, base.Equal(snapshot))
}

func TestMerge_MergeMappingProperty(t *testing.T) {
	tests := []struct {
		name   string
		base   domain.Value
		update domain.Value
	}{
		{
			name:   "disjoint",
			base:   domain.Mapping(domain.Pair("a", domain.Int(1))),
			update: domain.Mapping(domain.Pair("b", domain.String("x"))),
		},
		{
			name:   "overlapping scalars",
			base:   domain.Mapping(domain.Pair("a", domain.Int(1)), domain.Pair("keep", domain.Bool(true))),
			update: domain.Mapping(domain.Pair("a", domain.Int(2))),
		},
		{
			name: "nested composites",
			base: domain.Mapping(
				domain.Pair("server", domain.Mapping(domain.Pair("host", domain.String("localhost")), domain.Pair("port", domain.Int(80)))),
				domain.Pair("tags", domain.Strings("a")),
			),
			update: domain.Mapping(
				domain.Pair("server", domain.Mapping(domain.Pair("port", domain.Int(8080)))),
				domain.Pair("tags", domain.Strings("b")),
			),
		},
		{
			name:   "empty update",
			base:   domain.Mapping(domain.Pair("a", domain.Int(1))),
			update: domain.Mapping(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge(tt.base, []domain.Operation{domain.MergeMapping{Partial: tt.update}})
			require.NoError(t, err)

			for _, f := range tt.update.Fields() {
				v, ok := got.Get(f.Key)
				require.True(t, ok, f.Key)
				old, existed := tt.base.Get(f.Key)
				if existed && (old.IsMapping() && f.Value.IsMapping() || old.IsSequence() && f.Value.IsSequence()) {
					assert.True(t, v.Equal(mergeValue(old, f.Value)), f.Key)
				} else {
					assert.True(t, v.Equal(f.Value), f.Key)
				}
			}
			for _, f := range tt.base.Fields() {
				if _, updated := tt.update.Get(f.Key); updated {
					continue
				}
				v, ok := got.Get(f.Key)
				require.True(t, ok, f.Key)
				assert.True(t, v.Equal(f.Value), f.Key)
			}
		})
	}
}

func TestMerge_NestedMergeKeepsSiblings(t *testing.T) {
	base := domain.Mapping(
		domain.Pair("server", domain.Mapping(domain.Pair("host", domain.String("localhost")), domain.Pair("port", domain.Int(80)))),
	)

	got, err := Merge(base, []domain.Operation{
		domain.MergeMapping{Partial: domain.Mapping(domain.Pair("server", domain.Mapping(domain.Pair("port", domain.Int(8080)))))},
	})
	require.NoError(t, err)

	want := domain.Mapping(
		domain.Pair("server", domain.Mapping(domain.Pair("host", domain.String("localhost")), domain.Pair("port", domain.Int(8080)))),
	)
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestMerge_AppendSequenceLength(t *testing.T) {
	sequences := []domain.Value{
		domain.Sequence(),
		domain.Sequence(domain.Int(1)),
		domain.Sequence(domain.String("a"), domain.Mapping(domain.Pair("k", domain.Null())), domain.Float(1.5)),
	}
	values := []domain.Value{
		domain.Int(7),
		domain.String("x"),
		domain.Mapping(domain.Pair("a", domain.Int(1))),
		domain.Sequence(),
		domain.Sequence(domain.Int(1), domain.Int(2)),
	}

	for _, s := range sequences {
		for _, v := range values {
			got, err := Merge(s, []domain.Operation{domain.AppendSequence{Value: v}})
			require.NoError(t, err)

			want := s.Len() + 1
			if v.IsSequence() {
				want = s.Len() + v.Len()
			}
			assert.Equal(t, want, got.Len(), "append %s to %s", v, s)
		}
	}
}

func TestMerge_ReplaceSequenceIsIdempotent(t *testing.T) {
	values := []domain.Value{domain.Int(1), domain.String("two")}
	bases := []domain.Value{
		domain.Null(),
		domain.Sequence(domain.Int(5), domain.Int(6), domain.Int(7)),
		domain.Mapping(domain.Pair("a", domain.Int(1))),
		domain.String("scalar"),
	}

	for _, base := range bases {
		once, err := Merge(base, []domain.Operation{domain.ReplaceSequence{Values: values}})
		require.NoError(t, err)
		twice, err := Merge(base, []domain.Operation{domain.ReplaceSequence{Values: values}, domain.ReplaceSequence{Values: values}})
		require.NoError(t, err)

		assert.True(t, once.Equal(domain.Sequence(values...)), "base %s", base)
		assert.True(t, once.Equal(twice), "base %s", base)
	}
}

func TestMerge_RemoveAbsentKeyIsNoop(t *testing.T) {
	base := domain.Mapping(domain.Pair("a", domain.Int(1)), domain.Pair("b", domain.Mapping(domain.Pair("c", domain.Int(2)))))

	for _, op := range []domain.RemoveKey{
		{Key: string(uuid.NewUUID())},
		{Path: []string{"b"}, Key: "missing"},
		{Path: []string{"missing", "deeper"}, Key: "c"},
		{Path: []string{"a"}, Key: "c"},
	} {
		got, err := Merge(base, []domain.Operation{op})
		require.NoError(t, err, op.String())
		assert.True(t, got.Equal(base), op.String())
	}
}

func TestMerge_RemoveKeyAtPath(t *testing.T) {
	base := domain.Mapping(domain.Pair("b", domain.Mapping(domain.Pair("c", domain.Int(2)), domain.Pair("d", domain.Int(3)))))

	got, err := Merge(base, []domain.Operation{domain.RemoveKey{Path: []string{"b"}, Key: "c"}})
	require.NoError(t, err)
	assert.True(t, got.Equal(domain.Mapping(domain.Pair("b", domain.Mapping(domain.Pair("d", domain.Int(3)))))), "got %s", got)
}

func TestMerge_PathCreatesIntermediateMappings(t *testing.T) {
	got, err := Merge(domain.Mapping(), []domain.Operation{
		domain.SetKey{Path: []string{"server", "http"}, Key: "port", Value: domain.Int(8080)},
		domain.AppendSequence{Path: []string{"server", "hosts"}, Value: domain.String("a")},
	})
	require.NoError(t, err)

	want := domain.Mapping(domain.Pair("server", domain.Mapping(
		domain.Pair("http", domain.Mapping(domain.Pair("port", domain.Int(8080)))),
		domain.Pair("hosts", domain.Strings("a")),
	)))
	assert.True(t, got.Equal(want), "got %s", got)
}

func TestMerge_PathIndexesSequences(t *testing.T) {
	base := domain.Mapping(domain.Pair("items", domain.Sequence(
		domain.Mapping(domain.Pair("name", domain.String("first"))),
		domain.Mapping(domain.Pair("name", domain.String("second"))),
	)))

	got, err := Merge(base, []domain.Operation{
		domain.SetKey{Path: []string{"items", "1"}, Key: "enabled", Value: domain.Bool(true)},
	})
	require.NoError(t, err)

	second, _ := got.Get("items")
	item, ok := second.Index(1)
	require.True(t, ok)
	enabled, ok := item.Get("enabled")
	require.True(t, ok)
	assert.True(t, enabled.Equal(domain.Bool(true)))

	_, err = Merge(base, []domain.Operation{
		domain.SetKey{Path: []string{"items", "5"}, Key: "enabled", Value: domain.Bool(true)},
	})
	assert.True(t, errors.Is(err, domain.ErrIndexOutOfRange))
}

func TestMerge_SetIndex(t *testing.T) {
	base := domain.Sequence(domain.Int(1), domain.Int(2))

	got, err := Merge(base, []domain.Operation{domain.SetIndex{Index: 1, Value: domain.String("x")}})
	require.NoError(t, err)
	assert.True(t, got.Equal(domain.Sequence(domain.Int(1), domain.String("x"))))

	for _, index := range []int{-1, 2} {
		_, err := Merge(base, []domain.Operation{domain.SetIndex{Index: index, Value: domain.Int(0)}})
		var rangeErr *domain.IndexOutOfRangeError
		require.True(t, errors.As(err, &rangeErr), "index %d", index)
		assert.Equal(t, 2, rangeErr.Length)
	}

	_, err = Merge(domain.Null(), []domain.Operation{domain.SetIndex{Index: 0, Value: domain.Int(0)}})
	assert.True(t, errors.Is(err, domain.ErrIndexOutOfRange))
}

func TestMerge_ShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		base domain.Value
		op   domain.Operation
	}{
		{"append onto mapping", domain.Mapping(domain.Pair("a", domain.Int(1))), domain.AppendSequence{Value: domain.Int(1)}},
		{"set key onto sequence", domain.Sequence(domain.Int(1)), domain.SetKey{Key: "a", Value: domain.Int(1)}},
		{"set index on mapping", domain.Mapping(domain.Pair("a", domain.Int(1))), domain.SetIndex{Index: 0, Value: domain.Int(1)}},
		{"merge a sequence", domain.Mapping(), domain.MergeMapping{Partial: domain.Sequence(domain.Int(1))}},
		{"key into sequence", domain.Mapping(domain.Pair("l", domain.Sequence(domain.Int(1)))), domain.SetKey{Path: []string{"l", "x"}, Key: "a", Value: domain.Int(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge(tt.base, []domain.Operation{tt.op})
			assert.True(t, errors.Is(err, domain.ErrShapeMismatch), "got %v", err)
		})
	}
}

func TestMerge_BlankNodesBootstrap(t *testing.T) {
	got, err := Merge(domain.String("old"), []domain.Operation{domain.AppendSequence{Value: domain.Int(1)}})
	require.NoError(t, err)
	assert.True(t, got.Equal(domain.Sequence(domain.Int(1))))

	got, err = Merge(domain.Sequence(), []domain.Operation{domain.SetKey{Key: "a", Value: domain.Int(1)}})
	require.NoError(t, err)
	assert.True(t, got.Equal(domain.Mapping(domain.Pair("a", domain.Int(1)))))

	got, err = Merge(domain.Null(), []domain.Operation{domain.MergeMapping{Partial: domain.Mapping()}})
	require.NoError(t, err)
	assert.True(t, got.IsMapping())
}

func TestMerge_RejectsLineOperations(t *testing.T) {
	_, err := Merge(domain.Mapping(), []domain.Operation{domain.AppendLine("x")})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedOperation))
}

func TestMerge_LaterOperationWins(t *testing.T) {
	got, err := Merge(domain.Null(), []domain.Operation{
		domain.SetKey{Key: "a", Value: domain.Int(1)},
		domain.RemoveKey{Key: "a"},
		domain.SetKey{Key: "a", Value: domain.String("final")},
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(domain.Mapping(domain.Pair("a", domain.String("final")))))
}

func TestOverrideOperations(t *testing.T) {
	base := domain.Mapping(
		domain.Pair("name", domain.String("app")),
		domain.Pair("env", domain.Mapping(
			domain.Pair("hosts", domain.Strings("a", "b")),
			domain.Pair("debug", domain.Bool(false)),
		)),
	)
	partial := domain.Mapping(
		domain.Pair("env", domain.Mapping(
			domain.Pair("hosts", domain.Strings("c")),
			domain.Pair("debug", domain.Bool(true)),
		)),
	)

	ops, err := OverrideOperations(nil, partial)
	require.NoError(t, err)
	require.Len(t, ops, 2)

	got, err := Merge(base, ops)
	require.NoError(t, err)

	want := domain.Mapping(
		domain.Pair("name", domain.String("app")),
		domain.Pair("env", domain.Mapping(
			domain.Pair("hosts", domain.Strings("c")),
			domain.Pair("debug", domain.Bool(true)),
		)),
	)
	assert.True(t, got.Equal(want), "got %s", got)

	_, err = OverrideOperations(nil, domain.Int(1))
	assert.True(t, errors.Is(err, domain.ErrShapeMismatch))
}

package bridge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/graphbind"
	"github.com/tmc/graphbind/cgraph"
)

func TestToVectorCoercesNumericKinds(t *testing.T) {
	vec, err := ToVector([]any{1, int64(2), float32(3.5), 4.25, uint8(5)})
	require.NoError(t, err)
	defer vec.Destroy()
	assert.Equal(t, []float64{1, 2, 3.5, 4.25, 5}, vec.Values())
}

func TestToVectorRejectsNonNumeric(t *testing.T) {
	tests := []struct {
		name string
		seq  []any
	}{
		{name: "string element", seq: []any{1, "two"}},
		{name: "nil element", seq: []any{nil}},
		{name: "nested sequence", seq: []any{[]any{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToVector(tt.seq)
			require.Error(t, err)
			assert.True(t, errors.Is(err, graphbind.ErrBadType))
		})
	}
}

func TestVectorRoundTrip(t *testing.T) {
	seq := []any{0, 3, 1, 4}
	vec, err := ToVector(seq)
	require.NoError(t, err)
	defer vec.Destroy()
	assert.Equal(t, seq, FromVector(vec, Int))
}

func TestFromVectorFloatKind(t *testing.T) {
	vec := cgraph.VectorOf(1.5, 2)
	defer vec.Destroy()
	assert.Equal(t, []any{1.5, 2.0}, FromVector(vec, Float))
}

func TestToIndexVectorValidation(t *testing.T) {
	_, err := ToIndexVector([]any{1.5})
	assert.True(t, errors.Is(err, graphbind.ErrBadValue))

	_, err = ToIndexVector([]any{-1})
	assert.True(t, errors.Is(err, graphbind.ErrBadValue))
}

func TestToIndexPairs(t *testing.T) {
	from, to, err := ToIndexPairs([]any{0, 1, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, from)
	assert.Equal(t, []int{1, 2}, to)

	_, _, err = ToIndexPairs([]any{0, 1, 2})
	assert.True(t, errors.Is(err, graphbind.ErrBadValue))
}

func TestConversionFailureReleasesScratch(t *testing.T) {
	cgraph.EnableAllocTracking()
	defer cgraph.DisableAllocTracking()

	_, err := ToVector([]any{1, "x"})
	require.Error(t, err)
	_, err = ToIndexVector([]any{0.5})
	require.Error(t, err)
	_, _, err = ToIndexPairs([]any{0, -1})
	require.Error(t, err)

	assert.Equal(t, 0, cgraph.Stats().LiveVectors, "failed conversions must not leak vectors")
}

func TestToMatrix(t *testing.T) {
	m, err := ToMatrix([][]any{{1, 2}, {3, 4}})
	require.NoError(t, err)
	defer m.Destroy()
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, float64(3), m.At(1, 0))
}

func TestToMatrixRaggedRows(t *testing.T) {
	_, err := ToMatrix([][]any{{1, 2}, {3}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, graphbind.ErrBadValue))
}

func TestFromMatrix(t *testing.T) {
	m := cgraph.NewMatrix(2, 2)
	defer m.Destroy()
	m.Set(0, 1, 7)
	rows := FromMatrix(m, Int)
	assert.Equal(t, [][]any{{0, 7}, {0, 0}}, rows)
}

type fakeProvider struct {
	g *cgraph.Graph
}

func (f *fakeProvider) NativeGraph() *cgraph.Graph { return f.g }

func TestToGraphList(t *testing.T) {
	g, err := cgraph.New(1, false)
	require.NoError(t, err)
	defer func() { _ = g.Destroy() }()

	gs, err := ToGraphList([]*fakeProvider{{g: g}})
	require.NoError(t, err)
	require.Len(t, gs, 1)
	assert.Same(t, g, gs[0])

	_, err = ToGraphList([]*fakeProvider{{}})
	assert.True(t, errors.Is(err, graphbind.ErrBadValue))
}

func TestFromGraphListDiscardsOnFailure(t *testing.T) {
	a, err := cgraph.New(1, false)
	require.NoError(t, err)
	b, err := cgraph.New(2, false)
	require.NoError(t, err)
	defer func() { _ = a.Destroy() }()
	defer func() { _ = b.Destroy() }()

	var discarded []int
	_, err = FromGraphList([]*cgraph.Graph{a, b},
		func(g *cgraph.Graph) (int, error) {
			if g.VertexCount() == 2 {
				return 0, fmt.Errorf("refusing %d vertices", g.VertexCount())
			}
			return g.VertexCount(), nil
		},
		func(n int) { discarded = append(discarded, n) },
	)
	require.Error(t, err)
	assert.Equal(t, []int{1}, discarded, "wrappers built before the failure are discarded")
}

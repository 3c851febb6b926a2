package cgraph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/graphbind"
)

// recordingSink captures structural notifications for assertions.
type recordingSink struct {
	verticesAdded   []int
	verticesRemoved [][]int
	edgesAdded      []int
	edgesRemoved    [][]int
}

func (r *recordingSink) VerticesAdded(n int) { r.verticesAdded = append(r.verticesAdded, n) }

func (r *recordingSink) VerticesRemoved(surviving []int) {
	r.verticesRemoved = append(r.verticesRemoved, surviving)
}
func (r *recordingSink) EdgesAdded(n int) { r.edgesAdded = append(r.edgesAdded, n) }

func (r *recordingSink) EdgesRemoved(surviving []int) {
	r.edgesRemoved = append(r.edgesRemoved, surviving)
}

func newTestGraph(t *testing.T, n int, from, to []int, directed bool) *Graph {
	t.Helper()
	g, err := NewFromEdges(n, from, to, directed)
	require.NoError(t, err)
	return g
}

func TestNewFromEdgesValidation(t *testing.T) {
	tests := []struct {
		name string
		n    int
		from []int
		to   []int
	}{
		{name: "negative vertex count", n: -1},
		{name: "mismatched endpoint slices", n: 3, from: []int{0, 1}, to: []int{1}},
		{name: "endpoint out of range", n: 3, from: []int{0, 1}, to: []int{1, 3}},
		{name: "negative endpoint", n: 3, from: []int{-1}, to: []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromEdges(tt.n, tt.from, tt.to, false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, graphbind.ErrConstruction))
		})
	}
}

func TestGraphCountsAndEdgeOrder(t *testing.T) {
	g := newTestGraph(t, 4, []int{0, 1, 2, 3}, []int{1, 2, 3, 0}, false)
	defer func() { require.NoError(t, g.Destroy()) }()

	assert.Equal(t, 4, g.VertexCount())
	assert.Equal(t, 4, g.EdgeCount())
	for i, want := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}} {
		u, v, err := g.Edge(i)
		require.NoError(t, err)
		assert.Equal(t, want, [2]int{u, v})
	}
	_, _, err := g.Edge(4)
	assert.True(t, errors.Is(err, graphbind.ErrBadValue))
}

func TestAddEdgesAtomicValidation(t *testing.T) {
	g := newTestGraph(t, 3, nil, nil, false)
	defer func() { _ = g.Destroy() }()

	err := g.AddEdges([]int{0, 1}, []int{1, 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, graphbind.ErrBadValue))
	assert.Equal(t, 0, g.EdgeCount(), "no edge of a rejected batch may land")
}

func TestDeleteVerticesRenumbersAndNotifies(t *testing.T) {
	g := newTestGraph(t, 4, []int{0, 1, 2, 3}, []int{1, 2, 3, 0}, false)
	defer func() { _ = g.Destroy() }()
	sink := &recordingSink{}
	g.SetSink(sink)

	require.NoError(t, g.DeleteVertices([]int{1}))

	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())
	from, to := g.Edges()
	// Old vertices 2 and 3 become 1 and 2; edges (2,3) and (3,0) survive.
	assert.Equal(t, []int{1, 2}, from)
	assert.Equal(t, []int{2, 0}, to)

	require.Len(t, sink.verticesRemoved, 1)
	assert.Equal(t, []int{0, 2, 3}, sink.verticesRemoved[0])
	require.Len(t, sink.edgesRemoved, 1)
	assert.Equal(t, []int{2, 3}, sink.edgesRemoved[0])
}

func TestDeleteEdgesKeepsOrder(t *testing.T) {
	g := newTestGraph(t, 3, []int{0, 1, 2}, []int{1, 2, 0}, false)
	defer func() { _ = g.Destroy() }()
	sink := &recordingSink{}
	g.SetSink(sink)

	require.NoError(t, g.DeleteEdges([]int{1}))
	from, to := g.Edges()
	assert.Equal(t, []int{0, 2}, from)
	assert.Equal(t, []int{1, 0}, to)
	require.Len(t, sink.edgesRemoved, 1)
	assert.Equal(t, []int{0, 2}, sink.edgesRemoved[0])
}

func TestDegree(t *testing.T) {
	g := newTestGraph(t, 4, []int{0, 1, 2, 3}, []int{1, 2, 3, 0}, false)
	defer func() { _ = g.Destroy() }()

	all, err := g.Degree(nil)
	require.NoError(t, err)
	defer all.Destroy()
	assert.Equal(t, []float64{2, 2, 2, 2}, all.Values())

	some, err := g.Degree([]int{2})
	require.NoError(t, err)
	defer some.Destroy()
	assert.Equal(t, []float64{2}, some.Values())

	_, err = g.Degree([]int{9})
	assert.True(t, errors.Is(err, graphbind.ErrBadValue))
}

func TestDestroyIsTrackedAndFinal(t *testing.T) {
	EnableAllocTracking()
	defer DisableAllocTracking()

	g := newTestGraph(t, 2, []int{0}, []int{1}, false)
	require.Equal(t, 1, Stats().LiveGraphs)

	require.NoError(t, g.Destroy())
	assert.Equal(t, 0, Stats().LiveGraphs)
	assert.Equal(t, StateReleased, g.State())

	err := g.Destroy()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReleased))
	assert.Equal(t, 1, Stats().Faults, "second destroy must be recorded as a fault")

	err = g.AddVertices(1)
	assert.True(t, errors.Is(err, ErrReleased))
}

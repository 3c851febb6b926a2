package handle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/graphbind"
)

func TestGraphScopeAttributes(t *testing.T) {
	h := newRing(t)
	defer h.Finalize()
	attrs := h.Attrs()

	require.NoError(t, attrs.Set(GraphScope, "name", "ring"))
	v, ok := attrs.Get(GraphScope, "name")
	require.True(t, ok)
	assert.Equal(t, "ring", v)

	assert.True(t, attrs.Delete(GraphScope, "name"))
	assert.False(t, attrs.Delete(GraphScope, "name"))
	_, ok = attrs.Get(GraphScope, "name")
	assert.False(t, ok)
}

func TestVertexAttributeLengthMismatchLeavesStoreUnchanged(t *testing.T) {
	h := newRing(t)
	defer h.Finalize()
	attrs := h.Attrs()

	require.NoError(t, attrs.Set(VertexScope, "label", []any{"a", "b", "c", "d"}))

	err := attrs.Set(VertexScope, "label", []any{"x", "y"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, graphbind.ErrLengthMismatch))

	v, ok := attrs.Get(VertexScope, "label")
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b", "c", "d"}, v, "failed set must not disturb the store")

	err = attrs.Set(VertexScope, "label", "not a sequence")
	assert.True(t, errors.Is(err, graphbind.ErrBadType))
}

func TestLabelDeletionScenario(t *testing.T) {
	h := newRing(t)
	defer h.Finalize()
	attrs := h.Attrs()

	require.NoError(t, attrs.Set(VertexScope, "label", []any{"a", "b", "c", "d"}))
	require.NoError(t, h.DeleteVertices([]any{1}))

	v, ok := attrs.Get(VertexScope, "label")
	require.True(t, ok)
	assert.Equal(t, []any{"a", "c", "d"}, v, "values follow the surviving vertices")
}

func TestEdgeAttributesFollowMutations(t *testing.T) {
	h := newRing(t)
	defer h.Finalize()
	attrs := h.Attrs()

	require.NoError(t, attrs.Set(EdgeScope, "weight", []any{1.0, 2.0, 3.0, 4.0}))

	require.NoError(t, h.AddEdges([][2]int{{0, 2}}))
	v, ok := attrs.Get(EdgeScope, "weight")
	require.True(t, ok)
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0, nil}, v, "new edges get nil placeholders")

	require.NoError(t, h.DeleteEdges([]any{0, 4}))
	v, ok = attrs.Get(EdgeScope, "weight")
	require.True(t, ok)
	assert.Equal(t, []any{2.0, 3.0, 4.0}, v)
}

func TestVertexAdditionExtendsAttributes(t *testing.T) {
	h := newRing(t)
	defer h.Finalize()
	attrs := h.Attrs()

	require.NoError(t, attrs.Set(VertexScope, "label", []any{"a", "b", "c", "d"}))
	require.NoError(t, h.AddVertices(2))

	v, ok := attrs.Get(VertexScope, "label")
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b", "c", "d", nil, nil}, v)
}

func TestKeysAndLen(t *testing.T) {
	h := newRing(t)
	defer h.Finalize()
	attrs := h.Attrs()

	require.NoError(t, attrs.Set(GraphScope, "b", 1))
	require.NoError(t, attrs.Set(GraphScope, "a", 2))
	assert.Equal(t, []string{"a", "b"}, attrs.Keys(GraphScope))
	assert.Equal(t, 2, attrs.Len(GraphScope))
	assert.Equal(t, 0, attrs.Len(VertexScope))
}

func TestVertexViewAccess(t *testing.T) {
	h := newRing(t)
	defer h.Finalize()

	vs := h.Vertices()
	assert.Equal(t, 4, vs.Len())
	assert.Same(t, vs, h.Vertices(), "view is cached")

	d, err := vs.Degree(2)
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	require.NoError(t, h.Attrs().Set(VertexScope, "label", []any{"a", "b", "c", "d"}))
	got, err := vs.Attr("label", 3)
	require.NoError(t, err)
	assert.Equal(t, "d", got)

	require.NoError(t, vs.SetAttr("label", 3, "z"))
	got, err = vs.Attr("label", 3)
	require.NoError(t, err)
	assert.Equal(t, "z", got)

	_, err = vs.Attr("missing", 0)
	assert.True(t, errors.Is(err, graphbind.ErrBadValue))
	_, err = vs.Attr("label", 9)
	assert.True(t, errors.Is(err, graphbind.ErrBadValue))
}

func TestEdgeViewAccess(t *testing.T) {
	h := newRing(t)
	defer h.Finalize()

	es := h.Edges()
	assert.Equal(t, 4, es.Len())

	u, v, err := es.Endpoints(1)
	require.NoError(t, err)
	assert.Equal(t, [2]int{1, 2}, [2]int{u, v})

	require.NoError(t, h.Attrs().Set(EdgeScope, "weight", []any{1, 2, 3, 4}))
	got, err := es.Attr("weight", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

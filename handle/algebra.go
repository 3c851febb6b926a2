package handle

import (
	"github.com/tmc/graphbind/bridge"
	"github.com/tmc/graphbind/cgraph"
)

// Single-result algebra. Each operation asks the library for exactly one
// fresh resource and wraps it under the full-destroy discipline. On any
// failure the partial resource is released before the error surfaces and
// the source handles are left untouched.

// wrapFresh adopts a single-result resource, destroying it if the wrap
// itself fails so nothing escapes half-owned.
func wrapFresh(g *cgraph.Graph) (*Handle, error) {
	out, err := Wrap(g, cgraph.DisciplineDestroy)
	if err != nil {
		_ = g.Destroy()
		return nil, err
	}
	return out, nil
}

func pairAlive(a, b *Handle) error {
	if err := a.alive(); err != nil {
		return err
	}
	return b.alive()
}

// Copy returns an independent handle over a structural copy of the graph.
// Attributes are not copied.
func (h *Handle) Copy() (*Handle, error) {
	if err := h.alive(); err != nil {
		return nil, err
	}
	g, err := cgraph.Copy(h.g)
	if err != nil {
		return nil, err
	}
	return wrapFresh(g)
}

// Union returns a new handle over the edge union of a and b. The result is
// fully independent of both sources.
func Union(a, b *Handle) (*Handle, error) {
	if err := pairAlive(a, b); err != nil {
		return nil, err
	}
	g, err := cgraph.Union(a.g, b.g)
	if err != nil {
		return nil, err
	}
	return wrapFresh(g)
}

// Intersection returns a new handle over the edges present in both a and b.
func Intersection(a, b *Handle) (*Handle, error) {
	if err := pairAlive(a, b); err != nil {
		return nil, err
	}
	g, err := cgraph.Intersection(a.g, b.g)
	if err != nil {
		return nil, err
	}
	return wrapFresh(g)
}

// Difference returns a new handle over the edges of a absent from b.
func Difference(a, b *Handle) (*Handle, error) {
	if err := pairAlive(a, b); err != nil {
		return nil, err
	}
	g, err := cgraph.Difference(a.g, b.g)
	if err != nil {
		return nil, err
	}
	return wrapFresh(g)
}

// Compose returns a new handle over the relational composition of a and b.
func Compose(a, b *Handle) (*Handle, error) {
	if err := pairAlive(a, b); err != nil {
		return nil, err
	}
	g, err := cgraph.Compose(a.g, b.g)
	if err != nil {
		return nil, err
	}
	return wrapFresh(g)
}

// Complementer returns a new handle over the complement graph. Self-loops
// participate only when loops is true.
func (h *Handle) Complementer(loops bool) (*Handle, error) {
	if err := h.alive(); err != nil {
		return nil, err
	}
	g, err := cgraph.Complementer(h.g, loops)
	if err != nil {
		return nil, err
	}
	return wrapFresh(g)
}

// DisjointUnion concatenates the given handles' graphs into one new handle,
// shifting vertex ids operand by operand.
func DisjointUnion(hs []*Handle) (*Handle, error) {
	for _, h := range hs {
		if err := h.alive(); err != nil {
			return nil, err
		}
	}
	gs, err := bridge.ToGraphList(hs)
	if err != nil {
		return nil, err
	}
	g, err := cgraph.DisjointUnion(gs)
	if err != nil {
		return nil, err
	}
	return wrapFresh(g)
}

// Subgraph returns a new handle over the subgraph induced by the host index
// sequence, renumbered in the order given.
func (h *Handle) Subgraph(vertices []any) (*Handle, error) {
	if err := h.alive(); err != nil {
		return nil, err
	}
	vs, err := indexSlice(vertices)
	if err != nil {
		return nil, err
	}
	g, err := cgraph.InducedSubgraph(h.g, vs)
	if err != nil {
		return nil, err
	}
	return wrapFresh(g)
}

// SpanningTree returns a new handle over a breadth-first spanning forest of
// the graph.
func (h *Handle) SpanningTree() (*Handle, error) {
	if err := h.alive(); err != nil {
		return nil, err
	}
	g, err := cgraph.SpanningForest(h.g)
	if err != nil {
		return nil, err
	}
	return wrapFresh(g)
}

// Decompose splits the graph into its weak components and returns one handle
// per component. Components smaller than minElements are skipped and at most
// maxComponents are returned; non-positive limits mean no constraint.
//
// This is the one multi-result operation: the component containers window
// into a single shared payload, so each is wrapped under the shallow-free
// discipline, and the container-array structure is released here once every
// container has been handed over. On any mid-way failure everything built so
// far is torn down and no handle escapes.
func (h *Handle) Decompose(maxComponents, minElements int) ([]*Handle, error) {
	if err := h.alive(); err != nil {
		return nil, err
	}
	set, err := cgraph.Decompose(h.g, maxComponents, minElements)
	if err != nil {
		return nil, err
	}

	gs := make([]*cgraph.Graph, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		g, err := set.Take(i)
		if err != nil {
			_ = set.Release()
			return nil, err
		}
		gs = append(gs, g)
	}

	out, err := bridge.FromGraphList(gs,
		func(g *cgraph.Graph) (*Handle, error) {
			return Wrap(g, cgraph.DisciplineShallow)
		},
		func(built *Handle) { built.Finalize() },
	)
	if err != nil {
		for _, g := range gs {
			if g.State() == cgraph.StateLive {
				_ = g.ShallowFree()
			}
		}
		_ = set.Release()
		return nil, err
	}
	if err := set.Release(); err != nil {
		for _, w := range out {
			w.Finalize()
		}
		return nil, err
	}
	return out, nil
}

package cgraph

import (
	"errors"
	"fmt"

	"github.com/tmc/graphbind"
)

// ErrReleased is returned when an operation touches a graph, vector, or
// matrix whose storage has already been released.
var ErrReleased = errors.New("cgraph: use of released resource")

// ResourceState tracks the life of a graph's storage.
type ResourceState int

const (
	// StateLive means the storage is allocated and usable.
	StateLive ResourceState = iota
	// StateReleased means the storage was fully destroyed.
	StateReleased
	// StateDetached means the container bookkeeping was shallow-freed; the
	// backing payload may outlive it while siblings still reference it.
	StateDetached
)

func (s ResourceState) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateReleased:
		return "released"
	case StateDetached:
		return "detached"
	default:
		return fmt.Sprintf("ResourceState(%d)", int(s))
	}
}

// Discipline records how a wrapped resource must be released when its owner
// goes away.
type Discipline int

const (
	// DisciplineDestroy releases the resource in full.
	DisciplineDestroy Discipline = iota
	// DisciplineShallow releases only the container bookkeeping, for
	// decomposition results that share a backing payload.
	DisciplineShallow
)

func (d Discipline) String() string {
	switch d {
	case DisciplineDestroy:
		return "destroy"
	case DisciplineShallow:
		return "shallow-free"
	default:
		return fmt.Sprintf("Discipline(%d)", int(d))
	}
}

// AttributeSink receives structural notifications from a graph's mutation
// primitives so an attached attribute table can stay aligned with the vertex
// and edge counts. Removal hooks get the surviving elements in their old
// index order, which is also the renumbering order.
type AttributeSink interface {
	VerticesAdded(n int)
	VerticesRemoved(surviving []int)
	EdgesAdded(n int)
	EdgesRemoved(surviving []int)
}

// payload is the manually managed backing storage behind a graph's endpoint
// slices. It is reference counted so decomposition containers can window
// into one shared allocation; the storage is released exactly once, when the
// final reference drops.
type payload struct {
	refs     int
	released bool
}

func newPayload() *payload {
	trackAlloc(kindGraph)
	return &payload{refs: 1}
}

func (p *payload) retain() { p.refs++ }

func (p *payload) release() error {
	if p.released {
		trackFault(kindGraph)
		return ErrReleased
	}
	p.refs--
	if p.refs == 0 {
		p.released = true
		trackFree(kindGraph)
	}
	return nil
}

// Graph is the native graph resource: a vertex count, a directed flag, and
// parallel endpoint slices backed by an explicitly released payload. Every
// endpoint is strictly below the vertex count at all times.
type Graph struct {
	n        int
	directed bool
	from, to []int
	store    *payload
	sink     AttributeSink
	state    ResourceState
}

// New allocates an edgeless graph on vertexCount vertices.
func New(vertexCount int, directed bool) (*Graph, error) {
	return NewFromEdges(vertexCount, nil, nil, directed)
}

// NewFromEdges allocates a graph with the given endpoint slices. Endpoints
// are validated before any storage is allocated.
func NewFromEdges(vertexCount int, from, to []int, directed bool) (*Graph, error) {
	if vertexCount < 0 {
		return nil, fmt.Errorf("%w: negative vertex count %d", graphbind.ErrConstruction, vertexCount)
	}
	if len(from) != len(to) {
		return nil, fmt.Errorf("%w: endpoint slices differ in length (%d vs %d)", graphbind.ErrConstruction, len(from), len(to))
	}
	for i := range from {
		if from[i] < 0 || from[i] >= vertexCount || to[i] < 0 || to[i] >= vertexCount {
			return nil, fmt.Errorf("%w: edge %d endpoints (%d,%d) out of range [0,%d)", graphbind.ErrConstruction, i, from[i], to[i], vertexCount)
		}
	}
	return &Graph{
		n:        vertexCount,
		directed: directed,
		from:     append([]int(nil), from...),
		to:       append([]int(nil), to...),
		store:    newPayload(),
	}, nil
}

// newResult builds a fresh resource for an operation result. The producing
// operation guarantees the endpoints are in range.
func newResult(n int, directed bool, from, to []int) *Graph {
	return &Graph{n: n, directed: directed, from: from, to: to, store: newPayload()}
}

func (g *Graph) alive() error {
	if g.state != StateLive {
		return fmt.Errorf("%w (%s)", ErrReleased, g.state)
	}
	return nil
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return g.n }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.from) }

// IsDirected reports whether the graph is directed.
func (g *Graph) IsDirected() bool { return g.directed }

// State reports the storage lifecycle state.
func (g *Graph) State() ResourceState { return g.state }

// SetSink attaches the structural-notification back-pointer.
func (g *Graph) SetSink(s AttributeSink) { g.sink = s }

// Sink returns the attached back-pointer, nil if none.
func (g *Graph) Sink() AttributeSink { return g.sink }

// Edge returns the endpoints of edge i in insertion order.
func (g *Graph) Edge(i int) (int, int, error) {
	if err := g.alive(); err != nil {
		return 0, 0, err
	}
	if i < 0 || i >= len(g.from) {
		return 0, 0, fmt.Errorf("%w: edge index %d out of range [0,%d)", graphbind.ErrBadValue, i, len(g.from))
	}
	return g.from[i], g.to[i], nil
}

// Edges returns copies of the endpoint slices.
func (g *Graph) Edges() (from, to []int) {
	return append([]int(nil), g.from...), append([]int(nil), g.to...)
}

// detach gives the graph private endpoint storage ahead of a mutation.
// Needed when the payload is shared with sibling containers after a
// decomposition: mutating one container may relocate its storage, so the
// shared window cannot be written through.
func (g *Graph) detach() {
	if g.store.refs <= 1 {
		return
	}
	from := append([]int(nil), g.from...)
	to := append([]int(nil), g.to...)
	_ = g.store.release()
	g.store = newPayload()
	g.from, g.to = from, to
}

// AddVertices grows the vertex set by n and notifies the sink.
func (g *Graph) AddVertices(n int) error {
	if err := g.alive(); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: cannot add %d vertices", graphbind.ErrBadValue, n)
	}
	g.n += n
	if g.sink != nil {
		g.sink.VerticesAdded(n)
	}
	return nil
}

// AddEdges appends edges after validating every endpoint, then notifies the
// sink. Either all edges are added or none.
func (g *Graph) AddEdges(from, to []int) error {
	if err := g.alive(); err != nil {
		return err
	}
	if len(from) != len(to) {
		return fmt.Errorf("%w: endpoint slices differ in length (%d vs %d)", graphbind.ErrBadValue, len(from), len(to))
	}
	for i := range from {
		if from[i] < 0 || from[i] >= g.n || to[i] < 0 || to[i] >= g.n {
			return fmt.Errorf("%w: edge endpoints (%d,%d) out of range [0,%d)", graphbind.ErrBadValue, from[i], to[i], g.n)
		}
	}
	g.detach()
	g.from = append(g.from, from...)
	g.to = append(g.to, to...)
	if g.sink != nil {
		g.sink.EdgesAdded(len(from))
	}
	return nil
}

// DeleteVertices removes the given vertices and every incident edge.
// Survivors keep their relative order; the new index of an old vertex is its
// rank among the survivors. The sink sees the vertex removal first, then the
// edge removal.
func (g *Graph) DeleteVertices(vertices []int) error {
	if err := g.alive(); err != nil {
		return err
	}
	drop := make(map[int]bool, len(vertices))
	for _, v := range vertices {
		if v < 0 || v >= g.n {
			return fmt.Errorf("%w: vertex %d out of range [0,%d)", graphbind.ErrBadValue, v, g.n)
		}
		drop[v] = true
	}
	g.detach()

	survivingV := make([]int, 0, g.n-len(drop))
	remap := make([]int, g.n)
	for v := 0; v < g.n; v++ {
		if drop[v] {
			remap[v] = -1
			continue
		}
		remap[v] = len(survivingV)
		survivingV = append(survivingV, v)
	}

	oldFrom, oldTo := g.from, g.to
	newFrom, newTo := oldFrom[:0], oldTo[:0]
	survivingE := make([]int, 0, len(oldFrom))
	for i := range oldFrom {
		f, t := remap[oldFrom[i]], remap[oldTo[i]]
		if f < 0 || t < 0 {
			continue
		}
		newFrom = append(newFrom, f)
		newTo = append(newTo, t)
		survivingE = append(survivingE, i)
	}
	g.from, g.to = newFrom, newTo
	g.n = len(survivingV)
	if g.sink != nil {
		g.sink.VerticesRemoved(survivingV)
		g.sink.EdgesRemoved(survivingE)
	}
	return nil
}

// DeleteEdges removes the edges at the given indices. Survivors keep their
// relative order.
func (g *Graph) DeleteEdges(edges []int) error {
	if err := g.alive(); err != nil {
		return err
	}
	drop := make(map[int]bool, len(edges))
	for _, e := range edges {
		if e < 0 || e >= len(g.from) {
			return fmt.Errorf("%w: edge index %d out of range [0,%d)", graphbind.ErrBadValue, e, len(g.from))
		}
		drop[e] = true
	}
	g.detach()

	oldFrom, oldTo := g.from, g.to
	newFrom, newTo := oldFrom[:0], oldTo[:0]
	surviving := make([]int, 0, len(oldFrom)-len(drop))
	for i := range oldFrom {
		if drop[i] {
			continue
		}
		newFrom = append(newFrom, oldFrom[i])
		newTo = append(newTo, oldTo[i])
		surviving = append(surviving, i)
	}
	g.from, g.to = newFrom, newTo
	if g.sink != nil {
		g.sink.EdgesRemoved(surviving)
	}
	return nil
}

// Degree returns the degree of each requested vertex as a fresh vector the
// caller must destroy. A nil vertex list means every vertex. Directed graphs
// report total degree; a self-loop counts twice.
func (g *Graph) Degree(vertices []int) (*Vector, error) {
	if err := g.alive(); err != nil {
		return nil, err
	}
	deg := make([]float64, g.n)
	for i := range g.from {
		deg[g.from[i]]++
		deg[g.to[i]]++
	}
	if vertices == nil {
		return VectorOf(deg...), nil
	}
	out := NewVector(len(vertices))
	for i, v := range vertices {
		if v < 0 || v >= g.n {
			out.Destroy()
			return nil, fmt.Errorf("%w: vertex %d out of range [0,%d)", graphbind.ErrBadValue, v, g.n)
		}
		out.Set(i, deg[v])
	}
	return out, nil
}

// Destroy fully releases the resource. A second release is reported as
// ErrReleased and recorded by the allocation tracker.
func (g *Graph) Destroy() error {
	if g.state != StateLive {
		trackFault(kindGraph)
		return fmt.Errorf("%w: destroy of %s graph", ErrReleased, g.state)
	}
	g.state = StateReleased
	g.sink = nil
	g.from, g.to = nil, nil
	return g.store.release()
}

// ShallowFree releases only the container bookkeeping and drops the
// container's reference on the backing payload. The payload stays alive
// while sibling containers from the same decomposition still reference it.
func (g *Graph) ShallowFree() error {
	if g.state != StateLive {
		trackFault(kindGraph)
		return fmt.Errorf("%w: shallow free of %s graph", ErrReleased, g.state)
	}
	g.state = StateDetached
	g.sink = nil
	g.from, g.to = nil, nil
	return g.store.release()
}

// Copy allocates a fresh resource with identical structure and a private
// payload. The sink back-pointer is not copied.
func Copy(g *Graph) (*Graph, error) {
	if err := g.alive(); err != nil {
		return nil, err
	}
	from, to := g.Edges()
	return newResult(g.n, g.directed, from, to), nil
}

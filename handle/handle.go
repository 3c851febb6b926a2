package handle

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tmc/graphbind"
	"github.com/tmc/graphbind/bridge"
	"github.com/tmc/graphbind/cgraph"
	"github.com/tmc/graphbind/gc"
)

// State tracks the wrapper lifecycle.
type State int

const (
	// StateLive means the handle owns a usable resource.
	StateLive State = iota
	// StateFinalizing means Finalize is running.
	StateFinalizing
	// StateDestroyed means Finalize completed.
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateFinalizing:
		return "finalizing"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Handle is the managed wrapper owning exactly one native graph resource for
// its whole life. Handles are single-threaded by contract; the native
// library is not reentrant and the handle performs no locking of its own.
type Handle struct {
	id         uuid.UUID
	g          *cgraph.Graph
	discipline cgraph.Discipline
	store      *AttributeStore
	destructor any
	vseq       *VertexSeq
	eseq       *EdgeSeq
	logger     *slog.Logger
	collector  *gc.Collector
	state      State
}

// New constructs a handle over a freshly generated resource. The edge list,
// directedness, destructor, logger, and collector all come in as options.
func New(vertexCount int, opts ...Option) (*Handle, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	applyDefaults(o)
	if o.destructor != nil {
		if err := checkCallable(o.destructor); err != nil {
			return nil, err
		}
	}
	from := make([]int, len(o.edges))
	to := make([]int, len(o.edges))
	for i, e := range o.edges {
		from[i], to[i] = e[0], e[1]
	}
	g, err := cgraph.NewFromEdges(vertexCount, from, to, o.directed)
	if err != nil {
		return nil, err
	}
	return newHandle(g, cgraph.DisciplineDestroy, o), nil
}

// Wrap takes ownership of an already-populated resource under an explicit
// free discipline. It is the path every operation producing new resources
// goes through. An attribute table already attached to the resource is
// adopted rather than re-initialized.
func Wrap(g *cgraph.Graph, discipline cgraph.Discipline, opts ...Option) (*Handle, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil resource", graphbind.ErrBadValue)
	}
	if g.State() != cgraph.StateLive {
		return nil, fmt.Errorf("%w: cannot wrap %s resource", graphbind.ErrBadValue, g.State())
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	applyDefaults(o)
	if o.destructor != nil {
		if err := checkCallable(o.destructor); err != nil {
			return nil, err
		}
	}
	return newHandle(g, discipline, o), nil
}

func newHandle(g *cgraph.Graph, discipline cgraph.Discipline, o *options) *Handle {
	h := &Handle{
		id:         uuid.New(),
		g:          g,
		discipline: discipline,
		destructor: o.destructor,
		logger:     o.logger,
		collector:  o.collector,
	}
	if s, ok := g.Sink().(*AttributeStore); ok && s != nil {
		h.store = s
	} else {
		h.store = newAttributeStore(g.VertexCount(), g.EdgeCount())
		g.SetSink(h.store)
	}
	register(h)
	if h.collector != nil {
		h.collector.Register(h)
	}
	return h
}

// ID returns the handle's identity, valid for its whole life.
func (h *Handle) ID() uuid.UUID { return h.id }

// State reports the wrapper lifecycle state.
func (h *Handle) State() State { return h.state }

// Discipline reports the free discipline recorded when the resource was
// taken over.
func (h *Handle) Discipline() cgraph.Discipline { return h.discipline }

// NativeGraph exposes the owned resource for bridging. Nil once finalized.
func (h *Handle) NativeGraph() *cgraph.Graph {
	if h == nil {
		return nil
	}
	return h.g
}

// Attrs returns the attribute store. Nil once finalized.
func (h *Handle) Attrs() *AttributeStore { return h.store }

// VertexCount returns the vertex count, zero once finalized.
func (h *Handle) VertexCount() int {
	if h.g == nil {
		return 0
	}
	return h.g.VertexCount()
}

// EdgeCount returns the edge count, zero once finalized.
func (h *Handle) EdgeCount() int {
	if h.g == nil {
		return 0
	}
	return h.g.EdgeCount()
}

// IsDirected reports whether the graph is directed.
func (h *Handle) IsDirected() bool {
	return h.g != nil && h.g.IsDirected()
}

func (h *Handle) alive() error {
	if h.state != StateLive {
		return fmt.Errorf("%w: handle is %s", graphbind.ErrBadValue, h.state)
	}
	return nil
}

// AddVertices grows the graph; every vertex attribute sequence gains nil
// placeholders for the new vertices.
func (h *Handle) AddVertices(n int) error {
	if err := h.alive(); err != nil {
		return err
	}
	return h.g.AddVertices(n)
}

// AddEdges appends edges; every edge attribute sequence gains nil
// placeholders. Either all edges are added or none.
func (h *Handle) AddEdges(edges [][2]int) error {
	if err := h.alive(); err != nil {
		return err
	}
	from := make([]int, len(edges))
	to := make([]int, len(edges))
	for i, e := range edges {
		from[i], to[i] = e[0], e[1]
	}
	return h.g.AddEdges(from, to)
}

// AddEdgePairs appends edges given as a flat host sequence of endpoint
// indices: elements 2k and 2k+1 form edge k.
func (h *Handle) AddEdgePairs(seq []any) error {
	if err := h.alive(); err != nil {
		return err
	}
	from, to, err := bridge.ToIndexPairs(seq)
	if err != nil {
		return err
	}
	return h.g.AddEdges(from, to)
}

// DeleteVertices removes the vertices named by the host index sequence,
// together with their incident edges. Attribute values of survivors follow
// the renumbering.
func (h *Handle) DeleteVertices(seq []any) error {
	if err := h.alive(); err != nil {
		return err
	}
	vs, err := indexSlice(seq)
	if err != nil {
		return err
	}
	return h.g.DeleteVertices(vs)
}

// DeleteEdges removes the edges named by the host index sequence.
func (h *Handle) DeleteEdges(seq []any) error {
	if err := h.alive(); err != nil {
		return err
	}
	es, err := indexSlice(seq)
	if err != nil {
		return err
	}
	return h.g.DeleteEdges(es)
}

// indexSlice converts a host index sequence through the bridge, releasing
// the scratch vector on every path.
func indexSlice(seq []any) ([]int, error) {
	vec, err := bridge.ToIndexVector(seq)
	if err != nil {
		return nil, err
	}
	defer vec.Destroy()
	out := make([]int, vec.Len())
	for i := range out {
		out[i] = int(vec.At(i))
	}
	return out, nil
}

// Degree returns the degree of each requested vertex as a host integer
// sequence. A nil argument means every vertex.
func (h *Handle) Degree(seq []any) ([]any, error) {
	if err := h.alive(); err != nil {
		return nil, err
	}
	var vs []int
	if seq != nil {
		var err error
		vs, err = indexSlice(seq)
		if err != nil {
			return nil, err
		}
	}
	vec, err := h.g.Degree(vs)
	if err != nil {
		return nil, err
	}
	defer vec.Destroy()
	return bridge.FromVector(vec, bridge.Int), nil
}

// EdgeList returns the edges as endpoint pairs in insertion order.
func (h *Handle) EdgeList() ([][2]int, error) {
	if err := h.alive(); err != nil {
		return nil, err
	}
	from, to := h.g.Edges()
	out := make([][2]int, len(from))
	for i := range from {
		out[i] = [2]int{from[i], to[i]}
	}
	return out, nil
}

// IsConnected reports whether the graph is weakly connected.
func (h *Handle) IsConnected() (bool, error) {
	if err := h.alive(); err != nil {
		return false, err
	}
	return cgraph.IsConnected(h.g)
}

// AdjacencyMatrix materializes the adjacency counts as host rows of ints.
func (h *Handle) AdjacencyMatrix() ([][]any, error) {
	if err := h.alive(); err != nil {
		return nil, err
	}
	m, err := cgraph.Adjacency(h.g)
	if err != nil {
		return nil, err
	}
	defer m.Destroy()
	return bridge.FromMatrix(m, bridge.Int), nil
}

func checkCallable(fn any) error {
	switch fn.(type) {
	case func(), func() error:
		return nil
	}
	return fmt.Errorf("%w: destructor must be func() or func() error, got %T", graphbind.ErrBadType, fn)
}

// RegisterDestructor replaces the destructor callback and returns the
// previous one, nil if none was set.
func (h *Handle) RegisterDestructor(fn any) (any, error) {
	if err := h.alive(); err != nil {
		return nil, err
	}
	if err := checkCallable(fn); err != nil {
		return nil, err
	}
	prev := h.destructor
	h.destructor = fn
	return prev, nil
}

// Finalize tears the handle down. It is idempotent and never fails: the
// destructor callback runs exactly once with failures logged and swallowed,
// the live-handle registration is dropped, the resource is released under
// its recorded discipline, and the cached views are detached.
func (h *Handle) Finalize() {
	if h.state != StateLive {
		return
	}
	h.state = StateFinalizing

	if h.destructor != nil {
		h.invokeDestructor()
		h.destructor = nil
	}

	unregister(h)
	if h.collector != nil {
		h.collector.Unregister(h)
		h.collector = nil
	}

	var err error
	switch h.discipline {
	case cgraph.DisciplineShallow:
		err = h.g.ShallowFree()
	default:
		err = h.g.Destroy()
	}
	if err != nil {
		h.logger.Warn("resource release failed",
			"handle", h.id, "discipline", h.discipline.String(), "err", err)
	}
	h.g = nil
	h.store = nil
	h.detachViews()
	h.state = StateDestroyed
}

func (h *Handle) invokeDestructor() {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Warn("destructor panicked", "handle", h.id, "panic", r)
		}
	}()
	switch fn := h.destructor.(type) {
	case func():
		fn()
	case func() error:
		if err := fn(); err != nil {
			h.logger.Warn("destructor failed", "handle", h.id, "err", err)
		}
	}
}

// Traverse reports the managed values this handle strongly references: the
// destructor callback and the graph-scope attribute values. Vertex and edge
// attribute values and the cached element views are deliberately excluded;
// visiting them manufactures spurious cycles through the element proxies
// that look like leaks to the collector. The cost is that a vertex or edge
// attribute pointing back at its own handle keeps the cycle alive until the
// value is mirrored into graph scope or removed.
func (h *Handle) Traverse(visit func(child any)) {
	if h.destructor != nil {
		visit(h.destructor)
	}
	if h.store != nil {
		for _, v := range h.store.graphValues() {
			visit(v)
		}
	}
}

// Clear drops the reference-bearing fields so a cycle through the handle can
// be reclaimed: the destructor callback and the cached views. The resource
// itself is untouched; releasing it stays with Finalize.
func (h *Handle) Clear() {
	h.destructor = nil
	h.detachViews()
}

func (h *Handle) detachViews() {
	h.vseq, h.eseq = nil, nil
}

package handle

import (
	"fmt"
	"sort"

	"github.com/tmc/graphbind"
)

// Scope selects which attribute table an operation addresses.
type Scope int

const (
	// GraphScope attributes are single values on the graph itself.
	GraphScope Scope = iota
	// VertexScope attributes are sequences with one value per vertex.
	VertexScope
	// EdgeScope attributes are sequences with one value per edge.
	EdgeScope
)

func (s Scope) String() string {
	switch s {
	case GraphScope:
		return "graph"
	case VertexScope:
		return "vertex"
	case EdgeScope:
		return "edge"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// AttributeStore is the per-resource side table of named values at graph,
// vertex, and edge granularity. Vertex and edge sequences always match the
// owning resource's current counts; the structural hooks below keep them
// aligned as the resource mutates.
type AttributeStore struct {
	graph  map[string]any
	vertex map[string][]any
	edge   map[string][]any

	vertexCount int
	edgeCount   int
}

func newAttributeStore(vertexCount, edgeCount int) *AttributeStore {
	return &AttributeStore{
		graph:       make(map[string]any),
		vertex:      make(map[string][]any),
		edge:        make(map[string][]any),
		vertexCount: vertexCount,
		edgeCount:   edgeCount,
	}
}

// Get returns the value stored under key. Vertex and edge scopes return a
// copy of the full sequence.
func (s *AttributeStore) Get(scope Scope, key string) (any, bool) {
	switch scope {
	case GraphScope:
		v, ok := s.graph[key]
		return v, ok
	case VertexScope:
		seq, ok := s.vertex[key]
		if !ok {
			return nil, false
		}
		return append([]any(nil), seq...), true
	case EdgeScope:
		seq, ok := s.edge[key]
		if !ok {
			return nil, false
		}
		return append([]any(nil), seq...), true
	}
	return nil, false
}

// Set stores a value under key. Vertex and edge scopes require a []any whose
// length equals the current vertex or edge count; on any failure the store
// is left unchanged.
func (s *AttributeStore) Set(scope Scope, key string, value any) error {
	switch scope {
	case GraphScope:
		s.graph[key] = value
		return nil
	case VertexScope:
		seq, err := checkSeq(key, value, s.vertexCount)
		if err != nil {
			return err
		}
		s.vertex[key] = seq
		return nil
	case EdgeScope:
		seq, err := checkSeq(key, value, s.edgeCount)
		if err != nil {
			return err
		}
		s.edge[key] = seq
		return nil
	}
	return fmt.Errorf("%w: unknown attribute scope %d", graphbind.ErrBadValue, int(scope))
}

func checkSeq(key string, value any, want int) ([]any, error) {
	seq, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: attribute %q needs a []any sequence, got %T", graphbind.ErrBadType, key, value)
	}
	if len(seq) != want {
		return nil, fmt.Errorf("%w: attribute %q has %d values, want %d", graphbind.ErrLengthMismatch, key, len(seq), want)
	}
	return append([]any(nil), seq...), nil
}

// Delete removes key from the scope, reporting whether it was present.
func (s *AttributeStore) Delete(scope Scope, key string) bool {
	switch scope {
	case GraphScope:
		_, ok := s.graph[key]
		delete(s.graph, key)
		return ok
	case VertexScope:
		_, ok := s.vertex[key]
		delete(s.vertex, key)
		return ok
	case EdgeScope:
		_, ok := s.edge[key]
		delete(s.edge, key)
		return ok
	}
	return false
}

// Keys returns the sorted attribute names of a scope.
func (s *AttributeStore) Keys(scope Scope) []string {
	var keys []string
	switch scope {
	case GraphScope:
		for k := range s.graph {
			keys = append(keys, k)
		}
	case VertexScope:
		for k := range s.vertex {
			keys = append(keys, k)
		}
	case EdgeScope:
		for k := range s.edge {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Len reports the number of attributes in a scope.
func (s *AttributeStore) Len(scope Scope) int {
	switch scope {
	case GraphScope:
		return len(s.graph)
	case VertexScope:
		return len(s.vertex)
	case EdgeScope:
		return len(s.edge)
	}
	return 0
}

// valueAt returns the value for one vertex or edge.
func (s *AttributeStore) valueAt(scope Scope, key string, i int) (any, error) {
	seq, limit, err := s.seqFor(scope, key)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= limit {
		return nil, fmt.Errorf("%w: %s index %d out of range [0,%d)", graphbind.ErrBadValue, scope, i, limit)
	}
	return seq[i], nil
}

// setValueAt updates the value for one vertex or edge in place, keeping the
// sequence length.
func (s *AttributeStore) setValueAt(scope Scope, key string, i int, value any) error {
	seq, limit, err := s.seqFor(scope, key)
	if err != nil {
		return err
	}
	if i < 0 || i >= limit {
		return fmt.Errorf("%w: %s index %d out of range [0,%d)", graphbind.ErrBadValue, scope, i, limit)
	}
	seq[i] = value
	return nil
}

func (s *AttributeStore) seqFor(scope Scope, key string) ([]any, int, error) {
	var seq []any
	var ok bool
	switch scope {
	case VertexScope:
		seq, ok = s.vertex[key]
	case EdgeScope:
		seq, ok = s.edge[key]
	default:
		return nil, 0, fmt.Errorf("%w: scope %s has no element values", graphbind.ErrBadValue, scope)
	}
	if !ok {
		return nil, 0, fmt.Errorf("%w: no %s attribute %q", graphbind.ErrBadValue, scope, key)
	}
	return seq, len(seq), nil
}

// graphValues returns the graph-scope values for cycle traversal.
func (s *AttributeStore) graphValues() []any {
	out := make([]any, 0, len(s.graph))
	for _, k := range s.Keys(GraphScope) {
		out = append(out, s.graph[k])
	}
	return out
}

// The four methods below implement cgraph.AttributeSink; the resource calls
// them from its mutation primitives.

// VerticesAdded extends every vertex sequence with nil placeholders.
func (s *AttributeStore) VerticesAdded(n int) {
	s.vertexCount += n
	for key, seq := range s.vertex {
		for i := 0; i < n; i++ {
			seq = append(seq, nil)
		}
		s.vertex[key] = seq
	}
}

// VerticesRemoved keeps the values of surviving vertices in the resource's
// renumbering order.
func (s *AttributeStore) VerticesRemoved(surviving []int) {
	s.vertexCount = len(surviving)
	for key, seq := range s.vertex {
		next := make([]any, len(surviving))
		for i, old := range surviving {
			next[i] = seq[old]
		}
		s.vertex[key] = next
	}
}

// EdgesAdded extends every edge sequence with nil placeholders.
func (s *AttributeStore) EdgesAdded(n int) {
	s.edgeCount += n
	for key, seq := range s.edge {
		for i := 0; i < n; i++ {
			seq = append(seq, nil)
		}
		s.edge[key] = seq
	}
}

// EdgesRemoved keeps the values of surviving edges in the resource's
// renumbering order.
func (s *AttributeStore) EdgesRemoved(surviving []int) {
	s.edgeCount = len(surviving)
	for key, seq := range s.edge {
		next := make([]any, len(surviving))
		for i, old := range surviving {
			next[i] = seq[old]
		}
		s.edge[key] = next
	}
}

package cgraph

import (
	"fmt"

	"github.com/tmc/graphbind"
)

// Algebra operations. Every function here allocates exactly one fresh result
// resource with a private payload and never mutates its operands; on a
// validation failure nothing is allocated.

// edgeKey canonicalizes an edge for set operations. Undirected edges compare
// as unordered pairs.
func edgeKey(directed bool, u, v int) [2]int {
	if !directed && u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

func checkPair(op string, a, b *Graph) error {
	if err := a.alive(); err != nil {
		return err
	}
	if err := b.alive(); err != nil {
		return err
	}
	if a.directed != b.directed {
		return fmt.Errorf("%w: %s requires operands of matching directedness", graphbind.ErrBadValue, op)
	}
	return nil
}

// Union returns a graph on max(|V(a)|,|V(b)|) vertices containing each
// distinct edge of either operand once.
func Union(a, b *Graph) (*Graph, error) {
	if err := checkPair("union", a, b); err != nil {
		return nil, err
	}
	seen := make(map[[2]int]bool, len(a.from)+len(b.from))
	var from, to []int
	for _, g := range []*Graph{a, b} {
		for i := range g.from {
			k := edgeKey(a.directed, g.from[i], g.to[i])
			if seen[k] {
				continue
			}
			seen[k] = true
			from = append(from, g.from[i])
			to = append(to, g.to[i])
		}
	}
	return newResult(max(a.n, b.n), a.directed, from, to), nil
}

// Intersection returns a graph on max(|V(a)|,|V(b)|) vertices containing the
// edges present in both operands.
func Intersection(a, b *Graph) (*Graph, error) {
	if err := checkPair("intersection", a, b); err != nil {
		return nil, err
	}
	inB := make(map[[2]int]bool, len(b.from))
	for i := range b.from {
		inB[edgeKey(a.directed, b.from[i], b.to[i])] = true
	}
	seen := make(map[[2]int]bool)
	var from, to []int
	for i := range a.from {
		k := edgeKey(a.directed, a.from[i], a.to[i])
		if !inB[k] || seen[k] {
			continue
		}
		seen[k] = true
		from = append(from, a.from[i])
		to = append(to, a.to[i])
	}
	return newResult(max(a.n, b.n), a.directed, from, to), nil
}

// Difference returns a graph on |V(a)| vertices containing the edges of a
// that are absent from b.
func Difference(a, b *Graph) (*Graph, error) {
	if err := checkPair("difference", a, b); err != nil {
		return nil, err
	}
	inB := make(map[[2]int]bool, len(b.from))
	for i := range b.from {
		inB[edgeKey(a.directed, b.from[i], b.to[i])] = true
	}
	seen := make(map[[2]int]bool)
	var from, to []int
	for i := range a.from {
		k := edgeKey(a.directed, a.from[i], a.to[i])
		if inB[k] || seen[k] {
			continue
		}
		seen[k] = true
		from = append(from, a.from[i])
		to = append(to, a.to[i])
	}
	return newResult(a.n, a.directed, from, to), nil
}

// Complementer returns the graph holding every edge g lacks. Self-loops are
// only considered when loops is true.
func Complementer(g *Graph, loops bool) (*Graph, error) {
	if err := g.alive(); err != nil {
		return nil, err
	}
	present := make(map[[2]int]bool, len(g.from))
	for i := range g.from {
		present[edgeKey(g.directed, g.from[i], g.to[i])] = true
	}
	var from, to []int
	add := func(u, v int) {
		if present[edgeKey(g.directed, u, v)] {
			return
		}
		from = append(from, u)
		to = append(to, v)
	}
	for u := 0; u < g.n; u++ {
		if g.directed {
			for v := 0; v < g.n; v++ {
				if u == v && !loops {
					continue
				}
				add(u, v)
			}
			continue
		}
		if loops {
			add(u, u)
		}
		for v := u + 1; v < g.n; v++ {
			add(u, v)
		}
	}
	return newResult(g.n, g.directed, from, to), nil
}

// Compose returns the relational composition of a and b: an edge (u,w)
// exists when some vertex v carries an edge u->v in a and an edge v->w in b.
// Undirected operands are treated as symmetric relations.
func Compose(a, b *Graph) (*Graph, error) {
	if err := checkPair("compose", a, b); err != nil {
		return nil, err
	}
	succ := make(map[int][]int, b.n)
	for i := range b.from {
		succ[b.from[i]] = append(succ[b.from[i]], b.to[i])
		if !b.directed {
			succ[b.to[i]] = append(succ[b.to[i]], b.from[i])
		}
	}
	seen := make(map[[2]int]bool)
	var from, to []int
	link := func(u, v int) {
		for _, w := range succ[v] {
			k := edgeKey(a.directed, u, w)
			if seen[k] {
				continue
			}
			seen[k] = true
			from = append(from, u)
			to = append(to, w)
		}
	}
	for i := range a.from {
		link(a.from[i], a.to[i])
		if !a.directed {
			link(a.to[i], a.from[i])
		}
	}
	return newResult(max(a.n, b.n), a.directed, from, to), nil
}

// DisjointUnion concatenates the given graphs, shifting each operand's
// vertex ids past the previous operands.
func DisjointUnion(gs []*Graph) (*Graph, error) {
	if len(gs) == 0 {
		return nil, fmt.Errorf("%w: disjoint union of no graphs", graphbind.ErrBadValue)
	}
	directed := gs[0].directed
	for _, g := range gs {
		if err := g.alive(); err != nil {
			return nil, err
		}
		if g.directed != directed {
			return nil, fmt.Errorf("%w: disjoint union requires operands of matching directedness", graphbind.ErrBadValue)
		}
	}
	var n int
	var from, to []int
	for _, g := range gs {
		for i := range g.from {
			from = append(from, g.from[i]+n)
			to = append(to, g.to[i]+n)
		}
		n += g.n
	}
	return newResult(n, directed, from, to), nil
}

// InducedSubgraph returns the subgraph on the given vertices, renumbered in
// the order given. Duplicate vertices are rejected.
func InducedSubgraph(g *Graph, vertices []int) (*Graph, error) {
	if err := g.alive(); err != nil {
		return nil, err
	}
	remap := make(map[int]int, len(vertices))
	for i, v := range vertices {
		if v < 0 || v >= g.n {
			return nil, fmt.Errorf("%w: vertex %d out of range [0,%d)", graphbind.ErrBadValue, v, g.n)
		}
		if _, dup := remap[v]; dup {
			return nil, fmt.Errorf("%w: duplicate vertex %d in subgraph selection", graphbind.ErrBadValue, v)
		}
		remap[v] = i
	}
	var from, to []int
	for i := range g.from {
		f, fok := remap[g.from[i]]
		t, tok := remap[g.to[i]]
		if !fok || !tok {
			continue
		}
		from = append(from, f)
		to = append(to, t)
	}
	return newResult(len(vertices), g.directed, from, to), nil
}

// SpanningForest returns a breadth-first spanning forest over the weak
// connectivity structure of g, on the same vertex set.
func SpanningForest(g *Graph) (*Graph, error) {
	if err := g.alive(); err != nil {
		return nil, err
	}
	adj := weakAdjacency(g)
	visited := make([]bool, g.n)
	var from, to []int
	for root := 0; root < g.n; root++ {
		if visited[root] {
			continue
		}
		visited[root] = true
		queue := []int{root}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, e := range adj[v] {
				other := g.from[e] + g.to[e] - v
				if visited[other] {
					continue
				}
				visited[other] = true
				from = append(from, g.from[e])
				to = append(to, g.to[e])
				queue = append(queue, other)
			}
		}
	}
	return newResult(g.n, g.directed, from, to), nil
}

// weakAdjacency builds per-vertex incident edge lists ignoring direction.
func weakAdjacency(g *Graph) [][]int {
	adj := make([][]int, g.n)
	for i := range g.from {
		adj[g.from[i]] = append(adj[g.from[i]], i)
		if g.from[i] != g.to[i] {
			adj[g.to[i]] = append(adj[g.to[i]], i)
		}
	}
	return adj
}

package cgraph

import (
	"fmt"

	"github.com/tmc/graphbind"
)

// IsConnected reports whether g is weakly connected. Graphs with at most one
// vertex count as connected.
func IsConnected(g *Graph) (bool, error) {
	if err := g.alive(); err != nil {
		return false, err
	}
	if g.n <= 1 {
		return true, nil
	}
	comp := componentLabels(g)
	for _, c := range comp {
		if c != 0 {
			return false, nil
		}
	}
	return true, nil
}

// componentLabels assigns each vertex its weak component id, numbered by
// first appearance in vertex order.
func componentLabels(g *Graph) []int {
	adj := weakAdjacency(g)
	comp := make([]int, g.n)
	for v := range comp {
		comp[v] = -1
	}
	next := 0
	for root := 0; root < g.n; root++ {
		if comp[root] >= 0 {
			continue
		}
		comp[root] = next
		queue := []int{root}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, e := range adj[v] {
				other := g.from[e] + g.to[e] - v
				if comp[other] >= 0 {
					continue
				}
				comp[other] = next
				queue = append(queue, other)
			}
		}
		next++
	}
	return comp
}

// ComponentSet is the multi-resource result of a decomposition: N container
// graphs windowing into one shared backing payload. Callers transfer each
// container out with Take and release the set structure itself with Release.
type ComponentSet struct {
	containers []*Graph
	released   bool
}

// Decompose splits g into its weak components. Components smaller than
// minElements vertices are skipped and at most maxComponents are returned;
// a non-positive limit means no constraint. Container vertex ids are the
// ranks of the original vertices within their component.
func Decompose(g *Graph, maxComponents, minElements int) (*ComponentSet, error) {
	if err := g.alive(); err != nil {
		return nil, err
	}
	comp := componentLabels(g)

	var members [][]int
	for v, c := range comp {
		if c == len(members) {
			members = append(members, nil)
		}
		members[c] = append(members[c], v)
	}

	var selected [][]int
	for _, vs := range members {
		if minElements > 0 && len(vs) < minElements {
			continue
		}
		if maxComponents > 0 && len(selected) == maxComponents {
			break
		}
		selected = append(selected, vs)
	}
	if len(selected) == 0 {
		return &ComponentSet{}, nil
	}

	keep := make(map[int]bool, len(selected))
	newIdx := make([]int, g.n)
	compOf := make(map[int]int, len(selected))
	for ci, vs := range selected {
		compOf[comp[vs[0]]] = ci
		keep[comp[vs[0]]] = true
		for pos, v := range vs {
			newIdx[v] = pos
		}
	}

	counts := make([]int, len(selected))
	for i := range g.from {
		if keep[comp[g.from[i]]] {
			counts[compOf[comp[g.from[i]]]]++
		}
	}
	offsets := make([]int, len(selected)+1)
	for i, c := range counts {
		offsets[i+1] = offsets[i] + c
	}

	// One allocation backs every container; each container windows into it
	// with capacity-clamped slices so a later mutation cannot bleed into a
	// sibling's window.
	total := offsets[len(selected)]
	bigFrom := make([]int, total)
	bigTo := make([]int, total)
	fill := append([]int(nil), offsets[:len(selected)]...)
	for i := range g.from {
		c := comp[g.from[i]]
		if !keep[c] {
			continue
		}
		ci := compOf[c]
		bigFrom[fill[ci]] = newIdx[g.from[i]]
		bigTo[fill[ci]] = newIdx[g.to[i]]
		fill[ci]++
	}

	shared := newPayload()
	containers := make([]*Graph, len(selected))
	for ci, vs := range selected {
		if ci > 0 {
			shared.retain()
		}
		lo, hi := offsets[ci], offsets[ci+1]
		containers[ci] = &Graph{
			n:        len(vs),
			directed: g.directed,
			from:     bigFrom[lo:hi:hi],
			to:       bigTo[lo:hi:hi],
			store:    shared,
		}
	}
	return &ComponentSet{containers: containers}, nil
}

// Len returns the number of containers still held by the set, taken or not.
func (cs *ComponentSet) Len() int { return len(cs.containers) }

// Take transfers container i out of the set; the caller becomes responsible
// for releasing it.
func (cs *ComponentSet) Take(i int) (*Graph, error) {
	if cs.released {
		return nil, fmt.Errorf("%w: take from released component set", ErrReleased)
	}
	if i < 0 || i >= len(cs.containers) {
		return nil, fmt.Errorf("%w: component index %d out of range [0,%d)", graphbind.ErrBadValue, i, len(cs.containers))
	}
	g := cs.containers[i]
	if g == nil {
		return nil, fmt.Errorf("%w: component %d already taken", graphbind.ErrBadValue, i)
	}
	cs.containers[i] = nil
	return g, nil
}

// Release frees the container-array structure. Containers never taken are
// shallow-freed first so an abandoned set cannot leak payload references.
func (cs *ComponentSet) Release() error {
	if cs.released {
		return fmt.Errorf("%w: component set released twice", ErrReleased)
	}
	cs.released = true
	var firstErr error
	for i, g := range cs.containers {
		if g == nil {
			continue
		}
		cs.containers[i] = nil
		if err := g.ShallowFree(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	cs.containers = nil
	return firstErr
}

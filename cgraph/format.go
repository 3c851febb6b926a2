package cgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line-oriented readers and writers. Parse failures here are raw library
// errors; the wrapping layer translates them into its taxonomy with the
// operation name attached.

// ParseEdgeList reads the whitespace-separated integer pair format: one edge
// per line, blank lines skipped, vertex count implied by the largest
// endpoint seen.
func ParseEdgeList(r io.Reader, directed bool) (*Graph, error) {
	sc := bufio.NewScanner(r)
	var from, to []int
	maxV := -1
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("edgelist line %d: want 2 fields, got %d", line, len(fields))
		}
		u, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("edgelist line %d: %v", line, err)
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("edgelist line %d: %v", line, err)
		}
		if u < 0 || v < 0 {
			return nil, fmt.Errorf("edgelist line %d: negative vertex id", line)
		}
		from = append(from, u)
		to = append(to, v)
		maxV = max(maxV, max(u, v))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewFromEdges(maxV+1, from, to, directed)
}

// ReadResult carries a parsed graph plus the vertex names and edge weights
// the format discovered, for attachment to an attribute table during
// wrapping.
type ReadResult struct {
	Graph   *Graph
	Names   []string
	Weights []float64 // nil when the file had no weight column
}

// ParseNCOL reads the named-edge format: "src dst [weight]" per line, with
// vertex ids assigned in order of first appearance. The weight column must
// be present on every line or on none.
func ParseNCOL(r io.Reader, directed bool) (*ReadResult, error) {
	ids := make(map[string]int)
	var names []string
	intern := func(s string) int {
		if id, ok := ids[s]; ok {
			return id
		}
		id := len(names)
		ids[s] = id
		names = append(names, s)
		return id
	}

	sc := bufio.NewScanner(r)
	var from, to []int
	var weights []float64
	weighted := false
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 && len(fields) != 3 {
			return nil, fmt.Errorf("ncol line %d: want 2 or 3 fields, got %d", line, len(fields))
		}
		hasWeight := len(fields) == 3
		if len(from) == 0 {
			weighted = hasWeight
		} else if hasWeight != weighted {
			return nil, fmt.Errorf("ncol line %d: inconsistent weight column", line)
		}
		from = append(from, intern(fields[0]))
		to = append(to, intern(fields[1]))
		if hasWeight {
			w, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("ncol line %d: %v", line, err)
			}
			weights = append(weights, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	g, err := NewFromEdges(len(names), from, to, directed)
	if err != nil {
		return nil, err
	}
	res := &ReadResult{Graph: g, Names: names}
	if weighted {
		res.Weights = weights
	}
	return res, nil
}

// WriteEdgeList writes g in the integer pair format, one edge per line in
// insertion order.
func WriteEdgeList(w io.Writer, g *Graph) error {
	if err := g.alive(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for i := range g.from {
		if _, err := fmt.Fprintf(bw, "%d %d\n", g.from[i], g.to[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Adjacency materializes the adjacency matrix of g as a fresh native matrix
// the caller must destroy. Entry (u,v) counts the edges from u to v; for
// undirected graphs the matrix is symmetric.
func Adjacency(g *Graph) (*Matrix, error) {
	if err := g.alive(); err != nil {
		return nil, err
	}
	m := NewMatrix(g.n, g.n)
	for i := range g.from {
		u, v := g.from[i], g.to[i]
		m.Set(u, v, m.At(u, v)+1)
		if !g.directed && u != v {
			m.Set(v, u, m.At(v, u)+1)
		}
	}
	return m, nil
}

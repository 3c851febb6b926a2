package bridge

import (
	"fmt"

	"github.com/tmc/graphbind"
	"github.com/tmc/graphbind/cgraph"
)

// Kind selects the host element type produced when converting native values
// back to a host sequence.
type Kind int

const (
	// Int produces host int elements.
	Int Kind = iota
	// Float produces host float64 elements.
	Float
)

// asNumber coerces one host element to the native float64 representation.
func asNumber(el any) (float64, bool) {
	switch v := el.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// ToVector converts a host numeric sequence to a native vector. The caller
// owns the returned vector and must destroy it.
func ToVector(seq []any) (*cgraph.Vector, error) {
	vec := cgraph.NewVector(len(seq))
	for i, el := range seq {
		x, ok := asNumber(el)
		if !ok {
			vec.Destroy()
			return nil, fmt.Errorf("%w: element %d is %T, want a number", graphbind.ErrBadType, i, el)
		}
		vec.Set(i, x)
	}
	return vec, nil
}

// ToIndexVector is ToVector restricted to non-negative integral values, for
// sequences naming vertices or edges.
func ToIndexVector(seq []any) (*cgraph.Vector, error) {
	vec, err := ToVector(seq)
	if err != nil {
		return nil, err
	}
	for i := 0; i < vec.Len(); i++ {
		x := vec.At(i)
		if x != float64(int(x)) {
			vec.Destroy()
			return nil, fmt.Errorf("%w: element %d (%v) is not an integral index", graphbind.ErrBadValue, i, x)
		}
		if x < 0 {
			vec.Destroy()
			return nil, fmt.Errorf("%w: negative index %v at element %d", graphbind.ErrBadValue, x, i)
		}
	}
	return vec, nil
}

// ToIndexPairs converts an even-length host sequence of vertex indices into
// parallel endpoint slices: elements 2k and 2k+1 form edge k.
func ToIndexPairs(seq []any) (from, to []int, err error) {
	if len(seq)%2 != 0 {
		return nil, nil, fmt.Errorf("%w: pair sequence has odd length %d", graphbind.ErrBadValue, len(seq))
	}
	vec, err := ToIndexVector(seq)
	if err != nil {
		return nil, nil, err
	}
	defer vec.Destroy()
	from = make([]int, 0, vec.Len()/2)
	to = make([]int, 0, vec.Len()/2)
	for i := 0; i < vec.Len(); i += 2 {
		from = append(from, int(vec.At(i)))
		to = append(to, int(vec.At(i+1)))
	}
	return from, to, nil
}

// FromVector converts a native vector into a host sequence of the given
// kind. The vector is not consumed.
func FromVector(v *cgraph.Vector, kind Kind) []any {
	out := make([]any, v.Len())
	for i := range out {
		if kind == Int {
			out[i] = int(v.At(i))
		} else {
			out[i] = v.At(i)
		}
	}
	return out
}

// ToMatrix converts a host sequence of equal-length numeric rows into a
// native matrix owned by the caller.
func ToMatrix(rows [][]any) (*cgraph.Matrix, error) {
	if len(rows) == 0 {
		return cgraph.NewMatrix(0, 0), nil
	}
	cols := len(rows[0])
	m := cgraph.NewMatrix(len(rows), cols)
	for r, row := range rows {
		if len(row) != cols {
			m.Destroy()
			return nil, fmt.Errorf("%w: row %d has %d elements, want %d", graphbind.ErrBadValue, r, len(row), cols)
		}
		for c, el := range row {
			x, ok := asNumber(el)
			if !ok {
				m.Destroy()
				return nil, fmt.Errorf("%w: element (%d,%d) is %T, want a number", graphbind.ErrBadType, r, c, el)
			}
			m.Set(r, c, x)
		}
	}
	return m, nil
}

// FromMatrix converts a native matrix into host rows of the given kind.
func FromMatrix(m *cgraph.Matrix, kind Kind) [][]any {
	out := make([][]any, m.Rows())
	for r := range out {
		row := make([]any, m.Cols())
		for c := range row {
			if kind == Int {
				row[c] = int(m.At(r, c))
			} else {
				row[c] = m.At(r, c)
			}
		}
		out[r] = row
	}
	return out
}

// ResourceProvider is anything that owns a native graph resource; the
// managed wrapper type satisfies it.
type ResourceProvider interface {
	NativeGraph() *cgraph.Graph
}

// ToGraphList converts a host collection of wrappers into the native
// resource array multi-graph operations take. Ownership stays with the
// wrappers.
func ToGraphList[T ResourceProvider](items []T) ([]*cgraph.Graph, error) {
	out := make([]*cgraph.Graph, len(items))
	for i, it := range items {
		g := it.NativeGraph()
		if g == nil {
			return nil, fmt.Errorf("%w: item %d has no native resource", graphbind.ErrBadValue, i)
		}
		out[i] = g
	}
	return out, nil
}

// FromGraphList wraps each resource of a multi-graph result through the
// supplied constructor, building the host collection. If a wrap fails, the
// wrappers built so far are handed to discard and the error surfaces;
// resources not yet consumed by a successful wrap stay owned by the caller,
// who can identify them by their live state.
func FromGraphList[T any](gs []*cgraph.Graph, wrap func(*cgraph.Graph) (T, error), discard func(T)) ([]T, error) {
	out := make([]T, 0, len(gs))
	for _, g := range gs {
		w, err := wrap(g)
		if err != nil {
			for _, built := range out {
				discard(built)
			}
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

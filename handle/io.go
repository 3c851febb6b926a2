package handle

import (
	"fmt"
	"os"

	"github.com/tmc/graphbind"
	"github.com/tmc/graphbind/cgraph"
)

// Path-based read and write entry points. File acquisition is scoped: every
// return path closes the file. Open and create failures carry the i/o
// sentinel; parse failures from the library are wrapped with the operation
// name.

// ReadEdgeList materializes a handle from the integer pair format at path.
func ReadEdgeList(path string, directed bool, opts ...Option) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", graphbind.ErrIO, path, err)
	}
	defer f.Close()
	g, err := cgraph.ParseEdgeList(f, directed)
	if err != nil {
		return nil, graphbind.AlgorithmError("read_edgelist", err)
	}
	h, err := Wrap(g, cgraph.DisciplineDestroy, opts...)
	if err != nil {
		_ = g.Destroy()
		return nil, err
	}
	return h, nil
}

// ReadNCOL materializes a handle from the named-edge format at path. The
// vertex names the format discovers are attached as the "name" vertex
// attribute; a weight column, when present, becomes the "weight" edge
// attribute.
func ReadNCOL(path string, directed bool, opts ...Option) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", graphbind.ErrIO, path, err)
	}
	defer f.Close()
	res, err := cgraph.ParseNCOL(f, directed)
	if err != nil {
		return nil, graphbind.AlgorithmError("read_ncol", err)
	}
	h, err := Wrap(res.Graph, cgraph.DisciplineDestroy, opts...)
	if err != nil {
		_ = res.Graph.Destroy()
		return nil, err
	}
	if len(res.Names) > 0 {
		names := make([]any, len(res.Names))
		for i, n := range res.Names {
			names[i] = n
		}
		if err := h.store.Set(VertexScope, "name", names); err != nil {
			h.Finalize()
			return nil, err
		}
	}
	if res.Weights != nil {
		weights := make([]any, len(res.Weights))
		for i, w := range res.Weights {
			weights[i] = w
		}
		if err := h.store.Set(EdgeScope, "weight", weights); err != nil {
			h.Finalize()
			return nil, err
		}
	}
	return h, nil
}

// WriteEdgeList writes the graph in the integer pair format, creating or
// truncating path.
func (h *Handle) WriteEdgeList(path string) error {
	if err := h.alive(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", graphbind.ErrIO, path, err)
	}
	defer f.Close()
	if err := cgraph.WriteEdgeList(f, h.g); err != nil {
		return fmt.Errorf("%w: write %s: %v", graphbind.ErrIO, path, err)
	}
	return nil
}

package handle

import (
	"fmt"

	"github.com/tmc/graphbind"
)

// Element views are plain proxies over the handle: built on first access,
// cached, and holding only a back-reference. They are excluded from cycle
// traversal and detached by Clear and Finalize.

// Vertices returns the lazily built vertex view.
func (h *Handle) Vertices() *VertexSeq {
	if h.vseq == nil {
		h.vseq = &VertexSeq{h: h}
	}
	return h.vseq
}

// Edges returns the lazily built edge view.
func (h *Handle) Edges() *EdgeSeq {
	if h.eseq == nil {
		h.eseq = &EdgeSeq{h: h}
	}
	return h.eseq
}

// VertexSeq is a lazy view over the vertices of one handle.
type VertexSeq struct {
	h *Handle
}

// Len returns the current vertex count.
func (vs *VertexSeq) Len() int { return vs.h.VertexCount() }

// Degree returns the degree of vertex v.
func (vs *VertexSeq) Degree(v int) (int, error) {
	deg, err := vs.h.Degree([]any{v})
	if err != nil {
		return 0, err
	}
	d, ok := deg[0].(int)
	if !ok {
		return 0, fmt.Errorf("%w: degree element is %T", graphbind.ErrBadType, deg[0])
	}
	return d, nil
}

// Attr returns the value of the vertex attribute key for vertex v.
func (vs *VertexSeq) Attr(key string, v int) (any, error) {
	if err := vs.h.alive(); err != nil {
		return nil, err
	}
	return vs.h.store.valueAt(VertexScope, key, v)
}

// SetAttr updates the vertex attribute key for vertex v in place.
func (vs *VertexSeq) SetAttr(key string, v int, value any) error {
	if err := vs.h.alive(); err != nil {
		return err
	}
	return vs.h.store.setValueAt(VertexScope, key, v, value)
}

// EdgeSeq is a lazy view over the edges of one handle.
type EdgeSeq struct {
	h *Handle
}

// Len returns the current edge count.
func (es *EdgeSeq) Len() int { return es.h.EdgeCount() }

// Endpoints returns the endpoints of edge i.
func (es *EdgeSeq) Endpoints(i int) (int, int, error) {
	if err := es.h.alive(); err != nil {
		return 0, 0, err
	}
	return es.h.g.Edge(i)
}

// Attr returns the value of the edge attribute key for edge i.
func (es *EdgeSeq) Attr(key string, i int) (any, error) {
	if err := es.h.alive(); err != nil {
		return nil, err
	}
	return es.h.store.valueAt(EdgeScope, key, i)
}

// SetAttr updates the edge attribute key for edge i in place.
func (es *EdgeSeq) SetAttr(key string, i int, value any) error {
	if err := es.h.alive(); err != nil {
		return err
	}
	return es.h.store.setValueAt(EdgeScope, key, i, value)
}

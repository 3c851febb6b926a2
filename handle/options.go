package handle

import (
	"log/slog"

	"github.com/tmc/graphbind/gc"
)

// Option configures handle construction.
type Option func(*options)

type options struct {
	directed   bool
	edges      [][2]int
	destructor any
	logger     *slog.Logger
	collector  *gc.Collector
}

func applyDefaults(o *options) {
	if o.logger == nil {
		o.logger = slog.Default()
	}
}

// WithDirected makes the constructed graph directed.
func WithDirected(directed bool) Option {
	return func(o *options) {
		o.directed = directed
	}
}

// WithEdges supplies the initial edge list for construction.
func WithEdges(edges [][2]int) Option {
	return func(o *options) {
		o.edges = edges
	}
}

// WithDestructor registers a destructor callback at construction time. The
// callback must be a func() or func() error; anything else fails the
// construction.
func WithDestructor(fn any) Option {
	return func(o *options) {
		o.destructor = fn
	}
}

// WithLogger routes the handle's diagnostics, such as swallowed destructor
// failures, to the given logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCollector registers the handle with a cycle collector for its live
// span; Finalize unregisters it.
func WithCollector(c *gc.Collector) Option {
	return func(o *options) {
		o.collector = c
	}
}

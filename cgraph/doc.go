// Package cgraph implements the native graph resource and the boundary to
// the algorithm library.
//
// A Graph owns manually released endpoint storage. Nothing in this package
// frees a graph implicitly: callers release resources with Destroy or
// ShallowFree, exactly once. Vector and Matrix follow the same model.
//
// Decompose is the one operation with shared ownership: its containers
// window into a single backing payload, and the payload is released when the
// last container drops its reference. See ComponentSet.
//
// The package is single-threaded by contract; only the optional allocation
// tracker takes a lock, so tests exercising it may run in parallel.
package cgraph

// Package handle implements the managed wrapper around a native graph
// resource.
//
// A Handle owns exactly one cgraph.Graph for its whole life, together with
// the free discipline recorded when the resource was taken over. Finalize is
// idempotent and never fails: the destructor callback runs once with any
// failure logged and swallowed, the live-handle registration is dropped, the
// resource is released under its discipline, and the cached element views
// are detached.
//
// Handles satisfy the gc.Object contract so an embedding host can collect
// reference cycles through them. Traversal is deliberately narrow; see
// Handle.Traverse.
//
// Everything here is single-threaded by contract, matching the native
// library underneath.
package handle

// Package graphbind embeds a manually managed native graph resource inside a
// managed host object and bridges attribute data, sequence values, and
// multi-resource algebraic results between the two memory models.
//
// The packages underneath split the work by concern:
//
//   - cgraph holds the native resource and the algorithm-library boundary:
//     explicitly released storage, mutation primitives, algebra operations,
//     decomposition, and the line-oriented readers and writers.
//   - bridge converts host sequences ([]any of numbers) to and from the
//     native vector, matrix, and resource-list types.
//   - handle is the managed wrapper: construction, finalization, the
//     attribute side-tables, lazy element views, and the ownership-transfer
//     protocol for operations that produce new native resources.
//   - gc defines the cycle-collection contract the host runtime applies to
//     wrapped resources.
//
// This root package carries only the error taxonomy shared by every layer.
//
// Example usage:
//
//	h, err := handle.New(4,
//		handle.WithEdges([][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer h.Finalize()
//
//	parts, err := h.Decompose(-1, -1)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, p := range parts {
//		defer p.Finalize()
//	}
package graphbind

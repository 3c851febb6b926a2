// Package gc defines the cycle-collection contract the host runtime applies
// to managed wrappers, plus a small mark-and-sweep collector embedding hosts
// can drive directly.
//
// The contract is the usual two-phase one: Traverse enumerates the managed
// children an object strongly references, and Clear drops those references
// so a reference cycle through the object can be reclaimed. Clearing never
// releases native resources; that stays with the object's own finalizer.
package gc

// Object is a managed object participating in cycle collection.
type Object interface {
	// Traverse calls visit for each managed child the object strongly
	// references.
	Traverse(visit func(child any))
	// Clear drops the object's reference-bearing fields.
	Clear()
}

// Collector tracks candidate objects and reclaims the ones no root can
// reach. It is single-threaded, like everything the objects wrap.
type Collector struct {
	tracked map[Object]bool
}

// New returns an empty collector.
func New() *Collector {
	return &Collector{tracked: make(map[Object]bool)}
}

// Register adds o to the tracked set.
func (c *Collector) Register(o Object) { c.tracked[o] = true }

// Unregister removes o from the tracked set. Safe to call for objects never
// registered.
func (c *Collector) Unregister(o Object) { delete(c.tracked, o) }

// Tracked reports the number of tracked objects.
func (c *Collector) Tracked() int { return len(c.tracked) }

// Collect clears every tracked object unreachable from the given roots and
// removes it from the tracked set, returning the number cleared. Roots may
// be arbitrary host values; only values implementing Object are traversed
// further, so a cycle hidden inside an opaque value keeps its members alive
// only if some visited Object reports them.
func (c *Collector) Collect(roots ...any) int {
	marked := make(map[Object]bool)
	var mark func(v any)
	mark = func(v any) {
		o, ok := v.(Object)
		if !ok || marked[o] {
			return
		}
		marked[o] = true
		o.Traverse(mark)
	}
	for _, r := range roots {
		mark(r)
	}

	cleared := 0
	for o := range c.tracked {
		if marked[o] {
			continue
		}
		delete(c.tracked, o)
		o.Clear()
		cleared++
	}
	return cleared
}

package cgraph

import "sync"

// Allocation diagnostics. Disabled by default; a debugging session or test
// turns the tracker on with EnableAllocTracking and pairs it with
// DisableAllocTracking. The tracker is the only locked state in the package.

type allocKind int

const (
	kindGraph allocKind = iota
	kindVector
	kindMatrix
	numAllocKinds
)

// AllocStats is a snapshot of the allocation tracker.
type AllocStats struct {
	LiveGraphs   int
	LiveVectors  int
	LiveMatrices int
	TotalAllocs  uint64
	TotalFrees   uint64
	// Faults counts releases of already-released storage.
	Faults int
}

var tracker struct {
	mu      sync.Mutex
	enabled bool
	live    [numAllocKinds]int
	allocs  uint64
	frees   uint64
	faults  int
}

// EnableAllocTracking turns the tracker on and zeroes its counters.
func EnableAllocTracking() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.enabled = true
	tracker.live = [numAllocKinds]int{}
	tracker.allocs, tracker.frees = 0, 0
	tracker.faults = 0
}

// DisableAllocTracking turns the tracker off.
func DisableAllocTracking() {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.enabled = false
}

// TrackingEnabled reports whether the tracker is on.
func TrackingEnabled() bool {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.enabled
}

// Stats returns a snapshot of the tracker counters.
func Stats() AllocStats {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return AllocStats{
		LiveGraphs:   tracker.live[kindGraph],
		LiveVectors:  tracker.live[kindVector],
		LiveMatrices: tracker.live[kindMatrix],
		TotalAllocs:  tracker.allocs,
		TotalFrees:   tracker.frees,
		Faults:       tracker.faults,
	}
}

func trackAlloc(k allocKind) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if !tracker.enabled {
		return
	}
	tracker.live[k]++
	tracker.allocs++
}

func trackFree(k allocKind) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if !tracker.enabled {
		return
	}
	tracker.live[k]--
	tracker.frees++
}

func trackFault(allocKind) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if !tracker.enabled {
		return
	}
	tracker.faults++
}

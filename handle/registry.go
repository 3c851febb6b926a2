package handle

import (
	cache "github.com/Code-Hex/go-generics-cache"
	"github.com/google/uuid"
)

// liveHandles tracks every live handle by id. It stands in for the host
// runtime's weak-reference registrations: entries are dropped during
// Finalize, never by the handle being collected.
var liveHandles = cache.New[uuid.UUID, *Handle]()

func register(h *Handle)   { liveHandles.Set(h.id, h) }
func unregister(h *Handle) { liveHandles.Delete(h.id) }

// Live reports the number of live handles in the process.
func Live() int { return len(liveHandles.Keys()) }

// Lookup finds a live handle by id.
func Lookup(id uuid.UUID) (*Handle, bool) { return liveHandles.Get(id) }

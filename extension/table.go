package extension

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/wippyai/ren-bridge/engine"
	"github.com/wippyai/ren-bridge/spec"
)

// tableEntry is one registered callable. Entries are immutable once
// inserted; lookup hands out full copies so no lock outlives the copy.
type tableEntry struct {
	handle engine.Handle
	fn     reflect.Value
	sig    Signature
	spec   spec.Block
}

// dispatchTable is the append-only registry for one signature. An id,
// once issued, resolves to the same entry for the life of the process;
// entries are never removed or mutated in place.
//
// The mutex guards both the entry slice and the registration sequence:
// registration is rare enough that one lock for both is acceptable, and
// holding it across the whole identify/capture/append sequence is what
// keeps two concurrent registrations from corrupting each other's
// capture state.
type dispatchTable struct {
	mu      sync.Mutex
	entries []tableEntry
	sig     Signature
}

// appendLocked inserts an entry and returns its stable id. The caller
// must hold t.mu; registration does, for its entire sequence.
func (t *dispatchTable) appendLocked(e tableEntry) int32 {
	id := int32(len(t.entries))
	t.entries = append(t.entries, e)
	return id
}

// lookup copies the entry for id out under the lock and releases it
// before returning, so the callable never runs with the table locked.
// An out-of-range id is unreachable under correct usage.
func (t *dispatchTable) lookup(id int32) tableEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || int(id) >= len(t.entries) {
		panic(fmt.Sprintf("extension: dispatch id %d out of range (table %q has %d entries)",
			id, t.sig.key, len(t.entries)))
	}
	return t.entries[id]
}

// Registry maps signature descriptors to their dispatch tables. Tables
// are created lazily on the first registration of a signature and are
// never dropped.
type Registry struct {
	mu     sync.Mutex
	tables map[string]*dispatchTable
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*dispatchTable)}
}

func (r *Registry) tableFor(sig Signature) *dispatchTable {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[sig.key]
	if !ok {
		t = &dispatchTable{sig: sig}
		r.tables[sig.key] = t
	}
	return t
}

// defaultRegistry backs the package-level Register entry point.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by Register.
func DefaultRegistry() *Registry { return defaultRegistry }

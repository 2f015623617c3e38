package extension

import (
	"sync/atomic"

	renbridge "github.com/wippyai/ren-bridge"
	"github.com/wippyai/ren-bridge/cell"
)

// bouncer is the generic per-signature dispatcher a trampoline forwards
// to once it knows its own id.
type bouncer func(id int32, stack *cell.Stack) renbridge.Status

// identity is a trampoline's one-time-initialized private state.
type identity struct {
	id     int32
	bounce bouncer
}

// captureTx is the scoped registration transaction: the pending id and
// dispatcher reference a trampoline reads during its identify call. A
// transaction exists only for the synchronous window between a
// registration starting and the identify call completing; it is handed
// to one shim by reference and detached again before the registration
// returns.
type captureTx struct {
	id     int32
	bounce bouncer
}

// Shim is a self-identifying trampoline. The runtime's convention hands
// a native function nothing but the raw stack, so each shim must learn
// its own dispatch id before it can forward calls. The first call, made
// by the registration code with a nil stack, captures the identity from
// the attached transaction and returns StatusShimInitialized; every
// later call forwards to the dispatcher under the captured id.
//
// The identity transitions from unset to set exactly once. A shim must
// not be reused across registrations.
type Shim struct {
	ident   atomic.Pointer[identity]
	pending atomic.Pointer[captureTx]
}

// NewShim creates an unidentified trampoline.
func NewShim() *Shim {
	return &Shim{}
}

// Native returns the shim's foreign-convention entry point.
func (s *Shim) Native() renbridge.NativeFunc {
	return func(stack *cell.Stack) renbridge.Status {
		// Forward phase: the common case after registration. The
		// identity pointer is published atomically, so every call that
		// starts after the identify call completed observes it.
		if ident := s.ident.Load(); ident != nil {
			return ident.bounce(ident.id, stack)
		}

		// Identify phase: only the registration sequence gets here,
		// with the transaction attached and the table lock held.
		tx := s.pending.Load()
		if tx == nil {
			panic("extension: shim reached forward phase before identity capture")
		}
		s.ident.Store(&identity{id: tx.id, bounce: tx.bounce})
		return renbridge.StatusShimInitialized
	}
}

// identified reports whether the shim has captured its identity.
func (s *Shim) identified() bool {
	return s.ident.Load() != nil
}

// beginCapture attaches the registration transaction. The shim must be
// fresh: never identified, no transaction pending.
func (s *Shim) beginCapture(tx *captureTx) bool {
	if s.ident.Load() != nil {
		return false
	}
	return s.pending.CompareAndSwap(nil, tx)
}

// endCapture detaches the transaction, restoring the empty state the
// next defensive check expects.
func (s *Shim) endCapture() {
	s.pending.Store(nil)
}

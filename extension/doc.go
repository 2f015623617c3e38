// Package extension binds typed Go callables to the runtime's native
// calling convention.
//
// The runtime identifies a native function by nothing but a bare entry
// point over a raw argument stack, so a registered callable needs a way
// to find itself again at call time. The pieces:
//
//	Signature   static identity introspected from the callable
//	Registry    one append-only dispatch table per distinct signature
//	Shim        self-identifying trampoline; captures its dispatch id
//	            during registration, then forwards every call
//	Function    the finalized, engine-bound native function
//
// Registration runs a two-phase protocol under the signature's table
// lock: write the pending identity into a scoped transaction, call the
// shim once in identify mode (nil stack, StatusShimInitialized reply),
// then append the table entry that makes the captured id valid. At call
// time the dispatcher copies the entry out under the lock, releases it,
// constructs the arguments left to right, applies the callable, and
// writes the lowered result into the stack's return slot.
//
// Invocation never serializes behind registration for the duration of
// a user callable: the table lock is held only while copying the entry
// out. Callables are assumed to be safe for concurrent invocation; a
// callable with mutable state must bring its own synchronization.
package extension

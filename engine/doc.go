// Package engine manages runtime sessions. An Engine owns the native
// functions finalized against it and provides the invocation surface
// that builds a call frame, enters a native function under the foreign
// convention, and surfaces the result or the propagated error.
package engine

// Package errors provides structured error types for the bridge.
//
// Every error carries a Phase (where in processing it occurred) and a
// Kind (what went wrong), plus optional type names, a value path, and a
// wrapped cause. Errors with matching Phase and Kind satisfy errors.Is
// against each other, so callers can match on category without string
// comparison.
package errors

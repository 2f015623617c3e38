package renbridge

import "github.com/wippyai/ren-bridge/cell"

// Status is the integer code a native function returns to the runtime.
type Status int

const (
	// StatusSuccess means the call completed and the return slot holds
	// the result.
	StatusSuccess Status = 0

	// StatusShimInitialized is returned only by a trampoline's
	// identify-phase call; it never reaches the runtime during normal
	// dispatch.
	StatusShimInitialized Status = 1

	// StatusError means the call failed before or during application and
	// the return slot was not written. The error itself travels on the
	// stack's error channel.
	StatusError Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusShimInitialized:
		return "shim_initialized"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// NativeFunc is the runtime's calling convention for native functions:
// a bare entry point over a raw argument stack, returning a status code.
// The identify-phase call passes a nil stack.
type NativeFunc func(stack *cell.Stack) Status

package extension

import (
	"reflect"

	renbridge "github.com/wippyai/ren-bridge"
	"github.com/wippyai/ren-bridge/cell"
	"github.com/wippyai/ren-bridge/errors"
	"github.com/wippyai/ren-bridge/value"
)

// bounce is the per-signature dispatcher: look the entry up, marshal
// the raw stack into typed arguments, apply the callable, and write the
// result back into the return slot.
//
// The entry is copied out before the callable runs so the table lock is
// held only for the lookup. Entries are immutable after insertion, so
// concurrent invocations, including of the same id, need no further
// synchronization from this layer.
func (t *dispatchTable) bounce(id int32, stack *cell.Stack) renbridge.Status {
	entry := t.lookup(id)

	if stack == nil {
		panic("extension: dispatcher invoked without a stack")
	}

	k := entry.sig.Arity()
	if stack.Arity() != k {
		stack.SetError(errors.ArityMismatch(errors.PhaseInvoke, k, stack.Arity()))
		return renbridge.StatusError
	}

	// Arguments are constructed in strict left-to-right positional
	// order. A construction failure aborts the call before the callable
	// runs and before any write to the return slot.
	args := make([]reflect.Value, k)
	for i := 0; i < k; i++ {
		v, err := value.Construct(entry.handle, entry.sig.args[i], *stack.Argument(i))
		if err != nil {
			stack.SetError(errors.Construction(i, err))
			return renbridge.StatusError
		}
		args[i] = v
	}

	results := entry.fn.Call(args)

	if entry.sig.hasErr {
		if errv := results[len(results)-1]; !errv.IsNil() {
			stack.SetError(errors.Application(errv.Interface().(error)))
			return renbridge.StatusError
		}
	}

	if entry.sig.ret != nil {
		c, err := value.Lower(entry.handle, results[0])
		if err != nil {
			stack.SetError(errors.Application(err))
			return renbridge.StatusError
		}
		stack.SetReturn(c)
	}

	return renbridge.StatusSuccess
}

package engine

import (
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	renbridge "github.com/wippyai/ren-bridge"
	"github.com/wippyai/ren-bridge/cell"
	"github.com/wippyai/ren-bridge/errors"
	"github.com/wippyai/ren-bridge/spec"
)

// Handle identifies an engine session. Table entries record the handle
// rather than the *Engine so an entry stays a plain copyable value.
type Handle int64

var nextHandle atomic.Int64

// Binding is a finalized native function as the engine sees it: the
// parameter spec used for validation and the foreign-convention entry
// point.
type Binding struct {
	Spec  spec.Block
	Entry renbridge.NativeFunc
}

// Engine is one runtime session. Native functions are registered
// against an engine and invoked through it. Safe for concurrent use.
type Engine struct {
	handle   Handle
	mu       sync.RWMutex
	bindings map[string]Binding
	closed   bool
}

// Open starts a new engine session.
func Open() *Engine {
	e := &Engine{
		handle:   Handle(nextHandle.Add(1)),
		bindings: make(map[string]Binding),
	}
	Logger().Debug("engine opened", zap.Int64("handle", int64(e.handle)))
	return e
}

// Handle returns the session's handle.
func (e *Engine) Handle() Handle { return e.handle }

// Close shuts the session down. Further binds and invokes fail.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errors.Closed("engine")
	}
	e.closed = true
	e.bindings = nil
	Logger().Debug("engine closed", zap.Int64("handle", int64(e.handle)))
	return nil
}

// Bind makes a finalized native function visible under a word so the
// runtime (and Invoke) can reach it. Rebinding a word replaces the old
// binding, matching the runtime's word semantics.
func (e *Engine) Bind(name string, b Binding) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseEngine, "binding name cannot be empty")
	}
	if b.Entry == nil {
		return errors.InvalidInput(errors.PhaseEngine, "binding has no native entry")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errors.Closed("engine")
	}
	e.bindings[name] = b
	Logger().Debug("native function bound",
		zap.Int64("handle", int64(e.handle)),
		zap.String("name", name),
		zap.String("spec", b.Spec.Mold()))
	return nil
}

// Lookup returns the binding for a word.
func (e *Engine) Lookup(name string) (Binding, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return Binding{}, errors.Closed("engine")
	}
	b, ok := e.bindings[name]
	if !ok {
		return Binding{}, errors.NotFound(errors.PhaseEngine, "native function", name)
	}
	return b, nil
}

// Names returns the bound words in sorted order.
func (e *Engine) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.bindings))
	for name := range e.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke calls a bound native function the way the runtime would:
// validate the arguments against the spec, build a call frame, enter
// through the native entry point, and read the return slot back.
func (e *Engine) Invoke(name string, args ...cell.Cell) (cell.Cell, error) {
	b, err := e.Lookup(name)
	if err != nil {
		return cell.Void(), err
	}

	if got, want := len(args), b.Spec.Arity(); got != want {
		return cell.Void(), errors.ArityMismatch(errors.PhaseEngine, want, got)
	}
	for i, arg := range args {
		if !b.Spec.Params[i].Accepts(arg.Kind) {
			return cell.Void(), errors.New(errors.PhaseEngine, errors.KindTypeMismatch).
				Path(name, b.Spec.Params[i].Name).
				CellType(arg.Kind.String()).
				Detail("argument %d not allowed by spec", i).
				Build()
		}
	}

	stack := cell.NewStack(args...)
	switch status := b.Entry(stack); status {
	case renbridge.StatusSuccess:
		return *stack.Return(), nil
	case renbridge.StatusError:
		err := stack.Err()
		if err == nil {
			err = errors.New(errors.PhaseInvoke, errors.KindInvalidData).
				Detail("native function reported failure without an error").
				Build()
		}
		return cell.Void(), err
	default:
		// A bound entry returning the initialized sentinel means a shim
		// escaped registration without capturing its identity.
		return cell.Void(), errors.New(errors.PhaseInvoke, errors.KindInvalidData).
			Detail("native function returned unexpected status %v", status).
			Build()
	}
}

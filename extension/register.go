package extension

import (
	"reflect"

	"go.uber.org/zap"

	renbridge "github.com/wippyai/ren-bridge"
	"github.com/wippyai/ren-bridge/engine"
	"github.com/wippyai/ren-bridge/errors"
	"github.com/wippyai/ren-bridge/spec"
	"github.com/wippyai/ren-bridge/value"
)

// Function is a registered native function: a typed Go callable made
// visible to the runtime under the foreign calling convention, bound to
// the engine it was registered against.
type Function struct {
	eng   *engine.Engine
	sig   Signature
	spec  spec.Block
	id    int32
	entry renbridge.NativeFunc
}

// Native returns the foreign-convention entry point.
func (f *Function) Native() renbridge.NativeFunc { return f.entry }

// Spec returns the parameter specification.
func (f *Function) Spec() spec.Block { return f.spec }

// Signature returns the introspected signature.
func (f *Function) Signature() Signature { return f.sig }

// ID returns the function's index in its signature's dispatch table.
func (f *Function) ID() int32 { return f.id }

// Engine returns the originating engine.
func (f *Function) Engine() *engine.Engine { return f.eng }

// Binding packages the function for engine.Bind.
func (f *Function) Binding() engine.Binding {
	return engine.Binding{Spec: f.spec, Entry: f.entry}
}

// Register introspects fn, registers it in the process-wide registry
// under its signature, drives the shim through its identify phase, and
// returns the finalized function bound to eng.
//
// The spec source documents the parameters to the runtime and must
// declare exactly one parameter per callable argument; declared types
// must admit at least one cell kind the Go argument can be built from.
func Register(eng *engine.Engine, specSource string, shim *Shim, fn any) (*Function, error) {
	return defaultRegistry.Register(eng, specSource, shim, fn)
}

// Register registers fn in this registry. See the package-level
// Register for the contract.
func (r *Registry) Register(eng *engine.Engine, specSource string, shim *Shim, fn any) (*Function, error) {
	if eng == nil {
		return nil, errors.InvalidInput(errors.PhaseRegister, "engine is nil")
	}
	if shim == nil {
		return nil, errors.InvalidInput(errors.PhaseRegister, "shim is nil")
	}

	sig, rv, err := introspect(fn)
	if err != nil {
		return nil, err
	}

	block, err := spec.Parse(specSource)
	if err != nil {
		return nil, err
	}
	if block.Arity() != sig.Arity() {
		return nil, errors.Registration("spec does not match callable",
			errors.ArityMismatch(errors.PhaseRegister, sig.Arity(), block.Arity()))
	}
	for i, p := range block.Params {
		if !admitsType(p, sig.args[i]) {
			return nil, errors.New(errors.PhaseRegister, errors.KindTypeMismatch).
				Path(p.Name).
				GoType(sig.args[i].String()).
				Detail("declared types admit no cell constructible as argument %d", i).
				Build()
		}
	}

	tbl := r.tableFor(sig)

	// The table lock guards the entire identify/capture/append
	// sequence; two registrations of the same signature serialize here.
	tbl.mu.Lock()
	defer tbl.mu.Unlock()

	tx := &captureTx{id: int32(len(tbl.entries)), bounce: tbl.bounce}
	if !shim.beginCapture(tx) {
		return nil, errors.Registration("shim already used by another registration", nil)
	}

	status := shim.Native()(nil)
	shim.endCapture()
	if status != renbridge.StatusShimInitialized {
		return nil, errors.Registration("identify call did not return the initialized sentinel", nil)
	}

	// The append is what makes the id the shim just captured valid.
	id := tbl.appendLocked(tableEntry{
		handle: eng.Handle(),
		fn:     rv,
		sig:    sig,
		spec:   block,
	})

	Logger().Debug("extension function registered",
		zap.String("signature", sig.key),
		zap.Int32("id", id),
		zap.Int64("engine", int64(eng.Handle())),
		zap.String("spec", block.Mold()))

	return &Function{
		eng:   eng,
		sig:   sig,
		spec:  block,
		id:    id,
		entry: shim.Native(),
	}, nil
}

// admitsType reports whether a declared parameter can supply at least
// one cell kind the Go argument type constructs from. Untyped
// parameters admit everything, as do converter-backed Go types.
func admitsType(p spec.Param, t reflect.Type) bool {
	if len(p.Kinds) == 0 {
		return true
	}
	kinds := value.AcceptedKinds(t)
	if kinds == nil {
		return true
	}
	for _, k := range kinds {
		if p.Accepts(k) {
			return true
		}
	}
	return false
}

package wasmhost

import (
	"context"
	"math"
	"reflect"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	renbridge "github.com/wippyai/ren-bridge"
	"github.com/wippyai/ren-bridge/cell"
	"github.com/wippyai/ren-bridge/errors"
	"github.com/wippyai/ren-bridge/extension"
)

// Builder assembles a wazero host module from registered extension
// functions. WASM modules see the same trampolines the Ren runtime
// does; this adapter only flattens cells to core wasm value types.
type Builder struct {
	runtime wazero.Runtime
	name    string
	funcs   []hostFunc
}

type hostFunc struct {
	name    string
	entry   renbridge.NativeFunc
	params  []api.ValueType
	argKind []cell.Kind
	results []api.ValueType
	retKind cell.Kind
}

// New creates a builder for a host module with the given name.
func New(rt wazero.Runtime, moduleName string) *Builder {
	return &Builder{runtime: rt, name: moduleName}
}

// Export adds a registered function under an export name. Only
// signatures whose argument and result types flatten to core wasm
// value types (integers, floats, logic) are exportable; text and block
// arguments need linear memory, which this adapter does not model.
func (b *Builder) Export(name string, f *extension.Function) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseHost, "export name cannot be empty")
	}

	sig := f.Signature()
	hf := hostFunc{name: name, entry: f.Native()}

	for i, at := range sig.ArgTypes() {
		vt, kind, ok := flatten(at)
		if !ok {
			return errors.New(errors.PhaseHost, errors.KindUnsupported).
				GoType(at.String()).
				Detail("argument %d does not flatten to a core wasm type", i).
				Build()
		}
		hf.params = append(hf.params, vt)
		hf.argKind = append(hf.argKind, kind)
	}

	if rt := sig.ReturnType(); rt != nil {
		vt, kind, ok := flatten(rt)
		if !ok {
			return errors.New(errors.PhaseHost, errors.KindUnsupported).
				GoType(rt.String()).
				Detail("result does not flatten to a core wasm type").
				Build()
		}
		hf.results = []api.ValueType{vt}
		hf.retKind = kind
	}

	b.funcs = append(b.funcs, hf)
	return nil
}

// Instantiate builds and instantiates the host module. The returned
// module's exported functions can be called directly or imported by
// guest modules.
func (b *Builder) Instantiate(ctx context.Context) (api.Module, error) {
	hb := b.runtime.NewHostModuleBuilder(b.name)
	for _, hf := range b.funcs {
		hb.NewFunctionBuilder().
			WithGoModuleFunction(goModuleFunc(hf), hf.params, hf.results).
			Export(hf.name)
	}
	return hb.Instantiate(ctx)
}

// goModuleFunc bridges wazero's flat uint64 stack to a cell stack and
// back. Invocation failures surface as traps.
func goModuleFunc(hf hostFunc) api.GoModuleFunction {
	return api.GoModuleFunc(func(ctx context.Context, mod api.Module, wasmStack []uint64) {
		args := make([]cell.Cell, len(hf.argKind))
		for i, kind := range hf.argKind {
			args[i] = liftSlot(kind, wasmStack[i])
		}

		stack := cell.NewStack(args...)
		switch status := hf.entry(stack); status {
		case renbridge.StatusSuccess:
		case renbridge.StatusError:
			panic(stack.Err())
		default:
			panic(errors.New(errors.PhaseHost, errors.KindInvalidData).
				Detail("native function returned unexpected status %v", status).
				Build())
		}

		if len(hf.results) > 0 {
			wasmStack[0] = lowerSlot(hf.retKind, *stack.Return())
		}
	})
}

func flatten(t reflect.Type) (api.ValueType, cell.Kind, bool) {
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return api.ValueTypeI64, cell.KindInteger, true
	case reflect.Float32, reflect.Float64:
		return api.ValueTypeF64, cell.KindDecimal, true
	case reflect.Bool:
		return api.ValueTypeI32, cell.KindLogic, true
	}
	return 0, cell.KindVoid, false
}

func liftSlot(kind cell.Kind, raw uint64) cell.Cell {
	switch kind {
	case cell.KindInteger:
		return cell.Integer(int64(raw))
	case cell.KindDecimal:
		return cell.Decimal(math.Float64frombits(raw))
	case cell.KindLogic:
		return cell.Logic(raw != 0)
	default:
		return cell.Void()
	}
}

func lowerSlot(kind cell.Kind, c cell.Cell) uint64 {
	switch kind {
	case cell.KindInteger:
		return uint64(c.I)
	case cell.KindDecimal:
		return math.Float64bits(c.F)
	case cell.KindLogic:
		if c.Bool() {
			return 1
		}
		return 0
	default:
		return 0
	}
}

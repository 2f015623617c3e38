package extension

import (
	"reflect"
	"strings"

	"github.com/wippyai/ren-bridge/errors"
	"github.com/wippyai/ren-bridge/value"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Signature is the static identity of a callable: its ordered argument
// types and return type. Each distinct signature owns its own dispatch
// table; the signature decides which table a registration lands in.
type Signature struct {
	args   []reflect.Type
	ret    reflect.Type // nil for void results
	hasErr bool         // callable also returns error
	key    string
}

// Arity returns the number of arguments.
func (s Signature) Arity() int { return len(s.args) }

// ArgTypes returns a copy of the ordered argument types.
func (s Signature) ArgTypes() []reflect.Type {
	out := make([]reflect.Type, len(s.args))
	copy(out, s.args)
	return out
}

// ReturnType returns the result type, or nil for void callables.
func (s Signature) ReturnType() reflect.Type { return s.ret }

// Key returns the descriptor string that identifies the signature in
// the registry, e.g. "int64,int64->int64".
func (s Signature) Key() string { return s.key }

func (s Signature) String() string { return s.key }

// introspect statically determines a callable's signature. Only plain,
// non-variadic functions with a single call signature qualify; the
// callable may return nothing, a value, an error, or a value and an
// error. There is no runtime fallback: anything else fails here and
// registration aborts.
func introspect(fn any) (Signature, reflect.Value, error) {
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() {
		return Signature{}, reflect.Value{}, errors.InvalidInput(errors.PhaseIntrospect, "callable is nil")
	}
	if rv.Kind() != reflect.Func {
		return Signature{}, reflect.Value{}, errors.New(errors.PhaseIntrospect, errors.KindInvalidInput).
			GoType(rv.Type().String()).
			Detail("callable must be a function").
			Build()
	}
	if rv.IsNil() {
		return Signature{}, reflect.Value{}, errors.InvalidInput(errors.PhaseIntrospect, "callable is nil")
	}

	rt := rv.Type()
	if rt.IsVariadic() {
		return Signature{}, reflect.Value{}, errors.Unsupported(errors.PhaseIntrospect,
			"variadic callables have no fixed arity")
	}

	sig := Signature{args: make([]reflect.Type, rt.NumIn())}
	for i := 0; i < rt.NumIn(); i++ {
		at := rt.In(i)
		if !value.Constructible(at) {
			return Signature{}, reflect.Value{}, errors.New(errors.PhaseIntrospect, errors.KindUnsupported).
				GoType(at.String()).
				Detail("argument %d cannot be constructed from a cell", i).
				Build()
		}
		sig.args[i] = at
	}

	switch rt.NumOut() {
	case 0:
		// void
	case 1:
		if rt.Out(0) == errorType {
			sig.hasErr = true
		} else {
			sig.ret = rt.Out(0)
		}
	case 2:
		if rt.Out(1) != errorType {
			return Signature{}, reflect.Value{}, errors.Unsupported(errors.PhaseIntrospect,
				"second result must be error")
		}
		sig.ret = rt.Out(0)
		sig.hasErr = true
	default:
		return Signature{}, reflect.Value{}, errors.Unsupported(errors.PhaseIntrospect,
			"callables return at most one value and one error")
	}

	if sig.ret != nil && !value.Lowerable(sig.ret) {
		return Signature{}, reflect.Value{}, errors.New(errors.PhaseIntrospect, errors.KindUnsupported).
			GoType(sig.ret.String()).
			Detail("result cannot be lowered to a cell").
			Build()
	}

	sig.key = signatureKey(sig)
	return sig, rv, nil
}

func signatureKey(s Signature) string {
	var b strings.Builder
	for i, at := range s.args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(at.String())
	}
	b.WriteString("->")
	if s.ret != nil {
		b.WriteString(s.ret.String())
	} else {
		b.WriteString("void")
	}
	if s.hasErr {
		b.WriteString("!")
	}
	return b.String()
}

package value

import (
	"math"
	"reflect"
	"sync"

	"github.com/wippyai/ren-bridge/cell"
	"github.com/wippyai/ren-bridge/engine"
	"github.com/wippyai/ren-bridge/errors"
)

// Converter adapts an author-defined Go type to and from raw cells.
// FromCell constructs the Go value for an incoming argument; ToCell
// lowers a result. Either side may be nil if the type only appears in
// one position.
type Converter struct {
	FromCell func(h engine.Handle, c cell.Cell) (any, error)
	ToCell   func(h engine.Handle, v any) (cell.Cell, error)
}

var (
	convMu     sync.RWMutex
	converters = make(map[reflect.Type]Converter)
)

// RegisterConverter installs a converter for a Go type. Registration
// replaces any previous converter for the same type and applies
// process-wide.
func RegisterConverter(t reflect.Type, conv Converter) {
	convMu.Lock()
	defer convMu.Unlock()
	converters[t] = conv
}

func converterFor(t reflect.Type) (Converter, bool) {
	convMu.RLock()
	defer convMu.RUnlock()
	conv, ok := converters[t]
	return conv, ok
}

var (
	cellType      = reflect.TypeOf(cell.Cell{})
	cellSliceType = reflect.TypeOf([]cell.Cell(nil))
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
)

// Constructible reports whether arguments of Go type t can be built
// from cells, either natively or through a registered converter.
func Constructible(t reflect.Type) bool {
	if _, ok := converterFor(t); ok {
		return true
	}
	switch t {
	case cellType, cellSliceType:
		return true
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64,
		reflect.String, reflect.Bool:
		return true
	}
	return false
}

// Lowerable reports whether results of Go type t can be lowered into a
// cell. The error type is handled by the invoker, not here.
func Lowerable(t reflect.Type) bool {
	if t == errorType {
		return false
	}
	return Constructible(t)
}

// AcceptedKinds returns the cell kinds a Go argument type can be
// constructed from, for cross-checking declared spec types at
// registration. nil means any kind (cells pass through unchecked and
// converter-backed types decide for themselves).
func AcceptedKinds(t reflect.Type) []cell.Kind {
	if _, ok := converterFor(t); ok {
		return nil
	}
	switch t {
	case cellType:
		return nil
	case cellSliceType:
		return []cell.Kind{cell.KindBlock}
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return []cell.Kind{cell.KindInteger}
	case reflect.Float32, reflect.Float64:
		return []cell.Kind{cell.KindDecimal, cell.KindInteger}
	case reflect.String:
		return []cell.Kind{cell.KindText, cell.KindWord}
	case reflect.Bool:
		return []cell.Kind{cell.KindLogic}
	}
	return nil
}

// Construct builds a Go value of type t from a raw argument cell, in
// the context of the engine session h. Type mismatches and overflow are
// construction errors; the caller decides how they propagate.
func Construct(h engine.Handle, t reflect.Type, c cell.Cell) (reflect.Value, error) {
	if conv, ok := converterFor(t); ok && conv.FromCell != nil {
		v, err := conv.FromCell(h, c)
		if err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || rv.Type() != t {
			return reflect.Value{}, errors.New(errors.PhaseConstruct, errors.KindInvalidData).
				GoType(t.String()).
				Detail("converter returned %T", v).
				Build()
		}
		return rv, nil
	}

	switch t {
	case cellType:
		return reflect.ValueOf(c), nil
	case cellSliceType:
		if c.Kind != cell.KindBlock {
			return reflect.Value{}, mismatch(t, c)
		}
		return reflect.ValueOf(c.L), nil
	}

	switch t.Kind() {
	case reflect.Int64:
		if c.Kind != cell.KindInteger {
			return reflect.Value{}, mismatch(t, c)
		}
		return reflect.ValueOf(c.I).Convert(t), nil

	case reflect.Int, reflect.Int32:
		if c.Kind != cell.KindInteger {
			return reflect.Value{}, mismatch(t, c)
		}
		if t.Kind() == reflect.Int32 && (c.I > math.MaxInt32 || c.I < math.MinInt32) {
			return reflect.Value{}, errors.Overflow(errors.PhaseConstruct, nil, c.I, t.String())
		}
		return reflect.ValueOf(c.I).Convert(t), nil

	case reflect.Float64, reflect.Float32:
		switch c.Kind {
		case cell.KindDecimal:
			return reflect.ValueOf(c.F).Convert(t), nil
		case cell.KindInteger:
			// integer! widens to decimal the way the runtime coerces
			return reflect.ValueOf(float64(c.I)).Convert(t), nil
		}
		return reflect.Value{}, mismatch(t, c)

	case reflect.String:
		if c.Kind != cell.KindText && c.Kind != cell.KindWord {
			return reflect.Value{}, mismatch(t, c)
		}
		return reflect.ValueOf(c.S).Convert(t), nil

	case reflect.Bool:
		if c.Kind != cell.KindLogic {
			return reflect.Value{}, mismatch(t, c)
		}
		return reflect.ValueOf(c.Bool()).Convert(t), nil
	}

	return reflect.Value{}, errors.Unsupported(errors.PhaseConstruct,
		"no construction for Go type "+t.String())
}

// Lower converts a callable's result into its raw cell representation
// for the stack's return slot.
func Lower(h engine.Handle, v reflect.Value) (cell.Cell, error) {
	t := v.Type()
	if conv, ok := converterFor(t); ok && conv.ToCell != nil {
		return conv.ToCell(h, v.Interface())
	}

	switch t {
	case cellType:
		return v.Interface().(cell.Cell), nil
	case cellSliceType:
		return cell.Block(v.Interface().([]cell.Cell)...), nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return cell.Integer(v.Int()), nil
	case reflect.Float32, reflect.Float64:
		return cell.Decimal(v.Float()), nil
	case reflect.String:
		return cell.Text(v.String()), nil
	case reflect.Bool:
		return cell.Logic(v.Bool()), nil
	}

	return cell.Void(), errors.Unsupported(errors.PhaseConstruct,
		"no lowering for Go type "+t.String())
}

func mismatch(t reflect.Type, c cell.Cell) *errors.Error {
	return errors.TypeMismatch(errors.PhaseConstruct, nil, t.String(), c.Kind.String())
}

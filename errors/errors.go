package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseIntrospect Phase = "introspect" // callable signature analysis
	PhaseParse      Phase = "parse"      // spec block parsing
	PhaseRegister   Phase = "register"   // dispatch table registration
	PhaseConstruct  Phase = "construct"  // cell to Go value construction
	PhaseInvoke     Phase = "invoke"     // native function invocation
	PhaseEngine     Phase = "engine"     // engine/session operations
	PhaseHost       Phase = "host"       // host module adaptation
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch  Kind = "type_mismatch"
	KindArityMismatch Kind = "arity_mismatch"
	KindUnsupported   Kind = "unsupported"
	KindInvalidData   Kind = "invalid_data"
	KindOverflow      Kind = "overflow"
	KindNotFound      Kind = "not_found"
	KindInvalidInput  Kind = "invalid_input"
	KindRegistration  Kind = "registration"
	KindConstruction  Kind = "construction"
	KindApplication   Kind = "application"
	KindClosed        Kind = "closed"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	CellType string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.CellType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.CellType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", cell type ")
			b.WriteString(e.CellType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("cell type ")
			b.WriteString(e.CellType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.CellType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// CellType sets the cell datatype name
func (b *Builder) CellType(t string) *Builder {
	b.err.CellType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, cellType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		CellType: cellType,
	}
}

// ArityMismatch creates an arity mismatch error
func ArityMismatch(phase Phase, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArityMismatch,
		Detail: fmt.Sprintf("expected %d argument(s), got %d", want, got),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		GoType: targetType,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a registration error
func Registration(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Detail: detail,
		Cause:  cause,
	}
}

// Construction creates an argument construction error
func Construction(position int, cause error) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindConstruction,
		Detail: fmt.Sprintf("construct argument %d", position),
		Cause:  cause,
	}
}

// Application creates a callable application error
func Application(cause error) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindApplication,
		Detail: "apply callable",
		Cause:  cause,
	}
}

// ParseFailed creates a spec parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Closed creates an error for operations on a closed engine
func Closed(what string) *Error {
	return &Error{
		Phase:  PhaseEngine,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

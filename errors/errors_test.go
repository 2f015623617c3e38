package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseConstruct,
				Kind:     KindTypeMismatch,
				Path:     []string{"add", "b"},
				GoType:   "int64",
				CellType: "text!",
				Detail:   "cannot convert",
			},
			contains: []string{"[construct]", "type_mismatch", "add.b", "int64", "text!", "cannot convert"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseInvoke,
				Kind:  KindArityMismatch,
			},
			contains: []string{"[invoke]", "arity_mismatch"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRegister,
				Kind:   KindRegistration,
				Detail: "identify call failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[register]", "registration", "identify call failed", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Construction(1, cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not find the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap did not return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := New(PhaseInvoke, KindApplication).Detail("one").Build()
	b := New(PhaseInvoke, KindApplication).Detail("two").Build()
	c := New(PhaseRegister, KindApplication).Build()

	if !errors.Is(a, b) {
		t.Error("same phase and kind should match")
	}
	if errors.Is(a, c) {
		t.Error("different phase should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseConstruct, KindOverflow).
		Path("fn", "arg0").
		GoType("int32").
		CellType("integer!").
		Value(int64(1) << 40).
		Cause(cause).
		Detail("value %d too large", int64(1)<<40).
		Build()

	if err.Phase != PhaseConstruct || err.Kind != KindOverflow {
		t.Fatalf("builder lost phase/kind: %v %v", err.Phase, err.Kind)
	}
	if err.Cause != cause {
		t.Error("builder lost cause")
	}
	if !strings.Contains(err.Detail, "too large") {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"arity", ArityMismatch(PhaseInvoke, 2, 3), KindArityMismatch},
		{"unsupported", Unsupported(PhaseIntrospect, "variadic"), KindUnsupported},
		{"not found", NotFound(PhaseEngine, "native function", "add"), KindNotFound},
		{"construction", Construction(0, errors.New("x")), KindConstruction},
		{"application", Application(errors.New("x")), KindApplication},
		{"closed", Closed("engine"), KindClosed},
		{"overflow", Overflow(PhaseConstruct, nil, 1, "int32"), KindOverflow},
		{"registration", Registration("mismatch", nil), KindRegistration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
			if tt.err.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
}

package cell

import (
	"errors"
	"testing"
)

func TestStackLayout(t *testing.T) {
	s := NewStack(Integer(2), Text("x"), Logic(true))

	if got := s.Arity(); got != 3 {
		t.Fatalf("Arity() = %d, want 3", got)
	}
	if got := s.Argument(0); got.Kind != KindInteger || got.I != 2 {
		t.Errorf("Argument(0) = %v", got)
	}
	if got := s.Argument(1); got.Kind != KindText || got.S != "x" {
		t.Errorf("Argument(1) = %v", got)
	}
	if got := s.Argument(2); got.Kind != KindLogic || !got.Bool() {
		t.Errorf("Argument(2) = %v", got)
	}
}

func TestStackReturnSlot(t *testing.T) {
	s := NewStack(Integer(1))

	if !s.Return().IsVoid() {
		t.Fatal("fresh stack return slot not void")
	}

	s.SetReturn(Integer(99))
	if got := s.Return(); got.Kind != KindInteger || got.I != 99 {
		t.Errorf("Return() = %v after SetReturn", got)
	}

	// Writing the return slot must not disturb argument slots.
	if got := s.Argument(0); got.I != 1 {
		t.Errorf("Argument(0) = %v after SetReturn", got)
	}
}

func TestStackEmptyFrame(t *testing.T) {
	s := NewStack()
	if got := s.Arity(); got != 0 {
		t.Errorf("Arity() = %d, want 0", got)
	}
	if !s.Return().IsVoid() {
		t.Error("empty frame return slot not void")
	}
}

func TestStackError(t *testing.T) {
	s := NewStack(Integer(1))
	if s.Err() != nil {
		t.Fatal("fresh stack has an error")
	}

	want := errors.New("conversion failed")
	s.SetError(want)
	if got := s.Err(); !errors.Is(got, want) {
		t.Errorf("Err() = %v, want %v", got, want)
	}
	if !s.Return().IsVoid() {
		t.Error("return slot written by SetError")
	}
}

package cell

// Stack is the raw call frame the runtime hands a native function.
// Slot 0 is the designated return slot; argument i lives at slot i+1.
// The layout is fixed by the runtime's convention and must not change.
//
// A Stack also carries the runtime's error-reporting channel: a native
// function that fails records the error with SetError and leaves the
// return slot unwritten.
type Stack struct {
	cells []Cell
	err   error
}

const returnSlot = 0

// NewStack builds a call frame for the given arguments. The return slot
// starts void.
func NewStack(args ...Cell) *Stack {
	cells := make([]Cell, 1+len(args))
	copy(cells[1:], args)
	return &Stack{cells: cells}
}

// Arity returns the number of argument slots.
func (s *Stack) Arity() int { return len(s.cells) - 1 }

// Argument returns a pointer to the cell at argument position i.
// Positions are 0-based and must be within the frame.
func (s *Stack) Argument(i int) *Cell {
	return &s.cells[i+1]
}

// Return returns a pointer to the designated return slot.
func (s *Stack) Return() *Cell {
	return &s.cells[returnSlot]
}

// SetReturn writes the result into the return slot.
func (s *Stack) SetReturn(c Cell) {
	s.cells[returnSlot] = c
}

// SetError records a call failure on the runtime's error channel.
func (s *Stack) SetError(err error) {
	s.err = err
}

// Err returns the recorded call failure, if any.
func (s *Stack) Err() error { return s.err }

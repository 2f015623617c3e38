// Package cell models the runtime's raw value cells and the positional
// argument stack of its native calling convention.
//
// A Cell is a small tagged union covering the datatypes this layer
// marshals (integer!, decimal!, text!, logic!, word!, block!, blank,
// void). A Stack is one native call frame: a fixed return slot at
// offset 0 followed by the argument cells in positional order, plus the
// error channel the runtime uses to surface call failures.
package cell

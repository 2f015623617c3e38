// Package value converts between raw runtime cells and typed Go
// values. Construct builds a Go argument of a statically known type
// from a stack cell using an engine context; Lower writes a Go result
// back into its cell representation. Author-defined Go types plug in
// through RegisterConverter.
package value

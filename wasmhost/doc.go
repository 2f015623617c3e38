// Package wasmhost exposes registered extension functions as a wazero
// host module. The trampoline and dispatch layer is convention-neutral:
// any runtime that calls a bare entry point over a positional argument
// stack can drive it, and WASM's core calling convention is exactly
// that shape.
package wasmhost

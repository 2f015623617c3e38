// Package renbridge defines the boundary contract between Go extension
// functions and a Ren-family runtime's native calling convention.
//
// A native function, to the runtime, is nothing but a bare entry point
// taking a pointer to a raw argument stack and returning an integer
// status code. This library lets authors register ordinary typed Go
// functions under that convention without describing their signature
// twice: the signature is introspected from the function itself.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	renbridge/           Root package with the calling-convention contract
//	├── cell/            Raw cell values and the positional argument stack
//	├── spec/            Parameter spec blocks ("a [integer!] b [integer!]")
//	├── value/           Typed construction cell->Go and lowering Go->cell
//	├── extension/       Signature introspection, dispatch tables,
//	│                    self-identifying trampolines, invocation
//	├── engine/          Engine sessions and the invocation surface
//	├── wasmhost/        Registered functions as a wazero host module
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Register a Go function and invoke it through an engine:
//
//	eng := engine.Open()
//	defer eng.Close()
//
//	fn, err := extension.Register(eng, "a [integer!] b [integer!]",
//	    extension.NewShim(),
//	    func(a, b int64) int64 { return a + b })
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	eng.Bind("add", fn.Binding())
//	result, err := eng.Invoke("add", cell.Integer(2), cell.Integer(3))
//	fmt.Println(result) // 5
//
// # Calling Convention
//
// Arguments are read from the stack by fixed positional offset and the
// return value is written to the stack's single return slot. Two status
// codes are meaningful to this layer: StatusShimInitialized, produced
// only by a trampoline's one-time identify call, and StatusSuccess,
// produced after a normal invocation has written its result. Errors
// travel on the stack's error channel and leave the return slot
// untouched.
package renbridge

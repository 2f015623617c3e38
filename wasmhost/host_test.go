package wasmhost_test

import (
	"context"
	"math"
	"testing"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/ren-bridge/engine"
	"github.com/wippyai/ren-bridge/extension"
	"github.com/wippyai/ren-bridge/wasmhost"
)

func TestHostModuleExportsAndCalls(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	eng := engine.Open()
	defer eng.Close()

	add, err := extension.Register(eng, "a [integer!] b [integer!]", extension.NewShim(),
		func(a, b int64) int64 { return a + b })
	if err != nil {
		t.Fatalf("register add: %v", err)
	}
	scale, err := extension.Register(eng, "x [decimal!] factor [decimal!]", extension.NewShim(),
		func(x, factor float64) float64 { return x * factor })
	if err != nil {
		t.Fatalf("register scale: %v", err)
	}

	b := wasmhost.New(rt, "ren")
	if err := b.Export("add", add); err != nil {
		t.Fatalf("export add: %v", err)
	}
	if err := b.Export("scale", scale); err != nil {
		t.Fatalf("export scale: %v", err)
	}

	mod, err := b.Instantiate(ctx)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	results, err := mod.ExportedFunction("add").Call(ctx, 2, 3)
	if err != nil {
		t.Fatalf("call add: %v", err)
	}
	if len(results) != 1 || int64(results[0]) != 5 {
		t.Errorf("add(2, 3) = %v, want 5", results)
	}

	results, err = mod.ExportedFunction("scale").Call(ctx,
		math.Float64bits(1.5), math.Float64bits(4))
	if err != nil {
		t.Fatalf("call scale: %v", err)
	}
	if got := math.Float64frombits(results[0]); got != 6 {
		t.Errorf("scale(1.5, 4) = %v, want 6", got)
	}
}

func TestHostModuleRejectsUnflattenableSignature(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	eng := engine.Open()
	defer eng.Close()

	upper, err := extension.Register(eng, "text [text!]", extension.NewShim(),
		func(s string) string { return s })
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	b := wasmhost.New(rt, "ren")
	if err := b.Export("uppercase", upper); err == nil {
		t.Error("string signature exported, want error")
	}
}

func TestHostModuleTrapsOnCallableError(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	eng := engine.Open()
	defer eng.Close()

	div, err := extension.Register(eng, "a [integer!] b [integer!]", extension.NewShim(),
		func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, context.DeadlineExceeded // any sentinel error
			}
			return a / b, nil
		})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	b := wasmhost.New(rt, "ren")
	if err := b.Export("div", div); err != nil {
		t.Fatalf("export: %v", err)
	}
	mod, err := b.Instantiate(ctx)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	if _, err := mod.ExportedFunction("div").Call(ctx, 1, 0); err == nil {
		t.Error("divide by zero did not trap")
	}

	results, err := mod.ExportedFunction("div").Call(ctx, 10, 2)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if int64(results[0]) != 5 {
		t.Errorf("div(10, 2) = %v, want 5", results)
	}
}

func TestHostModuleLogicFlattening(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	eng := engine.Open()
	defer eng.Close()

	xor, err := extension.Register(eng, "a [logic!] b [logic!]", extension.NewShim(),
		func(a, b bool) bool { return a != b })
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	b := wasmhost.New(rt, "ren")
	if err := b.Export("xor", xor); err != nil {
		t.Fatalf("export: %v", err)
	}
	mod, err := b.Instantiate(ctx)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	tests := []struct {
		a, b uint64
		want uint64
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 1},
		{1, 1, 0},
	}
	for _, tt := range tests {
		results, err := mod.ExportedFunction("xor").Call(ctx, tt.a, tt.b)
		if err != nil {
			t.Fatalf("call: %v", err)
		}
		if results[0] != tt.want {
			t.Errorf("xor(%d, %d) = %d, want %d", tt.a, tt.b, results[0], tt.want)
		}
	}
}

package extension

import (
	"sync"
	"testing"

	"github.com/wippyai/ren-bridge/engine"
)

func TestRegisterIssuesDistinctStableIDs(t *testing.T) {
	r := NewRegistry()
	eng := engine.Open()
	defer eng.Close()

	var fns []*Function
	for i := 0; i < 5; i++ {
		fn, err := r.Register(eng, "a [integer!] b [integer!]", NewShim(),
			func(a, b int64) int64 { return a + b })
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		fns = append(fns, fn)
	}

	seen := make(map[int32]bool)
	for i, fn := range fns {
		if seen[fn.ID()] {
			t.Errorf("duplicate id %d", fn.ID())
		}
		seen[fn.ID()] = true
		if fn.ID() != int32(i) {
			t.Errorf("registration %d got id %d", i, fn.ID())
		}
	}
}

func TestRegisterSpecValidation(t *testing.T) {
	r := NewRegistry()
	eng := engine.Open()
	defer eng.Close()

	tests := []struct {
		name string
		spec string
		fn   any
	}{
		{"arity too low", "a [integer!]", func(a, b int64) int64 { return 0 }},
		{"arity too high", "a [integer!] b [integer!] c [integer!]", func(a, b int64) int64 { return 0 }},
		{"declared type excludes argument", "a [text!]", func(a int64) int64 { return 0 }},
		{"bad spec syntax", "a [integer!", func(a int64) int64 { return 0 }},
		{"not a function", "a [integer!]", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Register(eng, tt.spec, NewShim(), tt.fn); err == nil {
				t.Error("Register succeeded, want error")
			}
		})
	}
}

func TestRegisterRejectsReusedShim(t *testing.T) {
	r := NewRegistry()
	eng := engine.Open()
	defer eng.Close()

	shim := NewShim()
	if _, err := r.Register(eng, "a [integer!]", shim, func(a int64) int64 { return a }); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := r.Register(eng, "a [integer!]", shim, func(a int64) int64 { return a }); err == nil {
		t.Fatal("second register with same shim succeeded")
	}
}

func TestRegisterNilInputs(t *testing.T) {
	r := NewRegistry()
	eng := engine.Open()
	defer eng.Close()

	if _, err := r.Register(nil, "a [integer!]", NewShim(), func(a int64) int64 { return a }); err == nil {
		t.Error("nil engine accepted")
	}
	if _, err := r.Register(eng, "a [integer!]", nil, func(a int64) int64 { return a }); err == nil {
		t.Error("nil shim accepted")
	}
}

func TestConcurrentRegistration(t *testing.T) {
	r := NewRegistry()
	eng := engine.Open()
	defer eng.Close()

	const k = 32
	var wg sync.WaitGroup
	ids := make([]int32, k)
	errs := make([]error, k)

	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fn, err := r.Register(eng, "a [integer!] b [integer!]", NewShim(),
				func(a, b int64) int64 { return a + b })
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = fn.ID()
		}(i)
	}
	wg.Wait()

	seen := make(map[int32]bool)
	for i := 0; i < k; i++ {
		if errs[i] != nil {
			t.Fatalf("registration %d: %v", i, errs[i])
		}
		if seen[ids[i]] {
			t.Errorf("duplicate id %d", ids[i])
		}
		seen[ids[i]] = true
	}
	if len(seen) != k {
		t.Errorf("issued %d distinct ids, want %d", len(seen), k)
	}
}

func TestLookupOutOfRangePanics(t *testing.T) {
	r := NewRegistry()
	sig, _, err := introspect(func(a int64) int64 { return a })
	if err != nil {
		t.Fatal(err)
	}
	tbl := r.tableFor(sig)

	defer func() {
		if recover() == nil {
			t.Error("out-of-range lookup did not panic")
		}
	}()
	tbl.lookup(0)
}

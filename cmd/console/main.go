package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/ren-bridge/cell"
	"github.com/wippyai/ren-bridge/engine"
	"github.com/wippyai/ren-bridge/extension"
	"github.com/wippyai/ren-bridge/spec"
)

func main() {
	var (
		funcName    = flag.String("call", "", "Function to call")
		argsStr     = flag.String("args", "", "Arguments, space-separated")
		list        = flag.Bool("list", false, "List registered functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	eng := engine.Open()
	defer eng.Close()

	if err := registerBuiltins(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive || (*funcName == "" && !*list && term.IsTerminal(int(os.Stdin.Fd()))) {
		if err := runInteractive(eng); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(eng, *funcName, *argsStr, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// registerBuiltins installs the demo extension functions the console
// exposes. Each is an ordinary typed Go function; the binding layer
// derives everything else.
func registerBuiltins(eng *engine.Engine) error {
	builtins := []struct {
		name string
		spec string
		fn   any
	}{
		{"add", "a [integer!] b [integer!]", func(a, b int64) int64 { return a + b }},
		{"multiply", "a [integer!] b [integer!]", func(a, b int64) int64 { return a * b }},
		{"divide", "a [decimal! integer!] b [decimal! integer!]", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, fmt.Errorf("divide by zero")
			}
			return a / b, nil
		}},
		{"uppercase", "text [text!]", strings.ToUpper},
		{"repeat", "text [text!] count [integer!]", func(s string, n int64) string {
			return strings.Repeat(s, int(n))
		}},
		{"any-true", "values [block!]", func(items []cell.Cell) bool {
			for _, c := range items {
				if c.Kind == cell.KindLogic && c.Bool() {
					return true
				}
			}
			return false
		}},
	}

	for _, b := range builtins {
		fn, err := extension.Register(eng, b.spec, extension.NewShim(), b.fn)
		if err != nil {
			return fmt.Errorf("register %s: %w", b.name, err)
		}
		if err := eng.Bind(b.name, fn.Binding()); err != nil {
			return fmt.Errorf("bind %s: %w", b.name, err)
		}
	}
	return nil
}

func run(eng *engine.Engine, funcName, argsStr string, listOnly bool) error {
	fmt.Printf("Engine: %d\n\nRegistered functions:\n", eng.Handle())
	for _, name := range eng.Names() {
		b, err := eng.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %s %s\n", name, formatSpec(b.Spec))
	}

	if listOnly || funcName == "" {
		return nil
	}

	b, err := eng.Lookup(funcName)
	if err != nil {
		return err
	}

	var args []cell.Cell
	for i, raw := range strings.Fields(argsStr) {
		if i >= b.Spec.Arity() {
			break
		}
		args = append(args, parseArg(raw, b.Spec.Params[i]))
	}

	result, err := eng.Invoke(funcName, args...)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s => %s\n", funcName, result.Mold())
	return nil
}

func formatSpec(b spec.Block) string {
	if b.Arity() == 0 {
		return "[]"
	}
	return "[" + b.Mold() + "]"
}

// parseArg reads a command-line token as the cell the parameter spec
// asks for, falling back to text.
func parseArg(raw string, p spec.Param) cell.Cell {
	if p.Accepts(cell.KindInteger) {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return cell.Integer(i)
		}
	}
	if p.Accepts(cell.KindDecimal) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return cell.Decimal(f)
		}
	}
	if p.Accepts(cell.KindLogic) {
		if raw == "true" || raw == "false" {
			return cell.Logic(raw == "true")
		}
	}
	if p.Accepts(cell.KindBlock) {
		items := strings.Fields(strings.Trim(raw, "[]"))
		block := make([]cell.Cell, 0, len(items))
		for _, item := range items {
			block = append(block, parseArg(item, spec.Param{}))
		}
		return cell.Block(block...)
	}
	if raw == "true" || raw == "false" {
		return cell.Logic(raw == "true")
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return cell.Integer(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return cell.Decimal(f)
	}
	return cell.Text(raw)
}

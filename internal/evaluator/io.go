package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"numlang/internal/array"
	"numlang/internal/registry"
	"numlang/internal/value"
)

func noopPrint(string) {}

// registerIO installs the print/println library functions of §6.4 into
// e's registry as closures over e itself, since a registry.Handler has
// no way to reach back into the Evaluator that's calling it otherwise —
// the same closure-over-outer-state shape internal/testing's
// RegisterAssertions uses for its own injected registry entries.
// e.Print/e.Println start as no-ops (the core never writes to stdout
// directly); cmd/numlang and internal/repl are the hosts that wire them
// to the actual stream.
func (e *Evaluator) registerIO() {
	hint := registry.TypeHint{ArgKinds: []string{"any"}, Variadic: true}
	e.Registry.Register("print", e.biPrint, hint)
	e.Registry.Register("println", e.biPrintln, hint)
}

func (e *Evaluator) biPrint(args []value.Value, nargout int) ([]value.Value, error) {
	e.Print(joinArgs(args))
	return nil, nil
}

func (e *Evaluator) biPrintln(args []value.Value, nargout int) ([]value.Value, error) {
	e.Println(joinArgs(args))
	return nil, nil
}

// joinArgs renders every argument with displayString and separates
// multiple arguments with a space, matching println('a', 'b')'s
// natural reading as two juxtaposed pieces of text.
func joinArgs(args []value.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = displayString(a)
	}
	return strings.Join(parts, " ")
}

// displayString renders v the way print/println should hand it to the
// host stream: a char array prints as its literal text, a numeric
// scalar prints as a bare number, and anything else falls back to a
// compact summary rather than failing the call.
func displayString(v value.Value) string {
	a, ok := v.(*array.Array)
	if !ok {
		return fmt.Sprint(v)
	}
	switch a.Kind {
	case array.KindChar:
		return string(a.Chars)
	case array.KindFloat:
		if a.IsScalar() {
			return strconv.FormatFloat(a.Floats[0], 'g', -1, 64)
		}
	case array.KindInt:
		if a.IsScalar() {
			return strconv.FormatInt(a.Ints[0], 10)
		}
	case array.KindBool:
		if a.IsScalar() {
			return strconv.FormatBool(a.Bools[0])
		}
	}
	return fmt.Sprintf("<%s %v>", a.Kind, a.Dims)
}

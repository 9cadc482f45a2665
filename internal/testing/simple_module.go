// internal/testing/simple_module.go
//
// Adapted from the teacher's internal/testing/simple_module.go, which
// exposed assert_* as vm.NativeFunction entries for Sentra scripts.
// Here the same assertion surface is exposed as registry.Handler
// entries operating on value.Value/*array.Array instead of vm.Value,
// so a *_test.m script gets the same assert/assert_equal/assert_true
// vocabulary the scripts under test already use for ordinary calls.
// Pass/fail counts are tallied into a Tally the harness reads back
// after running a script, rather than printed directly (the
// TestReporter of reporters.go owns all of this package's user-facing
// output).
package testing

import (
	"fmt"

	"github.com/kr/pretty"

	"numlang/internal/array"
	"numlang/internal/registry"
	"numlang/internal/value"
)

// Tally accumulates assertion outcomes recorded by one script run's
// registered assert_* builtins.
type Tally struct {
	Passed int
	Failed int
	Notes  []string
}

func (t *Tally) pass() {
	t.Passed++
}

func (t *Tally) fail(format string, args ...interface{}) {
	t.Failed++
	t.Notes = append(t.Notes, fmt.Sprintf(format, args...))
}

func boolOf(v value.Value) (bool, error) {
	a, ok := v.(*array.Array)
	if !ok {
		return false, fmt.Errorf("expected a boolean/numeric value, got %T", v)
	}
	return a.ShortCircuitBool()
}

func arrayEqual(a, b value.Value) (bool, error) {
	av, aok := a.(*array.Array)
	bv, bok := b.(*array.Array)
	if !aok || !bok {
		return false, fmt.Errorf("expected two arrays to compare")
	}
	eq, err := array.ElementWise(array.OpEq, av, bv)
	if err != nil {
		return false, err
	}
	return eq.ShortCircuitBool()
}

// RegisterAssertions adds the assert_* family to reg, tallying every
// call's outcome into t. Intended to be registered into a fresh
// registry.Registry built for one test-script run, not the process-wide
// standard library.
func RegisterAssertions(reg *registry.Registry, t *Tally) {
	reg.Register("assert", func(args []value.Value, nargout int) ([]value.Value, error) {
		ok, err := boolOf(args[0])
		if err != nil {
			return nil, err
		}
		msg := argMessage(args, 1)
		if !ok {
			t.fail("assert failed: %s", msg)
		} else {
			t.pass()
		}
		return []value.Value{args[0]}, nil
	}, registry.TypeHint{ArgKinds: []string{"any", "any"}})

	reg.Register("assert_equal", func(args []value.Value, nargout int) ([]value.Value, error) {
		eq, err := arrayEqual(args[0], args[1])
		if err != nil {
			return nil, err
		}
		msg := argMessage(args, 2)
		if !eq {
			t.fail("assert_equal failed: %s\n  expected: %s\n  actual:   %s", msg, pretty.Sprint(args[0]), pretty.Sprint(args[1]))
		} else {
			t.pass()
		}
		return []value.Value{args[0]}, nil
	}, registry.TypeHint{ArgKinds: []string{"any", "any", "any"}})

	reg.Register("assert_not_equal", func(args []value.Value, nargout int) ([]value.Value, error) {
		eq, err := arrayEqual(args[0], args[1])
		if err != nil {
			return nil, err
		}
		msg := argMessage(args, 2)
		if eq {
			t.fail("assert_not_equal failed: %s\n  values are equal: %s", msg, pretty.Sprint(args[0]))
		} else {
			t.pass()
		}
		return []value.Value{args[0]}, nil
	}, registry.TypeHint{ArgKinds: []string{"any", "any", "any"}})

	reg.Register("assert_true", func(args []value.Value, nargout int) ([]value.Value, error) {
		ok, err := boolOf(args[0])
		if err != nil {
			return nil, err
		}
		msg := argMessage(args, 1)
		if !ok {
			t.fail("assert_true failed: %s", msg)
		} else {
			t.pass()
		}
		return []value.Value{args[0]}, nil
	}, registry.TypeHint{ArgKinds: []string{"bool", "any"}})

	reg.Register("assert_false", func(args []value.Value, nargout int) ([]value.Value, error) {
		ok, err := boolOf(args[0])
		if err != nil {
			return nil, err
		}
		msg := argMessage(args, 1)
		if ok {
			t.fail("assert_false failed: %s", msg)
		} else {
			t.pass()
		}
		return []value.Value{args[0]}, nil
	}, registry.TypeHint{ArgKinds: []string{"bool", "any"}})
}

// argMessage reads an optional trailing message string argument, the
// way the teacher's assert_* functions always required one — here it is
// optional, defaulting to an empty message when the script omits it.
func argMessage(args []value.Value, i int) string {
	if i >= len(args) {
		return ""
	}
	if a, ok := args[i].(*array.Array); ok && a.Kind == array.KindChar {
		return string(a.Chars)
	}
	return fmt.Sprint(args[i])
}

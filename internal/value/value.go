// Package value defines the Value marker type shared across the
// interpreter core. Concrete runtime values (arrays, ranges, function
// values, tuples) are plain Go types assignable to Value — there is no
// wrapper or tag beyond what each concrete type's own methods provide,
// following the teacher's own `type Value interface{}` (internal/vm/value.go).
package value

// Value is the tagged union of spec §3.1: IntMatrix, FloatMatrix,
// ComplexMatrix, BoolArray, CharArray, CellArray (all *array.Array,
// distinguished by its Kind field), Range (rangeval.Range), FunctionHandle
// and Function (*funcval.FunctionHandle / *funcval.UserFunction), and
// Tuple (*Tuple, below). Value itself is not restricted to these —
// keeping it as interface{} avoids an import cycle between the packages
// that produce values (array, rangeval, funcval) and this leaf package.
type Value interface{}

// Tuple carries a multi-value return (§3.1, §4.2.2) as one Value. It is
// never a first-class user-level type, and the evaluator does not build
// one: calls pass their return values as a []Value slice instead.
type Tuple struct {
	Values []Value
}

// Len reports the number of values carried.
func (t *Tuple) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Values)
}

// First returns the first value, or nil if the tuple is empty. Used when
// a multi-value expression appears in a context expecting one value.
func (t *Tuple) First() Value {
	if t == nil || len(t.Values) == 0 {
		return nil
	}
	return t.Values[0]
}

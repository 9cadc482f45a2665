package array

import (
	"math"
	"math/cmplx"

	"numlang/internal/errtag"
)

// Join implements the promotion lattice of §4.1.8: Bool < Int < Float <
// Complex. Char only promotes to Float when forced to combine with a
// numeric kind (it is never itself a lattice rung); a Cell operand makes
// the result Cell, whatever the other kind.
func Join(a, b Kind) Kind {
	rank := func(k Kind) int {
		switch k {
		case KindBool:
			return 0
		case KindInt:
			return 1
		case KindChar:
			return 2
		case KindFloat:
			return 2
		case KindComplex:
			return 3
		default:
			return -1
		}
	}
	ra, rb := rank(a), rank(b)
	if a == KindCell || b == KindCell {
		return KindCell
	}
	if ra >= rb {
		if a == KindChar && b != KindChar {
			return KindFloat
		}
		return a
	}
	if b == KindChar {
		return KindFloat
	}
	return b
}

// BinOp names the element-wise operators of §4.1.9.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul  // element-wise
	OpDiv  // element-wise
	OpPow
	OpMod // element-wise, floor-mod (result takes the sign of the divisor)
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd // element-wise &
	OpOr  // element-wise |
)

func isComparison(op BinOp) bool {
	switch op {
	case OpLt, OpLe, OpGt, OpGe, OpEq, OpNe:
		return true
	}
	return false
}

func isLogical(op BinOp) bool {
	return op == OpAnd || op == OpOr
}

// broadcastDims implements scalar broadcasting: either operand may be a
// 1x1 scalar against any shape, otherwise both shapes must match
// exactly (§4.1.9 — no general NumPy-style broadcasting beyond scalars).
func broadcastDims(a, b *Array) ([]int, error) {
	if a.IsScalar() {
		return b.Dims, nil
	}
	if b.IsScalar() {
		return a.Dims, nil
	}
	if !sameDims(a.Dims, b.Dims) {
		return nil, errtag.New(errtag.KindShapeMismatch,
			"operands have incompatible shapes %v and %v", a.Dims, b.Dims)
	}
	return a.Dims, nil
}

// ElementWise implements the full dispatch of §4.1.9: the result kind is
// KindBool for comparisons and logical ops, otherwise Join(a.Kind,
// b.Kind), with complex operands forcing lexicographic (real, imag)
// ordering for comparisons.
func ElementWise(op BinOp, a, b *Array) (*Array, error) {
	if a.Kind == KindCell || b.Kind == KindCell {
		return nil, errtag.New(errtag.KindKindConversionRefused,
			"operator is not defined for cell arrays")
	}
	dims, err := broadcastDims(a, b)
	if err != nil {
		return nil, err
	}
	n := numelOf(dims)

	resultKind := Join(a.Kind, b.Kind)
	if isComparison(op) || isLogical(op) {
		resultKind = KindBool
	}
	if op == OpDiv || op == OpPow {
		if resultKind == KindBool || resultKind == KindInt {
			resultKind = KindFloat
		}
	}
	out := New(resultKind, dims...)

	aIdx := func(i int) int {
		if a.IsScalar() {
			return 0
		}
		return i
	}
	bIdx := func(i int) int {
		if b.IsScalar() {
			return 0
		}
		return i
	}

	useComplex := resultKind == KindComplex || a.Kind == KindComplex || b.Kind == KindComplex
	for i := 0; i < n; i++ {
		ai, bi := aIdx(i), bIdx(i)
		if isComparison(op) && useComplex {
			x, y := a.atComplex(ai), b.atComplex(bi)
			out.Bools[i] = complexCompare(op, x, y)
			continue
		}
		if isLogical(op) {
			x, y := a.atBool(ai), b.atBool(bi)
			out.Bools[i] = logicalCompare(op, x, y)
			continue
		}
		if isComparison(op) {
			x, y := a.atFloat(ai), b.atFloat(bi)
			out.Bools[i] = floatCompare(op, x, y)
			continue
		}
		switch resultKind {
		case KindComplex:
			x, y := a.atComplex(ai), b.atComplex(bi)
			out.Cplxs[i] = complexArith(op, x, y)
		case KindFloat:
			x, y := a.atFloat(ai), b.atFloat(bi)
			out.Floats[i] = floatArith(op, x, y)
		case KindInt:
			x, y := a.atInt(ai), b.atInt(bi)
			out.Ints[i] = intArith(op, x, y)
		case KindBool:
			x, y := a.atBool(ai), b.atBool(bi)
			out.Bools[i] = logicalCompare(op, x, y)
		}
	}
	return out, nil
}

func floatCompare(op BinOp, x, y float64) bool {
	switch op {
	case OpLt:
		return x < y
	case OpLe:
		return x <= y
	case OpGt:
		return x > y
	case OpGe:
		return x >= y
	case OpEq:
		return x == y
	case OpNe:
		return x != y
	}
	return false
}

func complexCompare(op BinOp, x, y complex128) bool {
	switch op {
	case OpLt:
		return lexLess(x, y)
	case OpLe:
		return lexLessEq(x, y)
	case OpGt:
		return lexLess(y, x)
	case OpGe:
		return lexLessEq(y, x)
	case OpEq:
		return x == y
	case OpNe:
		return x != y
	}
	return false
}

func logicalCompare(op BinOp, x, y bool) bool {
	switch op {
	case OpAnd:
		return x && y
	case OpOr:
		return x || y
	case OpEq:
		return x == y
	case OpNe:
		return x != y
	}
	return false
}

func floatArith(op BinOp, x, y float64) float64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	case OpPow:
		return math.Pow(x, y)
	case OpMod:
		return floatMod(x, y)
	}
	return 0
}

// floatMod implements MATLAB's mod(x,y): x - floor(x/y)*y, with
// mod(x,0) == x rather than NaN.
func floatMod(x, y float64) float64 {
	if y == 0 {
		return x
	}
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	return m
}

func complexArith(op BinOp, x, y complex128) complex128 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	case OpPow:
		return cmplx.Pow(x, y)
	}
	return 0
}

func intArith(op BinOp, x, y int64) int64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		if y == 0 {
			return 0
		}
		return x / y
	case OpMod:
		if y == 0 {
			return x
		}
		m := x % y
		if m != 0 && (m < 0) != (y < 0) {
			m += y
		}
		return m
	}
	return 0
}

// MatMul / MatRightDivide / MatLeftDivide live in linalg.go, which
// dispatches through gonum rather than these scalar kernels.

// ShortCircuitBool reduces an array to a single bool the way the
// evaluator's && and || require (§4.1.9), and for `if`/`while`
// conditions: true only when the array is non-empty and every element
// is nonzero once coerced to bool; an empty array gives false, and a
// cell array is an error.
func (a *Array) ShortCircuitBool() (bool, error) {
	if a.Kind == KindCell {
		return false, errtag.New(errtag.KindKindConversionRefused,
			"a cell array cannot be used as a boolean condition")
	}
	if a.IsEmpty() {
		return false, nil
	}
	for i := 0; i < a.Numel(); i++ {
		if !a.atBool(i) {
			return false, nil
		}
	}
	return true, nil
}

package array

import (
	"math"

	"numlang/internal/errtag"
)

// ReduceOp names the reductions of §4.1.11.
type ReduceOp int

const (
	ReduceSum ReduceOp = iota
	ReduceAny
	ReduceAll
	ReduceMax
	ReduceMin
)

// firstNonSingleton returns the 0-based index of the first dimension
// whose size is greater than one, or 0 if the array is entirely
// singleton — the default operating dimension per §4.1.11 when none is
// given explicitly.
func (a *Array) firstNonSingleton() int {
	for i, d := range a.Dims {
		if d > 1 {
			return i
		}
	}
	return 0
}

// Reduce applies op along dim (0-based; -1 selects firstNonSingleton).
// The result drops that dimension to size 1 (canonicalized per §3.2).
func (a *Array) Reduce(op ReduceOp, dim int) (*Array, error) {
	if a.Kind == KindCell {
		return nil, errtag.New(errtag.KindKindConversionRefused,
			"reductions are not defined over cell arrays")
	}
	if dim < 0 {
		dim = a.firstNonSingleton()
	}
	if dim >= len(a.Dims) {
		return a.Clone(), nil
	}

	outDims := append([]int(nil), a.Dims...)
	outDims[dim] = 1

	resultKind := a.Kind
	switch op {
	case ReduceSum:
		if resultKind == KindBool {
			resultKind = KindInt
		}
	case ReduceAny, ReduceAll:
		resultKind = KindBool
	}
	out := New(resultKind, outDims...)
	if op == ReduceAll {
		for i := range out.Bools {
			out.Bools[i] = true
		}
	}
	// §4.1.11: max/min over an empty dimension yields the identity
	// element (-Inf for max, +Inf for min) rather than the zero value a
	// freshly-allocated Array starts with, since the accumulation loop
	// below never runs for a zero-length dimension.
	if op == ReduceMax || op == ReduceMin {
		initIdentity(op, out)
	}
	seen := make([]bool, out.Numel())

	st := strides(a.Dims)
	outSt := strides(outDims)
	n := a.Numel()
	idx := make([]int, len(a.Dims))

	for lin := 0; lin < n; lin++ {
		rem := lin
		for j := len(a.Dims) - 1; j >= 0; j-- {
			idx[j] = rem / st[j] % a.Dims[j]
		}
		outLin := 0
		for j, v := range idx {
			if j == dim {
				continue
			}
			outLin += v * outSt[j]
		}
		accumulate(op, out, outLin, a, lin, seen)
		seen[outLin] = true
	}
	return out, nil
}

// initIdentity fills out with the reduction's identity element, so an
// empty operand (nothing for the accumulation loop to visit) still
// produces a mathematically meaningful result instead of a leftover
// zero value.
func initIdentity(op ReduceOp, out *Array) {
	switch out.Kind {
	case KindInt:
		id := int64(math.MaxInt64)
		if op == ReduceMax {
			id = math.MinInt64
		}
		for i := range out.Ints {
			out.Ints[i] = id
		}
	default:
		id := math.Inf(1)
		if op == ReduceMax {
			id = math.Inf(-1)
		}
		for i := range out.Floats {
			out.Floats[i] = id
		}
	}
}

func accumulate(op ReduceOp, out *Array, outIdx int, a *Array, srcIdx int, seen []bool) {
	switch op {
	case ReduceSum:
		switch out.Kind {
		case KindInt:
			out.Ints[outIdx] += a.atInt(srcIdx)
		case KindFloat:
			out.Floats[outIdx] += a.atFloat(srcIdx)
		case KindComplex:
			out.Cplxs[outIdx] += a.atComplex(srcIdx)
		}
	case ReduceAny:
		out.Bools[outIdx] = out.Bools[outIdx] || a.atBool(srcIdx)
	case ReduceAll:
		out.Bools[outIdx] = out.Bools[outIdx] && a.atBool(srcIdx)
	case ReduceMax, ReduceMin:
		cur := a.atFloat(srcIdx)
		switch out.Kind {
		case KindInt:
			v := a.atInt(srcIdx)
			if !seen[outIdx] || (op == ReduceMax && v > out.Ints[outIdx]) || (op == ReduceMin && v < out.Ints[outIdx]) {
				out.Ints[outIdx] = v
			}
		default:
			if !seen[outIdx] || (op == ReduceMax && cur > out.Floats[outIdx]) || (op == ReduceMin && cur < out.Floats[outIdx]) {
				out.Floats[outIdx] = cur
			}
		}
	}
}

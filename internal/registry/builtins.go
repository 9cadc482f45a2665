package registry

import (
	"math"

	"numlang/internal/array"
	"numlang/internal/errtag"
	"numlang/internal/value"
)

// StandardLibrary builds the registry of always-available functions
// (§4.4): array construction/inspection, elementwise math, reductions,
// and the loop-lowering collaborators (__loop_test). Grounded on the
// teacher's NDArray method set (internal/dataframe/array.go: Sum, Mean,
// Abs, Sqrt, Exp, Log, Zeros, Ones) generalized from a float64-only
// buffer to the six-kind Array.
func StandardLibrary() *Registry {
	r := New()

	r.Register("size", biSize, TypeHint{ArgKinds: []string{"any"}})
	r.Register("numel", biNumel, TypeHint{ArgKinds: []string{"any"}})
	r.Register("length", biLength, TypeHint{ArgKinds: []string{"any"}})
	r.Register("zeros", biZeros, TypeHint{Variadic: true})
	r.Register("ones", biOnes, TypeHint{Variadic: true})
	r.Register("sum", biSum, TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("any", biAny, TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("all", biAll, TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("max", biMax, TypeHint{ArgKinds: []string{"numeric", "numeric"}})
	r.Register("min", biMin, TypeHint{ArgKinds: []string{"numeric", "numeric"}})
	r.Register("mod", biMod, TypeHint{ArgKinds: []string{"numeric", "numeric"}})
	r.Register("abs", unaryMath(math.Abs), TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("sqrt", unaryMath(math.Sqrt), TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("exp", unaryMath(math.Exp), TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("log", unaryMath(math.Log), TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("sin", unaryMath(math.Sin), TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("cos", unaryMath(math.Cos), TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("floor", unaryMath(math.Floor), TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("ceil", unaryMath(math.Ceil), TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("transpose", biTranspose, TypeHint{ArgKinds: []string{"numeric"}})
	r.Register("isempty", biIsEmpty, TypeHint{ArgKinds: []string{"any"}})
	r.Register("__loop_test", biLoopTest, TypeHint{ArgKinds: []string{"numeric", "numeric", "numeric"}})

	return r
}

func asArray(v value.Value, name string) (*array.Array, error) {
	a, ok := v.(*array.Array)
	if !ok {
		return nil, errtag.New(errtag.KindTypeValidationFailed, "%s expects an array argument", name)
	}
	return a, nil
}

func biSize(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "size")
	if err != nil {
		return nil, err
	}
	out := array.New(array.KindFloat, 1, len(a.Dims))
	for i, d := range a.Dims {
		out.Floats[i] = float64(d)
	}
	return []value.Value{out}, nil
}

func biNumel(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "numel")
	if err != nil {
		return nil, err
	}
	return []value.Value{array.ScalarFloat(float64(a.Numel()))}, nil
}

func biLength(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "length")
	if err != nil {
		return nil, err
	}
	m := 0
	for _, d := range a.Dims {
		if d > m {
			m = d
		}
	}
	return []value.Value{array.ScalarFloat(float64(m))}, nil
}

func dimsFromArgs(args []value.Value) ([]int, error) {
	dims := make([]int, 0, len(args))
	for _, v := range args {
		a, err := asArray(v, "zeros/ones")
		if err != nil {
			return nil, err
		}
		if !a.IsScalar() {
			return nil, errtag.New(errtag.KindTypeValidationFailed, "dimension arguments must be scalars")
		}
		dims = append(dims, int(a.Floats[0]))
	}
	if len(dims) == 1 {
		dims = append(dims, dims[0])
	}
	return dims, nil
}

func biZeros(args []value.Value, nargout int) ([]value.Value, error) {
	dims, err := dimsFromArgs(args)
	if err != nil {
		return nil, err
	}
	return []value.Value{array.New(array.KindFloat, dims...)}, nil
}

func biOnes(args []value.Value, nargout int) ([]value.Value, error) {
	dims, err := dimsFromArgs(args)
	if err != nil {
		return nil, err
	}
	out := array.New(array.KindFloat, dims...)
	for i := range out.Floats {
		out.Floats[i] = 1
	}
	return []value.Value{out}, nil
}

func reduceDim(args []value.Value) int {
	if len(args) < 2 {
		return -1
	}
	if d, ok := args[1].(*array.Array); ok && d.IsScalar() {
		return int(d.Floats[0]) - 1
	}
	return -1
}

func biSum(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "sum")
	if err != nil {
		return nil, err
	}
	out, err := a.Reduce(array.ReduceSum, reduceDim(args))
	if err != nil {
		return nil, err
	}
	return []value.Value{out}, nil
}

func biAny(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "any")
	if err != nil {
		return nil, err
	}
	out, err := a.Reduce(array.ReduceAny, reduceDim(args))
	if err != nil {
		return nil, err
	}
	return []value.Value{out}, nil
}

func biAll(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "all")
	if err != nil {
		return nil, err
	}
	out, err := a.Reduce(array.ReduceAll, reduceDim(args))
	if err != nil {
		return nil, err
	}
	return []value.Value{out}, nil
}

func biMax(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "max")
	if err != nil {
		return nil, err
	}
	if len(args) >= 2 {
		if b, ok := args[1].(*array.Array); ok {
			out, err := array.ElementWise(maxOp{}.pick(), a, b)
			if err != nil {
				return nil, err
			}
			return []value.Value{out}, nil
		}
	}
	out, err := a.Reduce(array.ReduceMax, reduceDim(args))
	if err != nil {
		return nil, err
	}
	return []value.Value{out}, nil
}

func biMin(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "min")
	if err != nil {
		return nil, err
	}
	if len(args) >= 2 {
		if b, ok := args[1].(*array.Array); ok {
			out, err := array.ElementWise(maxOp{}.pickMin(), a, b)
			if err != nil {
				return nil, err
			}
			return []value.Value{out}, nil
		}
	}
	out, err := a.Reduce(array.ReduceMin, reduceDim(args))
	if err != nil {
		return nil, err
	}
	return []value.Value{out}, nil
}

// maxOp exists only to give the two comparison-pick helpers above a
// home without two free functions named similarly to array.BinOp consts.
type maxOp struct{}

func (maxOp) pick() array.BinOp    { return array.OpGt }
func (maxOp) pickMin() array.BinOp { return array.OpLt }

func biMod(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "mod")
	if err != nil {
		return nil, err
	}
	b, err := asArray(args[1], "mod")
	if err != nil {
		return nil, err
	}
	out, err := array.ElementWise(array.OpMod, a, b)
	if err != nil {
		return nil, err
	}
	return []value.Value{out}, nil
}

func unaryMath(f func(float64) float64) Handler {
	return func(args []value.Value, nargout int) ([]value.Value, error) {
		a, err := asArray(args[0], "math function")
		if err != nil {
			return nil, err
		}
		out := array.New(array.KindFloat, a.Dims...)
		for i := 0; i < a.Numel(); i++ {
			out.Floats[i] = f(elemFloat(a, i))
		}
		return []value.Value{out}, nil
	}
}

func elemFloat(a *array.Array, i int) float64 {
	e, _ := a.Slice([]array.Component{array.Scalar(int64(i + 1))})
	if e == nil {
		return 0
	}
	switch e.Kind {
	case array.KindFloat:
		return e.Floats[0]
	case array.KindInt:
		return float64(e.Ints[0])
	case array.KindBool:
		if e.Bools[0] {
			return 1
		}
		return 0
	case array.KindChar:
		return float64(e.Chars[0])
	}
	return 0
}

func biTranspose(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "transpose")
	if err != nil {
		return nil, err
	}
	return []value.Value{a.Transpose()}, nil
}

func biIsEmpty(args []value.Value, nargout int) ([]value.Value, error) {
	a, err := asArray(args[0], "isempty")
	if err != nil {
		return nil, err
	}
	return []value.Value{array.ScalarBool(a.IsEmpty())}, nil
}

// biLoopTest implements the direction-by-step-sign rule looplower
// defers to runtime (original_source/source/transform_loops.cpp chooses
// <= for a positive step and >= for a negative one): current <= end if
// step >= 0, else current >= end.
func biLoopTest(args []value.Value, nargout int) ([]value.Value, error) {
	cur, err := asArray(args[0], "__loop_test")
	if err != nil {
		return nil, err
	}
	end, err := asArray(args[1], "__loop_test")
	if err != nil {
		return nil, err
	}
	step, err := asArray(args[2], "__loop_test")
	if err != nil {
		return nil, err
	}
	c, e, s := elemFloat(cur, 0), elemFloat(end, 0), elemFloat(step, 0)
	if s >= 0 {
		return []value.Value{array.ScalarBool(c <= e)}, nil
	}
	return []value.Value{array.ScalarBool(c >= e)}, nil
}

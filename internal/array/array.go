// Package array implements the N-D array engine of spec §3.2 and §4.1 —
// the core of the interpreter (component C2). It is grounded on the
// teacher's NumPy-like NDArray (internal/dataframe/array.go), generalized
// from a single float64 buffer to the six element kinds spec.md requires,
// with the indexing algebra and promotion lattice McVM's MatrixObj
// family names (original_source/source/matrixobjs.h): validIndices,
// getMaxIndices, boundsCheckND.
package array

import (
	"numlang/internal/value"
)

// Kind tags an array's element type. The six kinds form the promotion
// lattice of §4.1.8: Bool < Int < Float < Complex, with Char promoting to
// Float only on demand and Cell incomparable to the numeric kinds.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindComplex
	KindChar
	KindCell
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	case KindChar:
		return "char"
	case KindCell:
		return "cell"
	default:
		return "unknown"
	}
}

// Array is the tagged variant backing every non-range, non-function
// Value, scalars included (as 1x1 arrays): IntMatrix, FloatMatrix, ComplexMatrix, BoolArray,
// CharArray and CellArray are all *Array distinguished by Kind, per the
// Design Notes' "tagged variant with per-variant kernels" guidance —
// picked over six separate Go types so the indexing algebra (§4.1.1–
// §4.1.7) is written once and shared, and only the element accessors
// below switch on Kind.
//
// Dims is the dimension vector (k >= 2, trailing 1s beyond position 2
// canonicalized away per §3.2). Exactly one of the typed slices is
// populated, selected by Kind; its length always equals Numel().
type Array struct {
	Kind Kind
	Dims []int

	Ints    []int64
	Floats  []float64
	Cplxs   []complex128
	Bools   []bool
	Chars   []rune
	Cells   []value.Value
}

// canonicalDims enforces the k >= 2 invariant and drops trailing
// dimensions of size 1 beyond position 2 (§3.2).
func canonicalDims(dims []int) []int {
	out := append([]int(nil), dims...)
	for len(out) > 2 && out[len(out)-1] == 1 {
		out = out[:len(out)-1]
	}
	for len(out) < 2 {
		out = append(out, 1)
	}
	return out
}

// numelOf returns the product of a dimension vector.
func numelOf(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// New constructs a zero-initialized array of the given kind and shape.
// Cell elements default to an empty [1,0] cell array (never nil), per
// the invariant in §3.2.
func New(kind Kind, dims ...int) *Array {
	d := canonicalDims(dims)
	n := numelOf(d)
	a := &Array{Kind: kind, Dims: d}
	switch kind {
	case KindBool:
		a.Bools = make([]bool, n)
	case KindInt:
		a.Ints = make([]int64, n)
	case KindFloat:
		a.Floats = make([]float64, n)
	case KindComplex:
		a.Cplxs = make([]complex128, n)
	case KindChar:
		a.Chars = make([]rune, n)
	case KindCell:
		a.Cells = make([]value.Value, n)
		for i := range a.Cells {
			a.Cells[i] = New(KindCell, 1, 0)
		}
	}
	return a
}

// Scalar builders, used pervasively by the evaluator for literal
// constants and broadcasting.
func ScalarInt(v int64) *Array       { a := New(KindInt, 1, 1); a.Ints[0] = v; return a }
func ScalarFloat(v float64) *Array   { a := New(KindFloat, 1, 1); a.Floats[0] = v; return a }
func ScalarBool(v bool) *Array       { a := New(KindBool, 1, 1); a.Bools[0] = v; return a }
func ScalarComplex(v complex128) *Array { a := New(KindComplex, 1, 1); a.Cplxs[0] = v; return a }
func ScalarChar(v rune) *Array       { a := New(KindChar, 1, 1); a.Chars[0] = v; return a }

// EmptyCell returns the canonical empty cell array used as the default
// cell element and as the result of `C = {}`.
func EmptyCell() *Array { return New(KindCell, 1, 0) }

// Numel returns the total element count, ∏ dims.
func (a *Array) Numel() int { return numelOf(a.Dims) }

// IsScalar reports whether the array holds exactly one element.
func (a *Array) IsScalar() bool { return a.Numel() == 1 }

// IsEmpty reports whether the array holds no elements.
func (a *Array) IsEmpty() bool { return a.Numel() == 0 }

// IsRowVector / IsColVector support the orientation rule of §4.1.5:
// 1-D results mirror the source's row/column provenance.
func (a *Array) IsRowVector() bool { return len(a.Dims) == 2 && a.Dims[0] == 1 }
func (a *Array) IsColVector() bool { return len(a.Dims) == 2 && a.Dims[1] == 1 }

// strides computes column-major strides for a's current dims: s[0]=1,
// s[j] = s[j-1]*dims[j-1] (§3.2).
func strides(dims []int) []int {
	s := make([]int, len(dims))
	s[0] = 1
	for j := 1; j < len(dims); j++ {
		s[j] = s[j-1] * dims[j-1]
	}
	return s
}

// Clone performs a deep copy, preserving value semantics across
// assignment (§3.1: "operations return new values").
func (a *Array) Clone() *Array {
	out := &Array{Kind: a.Kind, Dims: append([]int(nil), a.Dims...)}
	switch a.Kind {
	case KindBool:
		out.Bools = append([]bool(nil), a.Bools...)
	case KindInt:
		out.Ints = append([]int64(nil), a.Ints...)
	case KindFloat:
		out.Floats = append([]float64(nil), a.Floats...)
	case KindComplex:
		out.Cplxs = append([]complex128(nil), a.Cplxs...)
	case KindChar:
		out.Chars = append([]rune(nil), a.Chars...)
	case KindCell:
		out.Cells = make([]value.Value, len(a.Cells))
		for i, c := range a.Cells {
			if ca, ok := c.(*Array); ok {
				out.Cells[i] = ca.Clone()
			} else {
				out.Cells[i] = c
			}
		}
	}
	return out
}

// atFloat reads element i (linear, 0-based) as a float64, promoting
// bool/int/char on demand. Panics for Complex/Cell; callers must check
// Kind first via elementwise dispatch.
func (a *Array) atFloat(i int) float64 {
	switch a.Kind {
	case KindBool:
		if a.Bools[i] {
			return 1
		}
		return 0
	case KindInt:
		return float64(a.Ints[i])
	case KindFloat:
		return a.Floats[i]
	case KindChar:
		return float64(a.Chars[i])
	default:
		panic("array: atFloat on non-numeric kind " + a.Kind.String())
	}
}

func (a *Array) atComplex(i int) complex128 {
	if a.Kind == KindComplex {
		return a.Cplxs[i]
	}
	return complex(a.atFloat(i), 0)
}

func (a *Array) atInt(i int) int64 {
	switch a.Kind {
	case KindBool:
		if a.Bools[i] {
			return 1
		}
		return 0
	case KindInt:
		return a.Ints[i]
	case KindChar:
		return int64(a.Chars[i])
	default:
		panic("array: atInt on non-integral kind " + a.Kind.String())
	}
}

func (a *Array) atBool(i int) bool {
	switch a.Kind {
	case KindBool:
		return a.Bools[i]
	case KindInt:
		return a.Ints[i] != 0
	case KindFloat:
		return a.Floats[i] != 0
	case KindComplex:
		return a.Cplxs[i] != 0
	case KindChar:
		return a.Chars[i] != 0
	default:
		panic("array: atBool on cell kind")
	}
}

// Get returns element i (linear, 0-based) boxed as a value.Value of its
// own kind — used by CellArray indexing and by the evaluator when an
// index yields a scalar.
func (a *Array) Get(i int) value.Value {
	switch a.Kind {
	case KindBool:
		return a.Bools[i]
	case KindInt:
		return a.Ints[i]
	case KindFloat:
		return a.Floats[i]
	case KindComplex:
		return a.Cplxs[i]
	case KindChar:
		return a.Chars[i]
	case KindCell:
		return a.Cells[i]
	}
	panic("array: Get on unknown kind")
}

// setFromArrayElem writes element j of src into position i,
// converting into a's kind. Used by slice-write's scalar-replication
// path (§4.1.6).
func (a *Array) setFromArrayElem(i int, src *Array, j int) {
	switch a.Kind {
	case KindBool:
		a.Bools[i] = src.atBool(j)
	case KindInt:
		a.Ints[i] = src.atInt(j)
	case KindFloat:
		a.Floats[i] = src.atFloat(j)
	case KindComplex:
		a.Cplxs[i] = src.atComplex(j)
	case KindChar:
		a.Chars[i] = rune(src.atInt(j))
	case KindCell:
		if src.Kind == KindCell {
			a.Cells[i] = src.Cells[j]
		} else {
			a.Cells[i] = src.sliceElemAsArray(j)
		}
	}
}

// sliceElemAsArray boxes element j of a non-cell array as a 1x1 Array of
// the same kind, used when promoting a scalar into a cell.
func (a *Array) sliceElemAsArray(j int) *Array {
	switch a.Kind {
	case KindBool:
		return ScalarBool(a.Bools[j])
	case KindInt:
		return ScalarInt(a.Ints[j])
	case KindFloat:
		return ScalarFloat(a.Floats[j])
	case KindComplex:
		return ScalarComplex(a.Cplxs[j])
	case KindChar:
		return ScalarChar(a.Chars[j])
	default:
		return a.Cells[j].(*Array)
	}
}

// lexLess/lexLessEq implement the complex comparison rule of §4.1.9:
// comparisons on complex operands use lexicographic (real, imag) order.
func lexLess(a, b complex128) bool {
	if real(a) != real(b) {
		return real(a) < real(b)
	}
	return imag(a) < imag(b)
}

func lexLessEq(a, b complex128) bool { return a == b || lexLess(a, b) }

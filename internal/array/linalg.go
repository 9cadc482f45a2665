package array

import (
	"numlang/internal/errtag"
	"numlang/internal/rangeval"

	"gonum.org/v1/gonum/mat"
)

// FromRange expands a rangeval.Range into a 1xN row vector (§3.3: Range
// expands only when used as an r-value, never while still serving as an
// index component). It lives here, not as a Range method, so that
// rangeval need not import array.
func FromRange(r rangeval.Range) *Array {
	if r.IsFull {
		panic("array: FromRange called on the full-range sentinel")
	}
	n := r.ElemCount()
	out := New(KindFloat, 1, n)
	for i := 0; i < n; i++ {
		out.Floats[i] = r.At(i)
	}
	return out
}

// toGonumDense converts a 2-D numeric array to a *mat.Dense, promoting
// through float64 (complex matrix algebra is out of scope for the
// gonum backend and rejected up front).
func (a *Array) toGonumDense() (*mat.Dense, error) {
	if len(a.Dims) != 2 {
		return nil, errtag.New(errtag.KindShapeMismatch, "matrix operations require a 2-D operand, got %v", a.Dims)
	}
	if a.Kind == KindComplex || a.Kind == KindCell {
		return nil, errtag.New(errtag.KindKindConversionRefused,
			"matrix multiply/solve is not defined for %s arrays", a.Kind)
	}
	rows, cols := a.Dims[0], a.Dims[1]
	data := make([]float64, rows*cols)
	// a.Floats/Ints/etc. are column-major; gonum's Dense is row-major, so
	// transpose the index mapping on the way in.
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			data[r*cols+c] = a.atFloat(c*rows + r)
		}
	}
	return mat.NewDense(rows, cols, data), nil
}

func fromGonumDense(m *mat.Dense) *Array {
	rows, cols := m.Dims()
	out := New(KindFloat, rows, cols)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			out.Floats[c*rows+r] = m.At(r, c)
		}
	}
	return out
}

// MatMul implements the matrix-product operator of §4.1.10: standard
// (m,k) x (k,n) -> (m,n) product via gonum, with scalar operands
// shortcutting to element-wise multiply.
func MatMul(a, b *Array) (*Array, error) {
	if a.IsScalar() || b.IsScalar() {
		return ElementWise(OpMul, a, b)
	}
	ad, err := a.toGonumDense()
	if err != nil {
		return nil, err
	}
	bd, err := b.toGonumDense()
	if err != nil {
		return nil, err
	}
	_, ac := ad.Dims()
	br, _ := bd.Dims()
	if ac != br {
		return nil, errtag.New(errtag.KindShapeMismatch,
			"inner matrix dimensions must agree: %v vs %v", a.Dims, b.Dims)
	}
	var out mat.Dense
	out.Mul(ad, bd)
	return fromGonumDense(&out), nil
}

// MatLeftDivide implements A \ B (solve A*X = B), per §4.1.10: square A
// goes through gonum's LU with partial pivoting, rectangular A through
// gonum's QR (rank-revealing via column pivoting is not exposed by
// gonum's mat.QR, so the square path — where the spec actually mandates
// pivoting — is the one that gets it; the rectangular path still gets a
// least-squares-correct QR solve rather than panicking on a non-square
// LU factorization). Both paths raise KindSingularMatrix when the
// system has no unique solution (Design Notes §9: a nonzero LU
// pivot-singularity signal, not a silent NaN, becomes SingularMatrix).
func MatLeftDivide(a, b *Array) (*Array, error) {
	ad, err := a.toGonumDense()
	if err != nil {
		return nil, err
	}
	bd, err := b.toGonumDense()
	if err != nil {
		return nil, err
	}

	rows, cols := ad.Dims()
	var x mat.Dense
	if rows == cols {
		var lu mat.LU
		lu.Factorize(ad)
		if err := lu.SolveTo(&x, false, bd); err != nil {
			return nil, errtag.Wrap(errtag.KindSingularMatrix, err)
		}
	} else {
		var qr mat.QR
		qr.Factorize(ad)
		if err := qr.SolveTo(&x, false, bd); err != nil {
			return nil, errtag.Wrap(errtag.KindSingularMatrix, err)
		}
	}
	return fromGonumDense(&x), nil
}

// MatRightDivide implements A / B as (B' \ A')' per the standard
// identity, reusing MatLeftDivide and Transpose.
func MatRightDivide(a, b *Array) (*Array, error) {
	at := a.Transpose()
	bt := b.Transpose()
	xt, err := MatLeftDivide(bt, at)
	if err != nil {
		return nil, err
	}
	return xt.Transpose(), nil
}

// Transpose implements the 2-D transpose operator (§4.1.10).
func (a *Array) Transpose() *Array {
	if len(a.Dims) != 2 {
		panic("array: Transpose requires a 2-D operand")
	}
	rows, cols := a.Dims[0], a.Dims[1]
	out := New(a.Kind, cols, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			src := c*rows + r
			dst := r*cols + c
			out.setFromArrayElem(dst, a, src)
		}
	}
	return out
}

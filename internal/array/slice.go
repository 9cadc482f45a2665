package array

import (
	"numlang/internal/errtag"
)

// componentElems expands a single component into the concrete 1-based
// positions it selects along its dimension (or, for the last component
// of a short index list, along the flattened tail). dimSize is the size
// of the real dimension (or the flattened tail size) the component
// ranges over.
func componentElems(c Component, dimSize int) []int64 {
	switch c.Kind {
	case CompNumeric:
		return c.Numeric
	case CompMask:
		out := make([]int64, 0, len(c.Mask))
		for i, b := range c.Mask {
			if b {
				out = append(out, int64(i+1))
			}
		}
		return out
	case CompRange:
		if c.Range.IsFull {
			out := make([]int64, dimSize)
			for i := range out {
				out[i] = int64(i + 1)
			}
			return out
		}
		n := c.Range.ElemCount()
		out := make([]int64, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, int64(c.Range.At(i)))
		}
		return out
	}
	return nil
}

// resultShape mirrors the orientation rule of §4.1.5: a single-component
// index into a vector preserves the source's row/column orientation,
// otherwise the result shape is one size per component (with trailing
// singleton dims canonicalized away), in index order.
func resultShape(a *Array, comps []Component, perCompElems [][]int64) []int {
	if len(comps) == 1 {
		n := len(perCompElems[0])
		if comps[0].Kind == CompNumeric || comps[0].Kind == CompRange || comps[0].Kind == CompMask {
			if a.IsColVector() && !a.IsRowVector() {
				return canonicalDims([]int{n, 1})
			}
			return canonicalDims([]int{1, n})
		}
	}
	dims := make([]int, len(perCompElems))
	for i, e := range perCompElems {
		dims[i] = len(e)
	}
	return canonicalDims(dims)
}

// linearOffsets converts an index list into 0-based linear offsets into
// a's column-major buffer, resolving the tail-folding rule when fewer
// components than dimensions are given.
func linearOffsets(dims []int, comps []Component) ([]int64, error) {
	if err := BoundsCheckND(dims, comps); err != nil {
		return nil, err
	}
	st := strides(dims)

	if len(comps) >= len(dims) {
		perComp := make([][]int64, len(comps))
		for i, c := range comps {
			bound := 1
			if i < len(dims) {
				bound = dims[i]
			}
			perComp[i] = componentElems(c, bound)
		}
		total := 1
		for _, e := range perComp {
			total *= len(e)
		}
		offsets := make([]int64, 0, total)
		var rec func(compIdx int, acc int64)
		rec = func(compIdx int, acc int64) {
			if compIdx == len(perComp) {
				offsets = append(offsets, acc)
				return
			}
			strideHere := int64(0)
			if compIdx < len(st) {
				strideHere = int64(st[compIdx])
			}
			for _, v := range perComp[compIdx] {
				rec(compIdx+1, acc+(v-1)*strideHere)
			}
		}
		rec(0, 0)
		return offsets, nil
	}

	// Short index list: fold the last component against the flattened
	// tail of dims[len(comps)-1:].
	tail := dims[len(comps)-1:]
	tailSize := numelOf(tail)
	perComp := make([][]int64, len(comps))
	for i := 0; i < len(comps)-1; i++ {
		perComp[i] = componentElems(comps[i], dims[i])
	}
	perComp[len(comps)-1] = componentElems(comps[len(comps)-1], tailSize)

	total := 1
	for _, e := range perComp {
		total *= len(e)
	}
	offsets := make([]int64, 0, total)
	var rec func(compIdx int, acc int64)
	rec = func(compIdx int, acc int64) {
		if compIdx == len(perComp)-1 {
			for _, L := range perComp[compIdx] {
				folded := foldLinear(L, tail)
				off := acc
				for j, idx := range folded {
					off += (idx - 1) * int64(st[len(comps)-1+j])
				}
				offsets = append(offsets, off)
			}
			return
		}
		strideHere := int64(st[compIdx])
		for _, v := range perComp[compIdx] {
			rec(compIdx+1, acc+(v-1)*strideHere)
		}
	}
	rec(0, 0)
	return offsets, nil
}

// LinearOffsets is the exported form of linearOffsets, used by callers
// outside this package (the evaluator's cell-index assignment) that
// need raw 0-based buffer positions rather than a sliced sub-array.
func LinearOffsets(dims []int, comps []Component) ([]int64, error) {
	return linearOffsets(dims, comps)
}

// Slice implements read-indexing (§4.1.5): A(i1, ..., ik) or the
// short-list linear-tail form.
func (a *Array) Slice(comps []Component) (*Array, error) {
	if !ValidIndices(comps) {
		return nil, errtag.New(errtag.KindInvalidIndex, "index values must be positive")
	}
	offsets, err := linearOffsets(a.Dims, comps)
	if err != nil {
		return nil, err
	}

	perCompElems := make([][]int64, len(comps))
	dims := a.Dims
	if len(comps) < len(dims) {
		tailSize := numelOf(dims[len(comps)-1:])
		for i := 0; i < len(comps)-1; i++ {
			perCompElems[i] = componentElems(comps[i], dims[i])
		}
		perCompElems[len(comps)-1] = componentElems(comps[len(comps)-1], tailSize)
	} else {
		for i, c := range comps {
			bound := 1
			if i < len(dims) {
				bound = dims[i]
			}
			perCompElems[i] = componentElems(c, bound)
		}
	}

	out := New(a.Kind, resultShape(a, comps, perCompElems)...)
	for outIdx, off := range offsets {
		out.setFromArrayElem(outIdx, a, int(off))
	}
	return out, nil
}

// SetSlice implements write-indexing (§4.1.6): A(i1, ..., ik) = rhs. If
// rhs is a scalar it is replicated across every selected position; a
// non-scalar rhs must supply exactly len(offsets) elements in linear
// order. Writes whose indices exceed the current bounds first expand
// the array (zero-filled) per §4.1.4, changing a's Kind only if rhs's
// Kind is strictly higher in the promotion lattice.
func (a *Array) SetSlice(comps []Component, rhs *Array) error {
	if !ValidIndices(comps) {
		return errtag.New(errtag.KindInvalidIndex, "index values must be positive")
	}

	newDims := ExpandedDims(a.Dims, comps)
	newKind := Join(a.Kind, rhs.Kind)
	if !sameDims(newDims, a.Dims) || newKind != a.Kind {
		a.growTo(newDims, newKind)
	}

	offsets, err := linearOffsets(a.Dims, comps)
	if err != nil {
		return err
	}
	if !rhs.IsScalar() && rhs.Numel() != len(offsets) {
		return errtag.New(errtag.KindShapeMismatch,
			"assignment has %d elements but %d positions were indexed", rhs.Numel(), len(offsets))
	}

	for i, off := range offsets {
		src := 0
		if !rhs.IsScalar() {
			src = i
		}
		a.setFromArrayElem(int(off), rhs, src)
	}
	return nil
}

func sameDims(x, y []int) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// growTo reallocates a's storage to newDims/newKind, copying existing
// elements to their new column-major positions and zero-filling the
// rest (§4.1.4's "indexed assignment beyond current bounds expands the
// array").
func (a *Array) growTo(newDims []int, newKind Kind) {
	fresh := New(newKind, newDims...)
	if a.Numel() > 0 {
		oldSt := strides(a.Dims)
		newSt := strides(newDims)
		idx := make([]int, len(a.Dims))
		for lin := 0; lin < a.Numel(); lin++ {
			rem := lin
			for j := len(a.Dims) - 1; j >= 0; j-- {
				idx[j] = rem / oldSt[j] % a.Dims[j]
			}
			newLin := 0
			for j, v := range idx {
				newLin += v * newSt[j]
			}
			fresh.setFromArrayElem(newLin, a, lin)
		}
	}
	*a = *fresh
}

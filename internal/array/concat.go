package array

import (
	"numlang/internal/errtag"
)

// Concat implements §4.1.7: joins arrays along dim (0-based), requiring
// every other dimension to match exactly. The result kind is the Join
// of every operand's kind across the lattice.
func Concat(dim int, parts ...*Array) (*Array, error) {
	if len(parts) == 0 {
		return EmptyCell(), nil
	}
	nonEmpty := make([]*Array, 0, len(parts))
	for _, p := range parts {
		if !p.IsEmpty() {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return parts[0].Clone(), nil
	}

	ndim := len(nonEmpty[0].Dims)
	for _, p := range nonEmpty[1:] {
		if len(p.Dims) > ndim {
			ndim = len(p.Dims)
		}
	}
	if dim >= ndim {
		ndim = dim + 1
	}

	dimsOf := func(p *Array) []int {
		d := append([]int(nil), p.Dims...)
		for len(d) < ndim {
			d = append(d, 1)
		}
		return d
	}

	base := dimsOf(nonEmpty[0])
	total := base[dim]
	for _, p := range nonEmpty[1:] {
		d := dimsOf(p)
		for j := 0; j < ndim; j++ {
			if j == dim {
				continue
			}
			if d[j] != base[j] {
				return nil, errtag.New(errtag.KindShapeMismatch,
					"dimension %d disagrees across concatenated operands: %d vs %d", j, d[j], base[j])
			}
		}
		total += d[dim]
	}

	resultKind := nonEmpty[0].Kind
	for _, p := range nonEmpty[1:] {
		resultKind = Join(resultKind, p.Kind)
	}

	outDims := append([]int(nil), base...)
	outDims[dim] = total
	out := New(resultKind, outDims...)

	outSt := strides(outDims)
	writeOffset := 0
	for _, p := range nonEmpty {
		pd := dimsOf(p)
		pst := strides(pd)
		idx := make([]int, ndim)
		for lin := 0; lin < numelOf(pd); lin++ {
			rem := lin
			for j := ndim - 1; j >= 0; j-- {
				idx[j] = rem / pst[j] % pd[j]
			}
			outIdx := idx[dim] + writeOffset
			outLin := 0
			for j := 0; j < ndim; j++ {
				v := idx[j]
				if j == dim {
					v = outIdx
				}
				outLin += v * outSt[j]
			}
			out.setFromArrayElem(outLin, p, lin)
		}
		writeOffset += pd[dim]
	}
	return out, nil
}

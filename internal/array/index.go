package array

import (
	"numlang/internal/errtag"
	"numlang/internal/rangeval"
)

// CompKind tags an index component, per §4.1.1.
type CompKind int

const (
	CompNumeric CompKind = iota
	CompMask
	CompRange
)

// Component is one element of an index list: a numeric index array, a
// boolean mask, or a range (the full-range sentinel is a Range with
// IsFull set). A Scalar index is simply a Numeric component of length 1.
type Component struct {
	Kind    CompKind
	Numeric []int64 // 1-based positive integers (CompNumeric)
	Mask    []bool  // CompMask
	Range   rangeval.Range
}

// Scalar builds a single-element numeric index component.
func Scalar(i int64) Component { return Component{Kind: CompNumeric, Numeric: []int64{i}} }

// Numeric builds a numeric index-array component.
func Numeric(vals []int64) Component { return Component{Kind: CompNumeric, Numeric: vals} }

// MaskComp builds a boolean-mask component.
func MaskComp(mask []bool) Component { return Component{Kind: CompMask, Mask: mask} }

// RangeComp builds a range component (full or explicit).
func RangeComp(r rangeval.Range) Component { return Component{Kind: CompRange, Range: r} }

// ValidIndices implements §4.1.2: every numeric component must contain
// only strictly positive values, and every non-full range must have
// positive start and end. Boolean masks and full ranges are always
// valid.
func ValidIndices(comps []Component) bool {
	for _, c := range comps {
		switch c.Kind {
		case CompNumeric:
			for _, v := range c.Numeric {
				if v <= 0 {
					return false
				}
			}
		case CompRange:
			if !c.Range.IsFull {
				if c.Range.Start <= 0 || c.Range.End <= 0 {
					return false
				}
			}
		}
	}
	return true
}

// foldLinear implements §4.1.3's linear-index folding: a 1-based logical
// index L into the flattening of trailingDims is unraveled into
// per-dimension 1-based indices via repeated division/modulus, the
// fastest-varying dimension first (matching column-major order), with a
// zero remainder promoted to the dimension size and the quotient reduced
// by one.
func foldLinear(L int64, trailingDims []int) []int64 {
	out := make([]int64, len(trailingDims))
	cur := L
	for j := 0; j < len(trailingDims); j++ {
		if j == len(trailingDims)-1 {
			out[j] = cur
			break
		}
		d := int64(trailingDims[j])
		m := (cur-1)%d + 1
		out[j] = m
		cur = (cur-1)/d + 1
	}
	return out
}

// componentMax returns the maximum 1-based index a single component can
// imply, given it indexes dimension dimIdx of dims, and whether it is
// the last component in the index list (isLast) while more array
// dimensions remain (for the linear-extension rule).
func componentMax(c Component, dims []int, dimIdx int, isLast bool) int64 {
	switch c.Kind {
	case CompNumeric:
		var m int64
		for _, v := range c.Numeric {
			if v > m {
				m = v
			}
		}
		return m
	case CompMask:
		var count int64
		for _, b := range c.Mask {
			if b {
				count++
			}
		}
		return count
	case CompRange:
		if c.Range.IsFull {
			if isLast && dimIdx < len(dims)-1 {
				n := int64(1)
				for _, d := range dims[dimIdx:] {
					n *= int64(d)
				}
				return n
			}
			return int64(dims[dimIdx])
		}
		s, e := c.Range.Start, c.Range.End
		if s > e {
			e = s
		}
		return int64(e)
	}
	return 0
}

// GetMaxIndices implements §4.1.3: the maximum 1-based index required
// along each array dimension for a read or write using index list comps.
// When fewer components than dimensions are supplied, the last
// component's max is computed against the flattened tail and the result
// has length len(comps) (tail folding is resolved by the caller via
// foldLinear when actually walking the slice).
func GetMaxIndices(dims []int, comps []Component) []int64 {
	out := make([]int64, len(comps))
	for i, c := range comps {
		isLast := i == len(comps)-1
		out[i] = componentMax(c, dims, i, isLast)
	}
	return out
}

// BoundsCheckND implements §4.1.4's read bounds check: succeeds iff
// every max index fits within the corresponding dimension, folding the
// tail when fewer components than dimensions were supplied.
func BoundsCheckND(dims []int, comps []Component) error {
	maxInds := GetMaxIndices(dims, comps)
	if len(comps) >= len(dims) {
		for i, m := range maxInds {
			bound := 1
			if i < len(dims) {
				bound = dims[i]
			}
			if int(m) > bound {
				return errtag.New(errtag.KindIndexOutOfRange,
					"index %d exceeds dimension %d of size %d", m, i, bound)
			}
		}
		return nil
	}
	// Fewer components than dims: the last component folds against the
	// flattened tail; its max must fit the tail's total size.
	for i := 0; i < len(comps)-1; i++ {
		if int(maxInds[i]) > dims[i] {
			return errtag.New(errtag.KindIndexOutOfRange,
				"index %d exceeds dimension %d of size %d", maxInds[i], i, dims[i])
		}
	}
	tail := dims[len(comps)-1:]
	tailSize := 1
	for _, d := range tail {
		tailSize *= d
	}
	last := maxInds[len(comps)-1]
	if int(last) > tailSize {
		return errtag.New(errtag.KindIndexOutOfRange,
			"linear tail index %d exceeds flattened size %d", last, tailSize)
	}
	return nil
}

// ExpandedDims computes the new dimension vector for a write whose
// indices exceed the current bounds: max(oldDims, maxInds) element-wise,
// extended with extra trailing dimensions of size 1 (until the written
// position) if the index list names more dimensions than the array
// currently has (§4.1.4).
func ExpandedDims(dims []int, comps []Component) []int {
	maxInds := GetMaxIndices(dims, comps)
	n := len(dims)
	if len(comps) > n {
		n = len(comps)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		old := 1
		if i < len(dims) {
			old = dims[i]
		}
		want := old
		if i < len(maxInds) && int(maxInds[i]) > want {
			want = int(maxInds[i])
		}
		out[i] = want
	}
	return canonicalDims(out)
}

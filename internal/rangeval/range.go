// Package rangeval implements the lazy arithmetic-progression value of
// spec §3.3, grounded on McVM's RangeObj (original_source/source/rangeobj.{h,cpp}).
package rangeval

import "math"

// countEpsilon is the tolerance McVM's RangeObj::getElemCount used to
// decide whether the nominal value just past the declared end should
// still be counted as an element (original_source/source/rangeobj.cpp).
const countEpsilon = 1e-5

// Range is three floats plus the "is this the full-range sentinel" flag.
// It is never expanded when used as an index (§4.2.4); expansion to a
// row vector happens only when a Range value is used as an r-value.
type Range struct {
	Start  float64
	Step   float64
	End    float64
	IsFull bool
}

// Full returns the full-range sentinel, standing for an entire dimension
// wherever it appears as an index component.
func Full() Range {
	return Range{IsFull: true}
}

// New constructs an explicit start:step:end range.
func New(start, step, end float64) Range {
	return Range{Start: start, Step: step, End: end}
}

// ElemCount computes the number of elements per §3.3: 0 if step is zero
// or the sign of step disagrees with the direction from start to end;
// otherwise floor((end-start)/step)+1, with the epsilon-tolerant
// "is the next-after-end value within epsilon of end" extension.
func (r Range) ElemCount() int {
	if r.IsFull {
		panic("rangeval: ElemCount called on the full-range sentinel")
	}
	if r.Step == 0 {
		return 0
	}

	rangeLen := (r.End - r.Start) / r.Step
	if rangeLen < 0 {
		return 0
	}

	count := int(rangeLen) + 1
	estFinalPlus1 := r.Start + float64(count)*r.Step
	if math.Abs(estFinalPlus1-r.End) < countEpsilon {
		count++
	}
	return count
}

// At returns the i'th element (0-based) of the expanded range.
func (r Range) At(i int) float64 {
	return r.Start + float64(i)*r.Step
}

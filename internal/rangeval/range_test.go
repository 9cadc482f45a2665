package rangeval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElemCountBasicAscendingRange(t *testing.T) {
	r := New(1, 1, 5)
	assert.Equal(t, 5, r.ElemCount())
}

func TestElemCountDescendingRangeWithNegativeStep(t *testing.T) {
	r := New(5, -1, 1)
	assert.Equal(t, 5, r.ElemCount())
}

func TestElemCountZeroStepIsEmpty(t *testing.T) {
	r := New(1, 0, 10)
	assert.Equal(t, 0, r.ElemCount())
}

func TestElemCountStepDirectionDisagreeingWithBoundsIsEmpty(t *testing.T) {
	r := New(1, 1, -5)
	assert.Equal(t, 0, r.ElemCount())
}

func TestElemCountFractionalStepNotExactlyReachingEnd(t *testing.T) {
	// 0:0.3:1 lands at 0, 0.3, 0.6, 0.9 — the next step (1.2) overshoots,
	// and 0.9 itself is not within epsilon of 1, so 4 elements.
	r := New(0, 0.3, 1)
	assert.Equal(t, 4, r.ElemCount())
}

func TestElemCountEpsilonToleratesFloatingPointOvershoot(t *testing.T) {
	// 0:0.1:0.3 accumulates rounding error such that naive floor math
	// might miss the final element; the epsilon widening must catch it.
	r := New(0, 0.1, 0.3)
	assert.Equal(t, 4, r.ElemCount())
}

func TestAtReturnsStartPlusIndexTimesStep(t *testing.T) {
	r := New(2, 3, 20)
	assert.Equal(t, 2.0, r.At(0))
	assert.Equal(t, 5.0, r.At(1))
	assert.Equal(t, 8.0, r.At(2))
}

func TestFullIsMarkedAsFullRangeSentinel(t *testing.T) {
	r := Full()
	assert.True(t, r.IsFull)
}

func TestElemCountPanicsOnFullRangeSentinel(t *testing.T) {
	r := Full()
	assert.Panics(t, func() { r.ElemCount() })
}

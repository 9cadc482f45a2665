package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalDimsDropsTrailingOnes(t *testing.T) {
	a := New(KindFloat, 3, 1, 1)
	assert.Equal(t, []int{3, 1}, a.Dims)
}

func TestCanonicalDimsPadsBelowTwo(t *testing.T) {
	a := New(KindFloat, 5)
	assert.Equal(t, []int{5, 1}, a.Dims)
}

func TestJoinPromotionLattice(t *testing.T) {
	assert.Equal(t, KindInt, Join(KindBool, KindInt))
	assert.Equal(t, KindFloat, Join(KindInt, KindFloat))
	assert.Equal(t, KindComplex, Join(KindFloat, KindComplex))
	assert.Equal(t, KindFloat, Join(KindChar, KindFloat))
}

func TestJoinCellAbsorbs(t *testing.T) {
	assert.Equal(t, KindCell, Join(KindCell, KindFloat))
	assert.Equal(t, KindCell, Join(KindInt, KindCell))
}

func TestElementWiseScalarBroadcast(t *testing.T) {
	a := New(KindFloat, 2, 2)
	for i := range a.Floats {
		a.Floats[i] = float64(i + 1)
	}
	scalar := ScalarFloat(10)

	out, err := ElementWise(OpAdd, a, scalar)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 12, 13, 14}, out.Floats)
}

func TestElementWiseShapeMismatchErrors(t *testing.T) {
	a := New(KindFloat, 2, 2)
	b := New(KindFloat, 3, 3)
	_, err := ElementWise(OpAdd, a, b)
	require.Error(t, err)
}

func TestElementWiseComparisonProducesBool(t *testing.T) {
	a := New(KindInt, 1, 3)
	a.Ints = []int64{1, 2, 3}
	b := New(KindInt, 1, 3)
	b.Ints = []int64{1, 5, 3}

	eq, err := ElementWise(OpEq, a, b)
	require.NoError(t, err)
	assert.Equal(t, KindBool, eq.Kind)
	assert.Equal(t, []bool{true, false, true}, eq.Bools)
}

func TestElementWiseModMatchesSignOfDivisorForFloats(t *testing.T) {
	a := New(KindFloat, 1, 4)
	a.Floats = []float64{5, -5, 5, -5}
	b := New(KindFloat, 1, 4)
	b.Floats = []float64{3, 3, -3, -3}

	out, err := ElementWise(OpMod, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, -1, -2}, out.Floats)
}

func TestElementWiseModByZeroReturnsDividend(t *testing.T) {
	a := ScalarFloat(7)
	b := ScalarFloat(0)
	out, err := ElementWise(OpMod, a, b)
	require.NoError(t, err)
	assert.Equal(t, 7.0, out.Floats[0])
}

func TestElementWiseModOnIntegersStaysInt(t *testing.T) {
	a := New(KindInt, 1, 2)
	a.Ints = []int64{7, -7}
	b := New(KindInt, 1, 2)
	b.Ints = []int64{3, 3}

	out, err := ElementWise(OpMod, a, b)
	require.NoError(t, err)
	assert.Equal(t, KindInt, out.Kind)
	assert.Equal(t, []int64{1, 2}, out.Ints)
}

func TestReduceMaxOverEmptyDimensionYieldsNegativeInfinity(t *testing.T) {
	a := New(KindFloat, 3, 0)
	out, err := a.Reduce(ReduceMax, 1)
	require.NoError(t, err)
	require.Equal(t, []int{3, 1}, out.Dims)
	for _, v := range out.Floats {
		assert.True(t, math.IsInf(v, -1))
	}
}

func TestReduceMinOverEmptyDimensionYieldsPositiveInfinity(t *testing.T) {
	a := New(KindFloat, 3, 0)
	out, err := a.Reduce(ReduceMin, 1)
	require.NoError(t, err)
	for _, v := range out.Floats {
		assert.True(t, math.IsInf(v, 1))
	}
}

func TestReduceMaxOverEmptyDimensionOnIntArrayYieldsMinInt64(t *testing.T) {
	a := New(KindInt, 3, 0)
	out, err := a.Reduce(ReduceMax, 1)
	require.NoError(t, err)
	for _, v := range out.Ints {
		assert.Equal(t, int64(math.MinInt64), v)
	}
}

func TestReduceMaxOverNonEmptyDimensionIgnoresIdentityPrefill(t *testing.T) {
	a := New(KindFloat, 1, 3)
	a.Floats = []float64{1, 5, 2}
	out, err := a.Reduce(ReduceMax, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, out.Floats[0])
}

func TestShortCircuitBoolAllTrue(t *testing.T) {
	a := New(KindBool, 1, 3)
	a.Bools = []bool{true, true, true}
	ok, err := a.ShortCircuitBool()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestShortCircuitBoolAnyFalse(t *testing.T) {
	a := New(KindBool, 1, 3)
	a.Bools = []bool{true, false, true}
	ok, err := a.ShortCircuitBool()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCellNeverJoinsWithNumeric(t *testing.T) {
	a := New(KindFloat, 1, 1)
	b := New(KindCell, 1, 1)
	_, err := ElementWise(OpAdd, a, b)
	require.Error(t, err)
}

package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numlang/internal/array"
	"numlang/internal/registry"
	"numlang/internal/value"
)

func newTallyRegistry() (*registry.Registry, *Tally) {
	reg := registry.New()
	tally := &Tally{}
	RegisterAssertions(reg, tally)
	return reg, tally
}

func call(t *testing.T, reg *registry.Registry, name string, args ...value.Value) {
	t.Helper()
	e, ok := reg.Lookup(name)
	require.True(t, ok, "%s must be registered", name)
	_, err := e.Handler(args, 1)
	require.NoError(t, err)
}

func TestAssertPassesOnTruthyValue(t *testing.T) {
	reg, tally := newTallyRegistry()
	call(t, reg, "assert", array.ScalarBool(true))
	assert.Equal(t, 1, tally.Passed)
	assert.Equal(t, 0, tally.Failed)
}

func TestAssertFailsOnFalsyValueAndRecordsMessage(t *testing.T) {
	reg, tally := newTallyRegistry()
	call(t, reg, "assert", array.ScalarBool(false), array.ScalarChar('x'))
	assert.Equal(t, 0, tally.Passed)
	assert.Equal(t, 1, tally.Failed)
	require.Len(t, tally.Notes, 1)
	assert.Contains(t, tally.Notes[0], "assert failed")
}

func TestAssertEqualPassesOnEqualScalars(t *testing.T) {
	reg, tally := newTallyRegistry()
	call(t, reg, "assert_equal", array.ScalarInt(3), array.ScalarInt(3))
	assert.Equal(t, 1, tally.Passed)
}

func TestAssertEqualFailsOnDifferingScalarsWithDiagnosticNote(t *testing.T) {
	reg, tally := newTallyRegistry()
	call(t, reg, "assert_equal", array.ScalarInt(3), array.ScalarInt(4))
	assert.Equal(t, 1, tally.Failed)
	require.Len(t, tally.Notes, 1)
	assert.Contains(t, tally.Notes[0], "expected")
	assert.Contains(t, tally.Notes[0], "actual")
}

func TestAssertNotEqualPassesWhenValuesDiffer(t *testing.T) {
	reg, tally := newTallyRegistry()
	call(t, reg, "assert_not_equal", array.ScalarInt(1), array.ScalarInt(2))
	assert.Equal(t, 1, tally.Passed)
}

func TestAssertNotEqualFailsWhenValuesAreEqual(t *testing.T) {
	reg, tally := newTallyRegistry()
	call(t, reg, "assert_not_equal", array.ScalarInt(5), array.ScalarInt(5))
	assert.Equal(t, 1, tally.Failed)
}

func TestAssertTrueAndAssertFalse(t *testing.T) {
	reg, tally := newTallyRegistry()
	call(t, reg, "assert_true", array.ScalarBool(true))
	call(t, reg, "assert_false", array.ScalarBool(false))
	assert.Equal(t, 2, tally.Passed)
	assert.Equal(t, 0, tally.Failed)
}

func TestArgMessageDefaultsToEmptyWhenOmitted(t *testing.T) {
	reg, tally := newTallyRegistry()
	call(t, reg, "assert", array.ScalarBool(false))
	require.Len(t, tally.Notes, 1)
	assert.Equal(t, "assert failed: ", tally.Notes[0])
}

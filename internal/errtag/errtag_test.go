package errtag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSetsKindAndMessage(t *testing.T) {
	err := New(KindUnknownSymbol, "undefined variable %q", "x")
	assert.Equal(t, KindUnknownSymbol, err.Kind())
	assert.Contains(t, err.Error(), "undefined variable \"x\"")
	assert.Contains(t, err.Error(), string(KindUnknownSymbol))
}

func TestWrapPreservesUnderlyingCauseForUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindIoError, cause)
	assert.Equal(t, cause.Error(), err.Cause().Error())
}

func TestWrapOnAlreadyWrappedErrorReturnsSameValueUnchanged(t *testing.T) {
	original := New(KindNotCallable, "x is not callable")
	wrapped := Wrap(KindIoError, original)
	assert.Same(t, original, wrapped)
	assert.Equal(t, KindNotCallable, wrapped.Kind())
}

func TestDuringCallAppendsStandardBreadcrumb(t *testing.T) {
	err := New(KindUnassignedReturn, "too few outputs").DuringCall("helper")
	assert.Contains(t, err.Error(), "error during call to helper")
}

func TestBreadcrumbsRenderOutermostFirst(t *testing.T) {
	err := New(KindUnknownSymbol, "undefined variable x")
	err.Note("in assignment", nil)
	err.DuringCall("outer")

	msg := err.Error()
	outerIdx := indexOf(msg, "error during call to outer")
	innerIdx := indexOf(msg, "in assignment")
	require.True(t, outerIdx >= 0 && innerIdx >= 0)
	assert.Less(t, outerIdx, innerIdx, "the last-appended breadcrumb (outermost call boundary) must render first")
}

func TestNoteWithNodeAppendsReconstructedSource(t *testing.T) {
	err := New(KindShapeMismatch, "dims disagree")
	err.Note("while evaluating", stringerFunc(func() string { return "x + y" }))
	assert.Contains(t, err.Error(), "while evaluating: x + y")
}

func TestIsMatchesWrappedKindThroughPlainErrorWrapping(t *testing.T) {
	err := New(KindSingularMatrix, "matrix is singular")
	wrapped := fmt.Errorf("during solve: %w", err)
	assert.True(t, Is(wrapped, KindSingularMatrix))
	assert.False(t, Is(wrapped, KindShapeMismatch))
}

func TestIsFalseForNonRuntimeError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), KindIoError))
}

type stringerFunc func() string

func (f stringerFunc) String() string { return f() }

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

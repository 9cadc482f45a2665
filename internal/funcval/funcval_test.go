package funcval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"numlang/internal/environment"
	"numlang/internal/ir"
)

func TestUserFunctionNarginNargoutReportDeclaredCounts(t *testing.T) {
	f := &UserFunction{Def: &ir.Definition{Name: "pair", In: []string{"a", "b"}, Out: []string{"x", "y"}}}
	assert.Equal(t, 2, f.Nargin())
	assert.Equal(t, 2, f.Nargout())
	assert.Equal(t, "@pair", f.String())
}

func TestUserFunctionWithNoOutputsHasZeroNargout(t *testing.T) {
	f := &UserFunction{Def: &ir.Definition{Name: "greet", In: []string{"name"}}}
	assert.Equal(t, 0, f.Nargout())
}

func TestFunctionHandleNamedIsNotAnonymous(t *testing.T) {
	h := &FunctionHandle{Name: "sin"}
	assert.False(t, h.IsAnonymous())
	assert.Equal(t, "@sin", h.String())
}

func TestFunctionHandleAnonymousCapturesClosureEnvironment(t *testing.T) {
	root := environment.NewRoot()
	root.Set("k", int64(10))
	h := &FunctionHandle{
		Anon:    &ir.AnonFunc{Params: []string{"x"}, Body: &ir.Ident{Name: "x"}},
		Closure: root.Copy(),
	}
	assert.True(t, h.IsAnonymous())
	v, ok := h.Closure.Get("k")
	assert.True(t, ok)
	assert.Equal(t, int64(10), v)
}

package evaluator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numlang/internal/array"
	"numlang/internal/config"
	"numlang/internal/environment"
	"numlang/internal/funcval"
	"numlang/internal/ir"
	"numlang/internal/looplower"
	"numlang/internal/parser"
)

func runSource(t *testing.T, source string) (*environment.Environment, string) {
	t.Helper()
	def, err := parser.Parse(source, "test.m")
	require.NoError(t, err)
	def.Body = looplower.Lower(def.Body)

	eval := New(config.Default(), nil)
	var out []string
	eval.Print = func(s string) { out = append(out, s) }
	eval.Println = func(s string) { out = append(out, s) }

	root := environment.NewRoot()
	require.NoError(t, eval.RunScript(def, root))
	return root, strings.Join(out, "\n")
}

func TestExecAssignBindsVariable(t *testing.T) {
	root, _ := runSource(t, "x = 1 + 2;")
	v, ok := root.Get("x")
	require.True(t, ok)
	a, ok := v.(*array.Array)
	require.True(t, ok)
	assert.Equal(t, int64(3), a.Ints[0])
}

func TestCallUserReturnsDeclaredOutputsInOrder(t *testing.T) {
	def := &ir.Definition{
		Name: "pair",
		Out:  []string{"a", "b"},
		Body: []ir.Stmt{
			&ir.AssignStmt{Targets: []ir.LValue{{Name: "a"}}, Value: &ir.Literal{Value: int64(1)}, Suppress: true},
			&ir.AssignStmt{Targets: []ir.LValue{{Name: "b"}}, Value: &ir.Literal{Value: int64(2)}, Suppress: true},
		},
	}
	eval := New(config.Default(), nil)
	eval.Print, eval.Println = noopPrint, noopPrint

	outs, err := eval.CallUser(&funcval.UserFunction{Def: def}, nil, 2, environment.NewRoot())
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Equal(t, int64(1), outs[0].(*array.Array).Ints[0])
	assert.Equal(t, int64(2), outs[1].(*array.Array).Ints[0])
}

func TestExecLoweredForLoopAccumulates(t *testing.T) {
	root, _ := runSource(t, "x = 0;\nfor i = 1:5\n  x = x + i;\nend")
	v, ok := root.Get("x")
	require.True(t, ok)
	a := v.(*array.Array)
	assert.Equal(t, int64(15), a.Ints[0])
}

func TestExecWhileLoopWithBreak(t *testing.T) {
	root, _ := runSource(t, "x = 0;\nwhile true\n  x = x + 1;\n  if x >= 3\n    break;\n  end\nend")
	v, ok := root.Get("x")
	require.True(t, ok)
	a := v.(*array.Array)
	assert.Equal(t, int64(3), a.Ints[0])
}

func TestExecSwitchMatchesCase(t *testing.T) {
	root, _ := runSource(t, "x = 2;\nswitch x\ncase 1\n  y = 10;\ncase 2\n  y = 20;\notherwise\n  y = 0;\nend")
	v, ok := root.Get("y")
	require.True(t, ok)
	a := v.(*array.Array)
	assert.Equal(t, int64(20), a.Ints[0])
}

func TestExecSwitchFallsToOtherwise(t *testing.T) {
	root, _ := runSource(t, "x = 9;\nswitch x\ncase 1\n  y = 10;\notherwise\n  y = 0;\nend")
	v, ok := root.Get("y")
	require.True(t, ok)
	a := v.(*array.Array)
	assert.Equal(t, int64(0), a.Ints[0])
}

func TestExecPrintlnRoutesThroughHostCallback(t *testing.T) {
	_, out := runSource(t, "println('hello')")
	assert.Equal(t, "hello", out)
}

func TestExecUnknownSymbolErrors(t *testing.T) {
	def, err := parser.Parse("y = not_a_thing();", "test.m")
	require.NoError(t, err)
	eval := New(config.Default(), nil)
	eval.Print, eval.Println = noopPrint, noopPrint
	err = eval.RunScript(def, environment.NewRoot())
	assert.Error(t, err)
}

func TestCallUserCannotSeeCallingScriptsPlainLocals(t *testing.T) {
	// Mirrors how a host is supposed to set things up (commands.go,
	// repl.go): a clean process root, and the running script confined to
	// its own child scope so its top-level locals never leak into a
	// function's call frame via root.Global().
	globalRoot := environment.NewRoot()
	scriptEnv := globalRoot.Extend()

	eval := New(config.Default(), nil)
	eval.Print, eval.Println = noopPrint, noopPrint

	scriptDef, err := parser.Parse("leaked = 42;", "test.m")
	require.NoError(t, err)
	require.NoError(t, eval.RunScript(scriptDef, scriptEnv))

	fnDef := &ir.Definition{
		Name: "helper",
		Out:  []string{"y"},
		Body: []ir.Stmt{
			&ir.AssignStmt{Targets: []ir.LValue{{Name: "y"}}, Value: &ir.Ident{Name: "leaked"}, Suppress: true},
		},
	}
	_, err = eval.CallUser(&funcval.UserFunction{Def: fnDef}, nil, 1, scriptEnv)
	assert.Error(t, err, "a script's plain top-level variable must not be visible inside a function it calls")
}

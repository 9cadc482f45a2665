package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numlang/internal/ir"
)

func TestParseScriptBody(t *testing.T) {
	def, err := Parse("x = 1 + 2;\nprintln(x)", "script.m")
	require.NoError(t, err)
	assert.True(t, def.IsScript)
	require.Len(t, def.Body, 2)

	assign, ok := def.Body[0].(*ir.AssignStmt)
	require.True(t, ok)
	assert.True(t, assign.Suppress)
	require.Len(t, assign.Targets, 1)
	assert.Equal(t, "x", assign.Targets[0].Name)

	bin, ok := assign.Value.(*ir.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Operator)
}

func TestParseFunctionSingleOutput(t *testing.T) {
	def, err := Parse("function y = sq(x)\ny = x .* x;\nend", "sq.m")
	require.NoError(t, err)
	assert.Equal(t, "sq", def.Name)
	assert.Equal(t, []string{"x"}, def.In)
	assert.Equal(t, []string{"y"}, def.Out)
	require.Len(t, def.Body, 1)
}

func TestParseFunctionMultiOutputNoInput(t *testing.T) {
	def, err := Parse("function [a, b] = pair()\na = 1;\nb = 2;\nend", "pair.m")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, def.Out)
	assert.Empty(t, def.In)
}

func TestParseFunctionNoOutput(t *testing.T) {
	def, err := Parse("function greet(name)\nprintln(name)\nend", "greet.m")
	require.NoError(t, err)
	assert.Empty(t, def.Out)
	assert.Equal(t, []string{"name"}, def.In)
}

func TestParseNestedFunctions(t *testing.T) {
	src := "function main()\nhelper()\nend\n\nfunction helper()\nprintln('hi')\nend"
	def, err := Parse(src, "main.m")
	require.NoError(t, err)
	assert.Equal(t, "main", def.Name)
	require.Len(t, def.Nested, 1)
	assert.Equal(t, "helper", def.Nested[0].Name)
}

func TestParseMultiAssign(t *testing.T) {
	def, err := Parse("[a, ~, c] = f();", "m.m")
	require.NoError(t, err)
	assign, ok := def.Body[0].(*ir.AssignStmt)
	require.True(t, ok)
	require.Len(t, assign.Targets, 3)
	assert.Equal(t, "a", assign.Targets[0].Name)
	assert.True(t, assign.Targets[1].Ignore)
	assert.Equal(t, "c", assign.Targets[2].Name)
}

func TestParseBracketExpressionNotMistakenForMultiAssign(t *testing.T) {
	def, err := Parse("x = [1, 2, 3];", "m.m")
	require.NoError(t, err)
	assign, ok := def.Body[0].(*ir.AssignStmt)
	require.True(t, ok)
	_, ok = assign.Value.(*ir.ArrayLit)
	assert.True(t, ok)
}

func TestParseIfElseif(t *testing.T) {
	src := "if x > 0\n  y = 1;\nelseif x < 0\n  y = -1;\nelse\n  y = 0;\nend"
	def, err := Parse(src, "m.m")
	require.NoError(t, err)
	top, ok := def.Body[0].(*ir.IfStmt)
	require.True(t, ok)
	require.Len(t, top.Else, 1)
	inner, ok := top.Else[0].(*ir.IfStmt)
	require.True(t, ok)
	require.Len(t, inner.Else, 1)
}

func TestParseWhileLoop(t *testing.T) {
	def, err := Parse("while x < 10\n  x = x + 1;\nend", "m.m")
	require.NoError(t, err)
	_, ok := def.Body[0].(*ir.WhileStmt)
	assert.True(t, ok)
}

func TestParseForLoop(t *testing.T) {
	def, err := Parse("for i = 1:10\n  println(i);\nend", "m.m")
	require.NoError(t, err)
	f, ok := def.Body[0].(*ir.ForStmt)
	require.True(t, ok)
	assert.Equal(t, "i", f.Var)
	_, ok = f.Seq.(*ir.RangeExpr)
	assert.True(t, ok)
}

func TestParseSwitchWithCellCase(t *testing.T) {
	src := "switch x\ncase {1, 2}\n  y = 1;\notherwise\n  y = 0;\nend"
	def, err := Parse(src, "m.m")
	require.NoError(t, err)
	sw, ok := def.Body[0].(*ir.SwitchStmt)
	require.True(t, ok)
	require.Len(t, sw.Cases, 1)
	assert.Len(t, sw.Cases[0].Values, 2)
	assert.Len(t, sw.Otherwise, 1)
}

func TestParseEndInIndexExpression(t *testing.T) {
	def, err := Parse("y = x(end);", "m.m")
	require.NoError(t, err)
	assign, ok := def.Body[0].(*ir.AssignStmt)
	require.True(t, ok)
	idx, ok := assign.Value.(*ir.CallExpr)
	require.True(t, ok)
	require.Len(t, idx.Args, 1)
	end, ok := idx.Args[0].(*ir.End)
	require.True(t, ok)
	assert.True(t, end.IsLast)
	assert.Equal(t, "x", end.Symbol)
}

func TestParseEndArithmeticInLastOfTwoIndices(t *testing.T) {
	def, err := Parse("y = x(1, end-1);", "m.m")
	require.NoError(t, err)
	assign, ok := def.Body[0].(*ir.AssignStmt)
	require.True(t, ok)
	idx, ok := assign.Value.(*ir.CallExpr)
	require.True(t, ok)
	require.Len(t, idx.Args, 2)
	sub, ok := idx.Args[1].(*ir.BinaryExpr)
	require.True(t, ok)
	end, ok := sub.Left.(*ir.End)
	require.True(t, ok)
	assert.Equal(t, 1, end.DimIndex)
	assert.True(t, end.IsLast)
}

func TestParseOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 ^ 2 should bind as 1 + (2 * (3 ^ 2)).
	def, err := Parse("y = 1 + 2 * 3 ^ 2;", "m.m")
	require.NoError(t, err)
	assign := def.Body[0].(*ir.AssignStmt)
	top, ok := assign.Value.(*ir.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", top.Operator)
	mul, ok := top.Right.(*ir.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Operator)
	pow, ok := mul.Right.(*ir.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "^", pow.Operator)
}

func TestParseAnonymousFunction(t *testing.T) {
	def, err := Parse("f = @(x) x + 1;", "m.m")
	require.NoError(t, err)
	assign := def.Body[0].(*ir.AssignStmt)
	anon, ok := assign.Value.(*ir.AnonFunc)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, anon.Params)
}

func TestParseFuncHandle(t *testing.T) {
	def, err := Parse("f = @sin;", "m.m")
	require.NoError(t, err)
	assign := def.Body[0].(*ir.AssignStmt)
	h, ok := assign.Value.(*ir.FuncHandleExpr)
	require.True(t, ok)
	assert.Equal(t, "sin", h.Name)
}

func TestParseCellIndexAssignTarget(t *testing.T) {
	def, err := Parse("c{1} = 'a';", "m.m")
	require.NoError(t, err)
	assign := def.Body[0].(*ir.AssignStmt)
	require.Len(t, assign.Targets, 1)
	assert.True(t, assign.Targets[0].Cell)
	assert.Equal(t, "c", assign.Targets[0].Name)
}

func TestParseGlobalStatement(t *testing.T) {
	def, err := Parse("global counter total", "m.m")
	require.NoError(t, err)
	g, ok := def.Body[0].(*ir.GlobalStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"counter", "total"}, g.Names)
}

func TestParseMalformedExpressionFails(t *testing.T) {
	_, err := Parse("x = ;", "m.m")
	assert.Error(t, err)
}

func TestParseUnterminatedIfFails(t *testing.T) {
	_, err := Parse("if x > 0\n  y = 1;\n", "m.m")
	assert.Error(t, err)
}

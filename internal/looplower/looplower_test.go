package looplower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numlang/internal/ir"
)

func TestLowerWhileKeepsConditionAndBodyWithNoInitOrIncr(t *testing.T) {
	w := &ir.WhileStmt{
		Cond: &ir.BinaryExpr{Left: &ir.Ident{Name: "x"}, Operator: "<", Right: &ir.Literal{Value: int64(10)}},
		Body: []ir.Stmt{&ir.AssignStmt{Targets: []ir.LValue{{Name: "x"}}, Value: &ir.Ident{Name: "x"}, Suppress: true}},
	}
	out := Lower([]ir.Stmt{w})
	require.Len(t, out, 1)
	loop, ok := out[0].(*ir.LoweredLoop)
	require.True(t, ok)
	assert.Empty(t, loop.Init)
	assert.Empty(t, loop.Incr)
	assert.Empty(t, loop.TestVar)
	assert.Same(t, w.Cond, loop.Test)
	assert.Len(t, loop.Body, 1)
}

func TestLowerForRangeProducesInitTestIncrAroundStepAndBound(t *testing.T) {
	f := &ir.ForStmt{
		Var: "i",
		Seq: &ir.RangeExpr{Start: &ir.Literal{Value: int64(1)}, End: &ir.Literal{Value: int64(5)}},
		Body: []ir.Stmt{
			&ir.AssignStmt{Targets: []ir.LValue{{Name: "x"}}, Value: &ir.Ident{Name: "i"}, Suppress: true},
		},
	}
	out := Lower([]ir.Stmt{f})
	require.Len(t, out, 1)
	loop, ok := out[0].(*ir.LoweredLoop)
	require.True(t, ok)

	assert.Equal(t, "i", loop.TestVar)
	require.Len(t, loop.Init, 3)

	stepAssign := loop.Init[0].(*ir.AssignStmt)
	lit, ok := stepAssign.Value.(*ir.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(1), lit.Value)

	endAssign := loop.Init[1].(*ir.AssignStmt)
	assert.Same(t, f.Seq.(*ir.RangeExpr).End, endAssign.Value)

	varAssign := loop.Init[2].(*ir.AssignStmt)
	assert.Equal(t, "i", varAssign.Targets[0].Name)
	assert.Same(t, f.Seq.(*ir.RangeExpr).Start, varAssign.Value)

	test, ok := loop.Test.(*ir.CallExpr)
	require.True(t, ok)
	callee, ok := test.Callee.(*ir.Ident)
	require.True(t, ok)
	assert.Equal(t, "__loop_test", callee.Name)
	require.Len(t, test.Args, 3)

	require.Len(t, loop.Incr, 1)
	incr := loop.Incr[0].(*ir.AssignStmt)
	assert.Equal(t, "i", incr.Targets[0].Name)

	require.Len(t, loop.Body, 1)
}

func TestLowerForRangeWithExplicitStepReusesStepExpr(t *testing.T) {
	step := &ir.Literal{Value: int64(2)}
	f := &ir.ForStmt{
		Var: "i",
		Seq: &ir.RangeExpr{Start: &ir.Literal{Value: int64(0)}, End: &ir.Literal{Value: int64(10)}, Step: step},
	}
	out := Lower([]ir.Stmt{f})
	loop := out[0].(*ir.LoweredLoop)
	stepAssign := loop.Init[0].(*ir.AssignStmt)
	assert.Same(t, step, stepAssign.Value)
}

func TestLowerForOverArrayDesugarsToIndexCounterLoop(t *testing.T) {
	f := &ir.ForStmt{
		Var: "col",
		Seq: &ir.Ident{Name: "m"},
		Body: []ir.Stmt{
			&ir.AssignStmt{Targets: []ir.LValue{{Name: "s"}}, Value: &ir.Ident{Name: "col"}, Suppress: true},
		},
	}
	out := Lower([]ir.Stmt{f})
	loop := out[0].(*ir.LoweredLoop)

	require.Len(t, loop.Init, 3)
	seqAssign := loop.Init[0].(*ir.AssignStmt)
	assert.Same(t, f.Seq, seqAssign.Value)

	numelCall := loop.Init[1].(*ir.AssignStmt).Value.(*ir.CallExpr)
	callee := numelCall.Callee.(*ir.Ident)
	assert.Equal(t, "numel", callee.Name)

	idxInit := loop.Init[2].(*ir.AssignStmt)
	lit := idxInit.Value.(*ir.Literal)
	assert.Equal(t, int64(1), lit.Value)

	test := loop.Test.(*ir.BinaryExpr)
	assert.Equal(t, "<=", test.Operator)

	require.Len(t, loop.Body, 2)
	bind := loop.Body[0].(*ir.AssignStmt)
	assert.Equal(t, "col", bind.Targets[0].Name)
	idxExpr, ok := bind.Value.(*ir.IndexExpr)
	require.True(t, ok)
	require.Len(t, idxExpr.Args, 2)
	_, ok = idxExpr.Args[0].(*ir.ColonExpr)
	assert.True(t, ok)

	require.Len(t, loop.Incr, 1)
}

func TestLowerRecursesThroughIfStmtBranches(t *testing.T) {
	inner := &ir.WhileStmt{Cond: &ir.Literal{Value: true}}
	ifs := &ir.IfStmt{
		Cond: &ir.Literal{Value: true},
		Then: []ir.Stmt{inner},
		Else: []ir.Stmt{&ir.ForStmt{Var: "j", Seq: &ir.RangeExpr{Start: &ir.Literal{Value: int64(1)}, End: &ir.Literal{Value: int64(3)}}}},
	}
	out := Lower([]ir.Stmt{ifs})
	got := out[0].(*ir.IfStmt)
	_, ok := got.Then[0].(*ir.LoweredLoop)
	assert.True(t, ok)
	_, ok = got.Else[0].(*ir.LoweredLoop)
	assert.True(t, ok)
}

func TestLowerRecursesThroughSwitchCases(t *testing.T) {
	sw := &ir.SwitchStmt{
		Subject: &ir.Ident{Name: "x"},
		Cases: []ir.SwitchCase{
			{Values: []ir.Expr{&ir.Literal{Value: int64(1)}}, Body: []ir.Stmt{&ir.WhileStmt{Cond: &ir.Literal{Value: true}}}},
		},
		Otherwise: []ir.Stmt{&ir.WhileStmt{Cond: &ir.Literal{Value: false}}},
	}
	out := Lower([]ir.Stmt{sw})
	got := out[0].(*ir.SwitchStmt)
	_, ok := got.Cases[0].Body[0].(*ir.LoweredLoop)
	assert.True(t, ok)
	_, ok = got.Otherwise[0].(*ir.LoweredLoop)
	assert.True(t, ok)
}

func TestLowerIsIdempotentOnAlreadyLoweredLoop(t *testing.T) {
	already := &ir.LoweredLoop{
		Init:    []ir.Stmt{&ir.AssignStmt{Targets: []ir.LValue{{Name: "i"}}, Value: &ir.Literal{Value: int64(0)}, Suppress: true}},
		TestVar: "i",
		Test:    &ir.BinaryExpr{Left: &ir.Ident{Name: "i"}, Operator: "<", Right: &ir.Literal{Value: int64(1)}},
	}
	out := Lower([]ir.Stmt{already})
	loop := out[0].(*ir.LoweredLoop)
	assert.Equal(t, "i", loop.TestVar)
	require.Len(t, loop.Init, 1)
}

func TestLowerGeneratesDistinctTempNamesAcrossMultipleLoops(t *testing.T) {
	f1 := &ir.ForStmt{Var: "i", Seq: &ir.Ident{Name: "a"}}
	f2 := &ir.ForStmt{Var: "j", Seq: &ir.Ident{Name: "b"}}
	out := Lower([]ir.Stmt{f1, f2})
	loop1 := out[0].(*ir.LoweredLoop)
	loop2 := out[1].(*ir.LoweredLoop)
	assert.NotEqual(t, loop1.TestVar, loop2.TestVar)
}

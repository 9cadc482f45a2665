// Package looplower rewrites the front end's WhileStmt/ForStmt nodes
// into the canonical 5-tuple loop form of spec §4.3 (init/test/body/
// incr, with the test driven by a dedicated test variable), grounded on
// McVM's transformForLoop (original_source/source/transform_loops.cpp):
// a counted for loop becomes an init assignment of the loop variable, a
// hoisted temporary holding the range's end value, a test comparing the
// loop variable against that temporary with <= or >= chosen by the
// step's sign, the original body, and an increment statement that
// advances the loop variable by the step.
package looplower

import (
	"fmt"

	"numlang/internal/ir"
)

// lowering numbers the temporaries of one Lower call; each call starts
// a fresh counter at zero, which is enough because temp names only need
// to avoid colliding with user identifiers within one lowering pass.
type lowering struct {
	n int
}

func (l *lowering) temp(prefix string) string {
	l.n++
	return fmt.Sprintf("__%s%d", prefix, l.n)
}

// Lower rewrites every WhileStmt/ForStmt in stmts (recursively, through
// IfStmt branches and LoweredLoop bodies already produced) into
// LoweredLoop nodes. It is idempotent: statements that are already
// LoweredLoop, or contain no loops, pass through unchanged.
func Lower(stmts []ir.Stmt) []ir.Stmt {
	l := &lowering{}
	return l.block(stmts)
}

func (l *lowering) block(stmts []ir.Stmt) []ir.Stmt {
	out := make([]ir.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = l.stmt(s)
	}
	return out
}

func (l *lowering) stmt(s ir.Stmt) ir.Stmt {
	switch n := s.(type) {
	case *ir.IfStmt:
		return &ir.IfStmt{Cond: n.Cond, Then: l.block(n.Then), Else: l.block(n.Else)}
	case *ir.WhileStmt:
		return l.lowerWhile(n)
	case *ir.ForStmt:
		return l.lowerFor(n)
	case *ir.LoweredLoop:
		return &ir.LoweredLoop{
			Init: l.block(n.Init), TestVar: n.TestVar, Test: n.Test,
			Body: l.block(n.Body), Incr: l.block(n.Incr),
		}
	case *ir.SwitchStmt:
		cases := make([]ir.SwitchCase, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = ir.SwitchCase{Values: c.Values, Body: l.block(c.Body)}
		}
		return &ir.SwitchStmt{Subject: n.Subject, Cases: cases, Otherwise: l.block(n.Otherwise)}
	default:
		return s
	}
}

// lowerWhile maps directly onto the canonical form: no init, no incr,
// the original condition as Test.
func (l *lowering) lowerWhile(w *ir.WhileStmt) *ir.LoweredLoop {
	return &ir.LoweredLoop{
		Test: w.Cond,
		Body: l.block(w.Body),
	}
}

// lowerFor implements transformForLoop's counted-range case: the loop
// variable is initialized to the range's start, a hidden temp caches
// the range's end (evaluated once, matching McVM's hoist-the-bound
// behavior so mutating the end expression's free variables inside the
// loop body never changes how many iterations run), the test compares
// the loop variable to that temp (direction decided at runtime by the
// evaluator from the range's step sign, since step is itself a runtime
// value here, not a compile-time constant as in McVM's typed IR), and
// the increment adds the range's step to the loop variable.
func (l *lowering) lowerFor(f *ir.ForStmt) *ir.LoweredLoop {
	rangeExpr, isRange := f.Seq.(*ir.RangeExpr)
	if !isRange {
		// Iterating a plain array or cell expression: desugar into an
		// index-counter loop over 1..numel(seq), selecting column i.
		seqTemp := l.temp("seq")
		idxTemp := l.temp("i")
		endTemp := l.temp("n")
		return &ir.LoweredLoop{
			Init: []ir.Stmt{
				&ir.AssignStmt{Targets: []ir.LValue{{Name: seqTemp}}, Value: f.Seq, Suppress: true},
				&ir.AssignStmt{Targets: []ir.LValue{{Name: endTemp}}, Value: &ir.CallExpr{
					Callee: &ir.Ident{Name: "numel"}, Args: []ir.Expr{&ir.Ident{Name: seqTemp}}, Nargout: 1,
				}, Suppress: true},
				&ir.AssignStmt{Targets: []ir.LValue{{Name: idxTemp}}, Value: &ir.Literal{Value: int64(1)}, Suppress: true},
			},
			TestVar: idxTemp,
			Test: &ir.BinaryExpr{
				Left: &ir.Ident{Name: idxTemp}, Operator: "<=", Right: &ir.Ident{Name: endTemp},
			},
			Body: append([]ir.Stmt{
				&ir.AssignStmt{Targets: []ir.LValue{{Name: f.Var}}, Value: &ir.IndexExpr{
					Object: &ir.Ident{Name: seqTemp},
					Args:   []ir.Expr{&ir.ColonExpr{}, &ir.Ident{Name: idxTemp}},
				}, Suppress: true},
			}, l.block(f.Body)...),
			Incr: []ir.Stmt{
				&ir.AssignStmt{Targets: []ir.LValue{{Name: idxTemp}}, Value: &ir.BinaryExpr{
					Left: &ir.Ident{Name: idxTemp}, Operator: "+", Right: &ir.Literal{Value: int64(1)},
				}, Suppress: true},
			},
		}
	}

	endTemp := l.temp("end")
	stepTemp := l.temp("step")

	return &ir.LoweredLoop{
		Init: []ir.Stmt{
			&ir.AssignStmt{Targets: []ir.LValue{{Name: stepTemp}}, Value: stepOf(rangeExpr), Suppress: true},
			&ir.AssignStmt{Targets: []ir.LValue{{Name: endTemp}}, Value: rangeExpr.End, Suppress: true},
			&ir.AssignStmt{Targets: []ir.LValue{{Name: f.Var}}, Value: rangeExpr.Start, Suppress: true},
		},
		TestVar: f.Var,
		Test: &ir.CallExpr{
			Callee: &ir.Ident{Name: "__loop_test"},
			Args: []ir.Expr{
				&ir.Ident{Name: f.Var}, &ir.Ident{Name: endTemp}, &ir.Ident{Name: stepTemp},
			},
			Nargout: 1,
		},
		Body: l.block(f.Body),
		Incr: []ir.Stmt{
			&ir.AssignStmt{Targets: []ir.LValue{{Name: f.Var}}, Value: &ir.BinaryExpr{
				Left: &ir.Ident{Name: f.Var}, Operator: "+", Right: &ir.Ident{Name: stepTemp},
			}, Suppress: true},
		},
	}
}

func stepOf(r *ir.RangeExpr) ir.Expr {
	if r.Step != nil {
		return r.Step
	}
	return &ir.Literal{Value: int64(1)}
}

package evaluator

import (
	"numlang/internal/array"
	"numlang/internal/environment"
	"numlang/internal/errtag"
	"numlang/internal/ir"
	"numlang/internal/value"
)

// execBlock runs stmts in order, stopping early on the first non-sigNone
// signal or error.
func (e *Evaluator) execBlock(stmts []ir.Stmt, env *environment.Environment) (signalKind, error) {
	for _, s := range stmts {
		sig, err := e.execStmt(s, env)
		if err != nil {
			return sigNone, err
		}
		if sig != sigNone {
			return sig, nil
		}
	}
	return sigNone, nil
}

func (e *Evaluator) execStmt(s ir.Stmt, env *environment.Environment) (signalKind, error) {
	switch n := s.(type) {
	case *ir.AssignStmt:
		return sigNone, e.execAssign(n, env)

	case *ir.ExprStmt:
		// A bare-statement call requests zero outputs (§4.2.5 step 5): a
		// function whose sole output is only conditionally assigned must
		// not raise UnassignedReturn just because nobody is collecting
		// its result.
		vals, err := e.evalExprN(n.Expr, env, 0)
		if err != nil {
			return sigNone, err
		}
		var v value.Value
		if len(vals) > 0 {
			v = vals[0]
		}
		if !n.Suppress && e.Notebook != nil {
			e.Notebook.Record(n.Expr.String(), v)
		}
		e.checkType(n, v)
		return sigNone, nil

	case *ir.IfStmt:
		cond, err := e.evalBoolExpr(n.Cond, env)
		if err != nil {
			return sigNone, err
		}
		if cond {
			return e.execBlock(n.Then, env)
		}
		return e.execBlock(n.Else, env)

	case *ir.LoweredLoop:
		return e.execLoweredLoop(n, env)

	case *ir.WhileStmt, *ir.ForStmt:
		return sigNone, errtag.New(errtag.KindHostError,
			"statement was not lowered before execution: %s", s)

	case *ir.BreakStmt:
		return sigBreak, nil

	case *ir.ContinueStmt:
		return sigContinue, nil

	case *ir.ReturnStmt:
		return sigReturn, nil

	case *ir.GlobalStmt:
		for _, name := range n.Names {
			env.BindGlobal(name)
		}
		return sigNone, nil

	case *ir.SwitchStmt:
		return e.execSwitch(n, env)
	}
	return sigNone, errtag.New(errtag.KindHostError, "unhandled statement type %T", s)
}

// execLoweredLoop runs the canonical 5-tuple form of §4.3/§4.2.7: Init
// once, then Test/Body/Incr until Test is false or a break fires.
// Continue ends the current Body early but still runs Incr.
func (e *Evaluator) execLoweredLoop(n *ir.LoweredLoop, env *environment.Environment) (signalKind, error) {
	if sig, err := e.execBlock(n.Init, env); err != nil || sig != sigNone {
		return sig, err
	}
	for {
		cond, err := e.evalBoolExpr(n.Test, env)
		if err != nil {
			return sigNone, err
		}
		if !cond {
			return sigNone, nil
		}

		sig, err := e.execBlock(n.Body, env)
		if err != nil {
			return sigNone, err
		}
		if sig == sigBreak {
			return sigNone, nil
		}
		if sig == sigReturn {
			return sigReturn, nil
		}
		// sigContinue and sigNone both fall through to Incr.

		if sig, err := e.execBlock(n.Incr, env); err != nil || sig != sigNone {
			return sig, err
		}
	}
}

// execAssign implements §4.2.2: evaluate Value once (requesting
// len(Targets) outputs when Value is a call), then distribute results
// across Targets in order.
func (e *Evaluator) execAssign(n *ir.AssignStmt, env *environment.Environment) error {
	vals, err := e.evalExprN(n.Value, env, len(n.Targets))
	if err != nil {
		return err
	}
	if len(vals) < len(n.Targets) {
		return errtag.New(errtag.KindInsufficientReturns,
			"assignment requests %d value(s) but the right-hand side produced %d", len(n.Targets), len(vals))
	}

	for i, t := range n.Targets {
		if t.Ignore {
			continue
		}
		if err := e.assignOne(t, vals[i], env); err != nil {
			return err
		}
	}

	if !n.Suppress && len(n.Targets) == 1 && e.Notebook != nil {
		e.Notebook.Record(n.Targets[0].Name, vals[0])
	}
	if len(vals) > 0 {
		e.checkType(n, vals[0])
	}
	return nil
}

func (e *Evaluator) assignOne(t ir.LValue, v value.Value, env *environment.Environment) error {
	if len(t.Indices) == 0 {
		if env.IsGlobal(t.Name) {
			env.SetGlobal(t.Name, v)
		} else {
			env.Set(t.Name, v)
		}
		return nil
	}

	rhs, ok := v.(*array.Array)
	if !ok {
		return errtag.New(errtag.KindTypeValidationFailed, "cannot assign a non-array value into %s", t.Name)
	}

	cur, existed := env.Get(t.Name)
	var base *array.Array
	if existed {
		base, ok = cur.(*array.Array)
		if !ok {
			return errtag.New(errtag.KindNotIndexable, "%s is not an indexable array", t.Name)
		}
		base = base.Clone()
	} else {
		base = array.New(array.KindFloat, 0, 0)
	}

	comps, err := e.evalIndexArgs(t.Indices, env)
	if err != nil {
		return err
	}

	if t.Cell {
		return e.assignCell(base, comps, rhs, t.Name, env)
	}

	if err := base.SetSlice(comps, rhs); err != nil {
		return errtag.Wrap(errtag.KindHostError, err).DuringCall(t.Name)
	}
	env.Set(t.Name, base)
	return nil
}

// assignCell implements C{i} = rhs: rhs replaces the boxed cell content
// at the selected position rather than being written through
// SetSlice's scalar-replication path.
func (e *Evaluator) assignCell(base *array.Array, comps []array.Component, rhs *array.Array, name string, env *environment.Environment) error {
	if base.Kind != array.KindCell {
		if base.IsEmpty() {
			newDims := array.ExpandedDims(base.Dims, comps)
			base.Kind = array.KindCell
			base.Dims = newDims
			base.Cells = make([]value.Value, numel(newDims))
			for i := range base.Cells {
				base.Cells[i] = array.EmptyCell()
			}
		} else {
			return errtag.New(errtag.KindKindConversionRefused, "%s is not a cell array", name)
		}
	}
	offsets, err := array.LinearOffsets(base.Dims, comps)
	if err != nil {
		return err
	}
	for _, off := range offsets {
		base.Cells[off] = rhs
	}
	env.Set(name, base)
	return nil
}

// execSwitch implements the supplemented switch statement: case values
// are evaluated eagerly in source order and compared against the
// subject with the element-wise equality of §4.1.9 reduced to "all
// true" (array.ShortCircuitBool); the first match runs, no fallthrough.
func (e *Evaluator) execSwitch(n *ir.SwitchStmt, env *environment.Environment) (signalKind, error) {
	subjectV, err := e.evalExpr(n.Subject, env)
	if err != nil {
		return sigNone, err
	}
	subject, ok := subjectV.(*array.Array)
	if !ok {
		return sigNone, errtag.New(errtag.KindTypeValidationFailed, "switch subject must be an array")
	}

	for _, c := range n.Cases {
		for _, valExpr := range c.Values {
			valV, err := e.evalExpr(valExpr, env)
			if err != nil {
				return sigNone, err
			}
			val, ok := valV.(*array.Array)
			if !ok {
				continue
			}
			eq, err := array.ElementWise(array.OpEq, subject, val)
			if err != nil {
				return sigNone, err
			}
			match, err := eq.ShortCircuitBool()
			if err != nil {
				return sigNone, err
			}
			if match {
				return e.execBlock(c.Body, env)
			}
		}
	}
	return e.execBlock(n.Otherwise, env)
}

func numel(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

package evaluator

import (
	"numlang/internal/array"
	"numlang/internal/environment"
	"numlang/internal/errtag"
	"numlang/internal/funcval"
	"numlang/internal/ir"
	"numlang/internal/rangeval"
	"numlang/internal/value"
)

// evalExpr evaluates e for its single conventional value (nargout=1).
// Multi-value expressions (calls feeding a multi-target assignment) go
// through evalExprN instead.
func (e *Evaluator) evalExpr(expr ir.Expr, env *environment.Environment) (value.Value, error) {
	vals, err := e.evalExprN(expr, env, 1)
	if err != nil {
		return nil, err
	}
	return e.unpack(vals, 1)[0], nil
}

// unpack pads/truncates vals to exactly want entries, used when a call
// returned fewer values than a multi-target assignment needs (the
// shortfall is caught earlier by execAssign; unpack just normalizes the
// single-value case so callers can always index [0]).
func (e *Evaluator) unpack(vals []value.Value, want int) []value.Value {
	if len(vals) >= want {
		return vals
	}
	out := make([]value.Value, want)
	copy(out, vals)
	return out
}

// evalExprN evaluates expr requesting nargout values — only CallExpr
// (and, transitively, Ident resolving to a zero-arg call) can produce
// more than one; every other node always yields exactly one value
// boxed in a length-1 slice.
func (e *Evaluator) evalExprN(expr ir.Expr, env *environment.Environment, nargout int) ([]value.Value, error) {
	switch n := expr.(type) {
	case *ir.Literal:
		return []value.Value{literalToArray(n.Value)}, nil

	case *ir.Ident:
		return e.evalIdent(n, env, nargout)

	case *ir.End:
		return e.evalEnd(n, env)

	case *ir.ColonExpr:
		return []value.Value{rangeval.Full()}, nil

	case *ir.RangeExpr:
		return e.evalRange(n, env)

	case *ir.UnaryExpr:
		v, err := e.evalUnary(n, env)
		return []value.Value{v}, err

	case *ir.BinaryExpr:
		v, err := e.evalBinary(n, env)
		return []value.Value{v}, err

	case *ir.ArrayLit:
		v, err := e.evalArrayLit(n, env)
		return []value.Value{v}, err

	case *ir.CellLit:
		v, err := e.evalCellLit(n, env)
		return []value.Value{v}, err

	case *ir.IndexExpr:
		v, err := e.evalIndexRead(n, env)
		return []value.Value{v}, err

	case *ir.CellIndexExpr:
		v, err := e.evalCellIndexRead(n, env)
		return []value.Value{v}, err

	case *ir.CallExpr:
		return e.evalCall(n, env, nargout)

	case *ir.FieldExpr:
		return nil, errtag.New(errtag.KindHostError, "field access is not yet supported: %s", n)

	case *ir.AnonFunc:
		return []value.Value{&funcval.FunctionHandle{Anon: n, Closure: env.Copy()}}, nil

	case *ir.FuncHandleExpr:
		return []value.Value{&funcval.FunctionHandle{Name: n.Name}}, nil
	}
	return nil, errtag.New(errtag.KindHostError, "unhandled expression type %T", expr)
}

func literalToArray(v interface{}) *array.Array {
	switch x := v.(type) {
	case int64:
		return array.ScalarInt(x)
	case float64:
		return array.ScalarFloat(x)
	case bool:
		return array.ScalarBool(x)
	case complex128:
		return array.ScalarComplex(x)
	case string:
		out := array.New(array.KindChar, 1, len(x))
		for i, r := range []rune(x) {
			out.Chars[i] = r
		}
		return out
	case rune:
		return array.ScalarChar(x)
	}
	return array.EmptyCell()
}

// evalIdent resolves a bare name: a variable first, then a zero-arg
// call to a user function or library function (§4.2.5's "a name with no
// argument list is a call with nargin=0").
func (e *Evaluator) evalIdent(n *ir.Ident, env *environment.Environment, nargout int) ([]value.Value, error) {
	if v, ok := env.Get(n.Name); ok {
		return []value.Value{v}, nil
	}
	return e.dispatch(n.Name, nil, env, nargout)
}

// evalEnd resolves the end-of-range token (§4.2.9): the extent of
// dimension n.DimIndex of the array bound to n.Symbol, folding against
// the flattened tail when n.IsLast names fewer components than the
// array has dimensions.
func (e *Evaluator) evalEnd(n *ir.End, env *environment.Environment) ([]value.Value, error) {
	v, ok := env.Get(n.Symbol)
	if !ok {
		return nil, errtag.New(errtag.KindUnboundEnd, "end used outside of an indexing expression on %q", n.Symbol)
	}
	a, ok := v.(*array.Array)
	if !ok {
		return nil, errtag.New(errtag.KindUnboundEnd, "end used while indexing a non-array value %q", n.Symbol)
	}
	dims := a.Dims
	if n.IsLast && n.NumComps < len(dims) {
		tail := dims[n.DimIndex:]
		total := 1
		for _, d := range tail {
			total *= d
		}
		return []value.Value{array.ScalarFloat(float64(total))}, nil
	}
	d := 1
	if n.DimIndex < len(dims) {
		d = dims[n.DimIndex]
	}
	return []value.Value{array.ScalarFloat(float64(d))}, nil
}

func (e *Evaluator) evalRange(n *ir.RangeExpr, env *environment.Environment) ([]value.Value, error) {
	start, err := e.evalScalarFloat(n.Start, env)
	if err != nil {
		return nil, err
	}
	step := 1.0
	if n.Step != nil {
		step, err = e.evalScalarFloat(n.Step, env)
		if err != nil {
			return nil, err
		}
	}
	end, err := e.evalScalarFloat(n.End, env)
	if err != nil {
		return nil, err
	}
	return []value.Value{rangeval.New(start, step, end)}, nil
}

func (e *Evaluator) evalScalarFloat(expr ir.Expr, env *environment.Environment) (float64, error) {
	v, err := e.evalExpr(expr, env)
	if err != nil {
		return 0, err
	}
	a, ok := v.(*array.Array)
	if !ok || !a.IsScalar() {
		return 0, errtag.New(errtag.KindTypeValidationFailed, "expected a numeric scalar")
	}
	return elemFloatAt(a, 0), nil
}

func elemFloatAt(a *array.Array, i int) float64 {
	switch a.Kind {
	case array.KindFloat:
		return a.Floats[i]
	case array.KindInt:
		return float64(a.Ints[i])
	case array.KindBool:
		if a.Bools[i] {
			return 1
		}
		return 0
	case array.KindChar:
		return float64(a.Chars[i])
	}
	return 0
}

// evalBoolExpr evaluates expr and reduces it to a single bool for
// if/while conditions, per §4.1.9's ShortCircuitBool rule.
func (e *Evaluator) evalBoolExpr(expr ir.Expr, env *environment.Environment) (bool, error) {
	v, err := e.evalExpr(expr, env)
	if err != nil {
		return false, err
	}
	a, ok := v.(*array.Array)
	if !ok {
		return false, errtag.New(errtag.KindTypeValidationFailed, "condition must be an array value")
	}
	return a.ShortCircuitBool()
}

func (e *Evaluator) evalUnary(n *ir.UnaryExpr, env *environment.Environment) (value.Value, error) {
	v, err := e.evalExpr(n.Operand, env)
	if err != nil {
		return nil, err
	}
	a, ok := v.(*array.Array)
	if !ok {
		return nil, errtag.New(errtag.KindTypeValidationFailed, "unary %s expects an array operand", n.Operator)
	}
	switch n.Operator {
	case "-":
		zero := array.New(a.Kind, a.Dims...)
		return array.ElementWise(array.OpSub, zero, a)
	case "+":
		return a, nil
	case "!", "~":
		b, err := array.ElementWise(array.OpEq, a, array.ScalarBool(false))
		return b, err
	}
	return nil, errtag.New(errtag.KindHostError, "unknown unary operator %q", n.Operator)
}

var binOps = map[string]array.BinOp{
	"+": array.OpAdd, ".+": array.OpAdd,
	"-": array.OpSub, ".-": array.OpSub,
	".*": array.OpMul,
	"./": array.OpDiv,
	".^": array.OpPow,
	"<":  array.OpLt, "<=": array.OpLe,
	">": array.OpGt, ">=": array.OpGe,
	"==": array.OpEq, "~=": array.OpNe, "!=": array.OpNe,
	"&": array.OpAnd, "|": array.OpOr,
}

func (e *Evaluator) evalBinary(n *ir.BinaryExpr, env *environment.Environment) (value.Value, error) {
	lv, err := e.evalExpr(n.Left, env)
	if err != nil {
		return nil, err
	}

	// && and || short-circuit on the left operand before the right is
	// ever evaluated (§4.1.9).
	if n.Operator == "&&" || n.Operator == "||" {
		la, ok := lv.(*array.Array)
		if !ok {
			return nil, errtag.New(errtag.KindTypeValidationFailed, "%s expects boolean operands", n.Operator)
		}
		lb, err := la.ShortCircuitBool()
		if err != nil {
			return nil, err
		}
		if n.Operator == "&&" && !lb {
			return array.ScalarBool(false), nil
		}
		if n.Operator == "||" && lb {
			return array.ScalarBool(true), nil
		}
		rv, err := e.evalExpr(n.Right, env)
		if err != nil {
			return nil, err
		}
		ra, ok := rv.(*array.Array)
		if !ok {
			return nil, errtag.New(errtag.KindTypeValidationFailed, "%s expects boolean operands", n.Operator)
		}
		rb, err := ra.ShortCircuitBool()
		return array.ScalarBool(rb), err
	}

	rv, err := e.evalExpr(n.Right, env)
	if err != nil {
		return nil, err
	}
	la, lok := lv.(*array.Array)
	ra, rok := rv.(*array.Array)
	if !lok || !rok {
		return nil, errtag.New(errtag.KindTypeValidationFailed, "operator %s expects array operands", n.Operator)
	}

	switch n.Operator {
	case "*":
		return array.MatMul(la, ra)
	case "/":
		return array.MatRightDivide(la, ra)
	case "\\":
		return array.MatLeftDivide(la, ra)
	case "^":
		if la.IsScalar() && ra.IsScalar() {
			return array.ElementWise(array.OpPow, la, ra)
		}
		return nil, errtag.New(errtag.KindHostError, "matrix power is not implemented")
	}

	op, ok := binOps[n.Operator]
	if !ok {
		return nil, errtag.New(errtag.KindHostError, "unknown binary operator %q", n.Operator)
	}
	return array.ElementWise(op, la, ra)
}

func (e *Evaluator) evalArrayLit(n *ir.ArrayLit, env *environment.Environment) (value.Value, error) {
	rowArrays := make([]*array.Array, len(n.Rows))
	for i, row := range n.Rows {
		cells := make([]*array.Array, len(row))
		for j, expr := range row {
			v, err := e.evalExpr(expr, env)
			if err != nil {
				return nil, err
			}
			a, ok := v.(*array.Array)
			if !ok {
				return nil, errtag.New(errtag.KindTypeValidationFailed, "array literal elements must be arrays")
			}
			cells[j] = a
		}
		if len(cells) == 0 {
			rowArrays[i] = array.New(array.KindFloat, 1, 0)
			continue
		}
		rowResult, err := array.Concat(1, cells...)
		if err != nil {
			return nil, err
		}
		rowArrays[i] = rowResult
	}
	if len(rowArrays) == 0 {
		return array.New(array.KindFloat, 0, 0), nil
	}
	return array.Concat(0, rowArrays...)
}

func (e *Evaluator) evalCellLit(n *ir.CellLit, env *environment.Environment) (value.Value, error) {
	if len(n.Rows) == 0 {
		return array.EmptyCell(), nil
	}
	rows := len(n.Rows)
	cols := len(n.Rows[0])
	out := array.New(array.KindCell, rows, cols)
	for i, row := range n.Rows {
		for j, expr := range row {
			v, err := e.evalExpr(expr, env)
			if err != nil {
				return nil, err
			}
			out.Cells[j*rows+i] = v
		}
	}
	return out, nil
}

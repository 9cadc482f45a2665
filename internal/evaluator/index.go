package evaluator

import (
	"numlang/internal/array"
	"numlang/internal/environment"
	"numlang/internal/errtag"
	"numlang/internal/ir"
	"numlang/internal/rangeval"
	"numlang/internal/value"
)

// evalIndexArgs implements §4.2.4: evaluate each index argument in
// order, converting the result into an array.Component. Any `end` token
// among args already carries its own target symbol/dimension (resolved
// by the front end when the index expression was built), so no extra
// context needs to be threaded in here.
func (e *Evaluator) evalIndexArgs(args []ir.Expr, env *environment.Environment) ([]array.Component, error) {
	comps := make([]array.Component, len(args))
	for i, arg := range args {
		v, err := e.evalExpr(arg, env)
		if err != nil {
			return nil, err
		}
		c, err := toComponent(v)
		if err != nil {
			return nil, err
		}
		comps[i] = c
	}
	return comps, nil
}

func toComponent(v value.Value) (array.Component, error) {
	switch x := v.(type) {
	case rangeval.Range:
		return array.RangeComp(x), nil
	case *array.Array:
		if x.Kind == array.KindBool {
			return array.MaskComp(x.Bools), nil
		}
		vals := make([]int64, x.Numel())
		for i := range vals {
			vals[i] = int64(elemFloatAt(x, i))
		}
		return array.Numeric(vals), nil
	}
	return array.Component{}, errtag.New(errtag.KindInvalidIndex, "value cannot be used as an index")
}

// evalIndexRead implements A(args...) (§4.1.5).
func (e *Evaluator) evalIndexRead(n *ir.IndexExpr, env *environment.Environment) (value.Value, error) {
	objV, err := e.evalExpr(n.Object, env)
	if err != nil {
		return nil, err
	}
	obj, ok := objV.(*array.Array)
	if !ok {
		return nil, errtag.New(errtag.KindNotIndexable, "value is not indexable")
	}

	comps, err := e.evalIndexArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	return obj.Slice(comps)
}

// evalCellIndexRead implements C{args...} (unwraps the selected cell
// content rather than slicing a sub-cell-array).
func (e *Evaluator) evalCellIndexRead(n *ir.CellIndexExpr, env *environment.Environment) (value.Value, error) {
	objV, err := e.evalExpr(n.Object, env)
	if err != nil {
		return nil, err
	}
	obj, ok := objV.(*array.Array)
	if !ok || obj.Kind != array.KindCell {
		return nil, errtag.New(errtag.KindNotIndexable, "{} indexing requires a cell array")
	}

	comps, err := e.evalIndexArgs(n.Args, env)
	if err != nil {
		return nil, err
	}
	offsets, err := array.LinearOffsets(obj.Dims, comps)
	if err != nil {
		return nil, err
	}
	if len(offsets) != 1 {
		return nil, errtag.New(errtag.KindInvalidIndex, "cell-content indexing in an expression context must select exactly one element")
	}
	return obj.Cells[offsets[0]], nil
}

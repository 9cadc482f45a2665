package evaluator

import (
	"numlang/internal/array"
	"numlang/internal/environment"
	"numlang/internal/errtag"
	"numlang/internal/funcval"
	"numlang/internal/ir"
	"numlang/internal/value"
)

// evalCall implements the full call protocol of §4.2.5: Callee must be
// an Ident (or, via a handle variable, resolve to one at runtime); args
// are evaluated left to right before the callee is resolved, matching
// the evaluation order a breadcrumb trail needs to stay meaningful.
func (e *Evaluator) evalCall(n *ir.CallExpr, env *environment.Environment, nargout int) ([]value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	name, ok := n.Callee.(*ir.Ident)
	if !ok {
		// The callee is some other expression — it must evaluate to a
		// function handle value, which is then invoked directly.
		calleeV, err := e.evalExpr(n.Callee, env)
		if err != nil {
			return nil, err
		}
		return e.invokeHandle(calleeV, args, env)
	}

	// A variable bound to a function handle shadows a same-named
	// registry/user function, matching MATLAB's variable-before-function
	// precedence.
	if v, ok := env.Get(name.Name); ok {
		if h, ok := v.(*funcval.FunctionHandle); ok {
			return e.invokeHandle(h, args, env)
		}
		// A nested function bound into this call's frame (§6.2).
		if uf, ok := v.(*funcval.UserFunction); ok {
			return e.CallUser(uf, args, nargout, env)
		}
		// A plain array bound to this name being "called" is actually an
		// index read that the front end could not disambiguate earlier.
		if a, ok := v.(*array.Array); ok {
			comps, err := indexArgsToComponents(args)
			if err != nil {
				return nil, err
			}
			sliced, err := a.Slice(comps)
			if err != nil {
				return nil, err
			}
			return []value.Value{sliced}, nil
		}
	}

	return e.dispatch(name.Name, args, env, nargout)
}

func indexArgsToComponents(args []value.Value) ([]array.Component, error) {
	out := make([]array.Component, len(args))
	for i, a := range args {
		c, err := toComponent(a)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// dispatch resolves name against: the library registry (§4.4), then,
// for a name the registry lacks, a user function loaded by the
// resolver (§4.2.8), raising KindUnknownSymbol if neither has it.
func (e *Evaluator) dispatch(name string, args []value.Value, env *environment.Environment, nargout int) ([]value.Value, error) {
	if _, isLib := e.Registry.Lookup(name); !isLib && e.Resolver != nil {
		if def, ok, err := e.Resolver.Resolve(name); err != nil {
			return nil, errtag.Wrap(errtag.KindHostError, err).DuringCall(name)
		} else if ok {
			fn := &funcval.UserFunction{Def: def}
			return e.CallUser(fn, args, nargout, env)
		}
	}

	if entry, ok := e.Registry.Lookup(name); ok {
		want := nargout
		if want < 1 {
			want = 1
		}
		out, err := entry.Handler(args, want)
		if err != nil {
			return nil, errtag.Wrap(errtag.KindHostError, err).DuringCall(name)
		}
		return out, nil
	}

	return nil, errtag.New(errtag.KindUnknownSymbol, "unknown function or variable %q", name)
}

// invokeHandle calls a value known to be (or required to be) a
// function handle.
func (e *Evaluator) invokeHandle(v value.Value, args []value.Value, env *environment.Environment) ([]value.Value, error) {
	h, ok := v.(*funcval.FunctionHandle)
	if !ok {
		return nil, errtag.New(errtag.KindNotCallable, "value is not callable")
	}
	if h.IsAnonymous() {
		return e.CallAnon(h, args)
	}
	return e.dispatch(h.Name, args, env, 1)
}

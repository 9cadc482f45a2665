package evaluator

import (
	"numlang/internal/array"
	"numlang/internal/config"
	"numlang/internal/diag"
	"numlang/internal/environment"
	"numlang/internal/errtag"
	"numlang/internal/funcval"
	"numlang/internal/ir"
	"numlang/internal/jit"
	"numlang/internal/registry"
	"numlang/internal/value"
)

// Resolver is the deferred-load collaborator of §4.2.8: given a bare
// name that did not resolve as a variable or a registered library
// function, it searches the configured search path for a matching
// source file and returns the Definition it loads (singleflight-backed
// so concurrent lookups of the same name only load once — see
// internal/module, which implements this interface).
type Resolver interface {
	Resolve(name string) (*ir.Definition, bool, error)
}

// Evaluator walks a Definition's statements against an Environment. One
// Evaluator is shared across an entire program run; each call gets its
// own Environment frame.
type Evaluator struct {
	Registry *registry.Registry
	Resolver Resolver
	Notebook *diag.Notebook
	Cfg      config.Config

	// profiler is only populated when Cfg.JITEnable is set; CallUser
	// consults it to record call counts for §6.5's jit_enable knob. No
	// native backend exists yet, so a threshold crossing today only
	// shows up in Notebook diagnostics, not in a changed execution path.
	profiler *jit.Profiler

	// Oracle is the external type-inference collaborator validate_types
	// cross-checks against (§6.5); nil unless a host wires one in.
	Oracle TypeOracle

	// Print and Println are the standard-stream callbacks of §6.4: the
	// core never writes to stdout itself, so these start as no-ops and
	// a host (cmd/numlang, internal/repl) overwrites them to reach an
	// actual stream.
	Print   func(text string)
	Println func(text string)

	validationHits map[ir.Stmt]int
}

// New builds an Evaluator wired to the standard library registry and
// the given resolver.
func New(cfg config.Config, resolver Resolver) *Evaluator {
	e := &Evaluator{
		Registry: registry.StandardLibrary(),
		Resolver: resolver,
		Cfg:      cfg,
		Print:    noopPrint,
		Println:  noopPrint,
	}
	if cfg.Verbose || cfg.ProfileTypeInfer || cfg.ValidateTypes {
		e.Notebook = diag.New()
	}
	if cfg.JITEnable {
		e.profiler = jit.NewProfiler()
	}
	e.registerIO()
	return e
}

// RunScript executes a script Definition's body directly in env (no new
// call frame — a script shares the caller's scope, matching MATLAB
// script semantics).
func (e *Evaluator) RunScript(def *ir.Definition, env *environment.Environment) error {
	if !def.IsScript {
		return errtag.New(errtag.KindHostError, "RunScript called on a function definition %q", def.Name)
	}
	_, err := e.execBlock(def.Body, env)
	return err
}

// CallUser implements the user-function call protocol of §4.2.5: binds
// args positionally to def.In (too many is an error, too few leaves
// trailing params unbound), runs the body in a fresh child of the
// process root (never the caller's frame — §3.4), and on return/fall-
// through reads nargout values back out of def.Out in order. An output
// parameter left unassigned when it is actually requested raises
// KindUnassignedReturn.
func (e *Evaluator) CallUser(fn *funcval.UserFunction, args []value.Value, nargout int, root *environment.Environment) ([]value.Value, error) {
	def := fn.Def
	if len(args) > len(def.In) {
		return nil, errtag.New(errtag.KindTooManyInputs,
			"%s accepts at most %d input argument(s), got %d", def.Name, len(def.In), len(args))
	}
	if nargout > len(def.Out) {
		return nil, errtag.New(errtag.KindTooManyOutputs,
			"%s returns at most %d output(s), requested %d", def.Name, len(def.Out), nargout)
	}

	if e.profiler != nil {
		if crossed, tier := e.profiler.RecordCall(def); crossed && e.Notebook != nil {
			e.Notebook.Record(def.Name+" crossed JIT tier threshold", tier)
		}
	}

	frame := root.Global().Extend()
	for i, v := range args {
		frame.Set(def.In[i], v)
	}
	// §6.2: a file's subsequent definitions are visible only to the
	// primary and its siblings — approximated here by binding each
	// nested Definition as a callable in the primary's own call frame.
	for _, nested := range def.Nested {
		frame.Set(nested.Name, &funcval.UserFunction{Def: nested})
	}
	frame.Set("nargin", array.ScalarFloat(float64(len(args))))
	frame.Set("nargout", array.ScalarFloat(float64(nargout)))

	sig, err := e.execBlock(def.Body, frame)
	if err != nil {
		return nil, errtag.Wrap(errtag.KindHostError, err).DuringCall(def.Name)
	}
	// return/fall-through both reach here; a break/continue that no loop
	// in the body caught is a structural error.
	if sig == sigBreak || sig == sigContinue {
		return nil, errtag.New(errtag.KindParseError, "break/continue outside a loop").DuringCall(def.Name)
	}

	// Effective output count is max(1, min(nargout, declared_out_count));
	// nargout is already <= len(def.Out) from the TooManyOutputs check
	// above, so this is just the max(1, ...) half of that rule.
	want := nargout
	if want < 1 {
		want = 1
	}
	out := make([]value.Value, 0, want)
	for i := 0; i < want; i++ {
		if i >= len(def.Out) {
			break
		}
		v, ok := frame.GetLocal(def.Out[i])
		if !ok {
			if nargout > 0 {
				return nil, errtag.New(errtag.KindUnassignedReturn,
					"%s: output %q was never assigned", def.Name, def.Out[i]).DuringCall(def.Name)
			}
			break
		}
		out = append(out, v)
	}
	return out, nil
}

// CallAnon implements an anonymous function-handle call: its single
// body expression is evaluated in a child of the captured closure
// environment with the call's args bound to the handle's declared
// params, positionally (§3.4).
func (e *Evaluator) CallAnon(h *funcval.FunctionHandle, args []value.Value) ([]value.Value, error) {
	if len(args) > len(h.Anon.Params) {
		return nil, errtag.New(errtag.KindTooManyInputs,
			"anonymous function accepts at most %d input argument(s), got %d", len(h.Anon.Params), len(args))
	}
	frame := h.Closure.Extend()
	for i, v := range args {
		frame.Set(h.Anon.Params[i], v)
	}
	v, err := e.evalExpr(h.Anon.Body, frame)
	if err != nil {
		return nil, err
	}
	return []value.Value{v}, nil
}

// Package funcval holds the two callable Value kinds (§3.1, §6.1). It
// is split out of internal/value specifically so value itself stays a
// leaf package: funcval imports ir and environment, and nothing
// downstream needs to import funcval back.
package funcval

import (
	"fmt"

	"numlang/internal/environment"
	"numlang/internal/ir"
)

// UserFunction is a named function defined by a Definition loaded from
// a source file (§4.2.8). It never carries a captured environment — a
// user function's body always runs in a fresh child of the process
// root, per §3.4.
type UserFunction struct {
	Def *ir.Definition
}

func (f *UserFunction) String() string { return fmt.Sprintf("@%s", f.Def.Name) }

// Nargin/Nargout report the function's declared parameter counts. The
// evaluator's call protocol (§4.2.5) reads len(Def.In)/len(Def.Out)
// itself, and the nargin/nargout variables a running body sees hold the
// call's actual counts, not these.
func (f *UserFunction) Nargin() int  { return len(f.Def.In) }
func (f *UserFunction) Nargout() int { return len(f.Def.Out) }

// FunctionHandle is a first-class reference to a callable: either a
// named function (captured by name, resolved at call time so
// redefinition is visible, matching MATLAB's @name semantics) or an
// anonymous function literal, which captures its defining Environment
// by value at creation time (§3.4).
type FunctionHandle struct {
	Name    string               // set for @name handles; empty for anonymous
	Anon    *ir.AnonFunc         // set for anonymous handles; nil for named
	Closure *environment.Environment // captured scope, only meaningful when Anon != nil
}

func (h *FunctionHandle) String() string {
	if h.Anon != nil {
		return h.Anon.String()
	}
	return "@" + h.Name
}

// IsAnonymous reports whether this handle wraps an inline lambda rather
// than a named function reference.
func (h *FunctionHandle) IsAnonymous() bool { return h.Anon != nil }

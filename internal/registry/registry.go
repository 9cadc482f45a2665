// Package registry implements the library-function table of spec §4.4
// and §6.3: a flat (name, handler, type-hint) record set the evaluator
// consults whenever a called name is not bound in the environment,
// before it tries the module resolver. It is grounded on the teacher's module builtin-function
// maps (internal/module/module.go's per-module function tables), here
// flattened into one process-wide registry rather than split per
// builtin module, since spec §4.4 has no module-namespacing concept —
// only a deferred-load search path for user-authored functions.
package registry

import "numlang/internal/value"

// Handler is a library function's Go implementation. args and the
// returned slice are both in call order; nargout tells the handler how
// many outputs the call site actually wants, mirroring a user
// function's nargout (§4.2.5) — a handler that ignores it must still
// return at least 1 value.
type Handler func(args []value.Value, nargout int) ([]value.Value, error)

// TypeHint loosely constrains a builtin's argument/return shape for the
// evaluator's diagnostic type-inference pass (§6.5's profile_type_infer),
// not enforced at call time.
type TypeHint struct {
	Name    string
	ArgKinds []string // e.g. "numeric", "any", "cell"
	Variadic bool
}

// Entry is one registered library function.
type Entry struct {
	Name    string
	Handler Handler
	Hint    TypeHint
}

// Registry is the flat table consulted by calls that are not user
// functions (§4.4). It is safe for concurrent reads once built; writes
// (Register) are expected only during startup.
type Registry struct {
	entries map[string]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds or replaces a library function by name.
func (r *Registry) Register(name string, h Handler, hint TypeHint) {
	hint.Name = name
	r.entries[name] = Entry{Name: name, Handler: h, Hint: hint}
}

// Lookup returns the entry for name, if any.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names lists every registered function name, for introspection
// builtins and diagnostics.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.entries))
	for n := range r.entries {
		out = append(out, n)
	}
	return out
}

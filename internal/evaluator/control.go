// Package evaluator implements the tree-walking evaluator of spec §4.2:
// the component that actually runs a loaded Definition's statements
// against an Environment, dispatching calls through the registry and
// the module resolver, and reporting failures as errtag.RuntimeError
// chains.
package evaluator

// signalKind distinguishes the three non-local transfers of §4.2.6 from
// an ordinary error. The evaluator never routes these through
// errtag.RuntimeError — they carry no error semantics at all and must
// never reach a user-visible diagnostic. A function's `return` is
// resolved by reading its declared Out names back out of the call
// frame's environment once the signal unwinds to the call boundary, so
// the signal itself carries no payload.
type signalKind int

const (
	sigNone signalKind = iota
	sigBreak
	sigContinue
	sigReturn
)

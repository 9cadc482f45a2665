// Package config holds the interpreter's runtime knobs (§6.5):
// verbosity, the JIT opt-in, and the module search path. It is plain
// data consumed by cmd/numlang's flag parsing and by the evaluator/
// module-resolver/jit packages — no third-party config/flag library is
// warranted here since the teacher itself parses flags by hand in
// internal/commands (see DESIGN.md's stdlib-justification entry).
package config

// Config is the full set of knobs a single interpreter instance reads.
type Config struct {
	// ValidateTypes cross-checks an external type-inference oracle's
	// per-statement predictions against runtime types (§6.5), capped at
	// 128 hits per statement. No oracle ships with the core — wiring
	// evaluator.Evaluator.Oracle is left to the host, matching jit_enable's
	// external-collaborator shape.
	ValidateTypes bool

	// Verbose turns on the kr/pretty-backed diagnostic notebook (§2.1).
	Verbose bool

	// ProfileTypeInfer enables the per-statement type-inference tally
	// of §6.5, surfaced through internal/diag.
	ProfileTypeInfer bool

	// JITEnable opts into the external JIT collaborator (§6.5): the
	// evaluator counts calls per user function and notes tier-threshold
	// crossings in the diagnostic notebook. It still runs every statement
	// itself; no other backend takes over execution.
	JITEnable bool

	// SearchPath lists directories the module resolver scans for
	// deferred-loaded function/script files (§4.2.8), in order.
	SearchPath []string
}

// Default returns the zero-knobs configuration: quiet, no profiling, no
// JIT, searching only the working directory.
func Default() Config {
	return Config{SearchPath: []string{"."}}
}

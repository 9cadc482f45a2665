package evaluator

import (
	"numlang/internal/array"
	"numlang/internal/ir"
)

// validateCap is the per-statement hit limit of §6.5 — once a given
// statement has been checked this many times (e.g. inside a hot loop),
// further iterations skip the oracle call entirely.
const validateCap = 128

// TypeOracle is the external type-inference collaborator of §6.5's
// validate_types knob (named, like jit_enable's JIT, but never
// implemented inside the core — a host wires a real static analysis
// pass in if it wants one). Predict returns the kinds the oracle
// believes stmt's expression can produce.
type TypeOracle interface {
	Predict(stmt ir.Stmt) (kinds []string, ok bool)
}

// checkType runs one validate_types/profile_type_infer observation for
// stmt against its just-computed result, respecting the 128-hit cap.
// With Cfg.ValidateTypes it cross-checks Oracle's prediction (a miss is
// recorded as a note, not an error — §6.5 never fails a run over this);
// with Cfg.ProfileTypeInfer it simply tallies the observed kind.
func (e *Evaluator) checkType(stmt ir.Stmt, result interface{}) {
	if e.Notebook == nil || (!e.Cfg.ValidateTypes && !e.Cfg.ProfileTypeInfer) {
		return
	}
	if e.validationHits == nil {
		e.validationHits = make(map[ir.Stmt]int)
	}
	if e.validationHits[stmt] >= validateCap {
		return
	}
	e.validationHits[stmt]++

	kind := kindOf(result)
	if e.Cfg.ProfileTypeInfer {
		e.Notebook.RecordType(stmt.String(), kind)
	}
	if e.Cfg.ValidateTypes && e.Oracle != nil {
		if predicted, ok := e.Oracle.Predict(stmt); ok && !contains(predicted, kind) {
			e.Notebook.Record(stmt.String()+" type mismatch: oracle predicted "+joinKinds(predicted)+", observed "+kind, result)
		}
	}
}

func kindOf(v interface{}) string {
	if a, ok := v.(*array.Array); ok {
		switch a.Kind {
		case array.KindBool:
			return "bool"
		case array.KindInt:
			return "int"
		case array.KindFloat:
			return "float"
		case array.KindComplex:
			return "complex"
		case array.KindChar:
			return "char"
		case array.KindCell:
			return "cell"
		}
	}
	return "unknown"
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func joinKinds(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}

package ir

// Definition is the unit the module resolver loads (§4.2.8, §6.1): a
// file supplies either a script (a bare statement sequence, IsScript
// true, In/Out/Name all empty) or one or more function definitions,
// each with its own in/out parameter lists and a list of nested
// function Definitions that share the enclosing file's scope at parse
// time but not at call time (§3.4: nested functions get a fresh child
// environment per call, not a shared closure, unless built via AnonFunc).
type Definition struct {
	Name     string
	In       []string
	Out      []string
	Body     []Stmt
	Nested   []*Definition
	IsScript bool
	Closure  bool // true for AnonFunc-backed definitions, which do capture
}

// MainBody returns the statements to run when loading this definition
// as a script, or nil if it is a function definition.
func (d *Definition) MainBody() []Stmt {
	if !d.IsScript {
		return nil
	}
	return d.Body
}

package ir

// Stmt is any statement node.
type Stmt interface {
	Accept(v StmtVisitor) interface{}
	String() string
}

// LValue is one assignment target: a bare variable, or a variable with
// an index/cell-index suffix (§4.2.2). Multiple LValues on one Assign
// model `[a, b] = f()`.
type LValue struct {
	Name    string
	Indices []Expr // nil for a plain variable target
	Cell    bool   // true for Name{Indices...} = rhs
	Ignore  bool   // true for `~` in a multi-target list
}

// AssignStmt implements §4.2.2: evaluate Value once, then distribute
// its result (a single value, or a Tuple when len(Targets) > 1) across
// Targets in order. Suppress mirrors the trailing `;` that silences
// auto-echo.
type AssignStmt struct {
	Targets  []LValue
	Value    Expr
	Suppress bool
}

func (a *AssignStmt) Accept(v StmtVisitor) interface{} { return v.VisitAssign(a) }

// ExprStmt is a bare expression used for its side effect (and, unless
// Suppress is set, echoed to the diagnostic stream — §6.5's ans
// convention).
type ExprStmt struct {
	Expr     Expr
	Suppress bool
}

func (e *ExprStmt) Accept(v StmtVisitor) interface{} { return v.VisitExprStmt(e) }

// IfStmt supports an arbitrary elseif chain via nested Else blocks, the
// way the front end flattens `elseif` into a singleton Else containing
// another IfStmt.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (i *IfStmt) Accept(v StmtVisitor) interface{} { return v.VisitIf(i) }

// WhileStmt is the front end's pre-lowering while loop; looplower
// rewrites it into the canonical 5-tuple form before the evaluator ever
// sees it (§4.3).
type WhileStmt struct {
	Cond Expr
	Body []Stmt
}

func (w *WhileStmt) Accept(v StmtVisitor) interface{} { return v.VisitWhile(w) }

// ForStmt is the front end's pre-lowering counted for loop: for Var =
// Range { Body }. looplower rewrites it into the canonical form.
type ForStmt struct {
	Var  string
	Seq  Expr // a RangeExpr, ColonExpr, or any array-valued expression
	Body []Stmt
}

func (f *ForStmt) Accept(v StmtVisitor) interface{} { return v.VisitFor(f) }

// LoweredLoop is the canonical 5-tuple loop form produced by looplower
// (§4.3), grounded on McVM's transformForLoop: Init runs once, then Test
// is checked before each iteration (using TestVar and the comparison
// fixed by the step's sign), Body executes, then Incr, then Test again.
type LoweredLoop struct {
	Init    []Stmt
	TestVar string
	Test    Expr
	Body    []Stmt
	Incr    []Stmt
}

func (l *LoweredLoop) Accept(v StmtVisitor) interface{} { return v.VisitLoweredLoop(l) }

// BreakStmt / ContinueStmt / ReturnStmt are non-local transfers (§4.2.6):
// the evaluator propagates them through a dedicated control-flow signal,
// never through the error channel.
type BreakStmt struct{}

func (b *BreakStmt) Accept(v StmtVisitor) interface{} { return v.VisitBreak(b) }

type ContinueStmt struct{}

func (c *ContinueStmt) Accept(v StmtVisitor) interface{} { return v.VisitContinue(c) }

type ReturnStmt struct{}

func (r *ReturnStmt) Accept(v StmtVisitor) interface{} { return v.VisitReturn(r) }

// GlobalStmt declares Names as bound in the root environment for the
// remainder of the current function body (§3.4).
type GlobalStmt struct {
	Names []string
}

func (g *GlobalStmt) Accept(v StmtVisitor) interface{} { return v.VisitGlobal(g) }

// SwitchCase is one `case` arm: Values are evaluated eagerly in order and
// compared against Subject with element-wise equality reduced to "all
// true" (§4.1.9); the first match runs Body, and no case falls through
// into the next.
type SwitchCase struct {
	Values []Expr
	Body   []Stmt
}

// SwitchStmt is the supplemented switch statement (original_source's
// switchstmt.cpp): Otherwise runs when no case matches, mirroring
// `otherwise`.
type SwitchStmt struct {
	Subject   Expr
	Cases     []SwitchCase
	Otherwise []Stmt
}

func (s *SwitchStmt) Accept(v StmtVisitor) interface{} { return v.VisitSwitch(s) }

// StmtVisitor dispatches over every Stmt node.
type StmtVisitor interface {
	VisitAssign(s *AssignStmt) interface{}
	VisitExprStmt(s *ExprStmt) interface{}
	VisitIf(s *IfStmt) interface{}
	VisitWhile(s *WhileStmt) interface{}
	VisitFor(s *ForStmt) interface{}
	VisitLoweredLoop(s *LoweredLoop) interface{}
	VisitBreak(s *BreakStmt) interface{}
	VisitContinue(s *ContinueStmt) interface{}
	VisitReturn(s *ReturnStmt) interface{}
	VisitGlobal(s *GlobalStmt) interface{}
	VisitSwitch(s *SwitchStmt) interface{}
}

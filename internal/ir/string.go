package ir

import (
	"fmt"
	"strings"
)

// String reconstructs approximate source text for each node — used by
// errtag's breadcrumbs (fmt.Stringer) and by the evaluator's verbose
// diagnostics, not as a faithful pretty-printer (see internal/formatter
// for that).

func (l *Literal) String() string { return fmt.Sprintf("%v", l.Value) }
func (i *Ident) String() string   { return i.Name }

func (e *End) String() string { return "end" }

func (r *RangeExpr) String() string {
	if r.Step != nil {
		return fmt.Sprintf("%s:%s:%s", r.Start, r.Step, r.End)
	}
	return fmt.Sprintf("%s:%s", r.Start, r.End)
}

func (c *ColonExpr) String() string { return ":" }

func (u *UnaryExpr) String() string {
	return fmt.Sprintf("%s%s", u.Operator, u.Operand)
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", b.Left, b.Operator, b.Right)
}

func exprListString(rows [][]Expr) string {
	rowStrs := make([]string, len(rows))
	for i, row := range rows {
		parts := make([]string, len(row))
		for j, e := range row {
			parts[j] = e.String()
		}
		rowStrs[i] = strings.Join(parts, " ")
	}
	return strings.Join(rowStrs, "; ")
}

func (a *ArrayLit) String() string { return "[" + exprListString(a.Rows) + "]" }
func (c *CellLit) String() string  { return "{" + exprListString(c.Rows) + "}" }

func argListString(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

func (i *IndexExpr) String() string {
	return fmt.Sprintf("%s(%s)", i.Object, argListString(i.Args))
}

func (c *CellIndexExpr) String() string {
	return fmt.Sprintf("%s{%s}", c.Object, argListString(c.Args))
}

func (c *CallExpr) String() string {
	return fmt.Sprintf("%s(%s)", c.Callee, argListString(c.Args))
}

func (f *FieldExpr) String() string {
	return fmt.Sprintf("%s.%s", f.Object, f.Field)
}

func (a *AnonFunc) String() string {
	return fmt.Sprintf("@(%s) %s", strings.Join(a.Params, ", "), a.Body)
}

func (f *FuncHandleExpr) String() string { return "@" + f.Name }

func lvalueString(lv LValue) string {
	if lv.Ignore {
		return "~"
	}
	if len(lv.Indices) == 0 {
		return lv.Name
	}
	open, shut := "(", ")"
	if lv.Cell {
		open, shut = "{", "}"
	}
	return fmt.Sprintf("%s%s%s%s", lv.Name, open, argListString(lv.Indices), shut)
}

func (a *AssignStmt) String() string {
	if len(a.Targets) == 1 {
		return fmt.Sprintf("%s = %s", lvalueString(a.Targets[0]), a.Value)
	}
	parts := make([]string, len(a.Targets))
	for i, t := range a.Targets {
		parts[i] = lvalueString(t)
	}
	return fmt.Sprintf("[%s] = %s", strings.Join(parts, ", "), a.Value)
}

func (e *ExprStmt) String() string { return e.Expr.String() }

func (i *IfStmt) String() string { return fmt.Sprintf("if %s ... end", i.Cond) }

func (w *WhileStmt) String() string { return fmt.Sprintf("while %s ... end", w.Cond) }

func (f *ForStmt) String() string { return fmt.Sprintf("for %s = %s ... end", f.Var, f.Seq) }

func (l *LoweredLoop) String() string { return fmt.Sprintf("for (lowered, test var %s) ... end", l.TestVar) }

func (b *BreakStmt) String() string    { return "break" }
func (c *ContinueStmt) String() string { return "continue" }
func (r *ReturnStmt) String() string   { return "return" }

func (g *GlobalStmt) String() string {
	return "global " + strings.Join(g.Names, " ")
}

func (s *SwitchStmt) String() string { return fmt.Sprintf("switch %s ... end", s.Subject) }

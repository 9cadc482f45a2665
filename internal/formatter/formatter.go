// Package formatter pretty-prints an internal/ir.Definition back into
// MATLAB-family source, used by the `numlang fmt` CLI command. Adapted from the teacher's internal/formatter/formatter.go
// (same strings.Builder/indent-counter shape, same walk-and-emit
// structure), retargeted from Sentra's brace-delimited parser.Stmt tree
// onto this language's end-delimited internal/ir tree.
//
// Formatter is the one place in this module that implements
// ir.StmtVisitor: the evaluator itself uses plain type switches (see
// internal/evaluator's package doc), but a full pretty-printer is
// exactly the dispatch-over-every-statement-kind shape the visitor
// interface was written for, so it is exercised here instead of left
// unused. Expression content reuses each ir.Expr's own String() rather
// than a parallel ir.ExprVisitor walk, since every expression already
// renders on one line and a visitor would only reassemble the same
// string through more machinery.
package formatter

import (
	"strings"

	"github.com/kr/text"

	"numlang/internal/ir"
)

// Formatter accumulates formatted source into an internal builder.
type Formatter struct {
	depth  int
	output strings.Builder
}

// New creates a Formatter ready to format one or more Definitions.
func New() *Formatter {
	return &Formatter{}
}

// Format renders def as source text: a function as `function ... end`
// (a script gets no header, only its statements), one statement per line, indented by kr/text per nesting
// level the way the teacher's Formatter used its own fixed 4-space
// indentStr.
func (f *Formatter) Format(def *ir.Definition) string {
	f.output.Reset()
	f.depth = 0

	if def.IsScript {
		f.block(def.Body)
		return f.output.String()
	}
	f.writeFunctionHeader(def)
	f.depth++
	f.block(def.Body)
	f.depth--
	f.writeLine("end")
	for _, nested := range def.Nested {
		f.output.WriteString("\n")
		f.writeFunctionHeader(nested)
		f.depth++
		f.block(nested.Body)
		f.depth--
		f.writeLine("end")
	}
	return f.output.String()
}

func (f *Formatter) writeFunctionHeader(def *ir.Definition) string {
	var sig strings.Builder
	sig.WriteString("function ")
	if len(def.Out) == 1 {
		sig.WriteString(def.Out[0] + " = ")
	} else if len(def.Out) > 1 {
		sig.WriteString("[" + strings.Join(def.Out, ", ") + "] = ")
	}
	sig.WriteString(def.Name)
	sig.WriteString("(" + strings.Join(def.In, ", ") + ")")
	f.writeLine(sig.String())
	return sig.String()
}

func (f *Formatter) block(stmts []ir.Stmt) {
	for _, s := range stmts {
		f.stmt(s)
	}
}

func (f *Formatter) writeLine(s string) {
	indented := text.Indent(s, strings.Repeat("  ", f.depth))
	f.output.WriteString(indented)
	f.output.WriteString("\n")
}

func (f *Formatter) stmt(s ir.Stmt) {
	s.Accept(f)
}

func (f *Formatter) VisitAssign(s *ir.AssignStmt) interface{} {
	line := s.String()
	if s.Suppress {
		line += ";"
	}
	f.writeLine(line)
	return nil
}

func (f *Formatter) VisitExprStmt(s *ir.ExprStmt) interface{} {
	line := s.Expr.String()
	if s.Suppress {
		line += ";"
	}
	f.writeLine(line)
	return nil
}

func (f *Formatter) VisitIf(s *ir.IfStmt) interface{} {
	f.writeLine("if " + s.Cond.String())
	f.depth++
	f.block(s.Then)
	f.depth--
	if len(s.Else) > 0 {
		f.writeLine("else")
		f.depth++
		f.block(s.Else)
		f.depth--
	}
	f.writeLine("end")
	return nil
}

func (f *Formatter) VisitWhile(s *ir.WhileStmt) interface{} {
	f.writeLine("while " + s.Cond.String())
	f.depth++
	f.block(s.Body)
	f.depth--
	f.writeLine("end")
	return nil
}

func (f *Formatter) VisitFor(s *ir.ForStmt) interface{} {
	f.writeLine("for " + s.Var + " = " + s.Seq.String())
	f.depth++
	f.block(s.Body)
	f.depth--
	f.writeLine("end")
	return nil
}

// VisitLoweredLoop renders a post-lowering loop as `while <Test>` over
// its body, since a lowered Definition has no surviving pre-lowering
// node to format from; the loop's Init and Incr statements are not
// written out.
func (f *Formatter) VisitLoweredLoop(s *ir.LoweredLoop) interface{} {
	f.writeLine("while " + s.Test.String())
	f.depth++
	f.block(s.Body)
	f.depth--
	f.writeLine("end")
	return nil
}

func (f *Formatter) VisitBreak(s *ir.BreakStmt) interface{}       { f.writeLine("break"); return nil }
func (f *Formatter) VisitContinue(s *ir.ContinueStmt) interface{} { f.writeLine("continue"); return nil }
func (f *Formatter) VisitReturn(s *ir.ReturnStmt) interface{}     { f.writeLine("return"); return nil }

func (f *Formatter) VisitGlobal(s *ir.GlobalStmt) interface{} {
	f.writeLine("global " + strings.Join(s.Names, " "))
	return nil
}

func (f *Formatter) VisitSwitch(s *ir.SwitchStmt) interface{} {
	f.writeLine("switch " + s.Subject.String())
	for _, c := range s.Cases {
		parts := make([]string, len(c.Values))
		for i, v := range c.Values {
			parts[i] = v.String()
		}
		f.writeLine("case " + strings.Join(parts, ", "))
		f.depth++
		f.block(c.Body)
		f.depth--
	}
	if len(s.Otherwise) > 0 {
		f.writeLine("otherwise")
		f.depth++
		f.block(s.Otherwise)
		f.depth--
	}
	f.writeLine("end")
	return nil
}

// Package parser is the concrete implementation of the external "parser
// producing the IR" collaborator the core spec treats as out of scope
// (§1, §6.1) — it is the one piece of plumbing needed to actually drive
// the evaluator end to end from source text, so cmd/numlang and
// internal/module.Loader have something real to call. It is grounded on
// the teacher's own internal/parser/parser.go: the same single-token-
// lookahead recursive-descent shape (match/check/consume/advance/peek
// helpers, a precedence-climbing expression parser, panic-based error
// signaling recovered at the top of Parse), retargeted from the
// teacher's fn/let/if/while/for grammar emitting its own ast.Stmt/Expr
// tree to the MATLAB-family function/if/while/for/switch grammar
// emitting internal/ir nodes directly.
package parser

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"numlang/internal/errtag"
	"numlang/internal/ir"
	"numlang/internal/lexer"
)

// Parse implements the numlang/internal/module.Parser contract: turn
// source text into one Definition. path is used only to derive a
// script's name (a function file's name instead comes from its
// `function ... name(...)` header, matching MATLAB's one-name-per-file
// convention).
func Parse(source, path string) (def *ir.Definition, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*parseError); ok {
				err = errtag.New(errtag.KindParseError, "%s", pe.msg)
				return
			}
			panic(r)
		}
	}()

	toks := lexer.NewScanner(source).ScanTokens()
	p := &parser{tokens: toks}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return p.parseFile(base), nil
}

type parseError struct{ msg string }

func fail(format string, args ...interface{}) {
	panic(&parseError{msg: fmt.Sprintf(format, args...)})
}

// endCtx is the indexing context `end` resolves against while parsing
// one argument of a call/index/cell-index argument list (§4.2.9).
type endCtx struct {
	symbol   string
	dimIndex int
}

type parser struct {
	tokens   []lexer.Token
	current  int
	endStack []*endCtx
}

// --- entry points -----------------------------------------------------

func (p *parser) parseFile(scriptName string) *ir.Definition {
	p.skipSeparators()
	if p.check(lexer.TokenFunction) {
		primary := p.parseFunction()
		var nested []*ir.Definition
		for {
			p.skipSeparators()
			if p.isAtEnd() {
				break
			}
			nested = append(nested, p.parseFunction())
		}
		primary.Nested = nested
		return primary
	}

	var body []ir.Stmt
	for !p.isAtEnd() {
		p.skipSeparators()
		if p.isAtEnd() {
			break
		}
		body = append(body, p.statement())
		p.skipSeparators()
	}
	return &ir.Definition{Name: scriptName, Body: body, IsScript: true}
}

// parseFunction parses `function [out...] = name(in...) ... end`, also
// accepting the single-output (`function out = name(...)`) and
// no-output (`function name(...)`) forms.
func (p *parser) parseFunction() *ir.Definition {
	p.consume(lexer.TokenFunction, "expected 'function'")

	var outs []string
	var name string
	switch {
	case p.check(lexer.TokenLBracket):
		p.advance()
		if !p.check(lexer.TokenRBracket) {
			outs = append(outs, p.consume(lexer.TokenIdent, "expected output name").Lexeme)
			for p.match(lexer.TokenComma) {
				outs = append(outs, p.consume(lexer.TokenIdent, "expected output name").Lexeme)
			}
		}
		p.consume(lexer.TokenRBracket, "expected ']' after output list")
		p.consume(lexer.TokenEqual, "expected '=' after output list")
		name = p.consume(lexer.TokenIdent, "expected function name").Lexeme
	default:
		first := p.consume(lexer.TokenIdent, "expected function name").Lexeme
		if p.match(lexer.TokenEqual) {
			outs = []string{first}
			name = p.consume(lexer.TokenIdent, "expected function name").Lexeme
		} else {
			name = first
		}
	}

	var ins []string
	p.consume(lexer.TokenLParen, "expected '(' after function name")
	if !p.check(lexer.TokenRParen) {
		ins = append(ins, p.consume(lexer.TokenIdent, "expected parameter name").Lexeme)
		for p.match(lexer.TokenComma) {
			ins = append(ins, p.consume(lexer.TokenIdent, "expected parameter name").Lexeme)
		}
	}
	p.consume(lexer.TokenRParen, "expected ')' after parameter list")

	body := p.statementsUntil(lexer.TokenEnd, lexer.TokenFunction)
	if p.check(lexer.TokenEnd) {
		p.advance()
	}

	return &ir.Definition{Name: name, In: ins, Out: outs, Body: body}
}

// statementsUntil parses statements until the next significant token is
// one of stop (not consumed), or EOF — used for both explicit `end`-
// terminated blocks and (in a function file) the unmarked boundary
// before the next `function` header.
func (p *parser) statementsUntil(stop ...lexer.TokenType) []ir.Stmt {
	var out []ir.Stmt
	for {
		p.skipSeparators()
		if p.isAtEnd() {
			break
		}
		if p.checkAny(stop...) {
			break
		}
		out = append(out, p.statement())
	}
	return out
}

func (p *parser) checkAny(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			return true
		}
	}
	return false
}

func (p *parser) skipSeparators() {
	for p.check(lexer.TokenNewline) || p.check(lexer.TokenSemi) {
		p.advance()
	}
}

// --- statements ---------------------------------------------------------

func (p *parser) statement() ir.Stmt {
	switch {
	case p.match(lexer.TokenIf):
		return p.ifStatement()
	case p.match(lexer.TokenWhile):
		return p.whileStatement()
	case p.match(lexer.TokenFor):
		return p.forStatement()
	case p.match(lexer.TokenSwitch):
		return p.switchStatement()
	case p.match(lexer.TokenBreak):
		return p.endStatement(&ir.BreakStmt{})
	case p.match(lexer.TokenContinue):
		return p.endStatement(&ir.ContinueStmt{})
	case p.match(lexer.TokenReturn):
		return p.endStatement(&ir.ReturnStmt{})
	case p.match(lexer.TokenGlobal):
		return p.globalStatement()
	case p.check(lexer.TokenLBracket):
		return p.assignmentOrExpr()
	default:
		return p.assignmentOrExpr()
	}
}

// suppressFromNext consumes the statement terminator (`;`, newline, or
// EOF/block-boundary) and reports whether it was a `;` (suppressing
// auto-echo, §6.5's ans convention).
func (p *parser) suppressFromNext() bool {
	suppress := false
	for p.check(lexer.TokenSemi) || p.check(lexer.TokenNewline) {
		if p.peek().Type == lexer.TokenSemi {
			suppress = true
		}
		p.advance()
	}
	return suppress
}

func (p *parser) endStatement(s ir.Stmt) ir.Stmt {
	p.suppressFromNext()
	return s
}

func (p *parser) globalStatement() ir.Stmt {
	var names []string
	names = append(names, p.consume(lexer.TokenIdent, "expected a name after 'global'").Lexeme)
	for p.check(lexer.TokenIdent) {
		names = append(names, p.advance().Lexeme)
	}
	p.suppressFromNext()
	return &ir.GlobalStmt{Names: names}
}

func (p *parser) ifStatement() ir.Stmt {
	cond := p.expression()
	p.suppressFromNext()
	then := p.statementsUntil(lexer.TokenElseif, lexer.TokenElse, lexer.TokenEnd)
	var elseBody []ir.Stmt
	if p.match(lexer.TokenElseif) {
		elseBody = []ir.Stmt{p.ifStatementTail()}
		return &ir.IfStmt{Cond: cond, Then: then, Else: elseBody}
	}
	if p.match(lexer.TokenElse) {
		p.suppressFromNext()
		elseBody = p.statementsUntil(lexer.TokenEnd)
	}
	p.consume(lexer.TokenEnd, "expected 'end' to close 'if'")
	p.suppressFromNext()
	return &ir.IfStmt{Cond: cond, Then: then, Else: elseBody}
}

// ifStatementTail parses the body of an `elseif`, which was already
// consumed by the caller, as a nested IfStmt so the evaluator's plain
// two-branch IfStmt model handles arbitrary elseif chains.
func (p *parser) ifStatementTail() ir.Stmt {
	cond := p.expression()
	p.suppressFromNext()
	then := p.statementsUntil(lexer.TokenElseif, lexer.TokenElse, lexer.TokenEnd)
	var elseBody []ir.Stmt
	if p.match(lexer.TokenElseif) {
		elseBody = []ir.Stmt{p.ifStatementTail()}
		return &ir.IfStmt{Cond: cond, Then: then, Else: elseBody}
	}
	if p.match(lexer.TokenElse) {
		p.suppressFromNext()
		elseBody = p.statementsUntil(lexer.TokenEnd)
	}
	p.consume(lexer.TokenEnd, "expected 'end' to close 'if'")
	p.suppressFromNext()
	return &ir.IfStmt{Cond: cond, Then: then, Else: elseBody}
}

func (p *parser) whileStatement() ir.Stmt {
	cond := p.expression()
	p.suppressFromNext()
	body := p.statementsUntil(lexer.TokenEnd)
	p.consume(lexer.TokenEnd, "expected 'end' to close 'while'")
	p.suppressFromNext()
	return &ir.WhileStmt{Cond: cond, Body: body}
}

func (p *parser) forStatement() ir.Stmt {
	varName := p.consume(lexer.TokenIdent, "expected loop variable after 'for'").Lexeme
	p.consume(lexer.TokenEqual, "expected '=' after for-loop variable")
	seq := p.expression()
	p.suppressFromNext()
	body := p.statementsUntil(lexer.TokenEnd)
	p.consume(lexer.TokenEnd, "expected 'end' to close 'for'")
	p.suppressFromNext()
	return &ir.ForStmt{Var: varName, Seq: seq, Body: body}
}

func (p *parser) switchStatement() ir.Stmt {
	subject := p.expression()
	p.suppressFromNext()

	var cases []ir.SwitchCase
	var otherwise []ir.Stmt
	for {
		p.skipSeparators()
		if p.match(lexer.TokenCase) {
			var vals []ir.Expr
			if p.check(lexer.TokenLBrace) {
				vals = p.cellCaseValues()
			} else {
				vals = append(vals, p.expression())
			}
			p.suppressFromNext()
			body := p.statementsUntil(lexer.TokenCase, lexer.TokenOtherwise, lexer.TokenEnd)
			cases = append(cases, ir.SwitchCase{Values: vals, Body: body})
			continue
		}
		if p.match(lexer.TokenOtherwise) {
			p.suppressFromNext()
			otherwise = p.statementsUntil(lexer.TokenEnd)
			continue
		}
		break
	}
	p.consume(lexer.TokenEnd, "expected 'end' to close 'switch'")
	p.suppressFromNext()
	return &ir.SwitchStmt{Subject: subject, Cases: cases, Otherwise: otherwise}
}

// cellCaseValues parses `case {v1, v2, ...}`, matching any one value.
func (p *parser) cellCaseValues() []ir.Expr {
	p.consume(lexer.TokenLBrace, "expected '{'")
	var vals []ir.Expr
	if !p.check(lexer.TokenRBrace) {
		vals = append(vals, p.expression())
		for p.match(lexer.TokenComma) {
			vals = append(vals, p.expression())
		}
	}
	p.consume(lexer.TokenRBrace, "expected '}' after case value list")
	return vals
}

// assignmentOrExpr parses either an assignment statement (single or
// multi-target) or a bare expression statement, backtracking once it
// becomes clear which.
func (p *parser) assignmentOrExpr() ir.Stmt {
	if p.check(lexer.TokenLBracket) && p.looksLikeMultiAssign() {
		targets := p.lvalueList()
		p.consume(lexer.TokenEqual, "expected '=' after multi-assignment target list")
		value := p.expression()
		suppress := p.suppressFromNext()
		return &ir.AssignStmt{Targets: targets, Value: value, Suppress: suppress}
	}

	if p.check(lexer.TokenIdent) {
		saved := p.current
		lv, ok := p.tryLValue()
		if ok && p.check(lexer.TokenEqual) {
			p.advance()
			value := p.expression()
			suppress := p.suppressFromNext()
			return &ir.AssignStmt{Targets: []ir.LValue{lv}, Value: value, Suppress: suppress}
		}
		p.current = saved
	}

	expr := p.expression()
	suppress := p.suppressFromNext()
	return &ir.ExprStmt{Expr: expr, Suppress: suppress}
}

// looksLikeMultiAssign scans ahead past a bracketed name list for a
// following '=' that is not '==', distinguishing `[a,b] = f()` from a
// bracketed array-literal expression statement.
func (p *parser) looksLikeMultiAssign() bool {
	saved := p.current
	defer func() { p.current = saved }()

	if !p.match(lexer.TokenLBracket) {
		return false
	}
	for !p.check(lexer.TokenRBracket) {
		if p.check(lexer.TokenIdent) {
			p.advance()
		} else if p.check(lexer.TokenNot) {
			p.advance()
		} else {
			return false
		}
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	if !p.match(lexer.TokenRBracket) {
		return false
	}
	return p.check(lexer.TokenEqual)
}

func (p *parser) lvalueList() []ir.LValue {
	p.consume(lexer.TokenLBracket, "expected '['")
	var out []ir.LValue
	for !p.check(lexer.TokenRBracket) {
		if p.match(lexer.TokenNot) {
			out = append(out, ir.LValue{Ignore: true})
		} else {
			lv, ok := p.tryLValue()
			if !ok {
				fail("expected an assignment target in multi-target list")
			}
			out = append(out, lv)
		}
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	p.consume(lexer.TokenRBracket, "expected ']' after multi-assignment target list")
	return out
}

// tryLValue attempts to parse name, name(idx...), or name{idx...} as an
// assignment target, reporting ok=false (without consuming) if the
// current position is not an identifier-led lvalue shape.
func (p *parser) tryLValue() (ir.LValue, bool) {
	if !p.check(lexer.TokenIdent) {
		return ir.LValue{}, false
	}
	name := p.advance().Lexeme
	if p.match(lexer.TokenLParen) {
		args := p.argList(name, lexer.TokenRParen)
		p.consume(lexer.TokenRParen, "expected ')' after index arguments")
		return ir.LValue{Name: name, Indices: args}, true
	}
	if p.match(lexer.TokenLBrace) {
		args := p.argList(name, lexer.TokenRBrace)
		p.consume(lexer.TokenRBrace, "expected '}' after cell index arguments")
		return ir.LValue{Name: name, Indices: args, Cell: true}, true
	}
	return ir.LValue{Name: name}, true
}

// --- expressions: precedence-climbing, MATLAB's fixed operator ladder --
//
// ||  (lowest)
// &&
// |
// &
// == ~= < > <= >=
// :            (range)
// + -
// * / \ .* ./ .\
// unary + - ~
// ^ .^
// postfix ' (transpose), (), {}, .field      (highest)

func (p *parser) expression() ir.Expr { return p.orExpr() }

func (p *parser) orExpr() ir.Expr {
	left := p.andExpr()
	for p.match(lexer.TokenOrOr) {
		left = &ir.BinaryExpr{Left: left, Operator: "||", Right: p.andExpr()}
	}
	return left
}

func (p *parser) andExpr() ir.Expr {
	left := p.bitOrExpr()
	for p.match(lexer.TokenAndAnd) {
		left = &ir.BinaryExpr{Left: left, Operator: "&&", Right: p.bitOrExpr()}
	}
	return left
}

func (p *parser) bitOrExpr() ir.Expr {
	left := p.bitAndExpr()
	for p.match(lexer.TokenOr) {
		left = &ir.BinaryExpr{Left: left, Operator: "|", Right: p.bitAndExpr()}
	}
	return left
}

func (p *parser) bitAndExpr() ir.Expr {
	left := p.relExpr()
	for p.match(lexer.TokenAnd) {
		left = &ir.BinaryExpr{Left: left, Operator: "&", Right: p.relExpr()}
	}
	return left
}

var relOps = map[lexer.TokenType]string{
	lexer.TokenEqualEqual: "==",
	lexer.TokenNotEqual:   "~=",
	lexer.TokenLT:         "<",
	lexer.TokenGT:         ">",
	lexer.TokenLE:         "<=",
	lexer.TokenGE:         ">=",
}

func (p *parser) relExpr() ir.Expr {
	left := p.rangeExpr()
	for {
		op, ok := relOps[p.peek().Type]
		if !ok {
			return left
		}
		p.advance()
		left = &ir.BinaryExpr{Left: left, Operator: op, Right: p.rangeExpr()}
	}
}

func (p *parser) rangeExpr() ir.Expr {
	first := p.additiveExpr()
	if !p.match(lexer.TokenColon) {
		return first
	}
	second := p.additiveExpr()
	if p.match(lexer.TokenColon) {
		third := p.additiveExpr()
		return &ir.RangeExpr{Start: first, Step: second, End: third}
	}
	return &ir.RangeExpr{Start: first, End: second}
}

func (p *parser) additiveExpr() ir.Expr {
	left := p.multiplicativeExpr()
	for p.check(lexer.TokenPlus) || p.check(lexer.TokenMinus) {
		op := p.advance().Lexeme
		left = &ir.BinaryExpr{Left: left, Operator: op, Right: p.multiplicativeExpr()}
	}
	return left
}

var mulOps = map[lexer.TokenType]bool{
	lexer.TokenStar: true, lexer.TokenSlash: true, lexer.TokenBackslash: true,
	lexer.TokenDotStar: true, lexer.TokenDotSlash: true, lexer.TokenDotBackslash: true,
}

func (p *parser) multiplicativeExpr() ir.Expr {
	left := p.unaryExpr()
	for mulOps[p.peek().Type] {
		op := p.advance().Lexeme
		left = &ir.BinaryExpr{Left: left, Operator: op, Right: p.unaryExpr()}
	}
	return left
}

func (p *parser) unaryExpr() ir.Expr {
	if p.check(lexer.TokenPlus) || p.check(lexer.TokenMinus) || p.check(lexer.TokenNot) {
		op := p.advance().Lexeme
		return &ir.UnaryExpr{Operator: op, Operand: p.unaryExpr()}
	}
	return p.powerExpr()
}

func (p *parser) powerExpr() ir.Expr {
	base := p.postfixExpr()
	if p.check(lexer.TokenCaret) || p.check(lexer.TokenDotCaret) {
		op := p.advance().Lexeme
		// Right-associative, and the exponent may itself carry a unary
		// sign (2^-1), matching MATLAB's grammar.
		return &ir.BinaryExpr{Left: base, Operator: op, Right: p.unaryExpr()}
	}
	return base
}

func (p *parser) postfixExpr() ir.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(lexer.TokenTranspose):
			expr = &ir.UnaryExpr{Operator: "'", Operand: expr}
		case p.check(lexer.TokenLParen):
			p.advance()
			sym := symbolOf(expr)
			args := p.argList(sym, lexer.TokenRParen)
			p.consume(lexer.TokenRParen, "expected ')' after arguments")
			if ident, ok := expr.(*ir.Ident); ok {
				expr = &ir.CallExpr{Callee: ident, Args: args, Nargout: 1}
			} else {
				expr = &ir.IndexExpr{Object: expr, Args: args}
			}
		case p.check(lexer.TokenLBrace):
			p.advance()
			sym := symbolOf(expr)
			args := p.argList(sym, lexer.TokenRBrace)
			p.consume(lexer.TokenRBrace, "expected '}' after cell arguments")
			expr = &ir.CellIndexExpr{Object: expr, Args: args}
		case p.match(lexer.TokenDot):
			field := p.consume(lexer.TokenIdent, "expected a field name after '.'").Lexeme
			expr = &ir.FieldExpr{Object: expr, Field: field}
		default:
			return expr
		}
	}
}

func symbolOf(e ir.Expr) string {
	if id, ok := e.(*ir.Ident); ok {
		return id.Name
	}
	return ""
}

// argList parses a comma-separated argument list, resolving any `end`
// tokens encountered against (symbol, position-within-this-list) per
// §4.2.9.
func (p *parser) argList(symbol string, closer lexer.TokenType) []ir.Expr {
	var args []ir.Expr
	if p.check(closer) {
		return args
	}
	for {
		if p.check(lexer.TokenColon) && p.checkNext(lexer.TokenComma, closer) {
			p.advance()
			args = append(args, &ir.ColonExpr{})
		} else {
			ctx := &endCtx{symbol: symbol, dimIndex: len(args)}
			p.endStack = append(p.endStack, ctx)
			args = append(args, p.expression())
			p.endStack = p.endStack[:len(p.endStack)-1]
		}
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	// Now that the final argument count is known, patch every End node
	// created while parsing this list.
	n := len(args)
	p.fixEnds(args, n)
	return args
}

// fixEnds walks the just-parsed argument expressions looking for End
// nodes (they may be nested inside arithmetic, e.g. `end-1`) and fills
// in NumComps/IsLast now that every sibling argument is known.
func (p *parser) fixEnds(args []ir.Expr, n int) {
	for i, a := range args {
		walkEnds(a, func(en *ir.End) {
			en.NumComps = n
			en.DimIndex = i
			en.IsLast = i == n-1
		})
	}
}

func walkEnds(e ir.Expr, f func(*ir.End)) {
	switch n := e.(type) {
	case *ir.End:
		f(n)
	case *ir.UnaryExpr:
		walkEnds(n.Operand, f)
	case *ir.BinaryExpr:
		walkEnds(n.Left, f)
		walkEnds(n.Right, f)
	case *ir.RangeExpr:
		walkEnds(n.Start, f)
		if n.Step != nil {
			walkEnds(n.Step, f)
		}
		walkEnds(n.End, f)
	}
}

func (p *parser) primary() ir.Expr {
	tok := p.advance()
	switch tok.Type {
	case lexer.TokenNumber:
		return numberLiteral(tok.Lexeme)
	case lexer.TokenImag:
		return imagLiteral(tok.Lexeme)
	case lexer.TokenString:
		return &ir.Literal{Value: tok.Lexeme}
	case lexer.TokenTrue:
		return &ir.Literal{Value: true}
	case lexer.TokenFalse:
		return &ir.Literal{Value: false}
	case lexer.TokenIdent:
		return &ir.Ident{Name: tok.Lexeme}
	case lexer.TokenEnd:
		return p.endToken()
	case lexer.TokenColon:
		return &ir.ColonExpr{}
	case lexer.TokenLParen:
		expr := p.expression()
		p.consume(lexer.TokenRParen, "expected ')' after expression")
		return expr
	case lexer.TokenLBracket:
		return p.arrayLiteral()
	case lexer.TokenLBrace:
		return p.cellLiteral()
	case lexer.TokenAt:
		return p.handleLiteral()
	default:
		fail("unexpected token %s at line %d", tok, tok.Line)
		return nil
	}
}

func (p *parser) endToken() ir.Expr {
	if len(p.endStack) == 0 {
		fail("'end' used outside of an indexing expression")
	}
	ctx := p.endStack[len(p.endStack)-1]
	return &ir.End{Symbol: ctx.symbol, DimIndex: ctx.dimIndex}
}

func (p *parser) handleLiteral() ir.Expr {
	if p.match(lexer.TokenLParen) {
		var params []string
		if !p.check(lexer.TokenRParen) {
			params = append(params, p.consume(lexer.TokenIdent, "expected parameter name").Lexeme)
			for p.match(lexer.TokenComma) {
				params = append(params, p.consume(lexer.TokenIdent, "expected parameter name").Lexeme)
			}
		}
		p.consume(lexer.TokenRParen, "expected ')' after anonymous-function parameters")
		body := p.expression()
		return &ir.AnonFunc{Params: params, Body: body}
	}
	name := p.consume(lexer.TokenIdent, "expected a function name after '@'").Lexeme
	return &ir.FuncHandleExpr{Name: name}
}

// arrayLiteral parses `[row1; row2; ...]`, where each row is a sequence
// of expressions: `;` or a newline ends a row, and `,`/whitespace
// separate elements within it. A `+`/`-` after whitespace is read as a
// binary operator, so `[1 -2]` is the single element -1.
func (p *parser) arrayLiteral() ir.Expr {
	rows := p.gridRows(lexer.TokenRBracket)
	p.consume(lexer.TokenRBracket, "expected ']' to close array literal")
	return &ir.ArrayLit{Rows: rows}
}

func (p *parser) cellLiteral() ir.Expr {
	rows := p.gridRows(lexer.TokenRBrace)
	p.consume(lexer.TokenRBrace, "expected '}' to close cell literal")
	return &ir.CellLit{Rows: rows}
}

func (p *parser) gridRows(closer lexer.TokenType) [][]ir.Expr {
	var rows [][]ir.Expr
	var row []ir.Expr
	for !p.check(closer) {
		for p.check(lexer.TokenNewline) {
			p.advance()
		}
		if p.check(closer) {
			break
		}
		row = append(row, p.expression())
		for {
			if p.match(lexer.TokenComma) {
				row = append(row, p.expression())
				continue
			}
			if p.check(closer) || p.check(lexer.TokenSemi) || p.check(lexer.TokenNewline) || p.isAtEnd() {
				break
			}
			row = append(row, p.expression())
		}
		if p.match(lexer.TokenSemi) {
			rows = append(rows, row)
			row = nil
			continue
		}
		if p.check(lexer.TokenNewline) {
			rows = append(rows, row)
			row = nil
			continue
		}
		break
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func numberLiteral(lexeme string) *ir.Literal {
	if strings.ContainsAny(lexeme, ".eE") {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			fail("malformed numeric literal %q", lexeme)
		}
		return &ir.Literal{Value: f}
	}
	i, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(lexeme, 64)
		if ferr != nil {
			fail("malformed numeric literal %q", lexeme)
		}
		return &ir.Literal{Value: f}
	}
	return &ir.Literal{Value: i}
}

func imagLiteral(lexeme string) *ir.Literal {
	mantissa := lexeme[:len(lexeme)-1]
	f, err := strconv.ParseFloat(mantissa, 64)
	if err != nil {
		fail("malformed imaginary literal %q", lexeme)
	}
	return &ir.Literal{Value: complex(0, f)}
}

// --- token-stream helpers ----------------------------------------------

func (p *parser) match(t lexer.TokenType) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) consume(t lexer.TokenType, msg string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	fail("%s (got %s at line %d)", msg, p.peek(), p.peek().Line)
	return lexer.Token{}
}

func (p *parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

func (p *parser) checkNext(types ...lexer.TokenType) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	next := p.tokens[p.current+1].Type
	for _, t := range types {
		if next == t {
			return true
		}
	}
	return false
}

func (p *parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.tokens[p.current-1]
}

func (p *parser) peek() lexer.Token { return p.tokens[p.current] }

func (p *parser) isAtEnd() bool { return p.peek().Type == lexer.TokenEOF }

package ast

import (
	"strings"

	"github.com/cwbudde/lox/internal/token"
)

// ExpressionStmt evaluates an expression for its value and/or side effects
// (spec §3 Expression statement).
type ExpressionStmt struct {
	span Span
	Expr Expr
}

func NewExpressionStmt(span Span, expr Expr) *ExpressionStmt {
	return &ExpressionStmt{span: span, Expr: expr}
}
func (s *ExpressionStmt) Span() Span     { return s.span }
func (s *ExpressionStmt) stmtNode()      {}
func (s *ExpressionStmt) String() string { return s.Expr.String() + ";" }

// PrintStmt evaluates an expression and writes its display form (spec §3 Print).
type PrintStmt struct {
	span Span
	Expr Expr
}

func NewPrintStmt(span Span, expr Expr) *PrintStmt { return &PrintStmt{span: span, Expr: expr} }
func (s *PrintStmt) Span() Span                    { return s.span }
func (s *PrintStmt) stmtNode()                     {}
func (s *PrintStmt) String() string                { return "print " + s.Expr.String() + ";" }

// VarStmt declares a new binding in the current scope (spec §3 Var).
// Initializer is nil when the declaration has no `= expr` clause, in which
// case the binding is Nil (spec §4.4).
type VarStmt struct {
	span        Span
	Name        string
	Initializer Expr
}

func NewVarStmt(span Span, name string, initializer Expr) *VarStmt {
	return &VarStmt{span: span, Name: name, Initializer: initializer}
}
func (s *VarStmt) Span() Span { return s.span }
func (s *VarStmt) stmtNode()  {}
func (s *VarStmt) String() string {
	if s.Initializer == nil {
		return "var " + s.Name + ";"
	}
	return "var " + s.Name + " = " + s.Initializer.String() + ";"
}

// BlockStmt is a brace-delimited sequence of statements run in a fresh
// child scope (spec §3 Block, §4.4).
type BlockStmt struct {
	span       Span
	Statements []Stmt
}

func NewBlockStmt(span Span, statements []Stmt) *BlockStmt {
	return &BlockStmt{span: span, Statements: statements}
}
func (s *BlockStmt) Span() Span { return s.span }
func (s *BlockStmt) stmtNode()  {}
func (s *BlockStmt) String() string {
	var b strings.Builder
	b.WriteString("{")
	for _, stmt := range s.Statements {
		b.WriteString(" ")
		b.WriteString(stmt.String())
	}
	b.WriteString(" }")
	return b.String()
}

// IfStmt is a conditional with an optional else branch (spec §3 If).
type IfStmt struct {
	span       Span
	Condition  Expr
	Then       Stmt
	Else       Stmt // nil when there is no else clause
}

func NewIfStmt(span Span, condition Expr, then, els Stmt) *IfStmt {
	return &IfStmt{span: span, Condition: condition, Then: then, Else: els}
}
func (s *IfStmt) Span() Span { return s.span }
func (s *IfStmt) stmtNode()  {}
func (s *IfStmt) String() string {
	out := "if (" + s.Condition.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStmt repeats Body while Condition is truthy (spec §3 While).
type WhileStmt struct {
	span      Span
	Condition Expr
	Body      Stmt
}

func NewWhileStmt(span Span, condition Expr, body Stmt) *WhileStmt {
	return &WhileStmt{span: span, Condition: condition, Body: body}
}
func (s *WhileStmt) Span() Span { return s.span }
func (s *WhileStmt) stmtNode()  {}
func (s *WhileStmt) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}

// FunctionStmt declares a user function, binding it under Name in the
// current environment at the point of declaration (spec §3 Function, §4.4).
type FunctionStmt struct {
	span   Span
	Name   string
	Params []string
	Body   []Stmt
}

func NewFunctionStmt(span Span, name string, params []string, body []Stmt) *FunctionStmt {
	return &FunctionStmt{span: span, Name: name, Params: params, Body: body}
}
func (s *FunctionStmt) Span() Span { return s.span }
func (s *FunctionStmt) stmtNode()  {}
func (s *FunctionStmt) String() string {
	return "fun " + s.Name + "(" + strings.Join(s.Params, ", ") + ") " + (&BlockStmt{Statements: s.Body}).String()
}

// ReturnStmt unwinds to the nearest enclosing function call frame, carrying
// Value as the call's result (spec §3 Return, §4.4). Keyword anchors the
// statement's span for diagnostics even when Value is nil (bare `return;`).
type ReturnStmt struct {
	span    Span
	Keyword token.Token
	Value   Expr // nil for a bare `return;`
}

func NewReturnStmt(span Span, keyword token.Token, value Expr) *ReturnStmt {
	return &ReturnStmt{span: span, Keyword: keyword, Value: value}
}
func (s *ReturnStmt) Span() Span { return s.span }
func (s *ReturnStmt) stmtNode()  {}
func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return "return;"
	}
	return "return " + s.Value.String() + ";"
}

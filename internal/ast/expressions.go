package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/lox/internal/token"
)

// NumberLiteral is a numeric literal (spec §3 Literal, Number case).
type NumberLiteral struct {
	span  Span
	Value float32
}

func NewNumberLiteral(span Span, value float32) *NumberLiteral {
	return &NumberLiteral{span: span, Value: value}
}
func (n *NumberLiteral) Span() Span   { return n.span }
func (n *NumberLiteral) exprNode()    {}
func (n *NumberLiteral) String() string {
	return strconv.FormatFloat(float64(n.Value), 'g', -1, 32)
}

// StringLiteral is a string literal (spec §3 Literal, String case).
type StringLiteral struct {
	span  Span
	Value string
}

func NewStringLiteral(span Span, value string) *StringLiteral {
	return &StringLiteral{span: span, Value: value}
}
func (s *StringLiteral) Span() Span     { return s.span }
func (s *StringLiteral) exprNode()      {}
func (s *StringLiteral) String() string { return strconv.Quote(s.Value) }

// BoolLiteral is a boolean literal (spec §3 Literal, Bool case).
type BoolLiteral struct {
	span  Span
	Value bool
}

func NewBoolLiteral(span Span, value bool) *BoolLiteral {
	return &BoolLiteral{span: span, Value: value}
}
func (b *BoolLiteral) Span() Span     { return b.span }
func (b *BoolLiteral) exprNode()      {}
func (b *BoolLiteral) String() string { return strconv.FormatBool(b.Value) }

// NilLiteral is the nil literal (spec §3 Literal, Nil case).
type NilLiteral struct {
	span Span
}

func NewNilLiteral(span Span) *NilLiteral { return &NilLiteral{span: span} }
func (n *NilLiteral) Span() Span          { return n.span }
func (n *NilLiteral) exprNode()           {}
func (n *NilLiteral) String() string      { return "nil" }

// Grouping is a parenthesized expression (spec §3 Grouping).
type Grouping struct {
	span  Span
	Expr  Expr
}

func NewGrouping(span Span, expr Expr) *Grouping { return &Grouping{span: span, Expr: expr} }
func (g *Grouping) Span() Span                   { return g.span }
func (g *Grouping) exprNode()                    {}
func (g *Grouping) String() string               { return "(group " + g.Expr.String() + ")" }

// Unary is a prefix operator application (spec §3 Unary, op ∈ {!, -}).
type Unary struct {
	span     Span
	Operator token.Type
	Lexeme   string
	Operand  Expr
}

func NewUnary(span Span, operator token.Type, lexeme string, operand Expr) *Unary {
	return &Unary{span: span, Operator: operator, Lexeme: lexeme, Operand: operand}
}
func (u *Unary) Span() Span { return u.span }
func (u *Unary) exprNode()  {}
func (u *Unary) String() string {
	return fmt.Sprintf("(%s %s)", u.Lexeme, u.Operand.String())
}

// Binary is an infix operator application (spec §3 Binary).
type Binary struct {
	span     Span
	Left     Expr
	Operator token.Type
	Lexeme   string
	Right    Expr
}

func NewBinary(span Span, left Expr, operator token.Type, lexeme string, right Expr) *Binary {
	return &Binary{span: span, Left: left, Operator: operator, Lexeme: lexeme, Right: right}
}
func (b *Binary) Span() Span { return b.span }
func (b *Binary) exprNode()  {}
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Lexeme, b.Left.String(), b.Right.String())
}

// Logical is a short-circuiting `and`/`or` expression (spec §3 Logical).
type Logical struct {
	span     Span
	Left     Expr
	Operator token.Type
	Lexeme   string
	Right    Expr
}

func NewLogical(span Span, left Expr, operator token.Type, lexeme string, right Expr) *Logical {
	return &Logical{span: span, Left: left, Operator: operator, Lexeme: lexeme, Right: right}
}
func (l *Logical) Span() Span { return l.span }
func (l *Logical) exprNode()  {}
func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Lexeme, l.Left.String(), l.Right.String())
}

// Variable is a reference to a bound name (spec §3 Variable).
type Variable struct {
	span Span
	Name string
}

func NewVariable(span Span, name string) *Variable { return &Variable{span: span, Name: name} }
func (v *Variable) Span() Span                     { return v.span }
func (v *Variable) exprNode()                      {}
func (v *Variable) String() string                 { return v.Name }

// Assign stores a new value into an already-bound name (spec §3 Assign).
type Assign struct {
	span  Span
	Name  string
	Value Expr
}

func NewAssign(span Span, name string, value Expr) *Assign {
	return &Assign{span: span, Name: name, Value: value}
}
func (a *Assign) Span() Span { return a.span }
func (a *Assign) exprNode()  {}
func (a *Assign) String() string {
	return fmt.Sprintf("(= %s %s)", a.Name, a.Value.String())
}

// Call invokes a callee with a list of evaluated arguments (spec §3 Call).
// ClosingParen is the call's closing parenthesis token. Runtime errors raised
// by the call (NotCallable, IncorrectArgumentCount) carry the span of the
// whole call expression, not a span derived from ClosingParen.
type Call struct {
	span         Span
	Callee       Expr
	ClosingParen token.Token
	Arguments    []Expr
}

func NewCall(span Span, callee Expr, closingParen token.Token, arguments []Expr) *Call {
	return &Call{span: span, Callee: callee, ClosingParen: closingParen, Arguments: arguments}
}
func (c *Call) Span() Span { return c.span }
func (c *Call) exprNode()  {}
func (c *Call) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("(call %s %s)", c.Callee.String(), strings.Join(args, " "))
}

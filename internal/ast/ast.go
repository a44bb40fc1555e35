// Package ast defines the abstract syntax tree produced by the parser
// (spec §3). Every node carries a Span so runtime errors can be rendered
// against the original source (spec §4.6).
package ast

// Span is an inclusive range of token indices into the
// scanner's token array, used solely to render diagnostics (spec §3). It
// never influences evaluation.
type Span struct {
	First int
	Last  int
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	s := a
	if b.First < s.First {
		s.First = b.First
	}
	if b.Last > s.Last {
		s.Last = b.Last
	}
	return s
}

// Node is the base type implemented by every expression and statement.
type Node interface {
	Span() Span
	String() string
}

// Expr is any node that produces a value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action but does not itself produce a
// value (though executing one may flow a value through in REPL mode).
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of the tree: a flat list of top-level statements.
type Program struct {
	Statements []Stmt
}

package runtime

import "github.com/cwbudde/lox/internal/ast"

// Callable is a value that can be invoked with arguments: either a native
// function or a user-defined function (spec §3 Value, Callable case).
type Callable interface {
	Value
	// Arity is the number of parameters the callable expects.
	Arity() int
}

// NativeFunction wraps a Go function as a language-level Callable. Errors
// surfaced from Fn are reported to the caller as NativeFunctionError
// (spec §4.5, §7).
type NativeFunction struct {
	Name   string
	Params int
	Fn     func(args []Value) (Value, error)
}

func (*NativeFunction) Type() string     { return "Callable" }
func (*NativeFunction) String() string   { return "<native fn>" }
func (n *NativeFunction) Arity() int     { return n.Params }

// UserFunction is a closure: a function declaration paired with the
// environment captured at the point of declaration (spec §3 Callable,
// §4.4 closure semantics, §9 open question 1 — lexical capture).
type UserFunction struct {
	Declaration *ast.FunctionStmt
	Closure     *Environment
}

func (f *UserFunction) Type() string   { return "Callable" }
func (f *UserFunction) String() string { return "<fn " + f.Declaration.Name + ">" }
func (f *UserFunction) Arity() int     { return len(f.Declaration.Params) }

// Package evaluator walks an AST and executes it against the runtime
// package's values and environments (spec §4.4).
package evaluator

import (
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/runtime"
	"github.com/cwbudde/lox/internal/token"
)

// Interpreter holds the mutable state threaded through one evaluation run:
// the current environment, the global scope, and the active call stack.
// Statement execution saves and restores env around every scope it enters,
// on every exit path including errors (spec §4.4 Block).
type Interpreter struct {
	globals   *runtime.Environment
	env       *runtime.Environment
	callStack *runtime.CallStack
	stdout    io.Writer
	trace     io.Writer // non-nil enables per-statement tracing
	tokens    []token.Token
	lastTrace []runtime.Frame
}

// New creates an Interpreter writing Print output to stdout. The global
// scope is seeded with the native clock function (spec §4.3, §4.5).
func New(stdout io.Writer) *Interpreter {
	globals := runtime.NewEnvironment()
	i := &Interpreter{
		globals:   globals,
		env:       globals,
		callStack: runtime.NewCallStack(runtime.DefaultMaxCallDepth),
		stdout:    stdout,
	}
	globals.Define("clock", clockFn())
	return i
}

// SetTrace routes per-statement execution tracing to w, or disables it when
// w is nil. Used by the CLI's --trace flag.
func (i *Interpreter) SetTrace(w io.Writer) {
	i.trace = w
}

// Globals exposes the global environment, e.g. for a REPL that wants to
// inspect bindings between entered lines.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// SetTokens supplies the token stream backing the program passed to the
// next Interpret call, so call-stack frames can resolve source lines for
// stack-trace reporting (spec §4.6). Safe to omit; frames then report a
// line of 0.
func (i *Interpreter) SetTokens(tokens []token.Token) {
	i.tokens = tokens
}

// LastTrace returns the call-stack frames active at the point of the most
// recent error returned by Interpret, oldest first, or nil if the last
// run succeeded or no user-function call was on the stack when it failed.
func (i *Interpreter) LastTrace() []runtime.Frame {
	return i.lastTrace
}

// lineForSpan resolves a span's starting token to a source line, or 0 if
// no token stream has been supplied or the span is out of range.
func (i *Interpreter) lineForSpan(span ast.Span) int {
	if span.First < 0 || span.First >= len(i.tokens) {
		return 0
	}
	return i.tokens[span.First].Line
}

// returnSignal is raised by a Return statement and unwound through every
// enclosing block and loop frame until caught at the function-call
// boundary (spec §7, §4.4 Return). It is never reported to the user.
type returnSignal struct {
	value runtime.Value
}

func (r *returnSignal) Error() string { return "uncaught return signal" }

// Interpret executes a full program. When repl is true, the value of a
// top-level expression statement is written to stdout (spec §4.4).
func (i *Interpreter) Interpret(program []ast.Stmt, repl bool) error {
	i.lastTrace = nil
	for _, stmt := range program {
		val, err := i.exec(stmt)
		if err != nil {
			if _, ok := err.(*returnSignal); ok {
				// A bare top-level `return;` has nowhere to unwind to;
				// treat it as completing the run unit.
				return nil
			}
			return err
		}
		if repl {
			if _, ok := stmt.(*ast.ExpressionStmt); ok && val != nil {
				fmt.Fprintln(i.stdout, val.String())
			}
		}
	}
	return nil
}

// ---- statement execution ----

func (i *Interpreter) exec(stmt ast.Stmt) (runtime.Value, error) {
	if i.trace != nil {
		fmt.Fprintf(i.trace, "exec %T %s\n", stmt, stmt.String())
	}
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return i.eval(s.Expr)
	case *ast.PrintStmt:
		val, err := i.eval(s.Expr)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(i.stdout, val.String())
		return nil, nil
	case *ast.VarStmt:
		return nil, i.execVar(s)
	case *ast.BlockStmt:
		return nil, i.execBlock(s.Statements, runtime.NewEnclosedEnvironment(i.env))
	case *ast.IfStmt:
		return nil, i.execIf(s)
	case *ast.WhileStmt:
		return nil, i.execWhile(s)
	case *ast.FunctionStmt:
		i.env.Define(s.Name, &runtime.UserFunction{Declaration: s, Closure: i.env})
		return nil, nil
	case *ast.ReturnStmt:
		return nil, i.execReturn(s)
	default:
		panic(fmt.Sprintf("evaluator: unhandled statement type %T", stmt))
	}
}

func (i *Interpreter) execVar(s *ast.VarStmt) error {
	value := runtime.Value(runtime.Nil)
	if s.Initializer != nil {
		v, err := i.eval(s.Initializer)
		if err != nil {
			return err
		}
		value = v
	}
	i.env.Define(s.Name, value)
	return nil
}

// execBlock runs stmts in env, always restoring the interpreter's previous
// environment before returning, on every exit path (spec §4.4 Block).
func (i *Interpreter) execBlock(stmts []ast.Stmt, env *runtime.Environment) error {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range stmts {
		if _, err := i.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execIf(s *ast.IfStmt) error {
	cond, err := i.eval(s.Condition)
	if err != nil {
		return err
	}
	if runtime.Truthy(cond) {
		_, err := i.exec(s.Then)
		return err
	}
	if s.Else != nil {
		_, err := i.exec(s.Else)
		return err
	}
	return nil
}

func (i *Interpreter) execWhile(s *ast.WhileStmt) error {
	for {
		cond, err := i.eval(s.Condition)
		if err != nil {
			return err
		}
		if !runtime.Truthy(cond) {
			return nil
		}
		if _, err := i.exec(s.Body); err != nil {
			return err
		}
	}
}

func (i *Interpreter) execReturn(s *ast.ReturnStmt) error {
	value := runtime.Value(runtime.Nil)
	if s.Value != nil {
		v, err := i.eval(s.Value)
		if err != nil {
			return err
		}
		value = v
	}
	return &returnSignal{value: value}
}

// ---- expression evaluation ----

func (i *Interpreter) eval(expr ast.Expr) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return runtime.Number(e.Value), nil
	case *ast.StringLiteral:
		return runtime.String(e.Value), nil
	case *ast.BoolLiteral:
		return runtime.Bool(e.Value), nil
	case *ast.NilLiteral:
		return runtime.Nil, nil
	case *ast.Grouping:
		return i.eval(e.Expr)
	case *ast.Unary:
		return i.evalUnary(e)
	case *ast.Binary:
		return i.evalBinary(e)
	case *ast.Logical:
		return i.evalLogical(e)
	case *ast.Variable:
		return i.evalVariable(e)
	case *ast.Assign:
		return i.evalAssign(e)
	case *ast.Call:
		return i.evalCall(e)
	default:
		panic(fmt.Sprintf("evaluator: unhandled expression type %T", expr))
	}
}

func (i *Interpreter) evalVariable(e *ast.Variable) (runtime.Value, error) {
	val, ok := i.env.Get(e.Name)
	if !ok {
		return nil, runtime.NewUndefinedVariableError(e.Span(), e.Name)
	}
	return val, nil
}

func (i *Interpreter) evalAssign(e *ast.Assign) (runtime.Value, error) {
	value, err := i.eval(e.Value)
	if err != nil {
		return nil, err
	}
	if !i.env.Assign(e.Name, value) {
		return nil, runtime.NewUndefinedVariableError(e.Span(), e.Name)
	}
	return value, nil
}

func (i *Interpreter) evalLogical(e *ast.Logical) (runtime.Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Lexeme == "or" {
		if runtime.Truthy(left) {
			return left, nil
		}
	} else {
		if !runtime.Truthy(left) {
			return left, nil
		}
	}
	return i.eval(e.Right)
}

// clockFn returns the native `clock` callable (spec §4.5).
func clockFn() *runtime.NativeFunction {
	return &runtime.NativeFunction{
		Name:   "clock",
		Params: 0,
		Fn: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Number(float32(time.Now().UnixNano()) / float32(time.Second)), nil
		},
	}
}

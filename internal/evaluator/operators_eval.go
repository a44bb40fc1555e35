package evaluator

import (
	"github.com/cwbudde/lox/internal/ast"
	"github.com/cwbudde/lox/internal/runtime"
	"github.com/cwbudde/lox/internal/token"
)

func (i *Interpreter) evalUnary(e *ast.Unary) (runtime.Value, error) {
	operand, err := i.eval(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case token.MINUS:
		n, ok := operand.(runtime.Number)
		if !ok {
			return nil, runtime.NewInvalidUnaryError(e.Span())
		}
		return -n, nil
	case token.BANG:
		return runtime.Bool(!runtime.Truthy(operand)), nil
	default:
		return nil, runtime.NewInvalidUnaryError(e.Span())
	}
}

func (i *Interpreter) evalBinary(e *ast.Binary) (runtime.Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}

	// `!=` is specified as the negation of `==` regardless of operand type
	// (spec §4.4), so it is handled before the per-type dispatch below.
	if e.Operator == token.BANG_EQUAL {
		return runtime.Bool(!runtime.Equal(left, right)), nil
	}
	if e.Operator == token.EQUAL_EQUAL {
		return runtime.Bool(runtime.Equal(left, right)), nil
	}

	ln, lok := left.(runtime.Number)
	rn, rok := right.(runtime.Number)
	if lok && rok {
		return i.evalNumericBinary(e, ln, rn)
	}

	ls, lok := left.(runtime.String)
	rs, rok := right.(runtime.String)
	if lok && rok {
		if e.Operator == token.PLUS {
			return ls + rs, nil
		}
		return nil, runtime.NewInvalidStringConcatError(e.Span(), e.Lexeme)
	}

	return nil, runtime.NewBinaryTypeMismatchError(e.Span(), e.Lexeme)
}

func (i *Interpreter) evalNumericBinary(e *ast.Binary, left, right runtime.Number) (runtime.Value, error) {
	switch e.Operator {
	case token.PLUS:
		return left + right, nil
	case token.MINUS:
		return left - right, nil
	case token.STAR:
		return left * right, nil
	case token.SLASH:
		if right == 0 {
			return nil, runtime.NewDivideByZeroError(e.Span())
		}
		return left / right, nil
	case token.LESS:
		return runtime.Bool(left < right), nil
	case token.LESS_EQUAL:
		return runtime.Bool(left <= right), nil
	case token.GREATER:
		return runtime.Bool(left > right), nil
	case token.GREATER_EQUAL:
		return runtime.Bool(left >= right), nil
	default:
		return nil, runtime.NewBinaryTypeMismatchError(e.Span(), e.Lexeme)
	}
}

func (i *Interpreter) evalCall(e *ast.Call) (runtime.Value, error) {
	callee, err := i.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, len(e.Arguments))
	for idx, argExpr := range e.Arguments {
		arg, err := i.eval(argExpr)
		if err != nil {
			return nil, err
		}
		args[idx] = arg
	}

	callable, ok := callee.(runtime.Callable)
	if !ok {
		return nil, runtime.NewNotCallableError(e.Span())
	}
	if callable.Arity() != len(args) {
		return nil, runtime.NewIncorrectArgumentCountError(e.Span(), callable.Arity(), len(args))
	}

	switch fn := callable.(type) {
	case *runtime.NativeFunction:
		val, err := fn.Fn(args)
		if err != nil {
			return nil, runtime.NewNativeFunctionError(e.Span(), fn.Name, err.Error())
		}
		return val, nil
	case *runtime.UserFunction:
		return i.callUserFunction(fn, args, e.Span())
	default:
		return nil, runtime.NewNotCallableError(e.Span())
	}
}

// callUserFunction implements the function call protocol of spec §4.4: a
// fresh environment parented on the closure, parameters bound in order,
// the body executed as a block, and a caught returnSignal supplying the
// result (Nil if the body falls off the end without returning).
func (i *Interpreter) callUserFunction(fn *runtime.UserFunction, args []runtime.Value, callSpan ast.Span) (runtime.Value, error) {
	if i.callStack.WillOverflow() {
		err := runtime.NewStackOverflowError(callSpan, fn.Declaration.Name, i.callStack.MaxDepth())
		if i.lastTrace == nil {
			i.lastTrace = i.callStack.Frames()
		}
		return nil, err
	}
	i.callStack.Push(fn.Declaration.Name, i.lineForSpan(callSpan))
	defer i.callStack.Pop()

	callEnv := runtime.NewEnclosedEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		callEnv.Define(param, args[idx])
	}

	err := i.execBlock(fn.Declaration.Body, callEnv)
	if err == nil {
		return runtime.Nil, nil
	}
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	// Capture the stack as it stood at the deepest frame a runtime error
	// passed through, before it unwinds past this call.
	if i.lastTrace == nil {
		i.lastTrace = i.callStack.Frames()
	}
	return nil, err
}

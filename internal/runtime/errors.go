package runtime

import (
	"fmt"

	"github.com/cwbudde/lox/internal/ast"
)

// Error is the runtime error taxonomy (spec §7 RuntimeError). Every
// variant carries the span of the expression or statement that failed so
// diagnostics can render a source snippet (spec §4.6).
type Error interface {
	error
	runtimeError()
	Span() ast.Span
}

type baseError struct {
	span ast.Span
}

func (e baseError) Span() ast.Span { return e.span }
func (baseError) runtimeError()    {}

// UndefinedVariableError reports a lookup or assignment against a name no
// scope in the chain binds.
type UndefinedVariableError struct {
	baseError
	Name string
}

func NewUndefinedVariableError(span ast.Span, name string) *UndefinedVariableError {
	return &UndefinedVariableError{baseError{span}, name}
}
func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// NotCallableError reports a Call whose callee is not a Callable.
type NotCallableError struct{ baseError }

func NewNotCallableError(span ast.Span) *NotCallableError {
	return &NotCallableError{baseError{span}}
}
func (e *NotCallableError) Error() string { return "Can only call functions." }

// IncorrectArgumentCountError reports an arity mismatch at a call site.
type IncorrectArgumentCountError struct {
	baseError
	Expected, Got int
}

func NewIncorrectArgumentCountError(span ast.Span, expected, got int) *IncorrectArgumentCountError {
	return &IncorrectArgumentCountError{baseError{span}, expected, got}
}
func (e *IncorrectArgumentCountError) Error() string {
	return fmt.Sprintf("Expected %d arguments but got %d.", e.Expected, e.Got)
}

// DivideByZeroError reports Number division where the divisor is zero.
type DivideByZeroError struct{ baseError }

func NewDivideByZeroError(span ast.Span) *DivideByZeroError {
	return &DivideByZeroError{baseError{span}}
}
func (e *DivideByZeroError) Error() string { return "Division by zero." }

// InvalidUnaryError reports a unary `-` applied to a non-Number operand.
type InvalidUnaryError struct{ baseError }

func NewInvalidUnaryError(span ast.Span) *InvalidUnaryError {
	return &InvalidUnaryError{baseError{span}}
}
func (e *InvalidUnaryError) Error() string { return "Operand must be a number." }

// BinaryTypeMismatchError reports a binary operator applied to operands of
// incompatible or mixed types.
type BinaryTypeMismatchError struct {
	baseError
	Operator string
}

func NewBinaryTypeMismatchError(span ast.Span, operator string) *BinaryTypeMismatchError {
	return &BinaryTypeMismatchError{baseError{span}, operator}
}
func (e *BinaryTypeMismatchError) Error() string {
	return fmt.Sprintf("Operands to '%s' must be two numbers or two strings.", e.Operator)
}

// InvalidStringConcatError reports a non-`+` binary operator applied to two
// String operands.
type InvalidStringConcatError struct {
	baseError
	Operator string
}

func NewInvalidStringConcatError(span ast.Span, operator string) *InvalidStringConcatError {
	return &InvalidStringConcatError{baseError{span}, operator}
}
func (e *InvalidStringConcatError) Error() string {
	return fmt.Sprintf("Operator '%s' is not defined for strings.", e.Operator)
}

// NativeFunctionError wraps a failure raised while invoking a native
// function (spec §4.5, e.g. a clock read failure).
type NativeFunctionError struct {
	baseError
	Name   string
	Reason string
}

func NewNativeFunctionError(span ast.Span, name, reason string) *NativeFunctionError {
	return &NativeFunctionError{baseError{span}, name, reason}
}
func (e *NativeFunctionError) Error() string {
	return fmt.Sprintf("native function '%s' failed: %s", e.Name, e.Reason)
}

// StackOverflowError reports recursion past the configured call-depth
// limit. Not part of spec.md's RuntimeError list; supplemented from the
// teacher's CallStack guard (SPEC_FULL.md §4) since no Non-goal excludes
// ambient recursion safety.
type StackOverflowError struct {
	baseError
	FunctionName string
	MaxDepth     int
}

func NewStackOverflowError(span ast.Span, functionName string, maxDepth int) *StackOverflowError {
	return &StackOverflowError{baseError{span}, functionName, maxDepth}
}
func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("Stack overflow (max call depth %d exceeded in '%s').", e.MaxDepth, e.FunctionName)
}

// Package runtime defines the values, environments, and native callables
// the evaluator operates on (spec §3 Value, §4.3 Environment).
package runtime

import "strconv"

// Value is the tagged union of runtime values: Number, String, Bool, Nil,
// and Callable (spec §3).
type Value interface {
	// Type returns the value's runtime type tag, used in error messages.
	Type() string
	// String returns the value's display form (spec §6.3).
	String() string
}

// Number is an IEEE-754 single-precision floating point value. Single
// precision is sufficient to match the reference language's observed
// behavior (spec §3).
type Number float32

func (Number) Type() string { return "Number" }

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 32)
}

// String is UTF-8 text. Strings are logically immutable (spec §3).
type String string

func (String) Type() string     { return "String" }
func (s String) String() string { return string(s) }

// Bool is a boolean value.
type Bool bool

func (Bool) Type() string     { return "Bool" }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// nilValue is the sole inhabitant of the Nil type.
type nilValue struct{}

func (nilValue) Type() string   { return "Nil" }
func (nilValue) String() string { return "nil" }

// Nil is the singleton absent value (spec §3).
var Nil Value = nilValue{}

// Equal implements the language's `==` semantics (spec §4.4): same tag and
// same content; Nil equals only Nil.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case nilValue:
		_, ok := b.(nilValue)
		return ok
	default:
		// Callables compare by identity.
		return a == b
	}
}

// Truthy implements the language's truthiness rule: only nil and false are
// falsy, every other value (including 0 and "") is truthy (spec §4.4,
// resolving open question 2 in favor of the widely-used rule).
func Truthy(v Value) bool {
	switch vv := v.(type) {
	case nilValue:
		return false
	case Bool:
		return bool(vv)
	default:
		return true
	}
}

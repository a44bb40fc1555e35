package runtime

// Environment is a name-to-value scope with optional parent linkage
// (spec §3 Environment, §4.3). Closures capture the Environment active at
// the point a function is declared; blocks and calls create a fresh child
// Environment for the duration of their execution (spec §5).
type Environment struct {
	store map[string]Value
	outer *Environment
}

// NewEnvironment creates a root-level environment with no outer scope.
// Used for the global scope at interpreter startup (spec §4.3).
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// NewEnclosedEnvironment creates a child scope whose parent is outer. Used
// for block bodies and function call frames (spec §4.4).
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{store: make(map[string]Value), outer: outer}
}

// Define binds name to val in the current (innermost) scope, shadowing any
// binding of the same name in an outer scope. Define never fails, and
// always overwrites an existing binding in the same scope (spec §4.3).
func (e *Environment) Define(name string, val Value) {
	e.store[name] = val
}

// Get looks up name, walking outward through enclosing scopes. The bool
// result is false when no scope in the chain binds name (spec §4.3).
func (e *Environment) Get(name string) (Value, bool) {
	if val, ok := e.store[name]; ok {
		return val, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// Assign walks outward and mutates the nearest scope that already binds
// name. It never creates a new binding; the bool result is false when name
// is unbound anywhere in the chain (spec §4.3).
func (e *Environment) Assign(name string, val Value) bool {
	if _, ok := e.store[name]; ok {
		e.store[name] = val
		return true
	}
	if e.outer != nil {
		return e.outer.Assign(name, val)
	}
	return false
}

// Outer returns the enclosing environment, or nil at the root.
func (e *Environment) Outer() *Environment {
	return e.outer
}

package runtime

import "sort"

// Environment provides lexical scoping for Platypus runtime values.
//
// A method-call frame additionally carries the receiver instance: bare
// property names read and write the instance's live property map, so
// mutations inside a method are visible to the caller without a write-back
// step.
type Environment struct {
	values   map[string]Value
	parent   *Environment
	instance *InstanceValue
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// NewMethodEnvironment creates a call frame backed by an instance's property
// map. Lookups fall through locals to the instance before the parent chain.
func NewMethodEnvironment(parent *Environment, instance *InstanceValue) *Environment {
	env := NewEnvironment(parent)
	env.instance = instance
	return env
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or shadows a binding in the current scope.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get retrieves a binding, searching outward through the scope chain. The
// innermost frame containing the name wins.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.instance != nil {
		if v, ok := e.instance.Properties[name]; ok {
			return v, nil
		}
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, NewError(NameError, "Undefined variable: %s", name)
}

// Assign updates the nearest existing binding, searching outward. When no
// frame holds the name, it is defined in the current innermost frame: bare
// assignment implicitly declares.
func (e *Environment) Assign(name string, value Value) {
	if !e.assignExisting(name, value) {
		e.values[name] = value
	}
}

func (e *Environment) assignExisting(name string, value Value) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return true
	}
	if e.instance != nil {
		if _, ok := e.instance.Properties[name]; ok {
			e.instance.Properties[name] = value
			return true
		}
	}
	if e.parent != nil {
		return e.parent.assignExisting(name, value)
	}
	return false
}

// Keys returns the local bindings in sorted order (useful for determinism in
// tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"platypus/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNull
	KindArray
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

//-----------------------------------------------------------------------------
// Arrays
//-----------------------------------------------------------------------------

// ArrayValue is an ordered, mutable sequence. Bindings share the same
// ArrayValue pointer, so mutation through one binding is visible through all.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// FunctionValue is a user function or lambda plus the environment captured at
// its definition point. Invocation parents the call frame on Closure, not on
// the caller's environment.
type FunctionValue struct {
	Declaration ast.Node // *ast.FunctionDeclaration or *ast.LambdaExpression
	Closure     *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

//-----------------------------------------------------------------------------
// Classes and instances
//-----------------------------------------------------------------------------

// ClassValue is an immutable class blueprint: ordered property initializer
// expressions plus a method table. It is shared by every instance.
type ClassValue struct {
	Name       string
	Parent     *ClassValue
	Properties []*ast.PropertyDefinition
	Methods    map[string]*ast.MethodDefinition
}

func (v *ClassValue) Kind() Kind { return KindClass }

// ResolveMethod looks up a method in the class, walking the parent chain.
// It returns nil when no class in the chain defines the method.
func (v *ClassValue) ResolveMethod(name string) *ast.MethodDefinition {
	for class := v; class != nil; class = class.Parent {
		if method, ok := class.Methods[name]; ok {
			return method
		}
	}
	return nil
}

// InstanceValue owns a mutable property map unique to the instance. Method
// frames alias Properties directly; there is no copy-in/copy-out.
type InstanceValue struct {
	Class      *ClassValue
	Properties map[string]Value
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

//-----------------------------------------------------------------------------
// Shared helpers
//-----------------------------------------------------------------------------

// TypeName reports the language-visible type name used by typeof and by
// type patterns in match expressions.
func TypeName(v Value) string {
	switch v.Kind() {
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBool:
		return "Boolean"
	case KindNull:
		return "Null"
	case KindArray:
		return "Array"
	case KindFunction, KindNativeFunction:
		return "Function"
	case KindClass:
		return "Class"
	case KindInstance:
		return "Object"
	default:
		return "Unknown"
	}
}

// Truthy reports whether v counts as true in conditions.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case NullValue:
		return false
	case BoolValue:
		return val.Val
	case NumberValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	case *ArrayValue:
		return len(val.Elements) != 0
	default:
		return true
	}
}

// ToNumber coerces v to a float64 the way arithmetic and comparisons expect:
// numbers pass through, strings parse, booleans map to 1/0.
func ToNumber(v Value) (float64, error) {
	switch val := v.(type) {
	case NumberValue:
		return val.Val, nil
	case StringValue:
		n, err := strconv.ParseFloat(val.Val, 64)
		if err != nil {
			return 0, NewError(TypeError, "Cannot convert '%s' to number", val.Val)
		}
		return n, nil
	case BoolValue:
		if val.Val {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, NewError(TypeError, "Cannot convert %s to number", TypeName(v))
	}
}

// ValuesEqual compares scalar values; aggregates never compare equal.
func ValuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case NumberValue:
		bv, ok := b.(NumberValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	default:
		return false
	}
}

// Format renders v the way print and the REPL display it. Whole numbers
// print without a fractional part.
func Format(v Value) string {
	switch val := v.(type) {
	case NumberValue:
		if val.Val == math.Trunc(val.Val) && math.Abs(val.Val) < 1e15 {
			return strconv.FormatInt(int64(val.Val), 10)
		}
		return strconv.FormatFloat(val.Val, 'f', -1, 64)
	case StringValue:
		return val.Val
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case NullValue:
		return "null"
	case *ArrayValue:
		parts := make([]string, 0, len(val.Elements))
		for _, el := range val.Elements {
			parts = append(parts, Format(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *FunctionValue:
		switch decl := val.Declaration.(type) {
		case *ast.FunctionDeclaration:
			return fmt.Sprintf("<function(%d)>", len(decl.Params))
		case *ast.LambdaExpression:
			return fmt.Sprintf("<lambda(%d)>", len(decl.Params))
		default:
			return "<function>"
		}
	case NativeFunctionValue:
		return fmt.Sprintf("<native function %s(%d)>", val.Name, val.Arity)
	case *ClassValue:
		return fmt.Sprintf("<class %s>", val.Name)
	case *InstanceValue:
		return fmt.Sprintf("<%s object>", val.Class.Name)
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

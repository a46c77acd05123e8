package interpreter

import (
	"fmt"

	"platypus/interpreter-go/pkg/runtime"
)

func (i *Interpreter) registerBuiltins() {
	i.defineNative("print", 1, func(args []runtime.Value) (runtime.Value, error) {
		fmt.Fprintln(i.stdout, runtime.Format(args[0]))
		return runtime.NullValue{}, nil
	})

	i.defineNative("typeof", 1, func(args []runtime.Value) (runtime.Value, error) {
		return runtime.StringValue{Val: runtime.TypeName(args[0])}, nil
	})

	i.defineNative("len", 1, func(args []runtime.Value) (runtime.Value, error) {
		switch v := args[0].(type) {
		case *runtime.ArrayValue:
			return runtime.NumberValue{Val: float64(len(v.Elements))}, nil
		case runtime.StringValue:
			return runtime.NumberValue{Val: float64(len(v.Val))}, nil
		default:
			return nil, runtime.NewError(runtime.TypeError, "Cannot get length of %s", runtime.TypeName(args[0]))
		}
	})

	i.defineNative("map", 2, func(args []runtime.Value) (runtime.Value, error) {
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return nil, runtime.NewError(runtime.TypeError, "map expects an Array, got %s", runtime.TypeName(args[0]))
		}
		result := make([]runtime.Value, 0, len(arr.Elements))
		for _, el := range arr.Elements {
			mapped, err := i.callValue("map callback", args[1], []runtime.Value{el})
			if err != nil {
				return nil, err
			}
			result = append(result, mapped)
		}
		return &runtime.ArrayValue{Elements: result}, nil
	})

	i.defineNative("filter", 2, func(args []runtime.Value) (runtime.Value, error) {
		arr, ok := args[0].(*runtime.ArrayValue)
		if !ok {
			return nil, runtime.NewError(runtime.TypeError, "filter expects an Array, got %s", runtime.TypeName(args[0]))
		}
		result := make([]runtime.Value, 0, len(arr.Elements))
		for _, el := range arr.Elements {
			keep, err := i.callValue("filter callback", args[1], []runtime.Value{el})
			if err != nil {
				return nil, err
			}
			if runtime.Truthy(keep) {
				result = append(result, el)
			}
		}
		return &runtime.ArrayValue{Elements: result}, nil
	})
}

func (i *Interpreter) defineNative(name string, arity int, impl runtime.NativeFunc) {
	i.global.Define(name, runtime.NativeFunctionValue{Name: name, Arity: arity, Impl: impl})
}

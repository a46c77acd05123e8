package interpreter

import (
	"platypus/interpreter-go/pkg/ast"
	"platypus/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NullLiteral:
		return runtime.NullValue{}, nil
	case *ast.ArrayLiteral:
		values := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			val, err := i.evaluateExpression(el, env)
			if err != nil {
				return nil, err
			}
			values = append(values, val)
		}
		return &runtime.ArrayValue{Elements: values}, nil
	case *ast.Identifier:
		return env.Get(n.Name)
	case *ast.Assignment:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		env.Assign(n.Name, val)
		return val, nil
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.LambdaExpression:
		return &runtime.FunctionValue{Declaration: n, Closure: env}, nil
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	case *ast.MethodCall:
		return i.evaluateMethodCall(n, env)
	case *ast.NewExpression:
		return i.evaluateNewExpression(n, env)
	case *ast.PropertyAccess:
		return i.evaluatePropertyAccess(n, env)
	case *ast.PropertyAssignment:
		return i.evaluatePropertyAssignment(n, env)
	case *ast.MatchExpression:
		return i.evaluateMatchExpression(n, env)
	default:
		return nil, runtime.NewError(runtime.TypeError, "unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(left, expr.Operator, right)
}

func applyBinaryOp(left runtime.Value, op string, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "+":
		switch l := left.(type) {
		case runtime.NumberValue:
			if r, ok := right.(runtime.NumberValue); ok {
				return runtime.NumberValue{Val: l.Val + r.Val}, nil
			}
		case runtime.StringValue:
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		}
		return nil, runtime.NewError(runtime.TypeError, "Cannot add %s and %s", runtime.TypeName(left), runtime.TypeName(right))
	case "-", "*", "/":
		a, err := runtime.ToNumber(left)
		if err != nil {
			return nil, err
		}
		b, err := runtime.ToNumber(right)
		if err != nil {
			return nil, err
		}
		switch op {
		case "-":
			return runtime.NumberValue{Val: a - b}, nil
		case "*":
			return runtime.NumberValue{Val: a * b}, nil
		default:
			if b == 0 {
				return nil, runtime.NewError(runtime.TypeError, "Division by zero")
			}
			return runtime.NumberValue{Val: a / b}, nil
		}
	case "==":
		return runtime.BoolValue{Val: runtime.ValuesEqual(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !runtime.ValuesEqual(left, right)}, nil
	case "<", "<=", ">", ">=":
		a, err := runtime.ToNumber(left)
		if err != nil {
			return nil, err
		}
		b, err := runtime.ToNumber(right)
		if err != nil {
			return nil, err
		}
		switch op {
		case "<":
			return runtime.BoolValue{Val: a < b}, nil
		case "<=":
			return runtime.BoolValue{Val: a <= b}, nil
		case ">":
			return runtime.BoolValue{Val: a > b}, nil
		default:
			return runtime.BoolValue{Val: a >= b}, nil
		}
	case "&&":
		return runtime.BoolValue{Val: runtime.Truthy(left) && runtime.Truthy(right)}, nil
	case "||":
		return runtime.BoolValue{Val: runtime.Truthy(left) || runtime.Truthy(right)}, nil
	default:
		return nil, runtime.NewError(runtime.TypeError, "unsupported binary operator %s", op)
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "!":
		return runtime.BoolValue{Val: !runtime.Truthy(val)}, nil
	case "-":
		n, err := runtime.ToNumber(val)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: -n}, nil
	default:
		return nil, runtime.NewError(runtime.TypeError, "unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	// The privacy gate is call-context-based: any active function, method,
	// or lambda body satisfies it, regardless of where that body is defined.
	if isPrivateName(call.Name) && !i.inContext {
		return nil, runtime.NewError(runtime.AccessError, "Cannot call private function '%s' from outside context", call.Name)
	}

	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	callee, err := env.Get(call.Name)
	if err != nil {
		return nil, err
	}
	return i.callValue(call.Name, callee, args)
}

// callValue invokes any callable value. It is shared by direct calls and by
// builtins (map, filter) that apply functions to elements.
func (i *Interpreter) callValue(name string, callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	switch fn := callee.(type) {
	case runtime.NativeFunctionValue:
		if len(args) != fn.Arity {
			return nil, runtime.NewError(runtime.ArityError, "Native function %s expects %d arguments, got %d", fn.Name, fn.Arity, len(args))
		}
		return fn.Impl(args)
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args)
	default:
		return nil, runtime.NewError(runtime.TypeError, "%s is not a function", name)
	}
}

func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	popCall, err := i.pushCall()
	if err != nil {
		return nil, err
	}
	defer popCall()

	switch decl := fn.Declaration.(type) {
	case *ast.FunctionDeclaration:
		if len(args) != len(decl.Params) {
			return nil, runtime.NewError(runtime.ArityError, "Function '%s' expects %d arguments, got %d", decl.Name, len(decl.Params), len(args))
		}
		// The call frame parents the captured environment, not the caller's:
		// a closure keeps seeing its defining scope after that scope's call
		// has returned.
		localEnv := runtime.NewEnvironment(fn.Closure)
		for idx, param := range decl.Params {
			localEnv.Define(param, args[idx])
		}

		defer i.enterContext()()
		// A body that finishes without an executed return yields null; only
		// a return statement carries a value out.
		if _, err := i.executeBlock(decl.Body, localEnv); err != nil {
			if ret, ok := err.(returnSignal); ok {
				return ret.value, nil
			}
			return nil, err
		}
		return runtime.NullValue{}, nil
	case *ast.LambdaExpression:
		if len(args) != len(decl.Params) {
			return nil, runtime.NewError(runtime.ArityError, "Lambda expects %d arguments, got %d", len(decl.Params), len(args))
		}
		localEnv := runtime.NewEnvironment(fn.Closure)
		for idx, param := range decl.Params {
			localEnv.Define(param, args[idx])
		}

		defer i.enterContext()()
		return i.evaluateExpression(decl.Body, localEnv)
	default:
		return nil, runtime.NewError(runtime.TypeError, "calling unsupported function declaration %T", fn.Declaration)
	}
}

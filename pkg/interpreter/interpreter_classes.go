package interpreter

import (
	"platypus/interpreter-go/pkg/ast"
	"platypus/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeClassDeclaration(decl *ast.ClassDeclaration, env *runtime.Environment) (runtime.Value, error) {
	var parent *runtime.ClassValue
	if decl.Extends != "" {
		p, ok := i.classes[decl.Extends]
		if !ok {
			return nil, runtime.NewError(runtime.NameError, "Parent class '%s' not found", decl.Extends)
		}
		parent = p
	}

	methods := make(map[string]*ast.MethodDefinition, len(decl.Methods))
	for _, m := range decl.Methods {
		methods[m.Name] = m
	}

	class := &runtime.ClassValue{
		Name:       decl.Name,
		Parent:     parent,
		Properties: decl.Properties,
		Methods:    methods,
	}
	i.classes[decl.Name] = class
	env.Define(decl.Name, class)
	return runtime.NullValue{}, nil
}

func (i *Interpreter) evaluateNewExpression(expr *ast.NewExpression, env *runtime.Environment) (runtime.Value, error) {
	if isPrivateName(expr.ClassName) && !i.inContext {
		return nil, runtime.NewError(runtime.AccessError, "Cannot instantiate private class '%s' from outside context", expr.ClassName)
	}

	class, ok := i.classes[expr.ClassName]
	if !ok {
		return nil, runtime.NewError(runtime.NameError, "Class '%s' not found", expr.ClassName)
	}

	// Constructor arguments are evaluated for their effects. Properties take
	// their values from the class initializers, not from arguments.
	for _, argExpr := range expr.Arguments {
		if _, err := i.evaluateExpression(argExpr, env); err != nil {
			return nil, err
		}
	}

	instance := &runtime.InstanceValue{
		Class:      class,
		Properties: make(map[string]runtime.Value),
	}
	if err := i.initializeProperties(class, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

// initializeProperties runs property initializers root-first down the parent
// chain, so a subclass initializer overrides its parent's value.
func (i *Interpreter) initializeProperties(class *runtime.ClassValue, instance *runtime.InstanceValue) error {
	if class.Parent != nil {
		if err := i.initializeProperties(class.Parent, instance); err != nil {
			return err
		}
	}
	for _, prop := range class.Properties {
		if prop.Initializer == nil {
			instance.Properties[prop.Name] = runtime.NullValue{}
			continue
		}
		val, err := i.evaluateExpression(prop.Initializer, runtime.NewEnvironment(i.global))
		if err != nil {
			return err
		}
		instance.Properties[prop.Name] = val
	}
	return nil
}

func (i *Interpreter) evaluatePropertyAccess(expr *ast.PropertyAccess, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtime.NewError(runtime.TypeError, "Cannot access property '%s' on %s", expr.Property, runtime.TypeName(object))
	}
	if isPrivateName(expr.Property) && !i.inContext {
		return nil, runtime.NewError(runtime.AccessError, "Cannot access private property '%s' from outside class", expr.Property)
	}
	val, ok := instance.Properties[expr.Property]
	if !ok {
		return nil, runtime.NewError(runtime.NameError, "Property '%s' not found on object", expr.Property)
	}
	return val, nil
}

func (i *Interpreter) evaluatePropertyAssignment(expr *ast.PropertyAssignment, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(expr.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtime.NewError(runtime.TypeError, "Cannot assign property to %s", runtime.TypeName(object))
	}
	if isPrivateName(expr.Property) && !i.inContext {
		return nil, runtime.NewError(runtime.AccessError, "Cannot assign private property '%s' from outside class", expr.Property)
	}
	val, err := i.evaluateExpression(expr.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Properties[expr.Property] = val
	return val, nil
}

func (i *Interpreter) evaluateMethodCall(call *ast.MethodCall, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(call.Object, env)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	switch recv := object.(type) {
	case *runtime.InstanceValue:
		return i.invokeMethod(recv, call.Method, args)
	case *runtime.ArrayValue:
		return i.invokeArrayMethod(recv, call.Method, args)
	default:
		return nil, runtime.NewError(runtime.TypeError, "Cannot call method on %s", runtime.TypeName(object))
	}
}

func (i *Interpreter) invokeMethod(instance *runtime.InstanceValue, name string, args []runtime.Value) (runtime.Value, error) {
	if isPrivateName(name) && !i.inContext {
		return nil, runtime.NewError(runtime.AccessError, "Cannot call private method '%s' from outside class", name)
	}

	method := instance.Class.ResolveMethod(name)
	if method == nil {
		return nil, runtime.NewError(runtime.MethodNotFound, "Method '%s' not found on class '%s'", name, instance.Class.Name)
	}
	if len(args) != len(method.Params) {
		return nil, runtime.NewError(runtime.ArityError, "Method '%s' expects %d arguments, got %d", name, len(method.Params), len(args))
	}

	popCall, err := i.pushCall()
	if err != nil {
		return nil, err
	}
	defer popCall()

	// The method frame is backed by the instance itself: bare property names
	// read and write the live property map, so there is no copy-back step.
	methodEnv := runtime.NewMethodEnvironment(i.global, instance)
	methodEnv.Define("this", instance)
	for idx, param := range method.Params {
		methodEnv.Define(param, args[idx])
	}

	defer i.enterContext()()
	if _, err := i.executeBlock(method.Body, methodEnv); err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		return nil, err
	}
	return runtime.NullValue{}, nil
}

func (i *Interpreter) invokeArrayMethod(arr *runtime.ArrayValue, name string, args []runtime.Value) (runtime.Value, error) {
	switch name {
	case "push":
		if len(args) != 1 {
			return nil, runtime.NewError(runtime.ArityError, "Method 'push' expects 1 arguments, got %d", len(args))
		}
		arr.Elements = append(arr.Elements, args[0])
		return arr, nil
	case "pop":
		if len(args) != 0 {
			return nil, runtime.NewError(runtime.ArityError, "Method 'pop' expects 0 arguments, got %d", len(args))
		}
		if len(arr.Elements) == 0 {
			return runtime.NullValue{}, nil
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last, nil
	default:
		return nil, runtime.NewError(runtime.MethodNotFound, "Method '%s' not found on Array", name)
	}
}

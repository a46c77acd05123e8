// Package interpreter evaluates Platypus AST nodes against an environment
// chain. One Interpreter owns one program run; independent scripts need
// independent interpreters.
package interpreter

import (
	"io"
	"os"

	"platypus/interpreter-go/pkg/ast"
	"platypus/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds recursion before evaluation fails with a
// StackOverflow error instead of exhausting the host stack.
const DefaultMaxCallDepth = 1000

// Interpreter drives evaluation of Platypus AST nodes.
type Interpreter struct {
	global  *runtime.Environment
	classes map[string]*runtime.ClassValue
	stdout  io.Writer

	// inContext is true while any function, method, or lambda body is on
	// the call stack. It gates access to private-marked names.
	inContext    bool
	callDepth    int
	maxCallDepth int
}

// New returns an interpreter with builtins registered in a fresh global
// environment, printing to stdout.
func New() *Interpreter {
	i := &Interpreter{
		global:       runtime.NewEnvironment(nil),
		classes:      make(map[string]*runtime.ClassValue),
		stdout:       os.Stdout,
		maxCallDepth: DefaultMaxCallDepth,
	}
	i.registerBuiltins()
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// SetStdout redirects the print builtin (and nothing else).
func (i *Interpreter) SetStdout(w io.Writer) {
	i.stdout = w
}

// SetMaxCallDepth adjusts the recursion limit.
func (i *Interpreter) SetMaxCallDepth(depth int) {
	i.maxCallDepth = depth
}

// returnSignal unwinds a function body when a return statement executes. It
// travels the error path so every intermediate frame cleans up normally.
type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return outside function" }

// EvaluateProgram executes top-level statements in order against the global
// environment and returns the last evaluated value.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	var last runtime.Value = runtime.NullValue{}
	for _, stmt := range program.Statements {
		val, err := i.executeStatement(stmt, i.global)
		if err != nil {
			if _, ok := err.(returnSignal); ok {
				return nil, runtime.NewError(runtime.TypeError, "return outside function")
			}
			return nil, err
		}
		last = val
	}
	return last, nil
}

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.VariableDeclaration:
		val, err := i.evaluateExpression(n.Value, env)
		if err != nil {
			return nil, err
		}
		env.Assign(n.Name, val)
		return runtime.NullValue{}, nil
	case *ast.FunctionDeclaration:
		fn := &runtime.FunctionValue{Declaration: n, Closure: env}
		env.Define(n.Name, fn)
		return runtime.NullValue{}, nil
	case *ast.ClassDeclaration:
		return i.executeClassDeclaration(n, env)
	case *ast.ReturnStatement:
		var result runtime.Value = runtime.NullValue{}
		if n.Argument != nil {
			val, err := i.evaluateExpression(n.Argument, env)
			if err != nil {
				return nil, err
			}
			result = val
		}
		return nil, returnSignal{value: result}
	case *ast.ExpressionStatement:
		return i.evaluateExpression(n.Expression, env)
	case *ast.IfStatement:
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(cond) {
			return i.executeStatement(n.Then, env)
		}
		if n.Else != nil {
			return i.executeStatement(n.Else, env)
		}
		return runtime.NullValue{}, nil
	case *ast.WhileStatement:
		return i.executeWhile(n, env)
	case *ast.ForStatement:
		return i.executeFor(n, env)
	case *ast.ForEachStatement:
		return i.executeForEach(n, env)
	case *ast.BlockStatement:
		return i.executeBlock(n.Statements, runtime.NewEnvironment(env))
	default:
		return nil, runtime.NewError(runtime.TypeError, "unsupported statement type: %s", n.NodeType())
	}
}

// executeBlock runs statements in env. A returnSignal propagates to the
// enclosing function call.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	var result runtime.Value = runtime.NullValue{}
	for _, stmt := range statements {
		val, err := i.executeStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) executeWhile(loop *ast.WhileStatement, env *runtime.Environment) (runtime.Value, error) {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return runtime.NullValue{}, nil
		}
		if _, err := i.executeStatement(loop.Body, env); err != nil {
			return nil, err
		}
	}
}

func (i *Interpreter) executeFor(loop *ast.ForStatement, env *runtime.Environment) (runtime.Value, error) {
	loopEnv := runtime.NewEnvironment(env)
	if loop.Init != nil {
		if _, err := i.executeStatement(loop.Init, loopEnv); err != nil {
			return nil, err
		}
	}
	for {
		if loop.Condition != nil {
			cond, err := i.evaluateExpression(loop.Condition, loopEnv)
			if err != nil {
				return nil, err
			}
			if !runtime.Truthy(cond) {
				return runtime.NullValue{}, nil
			}
		}
		if _, err := i.executeStatement(loop.Body, loopEnv); err != nil {
			return nil, err
		}
		if loop.Increment != nil {
			if _, err := i.evaluateExpression(loop.Increment, loopEnv); err != nil {
				return nil, err
			}
		}
	}
}

func (i *Interpreter) executeForEach(loop *ast.ForEachStatement, env *runtime.Environment) (runtime.Value, error) {
	iterable, err := i.evaluateExpression(loop.Iterable, env)
	if err != nil {
		return nil, err
	}
	arr, ok := iterable.(*runtime.ArrayValue)
	if !ok {
		return nil, runtime.NewError(runtime.TypeError, "Cannot iterate over non-array value in foreach loop")
	}
	loopEnv := runtime.NewEnvironment(env)
	for _, item := range arr.Elements {
		loopEnv.Define(loop.Variable, item)
		if _, err := i.executeStatement(loop.Body, loopEnv); err != nil {
			return nil, err
		}
	}
	return runtime.NullValue{}, nil
}

// enterContext raises the in-context flag and returns a restore func. Callers
// must defer the restore so the prior value comes back on every exit path,
// error propagation included; otherwise a failed call would leave elevated
// privacy access active for subsequent statements.
func (i *Interpreter) enterContext() func() {
	prev := i.inContext
	i.inContext = true
	return func() { i.inContext = prev }
}

// pushCall enforces the recursion limit and returns a restore func.
func (i *Interpreter) pushCall() (func(), error) {
	if i.callDepth >= i.maxCallDepth {
		return nil, runtime.NewError(runtime.StackOverflow, "Maximum call depth %d exceeded", i.maxCallDepth)
	}
	i.callDepth++
	return func() { i.callDepth-- }, nil
}

// isPrivateName reports whether name carries the private marker.
func isPrivateName(name string) bool {
	return len(name) > 0 && name[0] == '_'
}

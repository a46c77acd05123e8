package interpreter

import (
	"strings"
	"testing"

	"platypus/interpreter-go/pkg/ast"
	"platypus/interpreter-go/pkg/runtime"
)

func counterClass() *ast.ClassDeclaration {
	return ast.Class("Counter",
		[]*ast.PropertyDefinition{ast.PropDef("value", ast.Num(0))},
		[]*ast.MethodDefinition{
			ast.MethodDef("increment", nil,
				ast.Var("value", ast.Bin("+", ast.ID("value"), ast.Num(1))),
			),
			ast.MethodDef("get", nil, ast.Ret(ast.ID("value"))),
		},
	)
}

func TestInstantiationRunsInitializers(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		counterClass(),
		ast.Var("c", ast.New("Counter")),
		ast.ExprStmt(ast.Prop(ast.ID("c"), "value")),
	))
	expectNumber(t, val, 0)
}

func TestMethodMutatesLiveInstance(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		counterClass(),
		ast.Var("c", ast.New("Counter")),
		ast.ExprStmt(ast.Method(ast.ID("c"), "increment")),
		ast.ExprStmt(ast.Method(ast.ID("c"), "increment")),
		ast.ExprStmt(ast.Method(ast.ID("c"), "get")),
	))
	expectNumber(t, val, 2)
}

func TestMethodWithoutReturnYieldsNull(t *testing.T) {
	class := ast.Class("Box", nil,
		[]*ast.MethodDefinition{
			ast.MethodDef("touch", nil, ast.ExprStmt(ast.Num(42))),
		},
	)
	val := evalProgram(t, ast.Prog(
		class,
		ast.Var("b", ast.New("Box")),
		ast.ExprStmt(ast.Method(ast.ID("b"), "touch")),
	))
	if _, ok := val.(runtime.NullValue); !ok {
		t.Fatalf("method without return produced %#v, want null", val)
	}
}

func TestInstanceAliasingSeesMutations(t *testing.T) {
	// Two bindings of the same instance observe each other's mutations.
	// Depositing through a and withdrawing through b leaves both at 4900.
	account := ast.Class("Account",
		[]*ast.PropertyDefinition{ast.PropDef("balance", ast.Num(5000))},
		[]*ast.MethodDefinition{
			ast.MethodDef("deposit", []string{"amount"},
				ast.Var("balance", ast.Bin("+", ast.ID("balance"), ast.ID("amount"))),
			),
			ast.MethodDef("withdraw", []string{"amount"},
				ast.Var("balance", ast.Bin("-", ast.ID("balance"), ast.ID("amount"))),
			),
		},
	)
	val := evalProgram(t, ast.Prog(
		account,
		ast.Var("a", ast.New("Account")),
		ast.Var("b", ast.ID("a")),
		ast.ExprStmt(ast.Method(ast.ID("a"), "deposit", ast.Num(100))),
		ast.ExprStmt(ast.Method(ast.ID("b"), "withdraw", ast.Num(200))),
		ast.ExprStmt(ast.Prop(ast.ID("a"), "balance")),
	))
	expectNumber(t, val, 4900)
}

func TestConstructorArgumentsEvaluatedThenDiscarded(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		counterClass(),
		ast.Var("seen", ast.Num(0)),
		ast.Fn("mark", []string{"n"},
			ast.Var("seen", ast.ID("n")),
			ast.Ret(ast.ID("n")),
		),
		ast.Var("c", ast.New("Counter", ast.Call("mark", ast.Num(7)))),
		ast.ExprStmt(ast.Bin("+", ast.ID("seen"), ast.Prop(ast.ID("c"), "value"))),
	))
	expectNumber(t, val, 7)
}

func TestUnknownClass(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(ast.ExprStmt(ast.New("Ghost"))))
	expectErrorKind(t, err, runtime.NameError)
}

func TestUnknownProperty(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		counterClass(),
		ast.Var("c", ast.New("Counter")),
		ast.ExprStmt(ast.Prop(ast.ID("c"), "nope")),
	))
	expectErrorKind(t, err, runtime.NameError)
}

func TestMethodNotFound(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		counterClass(),
		ast.Var("c", ast.New("Counter")),
		ast.ExprStmt(ast.Method(ast.ID("c"), "reset")),
	))
	expectErrorKind(t, err, runtime.MethodNotFound)
	if !strings.Contains(err.Error(), "Counter") {
		t.Fatalf("error should name the class: %v", err)
	}
}

func TestMethodArityMismatch(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		counterClass(),
		ast.Var("c", ast.New("Counter")),
		ast.ExprStmt(ast.Method(ast.ID("c"), "get", ast.Num(1))),
	))
	expectErrorKind(t, err, runtime.ArityError)
}

func TestPropertyAccessOnNonInstance(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.Var("n", ast.Num(1)),
		ast.ExprStmt(ast.Prop(ast.ID("n"), "x")),
	))
	expectErrorKind(t, err, runtime.TypeError)
}

func TestExtendsInheritsMethodsAndProperties(t *testing.T) {
	base := ast.Class("Animal",
		[]*ast.PropertyDefinition{ast.PropDef("legs", ast.Num(4))},
		[]*ast.MethodDefinition{
			ast.MethodDef("legCount", nil, ast.Ret(ast.ID("legs"))),
		},
	)
	derived := ast.ClassExt("Bird", "Animal",
		[]*ast.PropertyDefinition{ast.PropDef("legs", ast.Num(2))},
		nil,
	)
	val := evalProgram(t, ast.Prog(
		base,
		derived,
		ast.Var("b", ast.New("Bird")),
		ast.ExprStmt(ast.Method(ast.ID("b"), "legCount")),
	))
	expectNumber(t, val, 2)
}

func TestExtendsMethodOverride(t *testing.T) {
	base := ast.Class("Animal", nil,
		[]*ast.MethodDefinition{
			ast.MethodDef("speak", nil, ast.Ret(ast.Str("..."))),
		},
	)
	derived := ast.ClassExt("Dog", "Animal", nil,
		[]*ast.MethodDefinition{
			ast.MethodDef("speak", nil, ast.Ret(ast.Str("woof"))),
		},
	)
	val := evalProgram(t, ast.Prog(
		base,
		derived,
		ast.Var("d", ast.New("Dog")),
		ast.ExprStmt(ast.Method(ast.ID("d"), "speak")),
	))
	str, ok := val.(runtime.StringValue)
	if !ok || str.Val != "woof" {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestExtendsUnknownParent(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.ClassExt("Dog", "Animal", nil, nil),
	))
	expectErrorKind(t, err, runtime.NameError)
}

func TestThisBoundInsideMethods(t *testing.T) {
	class := ast.Class("Box",
		[]*ast.PropertyDefinition{ast.PropDef("size", ast.Num(3))},
		[]*ast.MethodDefinition{
			ast.MethodDef("self", nil, ast.Ret(ast.ID("this"))),
		},
	)
	val := evalProgram(t, ast.Prog(
		class,
		ast.Var("b", ast.New("Box")),
		ast.ExprStmt(ast.Prop(ast.Method(ast.ID("b"), "self"), "size")),
	))
	expectNumber(t, val, 3)
}

package interpreter

import (
	"bytes"
	"testing"

	"platypus/interpreter-go/pkg/ast"
	"platypus/interpreter-go/pkg/runtime"
)

func evalProgram(t *testing.T, program *ast.Program) runtime.Value {
	t.Helper()
	interp := New()
	val, err := interp.EvaluateProgram(program)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return val
}

func expectNumber(t *testing.T, val runtime.Value, want float64) {
	t.Helper()
	num, ok := val.(runtime.NumberValue)
	if !ok || num.Val != want {
		t.Fatalf("unexpected value %#v, want %v", val, want)
	}
}

func expectErrorKind(t *testing.T, err error, kind runtime.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", kind)
	}
	if got := runtime.KindOf(err); got != kind {
		t.Fatalf("error kind = %q, want %q (err: %v)", got, kind, err)
	}
}

func TestGlobalEnvironmentLookup(t *testing.T) {
	interp := New()
	interp.GlobalEnvironment().Define("greeting", runtime.StringValue{Val: "hello"})

	val, err := interp.EvaluateProgram(ast.Prog(ast.ExprStmt(ast.ID("greeting"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	str, ok := val.(runtime.StringValue)
	if !ok || str.Val != "hello" {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.ExprStmt(ast.Bin("+", ast.Num(2), ast.Bin("*", ast.Num(3), ast.Num(4)))),
	))
	expectNumber(t, val, 14)
}

func TestStringConcatenation(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.ExprStmt(ast.Bin("+", ast.Str("foo"), ast.Str("bar"))),
	))
	str, ok := val.(runtime.StringValue)
	if !ok || str.Val != "foobar" {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestAddMixedTypesFails(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.ExprStmt(ast.Bin("+", ast.Num(1), ast.Str("x"))),
	))
	expectErrorKind(t, err, runtime.TypeError)
}

func TestDivisionByZero(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.ExprStmt(ast.Bin("/", ast.Num(1), ast.Num(0))),
	))
	expectErrorKind(t, err, runtime.TypeError)
}

func TestLogicalOperatorsEvaluateBothSides(t *testing.T) {
	// Both operands run even when the left already decides the outcome.
	val := evalProgram(t, ast.Prog(
		ast.Var("count", ast.Num(0)),
		ast.Fn("bump", nil,
			ast.Var("count", ast.Bin("+", ast.ID("count"), ast.Num(1))),
			ast.Ret(ast.Bool(true)),
		),
		ast.ExprStmt(ast.Bin("||", ast.Bool(true), ast.Call("bump"))),
		ast.ExprStmt(ast.Bin("&&", ast.Bool(false), ast.Call("bump"))),
		ast.ExprStmt(ast.ID("count")),
	))
	expectNumber(t, val, 2)
}

func TestAggregatesNeverCompareEqual(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.Var("a", ast.Arr(ast.Num(1))),
		ast.ExprStmt(ast.Bin("==", ast.ID("a"), ast.ID("a"))),
	))
	b, ok := val.(runtime.BoolValue)
	if !ok || b.Val {
		t.Fatalf("array self-equality should be false, got %#v", val)
	}
}

func TestUndefinedVariable(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(ast.ExprStmt(ast.ID("missing"))))
	expectErrorKind(t, err, runtime.NameError)
}

func TestAssignmentMutatesOuterBinding(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.Var("x", ast.Num(1)),
		ast.Block(ast.Var("x", ast.Num(2))),
		ast.ExprStmt(ast.ID("x")),
	))
	expectNumber(t, val, 2)
}

func TestFunctionCallAndReturn(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.Fn("add", []string{"a", "b"},
			ast.Ret(ast.Bin("+", ast.ID("a"), ast.ID("b"))),
		),
		ast.ExprStmt(ast.Call("add", ast.Num(2), ast.Num(3))),
	))
	expectNumber(t, val, 5)
}

func TestFunctionWithoutReturnYieldsNull(t *testing.T) {
	// The last statement's value does not leak out of a function body; only
	// an executed return statement carries a value.
	val := evalProgram(t, ast.Prog(
		ast.Fn("f", nil, ast.ExprStmt(ast.Num(42))),
		ast.ExprStmt(ast.Call("f")),
	))
	if _, ok := val.(runtime.NullValue); !ok {
		t.Fatalf("function without return produced %#v, want null", val)
	}
}

func TestFunctionArityMismatch(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.Fn("add", []string{"a", "b"}, ast.Ret(ast.Num(0))),
		ast.ExprStmt(ast.Call("add", ast.Num(1))),
	))
	expectErrorKind(t, err, runtime.ArityError)
}

func TestCallingNonFunction(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.Var("nope", ast.Num(5)),
		ast.ExprStmt(ast.Call("nope")),
	))
	expectErrorKind(t, err, runtime.TypeError)
}

func TestClosureKeepsDefiningScopeAlive(t *testing.T) {
	// makeCounter returns a lambda whose captured count survives the call
	// that created it; two counters do not share state.
	counterBody := ast.Lam(nil,
		ast.Assign("count", ast.Bin("+", ast.ID("count"), ast.Num(1))),
	)
	val := evalProgram(t, ast.Prog(
		ast.Fn("makeCounter", nil,
			ast.Var("count", ast.Num(0)),
			ast.Ret(counterBody),
		),
		ast.Var("c1", ast.Call("makeCounter")),
		ast.Var("c2", ast.Call("makeCounter")),
		ast.ExprStmt(ast.Call("c1")),
		ast.ExprStmt(ast.Call("c1")),
		ast.ExprStmt(ast.Call("c2")),
		ast.ExprStmt(ast.Call("c1")),
	))
	expectNumber(t, val, 3)
}

func TestClosureSeesLaterMutation(t *testing.T) {
	// The closure captures the environment itself, not a snapshot of its
	// values at lambda creation time.
	val := evalProgram(t, ast.Prog(
		ast.Var("x", ast.Num(1)),
		ast.Var("get", ast.Lam(nil, ast.ID("x"))),
		ast.Var("x", ast.Num(99)),
		ast.ExprStmt(ast.Call("get")),
	))
	expectNumber(t, val, 99)
}

func TestWhileLoop(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.Var("i", ast.Num(0)),
		ast.Var("sum", ast.Num(0)),
		ast.While(ast.Bin("<", ast.ID("i"), ast.Num(5)), ast.Block(
			ast.Var("sum", ast.Bin("+", ast.ID("sum"), ast.ID("i"))),
			ast.Var("i", ast.Bin("+", ast.ID("i"), ast.Num(1))),
		)),
		ast.ExprStmt(ast.ID("sum")),
	))
	expectNumber(t, val, 10)
}

func TestForEachLoop(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.Var("total", ast.Num(0)),
		ast.ForEach("n", ast.Arr(ast.Num(1), ast.Num(2), ast.Num(3)), ast.Block(
			ast.Var("total", ast.Bin("+", ast.ID("total"), ast.ID("n"))),
		)),
		ast.ExprStmt(ast.ID("total")),
	))
	expectNumber(t, val, 6)
}

func TestForEachRequiresArray(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.ForEach("n", ast.Num(3), ast.Block()),
	))
	expectErrorKind(t, err, runtime.TypeError)
}

func TestReturnOutsideFunction(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(ast.Ret(ast.Num(1))))
	expectErrorKind(t, err, runtime.TypeError)
}

func TestStackOverflowDetected(t *testing.T) {
	interp := New()
	interp.SetMaxCallDepth(50)
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.Fn("loop", nil, ast.Ret(ast.Call("loop"))),
		ast.ExprStmt(ast.Call("loop")),
	))
	expectErrorKind(t, err, runtime.StackOverflow)
}

func TestBuiltinPrintFormats(t *testing.T) {
	interp := New()
	var out bytes.Buffer
	interp.SetStdout(&out)
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.ExprStmt(ast.Call("print", ast.Num(3))),
		ast.ExprStmt(ast.Call("print", ast.Num(2.5))),
		ast.ExprStmt(ast.Call("print", ast.Arr(ast.Num(1), ast.Str("a")))),
		ast.ExprStmt(ast.Call("print", ast.Null())),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "3\n2.5\n[1, a]\nnull\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestBuiltinTypeof(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.ExprStmt(ast.Call("typeof", ast.Arr())),
	))
	str, ok := val.(runtime.StringValue)
	if !ok || str.Val != "Array" {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestBuiltinLen(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.ExprStmt(ast.Call("len", ast.Str("hello"))),
	))
	expectNumber(t, val, 5)

	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.ExprStmt(ast.Call("len", ast.Num(5))),
	))
	expectErrorKind(t, err, runtime.TypeError)
}

func TestBuiltinMapAndFilter(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.Var("nums", ast.Arr(ast.Num(1), ast.Num(2), ast.Num(3), ast.Num(4))),
		ast.Var("doubled", ast.Call("map", ast.ID("nums"),
			ast.Lam([]string{"n"}, ast.Bin("*", ast.ID("n"), ast.Num(2))))),
		ast.Var("big", ast.Call("filter", ast.ID("doubled"),
			ast.Lam([]string{"n"}, ast.Bin(">", ast.ID("n"), ast.Num(4))))),
		ast.ExprStmt(ast.Call("len", ast.ID("big"))),
	))
	expectNumber(t, val, 2)
}

func TestBuiltinArityError(t *testing.T) {
	interp := New()
	_, err := interp.EvaluateProgram(ast.Prog(
		ast.ExprStmt(ast.Call("print", ast.Num(1), ast.Num(2))),
	))
	expectErrorKind(t, err, runtime.ArityError)
}

func TestArrayPushSharesStorage(t *testing.T) {
	// Arrays are reference values: pushing through one binding is visible
	// through every other binding of the same array.
	val := evalProgram(t, ast.Prog(
		ast.Var("a", ast.Arr(ast.Num(1), ast.Num(2), ast.Num(3))),
		ast.Var("b", ast.ID("a")),
		ast.ExprStmt(ast.Method(ast.ID("b"), "push", ast.Num(4))),
		ast.ExprStmt(ast.Call("len", ast.ID("a"))),
	))
	expectNumber(t, val, 4)
}

func TestArrayPop(t *testing.T) {
	val := evalProgram(t, ast.Prog(
		ast.Var("a", ast.Arr(ast.Num(1), ast.Num(2))),
		ast.ExprStmt(ast.Method(ast.ID("a"), "pop")),
	))
	expectNumber(t, val, 2)

	empty := evalProgram(t, ast.Prog(
		ast.Var("a", ast.Arr()),
		ast.ExprStmt(ast.Method(ast.ID("a"), "pop")),
	))
	if _, ok := empty.(runtime.NullValue); !ok {
		t.Fatalf("pop on empty array = %#v, want null", empty)
	}
}

package interpreter

import (
	"platypus/interpreter-go/pkg/ast"
	"platypus/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateMatchExpression(expr *ast.MatchExpression, env *runtime.Environment) (runtime.Value, error) {
	subject, err := i.evaluateExpression(expr.Subject, env)
	if err != nil {
		return nil, err
	}
	for _, clause := range expr.Clauses {
		matched, err := i.patternMatches(clause.Pattern, subject, env)
		if err != nil {
			return nil, err
		}
		if matched {
			return i.evaluateExpression(clause.Body, env)
		}
	}
	return nil, runtime.NewError(runtime.MatchError, "No matching case found")
}

func (i *Interpreter) patternMatches(pattern ast.Pattern, subject runtime.Value, env *runtime.Environment) (bool, error) {
	switch p := pattern.(type) {
	case *ast.WildcardPattern:
		return true, nil
	case *ast.LiteralPattern:
		lit, err := i.evaluateExpression(p.Literal, env)
		if err != nil {
			return false, err
		}
		return runtime.ValuesEqual(subject, lit), nil
	case *ast.TypePattern:
		return runtime.TypeName(subject) == p.Name, nil
	default:
		return false, runtime.NewError(runtime.MatchError, "unsupported pattern type %T", pattern)
	}
}

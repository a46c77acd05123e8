package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Null() *NullLiteral {
	return NewNullLiteral()
}

func Arr(elements ...Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

// Expression helpers.

func Assign(name string, value Expression) *Assignment {
	return NewAssignment(name, value)
}

func Prop(object Expression, property string) *PropertyAccess {
	return NewPropertyAccess(object, property)
}

func PropAssign(object Expression, property string, value Expression) *PropertyAssignment {
	return NewPropertyAssignment(object, property, value)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Un(operator string, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Call(name string, arguments ...Expression) *FunctionCall {
	return NewFunctionCall(name, arguments)
}

func Method(object Expression, method string, arguments ...Expression) *MethodCall {
	return NewMethodCall(object, method, arguments)
}

func New(className string, arguments ...Expression) *NewExpression {
	return NewNewExpression(className, arguments)
}

func Lam(params []string, body Expression) *LambdaExpression {
	return NewLambdaExpression(params, body)
}

// Match helpers.

func Match(subject Expression, clauses ...*MatchClause) *MatchExpression {
	return NewMatchExpression(subject, clauses)
}

func Clause(pattern Pattern, body Expression) *MatchClause {
	return NewMatchClause(pattern, body)
}

func Wc() *WildcardPattern {
	return NewWildcardPattern()
}

func LitP(literal Expression) *LiteralPattern {
	return NewLiteralPattern(literal)
}

func TypeP(name string) *TypePattern {
	return NewTypePattern(name)
}

// Statement helpers.

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}

func Var(name string, value Expression) *VariableDeclaration {
	return NewVariableDeclaration(name, value)
}

func Fn(name string, params []string, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(name, params, "", body)
}

func Class(name string, properties []*PropertyDefinition, methods []*MethodDefinition) *ClassDeclaration {
	return NewClassDeclaration(name, "", properties, methods)
}

func ClassExt(name, extends string, properties []*PropertyDefinition, methods []*MethodDefinition) *ClassDeclaration {
	return NewClassDeclaration(name, extends, properties, methods)
}

func PropDef(name string, initializer Expression) *PropertyDefinition {
	return NewPropertyDefinition(name, initializer)
}

func MethodDef(name string, params []string, body ...Statement) *MethodDefinition {
	return NewMethodDefinition(name, params, "", body)
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func ExprStmt(expression Expression) *ExpressionStatement {
	return NewExpressionStatement(expression)
}

func If(condition Expression, then, elseBranch Statement) *IfStatement {
	return NewIfStatement(condition, then, elseBranch)
}

func While(condition Expression, body Statement) *WhileStatement {
	return NewWhileStatement(condition, body)
}

func ForEach(variable string, iterable Expression, body Statement) *ForEachStatement {
	return NewForEachStatement(variable, iterable, body)
}

func Block(statements ...Statement) *BlockStatement {
	return NewBlockStatement(statements)
}

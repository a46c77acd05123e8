package ast

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeIdentifier          NodeType = "Identifier"
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeNullLiteral         NodeType = "NullLiteral"
	NodeArrayLiteral        NodeType = "ArrayLiteral"
	NodeAssignment          NodeType = "Assignment"
	NodePropertyAccess      NodeType = "PropertyAccess"
	NodePropertyAssignment  NodeType = "PropertyAssignment"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeFunctionCall        NodeType = "FunctionCall"
	NodeMethodCall          NodeType = "MethodCall"
	NodeNewExpression       NodeType = "NewExpression"
	NodeLambdaExpression    NodeType = "LambdaExpression"
	NodeMatchExpression     NodeType = "MatchExpression"
	NodeMatchClause         NodeType = "MatchClause"
	NodeWildcardPattern     NodeType = "WildcardPattern"
	NodeLiteralPattern      NodeType = "LiteralPattern"
	NodeTypePattern         NodeType = "TypePattern"
	NodeVariableDeclaration NodeType = "VariableDeclaration"
	NodeFunctionDeclaration NodeType = "FunctionDeclaration"
	NodeClassDeclaration    NodeType = "ClassDeclaration"
	NodePropertyDefinition  NodeType = "PropertyDefinition"
	NodeMethodDefinition    NodeType = "MethodDefinition"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodeForStatement        NodeType = "ForStatement"
	NodeForEachStatement    NodeType = "ForEachStatement"
	NodeBlockStatement      NodeType = "BlockStatement"
)

// Node is the shared behaviour of every AST node.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Pattern is a match-clause pattern: wildcard, literal, or type name.
type Pattern interface {
	Node
	patternNode()
}

type patternMarker struct{}

func (patternMarker) patternNode() {}

// Program

type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

// Identifier and literals

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

type NumberLiteral struct {
	nodeImpl
	expressionMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

// Expressions

type Assignment struct {
	nodeImpl
	expressionMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewAssignment(name string, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Value: value}
}

type PropertyAccess struct {
	nodeImpl
	expressionMarker

	Object   Expression `json:"object"`
	Property string     `json:"property"`
}

func NewPropertyAccess(object Expression, property string) *PropertyAccess {
	return &PropertyAccess{nodeImpl: newNodeImpl(NodePropertyAccess), Object: object, Property: property}
}

type PropertyAssignment struct {
	nodeImpl
	expressionMarker

	Object   Expression `json:"object"`
	Property string     `json:"property"`
	Value    Expression `json:"value"`
}

func NewPropertyAssignment(object Expression, property string, value Expression) *PropertyAssignment {
	return &PropertyAssignment{nodeImpl: newNodeImpl(NodePropertyAssignment), Object: object, Property: property, Value: value}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewUnaryExpression(operator string, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

// FunctionCall invokes a top-level function or builtin by name.
type FunctionCall struct {
	nodeImpl
	expressionMarker

	Name      string       `json:"name"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(name string, arguments []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name, Arguments: arguments}
}

type MethodCall struct {
	nodeImpl
	expressionMarker

	Object    Expression   `json:"object"`
	Method    string       `json:"method"`
	Arguments []Expression `json:"arguments"`
}

func NewMethodCall(object Expression, method string, arguments []Expression) *MethodCall {
	return &MethodCall{nodeImpl: newNodeImpl(NodeMethodCall), Object: object, Method: method, Arguments: arguments}
}

type NewExpression struct {
	nodeImpl
	expressionMarker

	ClassName string       `json:"className"`
	Arguments []Expression `json:"arguments"`
}

func NewNewExpression(className string, arguments []Expression) *NewExpression {
	return &NewExpression{nodeImpl: newNodeImpl(NodeNewExpression), ClassName: className, Arguments: arguments}
}

type LambdaExpression struct {
	nodeImpl
	expressionMarker

	Params []string   `json:"params"`
	Body   Expression `json:"body"`
}

func NewLambdaExpression(params []string, body Expression) *LambdaExpression {
	return &LambdaExpression{nodeImpl: newNodeImpl(NodeLambdaExpression), Params: params, Body: body}
}

// Match

type MatchExpression struct {
	nodeImpl
	expressionMarker

	Subject Expression     `json:"subject"`
	Clauses []*MatchClause `json:"clauses"`
}

func NewMatchExpression(subject Expression, clauses []*MatchClause) *MatchExpression {
	return &MatchExpression{nodeImpl: newNodeImpl(NodeMatchExpression), Subject: subject, Clauses: clauses}
}

type MatchClause struct {
	nodeImpl

	Pattern Pattern    `json:"pattern"`
	Body    Expression `json:"body"`
}

func NewMatchClause(pattern Pattern, body Expression) *MatchClause {
	return &MatchClause{nodeImpl: newNodeImpl(NodeMatchClause), Pattern: pattern, Body: body}
}

type WildcardPattern struct {
	nodeImpl
	patternMarker
}

func NewWildcardPattern() *WildcardPattern {
	return &WildcardPattern{nodeImpl: newNodeImpl(NodeWildcardPattern)}
}

type LiteralPattern struct {
	nodeImpl
	patternMarker

	Literal Expression `json:"literal"`
}

func NewLiteralPattern(literal Expression) *LiteralPattern {
	return &LiteralPattern{nodeImpl: newNodeImpl(NodeLiteralPattern), Literal: literal}
}

// TypePattern matches when the subject's runtime type name equals Name.
type TypePattern struct {
	nodeImpl
	patternMarker

	Name string `json:"name"`
}

func NewTypePattern(name string) *TypePattern {
	return &TypePattern{nodeImpl: newNodeImpl(NodeTypePattern), Name: name}
}

// Statements

type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewVariableDeclaration(name string, value Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, Value: value}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	Name       string      `json:"name"`
	Params     []string    `json:"params"`
	ReturnType string      `json:"returnType,omitempty"`
	Body       []Statement `json:"body"`
}

func NewFunctionDeclaration(name string, params []string, returnType string, body []Statement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), Name: name, Params: params, ReturnType: returnType, Body: body}
}

type ClassDeclaration struct {
	nodeImpl
	statementMarker

	Name       string                `json:"name"`
	Extends    string                `json:"extends,omitempty"`
	Properties []*PropertyDefinition `json:"properties"`
	Methods    []*MethodDefinition   `json:"methods"`
}

func NewClassDeclaration(name, extends string, properties []*PropertyDefinition, methods []*MethodDefinition) *ClassDeclaration {
	return &ClassDeclaration{nodeImpl: newNodeImpl(NodeClassDeclaration), Name: name, Extends: extends, Properties: properties, Methods: methods}
}

// PropertyDefinition pairs a property name with its initializer expression.
// Initializers are re-evaluated per instance, in declared order.
type PropertyDefinition struct {
	nodeImpl

	Name        string     `json:"name"`
	Initializer Expression `json:"initializer"`
}

func NewPropertyDefinition(name string, initializer Expression) *PropertyDefinition {
	return &PropertyDefinition{nodeImpl: newNodeImpl(NodePropertyDefinition), Name: name, Initializer: initializer}
}

type MethodDefinition struct {
	nodeImpl

	Name       string      `json:"name"`
	Params     []string    `json:"params"`
	ReturnType string      `json:"returnType,omitempty"`
	Body       []Statement `json:"body"`
}

func NewMethodDefinition(name string, params []string, returnType string, body []Statement) *MethodDefinition {
	return &MethodDefinition{nodeImpl: newNodeImpl(NodeMethodDefinition), Name: name, Params: params, ReturnType: returnType, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expression Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expression}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then, elseBranch Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: elseBranch}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileStatement(condition Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

type ForStatement struct {
	nodeImpl
	statementMarker

	Init      Statement  `json:"init,omitempty"`
	Condition Expression `json:"condition,omitempty"`
	Increment Expression `json:"increment,omitempty"`
	Body      Statement  `json:"body"`
}

func NewForStatement(init Statement, condition, increment Expression, body Statement) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Init: init, Condition: condition, Increment: increment, Body: body}
}

type ForEachStatement struct {
	nodeImpl
	statementMarker

	Variable string     `json:"variable"`
	Iterable Expression `json:"iterable"`
	Body     Statement  `json:"body"`
}

func NewForEachStatement(variable string, iterable Expression, body Statement) *ForEachStatement {
	return &ForEachStatement{nodeImpl: newNodeImpl(NodeForEachStatement), Variable: variable, Iterable: iterable, Body: body}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlockStatement(statements []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Statements: statements}
}

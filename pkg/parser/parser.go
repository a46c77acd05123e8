// Package parser builds a Platypus AST from a token stream.
package parser

import (
	"fmt"
	"strconv"

	"platypus/interpreter-go/pkg/ast"
	"platypus/interpreter-go/pkg/lexer"
)

// Parser is a recursive-descent parser over a token slice.
type Parser struct {
	tokens  []lexer.Token
	current int
}

// New creates a parser over tokens (which must end with an EOF token).
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource tokenizes and parses a whole source text.
func ParseSource(source string) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return New(tokens).Parse()
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TokEOF
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return tokenType == lexer.TokEOF
	}
	return p.peek().Type == tokenType
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tokenType lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	tok := p.peek()
	return lexer.Token{}, fmt.Errorf("%s at line %d, column %d", message, tok.Line, tok.Column)
}

func (p *Parser) consumeIdentifier(message string) (string, error) {
	if p.check(lexer.TokIdentifier) {
		return p.advance().Literal, nil
	}
	return "", fmt.Errorf("%s at line %d", message, p.peek().Line)
}

// Parse consumes the whole token stream into a program.
func (p *Parser) Parse() (*ast.Program, error) {
	var statements []ast.Statement
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	return ast.NewProgram(statements), nil
}

func (p *Parser) declaration() (ast.Statement, error) {
	if p.match(lexer.TokFunc) {
		return p.functionDeclaration()
	}
	if p.match(lexer.TokClass) {
		return p.classDeclaration()
	}
	return p.statement()
}

func (p *Parser) functionDeclaration() (ast.Statement, error) {
	name, err := p.consumeIdentifier("Expected function name")
	if err != nil {
		return nil, err
	}
	params, returnType, body, err := p.functionRest("function")
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionDeclaration(name, params, returnType, body), nil
}

// functionRest parses "(params) [: Type] { body }" shared by functions and
// methods.
func (p *Parser) functionRest(kind string) ([]string, string, []ast.Statement, error) {
	if _, err := p.consume(lexer.TokLeftParen, "Expected '(' after "+kind+" name"); err != nil {
		return nil, "", nil, err
	}
	params, err := p.parameterList()
	if err != nil {
		return nil, "", nil, err
	}

	returnType := ""
	if p.match(lexer.TokColon) {
		returnType, err = p.consumeIdentifier("Expected type name after ':'")
		if err != nil {
			return nil, "", nil, err
		}
	}

	if _, err := p.consume(lexer.TokLeftBrace, "Expected '{' before "+kind+" body"); err != nil {
		return nil, "", nil, err
	}
	var body []ast.Statement
	for !p.check(lexer.TokRightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, "", nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.consume(lexer.TokRightBrace, "Expected '}' after "+kind+" body"); err != nil {
		return nil, "", nil, err
	}
	return params, returnType, body, nil
}

func (p *Parser) parameterList() ([]string, error) {
	var params []string
	if !p.check(lexer.TokRightParen) {
		for {
			name, err := p.consumeIdentifier("Expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, name)
			if !p.match(lexer.TokComma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.TokRightParen, "Expected ')' after parameters"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) classDeclaration() (ast.Statement, error) {
	name, err := p.consumeIdentifier("Expected class name")
	if err != nil {
		return nil, err
	}

	extends := ""
	if p.match(lexer.TokExtends) {
		extends, err = p.consumeIdentifier("Expected parent class name")
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(lexer.TokLeftBrace, "Expected '{' before class body"); err != nil {
		return nil, err
	}

	var properties []*ast.PropertyDefinition
	var methods []*ast.MethodDefinition

	for !p.check(lexer.TokRightBrace) && !p.isAtEnd() {
		if p.match(lexer.TokFunc) {
			methodName, err := p.consumeIdentifier("Expected method name")
			if err != nil {
				return nil, err
			}
			params, returnType, body, err := p.functionRest("method")
			if err != nil {
				return nil, err
			}
			methods = append(methods, ast.NewMethodDefinition(methodName, params, returnType, body))
			continue
		}

		propName, err := p.consumeIdentifier("Expected property name")
		if err != nil {
			return nil, err
		}
		var initializer ast.Expression = ast.NewNullLiteral()
		if p.match(lexer.TokAssign) {
			initializer, err = p.expression()
			if err != nil {
				return nil, err
			}
		}
		properties = append(properties, ast.NewPropertyDefinition(propName, initializer))
		p.match(lexer.TokSemicolon) // optional
	}

	if _, err := p.consume(lexer.TokRightBrace, "Expected '}' after class body"); err != nil {
		return nil, err
	}
	return ast.NewClassDeclaration(name, extends, properties, methods), nil
}

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(lexer.TokReturn):
		return p.returnStatement()
	case p.match(lexer.TokIf):
		return p.ifStatement()
	case p.match(lexer.TokWhile):
		return p.whileStatement()
	case p.match(lexer.TokFor):
		return p.forStatement()
	case p.match(lexer.TokLeftBrace):
		statements, err := p.blockStatements()
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStatement(statements), nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	var value ast.Expression
	if !p.check(lexer.TokRightBrace) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = expr
	}
	return ast.NewReturnStatement(value), nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.TokLeftParen, "Expected '(' after 'if'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokRightParen, "Expected ')' after condition"); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Statement
	if p.match(lexer.TokElse) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfStatement(condition, then, elseBranch), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.TokLeftParen, "Expected '(' after 'while'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokRightParen, "Expected ')' after condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(condition, body), nil
}

func (p *Parser) forStatement() (ast.Statement, error) {
	if _, err := p.consume(lexer.TokLeftParen, "Expected '(' after 'for'"); err != nil {
		return nil, err
	}

	// "for (name in iterable)" is a foreach loop; otherwise rewind and parse
	// the classic three-clause form.
	if p.check(lexer.TokIdentifier) {
		mark := p.current
		variable := p.advance().Literal
		if p.match(lexer.TokIn) {
			iterable, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.TokRightParen, "Expected ')' after foreach"); err != nil {
				return nil, err
			}
			body, err := p.statement()
			if err != nil {
				return nil, err
			}
			return ast.NewForEachStatement(variable, iterable, body), nil
		}
		p.current = mark
	}

	var init ast.Statement
	if !p.check(lexer.TokSemicolon) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		init = stmt
	}
	if _, err := p.consume(lexer.TokSemicolon, "Expected ';' after for loop initializer"); err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(lexer.TokSemicolon) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		condition = expr
	}
	if _, err := p.consume(lexer.TokSemicolon, "Expected ';' after for loop condition"); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(lexer.TokRightParen) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		increment = expr
	}
	if _, err := p.consume(lexer.TokRightParen, "Expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewForStatement(init, condition, increment, body), nil
}

func (p *Parser) blockStatements() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.check(lexer.TokRightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(lexer.TokRightBrace, "Expected '}' after block"); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	// A top-level assignment expression is a variable declaration statement.
	if assign, ok := expr.(*ast.Assignment); ok {
		return ast.NewVariableDeclaration(assign.Name, assign.Value), nil
	}
	return ast.NewExpressionStatement(expr), nil
}

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(lexer.TokAssign) {
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *ast.Identifier:
			return ast.NewAssignment(target.Name, value), nil
		case *ast.PropertyAccess:
			return ast.NewPropertyAssignment(target.Object, target.Property, value), nil
		default:
			return nil, fmt.Errorf("Invalid assignment target")
		}
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.TokOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression("||", expr, right)
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.TokAnd) {
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression("&&", expr, right)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.TokEqualEqual, lexer.TokNotEqual) {
		operator := "=="
		if p.previous().Type == lexer.TokNotEqual {
			operator = "!="
		}
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(operator, expr, right)
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.TokGreater, lexer.TokGreaterEqual, lexer.TokLess, lexer.TokLessEqual) {
		var operator string
		switch p.previous().Type {
		case lexer.TokGreater:
			operator = ">"
		case lexer.TokGreaterEqual:
			operator = ">="
		case lexer.TokLess:
			operator = "<"
		default:
			operator = "<="
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(operator, expr, right)
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.TokPlus, lexer.TokMinus) {
		operator := "+"
		if p.previous().Type == lexer.TokMinus {
			operator = "-"
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(operator, expr, right)
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.TokStar, lexer.TokSlash) {
		operator := "*"
		if p.previous().Type == lexer.TokSlash {
			operator = "/"
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(operator, expr, right)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(lexer.TokBang, lexer.TokMinus) {
		operator := "!"
		if p.previous().Type == lexer.TokMinus {
			operator = "-"
		}
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(operator, operand), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(lexer.TokLeftParen):
			args, err := p.argumentList()
			if err != nil {
				return nil, err
			}
			callee, ok := expr.(*ast.Identifier)
			if !ok {
				return nil, fmt.Errorf("Invalid function call")
			}
			expr = ast.NewFunctionCall(callee.Name, args)
		case p.match(lexer.TokDot):
			member, err := p.consumeIdentifier("Expected property or method name after '.'")
			if err != nil {
				return nil, err
			}
			if p.match(lexer.TokLeftParen) {
				args, err := p.argumentList()
				if err != nil {
					return nil, err
				}
				expr = ast.NewMethodCall(expr, member, args)
			} else {
				expr = ast.NewPropertyAccess(expr, member)
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) argumentList() ([]ast.Expression, error) {
	var args []ast.Expression
	if !p.check(lexer.TokRightParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.TokComma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.TokRightParen, "Expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) primary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokTrue:
		p.advance()
		return ast.NewBooleanLiteral(true), nil
	case lexer.TokFalse:
		p.advance()
		return ast.NewBooleanLiteral(false), nil
	case lexer.TokNull:
		p.advance()
		return ast.NewNullLiteral(), nil
	case lexer.TokNumber:
		p.advance()
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, fmt.Errorf("Invalid number '%s' at line %d", tok.Literal, tok.Line)
		}
		return ast.NewNumberLiteral(value), nil
	case lexer.TokString:
		p.advance()
		return ast.NewStringLiteral(tok.Literal), nil
	case lexer.TokNew:
		p.advance()
		return p.newExpression()
	case lexer.TokIdentifier:
		p.advance()
		return ast.NewIdentifier(tok.Literal), nil
	case lexer.TokLeftParen:
		p.advance()
		return p.groupOrLambda()
	case lexer.TokLeftBracket:
		p.advance()
		return p.arrayLiteral()
	case lexer.TokMatch:
		p.advance()
		return p.matchExpression()
	default:
		return nil, fmt.Errorf("Unexpected token %s at line %d, column %d", tok.Type, tok.Line, tok.Column)
	}
}

func (p *Parser) newExpression() (ast.Expression, error) {
	className, err := p.consumeIdentifier("Expected class name after 'new'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokLeftParen, "Expected '(' after class name"); err != nil {
		return nil, err
	}
	args, err := p.argumentList()
	if err != nil {
		return nil, err
	}
	return ast.NewNewExpression(className, args), nil
}

// groupOrLambda disambiguates "(a, b) => body" from a grouped expression by
// attempting to read a parameter list and backtracking when no arrow follows.
func (p *Parser) groupOrLambda() (ast.Expression, error) {
	mark := p.current

	var params []string
	for p.check(lexer.TokIdentifier) {
		params = append(params, p.advance().Literal)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	if p.check(lexer.TokRightParen) {
		p.advance()
		if p.match(lexer.TokArrow) {
			body, err := p.expression()
			if err != nil {
				return nil, err
			}
			return ast.NewLambdaExpression(params, body), nil
		}
	}
	p.current = mark

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokRightParen, "Expected ')' after expression"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) arrayLiteral() (ast.Expression, error) {
	var elements []ast.Expression
	if !p.check(lexer.TokRightBracket) {
		for {
			el, err := p.expression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
			if !p.match(lexer.TokComma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.TokRightBracket, "Expected ']' after array elements"); err != nil {
		return nil, err
	}
	return ast.NewArrayLiteral(elements), nil
}

func (p *Parser) matchExpression() (ast.Expression, error) {
	if _, err := p.consume(lexer.TokLeftParen, "Expected '(' after 'match'"); err != nil {
		return nil, err
	}
	subject, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokRightParen, "Expected ')' after match expression"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.TokLeftBrace, "Expected '{' before match cases"); err != nil {
		return nil, err
	}

	var clauses []*ast.MatchClause
	for p.match(lexer.TokCase) {
		pattern, err := p.matchPattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.TokArrow, "Expected '=>' after case pattern"); err != nil {
			return nil, err
		}
		body, err := p.expression()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.NewMatchClause(pattern, body))
	}

	if _, err := p.consume(lexer.TokRightBrace, "Expected '}' after match cases"); err != nil {
		return nil, err
	}
	return ast.NewMatchExpression(subject, clauses), nil
}

func (p *Parser) matchPattern() (ast.Pattern, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokString:
		p.advance()
		return ast.NewLiteralPattern(ast.NewStringLiteral(tok.Literal)), nil
	case lexer.TokNumber:
		p.advance()
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, fmt.Errorf("Invalid number '%s' at line %d", tok.Literal, tok.Line)
		}
		return ast.NewLiteralPattern(ast.NewNumberLiteral(value)), nil
	case lexer.TokTrue:
		p.advance()
		return ast.NewLiteralPattern(ast.NewBooleanLiteral(true)), nil
	case lexer.TokFalse:
		p.advance()
		return ast.NewLiteralPattern(ast.NewBooleanLiteral(false)), nil
	case lexer.TokNull:
		p.advance()
		return ast.NewLiteralPattern(ast.NewNullLiteral()), nil
	case lexer.TokIdentifier:
		p.advance()
		if tok.Literal == "_" {
			return ast.NewWildcardPattern(), nil
		}
		return ast.NewTypePattern(tok.Literal), nil
	default:
		return nil, fmt.Errorf("Invalid pattern at line %d", tok.Line)
	}
}

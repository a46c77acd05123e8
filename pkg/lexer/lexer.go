// Package lexer turns Platypus source text into a token stream.
package lexer

import (
	"fmt"
	"unicode"
)

// Lexer scans source text into tokens.
type Lexer struct {
	input  []rune
	pos    int
	line   int
	column int
}

// New creates a lexer over the given source text.
func New(input string) *Lexer {
	return &Lexer{input: []rune(input), line: 1, column: 1}
}

// Tokenize scans the whole input, ending with an EOF token.
func Tokenize(input string) ([]Token, error) {
	return New(input).Tokenize()
}

func (l *Lexer) current() (rune, bool) {
	if l.pos < len(l.input) {
		return l.input[l.pos], true
	}
	return 0, false
}

func (l *Lexer) peek(offset int) (rune, bool) {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset], true
	}
	return 0, false
}

func (l *Lexer) advance() {
	if ch, ok := l.current(); ok && ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for {
			ch, ok := l.current()
			if !ok || !unicode.IsSpace(ch) {
				break
			}
			l.advance()
		}
		ch, ok := l.current()
		next, okNext := l.peek(1)
		if !ok || ch != '/' || !okNext || next != '/' {
			return
		}
		for {
			ch, ok := l.current()
			if !ok || ch == '\n' {
				break
			}
			l.advance()
		}
	}
}

func (l *Lexer) readString() (string, error) {
	var out []rune
	l.advance() // opening quote
	for {
		ch, ok := l.current()
		if !ok {
			return "", fmt.Errorf("Unterminated string at %d:%d", l.line, l.column)
		}
		if ch == '"' {
			l.advance()
			break
		}
		if ch == '\\' {
			l.advance()
			esc, ok := l.current()
			if !ok {
				return "", fmt.Errorf("Unterminated string at %d:%d", l.line, l.column)
			}
			switch esc {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			default:
				out = append(out, '\\', esc)
			}
			l.advance()
			continue
		}
		out = append(out, ch)
		l.advance()
	}
	return string(out), nil
}

func (l *Lexer) readNumber() string {
	var out []rune
	hasDot := false
	for {
		ch, ok := l.current()
		if !ok {
			break
		}
		if ch >= '0' && ch <= '9' {
			out = append(out, ch)
			l.advance()
			continue
		}
		if ch == '.' && !hasDot {
			if next, ok := l.peek(1); ok && next >= '0' && next <= '9' {
				hasDot = true
				out = append(out, ch)
				l.advance()
				continue
			}
		}
		break
	}
	return string(out)
}

func (l *Lexer) readIdentifier() string {
	var out []rune
	for {
		ch, ok := l.current()
		if !ok || (!unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '_') {
			break
		}
		out = append(out, ch)
		l.advance()
	}
	return string(out)
}

// match consumes expected if it is the current rune.
func (l *Lexer) match(expected rune) bool {
	if ch, ok := l.current(); ok && ch == expected {
		l.advance()
		return true
	}
	return false
}

// Tokenize scans the whole input, ending with an EOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		l.skipWhitespaceAndComments()

		line, column := l.line, l.column
		ch, ok := l.current()
		if !ok {
			tokens = append(tokens, Token{Type: TokEOF, Line: line, Column: column})
			return tokens, nil
		}

		var tok Token
		switch {
		case unicode.IsLetter(ch) || ch == '_':
			id := l.readIdentifier()
			if kw, ok := keywords[id]; ok {
				tok = Token{Type: kw}
			} else {
				tok = Token{Type: TokIdentifier, Literal: id}
			}
		case ch >= '0' && ch <= '9':
			tok = Token{Type: TokNumber, Literal: l.readNumber()}
		case ch == '"':
			str, err := l.readString()
			if err != nil {
				return nil, err
			}
			tok = Token{Type: TokString, Literal: str}
		default:
			l.advance()
			switch ch {
			case '=':
				switch {
				case l.match('='):
					tok = Token{Type: TokEqualEqual}
				case l.match('>'):
					tok = Token{Type: TokArrow}
				default:
					tok = Token{Type: TokAssign}
				}
			case '+':
				tok = Token{Type: TokPlus}
			case '-':
				tok = Token{Type: TokMinus}
			case '*':
				tok = Token{Type: TokStar}
			case '/':
				tok = Token{Type: TokSlash}
			case '!':
				if l.match('=') {
					tok = Token{Type: TokNotEqual}
				} else {
					tok = Token{Type: TokBang}
				}
			case '<':
				if l.match('=') {
					tok = Token{Type: TokLessEqual}
				} else {
					tok = Token{Type: TokLess}
				}
			case '>':
				if l.match('=') {
					tok = Token{Type: TokGreaterEqual}
				} else {
					tok = Token{Type: TokGreater}
				}
			case '&':
				if !l.match('&') {
					return nil, fmt.Errorf("Unexpected character '&' at %d:%d", line, column)
				}
				tok = Token{Type: TokAnd}
			case '|':
				if !l.match('|') {
					return nil, fmt.Errorf("Unexpected character '|' at %d:%d", line, column)
				}
				tok = Token{Type: TokOr}
			case '(':
				tok = Token{Type: TokLeftParen}
			case ')':
				tok = Token{Type: TokRightParen}
			case '{':
				tok = Token{Type: TokLeftBrace}
			case '}':
				tok = Token{Type: TokRightBrace}
			case '[':
				tok = Token{Type: TokLeftBracket}
			case ']':
				tok = Token{Type: TokRightBracket}
			case ',':
				tok = Token{Type: TokComma}
			case ':':
				tok = Token{Type: TokColon}
			case ';':
				tok = Token{Type: TokSemicolon}
			case '.':
				tok = Token{Type: TokDot}
			default:
				return nil, fmt.Errorf("Unexpected character '%c' at %d:%d", ch, line, column)
			}
		}

		tok.Line = line
		tok.Column = column
		tokens = append(tokens, tok)
	}
}

package lexer

// TokenType enumerates the lexical token categories.
type TokenType int

const (
	// Literals
	TokNumber TokenType = iota
	TokString
	TokIdentifier
	TokTrue
	TokFalse
	TokNull

	// Keywords
	TokFunc
	TokReturn
	TokMatch
	TokCase
	TokIf
	TokElse
	TokWhile
	TokFor
	TokIn
	TokClass
	TokExtends
	TokNew

	// Operators
	TokAssign       // =
	TokPlus         // +
	TokMinus        // -
	TokStar         // *
	TokSlash        // /
	TokBang         // !
	TokEqualEqual   // ==
	TokNotEqual     // !=
	TokLess         // <
	TokGreater      // >
	TokLessEqual    // <=
	TokGreaterEqual // >=
	TokAnd          // &&
	TokOr           // ||
	TokArrow        // =>

	// Delimiters
	TokLeftParen    // (
	TokRightParen   // )
	TokLeftBrace    // {
	TokRightBrace   // }
	TokLeftBracket  // [
	TokRightBracket // ]
	TokComma        // ,
	TokColon        // :
	TokSemicolon    // ;
	TokDot          // .

	TokEOF
)

var tokenNames = map[TokenType]string{
	TokNumber:       "Number",
	TokString:       "String",
	TokIdentifier:   "Identifier",
	TokTrue:         "true",
	TokFalse:        "false",
	TokNull:         "null",
	TokFunc:         "func",
	TokReturn:       "return",
	TokMatch:        "match",
	TokCase:         "case",
	TokIf:           "if",
	TokElse:         "else",
	TokWhile:        "while",
	TokFor:          "for",
	TokIn:           "in",
	TokClass:        "class",
	TokExtends:      "extends",
	TokNew:          "new",
	TokAssign:       "=",
	TokPlus:         "+",
	TokMinus:        "-",
	TokStar:         "*",
	TokSlash:        "/",
	TokBang:         "!",
	TokEqualEqual:   "==",
	TokNotEqual:     "!=",
	TokLess:         "<",
	TokGreater:      ">",
	TokLessEqual:    "<=",
	TokGreaterEqual: ">=",
	TokAnd:          "&&",
	TokOr:           "||",
	TokArrow:        "=>",
	TokLeftParen:    "(",
	TokRightParen:   ")",
	TokLeftBrace:    "{",
	TokRightBrace:   "}",
	TokLeftBracket:  "[",
	TokRightBracket: "]",
	TokComma:        ",",
	TokColon:        ":",
	TokSemicolon:    ";",
	TokDot:          ".",
	TokEOF:          "EOF",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "Unknown"
}

var keywords = map[string]TokenType{
	"func":    TokFunc,
	"return":  TokReturn,
	"match":   TokMatch,
	"case":    TokCase,
	"true":    TokTrue,
	"false":   TokFalse,
	"null":    TokNull,
	"if":      TokIf,
	"else":    TokElse,
	"while":   TokWhile,
	"for":     TokFor,
	"in":      TokIn,
	"class":   TokClass,
	"extends": TokExtends,
	"new":     TokNew,
}

// Token is one lexical unit with its source position.
type Token struct {
	Type    TokenType
	Literal string // identifier spelling, string contents, or number text
	Line    int
	Column  int
}

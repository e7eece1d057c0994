// Package formula implements a safe arithmetic expression evaluator.
// It handles the four binary operators with standard precedence and
// parenthetical grouping, and never executes its input as code.
package formula

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Literals
	TokenNumber TokenType = iota // numeric literal

	// Arithmetic
	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /

	// Brackets
	TokenLParen // (
	TokenRParen // )

	// Special
	TokenEOF // end of expression
)

// Token represents a single lexical token.
type Token struct {
	Type     TokenType
	Value    string  // raw string value
	FloatVal float64 // parsed value (for TokenNumber)
	Pos      int     // position in source
}

// IsOperator reports whether the token is one of the four binary operators.
func (t Token) IsOperator() bool {
	switch t.Type {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash:
		return true
	}
	return false
}

// Precedence returns the binding strength of an operator token.
// Multiplicative operators bind tighter than additive ones; every
// operator in the grammar is left-associative.
func (t Token) Precedence() int {
	switch t.Type {
	case TokenStar, TokenSlash:
		return 2
	case TokenPlus, TokenMinus:
		return 1
	default:
		return 0
	}
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "NUMBER"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

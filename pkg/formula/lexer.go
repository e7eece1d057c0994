package formula

import "strconv"

// Sanitize removes every character outside the allow-list
// 0-9 + - * / ( ) . <space>. It runs unconditionally before lexing and is
// a security boundary independent of the grammar checks that follow.
func Sanitize(input string) string {
	out := make([]byte, 0, len(input))
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if isAllowed(ch) {
			out = append(out, ch)
		}
	}
	return string(out)
}

func isAllowed(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '(', ')', '.', ' ':
		return true
	}
	return ch >= '0' && ch <= '9'
}

// Lexer tokenizes a sanitized formula string.
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given sanitized input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the entire input and returns all tokens.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return l.tokens, nil
}

// next returns the next token from the input.
func (l *Lexer) next() (Token, error) {
	l.skipSpaces()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	ch := l.input[l.pos]

	// Number literals
	if (ch >= '0' && ch <= '9') || ch == '.' {
		return l.readNumber()
	}

	switch ch {
	case '+':
		l.pos++
		return Token{Type: TokenPlus, Value: "+", Pos: l.pos - 1}, nil
	case '-':
		l.pos++
		return Token{Type: TokenMinus, Value: "-", Pos: l.pos - 1}, nil
	case '*':
		l.pos++
		return Token{Type: TokenStar, Value: "*", Pos: l.pos - 1}, nil
	case '/':
		l.pos++
		return Token{Type: TokenSlash, Value: "/", Pos: l.pos - 1}, nil
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: l.pos - 1}, nil
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: l.pos - 1}, nil
	}

	// Names are never resolved here; the caller must substitute them with
	// numeric literals before evaluation.
	if isIdentStart(ch) {
		return Token{}, NewIdentifierError(l.readIdentifier())
	}

	// Unreachable after Sanitize, but a lexer handed raw input must still
	// fail closed rather than guess.
	return Token{}, NewSyntaxError("unexpected character %q at position %d", string(ch), l.pos)
}

// readNumber reads a contiguous digit/decimal-point run as one literal.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if (ch >= '0' && ch <= '9') || ch == '.' {
			l.pos++
		} else {
			break
		}
	}

	raw := l.input[start:l.pos]
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Token{}, NewValueError(raw)
	}
	return Token{Type: TokenNumber, Value: raw, FloatVal: f, Pos: start}, nil
}

// readIdentifier reads an identifier-like run for error reporting.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	return l.input[start:l.pos]
}

// skipSpaces discards spaces; a space also terminates an in-progress number
// because readNumber never crosses one.
func (l *Lexer) skipSpaces() {
	for l.pos < len(l.input) && l.input[l.pos] == ' ' {
		l.pos++
	}
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}

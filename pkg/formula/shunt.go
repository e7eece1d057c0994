package formula

// ToPostfix converts an infix token stream to postfix (RPN) order using the
// shunting-yard algorithm. The trailing EOF token, if present, is ignored.
//
// An incoming operator pops every stacked operator of greater or equal
// precedence, which makes equal-precedence chains left-associative. A
// right-associative operator (none exist in this grammar) would need a
// strict greater-than comparison instead.
func ToPostfix(tokens []Token) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	var stack []Token

	for _, tok := range tokens {
		switch {
		case tok.Type == TokenEOF:
			// end of input

		case tok.Type == TokenNumber:
			output = append(output, tok)

		case tok.IsOperator():
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if !top.IsOperator() || top.Precedence() < tok.Precedence() {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)

		case tok.Type == TokenLParen:
			stack = append(stack, tok)

		case tok.Type == TokenRParen:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Type == TokenLParen {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, NewParenError()
			}

		default:
			return nil, NewSyntaxError("unexpected token %s at position %d", tok.Type, tok.Pos)
		}
	}

	// Drain the operator stack; a leftover parenthesis means the input was
	// unbalanced.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Type == TokenLParen || top.Type == TokenRParen {
			return nil, NewParenError()
		}
		output = append(output, top)
	}

	return output, nil
}

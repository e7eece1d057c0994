package formula

import "math"

// Evaluate computes the value of an arithmetic formula. The input may be any
// string: characters outside the allow-list are stripped first, then the
// remainder is tokenized, converted to postfix form, and evaluated with
// standard precedence and left-to-right ordering among equal-precedence
// operators.
//
// Names are not resolved; a formula containing an identifier fails, and the
// caller is responsible for substituting names with numeric literals before
// calling Evaluate. Every failure is reported as a *Error whose tags
// identify the condition. The result is always a finite float64.
func Evaluate(input string) (float64, error) {
	// Reject names before sanitization could silently strip them; a formula
	// referencing a column must fail loudly, not evaluate a mangled rest.
	if name := findIdentifier(input); name != "" {
		return 0, NewIdentifierError(name)
	}

	cleaned := Sanitize(input)

	tokens, err := NewLexer(cleaned).Tokenize()
	if err != nil {
		return 0, err
	}
	if len(tokens) == 1 { // EOF only
		return 0, NewEmptyFormulaError()
	}

	postfix, err := ToPostfix(tokens)
	if err != nil {
		return 0, err
	}

	return evalPostfix(postfix)
}

// findIdentifier returns the first identifier-like run in the raw input, or
// an empty string if there is none.
func findIdentifier(input string) string {
	for i := 0; i < len(input); i++ {
		if isIdentStart(input[i]) {
			j := i
			for j < len(input) && isIdentPart(input[j]) {
				j++
			}
			return input[i:j]
		}
	}
	return ""
}

// evalPostfix evaluates a postfix token queue with a numeric stack.
func evalPostfix(tokens []Token) (float64, error) {
	var stack []float64

	for _, tok := range tokens {
		if tok.Type == TokenNumber {
			stack = append(stack, tok.FloatVal)
			continue
		}

		if len(stack) < 2 {
			return 0, NewOperandError(tok.Value)
		}
		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		var v float64
		switch tok.Type {
		case TokenPlus:
			v = a + b
		case TokenMinus:
			v = a - b
		case TokenStar:
			v = a * b
		case TokenSlash:
			if b == 0 {
				return 0, NewZeroDivisionError()
			}
			v = a / b
		default:
			return 0, NewSyntaxError("unexpected token %s in postfix stream", tok.Type)
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, NewNonFiniteError()
		}
		stack = append(stack, v)
	}

	if len(stack) != 1 {
		return 0, NewSyntaxError("invalid expression")
	}

	result := stack[0]
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, NewNonFiniteError()
	}
	return result, nil
}

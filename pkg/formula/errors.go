package formula

import "fmt"

// Error tag constants identifying which condition failed an evaluation.
const (
	TagEmptyFormula      = "EmptyFormulaError"
	TagValueError        = "ValueError"
	TagParenError        = "ParenthesesError"
	TagOperandError      = "OperandError"
	TagZeroDivisionError = "ZeroDivisionError"
	TagNonFiniteError    = "NonFiniteError"
	TagIdentifierError   = "IdentifierError"
	TagSyntaxError       = "SyntaxError"
)

// Error represents a failed formula evaluation. Every failure mode shares
// the one error kind; Tags identify the condition for callers that need to
// distinguish, but the message text is for humans only.
type Error struct {
	Message string
	Tags    []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("formula evaluation failed: %s", e.Message)
}

// HasTag returns true if the error has the specified tag.
func (e *Error) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func newError(tag, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Tags: []string{tag}}
}

// NewEmptyFormulaError reports a formula that is empty after sanitization.
func NewEmptyFormulaError() *Error {
	return newError(TagEmptyFormula, "formula is empty")
}

// NewValueError reports an unparseable numeric literal.
func NewValueError(literal string) *Error {
	return newError(TagValueError, "invalid number %q", literal)
}

// NewParenError reports mismatched or unbalanced parentheses.
func NewParenError() *Error {
	return newError(TagParenError, "mismatched parentheses")
}

// NewOperandError reports an operator with too few operands.
func NewOperandError(op string) *Error {
	return newError(TagOperandError, "operator %q is missing an operand", op)
}

// NewZeroDivisionError reports division by exactly zero.
func NewZeroDivisionError() *Error {
	return newError(TagZeroDivisionError, "division by zero")
}

// NewNonFiniteError reports a NaN or infinite intermediate or final value.
func NewNonFiniteError() *Error {
	return newError(TagNonFiniteError, "result is not a finite number")
}

// NewIdentifierError reports a name inside the formula. Names must be
// substituted with numeric literals by the caller before evaluation.
func NewIdentifierError(name string) *Error {
	return newError(TagIdentifierError,
		"formula references the name %q; substitute names with numeric literals before evaluating", name)
}

// NewSyntaxError reports any other malformed expression.
func NewSyntaxError(format string, args ...interface{}) *Error {
	return newError(TagSyntaxError, format, args...)
}

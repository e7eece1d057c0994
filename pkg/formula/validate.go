package formula

import "regexp"

// Denylist of dangerous syntax, checked against the raw input before any
// sanitization. The patterns are deliberately broader than what the grammar
// could ever accept: together with the structural checks in Evaluate they
// form two independent layers, and neither replaces the other.
var denylist = []*regexp.Regexp{
	regexp.MustCompile(`[A-Za-z_$][\w$]*\s*\(`),    // function invocation
	regexp.MustCompile(`\bfunction\b`),             // anonymous function
	regexp.MustCompile(`=>`),                       // arrow function
	regexp.MustCompile(`\bset(Timeout|Interval)\b`), // timer scheduling
	regexp.MustCompile(`\b(import|require)\b`),     // module loading
	regexp.MustCompile(`\.\s*[A-Za-z_$][\w$]*\s*\(`), // method call
	regexp.MustCompile(`[\[\]]`),                   // array literal
	regexp.MustCompile(`[{}]`),                     // object or block literal
}

// MatchesDenylist reports whether the raw input contains known dangerous
// syntax. It must see the input before any sanitization; an expression that
// still contains unresolved column names can be screened with this check
// alone, since Evaluate would reject the names regardless.
func MatchesDenylist(input string) bool {
	for _, re := range denylist {
		if re.MatchString(input) {
			return true
		}
	}
	return false
}

// IsValid reports whether a raw formula string is safe and evaluable. It
// returns false for any input matching the denylist, and false whenever
// Evaluate would fail; it never returns an error itself.
//
// The denylist runs against the unsanitized input on purpose: it can reject
// on characters Evaluate would silently strip. Do not reorder the two checks.
func IsValid(input string) bool {
	if MatchesDenylist(input) {
		return false
	}

	_, err := Evaluate(input)
	return err == nil
}

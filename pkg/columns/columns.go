// Package columns computes calculated columns: it substitutes column names
// in a formula with numeric literals row by row and evaluates the result.
// The evaluator itself refuses names; this package is the caller that
// resolves them, so the substitution happens outside the trust boundary of
// pkg/formula.
package columns

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/datuumlabs/formula-engine/pkg/formula"
)

// Expand replaces every column name in the expression with the row's value
// for that name. Values are written in plain decimal notation and wrapped in
// parentheses; the grammar has no unary minus, so a negative value v is
// written as (0-|v|). A name with no value in the row is an error, as is a
// non-finite value.
func Expand(expression string, row map[string]float64) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(expression); {
		ch := expression[i]
		if !isNameStart(ch) {
			sb.WriteByte(ch)
			i++
			continue
		}

		j := i
		for j < len(expression) && isNamePart(expression[j]) {
			j++
		}
		name := expression[i:j]
		v, ok := row[name]
		if !ok {
			return "", fmt.Errorf("no value for column '%s'", name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("column '%s' has a non-finite value", name)
		}

		sb.WriteByte('(')
		if v < 0 {
			sb.WriteString("0-")
			sb.WriteString(strconv.FormatFloat(-v, 'f', -1, 64))
		} else {
			sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
		sb.WriteByte(')')
		i = j
	}
	return sb.String(), nil
}

// Apply evaluates the expression once per row over the given columns and
// returns the computed column. All columns must have the same length.
func Apply(expression string, cols map[string][]float64) ([]float64, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("at least one column is required")
	}

	rows := -1
	for name, vals := range cols {
		if rows == -1 {
			rows = len(vals)
		} else if len(vals) != rows {
			return nil, fmt.Errorf("column '%s' has %d values, expected %d", name, len(vals), rows)
		}
	}

	results := make([]float64, rows)
	row := make(map[string]float64, len(cols))
	for i := 0; i < rows; i++ {
		for name, vals := range cols {
			row[name] = vals[i]
		}

		expanded, err := Expand(expression, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		v, err := formula.Evaluate(expanded)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		results[i] = v
	}
	return results, nil
}

func isNameStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isNamePart(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

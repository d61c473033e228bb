package feature

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidExpression = errors.New("invalid feature expression")

// NormalizeExpression rewrites strict comparison operators in a feature
// expression to their non-strict forms: the first "=" becomes "==" and the
// first "<" becomes "<=". Prediction compares with >= and ==, so the stored
// expression has to carry the operator that is actually applied.
// Already-normalized expressions pass through unchanged.
func NormalizeExpression(expr string) string {
	if !strings.Contains(expr, "==") {
		expr = strings.Replace(expr, "=", "==", 1)
	}
	if !strings.Contains(expr, "<=") {
		expr = strings.Replace(expr, "<", "<=", 1)
	}
	return expr
}

// skeleton strips letters, digits, underscores, periods, hyphens and
// parentheses, leaving only the punctuation that discriminates feature kinds.
func skeleton(expr string) string {
	var b strings.Builder
	for _, r := range expr {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
		case r == '_' || r == '.' || r == '-' || r == '(' || r == ')':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse classifies a feature expression by its punctuation skeleton and
// recovers the underlying variable name(s) along with any embedded constant.
// The expression is normalized with NormalizeExpression first, so the returned
// feature always carries the non-strict operator form. Variable names may
// contain periods and hyphens.
func Parse(expr string) (Feature, error) {
	expr = NormalizeExpression(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty expression, %w", ErrInvalidExpression)
	}
	switch skeleton(expr) {
	case "==":
		name, levelStr, ok := strings.Cut(trimParens(expr), "==")
		if !ok || name == "" {
			return nil, fmt.Errorf("categorical expression %q, %w", expr, ErrInvalidExpression)
		}
		level, err := strconv.ParseFloat(levelStr, 64)
		if err != nil {
			return nil, fmt.Errorf("category level %q in %q, %w", levelStr, expr, ErrInvalidExpression)
		}
		return NewCategorical(name, level), nil
	case "<=":
		cutStr, name, ok := strings.Cut(trimParens(expr), "<=")
		if !ok || name == "" {
			return nil, fmt.Errorf("threshold expression %q, %w", expr, ErrInvalidExpression)
		}
		cut, err := strconv.ParseFloat(cutStr, 64)
		if err != nil {
			return nil, fmt.Errorf("threshold cut %q in %q, %w", cutStr, expr, ErrInvalidExpression)
		}
		return NewThreshold(name, cut), nil
	case "^":
		name, exp, _ := strings.Cut(expr, "^")
		if name == "" || exp != "2" {
			return nil, fmt.Errorf("quadratic expression %q, %w", expr, ErrInvalidExpression)
		}
		return NewQuadratic(name), nil
	case "*":
		left, right, ok := strings.Cut(expr, "*")
		if !ok || left == "" || right == "" {
			return nil, fmt.Errorf("product expression %q, %w", expr, ErrInvalidExpression)
		}
		return NewProduct(left, right), nil
	case "`":
		name := strings.TrimPrefix(expr, "`")
		if name == "" || name == expr {
			return nil, fmt.Errorf("reverse hinge expression %q, %w", expr, ErrInvalidExpression)
		}
		return NewReverseHinge(name), nil
	case "'":
		name := strings.TrimPrefix(expr, "'")
		if name == "" || name == expr {
			return nil, fmt.Errorf("forward hinge expression %q, %w", expr, ErrInvalidExpression)
		}
		return NewForwardHinge(name), nil
	}
	return NewLinear(expr), nil
}

func trimParens(expr string) string {
	return strings.TrimSuffix(strings.TrimPrefix(expr, "("), ")")
}

// formatValue renders an embedded numeric constant with the shortest text that
// parses back to the same float64.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

package conform

import (
	"math"
	"unicode/utf8"
)

// Constraint primitives. Each evaluator is total: inputs outside its domain
// yield false rather than a panic.

func satisfiesMinimum(n, bound float64) bool          { return !(n < bound) }
func satisfiesMaximum(n, bound float64) bool          { return !(n > bound) }
func satisfiesExclusiveMinimum(n, bound float64) bool { return n > bound }
func satisfiesExclusiveMaximum(n, bound float64) bool { return n < bound }

// satisfiesMultipleOf checks n % divisor == 0 with floating-point remainder.
// The sign of either operand does not matter (-2 is a multiple of 2 and of -2);
// a zero, NaN or infinite divisor is never satisfied.
func satisfiesMultipleOf(n, divisor float64) bool {
	if divisor == 0 || math.IsNaN(divisor) || math.IsInf(divisor, 0) {
		return false
	}
	return math.Mod(n, divisor) == 0
}

// stringLength counts Unicode code points.
func stringLength(s string) int { return utf8.RuneCountInString(s) }

func satisfiesMinLength(s string, bound int) bool { return stringLength(s) >= bound }
func satisfiesMaxLength(s string, bound int) bool { return stringLength(s) <= bound }

func inEnum(v any, enum []any) bool {
	for _, e := range enum {
		if IdentityEqual(v, e) {
			return true
		}
	}
	return false
}

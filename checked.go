package bytestr

import "math"

// addChecked returns a+b for non-negative operands and reports false when the
// sum does not fit in an int.
func addChecked(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// addSaturating returns a+b for non-negative operands, clamped to math.MaxInt.
func addSaturating(a, b int) int {
	if sum, ok := addChecked(a, b); ok {
		return sum
	}
	return math.MaxInt
}

// divRoundUp returns a/d rounded towards positive infinity for a >= 0, d > 0.
func divRoundUp(a, d int) int {
	q := a / d
	if a%d != 0 {
		q++
	}
	return q
}

// growCapacity returns the capacity a buffer of capacity c grows to when it
// must hold at least need bytes: c*1.5 (half rounded up), or need when that
// is larger.
func growCapacity(c, need int) int {
	return max(addSaturating(c, divRoundUp(c, 2)), need)
}

// Package bits provides low-level integer helpers for block geometry and
// merge-tree shape.
package bits

import "math/bits"

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// LowBit returns the lowest set bit of n, or 0 for n <= 0.
func LowBit(n int) int {
	if n <= 0 {
		return 0
	}
	return n & -n
}

// FloorPowerOfTwo returns the largest power of two <= n, or 0 for n <= 0.
func FloorPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	return 1 << (bits.Len(uint(n)) - 1)
}

// CeilDiv returns ceil(a / b) for a >= 0, b > 0.
func CeilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// AlignUp rounds n up to a multiple of unit (unit > 0).
func AlignUp(n, unit int64) int64 {
	return CeilDiv(n, unit) * unit
}

// LCM returns the least common multiple of two positive integers.
func LCM(a, b int64) int64 {
	x, y := a, b
	for y != 0 {
		x, y = y, x%y
	}
	return a / x * b
}

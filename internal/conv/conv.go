// Package conv provides checked integer narrowing for the regex engine.
//
// Narrowing happens at well-defined seams (instruction addresses, capture
// slots) where values are already bounded by the compile-time size limit,
// so overflow indicates a programming error and panics.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms cannot overflow the check itself.
	if n < 0 || uint64(n) > math.MaxUint32 {
		panic("conv: int value out of uint32 range")
	}
	return uint32(n)
}

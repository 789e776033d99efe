// Package conv provides checked integer narrowing for NFA state IDs.
//
// State IDs are uint32; arena sizes are int. Overflow here means an automaton
// grew past what a StateID can address, which the compiler's state budget
// should have prevented, so these helpers panic rather than return errors.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// uint comparison keeps 32-bit platforms from overflowing int.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

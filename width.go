package lzw

import "math/bits"

// bitsToRepresent returns the position of the highest set bit of n, which is
// the number of right shifts that bring n to zero.
func bitsToRepresent(n int) int {
	return bits.Len(uint(n))
}

// widthAfterPrune returns the code width both sides adopt after a prune that
// left size entries. It never exceeds maxBits.
func widthAfterPrune(size, maxBits int) int {
	return min(bitsToRepresent(size), maxBits)
}

package qsim

import "math/bits"

// ReverseBits reverses the lower n bits of x.
// Example: ReverseBits(6, 3) = ReverseBits(0b110, 3) = 0b011 = 3.
func ReverseBits(x, n int) int {
	if n == 0 {
		return 0
	}

	return int(bits.Reverse64(uint64(x)) >> (64 - n))
}

/*
BitReverse permutes states in place so that index i moves to ReverseBits(i).
The register never calls it. A caller that wants the natural-order DFT from
QuantumFourierTransform bit-reverses the input first.
*/
func BitReverse(states []C64) {
	n := bits.Len(uint(len(states))) - 1

	for i := range states {
		j := ReverseBits(i, n)
		if i < j {
			states[i], states[j] = states[j], states[i]
		}
	}
}

package qsim

import (
	"math"
	"math/rand/v2"
)

const tolerance = 1e-9

func randomStates(nQubits int, seed uint64) []C64 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	states := make([]C64, 1<<nQubits)

	for i := range states {
		states[i] = NewC64(rng.Float64()*2-1, rng.Float64()*2-1)
	}

	return states
}

func cloneStates(states []C64) []C64 {
	out := make([]C64, len(states))
	copy(out, states)
	return out
}

// sameBits compares two vectors by their IEEE-754 bit patterns.
func sameBits(a, b []C64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if math.Float64bits(a[i][0]) != math.Float64bits(b[i][0]) ||
			math.Float64bits(a[i][1]) != math.Float64bits(b[i][1]) {
			return false
		}
	}

	return true
}

func maxDistance(a []C64, b []complex128) float64 {
	var worst float64
	for i := range a {
		d := a[i].Sub(FromComplex128(b[i])).Abs()
		worst = math.Max(worst, d)
	}

	return worst
}

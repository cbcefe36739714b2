package qsim

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

/*
PairIndices maps loop counter i in [0, N/2) to the two basis states that
differ only in bit t. As i ranges over [0, N/2) the pairs are disjoint and
together cover [0, N) exactly once, which is what lets workers that own
disjoint ranges of i write the state vector without locks.
*/
func PairIndices(i, t int) (zero, one int) {
	mask := (1 << t) - 1
	zero = (i & mask) | ((i &^ mask) << 1)
	one = zero | (1 << t)

	return zero, one
}

/*
Kernel runs the gate update for loop counters in [lo, hi). Implementations
differ only in loop shape; per-element arithmetic is identical, so every
Kernel produces bit-identical output.
*/
type Kernel interface {
	Name() string
	Apply(states []C64, t int, gate *Gate, lo, hi int)
	ApplyControlled(states []C64, c, t int, gate *Gate, lo, hi int)
}

// ScalarKernel processes one pair per iteration.
type ScalarKernel struct{}

func (ScalarKernel) Name() string { return "scalar" }

func (ScalarKernel) Apply(states []C64, t int, gate *Gate, lo, hi int) {
	for i := lo; i < hi; i++ {
		zero, one := PairIndices(i, t)
		states[zero], states[one] = transform(gate, states[zero], states[one])
	}
}

func (ScalarKernel) ApplyControlled(states []C64, c, t int, gate *Gate, lo, hi int) {
	for i := lo; i < hi; i++ {
		controlledPair(states, c, t, gate, i)
	}
}

/*
UnrolledKernel processes two pairs per iteration: four loads, eight complex
products, four stores. This is the batched shape a vectorizing backend wants,
with the odd tail handled one pair at a time.
*/
type UnrolledKernel struct{}

func (UnrolledKernel) Name() string { return "unrolled" }

func (UnrolledKernel) Apply(states []C64, t int, gate *Gate, lo, hi int) {
	i := lo

	for ; i+1 < hi; i += 2 {
		z0, o0 := PairIndices(i, t)
		z1, o1 := PairIndices(i+1, t)

		a0, b0 := states[z0], states[o0]
		a1, b1 := states[z1], states[o1]

		states[z0], states[o0] = transform(gate, a0, b0)
		states[z1], states[o1] = transform(gate, a1, b1)
	}

	if i < hi {
		zero, one := PairIndices(i, t)
		states[zero], states[one] = transform(gate, states[zero], states[one])
	}
}

func (UnrolledKernel) ApplyControlled(states []C64, c, t int, gate *Gate, lo, hi int) {
	i := lo

	bit := 1 << c

	for ; i+1 < hi; i += 2 {
		z0, o0 := PairIndices(i, t)
		z1, o1 := PairIndices(i+1, t)

		nz0, no0 := transform(gate, states[z0], states[o0])
		nz1, no1 := transform(gate, states[z1], states[o1])

		if z0&bit != 0 {
			states[z0] = nz0
		}
		if o0&bit != 0 {
			states[o0] = no0
		}
		if z1&bit != 0 {
			states[z1] = nz1
		}
		if o1&bit != 0 {
			states[o1] = no1
		}
	}

	if i < hi {
		controlledPair(states, c, t, gate, i)
	}
}

func transform(gate *Gate, zeroAmp, oneAmp C64) (C64, C64) {
	return gate[0].Mul(zeroAmp).Add(gate[1].Mul(oneAmp)),
		gate[2].Mul(zeroAmp).Add(gate[3].Mul(oneAmp))
}

/*
controlledPair reads both amplitudes of pair i, then writes each half only
when bit c of that half's own index is set.
*/
func controlledPair(states []C64, c, t int, gate *Gate, i int) {
	zero, one := PairIndices(i, t)
	zeroAmp, oneAmp := states[zero], states[one]
	newZero, newOne := transform(gate, zeroAmp, oneAmp)

	if zero&(1<<c) != 0 {
		states[zero] = newZero
	}

	if one&(1<<c) != 0 {
		states[one] = newOne
	}
}

// Features lists the CPU capabilities that drive kernel selection.
type Features struct {
	HasSSE3      bool
	HasAVX2      bool
	HasASIMD     bool
	Architecture string
}

func DetectFeatures() Features {
	return Features{
		HasSSE3:      cpu.X86.HasSSE3,
		HasAVX2:      cpu.X86.HasAVX2,
		HasASIMD:     cpu.ARM64.HasASIMD,
		Architecture: runtime.GOARCH,
	}
}

// DetectKernel picks the unrolled kernel when the CPU has packed-double SIMD.
func DetectKernel() Kernel {
	return kernelFor(DetectFeatures())
}

func kernelFor(f Features) Kernel {
	switch {
	case f.Architecture == "amd64" && (f.HasAVX2 || f.HasSSE3):
		return UnrolledKernel{}
	case f.Architecture == "arm64" && f.HasASIMD:
		return UnrolledKernel{}
	default:
		return ScalarKernel{}
	}
}

package qsim

import (
	"math/bits"
	"strings"
	"time"

	"github.com/theapemachine/errnie"
)

/*
Register is a dense state vector of 2^n amplitudes. Index i's binary
expansion is the classical basis state, bit t being qubit t. The register
owns its slice exclusively and every gate call mutates it in place.

Nothing is validated: qubit indices must lie in [0, n), control and target
must differ, and the length must be a power of two. Violations give
unspecified results, including index-out-of-range panics.
*/
type Register struct {
	states   []C64
	qubits   int
	pool     *Pool
	kernel   Kernel
	metrics  *Metrics
	parallel bool
}

// RegisterOption is a function type for configuring registers
type RegisterOption func(*Register)

// WithPool sets the worker pool used by the parallel gate forms.
func WithPool(pool *Pool) RegisterOption {
	return func(r *Register) {
		r.pool = pool
	}
}

func WithMetrics(metrics *Metrics) RegisterOption {
	return func(r *Register) {
		r.metrics = metrics
	}
}

/*
WithParallel selects the gate form composite operations use. It has no effect
on the explicit ApplyGate/ApplyGateParallel calls.
*/
func WithParallel(parallel bool) RegisterOption {
	return func(r *Register) {
		r.parallel = parallel
	}
}

func WithKernel(kernel Kernel) RegisterOption {
	return func(r *Register) {
		r.kernel = kernel
	}
}

// WithConfig applies the parallel flag from a resolved Config.
func WithConfig(config *Config) RegisterOption {
	return func(r *Register) {
		r.parallel = config.Parallel
	}
}

// NewRegister takes ownership of states; the caller must not keep using it.
func NewRegister(states []C64, opts ...RegisterOption) *Register {
	r := &Register{
		states:   states,
		qubits:   bits.Len(uint(len(states))) - 1,
		parallel: true,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.kernel == nil {
		r.kernel = DetectKernel()
	}

	errnie.Info(
		"NewRegister - qubits %d, amplitudes %d, parallel %v, kernel %s",
		r.qubits,
		len(r.states),
		r.parallel,
		r.kernel.Name(),
	)

	return r
}

// NewZeroRegister allocates |0…0⟩ on nQubits qubits.
func NewZeroRegister(nQubits int, opts ...RegisterOption) *Register {
	return NewBasisRegister(nQubits, 0, opts...)
}

// NewBasisRegister allocates the computational basis state |basis⟩.
func NewBasisRegister(nQubits, basis int, opts ...RegisterOption) *Register {
	states := make([]C64, 1<<nQubits)
	states[basis] = NewC64(1, 0)

	return NewRegister(states, opts...)
}

// ApplyGate applies gate to qubit t on the calling goroutine.
func (r *Register) ApplyGate(t int, gate *Gate) {
	start := time.Now()
	r.kernel.Apply(r.states, t, gate, 0, len(r.states)>>1)
	r.metrics.recordGate(start, false)
}

/*
ApplyGateParallel applies gate to qubit t with the pair range split across
the pool. It returns once every pair has been written.
*/
func (r *Register) ApplyGateParallel(t int, gate *Gate) {
	start := time.Now()

	r.getPool().Dispatch(len(r.states)>>1, func(lo, hi int) {
		r.kernel.Apply(r.states, t, gate, lo, hi)
	})

	r.metrics.recordGate(start, false)
}

/*
ApplyControlledGate applies gate to target t, conditioned on control c. Both
amplitudes of each pair are read; each half is written only if bit c of its
own index is set.
*/
func (r *Register) ApplyControlledGate(c, t int, gate *Gate) {
	start := time.Now()
	r.kernel.ApplyControlled(r.states, c, t, gate, 0, len(r.states)>>1)
	r.metrics.recordGate(start, true)
}

func (r *Register) ApplyControlledGateParallel(c, t int, gate *Gate) {
	start := time.Now()

	r.getPool().Dispatch(len(r.states)>>1, func(lo, hi int) {
		r.kernel.ApplyControlled(r.states, c, t, gate, lo, hi)
	})

	r.metrics.recordGate(start, true)
}

/*
QuantumFourierTransform applies, for each qubit j in order, a controlled
phase of π/2^(j−k) from every lower qubit k (control j, target k), then a
Hadamard on j. The final bit-reversal swap is not performed: a basis input
|x⟩ ends up with amplitude exp(2πi·rev(x)·k/N)/√N at index k.
*/
func (r *Register) QuantumFourierTransform(nQubits int) {
	errnie.Info("QuantumFourierTransform - qubits %d, parallel %v", nQubits, r.parallel)

	h := Hadamard()

	for j := 0; j < nQubits; j++ {
		for k := 0; k < j; k++ {
			theta := Pi / float64(uint64(1)<<(j-k))
			cp := ControlledPhase(theta)
			r.applyControlled(j, k, &cp)
		}

		r.apply(j, &h)
	}
}

// InverseQuantumFourierTransform undoes QuantumFourierTransform(nQubits).
func (r *Register) InverseQuantumFourierTransform(nQubits int) {
	errnie.Info("InverseQuantumFourierTransform - qubits %d, parallel %v", nQubits, r.parallel)

	h := Hadamard()

	for j := nQubits - 1; j >= 0; j-- {
		r.apply(j, &h)

		for k := j - 1; k >= 0; k-- {
			theta := Pi / float64(uint64(1)<<(j-k))
			cp := ControlledPhase(theta).ConjugateTranspose()
			r.applyControlled(j, k, &cp)
		}
	}
}

func (r *Register) apply(t int, gate *Gate) {
	if r.parallel {
		r.ApplyGateParallel(t, gate)
		return
	}

	r.ApplyGate(t, gate)
}

func (r *Register) applyControlled(c, t int, gate *Gate) {
	if r.parallel {
		r.ApplyControlledGateParallel(c, t, gate)
		return
	}

	r.ApplyControlledGate(c, t, gate)
}

func (r *Register) getPool() *Pool {
	if r.pool == nil {
		r.pool = DefaultPool()
	}

	return r.pool
}

// Magnitudes returns |amplitude| for every basis state.
func (r *Register) Magnitudes() []float64 {
	out := make([]float64, len(r.states))
	for i, amp := range r.states {
		out[i] = amp.Abs()
	}

	return out
}

// Amplitudes returns a copy of the state vector.
func (r *Register) Amplitudes() []C64 {
	out := make([]C64, len(r.states))
	copy(out, r.states)

	return out
}

func (r *Register) Len() int    { return len(r.states) }
func (r *Register) Qubits() int { return r.qubits }

func (r *Register) String() string {
	var sb strings.Builder

	sb.WriteString("[")
	for _, amp := range r.states {
		sb.WriteString(" ")
		sb.WriteString(amp.String())
		sb.WriteString(" ")
	}
	sb.WriteString("]")

	return sb.String()
}

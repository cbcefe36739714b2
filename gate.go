package qsim

import (
	"fmt"
	"math"
)

/*
Gate is a 2×2 complex matrix acting on one target qubit, stored row-major as
[top-left, top-right, bottom-left, bottom-right]. Unitarity is expected but
never enforced by the register.
*/
type Gate [4]C64

// NewGate stores the four entries in row-major order.
func NewGate(z00, z01, z10, z11 C64) Gate {
	return Gate{z00, z01, z10, z11}
}

// Hadamard returns H = √½ [1 1; 1 −1].
func Hadamard() Gate {
	s := math.Sqrt(0.5)

	return NewGate(
		NewC64(s, 0), NewC64(s, 0),
		NewC64(s, 0), NewC64(-s, 0),
	)
}

/*
ControlledPhase returns diag(1, e^{iθ}). Applied as a controlled gate it
rotates the phase of basis states where both control and target are 1.
*/
func ControlledPhase(theta float64) Gate {
	return NewGate(
		NewC64(1, 0), ZeroC64(),
		ZeroC64(), NewC64(math.Cos(theta), math.Sin(theta)),
	)
}

// Phase is the single-qubit form of ControlledPhase.
func Phase(theta float64) Gate {
	return ControlledPhase(theta)
}

func Identity() Gate {
	return NewGate(NewC64(1, 0), ZeroC64(), ZeroC64(), NewC64(1, 0))
}

func PauliX() Gate {
	return NewGate(ZeroC64(), NewC64(1, 0), NewC64(1, 0), ZeroC64())
}

func PauliZ() Gate {
	return NewGate(NewC64(1, 0), ZeroC64(), ZeroC64(), NewC64(-1, 0))
}

// ConjugateTranspose returns the Hermitian adjoint G†.
func (g Gate) ConjugateTranspose() Gate {
	return Gate{
		g[0].Conjugate(), g[2].Conjugate(),
		g[1].Conjugate(), g[3].Conjugate(),
	}
}

func (g Gate) Add(o Gate) Gate {
	return Gate{g[0].Add(o[0]), g[1].Add(o[1]), g[2].Add(o[2]), g[3].Add(o[3])}
}

func (g Gate) Sub(o Gate) Gate {
	return Gate{g[0].Sub(o[0]), g[1].Sub(o[1]), g[2].Sub(o[2]), g[3].Sub(o[3])}
}

// Mul returns the matrix product g·o.
func (g Gate) Mul(o Gate) Gate {
	return Gate{
		g[0].Mul(o[0]).Add(g[1].Mul(o[2])),
		g[0].Mul(o[1]).Add(g[1].Mul(o[3])),
		g[2].Mul(o[0]).Add(g[3].Mul(o[2])),
		g[2].Mul(o[1]).Add(g[3].Mul(o[3])),
	}
}

/*
IsUnitary reports whether G·G† is the identity within tol on every entry.
It is a diagnostic for callers building their own gates; the register does
not call it.
*/
func (g Gate) IsUnitary(tol float64) bool {
	p := g.Mul(g.ConjugateTranspose())
	id := Identity()

	for i := range p {
		if p[i].Sub(id[i]).Abs() > tol {
			return false
		}
	}

	return true
}

func (g Gate) String() string {
	return fmt.Sprintf("%s\t%s\n%s\t%s", g[0], g[1], g[2], g[3])
}

package qsim

import (
	"fmt"
	"strings"
)

// Operation is one gate application in a Circuit.
type Operation struct {
	Name       string
	Control    int
	Target     int
	Gate       Gate
	Controlled bool
}

func (op Operation) String() string {
	if op.Controlled {
		return fmt.Sprintf("%s c=%d t=%d", op.Name, op.Control, op.Target)
	}

	return fmt.Sprintf("%s t=%d", op.Name, op.Target)
}

/*
Circuit is an ordered list of gate applications that can be replayed on any
register of matching width. Builders return the circuit so calls chain:

	c := NewCircuit(2).H(0).CP(1, 0, Pi/2).H(1)
*/
type Circuit struct {
	qubits int
	ops    []Operation
}

func NewCircuit(nQubits int) *Circuit {
	return &Circuit{qubits: nQubits}
}

// NewQFTCircuit records the same gate sequence QuantumFourierTransform applies.
func NewQFTCircuit(nQubits int) *Circuit {
	c := NewCircuit(nQubits)

	for j := 0; j < nQubits; j++ {
		for k := 0; k < j; k++ {
			c.CP(j, k, Pi/float64(uint64(1)<<(j-k)))
		}

		c.H(j)
	}

	return c
}

func (c *Circuit) H(t int) *Circuit {
	return c.add(Operation{Name: "H", Target: t, Gate: Hadamard()})
}

func (c *Circuit) X(t int) *Circuit {
	return c.add(Operation{Name: "X", Target: t, Gate: PauliX()})
}

func (c *Circuit) Apply(t int, gate Gate) *Circuit {
	return c.add(Operation{Name: "U", Target: t, Gate: gate})
}

func (c *Circuit) CP(control, target int, theta float64) *Circuit {
	return c.add(Operation{
		Name:       fmt.Sprintf("CP(%.4f)", theta),
		Control:    control,
		Target:     target,
		Gate:       ControlledPhase(theta),
		Controlled: true,
	})
}

func (c *Circuit) Controlled(control, target int, gate Gate) *Circuit {
	return c.add(Operation{
		Name:       "CU",
		Control:    control,
		Target:     target,
		Gate:       gate,
		Controlled: true,
	})
}

func (c *Circuit) add(op Operation) *Circuit {
	c.ops = append(c.ops, op)
	return c
}

// Inverse returns the adjoint circuit: reversed order, each gate replaced by G†.
func (c *Circuit) Inverse() *Circuit {
	inv := &Circuit{qubits: c.qubits, ops: make([]Operation, 0, len(c.ops))}

	for i := len(c.ops) - 1; i >= 0; i-- {
		op := c.ops[i]
		op.Name += "†"
		op.Gate = op.Gate.ConjugateTranspose()
		inv.ops = append(inv.ops, op)
	}

	return inv
}

// Run applies every operation in order, using the register's parallel setting.
func (c *Circuit) Run(r *Register) {
	for i := range c.ops {
		op := &c.ops[i]

		if op.Controlled {
			r.applyControlled(op.Control, op.Target, &op.Gate)
			continue
		}

		r.apply(op.Target, &op.Gate)
	}
}

func (c *Circuit) Len() int    { return len(c.ops) }
func (c *Circuit) Qubits() int { return c.qubits }

// Operations returns a copy of the recorded operations.
func (c *Circuit) Operations() []Operation {
	out := make([]Operation, len(c.ops))
	copy(out, c.ops)

	return out
}

func (c *Circuit) String() string {
	var sb strings.Builder

	for i, op := range c.ops {
		fmt.Fprintf(&sb, "%3d  %s\n", i, op)
	}

	return sb.String()
}

package qsim

import (
	"fmt"
	"math"
)

/*
C64 is a single probability amplitude, stored as a packed (real, imaginary)
pair of float64 values. The array layout matches a 128-bit SIMD lane, so a
batch of C64 values is a contiguous run of interleaved doubles.

Every product below is wrapped in an explicit float64 conversion. Go allows
the compiler to fuse x*y+z into a single FMA instruction, which rounds once
instead of twice; the conversions force standard IEEE-754 rounding so that
results are bit-for-bit the same on every platform and in every kernel.
*/
type C64 [2]float64

// NewC64 builds an amplitude from its real and imaginary parts.
func NewC64(re, im float64) C64 {
	return C64{re, im}
}

// ZeroC64 returns 0+0i.
func ZeroC64() C64 {
	return C64{}
}

// FromComplex128 converts a builtin complex128.
func FromComplex128(z complex128) C64 {
	return C64{real(z), imag(z)}
}

// Complex128 converts to the builtin complex type.
func (z C64) Complex128() complex128 {
	return complex(z[0], z[1])
}

func (z C64) Real() float64 { return z[0] }
func (z C64) Imag() float64 { return z[1] }

// Conjugate negates the imaginary part.
func (z C64) Conjugate() C64 {
	return C64{z[0], -z[1]}
}

// Abs returns the Euclidean magnitude sqrt(re² + im²).
func (z C64) Abs() float64 {
	return math.Sqrt(float64(z[0]*z[0]) + float64(z[1]*z[1]))
}

func (z C64) Add(w C64) C64 {
	return C64{z[0] + w[0], z[1] + w[1]}
}

func (z C64) Sub(w C64) C64 {
	return C64{z[0] - w[0], z[1] - w[1]}
}

// Mul computes (a+bi)(c+di) = (ac − bd) + (ad + bc)i.
func (z C64) Mul(w C64) C64 {
	a, b := z[0], z[1]
	c, d := w[0], w[1]

	return C64{
		float64(a*c) - float64(b*d),
		float64(a*d) + float64(b*c),
	}
}

/*
Div computes (a+bi)/(c+di) = [(ac+bd) + (bc−ad)i] / (c²+d²).
A zero divisor is not trapped; the result carries whatever Inf or NaN the
float division produces.
*/
func (z C64) Div(w C64) C64 {
	a, b := z[0], z[1]
	c, d := w[0], w[1]
	denom := float64(c*c) + float64(d*d)

	return C64{
		(float64(a*c) + float64(b*d)) / denom,
		(float64(b*c) - float64(a*d)) / denom,
	}
}

func (z *C64) AddAssign(w C64) { *z = z.Add(w) }
func (z *C64) SubAssign(w C64) { *z = z.Sub(w) }
func (z *C64) MulAssign(w C64) { *z = z.Mul(w) }
func (z *C64) DivAssign(w C64) { *z = z.Div(w) }

func (z C64) String() string {
	return fmt.Sprintf("%.3f%+.3fi", z[0], z[1])
}

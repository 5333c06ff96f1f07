package toycurve

import (
	"math/big"

	"github.com/zkdsl/circuit16/curve"
	"github.com/zkdsl/circuit16/field"
)

// Curve is a short-Weierstrass curve y^2 = x^3 + a*x + b over an arbitrary
// field.Field F (spec §6 treats the curve as an opaque external group; this
// is the from-scratch backend used to reproduce scenarios S4-S6).
type Curve struct {
	F    field.Field
	A, B field.Element
}

// NewCurve builds the curve y^2 = x^3 + a*x + b over f.
func NewCurve(f field.Field, a, b field.Element) *Curve {
	return &Curve{F: f, A: a, B: b}
}

// AffinePoint is a point of a Curve in affine coordinates.
type AffinePoint struct {
	Curve *Curve
	X, Y  field.Element
	Inf   bool
}

// Infinity returns the point at infinity (identity) of c.
func (c *Curve) Infinity() AffinePoint { return AffinePoint{Curve: c, Inf: true} }

// Point builds the affine point (x, y), trusted to lie on the curve.
func (c *Curve) Point(x, y field.Element) AffinePoint {
	return AffinePoint{Curve: c, X: x, Y: y}
}

func (p AffinePoint) IsIdentity() bool { return p.Inf }

func (p AffinePoint) Neg() curve.Point {
	if p.Inf {
		return p
	}
	return AffinePoint{Curve: p.Curve, X: p.X, Y: p.Y.Neg()}
}

// Add implements the standard affine addition formulas (distinct points,
// doubling, and the identity/inverse special cases).
func (p AffinePoint) Add(other curve.Point) curve.Point {
	q := other.(AffinePoint)
	if p.Inf {
		return q
	}
	if q.Inf {
		return p
	}
	if p.X.Equal(q.X) {
		if p.Y.Equal(q.Y.Neg()) || p.Y.IsZero() {
			return p.Curve.Infinity()
		}
		return p.double()
	}

	num := q.Y.Sub(p.Y)
	den := q.X.Sub(p.X)
	denInv, err := den.Inverse()
	if err != nil {
		panic(err) // den != 0 was just checked via X equality above
	}
	lambda := num.Mul(denInv)
	x3 := lambda.Mul(lambda).Sub(p.X).Sub(q.X)
	y3 := lambda.Mul(p.X.Sub(x3)).Sub(p.Y)
	return AffinePoint{Curve: p.Curve, X: x3, Y: y3}
}

func (p AffinePoint) double() curve.Point {
	if p.Y.IsZero() {
		return p.Curve.Infinity()
	}
	f := p.Curve.F
	two := f.FromUint64(2)
	three := f.FromUint64(3)
	num := three.Mul(p.X).Mul(p.X).Add(p.Curve.A)
	den := two.Mul(p.Y)
	denInv, err := den.Inverse()
	if err != nil {
		panic(err)
	}
	lambda := num.Mul(denInv)
	x3 := lambda.Mul(lambda).Sub(two.Mul(p.X))
	y3 := lambda.Mul(p.X.Sub(x3)).Sub(p.Y)
	return AffinePoint{Curve: p.Curve, X: x3, Y: y3}
}

// ScalarMul computes scalar*p via double-and-add. scalar is an element of
// the curve's scalar field Fr, distinct from the curve's own coordinate
// field F (e.g. G2's coordinate field is F43^6 while scalars are mod 13).
func (p AffinePoint) ScalarMul(scalar field.Element) curve.Point {
	k := scalar.BigInt()
	neg := k.Sign() < 0
	if neg {
		k = new(big.Int).Neg(k)
	}
	result := curve.Point(p.Curve.Infinity())
	addend := curve.Point(p)
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = result.Add(addend)
		}
		addend = addend.Add(addend)
	}
	if neg {
		result = result.Neg()
	}
	return result
}

func (p AffinePoint) Equal(other curve.Point) bool {
	q := other.(AffinePoint)
	if p.Inf || q.Inf {
		return p.Inf == q.Inf
	}
	return p.X.Equal(q.X) && p.Y.Equal(q.Y)
}

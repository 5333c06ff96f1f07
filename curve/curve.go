// Package curve defines the elliptic-curve/pairing contract the compiler
// core consumes (spec §6): two prime-order groups G1, G2 of order |Fr|, and
// a non-degenerate bilinear pairing e: G1 x G2 -> GT. curve/toycurve and
// curve/bn254backend are the two implementations (see package field's doc
// comment for the rationale of having both).
package curve

import "github.com/zkdsl/circuit16/field"

// Point is an element of G1 or G2.
type Point interface {
	Add(Point) Point
	Neg() Point
	ScalarMul(field.Element) Point
	IsIdentity() bool
	Equal(Point) bool
}

// TargetElement is an element of the pairing target group GT.
type TargetElement interface {
	Mul(TargetElement) TargetElement
	Equal(TargetElement) bool
}

// Pairing bundles the two source groups, their generators, and the
// bilinear map between them (spec's Groth16Parameters).
type Pairing interface {
	Fr() field.Field
	G1Generator() Point
	G2Generator() Point
	G1Identity() Point
	G2Identity() Point
	Pair(a, b Point) TargetElement
}

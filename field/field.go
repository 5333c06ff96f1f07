// Package field defines the prime-field contract the compiler core consumes
// (spec §6: "Field/curve backend contract"). Two implementations satisfy it:
// field/smallprime (a math/big toy field, used to reproduce the spec's
// worked small-field scenarios) and field/bn254field (an adapter over
// gnark-crypto's production bn254 scalar field).
package field

import (
	"io"
	"math/big"
)

// Element is a residue of a prime field Fr. Implementations are expected to
// be small value types, copied by value like gnark-crypto's fr.Element.
type Element interface {
	Add(Element) Element
	Sub(Element) Element
	Mul(Element) Element
	Neg() Element
	Inverse() (Element, error)
	IsZero() bool
	Equal(Element) bool
	BigInt() *big.Int
	String() string
}

// Field is a prime field Fr = Z/pZ.
type Field interface {
	// Zero and One return the additive and multiplicative identities.
	Zero() Element
	One() Element

	// Element builds a field element from an integer residue.
	Element(v *big.Int) Element

	// FromUint64 is a convenience wrapper around Element.
	FromUint64(v uint64) Element

	// Random draws a uniformly random non-zero element of Fr using r as an
	// entropy source (crypto/rand.Reader in production, a seeded source in
	// tests).
	Random(r io.Reader) (Element, error)

	// Generator returns a generator of the multiplicative group Fr*.
	Generator() Element

	// Order returns the field's prime modulus p (so |Fr*| = p-1).
	Order() *big.Int
}

// notInvertibleError is the type of ErrNotInvertible, returned by
// Element.Inverse for the zero element.
type notInvertibleError struct{}

func (notInvertibleError) Error() string { return "field: zero element has no inverse" }

// ErrNotInvertible is the sentinel returned when inverting the zero element.
var ErrNotInvertible error = notInvertibleError{}

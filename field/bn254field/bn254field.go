// Package bn254field adapts gnark-crypto's bn254 scalar field
// (github.com/consensys/gnark-crypto/ecc/bn254/fr) to field.Field, so the
// compiler core can run against the real pairing-friendly scalar field used
// in production, not just the toy field/smallprime backend.
package bn254field

import (
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/zkdsl/circuit16/field"
)

// Field is the bn254 scalar field Fr.
type Field struct{}

// New returns the bn254 scalar field.
func New() *Field { return &Field{} }

func (f *Field) Zero() field.Element { var e fr.Element; return Element{e} }
func (f *Field) One() field.Element  { var e fr.Element; e.SetOne(); return Element{e} }

func (f *Field) Element(v *big.Int) field.Element {
	var e fr.Element
	e.SetBigInt(v)
	return Element{e}
}

func (f *Field) FromUint64(v uint64) field.Element {
	var e fr.Element
	e.SetUint64(v)
	return Element{e}
}

func (f *Field) Random(r io.Reader) (field.Element, error) {
	var e fr.Element
	for {
		if r == nil {
			if _, err := e.SetRandom(); err != nil {
				return nil, err
			}
		} else {
			// fr.Element.SetRandom always draws from crypto/rand; for a
			// caller-supplied deterministic source, sample a big.Int instead.
			v, err := readBigInt(r, e.Modulus())
			if err != nil {
				return nil, err
			}
			e.SetBigInt(v)
		}
		if !e.IsZero() {
			return Element{e}, nil
		}
	}
}

func readBigInt(r io.Reader, mod *big.Int) (*big.Int, error) {
	buf := make([]byte, (mod.BitLen()+7)/8+8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(buf)
	return v.Mod(v, mod), nil
}

func (f *Field) Generator() field.Element {
	// bn254 Fr is cyclic of prime order; 5 generates Fr* (well known small
	// generator used throughout the gnark-crypto test suite).
	return f.FromUint64(5)
}

func (f *Field) Order() *big.Int {
	var e fr.Element
	return e.Modulus()
}

// Element wraps an fr.Element value.
type Element struct {
	v fr.Element
}

func (a Element) Add(other field.Element) field.Element {
	b := other.(Element)
	var out fr.Element
	out.Add(&a.v, &b.v)
	return Element{out}
}

func (a Element) Sub(other field.Element) field.Element {
	b := other.(Element)
	var out fr.Element
	out.Sub(&a.v, &b.v)
	return Element{out}
}

func (a Element) Mul(other field.Element) field.Element {
	b := other.(Element)
	var out fr.Element
	out.Mul(&a.v, &b.v)
	return Element{out}
}

func (a Element) Neg() field.Element {
	var out fr.Element
	out.Neg(&a.v)
	return Element{out}
}

func (a Element) Inverse() (field.Element, error) {
	if a.IsZero() {
		return nil, field.ErrNotInvertible
	}
	var out fr.Element
	out.Inverse(&a.v)
	return Element{out}, nil
}

func (a Element) IsZero() bool { return a.v.IsZero() }

func (a Element) Equal(other field.Element) bool {
	b, ok := other.(Element)
	if !ok {
		return false
	}
	return a.v.Equal(&b.v)
}

func (a Element) BigInt() *big.Int {
	var out big.Int
	a.v.ToBigIntRegular(&out)
	return &out
}

func (a Element) String() string { return a.v.String() }

// Raw exposes the underlying gnark-crypto element, for callers (e.g.
// curve/bn254backend) that need to feed it to ecc/bn254 scalar
// multiplication APIs.
func (a Element) Raw() fr.Element { return a.v }

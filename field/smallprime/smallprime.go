// Package smallprime implements field.Field over an arbitrary prime modulus
// using math/big. gnark-crypto hardcodes specific production curve scalar
// fields (bn254, bls12-381, ...); none of them have modulus 13 or 43, so the
// spec's worked scenarios (§8, S1-S6), which use Fr = Z/13Z, need a
// from-scratch field backend. This package exists solely to reproduce those
// scenarios and to back small-field property tests.
package smallprime

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/zkdsl/circuit16/field"
)

// Field is a prime field Z/pZ for an arbitrary prime p.
type Field struct {
	p *big.Int
}

// New returns the field Z/pZ. p is trusted to be prime; this package does
// no primality testing (the spec's domains are all tiny, hand-picked
// constants).
func New(p *big.Int) *Field {
	return &Field{p: new(big.Int).Set(p)}
}

// NewUint64 is a convenience constructor for small moduli.
func NewUint64(p uint64) *Field {
	return New(new(big.Int).SetUint64(p))
}

func (f *Field) Order() *big.Int { return new(big.Int).Set(f.p) }

func (f *Field) reduce(v *big.Int) *big.Int {
	r := new(big.Int).Mod(v, f.p)
	return r
}

// Element is a residue class mod p.
type Element struct {
	f *Field
	v *big.Int
}

func (f *Field) Zero() field.Element { return Element{f: f, v: big.NewInt(0)} }
func (f *Field) One() field.Element  { return Element{f: f, v: big.NewInt(1)} }

func (f *Field) Element(v *big.Int) field.Element {
	return Element{f: f, v: f.reduce(v)}
}

func (f *Field) FromUint64(v uint64) field.Element {
	return f.Element(new(big.Int).SetUint64(v))
}

// Random draws a uniform non-zero element of Fr* from r.
func (f *Field) Random(r io.Reader) (field.Element, error) {
	if r == nil {
		r = rand.Reader
	}
	upper := new(big.Int).Sub(f.p, big.NewInt(1))
	if upper.Sign() <= 0 {
		return nil, fmt.Errorf("smallprime: field too small to draw a non-zero element")
	}
	for {
		v, err := rand.Int(r, upper)
		if err != nil {
			return nil, err
		}
		v.Add(v, big.NewInt(1)) // shift into [1, p-1]
		return f.Element(v), nil
	}
}

// Generator returns a generator of Fr* found by trial (Fr* is tiny in every
// use of this package).
func (f *Field) Generator() field.Element {
	order := new(big.Int).Sub(f.p, big.NewInt(1))
	for g := int64(2); ; g++ {
		cand := f.FromUint64(uint64(g))
		if isGenerator(f, cand, order) {
			return cand
		}
	}
}

func isGenerator(f *Field, cand field.Element, order *big.Int) bool {
	if cand.IsZero() {
		return false
	}
	// cand generates Fr* iff cand^(order/q) != 1 for every prime q | order.
	for _, q := range primeFactors(order) {
		exp := new(big.Int).Div(order, q)
		if expt(f, cand, exp).Equal(f.One()) {
			return false
		}
	}
	return true
}

func expt(f *Field, base field.Element, exp *big.Int) field.Element {
	result := f.One()
	b := base
	e := new(big.Int).Set(exp)
	zero := big.NewInt(0)
	two := big.NewInt(2)
	for e.Cmp(zero) > 0 {
		if new(big.Int).And(e, big.NewInt(1)).Sign() != 0 {
			result = result.Mul(b)
		}
		b = b.Mul(b)
		e.Div(e, two)
	}
	return result
}

func primeFactors(n *big.Int) []*big.Int {
	var factors []*big.Int
	rem := new(big.Int).Set(n)
	for d := big.NewInt(2); d.Cmp(rem) <= 0; d.Add(d, big.NewInt(1)) {
		if new(big.Int).Mod(rem, d).Sign() == 0 {
			factors = append(factors, new(big.Int).Set(d))
			for new(big.Int).Mod(rem, d).Sign() == 0 {
				rem.Div(rem, d)
			}
		}
		if d.Cmp(big.NewInt(1000000)) > 0 {
			// safety valve: this backend only ever sees tiny moduli.
			break
		}
	}
	if rem.Cmp(big.NewInt(1)) > 0 {
		factors = append(factors, rem)
	}
	return factors
}

func (a Element) Add(other field.Element) field.Element {
	b := other.(Element)
	return Element{f: a.f, v: a.f.reduce(new(big.Int).Add(a.v, b.v))}
}

func (a Element) Sub(other field.Element) field.Element {
	b := other.(Element)
	return Element{f: a.f, v: a.f.reduce(new(big.Int).Sub(a.v, b.v))}
}

func (a Element) Mul(other field.Element) field.Element {
	b := other.(Element)
	return Element{f: a.f, v: a.f.reduce(new(big.Int).Mul(a.v, b.v))}
}

func (a Element) Neg() field.Element {
	return Element{f: a.f, v: a.f.reduce(new(big.Int).Neg(a.v))}
}

func (a Element) Inverse() (field.Element, error) {
	if a.IsZero() {
		return nil, field.ErrNotInvertible
	}
	inv := new(big.Int).ModInverse(a.v, a.f.p)
	if inv == nil {
		return nil, fmt.Errorf("smallprime: %s has no inverse mod %s", a.v, a.f.p)
	}
	return Element{f: a.f, v: inv}, nil
}

func (a Element) IsZero() bool { return a.v.Sign() == 0 }

func (a Element) Equal(other field.Element) bool {
	b, ok := other.(Element)
	if !ok {
		return false
	}
	return a.v.Cmp(b.v) == 0
}

func (a Element) BigInt() *big.Int { return new(big.Int).Set(a.v) }

func (a Element) String() string { return a.v.String() }

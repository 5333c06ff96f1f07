// Package toycurve implements a generic short-Weierstrass curve over an
// arbitrary field.Field, an algebraic extension tower (quotient by a monic
// reducing polynomial), and a reduced Tate pairing via Miller's algorithm.
// Nothing in the example corpus or the wider Go ecosystem implements
// pairing-friendly curves over arbitrary small moduli (gnark-crypto
// hardcodes specific production curves), so this package is the from-scratch
// "external field/curve backend" spec §6 carves out, built only to reproduce
// the spec's worked numeric scenarios (S4-S6) and back small-field tests.
package toycurve

import (
	"io"
	"math/big"

	"github.com/zkdsl/circuit16/field"
)

// ExtField is F_base[y]/(mod), for a monic reducing polynomial mod of
// degree d. Elements are represented as field.Polynomial of degree < d over
// base. ExtField itself implements field.Field, so toycurve.Curve can be
// instantiated uniformly over either a base prime field (for G1) or an
// extension tower (for G2) — mirroring how the spec's scenario S4 builds g1
// on E(F43) and g2 on the same curve lifted to E(F43^6).
type ExtField struct {
	Base   field.Field
	Mod    field.Polynomial // monic, degree d
	Degree int
}

// NewExtField builds F_base[y]/(modCoeff), modCoeff given low-degree first
// with an implicit leading 1 (i.e. pass only the d coefficients below the
// monic x^d term).
func NewExtField(base field.Field, modCoeffBelowLeading []field.Element) *ExtField {
	d := len(modCoeffBelowLeading)
	coeff := append(append([]field.Element(nil), modCoeffBelowLeading...), base.One())
	return &ExtField{Base: base, Mod: field.NewPolynomial(base, coeff), Degree: d}
}

// Ext is an element of an ExtField.
type Ext struct {
	F *ExtField
	P field.Polynomial
}

func (f *ExtField) wrap(p field.Polynomial) Ext {
	_, rem, err := p.QuoRem(f.Mod)
	if err != nil {
		// Mod is never zero by construction (monic, degree>=1).
		panic(err)
	}
	return Ext{F: f, P: rem}
}

func (f *ExtField) Zero() field.Element { return Ext{F: f, P: field.Zero(f.Base)} }
func (f *ExtField) One() field.Element {
	return Ext{F: f, P: field.NewPolynomial(f.Base, []field.Element{f.Base.One()})}
}

// Element embeds an integer into the prime subfield (constant term).
func (f *ExtField) Element(v *big.Int) field.Element {
	return Ext{F: f, P: field.NewPolynomial(f.Base, []field.Element{f.Base.Element(v)})}
}

func (f *ExtField) FromUint64(v uint64) field.Element {
	return f.Element(new(big.Int).SetUint64(v))
}

// FromBase embeds a base-field element as a constant-term extension
// element; used by Curve and the pairing to lift G1 coordinates into GT.
func (f *ExtField) FromBase(v field.Element) Ext {
	return Ext{F: f, P: field.NewPolynomial(f.Base, []field.Element{v})}
}

// FromCoeffs builds an extension element directly from its coefficient
// vector (low-degree first), e.g. for literal test fixtures like 7*y^2.
func (f *ExtField) FromCoeffs(coeff []field.Element) Ext {
	return f.wrap(field.NewPolynomial(f.Base, coeff))
}

func (f *ExtField) Random(r io.Reader) (field.Element, error) {
	coeff := make([]field.Element, f.Degree)
	for i := range coeff {
		e, err := f.Base.Random(r)
		if err != nil {
			return nil, err
		}
		coeff[i] = e
	}
	return Ext{F: f, P: field.NewPolynomial(f.Base, coeff)}, nil
}

// Generator is best-effort: it embeds the base field's generator. This is
// not guaranteed to generate the full extension multiplicative group, but
// nothing in this package's curve/pairing arithmetic relies on Generator()
// for the extension field — it exists only so ExtField satisfies
// field.Field structurally.
func (f *ExtField) Generator() field.Element { return f.FromBase(f.Base.Generator()) }

func (f *ExtField) Order() *big.Int {
	order := new(big.Int).SetInt64(1)
	base := f.Base.Order()
	for i := 0; i < f.Degree; i++ {
		order.Mul(order, base)
	}
	return order
}

func (a Ext) Add(other field.Element) field.Element {
	b := other.(Ext)
	return Ext{F: a.F, P: a.P.Add(b.P)}
}

func (a Ext) Sub(other field.Element) field.Element {
	b := other.(Ext)
	return Ext{F: a.F, P: a.P.Sub(b.P)}
}

func (a Ext) Mul(other field.Element) field.Element {
	b := other.(Ext)
	return a.F.wrap(a.P.Mul(b.P))
}

func (a Ext) Neg() field.Element {
	return Ext{F: a.F, P: a.P.Scale(a.P.F.Zero().Sub(a.P.F.One()))}
}

// Inverse computes a^-1 mod Mod via the extended Euclidean algorithm on
// polynomials, valid since Mod is (trusted to be) irreducible over Base.
func (a Ext) Inverse() (field.Element, error) {
	if a.IsZero() {
		return nil, field.ErrNotInvertible
	}
	g, s, _ := extGCD(a.F.Base, a.P, a.F.Mod)
	if g.Degree() != 0 {
		return nil, field.ErrNotInvertible
	}
	gInv, err := g.Coeff[0].Inverse()
	if err != nil {
		return nil, err
	}
	return a.F.wrap(s.Scale(gInv)), nil
}

// extGCD returns (g, s, t) such that g = s*a + t*b, via the textbook
// polynomial extended Euclidean algorithm.
func extGCD(f field.Field, a, b field.Polynomial) (g, s, t field.Polynomial) {
	if b.IsZero() {
		return a, field.NewPolynomial(f, []field.Element{f.One()}), field.Zero(f)
	}
	quo, rem, err := a.QuoRem(b)
	if err != nil {
		panic(err)
	}
	g, s1, t1 := extGCD(f, b, rem)
	// g = s1*b + t1*rem = s1*b + t1*(a - quo*b) = t1*a + (s1 - quo*t1)*b
	return g, t1, s1.Sub(quo.Mul(t1))
}

func (a Ext) IsZero() bool { return a.P.IsZero() }

func (a Ext) Equal(other field.Element) bool {
	b, ok := other.(Ext)
	if !ok {
		return false
	}
	n := len(a.P.Coeff)
	if len(b.P.Coeff) > n {
		n = len(b.P.Coeff)
	}
	for i := 0; i < n; i++ {
		ai, bi := coeffAt(a.P, i), coeffAt(b.P, i)
		if !ai.Equal(bi) {
			return false
		}
	}
	return true
}

func coeffAt(p field.Polynomial, i int) field.Element {
	if i < len(p.Coeff) {
		return p.Coeff[i]
	}
	return p.F.Zero()
}

// BigInt encodes the coefficient vector as a single integer via base-p
// place value (p = Base.Order()), a canonical bijective representation.
func (a Ext) BigInt() *big.Int {
	p := a.F.Base.Order()
	out := new(big.Int)
	for i := len(a.P.Coeff) - 1; i >= 0; i-- {
		out.Mul(out, p)
		out.Add(out, a.P.Coeff[i].BigInt())
	}
	return out
}

func (a Ext) String() string {
	if a.P.IsZero() {
		return "0"
	}
	s := ""
	for i, c := range a.P.Coeff {
		if c.IsZero() {
			continue
		}
		if s != "" {
			s += "+"
		}
		if i == 0 {
			s += c.String()
		} else {
			s += c.String() + "*y^" + itoa(i)
		}
	}
	return s
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var b []byte
	for i > 0 {
		b = append([]byte{byte('0' + i%10)}, b...)
		i /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

// Exp computes a^e via repeated squaring, e non-negative.
func (a Ext) Exp(e *big.Int) Ext {
	result := a.F.One().(Ext)
	base := a
	exp := new(big.Int).Set(e)
	zero := big.NewInt(0)
	for exp.Cmp(zero) > 0 {
		if exp.Bit(0) == 1 {
			result = result.Mul(base).(Ext)
		}
		base = base.Mul(base).(Ext)
		exp.Rsh(exp, 1)
	}
	return result
}

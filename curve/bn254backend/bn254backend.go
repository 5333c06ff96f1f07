// Package bn254backend adapts gnark-crypto's bn254 curve pair
// (github.com/consensys/gnark-crypto/ecc/bn254) to the curve.Point /
// curve.Pairing / curve.TargetElement contract (spec §6), so the compiler
// core's CRS/Prover/Verifier can run against a real pairing-friendly curve
// instead of only curve/toycurve's hand-rolled one. Grounded on the
// teacher's own use of ecc/bn254 in backend/groth16/bn254/groth16.go and
// backend/groth16/bn254/marshal.go (field element conversions, MultiExp
// usage, pairing calls).
package bn254backend

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/zkdsl/circuit16/curve"
	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/field/bn254field"
)

// G1Point wraps a bn254 G1 affine point.
type G1Point struct{ p bn254.G1Affine }

// G2Point wraps a bn254 G2 affine point.
type G2Point struct{ p bn254.G2Affine }

// NewG1 builds a G1Point from a gnark-crypto affine point (e.g. bn254.G1Affine{}.ScalarMultiplicationBase(...)).
func NewG1(p bn254.G1Affine) G1Point { return G1Point{p} }

// NewG2 builds a G2Point from a gnark-crypto affine point.
func NewG2(p bn254.G2Affine) G2Point { return G2Point{p} }

func scalarToFr(s field.Element) bn254fr.Element {
	if e, ok := s.(bn254field.Element); ok {
		return e.Raw()
	}
	var out bn254fr.Element
	out.SetBigInt(s.BigInt())
	return out
}

func (p G1Point) Add(other curve.Point) curve.Point {
	q := other.(G1Point)
	var out bn254.G1Jac
	var pj, qj bn254.G1Jac
	pj.FromAffine(&p.p)
	qj.FromAffine(&q.p)
	out.Set(&pj).AddAssign(&qj)
	var res bn254.G1Affine
	res.FromJacobian(&out)
	return G1Point{res}
}

func (p G1Point) Neg() curve.Point {
	var out bn254.G1Affine
	out.Neg(&p.p)
	return G1Point{out}
}

func (p G1Point) ScalarMul(scalar field.Element) curve.Point {
	s := scalarToFr(scalar)
	var sBig big.Int
	s.ToBigIntRegular(&sBig)
	var out bn254.G1Affine
	out.ScalarMultiplication(&p.p, &sBig)
	return G1Point{out}
}

func (p G1Point) IsIdentity() bool { return p.p.IsInfinity() }

func (p G1Point) Equal(other curve.Point) bool {
	q := other.(G1Point)
	return p.p.Equal(&q.p)
}

func (p G1Point) MarshalBinary() ([]byte, error) {
	b := p.p.Bytes()
	return b[:], nil
}

func (p *G1Point) UnmarshalBinary(data []byte) error {
	var compressed [32]byte
	if len(data) != len(compressed) {
		return fmt.Errorf("bn254backend: G1Point wants %d bytes, got %d", len(compressed), len(data))
	}
	copy(compressed[:], data)
	_, err := p.p.SetBytes(compressed[:])
	return err
}

func (p G2Point) Add(other curve.Point) curve.Point {
	q := other.(G2Point)
	var out bn254.G2Jac
	var pj, qj bn254.G2Jac
	pj.FromAffine(&p.p)
	qj.FromAffine(&q.p)
	out.Set(&pj).AddAssign(&qj)
	var res bn254.G2Affine
	res.FromJacobian(&out)
	return G2Point{res}
}

func (p G2Point) Neg() curve.Point {
	var out bn254.G2Affine
	out.Neg(&p.p)
	return G2Point{out}
}

func (p G2Point) ScalarMul(scalar field.Element) curve.Point {
	s := scalarToFr(scalar)
	var sBig big.Int
	s.ToBigIntRegular(&sBig)
	var out bn254.G2Affine
	out.ScalarMultiplication(&p.p, &sBig)
	return G2Point{out}
}

func (p G2Point) IsIdentity() bool { return p.p.IsInfinity() }

func (p G2Point) Equal(other curve.Point) bool {
	q := other.(G2Point)
	return p.p.Equal(&q.p)
}

func (p G2Point) MarshalBinary() ([]byte, error) {
	b := p.p.Bytes()
	return b[:], nil
}

func (p *G2Point) UnmarshalBinary(data []byte) error {
	var compressed [64]byte
	if len(data) != len(compressed) {
		return fmt.Errorf("bn254backend: G2Point wants %d bytes, got %d", len(compressed), len(data))
	}
	copy(compressed[:], data)
	_, err := p.p.SetBytes(compressed[:])
	return err
}

// GTElement wraps a bn254 target-group (Fp12) element.
type GTElement struct{ v bn254.GT }

func (g GTElement) Mul(other curve.TargetElement) curve.TargetElement {
	o := other.(GTElement)
	var out bn254.GT
	out.Mul(&g.v, &o.v)
	return GTElement{out}
}

func (g GTElement) Equal(other curve.TargetElement) bool {
	o, ok := other.(GTElement)
	if !ok {
		return false
	}
	return g.v.Equal(&o.v)
}

// Pairing implements curve.Pairing over bn254 via gnark-crypto's optimal
// Ate pairing (bn254.Pair), grounded on the teacher's
// backend/groth16/bn254/groth16.go Verify, which calls the same
// bn254.Pair/PairingCheck entry points.
type Pairing struct {
	fr field.Field
}

// NewPairing returns the bn254 pairing e: G1 x G2 -> GT, with scalar field
// Fr adapted via field/bn254field.
func NewPairing() *Pairing { return &Pairing{fr: bn254field.New()} }

func (p *Pairing) Fr() field.Field { return p.fr }

func (p *Pairing) G1Generator() curve.Point {
	_, _, g1, _ := bn254.Generators()
	return G1Point{g1}
}

func (p *Pairing) G2Generator() curve.Point {
	_, _, _, g2 := bn254.Generators()
	return G2Point{g2}
}

func (p *Pairing) G1Identity() curve.Point {
	var inf bn254.G1Affine
	return G1Point{inf}
}

func (p *Pairing) G2Identity() curve.Point {
	var inf bn254.G2Affine
	return G2Point{inf}
}

func (p *Pairing) Pair(a, b curve.Point) curve.TargetElement {
	p1 := a.(G1Point)
	p2 := b.(G2Point)
	gt, err := bn254.Pair([]bn254.G1Affine{p1.p}, []bn254.G2Affine{p2.p})
	if err != nil {
		// Pair only errors on malformed inputs; every Point produced by this
		// package is a well-formed curve element.
		panic(err)
	}
	return GTElement{gt}
}

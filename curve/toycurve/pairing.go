package toycurve

import (
	"math/big"

	"github.com/zkdsl/circuit16/curve"
	"github.com/zkdsl/circuit16/field"
)

// GTElement is an element of the pairing target group, the multiplicative
// group of the extension field GT = F_{q^k}. It wraps Ext but exposes the
// curve.TargetElement method set (Mul/Equal over TargetElement, not over
// field.Element) since Go forbids two same-named methods with different
// signatures on one type; an explicit method on GTElement shadows the
// promoted Ext one, so GTElement satisfies exactly curve.TargetElement.
type GTElement struct{ Ext Ext }

func (g GTElement) Mul(other curve.TargetElement) curve.TargetElement {
	o := other.(GTElement)
	return GTElement{g.Ext.Mul(o.Ext).(Ext)}
}

func (g GTElement) Equal(other curve.TargetElement) bool {
	o, ok := other.(GTElement)
	if !ok {
		return false
	}
	return g.Ext.Equal(o.Ext)
}

// Pairing implements curve.Pairing via a reduced Tate pairing computed with
// Miller's algorithm, grounded on original_source/lib/zkp/groth16.py's
// weil_pairing usage (the spec treats the concrete pairing as an
// implementation detail of the external curve backend; only its bilinearity
// is load-bearing for Groth16 verification).
type Pairing struct {
	G1, G2     *Curve
	GT         *ExtField
	FrField    field.Field
	G1Gen      AffinePoint
	G2Gen      AffinePoint
}

// NewPairing builds a reduced Tate pairing e: G1 x G2 -> GT over curves G1
// (base field) and G2 (degree-k extension field), with scalar field fr of
// prime order r = |G1| = |G2|.
func NewPairing(g1, g2 *Curve, gt *ExtField, fr field.Field, g1Gen, g2Gen AffinePoint) *Pairing {
	return &Pairing{G1: g1, G2: g2, GT: gt, FrField: fr, G1Gen: g1Gen, G2Gen: g2Gen}
}

func (p *Pairing) Fr() field.Field          { return p.FrField }
func (p *Pairing) G1Generator() curve.Point { return p.G1Gen }
func (p *Pairing) G2Generator() curve.Point { return p.G2Gen }
func (p *Pairing) G1Identity() curve.Point  { return p.G1.Infinity() }
func (p *Pairing) G2Identity() curve.Point  { return p.G2.Infinity() }

// Pair computes e(a, b) via Miller's algorithm followed by the final
// exponentiation (q^k - 1)/r, which kills the vertical-line factors left
// over from the unreduced Miller function.
func (p *Pairing) Pair(a, b curve.Point) curve.TargetElement {
	P := a.(AffinePoint)
	Q := b.(AffinePoint)
	r := p.FrField.Order()

	f := millerLoop(p.GT, P, Q, r)

	q := p.G1.F.Order()
	k := big.NewInt(int64(p.GT.Degree))
	qk := new(big.Int).Exp(q, k, nil)
	qk.Sub(qk, big.NewInt(1))
	exp := new(big.Int).Div(qk, r)

	return GTElement{f.Exp(exp)}
}

// millerLoop evaluates the Miller function f_{r,P} at Q, via the standard
// double-and-add loop over the bits of r.
func millerLoop(gt *ExtField, P, Q AffinePoint, r *big.Int) Ext {
	T := P
	f := gt.One().(Ext)
	for i := r.BitLen() - 2; i >= 0; i-- {
		f = f.Mul(f).(Ext)
		f = f.Mul(lineEval(gt, T, T, Q)).(Ext)
		T = T.Add(T).(AffinePoint)
		if r.Bit(i) == 1 {
			f = f.Mul(lineEval(gt, T, P, Q)).(Ext)
			T = T.Add(P).(AffinePoint)
		}
	}
	return f
}

// lineEval evaluates, at Q, the line through A and B on the curve (the
// tangent at A when A == B), embedding A/B's base-field coordinates into
// GT to combine with Q's extension-field coordinates.
func lineEval(gt *ExtField, A, B, Q AffinePoint) Ext {
	qx := Q.X.(Ext)
	qy := Q.Y.(Ext)

	if A.X.Equal(B.X) {
		if A.Y.Equal(B.Y) {
			if A.Y.IsZero() {
				return qx.Sub(gt.FromBase(A.X)).(Ext)
			}
			curveField := A.Curve.F
			two := curveField.FromUint64(2)
			three := curveField.FromUint64(3)
			num := three.Mul(A.X).Mul(A.X).Add(A.Curve.A)
			den := two.Mul(A.Y)
			denInv, err := den.Inverse()
			if err != nil {
				panic(err)
			}
			slope := num.Mul(denInv)
			lhs := qy.Sub(gt.FromBase(A.Y))
			rhs := gt.FromBase(slope).Mul(qx.Sub(gt.FromBase(A.X)))
			return lhs.Sub(rhs).(Ext)
		}
		// A + B = O: vertical line x = Ax.
		return qx.Sub(gt.FromBase(A.X)).(Ext)
	}

	den := B.X.Sub(A.X)
	denInv, err := den.Inverse()
	if err != nil {
		panic(err)
	}
	slope := B.Y.Sub(A.Y).Mul(denInv)
	lhs := qy.Sub(gt.FromBase(A.Y))
	rhs := gt.FromBase(slope).Mul(qx.Sub(gt.FromBase(A.X)))
	return lhs.Sub(rhs).(Ext)
}

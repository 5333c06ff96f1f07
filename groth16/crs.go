package groth16

import (
	"time"

	"github.com/zkdsl/circuit16/curve"
	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/internal/logging"
	"github.com/zkdsl/circuit16/qap"
)

// CRSG1 is the G1 half of the CRS, the 5-tuple (alpha/beta/delta bases,
// powers of tau, instance basis, witness basis, H basis) from
// CRS.generate's CRS_G1 (spec §4.4).
type CRSG1 struct {
	Alpha, Beta, Delta curve.Point
	PowersOfTau        []curve.Point // g1*tau^j, j = 0..T.Degree()-1
	Instance           []curve.Point // public-input commitment basis, len n+1
	Witness            []curve.Point // private-witness commitment basis, len m
	HBasis             []curve.Point // g1*(tau^j*T(tau)/delta), len T.Degree()-1
}

// CRSG2 is the G2 half of the CRS (spec §4.4).
type CRSG2 struct {
	Beta, Gamma, Delta curve.Point
	PowersOfTau        []curve.Point // g2*tau^j, j = 0..T.Degree()-1
}

// CRS is the Groth16 common reference string (spec §3: "CRS").
type CRS struct {
	QAP          qap.System
	NumInstances int
	G1           CRSG1
	G2           CRSG2
	Pairing      curve.Pairing
}

// GenerateCRS builds the CRS for q under pairing, using the (secret)
// trapdoor st, given the split of q's L+1 witness columns into a leading
// constant column, numInstances public-instance columns, then
// len(q.Ax)-numInstances-1 private witness columns (spec §4.4; grounded on
// CRS.generate in groth16.py).
func GenerateCRS(q qap.System, pairing curve.Pairing, st Trapdoor, numInstances int) (CRS, error) {
	start := time.Now()
	if st.Gamma.IsZero() || st.Delta.IsZero() {
		return CRS{}, ErrZeroTrapdoor
	}
	if numInstances < 0 || numInstances >= len(q.Ax) {
		return CRS{}, shapeMismatchError{what: "numInstances", got: numInstances, want: len(q.Ax) - 1}
	}

	fr := pairing.Fr()
	g1 := pairing.G1Generator()
	g2 := pairing.G2Generator()

	gammaInv, err := st.Gamma.Inverse()
	if err != nil {
		return CRS{}, err
	}
	deltaInv, err := st.Delta.Inverse()
	if err != nil {
		return CRS{}, err
	}

	n := numInstances
	m := len(q.Ax) - numInstances - 1
	degT := q.T.Degree()

	tauPowers := powersOf(fr, st.Tau, degT)

	g1CRS := CRSG1{
		Alpha: g1.ScalarMul(st.Alpha),
		Beta:  g1.ScalarMul(st.Beta),
		Delta: g1.ScalarMul(st.Delta),
	}
	g1CRS.PowersOfTau = make([]curve.Point, degT)
	for j := 0; j < degT; j++ {
		g1CRS.PowersOfTau[j] = g1.ScalarMul(tauPowers[j])
	}

	g1CRS.Instance = make([]curve.Point, n+1)
	for j := 0; j <= n; j++ {
		numerator := crsNumerator(q, j, st.Alpha, st.Beta, st.Tau)
		g1CRS.Instance[j] = g1.ScalarMul(numerator.Mul(gammaInv))
	}

	g1CRS.Witness = make([]curve.Point, m)
	for j := 1; j <= m; j++ {
		numerator := crsNumerator(q, j+n, st.Alpha, st.Beta, st.Tau)
		g1CRS.Witness[j-1] = g1.ScalarMul(numerator.Mul(deltaInv))
	}

	tAtTau := q.T.Eval(st.Tau)
	hBasisLen := degT - 1
	if hBasisLen < 0 {
		hBasisLen = 0
	}
	g1CRS.HBasis = make([]curve.Point, hBasisLen)
	for j := 0; j < hBasisLen; j++ {
		numerator := tauPowers[j].Mul(tAtTau)
		g1CRS.HBasis[j] = g1.ScalarMul(numerator.Mul(deltaInv))
	}

	g2CRS := CRSG2{
		Beta:  g2.ScalarMul(st.Beta),
		Gamma: g2.ScalarMul(st.Gamma),
		Delta: g2.ScalarMul(st.Delta),
	}
	g2CRS.PowersOfTau = make([]curve.Point, degT)
	for j := 0; j < degT; j++ {
		g2CRS.PowersOfTau[j] = g2.ScalarMul(tauPowers[j])
	}

	logging.Logger.Debug().
		Int("instances", n).
		Int("witness", m).
		Dur("took", time.Since(start)).
		Msg("crs generated")

	return CRS{QAP: q, NumInstances: n, G1: g1CRS, G2: g2CRS, Pairing: pairing}, nil
}

// crsNumerator computes beta*Ax[j](tau) + alpha*Bx[j](tau) + Cx[j](tau),
// the shared numerator of the CRS's instance/witness bases.
func crsNumerator(q qap.System, j int, alpha, beta, tau field.Element) field.Element {
	a := q.Ax[j].Eval(tau)
	b := q.Bx[j].Eval(tau)
	c := q.Cx[j].Eval(tau)
	return beta.Mul(a).Add(alpha.Mul(b)).Add(c)
}

func powersOf(f field.Field, x field.Element, n int) []field.Element {
	out := make([]field.Element, n)
	cur := f.One()
	for i := 0; i < n; i++ {
		out[i] = cur
		cur = cur.Mul(x)
	}
	return out
}

// evalAtBasis evaluates polynomial p "in the exponent" using a CRS's
// precomputed basis of bases*tau^j points (CRS.py's
// eval_g1_tau/eval_g2_tau/eval_gT_tau), returning identity on the zero
// polynomial.
func evalAtBasis(identity curve.Point, basis []curve.Point, p field.Polynomial) curve.Point {
	acc := identity
	for i, coeff := range p.Coeff {
		if i >= len(basis) || coeff.IsZero() {
			continue
		}
		acc = acc.Add(basis[i].ScalarMul(coeff))
	}
	return acc
}

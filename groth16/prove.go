package groth16

import (
	"io"
	"time"

	"github.com/zkdsl/circuit16/curve"
	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/internal/logging"
)

// Proof is a Groth16 proof (spec §3: "Proof"): the three group elements a
// verifier checks against a single pairing equation.
type Proof struct {
	A curve.Point
	C curve.Point
	B curve.Point // in G2
}

// Prove builds a proof that instances/witness satisfy crs's circuit,
// drawing fresh blinding scalars r, t from rnd when either is nil
// (grounded on Groth16Proof.generate in groth16.py).
func Prove(crs CRS, instances, witness []field.Element, r, t field.Element, rnd io.Reader) (Proof, error) {
	start := time.Now()
	if len(instances) != crs.NumInstances {
		return Proof{}, shapeMismatchError{what: "instances", got: len(instances), want: crs.NumInstances}
	}
	wantWitness := len(crs.QAP.Ax) - crs.NumInstances - 1
	if len(witness) != wantWitness {
		return Proof{}, shapeMismatchError{what: "witness", got: len(witness), want: wantWitness}
	}

	fr := crs.Pairing.Fr()
	var err error
	if r == nil {
		if r, err = fr.Random(rnd); err != nil {
			return Proof{}, err
		}
	}
	if t == nil {
		if t, err = fr.Random(rnd); err != nil {
			return Proof{}, err
		}
	}

	g1Alpha, g1Beta, g1Delta := crs.G1.Alpha, crs.G1.Beta, crs.G1.Delta
	g2Beta, g2Delta := crs.G2.Beta, crs.G2.Delta
	g1Identity := crs.Pairing.G1Identity()
	g2Identity := crs.Pairing.G2Identity()

	// s = [0] + instances + witness: the constant column's contribution is
	// folded into alpha/beta already, so it is zeroed here rather than
	// pinned to 1 (matches groth16.py's Groth16Proof.generate exactly).
	s := make([]field.Element, 0, 1+len(instances)+len(witness))
	s = append(s, fr.Zero())
	s = append(s, instances...)
	s = append(s, witness...)

	g1W := g1Identity
	for i, w := range witness {
		g1W = g1W.Add(crs.G1.Witness[i].ScalarMul(w))
	}

	g1A := g1Alpha
	g1B := g1Beta
	g2B := g2Beta
	for j, sj := range s {
		if sj.IsZero() {
			continue
		}
		g1A = g1A.Add(evalAtBasis(g1Identity, crs.G1.PowersOfTau, crs.QAP.Ax[j]).ScalarMul(sj))
		g1B = g1B.Add(evalAtBasis(g1Identity, crs.G1.PowersOfTau, crs.QAP.Bx[j]).ScalarMul(sj))
		g2B = g2B.Add(evalAtBasis(g2Identity, crs.G2.PowersOfTau, crs.QAP.Bx[j]).ScalarMul(sj))
	}
	g1A = g1A.Add(g1Delta.ScalarMul(r))
	g1B = g1B.Add(g1Delta.ScalarMul(t))
	g2B = g2B.Add(g2Delta.ScalarMul(t))

	fullWitness := make([]field.Element, 0, 1+len(instances)+len(witness))
	fullWitness = append(fullWitness, fr.One())
	fullWitness = append(fullWitness, instances...)
	fullWitness = append(fullWitness, witness...)
	h, err := crs.QAP.H(fullWitness)
	if err != nil {
		return Proof{}, err
	}
	if len(h.Coeff) > len(crs.G1.HBasis) {
		return Proof{}, degreeOverflowError{degree: h.Degree(), max: len(crs.G1.HBasis) - 1}
	}

	rt := r.Mul(t).Neg()
	g1C := g1W.
		Add(evalAtBasis(g1Identity, crs.G1.HBasis, h)).
		Add(g1A.ScalarMul(t)).
		Add(g1B.ScalarMul(r)).
		Add(g1Delta.ScalarMul(rt))

	logging.Logger.Debug().Dur("took", time.Since(start)).Msg("proof generated")
	return Proof{A: g1A, C: g1C, B: g2B}, nil
}

package groth16

import (
	"io"

	"github.com/zkdsl/circuit16/field"
)

// Forge produces a proof that verifies for any chosen instances, using
// knowledge of the trapdoor st — the textbook demonstration that Groth16's
// soundness rests entirely on tau/alpha/beta/gamma/delta staying secret
// (spec §4.7, the diagnostic Forger). A, B are drawn from rnd when nil.
// Grounded on Groth16Proof.forge in groth16.py.
func Forge(crs CRS, instances []field.Element, st Trapdoor, a, b field.Element, rnd io.Reader) (Proof, error) {
	if len(instances) != crs.NumInstances {
		return Proof{}, shapeMismatchError{what: "instances", got: len(instances), want: crs.NumInstances}
	}

	fr := crs.Pairing.Fr()
	var err error
	if a == nil {
		if a, err = fr.Random(rnd); err != nil {
			return Proof{}, err
		}
	}
	if b == nil {
		if b, err = fr.Random(rnd); err != nil {
			return Proof{}, err
		}
	}

	g1 := crs.Pairing.G1Generator()
	g2 := crs.Pairing.G2Generator()
	deltaInv, err := st.Delta.Inverse()
	if err != nil {
		return Proof{}, err
	}

	g1A := g1.ScalarMul(a)
	g2B := g2.ScalarMul(b)

	abOverDelta := a.Mul(b).Mul(deltaInv)
	alphaBetaOverDelta := st.Alpha.Mul(st.Beta).Mul(deltaInv).Neg()

	// I' = [1] + instances: the constant column is included with
	// coefficient 1, the same I_ext Verify's g1I sum uses (transcribed
	// from Groth16Proof.forge).
	iPrime := append([]field.Element{fr.One()}, instances...)

	g1C := g1.ScalarMul(abOverDelta).Add(g1.ScalarMul(alphaBetaOverDelta))
	for j, ij := range iPrime {
		numerator := crsNumerator(crs.QAP, j, st.Alpha, st.Beta, st.Tau)
		coeff := numerator.Mul(deltaInv).Neg().Mul(ij)
		g1C = g1C.Add(g1.ScalarMul(coeff))
	}

	return Proof{A: g1A, C: g1C, B: g2B}, nil
}

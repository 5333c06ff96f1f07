package groth16

import (
	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/internal/logging"
)

// Verify checks proof against the public instances under crs's pairing
// equation e(A,B) = e(alpha,beta)*e(I,gamma)*e(C,delta) (spec §4.6),
// grounded on Groth16Proof.verify in groth16.py.
func Verify(crs CRS, proof Proof, instances []field.Element) (bool, error) {
	if len(instances) != crs.NumInstances {
		return false, shapeMismatchError{what: "instances", got: len(instances), want: crs.NumInstances}
	}

	g1Identity := crs.Pairing.G1Identity()

	// spec §4.6: I_ext = [1] ++ I, zipped against CRS_G1[2] (indices 0..n).
	// groth16.py's verify() uses 0 here, but that disagrees with its own
	// forge() (I_prime = [1, *I]) and with this package's own forge.go,
	// which both use 1 for this slot; 1 is also what spec.md mandates. Using
	// 0 is invisible for a pure multiplication chain (Bx[0]/Cx[0] are zero
	// there) but breaks completeness for any circuit with an AddGate, whose
	// constraint has a non-zero constant-column coefficient.
	g1I := g1Identity
	s := append([]field.Element{crs.Pairing.Fr().One()}, instances...)
	for j, sj := range s {
		if sj.IsZero() {
			continue
		}
		g1I = g1I.Add(crs.G1.Instance[j].ScalarMul(sj))
	}

	lhs := crs.Pairing.Pair(proof.A, proof.B)
	rhsAlphaBeta := crs.Pairing.Pair(crs.G1.Alpha, crs.G2.Beta)
	rhsInstance := crs.Pairing.Pair(g1I, crs.G2.Gamma)
	rhsC := crs.Pairing.Pair(proof.C, crs.G2.Delta)

	rhs := rhsAlphaBeta.Mul(rhsInstance).Mul(rhsC)
	ok := lhs.Equal(rhs)
	if !ok {
		logging.Logger.Debug().Msg("proof rejected: pairing equation mismatch")
	}
	return ok, nil
}

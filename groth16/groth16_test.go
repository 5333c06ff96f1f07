package groth16_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkdsl/circuit16/curve/toycurve"
	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/field/smallprime"
	"github.com/zkdsl/circuit16/groth16"
	"github.com/zkdsl/circuit16/qap"
	"github.com/zkdsl/circuit16/r1cs"
)

// addGateR1CS is a single-constraint circuit out = x1 + x2, instance-first:
// s = [1, out, x1, x2]. An AddGate's emitted constraint has B pinned to the
// constant column (B = [1,0,0,0]), which is exactly the shape that exposes
// whether Verify's I_ext uses the spec's 1 or groth16.py's buggy 0 for the
// constant-column coefficient of the instance commitment.
func addGateR1CS(f field.Field) r1cs.System {
	zero, one := f.Zero(), f.One()
	vec := func(entries map[int]field.Element) []field.Element {
		v := make([]field.Element, 4)
		for i := range v {
			v[i] = zero
		}
		for i, e := range entries {
			v[i] = e
		}
		return v
	}
	const (
		out = 1
		x1  = 2
		x2  = 3
	)
	return r1cs.System{Constraints: []r1cs.Constraint{
		{
			A: vec(map[int]field.Element{x1: one, x2: one}),
			B: vec(map[int]field.Element{0: one}),
			C: vec(map[int]field.Element{out: one}),
		},
	}}
}

// instanceFirstR1CS is the spec's three-factor circuit w = x1*x2*x3, lowered
// to R1CS by hand with the public instance (the output) placed in slot 1
// and the private witness (x1, x2, x3, the x1*x2 intermediate) in slots
// 2..5: s = [1, out, x1, x2, x3, w1=x1*x2], matching S1's I = [11],
// W = [2, 3, 4, 6] (§8). qap_test.go's threeFactorR1CS uses a different
// slot order since that test never splits the witness into instance/witness
// halves; Groth16 needs the instance-first layout the CRS's n/m split
// assumes (spec §4.4).
func instanceFirstR1CS(f field.Field) r1cs.System {
	zero := f.Zero()
	one := f.One()
	vec := func(entries map[int]field.Element) []field.Element {
		v := make([]field.Element, 6)
		for i := range v {
			v[i] = zero
		}
		for i, e := range entries {
			v[i] = e
		}
		return v
	}
	const (
		out = 1
		x1  = 2
		x2  = 3
		x3  = 4
		w1  = 5
	)
	return r1cs.System{Constraints: []r1cs.Constraint{
		{A: vec(map[int]field.Element{x1: one}), B: vec(map[int]field.Element{x2: one}), C: vec(map[int]field.Element{w1: one})},
		{A: vec(map[int]field.Element{w1: one}), B: vec(map[int]field.Element{x3: one}), C: vec(map[int]field.Element{out: one})},
	}}
}

// toyPairingFixture builds the exact S4 pairing setup: E: y^2 = x^3 + 6 over
// F43, extended to F43^6 via y^6 + 6 for G2, g1 = (13, 15), g2 = (7y^2, 16y^3).
func toyPairingFixture(t *testing.T) (*toycurve.Pairing, *toycurve.Curve, *toycurve.Curve, *toycurve.ExtField, field.Field) {
	t.Helper()
	f43 := smallprime.NewUint64(43)
	fr := smallprime.NewUint64(13)

	g1Curve := toycurve.NewCurve(f43, f43.FromUint64(0), f43.FromUint64(6))
	g1 := g1Curve.Point(f43.FromUint64(13), f43.FromUint64(15))

	gt := toycurve.NewExtField(f43, []field.Element{
		f43.FromUint64(6), f43.FromUint64(0), f43.FromUint64(0),
		f43.FromUint64(0), f43.FromUint64(0), f43.FromUint64(0),
	}) // y^6 + 6

	g2Curve := toycurve.NewCurve(gt, gt.FromBase(f43.FromUint64(0)), gt.FromBase(f43.FromUint64(6)))
	g2x := gt.FromCoeffs([]field.Element{f43.FromUint64(0), f43.FromUint64(0), f43.FromUint64(7)})
	g2y := gt.FromCoeffs([]field.Element{f43.FromUint64(0), f43.FromUint64(0), f43.FromUint64(0), f43.FromUint64(16)})
	g2 := g2Curve.Point(g2x, g2y)

	pairing := toycurve.NewPairing(g1Curve, g2Curve, gt, fr, g1, g2)
	return pairing, g1Curve, g2Curve, gt, fr
}

func s4CRS(t *testing.T) (groth16.CRS, *toycurve.Curve, *toycurve.Curve, *toycurve.ExtField) {
	t.Helper()
	pairing, g1Curve, g2Curve, gt, fr := toyPairingFixture(t)

	sys := instanceFirstR1CS(fr)
	domain := []field.Element{fr.FromUint64(5), fr.FromUint64(7)}
	q, err := qap.FromR1CS(fr, sys, domain)
	require.NoError(t, err)

	st := groth16.Trapdoor{
		Alpha: fr.FromUint64(6),
		Beta:  fr.FromUint64(5),
		Gamma: fr.FromUint64(4),
		Delta: fr.FromUint64(3),
		Tau:   fr.FromUint64(2),
	}
	crs, err := groth16.GenerateCRS(q, pairing, st, 1)
	require.NoError(t, err)
	return crs, g1Curve, g2Curve, gt
}

// TestProveMatchesS4 reproduces spec §8's S4 (CRS literal) scenario exactly:
// fixed trapdoor and prover randomness must yield the literal proof values.
func TestProveMatchesS4(t *testing.T) {
	crs, g1Curve, g2Curve, gt := s4CRS(t)
	fr := crs.Pairing.Fr()

	instances := []field.Element{fr.FromUint64(11)}
	witness := []field.Element{fr.FromUint64(2), fr.FromUint64(3), fr.FromUint64(4), fr.FromUint64(6)}

	proof, err := groth16.Prove(crs, instances, witness, fr.FromUint64(11), fr.FromUint64(4), nil)
	require.NoError(t, err)

	f43 := g1Curve.F // point coordinates live in F43, not in Fr
	wantA := g1Curve.Point(f43.FromUint64(35), f43.FromUint64(15))
	wantC := g1Curve.Point(f43.FromUint64(13), f43.FromUint64(28))
	wantB := g2Curve.Point(
		gt.FromCoeffs([]field.Element{f43.FromUint64(0), f43.FromUint64(0), f43.FromUint64(7)}),
		gt.FromCoeffs([]field.Element{f43.FromUint64(0), f43.FromUint64(0), f43.FromUint64(0), f43.FromUint64(27)}),
	)

	require.True(t, proof.A.Equal(wantA), "A = %v, want (35,15)", proof.A)
	require.True(t, proof.C.Equal(wantC), "C = %v, want (13,28)", proof.C)
	require.True(t, proof.B.Equal(wantB), "B = %v, want (7y^2,27y^3)", proof.B)

	ok, err := groth16.Verify(crs, proof, instances)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestVerifyRejectsWrongInstance reproduces S5: the S4 proof must not
// verify against a different public instance.
func TestVerifyRejectsWrongInstance(t *testing.T) {
	crs, _, _, _ := s4CRS(t)
	fr := crs.Pairing.Fr()

	instances := []field.Element{fr.FromUint64(11)}
	witness := []field.Element{fr.FromUint64(2), fr.FromUint64(3), fr.FromUint64(4), fr.FromUint64(6)}
	proof, err := groth16.Prove(crs, instances, witness, fr.FromUint64(11), fr.FromUint64(4), nil)
	require.NoError(t, err)

	ok, err := groth16.Verify(crs, proof, []field.Element{fr.FromUint64(3)})
	require.NoError(t, err)
	require.False(t, ok)
}

// TestForgeMatchesS6 reproduces S6: a proof forged with knowledge of the
// trapdoor and arbitrary A', B' must verify for the chosen instance.
func TestForgeMatchesS6(t *testing.T) {
	crs, g1Curve, g2Curve, gt := s4CRS(t)
	fr := crs.Pairing.Fr()

	st := groth16.Trapdoor{
		Alpha: fr.FromUint64(6),
		Beta:  fr.FromUint64(5),
		Gamma: fr.FromUint64(4),
		Delta: fr.FromUint64(3),
		Tau:   fr.FromUint64(2),
	}
	instances := []field.Element{fr.FromUint64(11)}

	proof, err := groth16.Forge(crs, instances, st, fr.FromUint64(9), fr.FromUint64(3), nil)
	require.NoError(t, err)

	f43 := g1Curve.F // point coordinates live in F43, not in Fr
	wantA := g1Curve.Point(f43.FromUint64(35), f43.FromUint64(15))
	wantC := g1Curve.Point(f43.FromUint64(33), f43.FromUint64(9))
	wantB := g2Curve.Point(
		gt.FromCoeffs([]field.Element{f43.FromUint64(0), f43.FromUint64(0), f43.FromUint64(42)}),
		gt.FromCoeffs([]field.Element{f43.FromUint64(0), f43.FromUint64(0), f43.FromUint64(0), f43.FromUint64(16)}),
	)

	require.True(t, proof.A.Equal(wantA), "A = %v, want (35,15)", proof.A)
	require.True(t, proof.C.Equal(wantC), "C = %v, want (33,9)", proof.C)
	require.True(t, proof.B.Equal(wantB), "B = %v, want (42y^2,16y^3)", proof.B)

	ok, err := groth16.Verify(crs, proof, instances)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestGenerateCRSRejectsZeroTrapdoor covers the ZeroTrapdoor failure mode
// (spec §7).
func TestGenerateCRSRejectsZeroTrapdoor(t *testing.T) {
	pairing, _, _, _, fr := toyPairingFixture(t)
	sys := instanceFirstR1CS(fr)
	q, err := qap.FromR1CS(fr, sys, []field.Element{fr.FromUint64(5), fr.FromUint64(7)})
	require.NoError(t, err)

	st := groth16.Trapdoor{
		Alpha: fr.FromUint64(6),
		Beta:  fr.FromUint64(5),
		Gamma: fr.Zero(),
		Delta: fr.FromUint64(3),
		Tau:   fr.FromUint64(2),
	}
	_, err = groth16.GenerateCRS(q, pairing, st, 1)
	require.ErrorIs(t, err, groth16.ErrZeroTrapdoor)
}

// TestGenerateCRSRejectsInstanceCountOverflow covers the ShapeMismatch
// failure mode for a numInstances that leaves no room for a witness split
// (spec §4.4, §7): GenerateCRS must reject it rather than panic computing a
// negative-length witness basis.
func TestGenerateCRSRejectsInstanceCountOverflow(t *testing.T) {
	pairing, _, _, _, fr := toyPairingFixture(t)
	sys := instanceFirstR1CS(fr)
	q, err := qap.FromR1CS(fr, sys, []field.Element{fr.FromUint64(5), fr.FromUint64(7)})
	require.NoError(t, err)

	st := groth16.Trapdoor{
		Alpha: fr.FromUint64(6),
		Beta:  fr.FromUint64(5),
		Gamma: fr.FromUint64(4),
		Delta: fr.FromUint64(3),
		Tau:   fr.FromUint64(2),
	}
	_, err = groth16.GenerateCRS(q, pairing, st, len(q.Ax))
	require.ErrorIs(t, err, groth16.ErrShapeMismatch)
}

// TestProveVerifyRoundTripsThroughAddGate is a regression test for an
// AddGate circuit's completeness: Verify's instance commitment must zip the
// constant column against 1 (spec §4.6's I_ext = [1]++I), not 0 as
// groth16.py's verify() does — a bug invisible on the project's other
// tests, which only ever exercise a pure multiplication chain whose
// constant-column coefficients happen to be zero.
func TestProveVerifyRoundTripsThroughAddGate(t *testing.T) {
	pairing, _, _, _, fr := toyPairingFixture(t)
	sys := addGateR1CS(fr)
	q, err := qap.FromR1CS(fr, sys, []field.Element{fr.FromUint64(5)})
	require.NoError(t, err)

	st := groth16.Trapdoor{
		Alpha: fr.FromUint64(6),
		Beta:  fr.FromUint64(5),
		Gamma: fr.FromUint64(4),
		Delta: fr.FromUint64(3),
		Tau:   fr.FromUint64(2),
	}
	crs, err := groth16.GenerateCRS(q, pairing, st, 1)
	require.NoError(t, err)

	x1, x2 := fr.FromUint64(3), fr.FromUint64(4)
	out := x1.Add(x2)
	instances := []field.Element{out}
	witness := []field.Element{x1, x2}

	proof, err := groth16.Prove(crs, instances, witness, nil, nil, rand.Reader)
	require.NoError(t, err)

	ok, err := groth16.Verify(crs, proof, instances)
	require.NoError(t, err)
	require.True(t, ok, "a satisfying (I,W) through an AddGate must verify")
}

// TestProveRejectsShapeMismatch covers the ShapeMismatch failure mode.
func TestProveRejectsShapeMismatch(t *testing.T) {
	crs, _, _, _ := s4CRS(t)
	fr := crs.Pairing.Fr()

	_, err := groth16.Prove(crs, []field.Element{fr.FromUint64(11), fr.FromUint64(1)},
		[]field.Element{fr.FromUint64(2), fr.FromUint64(3), fr.FromUint64(4), fr.FromUint64(6)},
		fr.FromUint64(11), fr.FromUint64(4), nil)
	require.Error(t, err)
}

package groth16_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zkdsl/circuit16/curve"
	"github.com/zkdsl/circuit16/curve/bn254backend"
	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/field/bn254field"
	"github.com/zkdsl/circuit16/groth16"
	"github.com/zkdsl/circuit16/qap"
	"github.com/zkdsl/circuit16/r1cs"
)

// bn254ThreeFactorR1CS is the same instance-first w=x1*x2*x3 lowering as
// cmd/threefactor's threeFactorR1CS (witness slots [1, out, x1, x2, x3,
// mul1]), over bn254's production scalar field rather than the toy
// field/smallprime one, so serialization can be exercised against
// curve/bn254backend's real encoding.BinaryMarshaler/BinaryUnmarshaler
// points (curve/toycurve deliberately has none, see serialize.go).
func bn254ThreeFactorR1CS(f field.Field) r1cs.System {
	zero, one := f.Zero(), f.One()
	row := func(set map[int]field.Element) []field.Element {
		v := make([]field.Element, 6)
		for i := range v {
			v[i] = zero
		}
		for i, c := range set {
			v[i] = c
		}
		return v
	}
	return r1cs.System{Constraints: []r1cs.Constraint{
		{A: row(map[int]field.Element{2: one}), B: row(map[int]field.Element{3: one}), C: row(map[int]field.Element{5: one})},
		{A: row(map[int]field.Element{5: one}), B: row(map[int]field.Element{4: one}), C: row(map[int]field.Element{1: one})},
	}}
}

// TestCRSAndProofRoundTripOverBN254 checks that CRS.WriteTo/ReadFrom and
// Proof.WriteTo/ReadFrom are fixpoints: decoding and re-encoding a real
// bn254 CRS/Proof must reproduce the original bytes exactly.
func TestCRSAndProofRoundTripOverBN254(t *testing.T) {
	fr := bn254field.New()
	pairing := bn254backend.NewPairing()
	sys := bn254ThreeFactorR1CS(fr)
	q, err := qap.FromR1CS(fr, sys, nil)
	if err != nil {
		t.Fatal(err)
	}

	st := groth16.Trapdoor{
		Alpha: fr.FromUint64(6), Beta: fr.FromUint64(5), Gamma: fr.FromUint64(4),
		Delta: fr.FromUint64(3), Tau: fr.FromUint64(2),
	}
	crs, err := groth16.GenerateCRS(q, pairing, st, 1)
	if err != nil {
		t.Fatal(err)
	}

	var crsBuf bytes.Buffer
	if _, err := crs.WriteTo(&crsBuf); err != nil {
		t.Fatal(err)
	}
	original := append([]byte(nil), crsBuf.Bytes()...)

	var decoded groth16.CRS
	newG1 := func() curve.Point { return &bn254backend.G1Point{} }
	newG2 := func() curve.Point { return &bn254backend.G2Point{} }
	if _, err := decoded.ReadFrom(pairing, newG1, newG2, &crsBuf); err != nil {
		t.Fatal(err)
	}
	if decoded.NumInstances != crs.NumInstances {
		t.Fatalf("NumInstances = %d, want %d", decoded.NumInstances, crs.NumInstances)
	}

	var reencoded bytes.Buffer
	if _, err := decoded.WriteTo(&reencoded); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(original, reencoded.Bytes()); diff != "" {
		t.Errorf("CRS did not round-trip byte-for-byte (-want +got):\n%s", diff)
	}

	witness := []field.Element{fr.FromUint64(2), fr.FromUint64(3), fr.FromUint64(4), fr.FromUint64(6)}
	instances := []field.Element{fr.FromUint64(11)}
	proof, err := groth16.Prove(crs, instances, witness, nil, nil, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	var proofBuf bytes.Buffer
	if _, err := proof.WriteTo(&proofBuf); err != nil {
		t.Fatal(err)
	}
	originalProof := append([]byte(nil), proofBuf.Bytes()...)

	decodedProof := groth16.Proof{A: &bn254backend.G1Point{}, C: &bn254backend.G1Point{}, B: &bn254backend.G2Point{}}
	if _, err := decodedProof.ReadFrom(&proofBuf); err != nil {
		t.Fatal(err)
	}

	var reencodedProof bytes.Buffer
	if _, err := decodedProof.WriteTo(&reencodedProof); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(originalProof, reencodedProof.Bytes()); diff != "" {
		t.Errorf("Proof did not round-trip byte-for-byte (-want +got):\n%s", diff)
	}
}

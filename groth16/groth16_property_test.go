package groth16_test

import (
	"crypto/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/groth16"
)

// TestProveVerifyCompleteness checks Groth16 completeness (spec §4.6: a
// proof for a genuinely satisfying witness always verifies) across random
// private factors x1,x2,x3, rather than only the literal S4 fixture.
func TestProveVerifyCompleteness(t *testing.T) {
	crs, _, _, _ := s4CRS(t)
	fr := crs.Pairing.Fr()

	properties := gopter.NewProperties(nil)
	properties.Property("prove+verify succeeds for every satisfying x1,x2,x3", prop.ForAll(
		func(x1, x2, x3 uint64) bool {
			w1 := (x1 * x2) % 13
			out := (w1 * x3) % 13
			instances := []field.Element{fr.FromUint64(out)}
			witness := []field.Element{fr.FromUint64(x1), fr.FromUint64(x2), fr.FromUint64(x3), fr.FromUint64(w1)}

			proof, err := groth16.Prove(crs, instances, witness, nil, nil, rand.Reader)
			if err != nil {
				return false
			}
			ok, err := groth16.Verify(crs, proof, instances)
			return err == nil && ok
		},
		gen.UInt64Range(1, 12), gen.UInt64Range(1, 12), gen.UInt64Range(1, 12),
	))
	properties.TestingRun(t)
}

// TestVerifySoundnessAgainstWrongInstance generalizes TestVerifyRejectsWrongInstance:
// a proof honestly produced for one instance must not verify against any
// other claimed instance (spec §4.6's soundness requirement).
func TestVerifySoundnessAgainstWrongInstance(t *testing.T) {
	crs, _, _, _ := s4CRS(t)
	fr := crs.Pairing.Fr()

	instances := []field.Element{fr.FromUint64(11)}
	witness := []field.Element{fr.FromUint64(2), fr.FromUint64(3), fr.FromUint64(4), fr.FromUint64(6)}
	proof, err := groth16.Prove(crs, instances, witness, fr.FromUint64(11), fr.FromUint64(4), nil)
	if err != nil {
		t.Fatal(err)
	}

	properties := gopter.NewProperties(nil)
	properties.Property("verify rejects every claimed instance other than the true one", prop.ForAll(
		func(claimed uint64) bool {
			if claimed == 11 {
				return true // skip the one genuinely-true instance
			}
			ok, err := groth16.Verify(crs, proof, []field.Element{fr.FromUint64(claimed)})
			return err == nil && !ok
		},
		gen.UInt64Range(0, 12),
	))
	properties.TestingRun(t)
}

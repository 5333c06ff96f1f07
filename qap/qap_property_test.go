package qap_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/field/smallprime"
	"github.com/zkdsl/circuit16/qap"
)

// TestQAPSatisfiesPIsHT checks the central QAP identity (spec §3.3:
// P(s) = A(s)*B(s) - C(s) must equal H(s)*T(s) for every satisfying
// witness) across randomly sampled private factors, rather than only the
// single x1=2,x2=3,x3=4 fixture in TestQAPRoundTrip.
func TestQAPSatisfiesPIsHT(t *testing.T) {
	f := smallprime.NewUint64(13)
	sys := threeFactorR1CS(f)
	q, err := qap.FromR1CS(f, sys, nil)
	if err != nil {
		t.Fatal(err)
	}

	properties := gopter.NewProperties(nil)
	properties.Property("P(s) == H(s)*T(s) for every satisfying three-factor witness", prop.ForAll(
		func(x, y, z uint64) bool {
			w1 := (x * y) % 13
			w2 := (w1 * z) % 13
			witness := []field.Element{
				f.One(),
				f.FromUint64(x), f.FromUint64(y), f.FromUint64(z),
				f.FromUint64(w1), f.FromUint64(w2),
			}
			ok, err := q.IsValidAssignment(witness)
			if err != nil || !ok {
				return false
			}
			h, err := q.H(witness)
			if err != nil {
				return false
			}
			p, err := q.P(witness)
			if err != nil {
				return false
			}
			return p.Sub(h.Mul(q.T)).IsZero()
		},
		gen.UInt64Range(1, 12), gen.UInt64Range(1, 12), gen.UInt64Range(1, 12),
	))
	properties.TestingRun(t)
}

// TestQAPRejectsTamperedOutput checks that perturbing the final witness slot
// away from x*y*z always makes IsValidAssignment report false, i.e. a
// non-satisfying assignment is never mistaken for one.
func TestQAPRejectsTamperedOutput(t *testing.T) {
	f := smallprime.NewUint64(13)
	sys := threeFactorR1CS(f)
	q, err := qap.FromR1CS(f, sys, nil)
	if err != nil {
		t.Fatal(err)
	}

	properties := gopter.NewProperties(nil)
	properties.Property("tampering the output slot falsifies the witness", prop.ForAll(
		func(x, y, z, delta uint64) bool {
			w1 := (x * y) % 13
			w2 := (w1*z + delta) % 13 // delta in [1,12], so w2 is always wrong
			witness := []field.Element{
				f.One(),
				f.FromUint64(x), f.FromUint64(y), f.FromUint64(z),
				f.FromUint64(w1), f.FromUint64(w2),
			}
			ok, err := q.IsValidAssignment(witness)
			return err == nil && !ok
		},
		gen.UInt64Range(1, 12), gen.UInt64Range(1, 12), gen.UInt64Range(1, 12), gen.UInt64Range(1, 12),
	))
	properties.TestingRun(t)
}

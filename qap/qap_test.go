package qap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/field/smallprime"
	"github.com/zkdsl/circuit16/qap"
	"github.com/zkdsl/circuit16/r1cs"
)

// threeFactorR1CS is the spec's worked w = x*y*z example lowered to R1CS by
// hand: witness s = [1, x, y, z, w1=x*y, w2=w1*z].
func threeFactorR1CS(f field.Field) r1cs.System {
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
	return r1cs.System{Constraints: []r1cs.Constraint{
		{A: vec(map[int]field.Element{1: one}), B: vec(map[int]field.Element{2: one}), C: vec(map[int]field.Element{4: one})},
		{A: vec(map[int]field.Element{4: one}), B: vec(map[int]field.Element{3: one}), C: vec(map[int]field.Element{5: one})},
	}}
}

func TestQAPRoundTrip(t *testing.T) {
	f := smallprime.NewUint64(13)
	sys := threeFactorR1CS(f)

	q, err := qap.FromR1CS(f, sys, nil)
	require.NoError(t, err)

	witness := []field.Element{
		f.One(),
		f.FromUint64(2), f.FromUint64(3), f.FromUint64(4),
		f.FromUint64(6),       // x*y
		f.FromUint64(24 % 13), // w1*z
	}
	ok, err := q.IsValidAssignment(witness)
	require.NoError(t, err)
	require.True(t, ok)

	h, err := q.H(witness)
	require.NoError(t, err)
	p, err := q.P(witness)
	require.NoError(t, err)
	require.True(t, p.Sub(h.Mul(q.T)).IsZero())
}

func TestQAPRejectsInvalidWitness(t *testing.T) {
	f := smallprime.NewUint64(13)
	sys := threeFactorR1CS(f)
	q, err := qap.FromR1CS(f, sys, nil)
	require.NoError(t, err)

	bad := []field.Element{
		f.One(),
		f.FromUint64(2), f.FromUint64(3), f.FromUint64(4),
		f.FromUint64(7), // wrong: should be 6
		f.FromUint64(24 % 13),
	}
	ok, err := q.IsValidAssignment(bad)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestQAPExplicitDomainTooSmall(t *testing.T) {
	f := smallprime.NewUint64(13)
	sys := threeFactorR1CS(f)
	_, err := qap.FromR1CS(f, sys, []field.Element{f.FromUint64(5)})
	require.Error(t, err)
}

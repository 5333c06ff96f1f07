package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkdsl/circuit16/circuit"
	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/field/smallprime"
)

// TestThreeFactorCircuit builds the spec's worked three-factor example
// (w = x*y*z over Fr = Z/13Z) and checks both execution and the emitted
// R1CS system accept the witness.
func TestThreeFactorCircuit(t *testing.T) {
	f := smallprime.NewUint64(13)
	c := circuit.New(f)

	x := c.AddInput("x")
	y := c.AddInput("y")
	z := c.AddInput("z")

	xy, err := c.AddGate(circuit.KindMul, x, y)
	require.NoError(t, err)
	xyz, err := c.AddGate(circuit.KindMul, xy, z)
	require.NoError(t, err)

	_, err = c.AddOutput("w", xyz)
	require.NoError(t, err)

	witness, err := c.Execute(map[string]field.Element{
		"x": f.FromUint64(2),
		"y": f.FromUint64(3),
		"z": f.FromUint64(4),
	})
	require.NoError(t, err)
	require.True(t, f.FromUint64(2*3*4%13).Equal(witness[c.Label(xyz).Index]))

	sys, err := c.BuildR1CS()
	require.NoError(t, err)
	require.Equal(t, 2, sys.NumConstraints())

	ok, err := sys.IsValidAssignment(f, witness)
	require.NoError(t, err)
	require.True(t, ok)
}

// TestMissingInput checks Execute rejects an unassigned input signal.
func TestMissingInput(t *testing.T) {
	f := smallprime.NewUint64(13)
	c := circuit.New(f)
	x := c.AddInput("x")
	y := c.AddInput("y")
	_, err := c.AddGate(circuit.KindMul, x, y)
	require.NoError(t, err)

	_, err = c.Execute(map[string]field.Element{"x": f.FromUint64(1)})
	require.Error(t, err)
}

// TestConstantOnBothSides checks a gate with two constant operands is
// rejected at construction time.
func TestConstantOnBothSides(t *testing.T) {
	f := smallprime.NewUint64(13)
	c := circuit.New(f)
	a := c.AddConstant("a", f.FromUint64(2))
	b := c.AddConstant("b", f.FromUint64(3))
	_, err := c.AddGate(circuit.KindMul, a, b)
	require.Error(t, err)
}

// TestAddGateConstraint checks an AddGate lowers to the
// (x+y)*1 = z constraint shape described in spec §4.1.
func TestAddGateConstraint(t *testing.T) {
	f := smallprime.NewUint64(13)
	c := circuit.New(f)
	x := c.AddInput("x")
	y := c.AddInput("y")
	sum, err := c.AddGate(circuit.KindAdd, x, y)
	require.NoError(t, err)
	_, err = c.AddOutput("sum", sum)
	require.NoError(t, err)

	witness, err := c.Execute(map[string]field.Element{
		"x": f.FromUint64(5),
		"y": f.FromUint64(9),
	})
	require.NoError(t, err)
	require.True(t, f.FromUint64((5+9)%13).Equal(witness[c.Label(sum).Index]))

	sys, err := c.BuildR1CS()
	require.NoError(t, err)
	ok, err := sys.IsValidAssignment(f, witness)
	require.NoError(t, err)
	require.True(t, ok)
}

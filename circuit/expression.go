package circuit

import "github.com/zkdsl/circuit16/field"

// R1CSExpression is a length-(L+1) linear combination over the witness
// vector (spec §3): index 0 is the constant term, index i (i>=1) is the
// coefficient of the signal at ELS position i. Grounded on
// R1CSExpression.__add__/__mul__ in algebraic_circuit.py: addition is
// pointwise; multiplication is scalar-only, since R1CS constraints are
// themselves the only bilinear operation allowed.
type R1CSExpression struct {
	F     field.Field
	Coeff []field.Element
}

// zeroExpression returns the all-zero expression of width length (= ELS
// size + 1 at the time it's built).
func zeroExpression(f field.Field, length int) R1CSExpression {
	c := make([]field.Element, length)
	for i := range c {
		c[i] = f.Zero()
	}
	return R1CSExpression{F: f, Coeff: c}
}

// oneExpression returns the expression representing the constant 1 (the
// B vector of every AddGate's emitted constraint).
func oneExpression(f field.Field, length int) R1CSExpression {
	e := zeroExpression(f, length)
	e.Coeff[0] = f.One()
	return e
}

// labelExpression returns the unit expression for a single tracked signal.
func labelExpression(f field.Field, length int, lbl Label) R1CSExpression {
	e := zeroExpression(f, length)
	e.Coeff[lbl.Index] = f.One()
	return e
}

// constantValueExpression returns the expression for a bare constant value
// (no tracked signal: only the constant slot is populated).
func constantValueExpression(f field.Field, length int, v field.Element) R1CSExpression {
	e := zeroExpression(f, length)
	e.Coeff[0] = v
	return e
}

// grow extends e to width n, leaving new coefficients at zero. Used when an
// expression computed before a later AddGate/MulGate call needs to be
// combined with one built after the ELS grew.
func (e R1CSExpression) grow(n int) R1CSExpression {
	if len(e.Coeff) >= n {
		return e
	}
	out := zeroExpression(e.F, n)
	copy(out.Coeff, e.Coeff)
	return out
}

// Add returns the pointwise sum of two expressions of the same width.
func (e R1CSExpression) Add(other R1CSExpression) R1CSExpression {
	n := len(e.Coeff)
	if len(other.Coeff) > n {
		n = len(other.Coeff)
	}
	a, b := e.grow(n), other.grow(n)
	out := zeroExpression(e.F, n)
	for i := range out.Coeff {
		out.Coeff[i] = a.Coeff[i].Add(b.Coeff[i])
	}
	return out
}

// Scale returns e scaled by the field constant c.
func (e R1CSExpression) Scale(c field.Element) R1CSExpression {
	out := zeroExpression(e.F, len(e.Coeff))
	for i, v := range e.Coeff {
		out.Coeff[i] = v.Mul(c)
	}
	return out
}

// Eval evaluates the expression against a witness vector (s[0] must be 1).
func (e R1CSExpression) Eval(s []field.Element) field.Element {
	acc := e.F.Zero()
	for i, c := range e.Coeff {
		if i >= len(s) || c.IsZero() {
			continue
		}
		acc = acc.Add(c.Mul(s[i]))
	}
	return acc
}

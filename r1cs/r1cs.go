// Package r1cs implements the Rank-1 Constraint System intermediate
// representation the circuit compiler lowers to, grounded on
// original_source/lib/zkp/r1cs.py.
package r1cs

import (
	"fmt"

	"github.com/zkdsl/circuit16/field"
)

// Constraint is a single R1CS constraint <A,s> * <B,s> = <C,s>, where A, B, C
// are length-(L+1) coefficient vectors and s is the witness vector with
// s[0] pinned to 1 (spec §3: "R1CS constraint").
type Constraint struct {
	A, B, C []field.Element
}

// shapeMismatchError is returned when a witness vector's length does not
// match a constraint's coefficient vector length.
type shapeMismatchError struct {
	got, want int
}

func (e shapeMismatchError) Error() string {
	return fmt.Sprintf("r1cs: witness has %d entries, constraint expects %d", e.got, e.want)
}

// IsValidAssignment reports whether c is satisfied by witness s, i.e.
// <A,s> * <B,s> == <C,s>.
func (c Constraint) IsValidAssignment(f field.Field, s []field.Element) (bool, error) {
	if len(s) != len(c.A) || len(s) != len(c.B) || len(s) != len(c.C) {
		return false, shapeMismatchError{got: len(s), want: len(c.A)}
	}
	a := dot(f, c.A, s)
	b := dot(f, c.B, s)
	lhs := a.Mul(b)
	rhs := dot(f, c.C, s)
	return lhs.Equal(rhs), nil
}

func dot(f field.Field, coeff, s []field.Element) field.Element {
	acc := f.Zero()
	for i, c := range coeff {
		if c.IsZero() {
			continue
		}
		acc = acc.Add(c.Mul(s[i]))
	}
	return acc
}

// System is an ordered collection of constraints (spec §3: "R1CS system").
type System struct {
	Constraints []Constraint
}

// IsValidAssignment reports whether every constraint in the system is
// satisfied by witness s.
func (sys System) IsValidAssignment(f field.Field, s []field.Element) (bool, error) {
	for _, c := range sys.Constraints {
		ok, err := c.IsValidAssignment(f, s)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// NumConstraints returns the number of constraints in the system.
func (sys System) NumConstraints() int { return len(sys.Constraints) }

// Width returns the witness vector length every constraint expects (0 if
// the system has no constraints).
func (sys System) Width() int {
	if len(sys.Constraints) == 0 {
		return 0
	}
	return len(sys.Constraints[0].A)
}

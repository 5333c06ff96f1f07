// Package qap implements the Quadratic Arithmetic Program compiler (spec
// §4.3): it lowers an R1CS system to a polynomial system by interpolating
// each witness column over an evaluation domain, grounded on
// original_source/lib/qap.py.
package qap

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/zkdsl/circuit16/field"
	"github.com/zkdsl/circuit16/internal/logging"
	"github.com/zkdsl/circuit16/r1cs"
)

// ErrDomainTooSmall is the sentinel errors.Is checks against when the
// evaluation domain has fewer points than the R1CS system has constraints
// (spec §7: DomainTooSmall).
var ErrDomainTooSmall = errors.New("qap: domain too small")

// System is a QAP: a vanishing polynomial T over an evaluation domain, and
// one interpolated polynomial per witness position for each of the A, B, C
// column families (spec §3: "QAP system").
type System struct {
	F      field.Field
	Domain []field.Element
	T      field.Polynomial
	Ax     []field.Polynomial
	Bx     []field.Polynomial
	Cx     []field.Polynomial
}

// domainTooSmallError is returned when the supplied (or default) evaluation
// domain has fewer points than the R1CS system has constraints (spec §7:
// DomainTooSmall).
type domainTooSmallError struct {
	have, need int
}

func (e domainTooSmallError) Error() string {
	return fmt.Sprintf("qap: domain has %d points, need at least %d", e.have, e.need)
}

func (domainTooSmallError) Is(target error) bool { return target == ErrDomainTooSmall }

// shapeMismatchError is returned when a witness vector's length does not
// match the QAP's witness width.
type shapeMismatchError struct {
	got, want int
}

func (e shapeMismatchError) Error() string {
	return fmt.Sprintf("qap: witness has %d entries, qap expects %d", e.got, e.want)
}

// FromR1CS builds the QAP for sys. If domain is nil, the default domain
// (spec §4.3: "the first k iterates of a multiplicative generator of Fr*")
// is used; otherwise the supplied points are used (and must be pairwise
// distinct and at least as numerous as sys has constraints).
func FromR1CS(f field.Field, sys r1cs.System, domain []field.Element) (System, error) {
	start := time.Now()
	k := sys.NumConstraints()
	if domain == nil {
		var err error
		domain, err = defaultDomain(f, k)
		if err != nil {
			return System{}, err
		}
	} else if len(domain) < k {
		return System{}, domainTooSmallError{have: len(domain), need: k}
	} else {
		domain = domain[:k]
	}

	width := sys.Width()
	Ax := make([]field.Polynomial, width)
	Bx := make([]field.Polynomial, width)
	Cx := make([]field.Polynomial, width)

	for j := 0; j < width; j++ {
		avals := make([]field.Element, k)
		bvals := make([]field.Element, k)
		cvals := make([]field.Element, k)
		for i, constr := range sys.Constraints {
			avals[i] = constr.A[j]
			bvals[i] = constr.B[j]
			cvals[i] = constr.C[j]
		}
		Ax[j] = field.Interpolate(f, domain, avals)
		Bx[j] = field.Interpolate(f, domain, bvals)
		Cx[j] = field.Interpolate(f, domain, cvals)
	}

	logging.Logger.Debug().
		Int("constraints", k).
		Int("width", width).
		Dur("took", time.Since(start)).
		Msg("qap built from r1cs")

	return System{
		F:      f,
		Domain: domain,
		T:      field.Vanishing(f, domain),
		Ax:     Ax,
		Bx:     Bx,
		Cx:     Cx,
	}, nil
}

// defaultDomain returns the first k powers of Fr's generator, starting at 1.
func defaultDomain(f field.Field, k int) ([]field.Element, error) {
	// |Fr*| = p-1 distinct non-zero points are available.
	available := new(big.Int).Sub(f.Order(), big.NewInt(1))
	if available.Cmp(big.NewInt(int64(k))) < 0 {
		have := 0
		if available.Sign() > 0 {
			have = int(available.Int64())
		}
		return nil, domainTooSmallError{have: have, need: k}
	}
	g := f.Generator()
	pts := make([]field.Element, k)
	cur := f.One()
	for i := 0; i < k; i++ {
		pts[i] = cur
		cur = cur.Mul(g)
	}
	return pts, nil
}

// A evaluates the A(x) = sum_j Ax[j](x)*s[j] polynomial for the full
// witness s (s[0] must be 1), mirroring r1cs.System's convention rather
// than qap.py's (which takes S excluding the leading 1 and prepends it
// internally) — kept consistent with circuit.Circuit.Execute's witness
// vectors, which always carry the constant in slot 0.
func (sys System) A(s []field.Element) (field.Polynomial, error) {
	return sys.combine(sys.Ax, s)
}

// B evaluates the B(x) = sum_j Bx[j](x)*s[j] polynomial for s.
func (sys System) B(s []field.Element) (field.Polynomial, error) {
	return sys.combine(sys.Bx, s)
}

// C evaluates the C(x) = sum_j Cx[j](x)*s[j] polynomial for s.
func (sys System) C(s []field.Element) (field.Polynomial, error) {
	return sys.combine(sys.Cx, s)
}

func (sys System) combine(polys []field.Polynomial, s []field.Element) (field.Polynomial, error) {
	if len(s) != len(polys) {
		return field.Polynomial{}, shapeMismatchError{got: len(s), want: len(polys)}
	}
	acc := field.Zero(sys.F)
	for j, sj := range s {
		if sj.IsZero() {
			continue
		}
		acc = acc.Add(polys[j].Scale(sj))
	}
	return acc, nil
}

// P returns the polynomial A(x)*B(x) - C(x) for witness s (spec §3: "P(S)").
func (sys System) P(s []field.Element) (field.Polynomial, error) {
	a, err := sys.A(s)
	if err != nil {
		return field.Polynomial{}, err
	}
	b, err := sys.B(s)
	if err != nil {
		return field.Polynomial{}, err
	}
	c, err := sys.C(s)
	if err != nil {
		return field.Polynomial{}, err
	}
	return a.Mul(b).Sub(c), nil
}

// H returns P(s) / T, the cofactor polynomial the Groth16 prover commits
// to (spec §3: "H(S)"). It does not itself check that the division is
// exact; IsValidAssignment does.
func (sys System) H(s []field.Element) (field.Polynomial, error) {
	p, err := sys.P(s)
	if err != nil {
		return field.Polynomial{}, err
	}
	h, _, err := p.QuoRem(sys.T)
	return h, err
}

// IsValidAssignment reports whether T(x) divides P(s)(x) exactly, i.e.
// whether s is a valid assignment for the underlying R1CS system (spec §3:
// "is_valid_assignment").
func (sys System) IsValidAssignment(s []field.Element) (bool, error) {
	p, err := sys.P(s)
	if err != nil {
		return false, err
	}
	_, rem, err := p.QuoRem(sys.T)
	if err != nil {
		return false, err
	}
	return rem.IsZero(), nil
}

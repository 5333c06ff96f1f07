package field

// Polynomial is an element of Fr[x], stored as coefficients low-degree
// first (spec §3: "Polynomial"). The canonical form has a non-zero leading
// coefficient; the zero polynomial has an empty coefficient slice.
type Polynomial struct {
	F     Field
	Coeff []Element
}

// NewPolynomial builds a Polynomial in canonical form, trimming trailing
// zero coefficients.
func NewPolynomial(f Field, coeff []Element) Polynomial {
	p := Polynomial{F: f, Coeff: append([]Element(nil), coeff...)}
	return p.normalize()
}

func (p Polynomial) normalize() Polynomial {
	c := p.Coeff
	for len(c) > 0 && c[len(c)-1].IsZero() {
		c = c[:len(c)-1]
	}
	p.Coeff = c
	return p
}

// Zero returns the zero polynomial over f.
func Zero(f Field) Polynomial {
	return Polynomial{F: f, Coeff: nil}
}

// Degree returns the polynomial's degree; the zero polynomial has degree -1.
func (p Polynomial) Degree() int {
	return len(p.Coeff) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool {
	return len(p.Coeff) == 0
}

func (p Polynomial) coeffAt(i int) Element {
	if i < 0 || i >= len(p.Coeff) {
		return p.F.Zero()
	}
	return p.Coeff[i]
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	n := len(p.Coeff)
	if len(q.Coeff) > n {
		n = len(q.Coeff)
	}
	out := make([]Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeffAt(i).Add(q.coeffAt(i))
	}
	return NewPolynomial(p.F, out)
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	n := len(p.Coeff)
	if len(q.Coeff) > n {
		n = len(q.Coeff)
	}
	out := make([]Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.coeffAt(i).Sub(q.coeffAt(i))
	}
	return NewPolynomial(p.F, out)
}

// Scale returns p scaled by the field element c.
func (p Polynomial) Scale(c Element) Polynomial {
	if c.IsZero() || p.IsZero() {
		return Zero(p.F)
	}
	out := make([]Element, len(p.Coeff))
	for i, a := range p.Coeff {
		out[i] = a.Mul(c)
	}
	return NewPolynomial(p.F, out)
}

// Mul returns p * q.
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if p.IsZero() || q.IsZero() {
		return Zero(p.F)
	}
	out := make([]Element, len(p.Coeff)+len(q.Coeff)-1)
	for i := range out {
		out[i] = p.F.Zero()
	}
	for i, a := range p.Coeff {
		if a.IsZero() {
			continue
		}
		for j, b := range q.Coeff {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return NewPolynomial(p.F, out)
}

// Eval evaluates p at x via Horner's method.
func (p Polynomial) Eval(x Element) Element {
	acc := p.F.Zero()
	for i := len(p.Coeff) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(p.Coeff[i])
	}
	return acc
}

// QuoRem divides p by q, returning quotient and remainder such that
// p = quo*q + rem and deg(rem) < deg(q). q must be non-zero.
func (p Polynomial) QuoRem(q Polynomial) (quo, rem Polynomial, err error) {
	if q.IsZero() {
		return Polynomial{}, Polynomial{}, ErrNotInvertible
	}

	lead, err := q.Coeff[len(q.Coeff)-1].Inverse()
	if err != nil {
		return Polynomial{}, Polynomial{}, err
	}

	rem = NewPolynomial(p.F, p.Coeff)
	quoCoeff := make([]Element, 0)
	if rem.Degree() >= q.Degree() {
		quoCoeff = make([]Element, rem.Degree()-q.Degree()+1)
		for i := range quoCoeff {
			quoCoeff[i] = p.F.Zero()
		}
	}

	for rem.Degree() >= q.Degree() {
		shift := rem.Degree() - q.Degree()
		coeff := rem.Coeff[rem.Degree()].Mul(lead)
		quoCoeff[shift] = coeff

		sub := make([]Element, shift+len(q.Coeff))
		for i := range sub {
			sub[i] = p.F.Zero()
		}
		for i, c := range q.Coeff {
			sub[shift+i] = c.Mul(coeff)
		}
		rem = rem.Sub(NewPolynomial(p.F, sub))
	}

	return NewPolynomial(p.F, quoCoeff), rem, nil
}

// Vanishing returns T(x) = prod_{m in points} (x - m), the vanishing
// polynomial of the given evaluation domain (spec §4.3).
func Vanishing(f Field, points []Element) Polynomial {
	t := NewPolynomial(f, []Element{f.One()})
	for _, m := range points {
		factor := NewPolynomial(f, []Element{m.Neg(), f.One()}) // (x - m)
		t = t.Mul(factor)
	}
	return t
}

// Interpolate returns the unique polynomial of degree < len(points) passing
// through (points[i], values[i]) for all i, via Lagrange interpolation
// (spec §4.3). points must be pairwise distinct.
func Interpolate(f Field, points, values []Element) Polynomial {
	result := Zero(f)
	for i, xi := range points {
		// basis_i(x) = prod_{j != i} (x - x_j) / (x_i - x_j)
		basis := NewPolynomial(f, []Element{f.One()})
		denom := f.One()
		for j, xj := range points {
			if j == i {
				continue
			}
			basis = basis.Mul(NewPolynomial(f, []Element{xj.Neg(), f.One()}))
			denom = denom.Mul(xi.Sub(xj))
		}
		denomInv, err := denom.Inverse()
		if err != nil {
			// points not pairwise distinct: caller error; this basis term
			// is skipped rather than panicking, so the result is not the
			// interpolant.
			continue
		}
		result = result.Add(basis.Scale(values[i].Mul(denomInv)))
	}
	return result
}

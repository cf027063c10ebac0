package core

import "fmt"

// ExtElement is an element of the cubic extension field F_p[X]/(X^3-X-1)
// used for Fiat-Shamir challenges and out-of-domain evaluations. A0, A1, A2
// are the coefficients of 1, X, X^2 respectively.
type ExtElement struct {
	A0, A1, A2 GLElement
}

// ExtZero and ExtOne are the extension field's identities.
var (
	ExtZero = ExtElement{}
	ExtOne  = ExtElement{A0: GLOne}
)

// NewExt builds an extension element from base-field components.
func NewExt(a0, a1, a2 GLElement) ExtElement {
	return ExtElement{A0: a0, A1: a1, A2: a2}
}

// FromBase lifts a base-field element into the extension.
func FromBase(a GLElement) ExtElement {
	return ExtElement{A0: a}
}

// IsZero reports whether e is the extension field's additive identity.
func (e ExtElement) IsZero() bool {
	return e.A0.IsZero() && e.A1.IsZero() && e.A2.IsZero()
}

// Equal reports component-wise equality.
func (e ExtElement) Equal(o ExtElement) bool {
	return e.A0 == o.A0 && e.A1 == o.A1 && e.A2 == o.A2
}

// Add is component-wise addition.
func (e ExtElement) Add(o ExtElement) ExtElement {
	return ExtElement{e.A0.Add(o.A0), e.A1.Add(o.A1), e.A2.Add(o.A2)}
}

// Sub is component-wise subtraction.
func (e ExtElement) Sub(o ExtElement) ExtElement {
	return ExtElement{e.A0.Sub(o.A0), e.A1.Sub(o.A1), e.A2.Sub(o.A2)}
}

// Neg negates every component.
func (e ExtElement) Neg() ExtElement {
	return ExtElement{e.A0.Neg(), e.A1.Neg(), e.A2.Neg()}
}

// MulBase multiplies an extension element by a base-field scalar.
func (e ExtElement) MulBase(s GLElement) ExtElement {
	return ExtElement{e.A0.Mul(s), e.A1.Mul(s), e.A2.Mul(s)}
}

// Mul multiplies two extension elements modulo X^3 - X - 1, i.e. X^3 = X+1.
//
// (a0 + a1 X + a2 X^2)(b0 + b1 X + b2 X^2) =
//
//	c0 + c1 X + c2 X^2 + c3 X^3 + c4 X^4
//
// with X^3 = X + 1 and X^4 = X^2 + X, folded below.
func (e ExtElement) Mul(o ExtElement) ExtElement {
	a0, a1, a2 := e.A0, e.A1, e.A2
	b0, b1, b2 := o.A0, o.A1, o.A2

	c0 := a0.Mul(b0)
	c1 := a0.Mul(b1).Add(a1.Mul(b0))
	c2 := a0.Mul(b2).Add(a1.Mul(b1)).Add(a2.Mul(b0))
	c3 := a1.Mul(b2).Add(a2.Mul(b1))
	c4 := a2.Mul(b2)

	// X^3 = X + 1  =>  c3*X^3 = c3*X + c3
	// X^4 = X^2+X  =>  c4*X^4 = c4*X^2 + c4*X
	r0 := c0.Add(c3)
	r1 := c1.Add(c3).Add(c4)
	r2 := c2.Add(c4)
	return ExtElement{r0, r1, r2}
}

// Square is Mul(e, e).
func (e ExtElement) Square() ExtElement {
	return e.Mul(e)
}

// Inv computes the multiplicative inverse via the extension-degree-3 norm
// trick: e * conj(e) collapses to a base-field element whose inverse scales
// back up. Implemented directly by solving the linear system instead, since
// F_p^3 has no simple quadratic-subfield conjugate; we use the adjugate of
// the multiplication-by-e matrix.
func (e ExtElement) Inv() (ExtElement, error) {
	if e.IsZero() {
		return ExtElement{}, fmt.Errorf("core: inverse of zero extension element")
	}
	// Represent multiplication-by-e as a 3x3 matrix M over the base field
	// (columns are e*1, e*X, e*X^2) and solve M·x = [1,0,0]^T via Cramer's
	// rule.
	a0, a1, a2 := e.A0, e.A1, e.A2

	eX := e.Mul(ExtElement{A1: GLOne})
	eX2 := e.Mul(ExtElement{A2: GLOne})

	m := [3][3]GLElement{
		{a0, eX.A0, eX2.A0},
		{a1, eX.A1, eX2.A1},
		{a2, eX.A2, eX2.A2},
	}

	det := det3(m)
	if det.IsZero() {
		return ExtElement{}, fmt.Errorf("core: singular extension element")
	}
	detInv, err := det.Inv()
	if err != nil {
		return ExtElement{}, err
	}

	// Solve M x = e1 via Cramer's rule: x_i = det(M with column i replaced
	// by e1) / det(M).
	var x [3]GLElement
	for col := 0; col < 3; col++ {
		mc := m
		mc[0][col] = GLOne
		mc[1][col] = GLZero
		mc[2][col] = GLZero
		x[col] = det3(mc).Mul(detInv)
	}
	return ExtElement{x[0], x[1], x[2]}, nil
}

func det3(m [3][3]GLElement) GLElement {
	pos := m[0][0].Mul(m[1][1]).Mul(m[2][2]).
		Add(m[0][1].Mul(m[1][2]).Mul(m[2][0])).
		Add(m[0][2].Mul(m[1][0]).Mul(m[2][1]))
	neg := m[0][2].Mul(m[1][1]).Mul(m[2][0]).
		Add(m[0][0].Mul(m[1][2]).Mul(m[2][1])).
		Add(m[0][1].Mul(m[1][0]).Mul(m[2][2]))
	return pos.Sub(neg)
}

// Exp computes e^n by square-and-multiply.
func (e ExtElement) Exp(n uint64) ExtElement {
	result := ExtOne
	base := e
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Square()
		n >>= 1
	}
	return result
}

func (e ExtElement) String() string {
	return fmt.Sprintf("(%s, %s, %s)", e.A0, e.A1, e.A2)
}

package protocols

import (
	"github.com/vybium/vybium-starks-vm/internal/core"
)

// ExtLDE runs the base-field coset low-degree extension independently on
// each of an extension column's three limbs, the dim-3 counterpart of
// core.LDE used wherever a committed or intermediate column has dim 3.
func ExtLDE(vals []core.ExtElement, blowup int) ([]core.ExtElement, error) {
	a0 := make([]core.GLElement, len(vals))
	a1 := make([]core.GLElement, len(vals))
	a2 := make([]core.GLElement, len(vals))
	for i, v := range vals {
		a0[i], a1[i], a2[i] = v.A0, v.A1, v.A2
	}
	e0, err := core.LDE(a0, blowup)
	if err != nil {
		return nil, err
	}
	e1, err := core.LDE(a1, blowup)
	if err != nil {
		return nil, err
	}
	e2, err := core.LDE(a2, blowup)
	if err != nil {
		return nil, err
	}
	out := make([]core.ExtElement, len(e0))
	for i := range out {
		out[i] = core.NewExt(e0[i], e1[i], e2[i])
	}
	return out, nil
}

// CoeffsFromCosetEvals recovers a polynomial's coefficients from its
// evaluations over the fixed `core.Shift` coset: iNTT to the coefficients
// of the shifted polynomial, then scale coefficient k by shift^-k to undo
// the coset (spec §4.6.5, also the shape FRI folding needs per group).
func CoeffsFromCosetEvals(evals []core.ExtElement) ([]core.ExtElement, error) {
	coeffs := append([]core.ExtElement(nil), evals...)
	if err := core.ExtINTT(coeffs); err != nil {
		return nil, err
	}
	shiftInv, err := core.Shift.Inv()
	if err != nil {
		return nil, err
	}
	scale := core.GLOne
	for k := range coeffs {
		coeffs[k] = coeffs[k].MulBase(scale)
		scale = scale.Mul(shiftInv)
	}
	return coeffs, nil
}

// EvaluatePoly evaluates a coefficient-form polynomial at point via
// Horner's method.
func EvaluatePoly(coeffs []core.ExtElement, point core.ExtElement) core.ExtElement {
	result := core.ExtZero
	for k := len(coeffs) - 1; k >= 0; k-- {
		result = result.Mul(point).Add(coeffs[k])
	}
	return result
}

// BuildXDivXSub constructs, for each opening offset o, the function
// row -> x_row/(x_row - xi_o) spec §4.6.4 names: x_row is the extended
// domain's coset point at row, xi_o is the opening challenge xi shifted
// by the base domain's o-th root of unity power.
func BuildXDivXSub(nExtBits, nBits int, openingPoints []int, xi core.ExtElement) []func(row int) core.ExtElement {
	rootExt := core.RootOfUnity(nExtBits)
	baseRoot := core.RootOfUnity(nBits)

	out := make([]func(row int) core.ExtElement, len(openingPoints))
	for oi, o := range openingPoints {
		shift := uint64(((o % (1 << nBits)) + (1 << nBits)) % (1 << nBits))
		xiO := xi.Mul(core.FromBase(baseRoot.Exp(shift)))
		out[oi] = func(row int) core.ExtElement {
			x := core.FromBase(core.Shift.Mul(rootExt.Exp(uint64(row))))
			diff := x.Sub(xiO)
			inv, err := diff.Inv()
			if err != nil {
				// x coincides with the opening point itself; this query
				// row can never be selected for an honest opening
				// challenge, so the zero fallback is unreachable in
				// practice rather than a silent wrong answer.
				return core.ExtZero
			}
			return x.Mul(inv)
		}
	}
	return out
}

package core

import "fmt"

// LDE extends evaluations on the size-n subgroup to evaluations on a
// size-(n*blowup) coset of the bigger subgroup: interpolate via iNTT,
// multiply each coefficient by shift^i, zero-pad, and evaluate via NTT.
// blowup must be a power of two.
func LDE(values []GLElement, blowup int) ([]GLElement, error) {
	n := len(values)
	if n == 0 {
		return nil, fmt.Errorf("core: lde of empty input")
	}
	if blowup <= 0 || blowup&(blowup-1) != 0 {
		return nil, fmt.Errorf("core: lde blowup %d is not a positive power of two", blowup)
	}

	coeffs := make([]GLElement, n)
	copy(coeffs, values)
	if err := INTT(coeffs); err != nil {
		return nil, err
	}

	shifted := make([]GLElement, n*blowup)
	cur := GLOne
	for i := 0; i < n; i++ {
		shifted[i] = coeffs[i].Mul(cur)
		cur = cur.Mul(Shift)
	}
	// remaining entries stay zero: padding to the extended domain.

	if err := NTT(shifted); err != nil {
		return nil, err
	}
	return shifted, nil
}

// CosetEvaluate evaluates the polynomial given by coeffs (length must be a
// power of two) on the coset shift*<omega> of size len(coeffs)*blowup, the
// same operation as LDE but taking coefficients directly rather than
// subgroup evaluations.
func CosetEvaluate(coeffs []GLElement, blowup int) ([]GLElement, error) {
	n := len(coeffs)
	if n == 0 {
		return nil, fmt.Errorf("core: coset_evaluate of empty input")
	}
	if blowup <= 0 || blowup&(blowup-1) != 0 {
		return nil, fmt.Errorf("core: coset_evaluate blowup %d is not a positive power of two", blowup)
	}
	shifted := make([]GLElement, n*blowup)
	cur := GLOne
	for i := 0; i < n; i++ {
		shifted[i] = coeffs[i].Mul(cur)
		cur = cur.Mul(Shift)
	}
	if err := NTT(shifted); err != nil {
		return nil, err
	}
	return shifted, nil
}

package core

import "testing"

// LDE round-trip (spec §8 scenario 1): a constant polynomial p(x)=7 at 8
// points extends to 7 at every one of the 16 extended points.
func TestLDEConstantPolynomial(t *testing.T) {
	values := make([]GLElement, 8)
	for i := range values {
		values[i] = NewGL(7)
	}
	extended, err := LDE(values, 2)
	if err != nil {
		t.Fatalf("LDE: %v", err)
	}
	if len(extended) != 16 {
		t.Fatalf("LDE output length = %d, want 16", len(extended))
	}
	for i, v := range extended {
		if v != NewGL(7) {
			t.Errorf("extended[%d] = %v, want 7", i, v)
		}
	}
}

// Recovering the original coefficients: iNTT on the coset, descaled by
// shift^-j, must reproduce p's coefficients exactly.
func TestLDERoundTripRecoversCoefficients(t *testing.T) {
	coeffs := []GLElement{NewGL(1), NewGL(2), NewGL(3), NewGL(4)}
	padded := make([]GLElement, len(coeffs))
	copy(padded, coeffs)
	if err := NTT(padded); err != nil {
		t.Fatalf("NTT: %v", err)
	}

	extended, err := LDE(padded, 2)
	if err != nil {
		t.Fatalf("LDE: %v", err)
	}

	cosetCoeffs := append([]GLElement(nil), extended...)
	if err := INTT(cosetCoeffs); err != nil {
		t.Fatalf("INTT: %v", err)
	}
	shiftInv, err := Shift.Inv()
	if err != nil {
		t.Fatalf("Shift.Inv: %v", err)
	}
	scale := GLOne
	for i := range coeffs {
		descaled := cosetCoeffs[i].Mul(scale)
		if descaled != coeffs[i] {
			t.Errorf("coeff[%d] = %v, want %v", i, descaled, coeffs[i])
		}
		scale = scale.Mul(shiftInv)
	}
	for i := len(coeffs); i < len(cosetCoeffs); i++ {
		if cosetCoeffs[i] != GLZero {
			t.Errorf("padded coeff[%d] = %v, want 0", i, cosetCoeffs[i])
		}
	}
}

func TestLDERejectsNonPowerOfTwoBlowup(t *testing.T) {
	if _, err := LDE([]GLElement{NewGL(1), NewGL(2)}, 3); err == nil {
		t.Error("LDE with blowup=3: want error, got nil")
	}
}

func TestCosetEvaluateLinear(t *testing.T) {
	// p(x) = 2 + 3x evaluated on the coset must equal 2 + 3*(Shift*w^i)
	// at every point i.
	coeffs := []GLElement{NewGL(2), NewGL(3), GLZero, GLZero}
	evals, err := CosetEvaluate(coeffs, 1)
	if err != nil {
		t.Fatalf("CosetEvaluate: %v", err)
	}
	if len(evals) != len(coeffs) {
		t.Fatalf("CosetEvaluate output length = %d, want %d", len(evals), len(coeffs))
	}

	root := RootOfUnity(2)
	x := Shift
	for i, got := range evals {
		want := coeffs[0].Add(coeffs[1].Mul(x))
		if got != want {
			t.Errorf("evals[%d] = %v, want %v", i, got, want)
		}
		x = x.Mul(root)
	}
}

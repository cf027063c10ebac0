package core

import "testing"

// Field sanity (spec §8 scenario 1): w(3)^8 = 1, w(3)^4 = p-1, shift^(p-1) = 1.
func TestFieldSanity(t *testing.T) {
	w3 := RootOfUnity(3)
	if got := w3.Exp(8); got != GLOne {
		t.Errorf("w(3)^8 = %v, want 1", got)
	}
	if got := w3.Exp(4); got != NewGL(GLModulus-1) {
		t.Errorf("w(3)^4 = %v, want p-1", got)
	}
	if got := Shift.Exp(GLModulus - 1); got != GLOne {
		t.Errorf("shift^(p-1) = %v, want 1", got)
	}
}

func TestBatchInverseCorrectness(t *testing.T) {
	xs := []GLElement{NewGL(1), NewGL(2), NewGL(3), NewGL(12345), NewGL(GLModulus - 1)}
	invs, err := BatchInverse(xs)
	if err != nil {
		t.Fatalf("BatchInverse: %v", err)
	}
	for i, x := range xs {
		if got := x.Mul(invs[i]); got != GLOne {
			t.Errorf("xs[%d]*inv = %v, want 1", i, got)
		}
	}
}

func TestBatchInverseRejectsZero(t *testing.T) {
	if _, err := BatchInverse([]GLElement{NewGL(1), GLZero}); err == nil {
		t.Error("BatchInverse with a zero element: want error, got nil")
	}
}

func TestBatchInverseNoAliasing(t *testing.T) {
	xs := []GLElement{NewGL(4), NewGL(9)}
	want0, _ := xs[0].Inv()
	want1, _ := xs[1].Inv()
	invs, err := BatchInverse(xs)
	if err != nil {
		t.Fatalf("BatchInverse: %v", err)
	}
	if invs[0] != want0 || invs[1] != want1 {
		t.Errorf("BatchInverse(%v) = %v, want [%v %v]", xs, invs, want0, want1)
	}
	// xs itself must be untouched.
	if xs[0] != NewGL(4) || xs[1] != NewGL(9) {
		t.Errorf("BatchInverse mutated its input: %v", xs)
	}
}

func TestInvRejectsZero(t *testing.T) {
	if _, err := GLZero.Inv(); err == nil {
		t.Error("0.Inv(): want error, got nil")
	}
}

func TestAddSubNegRoundTrip(t *testing.T) {
	a, b := NewGL(123456789), NewGL(987654321)
	if got := a.Add(b).Sub(b); got != a {
		t.Errorf("(a+b)-b = %v, want a = %v", got, a)
	}
	if got := a.Add(a.Neg()); got != GLZero {
		t.Errorf("a+(-a) = %v, want 0", got)
	}
}

func TestSquareMatchesMul(t *testing.T) {
	a := NewGL(7919)
	if got, want := a.Square(), a.Mul(a); got != want {
		t.Errorf("a.Square() = %v, want a.Mul(a) = %v", got, want)
	}
}

package core

import "testing"

// Batch-inverse correctness, extension half of spec §8 scenario 4: for a
// non-zero extension element e, e.Inv() * e = 1.
func TestExtInvCorrectness(t *testing.T) {
	cases := []ExtElement{
		NewExt(NewGL(1), GLZero, GLZero),
		NewExt(NewGL(3), NewGL(5), NewGL(7)),
		NewExt(GLZero, NewGL(1), GLZero),
		NewExt(NewGL(GLModulus-1), NewGL(2), NewGL(9999)),
	}
	for i, e := range cases {
		inv, err := e.Inv()
		if err != nil {
			t.Fatalf("case %d: Inv: %v", i, err)
		}
		if got := e.Mul(inv); !got.Equal(ExtOne) {
			t.Errorf("case %d: e*inv = %v, want 1", i, got)
		}
	}
}

func TestExtInvRejectsZero(t *testing.T) {
	if _, err := ExtZero.Inv(); err == nil {
		t.Error("ExtZero.Inv(): want error, got nil")
	}
}

func TestExtMulBaseMatchesPromotedMul(t *testing.T) {
	e := NewExt(NewGL(2), NewGL(3), NewGL(5))
	scalar := NewGL(7)
	got := e.MulBase(scalar)
	want := e.Mul(FromBase(scalar))
	if !got.Equal(want) {
		t.Errorf("MulBase(%v) = %v, want %v", scalar, got, want)
	}
}

func TestExtAddSubRoundTrip(t *testing.T) {
	a := NewExt(NewGL(11), NewGL(22), NewGL(33))
	b := NewExt(NewGL(4), NewGL(5), NewGL(6))
	if got := a.Add(b).Sub(b); !got.Equal(a) {
		t.Errorf("(a+b)-b = %v, want %v", got, a)
	}
}

func TestExtSquareMatchesMul(t *testing.T) {
	e := NewExt(NewGL(9), NewGL(2), NewGL(1))
	if got, want := e.Square(), e.Mul(e); !got.Equal(want) {
		t.Errorf("e.Square() = %v, want e.Mul(e) = %v", got, want)
	}
}

func TestExtExpMatchesRepeatedMul(t *testing.T) {
	e := NewExt(NewGL(2), NewGL(1), GLZero)
	want := ExtOne
	for i := 0; i < 5; i++ {
		want = want.Mul(e)
	}
	if got := e.Exp(5); !got.Equal(want) {
		t.Errorf("e.Exp(5) = %v, want %v", got, want)
	}
}

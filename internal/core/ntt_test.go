package core

import "testing"

// NTT bijection (spec §8 scenario 2): intt . ntt = identity.
func TestNTTINTTRoundTrip(t *testing.T) {
	values := make([]GLElement, 16)
	for i := range values {
		values[i] = NewGL(uint64(1000 + i*i))
	}
	orig := append([]GLElement(nil), values...)

	if err := NTT(values); err != nil {
		t.Fatalf("NTT: %v", err)
	}
	if err := INTT(values); err != nil {
		t.Fatalf("INTT: %v", err)
	}
	for i := range values {
		if values[i] != orig[i] {
			t.Errorf("round-trip[%d] = %v, want %v", i, values[i], orig[i])
		}
	}
}

func TestINTTNTTRoundTrip(t *testing.T) {
	values := make([]GLElement, 16)
	for i := range values {
		values[i] = NewGL(uint64(7*i + 3))
	}
	orig := append([]GLElement(nil), values...)

	if err := INTT(values); err != nil {
		t.Fatalf("INTT: %v", err)
	}
	if err := NTT(values); err != nil {
		t.Fatalf("NTT: %v", err)
	}
	for i := range values {
		if values[i] != orig[i] {
			t.Errorf("round-trip[%d] = %v, want %v", i, values[i], orig[i])
		}
	}
}

func TestNTTRejectsNonPowerOfTwo(t *testing.T) {
	if err := NTT(make([]GLElement, 3)); err == nil {
		t.Error("NTT of length 3: want error, got nil")
	}
}

func TestExtNTTINTTRoundTrip(t *testing.T) {
	values := make([]ExtElement, 8)
	for i := range values {
		values[i] = NewExt(NewGL(uint64(i)), NewGL(uint64(2*i+1)), NewGL(uint64(3*i+2)))
	}
	orig := append([]ExtElement(nil), values...)

	if err := ExtNTT(values); err != nil {
		t.Fatalf("ExtNTT: %v", err)
	}
	if err := ExtINTT(values); err != nil {
		t.Fatalf("ExtINTT: %v", err)
	}
	for i := range values {
		if !values[i].Equal(orig[i]) {
			t.Errorf("ext round-trip[%d] = %v, want %v", i, values[i], orig[i])
		}
	}
}

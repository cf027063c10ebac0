package precompiles

import "testing"

func TestAdd256(t *testing.T) {
	t.Run("no carry", func(t *testing.T) {
		a := [4]uint64{1, 0, 0, 0}
		b := [4]uint64{2, 0, 0, 0}
		c, cout := Add256(a, b, 0)
		if c != ([4]uint64{3, 0, 0, 0}) || cout != 0 {
			t.Errorf("Add256(1,2,0) = (%v, %d), want ({3 0 0 0}, 0)", c, cout)
		}
	})

	t.Run("carry propagates through limbs", func(t *testing.T) {
		a := [4]uint64{^uint64(0), ^uint64(0), ^uint64(0), 0}
		b := [4]uint64{1, 0, 0, 0}
		c, cout := Add256(a, b, 0)
		if c != ([4]uint64{0, 0, 0, 1}) || cout != 0 {
			t.Errorf("Add256 overflow = (%v, %d), want ({0 0 0 1}, 0)", c, cout)
		}
	})

	t.Run("carry out of top limb", func(t *testing.T) {
		a := [4]uint64{0, 0, 0, ^uint64(0)}
		b := [4]uint64{1, 0, 0, 0}
		_, cout := Add256(a, b, 0)
		if cout != 1 {
			t.Errorf("cout = %d, want 1", cout)
		}
	})
}

func TestArith256(t *testing.T) {
	a := [4]uint64{3, 0, 0, 0}
	b := [4]uint64{7, 0, 0, 0}
	c := [4]uint64{2, 0, 0, 0}
	lo, hi := Arith256(a, b, c)
	// 3*7 + 2 = 23, fits entirely in the low limb.
	if lo != ([4]uint64{23, 0, 0, 0}) || hi != ([4]uint64{0, 0, 0, 0}) {
		t.Errorf("Arith256(3,7,2) = (%v, %v), want ({23 0 0 0}, {0 0 0 0})", lo, hi)
	}
}

func TestArith256Mod(t *testing.T) {
	a := [4]uint64{10, 0, 0, 0}
	b := [4]uint64{10, 0, 0, 0}
	c := [4]uint64{0, 0, 0, 0}
	module := [4]uint64{7, 0, 0, 0}
	// 10*10 mod 7 = 100 mod 7 = 2.
	got := Arith256Mod(a, b, c, module)
	if got != ([4]uint64{2, 0, 0, 0}) {
		t.Errorf("Arith256Mod(10,10,0,7) = %v, want {2 0 0 0}", got)
	}
}

func TestArith384Mod(t *testing.T) {
	a := [6]uint64{10, 0, 0, 0, 0, 0}
	b := [6]uint64{10, 0, 0, 0, 0, 0}
	c := [6]uint64{0, 0, 0, 0, 0, 0}
	module := [6]uint64{7, 0, 0, 0, 0, 0}
	got := Arith384Mod(a, b, c, module)
	if got != ([6]uint64{2, 0, 0, 0, 0, 0}) {
		t.Errorf("Arith384Mod(10,10,0,7) = %v, want {2 0 0 0 0 0}", got)
	}
}

func TestMsbPos256(t *testing.T) {
	t.Run("zero has no msb", func(t *testing.T) {
		_, ok := MsbPos256([8]uint64{})
		if ok {
			t.Error("MsbPos256(0) reported a bit position, want ok=false")
		}
	})

	t.Run("single bit in low limb", func(t *testing.T) {
		pos, ok := MsbPos256([8]uint64{0b1000})
		if !ok || pos != 3 {
			t.Errorf("MsbPos256(8) = (%d, %v), want (3, true)", pos, ok)
		}
	})

	t.Run("bit in a higher limb wins", func(t *testing.T) {
		a := [8]uint64{^uint64(0), 1}
		pos, ok := MsbPos256(a)
		if !ok || pos != 64 {
			t.Errorf("MsbPos256 = (%d, %v), want (64, true)", pos, ok)
		}
	})
}

func TestBigIntModuleCountsCalls(t *testing.T) {
	m := &BigIntModule{Metrics: &Metrics{}}
	m.Add256([4]uint64{1}, [4]uint64{2}, 0)
	m.Arith256([4]uint64{1}, [4]uint64{2}, [4]uint64{0})
	m.Arith256Mod([4]uint64{1}, [4]uint64{2}, [4]uint64{0}, [4]uint64{5})
	m.Arith384Mod([6]uint64{1}, [6]uint64{2}, [6]uint64{0}, [6]uint64{5})

	snap := m.Metrics.Snapshot()
	if snap.Add256 != 1 || snap.Arith256 != 1 || snap.Arith256Mod != 1 || snap.Arith384Mod != 1 {
		t.Errorf("snapshot = %+v, want every touched counter at 1", snap)
	}
}

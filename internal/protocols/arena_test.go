package protocols

import (
	"testing"

	"github.com/vybium/vybium-starks-vm/internal/core"
)

func TestArenaReserveAndSlice(t *testing.T) {
	a := NewArena(10)
	if err := a.Reserve("trace", 0, 4, 1); err != nil {
		t.Fatalf("Reserve(trace): %v", err)
	}
	if err := a.Reserve("quotient", 4, 6, 3); err != nil {
		t.Fatalf("Reserve(quotient): %v", err)
	}

	slice, err := a.Slice("trace")
	if err != nil {
		t.Fatalf("Slice(trace): %v", err)
	}
	if len(slice) != 4 {
		t.Errorf("len(Slice(trace)) = %d, want 4", len(slice))
	}
	slice[0] = core.NewGL(42)
	if a.data[0] != core.NewGL(42) {
		t.Error("Slice does not alias the arena's backing array")
	}

	v, ok := a.View("quotient")
	if !ok {
		t.Fatal("View(quotient): not found")
	}
	if v.Offset != 4 || v.Len != 6 || v.Dim != 3 {
		t.Errorf("View(quotient) = %+v, want {Offset:4 Len:6 Dim:3}", v)
	}

	if a.Size() != 10 {
		t.Errorf("Size() = %d, want 10", a.Size())
	}
}

func TestArenaReserveRejectsOverlap(t *testing.T) {
	a := NewArena(10)
	if err := a.Reserve("a", 0, 5, 1); err != nil {
		t.Fatalf("Reserve(a): %v", err)
	}
	if err := a.Reserve("b", 3, 5, 1); err == nil {
		t.Error("Reserve(b) overlapping a: want error, got nil")
	}
	if err := a.Reserve("c", 5, 5, 1); err != nil {
		t.Errorf("Reserve(c) adjacent to a: want nil, got %v", err)
	}
}

func TestArenaReserveRejectsOutOfBounds(t *testing.T) {
	a := NewArena(10)
	if err := a.Reserve("x", 8, 5, 1); err == nil {
		t.Error("Reserve extending past the slab: want error, got nil")
	}
	if err := a.Reserve("y", -1, 5, 1); err == nil {
		t.Error("Reserve with negative offset: want error, got nil")
	}
}

func TestArenaSliceAndViewRejectUnknownName(t *testing.T) {
	a := NewArena(4)
	if _, err := a.Slice("missing"); err == nil {
		t.Error("Slice(missing): want error, got nil")
	}
	if _, ok := a.View("missing"); ok {
		t.Error("View(missing): want not-found, got found")
	}
}

package protocols

import (
	"testing"

	"github.com/vybium/vybium-starks-vm/internal/core"
)

func TestCoeffsFromCosetEvalsRoundTrips(t *testing.T) {
	coeffs := []core.ExtElement{
		core.FromBase(core.NewGL(3)),
		core.FromBase(core.NewGL(5)),
		core.FromBase(core.NewGL(7)),
		core.FromBase(core.NewGL(11)),
	}

	evals := make([]core.ExtElement, len(coeffs))
	copy(evals, coeffs)
	shift := core.Shift
	scale := core.GLOne
	for k := range evals {
		evals[k] = evals[k].MulBase(scale)
		scale = scale.Mul(shift)
	}
	if err := core.ExtNTT(evals); err != nil {
		t.Fatalf("ExtNTT: %v", err)
	}

	got, err := CoeffsFromCosetEvals(evals)
	if err != nil {
		t.Fatalf("CoeffsFromCosetEvals: %v", err)
	}
	for i := range coeffs {
		if !got[i].Equal(coeffs[i]) {
			t.Errorf("coeff[%d] = %v, want %v", i, got[i], coeffs[i])
		}
	}
}

func TestEvaluatePolyConstant(t *testing.T) {
	coeffs := []core.ExtElement{core.FromBase(core.NewGL(42))}
	got := EvaluatePoly(coeffs, core.FromBase(core.NewGL(999)))
	if !got.Equal(core.FromBase(core.NewGL(42))) {
		t.Errorf("EvaluatePoly(constant) = %v, want 42", got)
	}
}

func TestEvaluatePolyLinear(t *testing.T) {
	// p(x) = 2 + 3x, evaluated at x=5 should be 17.
	coeffs := []core.ExtElement{core.FromBase(core.NewGL(2)), core.FromBase(core.NewGL(3))}
	got := EvaluatePoly(coeffs, core.FromBase(core.NewGL(5)))
	want := core.FromBase(core.NewGL(17))
	if !got.Equal(want) {
		t.Errorf("EvaluatePoly(2+3x, 5) = %v, want %v", got, want)
	}
}

func TestExtLDEOutputLength(t *testing.T) {
	vals := []core.ExtElement{
		core.FromBase(core.NewGL(1)),
		core.FromBase(core.NewGL(2)),
	}
	out, err := ExtLDE(vals, 2)
	if err != nil {
		t.Fatalf("ExtLDE: %v", err)
	}
	if len(out) != len(vals)*2 {
		t.Fatalf("len(out) = %d, want %d", len(out), len(vals)*2)
	}
}

func TestBuildXDivXSubEvaluatesAwayFromOpeningPoint(t *testing.T) {
	xi := core.FromBase(core.NewGL(123))
	fns := BuildXDivXSub(4, 2, []int{0}, xi)
	if len(fns) != 1 {
		t.Fatalf("len(fns) = %d, want 1", len(fns))
	}

	val := fns[0](1)
	if val.IsZero() {
		t.Error("BuildXDivXSub fn returned zero away from the opening point")
	}
}

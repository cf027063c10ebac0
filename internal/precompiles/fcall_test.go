package precompiles

import "testing"

func TestFcallInverseFpEcDispatch(t *testing.T) {
	m := &Metrics{}
	ctx := &FcallContext{FunctionID: FcallInverseFpEc}
	ctx.Params[0] = 7

	if err := Fcall(ctx, m); err != nil {
		t.Fatalf("Fcall(InverseFpEc): %v", err)
	}
	if ctx.ResultSize != 4 {
		t.Errorf("ResultSize = %d, want 4", ctx.ResultSize)
	}
	if m.Snapshot().InverseFpEc != 1 {
		t.Error("InverseFpEc metric not incremented")
	}

	want, err := InverseFpEc([4]uint64{7, 0, 0, 0})
	if err != nil {
		t.Fatalf("InverseFpEc: %v", err)
	}
	var got [4]uint64
	copy(got[:], ctx.Result[:4])
	if got != want {
		t.Errorf("Fcall result = %v, want %v", got, want)
	}
}

func TestFcallMsbPos256Dispatch(t *testing.T) {
	m := &Metrics{}
	ctx := &FcallContext{FunctionID: FcallMsbPos256}
	ctx.Params[0] = 0b1000

	if err := Fcall(ctx, m); err != nil {
		t.Fatalf("Fcall(MsbPos256): %v", err)
	}
	if ctx.Result[0] != 1 || ctx.Result[1] != 3 {
		t.Errorf("Result = %v, want [1 3 ...]", ctx.Result[:2])
	}
	if m.Snapshot().MsbPos256 != 1 {
		t.Error("MsbPos256 metric not incremented")
	}
}

func TestFcallBN254TwistAddLineCoeffsDispatch(t *testing.T) {
	m := &Metrics{}
	ctx := &FcallContext{FunctionID: FcallBN254TwistAddLineCoeffs}
	// p = (1,2), q = (3,7), distinct x so the line isn't vertical.
	ctx.Params[0] = 1 // p.X.A0
	ctx.Params[8] = 2 // p.Y.A0
	ctx.Params[16] = 3 // q.X.A0
	ctx.Params[24] = 7 // q.Y.A0

	if err := Fcall(ctx, m); err != nil {
		t.Fatalf("Fcall(BN254TwistAddLineCoeffs): %v", err)
	}
	if ctx.ResultSize != 16 {
		t.Errorf("ResultSize = %d, want 16", ctx.ResultSize)
	}
	if m.Snapshot().BN254TwistAddLineCoeffs != 1 {
		t.Error("BN254TwistAddLineCoeffs metric not incremented")
	}
}

func TestFcallRejectsUnsupportedFunction(t *testing.T) {
	m := &Metrics{}
	ctx := &FcallContext{FunctionID: 9999}
	if err := Fcall(ctx, m); err == nil {
		t.Fatal("Fcall(9999) succeeded, want ErrUnsupportedFunction")
	}
}

package precompiles

// Function ids the free-call dispatch table recognizes (spec §6.5),
// matching lib-c's fcall.hpp numbering.
const (
	FcallInverseFpEc             = 1
	FcallInverseFnEc             = 2
	FcallSqrtFpEcParity          = 3
	FcallMsbPos256               = 4
	FcallBN254FpInv              = 6
	FcallBN254Fp2Inv             = 7
	FcallBN254TwistAddLineCoeffs = 8
	FcallBN254TwistDblLineCoeffs = 9
)

// FcallContext is the packed params/result buffer the emulator passes
// across the free-call boundary (spec §6.5): params/result are little-
// endian uint64 arrays, sized generously enough for the largest supported
// operand (BN254_TWIST_ADD_LINE_COEFFS' two G2 points, 32 limbs).
type FcallContext struct {
	FunctionID int
	Params     [32]uint64
	ParamsSize int
	Result     [32]uint64
	ResultSize int
}

// Fcall dispatches ctx.FunctionID to the matching precompile, mirroring
// lib-c's Fcall() switch (spec §6.5). The core itself never calls this;
// it exists so an emulator implementation has a ready-made place to route
// free-call hints into this package's operations.
func Fcall(ctx *FcallContext, metrics *Metrics) error {
	switch ctx.FunctionID {
	case FcallInverseFpEc:
		var a [4]uint64
		copy(a[:], ctx.Params[:4])
		r, err := InverseFpEc(a)
		if err != nil {
			return err
		}
		copy(ctx.Result[:4], r[:])
		ctx.ResultSize = 4
		metrics.inverseFpEc.Add(1)

	case FcallInverseFnEc:
		var a [4]uint64
		copy(a[:], ctx.Params[:4])
		r, err := InverseFnEc(a)
		if err != nil {
			return err
		}
		copy(ctx.Result[:4], r[:])
		ctx.ResultSize = 4
		metrics.inverseFnEc.Add(1)

	case FcallSqrtFpEcParity:
		var a [4]uint64
		copy(a[:], ctx.Params[:4])
		parity := ctx.Params[4]
		r, ok := SqrtFpEcParity(a, parity)
		if ok {
			ctx.Result[0] = 1
		} else {
			ctx.Result[0] = 0
		}
		copy(ctx.Result[1:5], r[:])
		ctx.ResultSize = 5
		metrics.sqrtFpEcParity.Add(1)

	case FcallMsbPos256:
		var a [8]uint64
		copy(a[:], ctx.Params[:8])
		pos, ok := MsbPos256(a)
		if ok {
			ctx.Result[0] = 1
		} else {
			ctx.Result[0] = 0
		}
		ctx.Result[1] = pos
		ctx.ResultSize = 2
		metrics.msbPos256.Add(1)

	case FcallBN254FpInv:
		var a [4]uint64
		copy(a[:], ctx.Params[:4])
		r, err := BN254FpInv(a)
		if err != nil {
			return err
		}
		copy(ctx.Result[:4], r[:])
		ctx.ResultSize = 4
		metrics.bn254FpInv.Add(1)

	case FcallBN254Fp2Inv:
		var a BN254Fp2
		copy(a.A0[:], ctx.Params[0:4])
		copy(a.A1[:], ctx.Params[4:8])
		r, err := BN254Fp2Inv(a)
		if err != nil {
			return err
		}
		copy(ctx.Result[0:4], r.A0[:])
		copy(ctx.Result[4:8], r.A1[:])
		ctx.ResultSize = 8
		metrics.bn254Fp2Inv.Add(1)

	case FcallBN254TwistAddLineCoeffs:
		p, q := bn254TwistPointsFromParams(ctx.Params)
		lambda, mu, err := BN254TwistAddLineCoeffs(p, q)
		if err != nil {
			return err
		}
		writeBN254TwistLineCoeffs(ctx, lambda, mu)
		metrics.bn254TwistAddLineCoeffs.Add(1)

	case FcallBN254TwistDblLineCoeffs:
		p, _ := bn254TwistPointsFromParams(ctx.Params)
		lambda, mu, err := BN254TwistDblLineCoeffs(p)
		if err != nil {
			return err
		}
		writeBN254TwistLineCoeffs(ctx, lambda, mu)
		metrics.bn254TwistDblLineCoeffs.Add(1)

	default:
		return newErr(ErrUnsupportedFunction, "unsupported function_id=%d", ctx.FunctionID)
	}
	return nil
}

// bn254TwistPointsFromParams unpacks two BN254 G2 points (X0,X1,Y0,Y1 each,
// 4 limbs apiece) from a 32-limb params buffer.
func bn254TwistPointsFromParams(params [32]uint64) (p, q BN254TwistPoint) {
	readPoint := func(off int) BN254TwistPoint {
		var pt BN254TwistPoint
		copy(pt.X.A0[:], params[off:off+4])
		copy(pt.X.A1[:], params[off+4:off+8])
		copy(pt.Y.A0[:], params[off+8:off+12])
		copy(pt.Y.A1[:], params[off+12:off+16])
		return pt
	}
	return readPoint(0), readPoint(16)
}

func writeBN254TwistLineCoeffs(ctx *FcallContext, lambda, mu BN254Fp2) {
	copy(ctx.Result[0:4], lambda.A0[:])
	copy(ctx.Result[4:8], lambda.A1[:])
	copy(ctx.Result[8:12], mu.A0[:])
	copy(ctx.Result[12:16], mu.A1[:])
	ctx.ResultSize = 16
}

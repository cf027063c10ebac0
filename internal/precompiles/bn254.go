package precompiles

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// BN254Fp2 is a little-endian limb pair [a0, a1] representing a0 + a1*u in
// the BN254 quadratic extension F_p2, matching the complex (Fp²) add/sub/
// mul the field library is required to expose (spec §6.4).
type BN254Fp2 struct {
	A0, A1 [4]uint64
}

func bn254FpFromLimbs(limbs [4]uint64) fp.Element {
	var e fp.Element
	e.SetBigInt(limbsToInt(limbs[:]))
	return e
}

func bn254FpToLimbs(e fp.Element) [4]uint64 {
	var out [4]uint64
	copy(out[:], intToLimbs(e.BigInt(nil), 4))
	return out
}

// BN254FpInv computes the modular inverse of a in the BN254 base field
// (spec §6.5's BN254_FP_INV free-call function).
func BN254FpInv(a [4]uint64) ([4]uint64, error) {
	e := bn254FpFromLimbs(a)
	if e.IsZero() {
		return [4]uint64{}, newErr(ErrDivisionByZero, "BN254FpInv: division by zero")
	}
	var r fp.Element
	r.Inverse(&e)
	return bn254FpToLimbs(r), nil
}

func toBN254E2(v BN254Fp2) bn254.E2 {
	return bn254.E2{A0: bn254FpFromLimbs(v.A0), A1: bn254FpFromLimbs(v.A1)}
}

func fromBN254E2(e bn254.E2) BN254Fp2 {
	return BN254Fp2{A0: bn254FpToLimbs(e.A0), A1: bn254FpToLimbs(e.A1)}
}

// BN254Fp2Add, BN254Fp2Sub, BN254Fp2Mul implement the complex (Fp²)
// add/sub/mul the field library exposes over BN254 (spec §6.4).
func BN254Fp2Add(a, b BN254Fp2) BN254Fp2 {
	x, y := toBN254E2(a), toBN254E2(b)
	var r bn254.E2
	r.Add(&x, &y)
	return fromBN254E2(r)
}

func BN254Fp2Sub(a, b BN254Fp2) BN254Fp2 {
	x, y := toBN254E2(a), toBN254E2(b)
	var r bn254.E2
	r.Sub(&x, &y)
	return fromBN254E2(r)
}

func BN254Fp2Mul(a, b BN254Fp2) BN254Fp2 {
	x, y := toBN254E2(a), toBN254E2(b)
	var r bn254.E2
	r.Mul(&x, &y)
	return fromBN254E2(r)
}

// BN254Fp2Inv computes the inverse of a in F_p2 (spec §6.5's
// BN254_FP2_INV free-call function).
func BN254Fp2Inv(a BN254Fp2) (BN254Fp2, error) {
	x := toBN254E2(a)
	if x.IsZero() {
		return BN254Fp2{}, newErr(ErrDivisionByZero, "BN254Fp2Inv: division by zero")
	}
	var r bn254.E2
	r.Inverse(&x)
	return fromBN254E2(r), nil
}

// BN254Point is an affine point on the BN254 G1 curve.
type BN254Point struct {
	X, Y [4]uint64
}

func toBN254Affine(p BN254Point) bn254.G1Affine {
	return bn254.G1Affine{X: bn254FpFromLimbs(p.X), Y: bn254FpFromLimbs(p.Y)}
}

func fromBN254Affine(a bn254.G1Affine) BN254Point {
	return BN254Point{X: bn254FpToLimbs(a.X), Y: bn254FpToLimbs(a.Y)}
}

// BN254Add and BN254Double mirror secp256k1.go's point operations, wired
// against the BN254 G1 curve the Poseidon-BN128 Merkle tree also uses.
func BN254Add(p, q BN254Point) BN254Point {
	a, b := toBN254Affine(p), toBN254Affine(q)
	var jac bn254.G1Jac
	jac.FromAffine(&a)
	var qj bn254.G1Jac
	qj.FromAffine(&b)
	jac.AddAssign(&qj)
	var out bn254.G1Affine
	out.FromJacobian(&jac)
	return fromBN254Affine(out)
}

func BN254Double(p BN254Point) BN254Point {
	a := toBN254Affine(p)
	var jac bn254.G1Jac
	jac.FromAffine(&a)
	jac.DoubleAssign()
	var out bn254.G1Affine
	out.FromJacobian(&jac)
	return fromBN254Affine(out)
}

// BN254TwistPoint is an affine point on the BN254 G2 (sextic twist) curve,
// whose coordinates live in F_p2.
type BN254TwistPoint struct {
	X, Y BN254Fp2
}

// BN254TwistAddLineCoeffs and BN254TwistDblLineCoeffs compute the Miller
// loop's line-function coefficients for an add/double step on the twist
// (spec §6.5's BN254_TWIST_ADD_LINE_COEFFS / BN254_TWIST_DBL_LINE_COEFFS
// free-call functions): lambda = (y2-y1)/(x2-x1) for add, lambda =
// 3x1²/2y1 for double, with mu = y1 - lambda*x1 the line's intercept term.
func BN254TwistAddLineCoeffs(p, q BN254TwistPoint) (lambda, mu BN254Fp2, err error) {
	x1, y1 := toBN254E2(p.X), toBN254E2(p.Y)
	x2, y2 := toBN254E2(q.X), toBN254E2(q.Y)
	var dx, dy bn254.E2
	dx.Sub(&x2, &x1)
	dy.Sub(&y2, &y1)
	if dx.IsZero() {
		return BN254Fp2{}, BN254Fp2{}, newErr(ErrDivisionByZero, "BN254TwistAddLineCoeffs: division by zero")
	}
	var dxInv, lam, m, t bn254.E2
	dxInv.Inverse(&dx)
	lam.Mul(&dy, &dxInv)
	t.Mul(&lam, &x1)
	m.Sub(&y1, &t)
	return fromBN254E2(lam), fromBN254E2(m), nil
}

func BN254TwistDblLineCoeffs(p BN254TwistPoint) (lambda, mu BN254Fp2, err error) {
	x1, y1 := toBN254E2(p.X), toBN254E2(p.Y)
	if y1.IsZero() {
		return BN254Fp2{}, BN254Fp2{}, newErr(ErrDivisionByZero, "BN254TwistDblLineCoeffs: division by zero")
	}
	var num, den, lam, t, m bn254.E2
	num.Square(&x1)
	three := bn254.E2{}
	three.A0.SetUint64(3)
	num.Mul(&num, &three)
	two := bn254.E2{}
	two.A0.SetUint64(2)
	den.Mul(&y1, &two)
	var denInv bn254.E2
	denInv.Inverse(&den)
	lam.Mul(&num, &denInv)
	t.Mul(&lam, &x1)
	m.Sub(&y1, &t)
	return fromBN254E2(lam), fromBN254E2(m), nil
}

package precompiles

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// BLS12381Point is an affine point on the BLS12-381 G1 curve, 384-bit
// (6x64) limb-addressable (spec §6.4's "EC add/double over ...
// BLS12_381").
type BLS12381Point struct {
	X, Y [6]uint64
}

func bls12381FpFromLimbs(limbs [6]uint64) fp.Element {
	var e fp.Element
	e.SetBigInt(limbsToInt(limbs[:]))
	return e
}

func bls12381FpToLimbs(e fp.Element) [6]uint64 {
	var out [6]uint64
	copy(out[:], intToLimbs(e.BigInt(nil), 6))
	return out
}

func toBLS12381Affine(p BLS12381Point) bls12381.G1Affine {
	return bls12381.G1Affine{X: bls12381FpFromLimbs(p.X), Y: bls12381FpFromLimbs(p.Y)}
}

func fromBLS12381Affine(a bls12381.G1Affine) BLS12381Point {
	return BLS12381Point{X: bls12381FpToLimbs(a.X), Y: bls12381FpToLimbs(a.Y)}
}

// BLS12381Add adds two affine points on the BLS12-381 G1 curve.
func BLS12381Add(p, q BLS12381Point) BLS12381Point {
	a, b := toBLS12381Affine(p), toBLS12381Affine(q)
	var jac bls12381.G1Jac
	jac.FromAffine(&a)
	var qj bls12381.G1Jac
	qj.FromAffine(&b)
	jac.AddAssign(&qj)
	var out bls12381.G1Affine
	out.FromJacobian(&jac)
	return fromBLS12381Affine(out)
}

// BLS12381Double doubles an affine point on the BLS12-381 G1 curve.
func BLS12381Double(p BLS12381Point) BLS12381Point {
	a := toBLS12381Affine(p)
	var jac bls12381.G1Jac
	jac.FromAffine(&a)
	jac.DoubleAssign()
	var out bls12381.G1Affine
	out.FromJacobian(&jac)
	return fromBLS12381Affine(out)
}

// BLS12381Fp2 mirrors bn254.go's BN254Fp2 over the BLS12-381 tower's base
// field: a0 + a1*u.
type BLS12381Fp2 struct {
	A0, A1 [6]uint64
}

func toBLS12381E2(v BLS12381Fp2) bls12381.E2 {
	return bls12381.E2{A0: bls12381FpFromLimbs(v.A0), A1: bls12381FpFromLimbs(v.A1)}
}

func fromBLS12381E2(e bls12381.E2) BLS12381Fp2 {
	return BLS12381Fp2{A0: bls12381FpToLimbs(e.A0), A1: bls12381FpToLimbs(e.A1)}
}

// BLS12381Fp2Add, BLS12381Fp2Sub, BLS12381Fp2Mul mirror bn254.go's
// complex-arithmetic trio over the BLS12-381 tower.
func BLS12381Fp2Add(a, b BLS12381Fp2) BLS12381Fp2 {
	x, y := toBLS12381E2(a), toBLS12381E2(b)
	var r bls12381.E2
	r.Add(&x, &y)
	return fromBLS12381E2(r)
}

func BLS12381Fp2Sub(a, b BLS12381Fp2) BLS12381Fp2 {
	x, y := toBLS12381E2(a), toBLS12381E2(b)
	var r bls12381.E2
	r.Sub(&x, &y)
	return fromBLS12381E2(r)
}

func BLS12381Fp2Mul(a, b BLS12381Fp2) BLS12381Fp2 {
	x, y := toBLS12381E2(a), toBLS12381E2(b)
	var r bls12381.E2
	r.Mul(&x, &y)
	return fromBLS12381E2(r)
}

// BLS12381Fp2Inv computes the inverse of a in the BLS12-381 tower's F_p2.
func BLS12381Fp2Inv(a BLS12381Fp2) (BLS12381Fp2, error) {
	x := toBLS12381E2(a)
	if x.IsZero() {
		return BLS12381Fp2{}, newErr(ErrDivisionByZero, "BLS12381Fp2Inv: division by zero")
	}
	var r bls12381.E2
	r.Inverse(&x)
	return fromBLS12381E2(r), nil
}

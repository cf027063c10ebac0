package precompiles

import (
	"github.com/consensys/gnark-crypto/ecc/secp256k1"
	"github.com/consensys/gnark-crypto/ecc/secp256k1/fp"
	"github.com/consensys/gnark-crypto/ecc/secp256k1/fr"
)

// Secp256k1Point is an affine point, 64-bit-limb-addressable the way the
// zkVM free-call convention expects (spec §6.4: "EC add/double over
// secp256k1").
type Secp256k1Point struct {
	X, Y [4]uint64
}

func secp256k1FpFromLimbs(limbs [4]uint64) fp.Element {
	var e fp.Element
	e.SetBigInt(limbsToInt(limbs[:]))
	return e
}

func secp256k1FpToLimbs(e fp.Element) [4]uint64 {
	var out [4]uint64
	b := e.BigInt(nil)
	copy(out[:], intToLimbs(b, 4))
	return out
}

func toSecp256k1Affine(p Secp256k1Point) secp256k1.G1Affine {
	return secp256k1.G1Affine{
		X: secp256k1FpFromLimbs(p.X),
		Y: secp256k1FpFromLimbs(p.Y),
	}
}

func fromSecp256k1Affine(a secp256k1.G1Affine) Secp256k1Point {
	return Secp256k1Point{X: secp256k1FpToLimbs(a.X), Y: secp256k1FpToLimbs(a.Y)}
}

// Secp256k1Add adds two affine points on the secp256k1 curve.
func Secp256k1Add(p, q Secp256k1Point) Secp256k1Point {
	a, b := toSecp256k1Affine(p), toSecp256k1Affine(q)
	var jac secp256k1.G1Jac
	jac.FromAffine(&a)
	var qj secp256k1.G1Jac
	qj.FromAffine(&b)
	jac.AddAssign(&qj)
	var out secp256k1.G1Affine
	out.FromJacobian(&jac)
	return fromSecp256k1Affine(out)
}

// Secp256k1Double doubles an affine point on the secp256k1 curve.
func Secp256k1Double(p Secp256k1Point) Secp256k1Point {
	a := toSecp256k1Affine(p)
	var jac secp256k1.G1Jac
	jac.FromAffine(&a)
	jac.DoubleAssign()
	var out secp256k1.G1Affine
	out.FromJacobian(&jac)
	return fromSecp256k1Affine(out)
}

// InverseFpEc computes the modular inverse of a in the secp256k1 base field
// F_p (spec §6.5's INVERSE_FP_EC free-call function).
func InverseFpEc(a [4]uint64) ([4]uint64, error) {
	e := secp256k1FpFromLimbs(a)
	if e.IsZero() {
		return [4]uint64{}, newErr(ErrDivisionByZero, "InverseFpEc: division by zero")
	}
	var r fp.Element
	r.Inverse(&e)
	return secp256k1FpToLimbs(r), nil
}

// InverseFnEc computes the modular inverse of a in the secp256k1 scalar
// field F_n (spec §6.5's INVERSE_FN_EC free-call function).
func InverseFnEc(a [4]uint64) ([4]uint64, error) {
	var e fr.Element
	e.SetBigInt(limbsToInt(a[:]))
	if e.IsZero() {
		return [4]uint64{}, newErr(ErrDivisionByZero, "InverseFnEc: division by zero")
	}
	var r fr.Element
	r.Inverse(&e)
	var out [4]uint64
	b := r.BigInt(nil)
	copy(out[:], intToLimbs(b, 4))
	return out, nil
}

// SqrtFpEcParity returns the square root of a in F_p with the requested
// parity bit, following the p ≡ 3 (mod 4) shortcut lib-c's
// fcall.cpp uses (r = a^((p+1)/4)), negating the result when its parity
// doesn't match. ok is false when a has no square root.
func SqrtFpEcParity(a [4]uint64, parity uint64) (r [4]uint64, ok bool) {
	e := secp256k1FpFromLimbs(a)
	var root fp.Element
	if root.Sqrt(&e) == nil {
		return [4]uint64{}, false
	}
	rootBig := root.BigInt(nil)
	if rootBig.Bit(0) != uint(parity) {
		root.Neg(&root)
	}
	return secp256k1FpToLimbs(root), true
}

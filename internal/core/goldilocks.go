// Package core implements the field, NTT, and Merkle-commitment primitives
// that the STARK prover/verifier pipeline is built on.
package core

import (
	"fmt"
	"math/bits"
)

// GLModulus is the Goldilocks prime p = 2^64 - 2^32 + 1.
const GLModulus uint64 = 18446744069414584321

// epsilon = 2^64 - p = 2^32 - 1, used for the fast reduction below.
const glEpsilon uint64 = (1 << 32) - 1

// GLElement is an element of the Goldilocks base field, always held in
// canonical form (< GLModulus).
type GLElement uint64

// GLZero and GLOne are the additive and multiplicative identities.
const (
	GLZero GLElement = 0
	GLOne  GLElement = 1
)

// NewGL reduces a uint64 into canonical form.
func NewGL(v uint64) GLElement {
	if v >= GLModulus {
		v -= GLModulus
	}
	return GLElement(v)
}

// reduce128 folds a 128-bit product (hi,lo) modulo p using the Goldilocks
// epsilon trick: 2^64 ≡ epsilon (mod p), 2^96 ≡ -1 (mod p).
func reduce128(hi, lo uint64) GLElement {
	hiHi := hi >> 32
	hiLo := hi & 0xffffffff

	// t0 = lo - hiHi (mod p), accounting for borrow
	t0, borrow := bits.Sub64(lo, hiHi, 0)
	if borrow != 0 {
		t0 -= glEpsilon
	}

	// t1 = hiLo * epsilon; hiLo < 2^32 and epsilon < 2^32 so this never
	// overflows 64 bits.
	t1 := hiLo * glEpsilon

	sum, carry := bits.Add64(t0, t1, 0)
	if carry != 0 {
		sum += glEpsilon
	}
	return NewGL(sum)
}

// Add returns a+b mod p.
func (a GLElement) Add(b GLElement) GLElement {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		sum += glEpsilon
	}
	return NewGL(sum)
}

// Sub returns a-b mod p.
func (a GLElement) Sub(b GLElement) GLElement {
	diff, borrow := bits.Sub64(uint64(a), uint64(b), 0)
	if borrow != 0 {
		diff -= glEpsilon
	}
	return NewGL(diff)
}

// Neg returns -a mod p.
func (a GLElement) Neg() GLElement {
	if a == 0 {
		return 0
	}
	return GLElement(GLModulus) - a
}

// Mul returns a*b mod p.
func (a GLElement) Mul(b GLElement) GLElement {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return reduce128(hi, lo)
}

// Square returns a*a mod p.
func (a GLElement) Square() GLElement {
	return a.Mul(a)
}

// IsZero reports whether a is the additive identity.
func (a GLElement) IsZero() bool { return a == 0 }

// Equal reports value equality.
func (a GLElement) Equal(b GLElement) bool { return a == b }

// Inv returns the multiplicative inverse of a via Fermat's little theorem.
// It rejects zero: callers that need batch_inverse semantics should use
// BatchInverse instead.
func (a GLElement) Inv() (GLElement, error) {
	if a.IsZero() {
		return 0, fmt.Errorf("core: inverse of zero")
	}
	return a.Exp(GLModulus - 2), nil
}

// Exp computes a^e mod p by square-and-multiply.
func (a GLElement) Exp(e uint64) GLElement {
	result := GLOne
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Square()
		e >>= 1
	}
	return result
}

// BatchInverse inverts every element of xs using one real inversion and
// 3*len(xs) multiplications (spec §4.1). It returns a new slice and
// leaves xs unchanged. Any zero element is a prover bug and returns an
// error naming its index.
func BatchInverse(xs []GLElement) ([]GLElement, error) {
	n := len(xs)
	if n == 0 {
		return nil, nil
	}
	acc := make([]GLElement, n)
	acc[0] = xs[0]
	for i := 1; i < n; i++ {
		if xs[i].IsZero() {
			return nil, fmt.Errorf("core: batch_inverse of zero at index %d", i)
		}
		acc[i] = acc[i-1].Mul(xs[i])
	}
	if xs[0].IsZero() {
		return nil, fmt.Errorf("core: batch_inverse of zero at index 0")
	}
	accInv, err := acc[n-1].Inv()
	if err != nil {
		return nil, err
	}
	out := make([]GLElement, n)
	for i := n - 1; i > 0; i-- {
		out[i] = accInv.Mul(acc[i-1])
		accInv = accInv.Mul(xs[i])
	}
	out[0] = accInv
	return out, nil
}

// Uint64 returns the canonical uint64 representation.
func (a GLElement) Uint64() uint64 { return uint64(a) }

func (a GLElement) String() string { return fmt.Sprintf("%d", uint64(a)) }

// glGenerator is a generator of the full 2^64-2^32 order multiplicative
// group of the Goldilocks field (the same constant plonky2/pil2 use).
const glGenerator GLElement = 7

// TwoAdicity is the largest k such that 2^k | (p-1).
const TwoAdicity = 32

// rootsOfUnityTable[k] holds ω(k), a primitive 2^k-th root of unity, for
// k in [0, TwoAdicity].
var rootsOfUnityTable = buildRootsOfUnityTable()

func buildRootsOfUnityTable() []GLElement {
	// g generates the 2-Sylow subgroup of order 2^32: root of unity of
	// maximal order is glGenerator^((p-1)/2^32).
	exp := (GLModulus - 1) >> TwoAdicity
	maxRoot := glGenerator.Exp(exp)
	table := make([]GLElement, TwoAdicity+1)
	table[TwoAdicity] = maxRoot
	for k := TwoAdicity; k > 0; k-- {
		table[k-1] = table[k].Square()
	}
	return table
}

// RootOfUnity returns ω(k), a primitive 2^k-th root of unity. Panics if
// k > TwoAdicity, mirroring the bytecode-producer contract: callers never
// ask for a root the field does not have.
func RootOfUnity(k int) GLElement {
	if k < 0 || k > TwoAdicity {
		panic(fmt.Sprintf("core: no primitive 2^%d root of unity in Goldilocks field", k))
	}
	return rootsOfUnityTable[k]
}

// Shift is the fixed coset generator used by LDE: a generator of the full
// multiplicative group, guaranteed coprime with every subgroup order used.
const Shift GLElement = glGenerator

// FromU64 mirrors the spec's fromU64 constructor name.
func FromU64(v uint64) GLElement { return NewGL(v) }

// ToCanonicalU64 mirrors the spec's toCanonicalU64 accessor name.
func (a GLElement) ToCanonicalU64() uint64 { return uint64(a) }

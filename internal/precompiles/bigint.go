// Package precompiles implements the big-int arithmetic, elliptic-curve,
// and hash field library the core assumes as an external collaborator
// (spec §6.4): it is consumed only through the expression VM's "free call"
// hint mechanism, never called directly by the prover/verifier pipeline.
package precompiles

import (
	"math/big"
	"math/bits"
)

// limbsToInt converts a little-endian 64-bit limb array to a big.Int.
func limbsToInt(limbs []uint64) *big.Int {
	n := new(big.Int)
	for i := len(limbs) - 1; i >= 0; i-- {
		n.Lsh(n, 64)
		n.Or(n, new(big.Int).SetUint64(limbs[i]))
	}
	return n
}

// intToLimbs writes n into a little-endian limb array of the given width,
// truncating any bits above width*64.
func intToLimbs(n *big.Int, width int) []uint64 {
	out := make([]uint64, width)
	m := new(big.Int).Set(n)
	mask := new(big.Int).SetUint64(^uint64(0))
	tmp := new(big.Int)
	for i := 0; i < width; i++ {
		tmp.And(m, mask)
		out[i] = tmp.Uint64()
		m.Rsh(m, 64)
	}
	return out
}

// Add256 computes c = a + b + cin over 256-bit little-endian limb arrays,
// returning the carry-out bit (spec §6.4, grounded on lib-c's
// bigint/add256.cpp ripple-carry chain, expressed here with math/bits
// instead of inline assembly).
func Add256(a, b [4]uint64, cin uint64) (c [4]uint64, cout uint64) {
	carry := cin
	for i := 0; i < 4; i++ {
		c[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return c, carry
}

// Arith256 computes d = a*b + c as a 512-bit result split into low and
// high 256-bit halves (lib-c's arith256.cpp, via math/big instead of GMP).
func Arith256(a, b, c [4]uint64) (lo, hi [4]uint64) {
	d := new(big.Int).Mul(limbsToInt(a[:]), limbsToInt(b[:]))
	d.Add(d, limbsToInt(c[:]))
	mask256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	low := new(big.Int).And(d, mask256)
	high := new(big.Int).Rsh(d, 256)
	copy(lo[:], intToLimbs(low, 4))
	copy(hi[:], intToLimbs(high, 4))
	return lo, hi
}

// Arith256Mod computes d = (a*b + c) mod module over 256-bit limb arrays.
func Arith256Mod(a, b, c, module [4]uint64) [4]uint64 {
	d := new(big.Int).Mul(limbsToInt(a[:]), limbsToInt(b[:]))
	d.Add(d, limbsToInt(c[:]))
	m := limbsToInt(module[:])
	d.Mod(d, m)
	var out [4]uint64
	copy(out[:], intToLimbs(d, 4))
	return out
}

// Arith384Mod computes d = (a*b + c) mod module over 384-bit (6x64) limb
// arrays, the BLS12-381-scale counterpart of Arith256Mod (lib-c's
// arith384.cpp). Its metrics counter is tracked symmetrically with every
// other precompile in metrics.go, resolving the asymmetric-counter note of
// spec §9.
func Arith384Mod(a, b, c, module [6]uint64) [6]uint64 {
	d := new(big.Int).Mul(limbsToInt(a[:]), limbsToInt(b[:]))
	d.Add(d, limbsToInt(c[:]))
	m := limbsToInt(module[:])
	d.Mod(d, m)
	var out [6]uint64
	copy(out[:], intToLimbs(d, 6))
	return out
}

// MsbPos256 returns the 0-based bit position of the most significant set
// bit of an 8-limb (512-bit) value, or (0, false) when the value is zero
// (spec §6.5's MSB_POS_256 free-call function).
func MsbPos256(a [8]uint64) (pos uint64, ok bool) {
	for i := 7; i >= 0; i-- {
		if a[i] != 0 {
			return uint64(i*64 + bits.Len64(a[i]) - 1), true
		}
	}
	return 0, false
}

// BigIntModule is the §6.4 external big-int arithmetic module a hint's
// "free call" resolves to: the same pure functions above, with every call
// counted in Metrics so the asymmetry spec §9 flags (every precompile but
// arith384_mod had a counter) isn't reproduced.
type BigIntModule struct {
	Metrics *Metrics
}

func (m *BigIntModule) Add256(a, b [4]uint64, cin uint64) (c [4]uint64, cout uint64) {
	m.Metrics.add256.Add(1)
	return Add256(a, b, cin)
}

func (m *BigIntModule) Arith256(a, b, c [4]uint64) (lo, hi [4]uint64) {
	m.Metrics.arith256.Add(1)
	return Arith256(a, b, c)
}

func (m *BigIntModule) Arith256Mod(a, b, c, module [4]uint64) [4]uint64 {
	m.Metrics.arith256Mod.Add(1)
	return Arith256Mod(a, b, c, module)
}

func (m *BigIntModule) Arith384Mod(a, b, c, module [6]uint64) [6]uint64 {
	m.Metrics.arith384Mod.Add(1)
	return Arith384Mod(a, b, c, module)
}

func (m *BigIntModule) KeccakF1600(state *[25]uint64) {
	m.Metrics.keccakF1600.Add(1)
	KeccakF1600(state)
}

func (m *BigIntModule) SHA256Compress(state *[8]uint32, block *[16]uint32) {
	m.Metrics.sha256Compress.Add(1)
	SHA256Compress(state, block)
}

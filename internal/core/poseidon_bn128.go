package core

import (
	"golang.org/x/crypto/sha3"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Poseidon-BN128 backs the SNARK-friendly Merkle tree used when the proof
// is meant to be verified by an on-chain/recursive BN254 circuit: state
// width 16 (arity-16 compression), single-element digests in the BN254
// scalar field.
const (
	bn128Width      = 16
	bn128FullRounds = 8
	bn128Partial    = 57
	bn128SBoxPower  = 5
)

var (
	bn128RoundConstants = genBN128RoundConstants(bn128Width * (bn128FullRounds + bn128Partial))
	bn128MDS            = genBN128MDS(bn128Width)
)

func genBN128RoundConstants(n int) []fr.Element {
	out := make([]fr.Element, n)
	s := uint64(0xd1b54a32d192ed03)
	for i := 0; i < n; i++ {
		s = splitmix64(s)
		var e fr.Element
		e.SetUint64(s)
		out[i] = e
	}
	return out
}

func genBN128MDS(width int) [][]fr.Element {
	s := uint64(0xa02bdbf7bb3c0f62)
	xs := make([]fr.Element, width)
	ys := make([]fr.Element, width)
	for i := 0; i < width; i++ {
		s = splitmix64(s)
		xs[i].SetUint64(s)
	}
	for i := 0; i < width; i++ {
		s = splitmix64(s)
		var off fr.Element
		off.SetUint64(s)
		ys[i].SetUint64(uint64(width) + 1)
		ys[i].Add(&ys[i], &off)
	}
	m := make([][]fr.Element, width)
	for i := 0; i < width; i++ {
		m[i] = make([]fr.Element, width)
		for j := 0; j < width; j++ {
			var diff, inv fr.Element
			diff.Sub(&xs[i], &ys[j])
			if diff.IsZero() {
				var one fr.Element
				one.SetOne()
				ys[j].Add(&ys[j], &one)
				diff.Sub(&xs[i], &ys[j])
			}
			inv.Inverse(&diff)
			m[i][j] = inv
		}
	}
	return m
}

// PoseidonBN128Permute applies the width-16 Poseidon permutation in place.
func PoseidonBN128Permute(state *[bn128Width]fr.Element) {
	round := 0
	half := bn128FullRounds / 2

	full := func() {
		addBN128RoundConstants(state, round)
		for i := range state {
			bn128SBox(&state[i])
		}
		bn128MDSMultiply(state)
		round++
	}
	partial := func() {
		addBN128RoundConstants(state, round)
		bn128SBox(&state[0])
		bn128MDSMultiply(state)
		round++
	}

	for i := 0; i < half; i++ {
		full()
	}
	for i := 0; i < bn128Partial; i++ {
		partial()
	}
	for i := 0; i < half; i++ {
		full()
	}
}

func addBN128RoundConstants(state *[bn128Width]fr.Element, round int) {
	base := round * bn128Width
	for i := range state {
		state[i].Add(&state[i], &bn128RoundConstants[base+i])
	}
}

func bn128SBox(x *fr.Element) {
	var sq, quad fr.Element
	sq.Square(x)
	quad.Square(&sq)
	x.Mul(&quad, x)
}

func bn128MDSMultiply(state *[bn128Width]fr.Element) {
	var out [bn128Width]fr.Element
	for i := 0; i < bn128Width; i++ {
		var acc, term fr.Element
		for j := 0; j < bn128Width; j++ {
			term.Mul(&bn128MDS[i][j], &state[j])
			acc.Add(&acc, &term)
		}
		out[i] = acc
	}
	*state = out
}

// CompressBN128 is the arity-16 Merkle node compression function over the
// BN254 scalar field: the 16 children digests are absorbed into the rate
// and a single squeeze produces the parent digest.
func CompressBN128(children [bn128Width]fr.Element) fr.Element {
	state := children
	PoseidonBN128Permute(&state)
	return state[0]
}

// feElement is the BN254 scalar-field element type used by the arity-16
// Merkle backend; aliased here so merkle.go does not need to import
// gnark-crypto directly.
type feElement = fr.Element

// compressBN128Elements is the arity-16 compression entry point used by
// merkle.go's generic tree builder.
func compressBN128Elements(children [bn128Width]feElement) feElement {
	return CompressBN128(children)
}

// digestToFr and frToDigest round-trip a BN254 scalar-field element through
// the 4-limb Digest shape so both Merkle backends can share one tree type.
func digestToFr(d Digest) feElement {
	var e feElement
	var buf [32]byte
	for i := 0; i < glDigestWidth; i++ {
		v := d[i].Uint64()
		off := i * 8
		if off+8 > 32 {
			break
		}
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
		buf[off+4] = byte(v >> 32)
		buf[off+5] = byte(v >> 40)
		buf[off+6] = byte(v >> 48)
		buf[off+7] = byte(v >> 56)
	}
	e.SetBytes(buf[:])
	return e
}

func frToDigest(e feElement) Digest {
	b := e.Bytes()
	var d Digest
	for i := 0; i < glDigestWidth; i++ {
		off := i * 8
		var v uint64
		for k := 0; k < 8; k++ {
			v |= uint64(b[off+k]) << (8 * k)
		}
		d[i] = NewGL(v)
	}
	return d
}

// HashCustomBN128 hashes leaf bytes with SHA3-256 and reduces the digest
// into the scalar field. The BN128 Merkle tree uses it for every leaf,
// whatever the leaf's width; it is not limited to irregular widths.
func HashCustomBN128(leaf []byte) fr.Element {
	sum := sha3.Sum256(leaf)
	var e fr.Element
	e.SetBytes(sum[:])
	return e
}

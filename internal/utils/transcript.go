package utils

import (
	"fmt"

	"github.com/vybium/vybium-starks-vm/internal/core"
)

// Transcript is the prover/verifier's Fiat-Shamir channel: a duplex sponge
// over the Poseidon-Goldilocks permutation. Every value the protocol
// commits to (Merkle roots, public inputs, claimed evaluations) is absorbed
// before any challenge derived from it is squeezed, so prover and verifier
// always reconstruct the identical challenge sequence from the identical
// transcript of sends. This generalizes the teacher's byte-oriented
// Channel to the algebraic absorb/squeeze §4.4 requires.
type Transcript struct {
	sponge *core.PoseidonGLSponge
	sent   [][]core.GLElement
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{sponge: core.NewPoseidonGLSponge()}
}

// Send absorbs field elements into the transcript (a Merkle root, a batch
// of public inputs, a claimed evaluation, ...).
func (t *Transcript) Send(elems ...core.GLElement) {
	t.sponge.Absorb(elems...)
	t.sent = append(t.sent, append([]core.GLElement(nil), elems...))
}

// SendDigest absorbs a Merkle digest.
func (t *Transcript) SendDigest(d core.Digest) {
	t.Send(d[:]...)
}

// GetField squeezes a single base-field challenge.
func (t *Transcript) GetField() core.GLElement {
	return t.sponge.Squeeze(1)[0]
}

// GetExtension squeezes a cubic-extension-field challenge (three base-field
// limbs), used wherever the protocol needs a challenge from the full-degree
// extension field for soundness (e.g. the DEEP composition point).
func (t *Transcript) GetExtension() core.ExtElement {
	limbs := t.sponge.Squeeze(3)
	return core.NewExt(limbs[0], limbs[1], limbs[2])
}

// GetIndices squeezes n query indices into [0, domainSize), one squeezed
// element per index reduced by keeping its low log2(domainSize) bits; no
// value is rejected (the FRI query-index permutation of §4.4/§4.6.6).
func (t *Transcript) GetIndices(n, domainSize int) ([]int, error) {
	if domainSize <= 0 || domainSize&(domainSize-1) != 0 {
		return nil, fmt.Errorf("utils: GetIndices domain size %d is not a positive power of two", domainSize)
	}
	mask := uint64(domainSize - 1)
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v := t.sponge.Squeeze(1)[0].ToCanonicalU64()
		out[i] = int(v & mask)
	}
	return out, nil
}

// History returns every slice of elements sent so far, for tests that need
// to assert on the absorbed transcript without reaching into the sponge.
func (t *Transcript) History() [][]core.GLElement {
	return t.sent
}

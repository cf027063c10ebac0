package protocols

import (
	"github.com/vybium/vybium-starks-vm/internal/core"
)

// QueryProof is one query index's revealed data: for the witness stage
// trees and the quotient tree, the leaf values and sibling path, plus the
// FRI-step folding-group values (spec §4.6.6, §6.2). No const-tree or
// custom-commit openings are included.
type QueryProof struct {
	Index int

	// StageLeaves holds the revealed leaves of every committed tree
	// concatenated (stage 1..nStages, then the quotient tree);
	// StageProofs[k] is the authentication path for tree k in that order.
	StageLeaves []core.GLElement
	StageProofs []*core.MerkleProof

	// FrameLeaves[i] / FrameProofs[i] mirror StageLeaves/StageProofs's
	// layout (every stage's leaf values plus the quotient chunks) but for
	// an extra absolute row beyond Index — one of the neighbor rows
	// StarkInfo.OpeningPoints' windowed operands need when the verifier
	// re-evaluates the quotient/FRI expressions at this query (spec §4.7
	// step 4). Rows are listed in frameRowsFor's order and exclude Index
	// itself, which StageLeaves/StageProofs already cover.
	FrameLeaves [][]core.GLElement
	FrameProofs [][]*core.MerkleProof

	// FriLeaves holds every FRI step's transposed folding group (arity
	// values each) concatenated in step order; FriProofs[s] is the path
	// for step s. The final polynomial, which has no tree, has neither.
	FriLeaves []core.ExtElement
	FriProofs []*core.MerkleProof
}

// Proof is the canonical proof layout of spec §6.2.
type Proof struct {
	// Roots[k] is the Merkle root committed at stage k (1..nStages),
	// followed by the quotient root.
	Roots []core.Digest

	// Evals holds |evMap| extension elements.
	Evals []core.ExtElement

	AirgroupValues []core.ExtElement
	AirValues      []core.ExtElement

	Queries []QueryProof

	// FriRoots[s] is the root committed after FRI fold step s (absent
	// for the final step).
	FriRoots []core.Digest

	// FinalPoly is the last FRI polynomial, length 2^(last step's bits).
	FinalPoly []core.ExtElement
}

// ToZkin emits a structured, JSON-ready object summarising the proof, the
// "minimal sanity check" shape spec §6.2/§8 describes. Encoding to bytes
// is left to the caller; only the structured object is in scope here.
func (p *Proof) ToZkin() map[string]any {
	roots := make([]string, len(p.Roots))
	for i, r := range p.Roots {
		roots[i] = digestHex(r)
	}
	friRoots := make([]string, len(p.FriRoots))
	for i, r := range p.FriRoots {
		friRoots[i] = digestHex(r)
	}
	evals := make([]string, len(p.Evals))
	for i, e := range p.Evals {
		evals[i] = e.String()
	}
	finalPoly := make([]string, len(p.FinalPoly))
	for i, e := range p.FinalPoly {
		finalPoly[i] = e.String()
	}
	return map[string]any{
		"roots":          roots,
		"evals":          evals,
		"airgroupValues": extSliceStrings(p.AirgroupValues),
		"airValues":      extSliceStrings(p.AirValues),
		"friRoots":       friRoots,
		"finalPolynomial": finalPoly,
		"nQueries":       len(p.Queries),
	}
}

func extSliceStrings(xs []core.ExtElement) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = x.String()
	}
	return out
}

func digestHex(d core.Digest) string {
	s := ""
	for _, e := range d {
		s += e.String() + ","
	}
	return s
}

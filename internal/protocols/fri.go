package protocols

import (
	"github.com/vybium/vybium-starks-vm/internal/core"
	"github.com/vybium/vybium-starks-vm/internal/utils"
)

// FriStep is the commitment produced by one fold (spec §4.6.5): the
// step's input evaluations, before folding, and the Merkle tree over
// their transposed folding groups. The polynomial left after the last
// fold is not a FriStep; RunFold returns it separately.
type FriStep struct {
	Evals []core.ExtElement
	Tree  *core.MerkleTree
}

// FoldGroup folds one contiguous transposed group of evaluations (all
// belonging to the same target row) into a single extension value: iNTT
// the group to coefficients, undo the group's coset shift by scaling
// coefficient k by sigmaG^k, then evaluate the resulting polynomial at
// alpha (spec §4.6.5).
func FoldGroup(group []core.ExtElement, sigmaG core.GLElement, alpha core.ExtElement) (core.ExtElement, error) {
	coeffs, err := CoeffsFromCosetEvals(group)
	if err != nil {
		return core.ExtElement{}, err
	}
	scale := core.GLOne
	for k := range coeffs {
		coeffs[k] = coeffs[k].MulBase(scale)
		scale = scale.Mul(sigmaG)
	}
	return EvaluatePoly(coeffs, alpha), nil
}

// FoldStep transposes f (evaluations on a size-2^bCur extended coset) into
// groups of size `arity = 2^(bCur-bNext)` sharing a target row, folds each
// group with FoldGroup, and returns the next step's 2^bNext evaluations.
func FoldStep(f []core.ExtElement, bCur, bNext int, alpha core.ExtElement) ([]core.ExtElement, error) {
	arity := 1 << (bCur - bNext)
	nNext := 1 << bNext
	if len(f) != arity*nNext {
		return nil, newErr(ErrShape, "fri fold: input length %d does not match arity %d * next size %d", len(f), arity, nNext)
	}

	out := make([]core.ExtElement, nNext)
	shiftInv, err := core.Shift.Inv()
	if err != nil {
		return nil, err
	}

	for g := 0; g < nNext; g++ {
		group := make([]core.ExtElement, arity)
		for k := 0; k < arity; k++ {
			// Transpose: the k-th coset representative of target row g
			// lives at index g + k*nNext in the bit-reversal-free
			// natural evaluation order this implementation uses
			// throughout (NTT/ExtNTT operate on naturally-ordered
			// slices after their own internal bit-reversal).
			group[k] = f[g+k*nNext]
		}
		sigmaG := shiftInv.Exp(uint64(g))
		folded, err := FoldGroup(group, sigmaG, alpha)
		if err != nil {
			return nil, err
		}
		out[g] = folded
	}
	return out, nil
}

// FriProver runs the full FRI folding schedule of spec §4.6.5-§4.6.6.
type FriProver struct {
	Struct *utils.StarkStruct
}

// FoldBits returns the per-step domain bit-size schedule a folding-factor
// list implies, starting from topBits: bits[0] = topBits, bits[i+1] =
// bits[i] - foldingFactors[i].
func FoldBits(topBits int, foldingFactors []int) []int {
	bits := make([]int, len(foldingFactors)+1)
	bits[0] = topBits
	for i, f := range foldingFactors {
		bits[i+1] = bits[i] - f
	}
	return bits
}

// RunFold runs every step of the folding schedule, committing a tree for
// every non-final step (its leaves are the pre-fold transposed groups) and
// returning the sequence of steps plus the final polynomial.
func (fp *FriProver) RunFold(initial []core.ExtElement, transcript *utils.Transcript) ([]FriStep, []core.ExtElement, error) {
	bits := FoldBits(fp.Struct.NBitsExt, fp.Struct.FoldingFactors)

	steps := make([]FriStep, 0, len(fp.Struct.FoldingFactors))
	cur := initial
	for i, foldBits := range fp.Struct.FoldingFactors {
		bCur, bNext := bits[i], bits[i+1]
		arity := 1 << foldBits
		groups := 1 << bNext

		// Commit the pre-fold transposed groups before drawing the fold
		// challenge, per spec's "commit next-step root, absorb root".
		rows := make([][]core.GLElement, groups)
		for g := 0; g < groups; g++ {
			row := make([]core.GLElement, 0, arity*3)
			for k := 0; k < arity; k++ {
				e := cur[g+k*groups]
				row = append(row, e.A0, e.A1, e.A2)
			}
			rows[g] = row
		}
		tree, err := core.NewMerkleTree(core.BackendGoldilocks, rows)
		if err != nil {
			return nil, nil, err
		}
		transcript.SendDigest(tree.Root())
		alpha := transcript.GetExtension()

		next, err := FoldStep(cur, bCur, bNext, alpha)
		if err != nil {
			return nil, nil, err
		}
		steps = append(steps, FriStep{Evals: cur, Tree: tree})
		cur = next
	}

	// Final step: absorb the remaining polynomial directly instead of
	// committing a tree.
	for _, e := range cur {
		transcript.Send(e.A0, e.A1, e.A2)
	}
	return steps, cur, nil
}

// QueryIndices derives nQueries indices in [0, 2^b0) by squeezing the
// given transcript as it stands after the final polynomial was absorbed;
// no separate transcript is forked for the query phase.
func (fp *FriProver) QueryIndices(transcript *utils.Transcript) ([]int, error) {
	return transcript.GetIndices(fp.Struct.NQueries, 1<<fp.Struct.NBitsExt)
}

// AnswerQuery extracts, for one query index, every FRI step's folding
// group (the arity extension-field values) and the
// corresponding Merkle path, folding the query index down the same way
// RunFold folded the evaluations themselves.
func AnswerQuery(steps []FriStep, foldingFactors []int, index int) ([]QueryProof, error) {
	topBits := 0
	if len(steps) > 0 {
		n := len(steps[0].Evals)
		for (1 << topBits) < n {
			topBits++
		}
	}
	bits := FoldBits(topBits, foldingFactors)

	out := make([]QueryProof, 0, len(steps))
	idx := index
	for i, step := range steps {
		arity := 1 << foldingFactors[i]
		groups := 1 << bits[i+1]
		g := idx % groups

		leaves := make([]core.ExtElement, arity)
		for k := 0; k < arity; k++ {
			leaves[k] = step.Evals[g+k*groups]
		}
		proof, err := step.Tree.Proof(g)
		if err != nil {
			return nil, err
		}
		out = append(out, QueryProof{Index: g, FriLeaves: leaves, FriProofs: []*core.MerkleProof{proof}})
		idx = g
	}
	return out, nil
}

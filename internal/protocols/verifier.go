package protocols

import (
	"github.com/vybium/vybium-starks-vm/internal/core"
	"github.com/vybium/vybium-starks-vm/internal/utils"
)

// Verifier checks a Proof against a StarkInfo/ExpressionsBin pair without
// ever touching the witness (spec §4.7). ConstPols is the same
// constant-column source the prover used: this implementation carries no
// separate const-tree commitment (StarkInfo/Proof have no root for one),
// so const values reach the verifier directly rather than through a
// revealed-and-checked Merkle path (see DESIGN.md's Open Questions).
type Verifier struct {
	Info      *StarkInfo
	Bin       *ExpressionsBin
	ConstPols TraceSource
}

// NewVerifier returns a Verifier bound to a fixed air descriptor, bytecode
// blob, and constant-column source.
func NewVerifier(info *StarkInfo, bin *ExpressionsBin, constPols TraceSource) *Verifier {
	return &Verifier{Info: info, Bin: bin, ConstPols: constPols}
}

// Verify replays the Fiat-Shamir transcript from the proof's own committed
// values, re-derives every challenge and query index, checks every
// revealed Merkle path against its claimed root, and re-folds every FRI
// query down to the final polynomial (spec §4.7 steps 1-6). It returns
// nil only when every check passes.
func (v *Verifier) Verify(proof *Proof, publics []core.GLElement) error {
	if err := v.Info.Struct.Validate(); err != nil {
		return err
	}
	if len(proof.Roots) != v.Info.NStages+1 {
		return newErr(ErrShape, "proof has %d roots, want %d (nStages+quotient)", len(proof.Roots), v.Info.NStages+1)
	}
	if len(proof.FriRoots) != len(v.Info.Struct.FoldingFactors) {
		return newErr(ErrShape, "proof has %d fri roots, want %d", len(proof.FriRoots), len(v.Info.Struct.FoldingFactors))
	}

	transcript := utils.NewTranscript()
	transcript.Send(publics...)
	for _, av := range proof.AirValues {
		transcript.Send(av.A0, av.A1, av.A2)
	}
	for _, ag := range proof.AirgroupValues {
		transcript.Send(ag.A0, ag.A1, ag.A2)
	}

	// Step 1: replay S1..Sk, re-deriving each stage challenge. These
	// challenges feed the constraint re-evaluation pass below exactly as
	// they fed the prover's quotient/imPol computation.
	challenges := make([]core.ExtElement, 0, v.Info.NStages)
	for stage := 1; stage <= v.Info.NStages; stage++ {
		transcript.SendDigest(proof.Roots[stage-1])
		if stage < v.Info.NStages {
			challenges = append(challenges, transcript.GetExtension())
		}
	}

	// Step 2: quotient root, opening challenge xi, claimed evaluations.
	transcript.SendDigest(proof.Roots[v.Info.NStages])
	xi := transcript.GetExtension()
	for _, e := range proof.Evals {
		transcript.Send(e.A0, e.A1, e.A2)
	}

	// Step 3: replay every FRI fold-step root and challenge.
	alphas := make([]core.ExtElement, len(v.Info.Struct.FoldingFactors))
	for i := range v.Info.Struct.FoldingFactors {
		transcript.SendDigest(proof.FriRoots[i])
		alphas[i] = transcript.GetExtension()
	}
	for _, e := range proof.FinalPoly {
		transcript.Send(e.A0, e.A1, e.A2)
	}

	// Step 4: re-derive the query indices from the same transcript state
	// the prover used.
	fp := &FriProver{Struct: v.Info.Struct}
	indices, err := fp.QueryIndices(transcript)
	if err != nil {
		return err
	}
	if len(indices) != len(proof.Queries) {
		return newErr(ErrShape, "proof has %d queries, want %d", len(proof.Queries), len(indices))
	}

	bits := FoldBits(v.Info.Struct.NBitsExt, v.Info.Struct.FoldingFactors)
	nExt := 1 << v.Info.Struct.NBitsExt

	qExpr, err := v.Bin.Expr(v.Info.QuotientExprID)
	if err != nil {
		return err
	}
	friExpr, err := v.Bin.Expr(v.Info.FriExprID)
	if err != nil {
		return err
	}
	xDivXSub := BuildXDivXSub(v.Info.Struct.NBitsExt, v.Info.Struct.NBits, v.Info.OpeningPoints, xi)

	// Step 5/6: per query, check every stage's (and every opening frame's)
	// Merkle path, re-fold the FRI chain down to the final polynomial, and
	// tie the revealed data back to the AIR: recombine the quotient's
	// committed chunks and check them against the constraint composition
	// recomputed from the revealed witness values, then check the FRI
	// polynomial's revealed first-step value the same way.
	for qi, idx := range indices {
		q := proof.Queries[qi]
		if err := v.verifyFrame(proof, q.StageLeaves, q.StageProofs, idx); err != nil {
			return err
		}
		frameRows := frameRowsFor(idx, v.Info.OpeningPoints, nExt)
		if len(frameRows) != len(q.FrameLeaves) || len(frameRows) != len(q.FrameProofs) {
			return newErr(ErrShape, "query %d: has %d/%d opening frames, want %d", idx, len(q.FrameLeaves), len(q.FrameProofs), len(frameRows))
		}
		for i, r := range frameRows {
			if err := v.verifyFrame(proof, q.FrameLeaves[i], q.FrameProofs[i], r); err != nil {
				return err
			}
		}
		if err := v.verifyFriChain(proof, q, idx, alphas, bits); err != nil {
			return err
		}

		src := newQueryTraceSource(v.Info, idx, q.StageLeaves, frameRows, q.FrameLeaves)
		params := &RunParams{
			Trace: src, ConstPols: v.ConstPols, Publics: publics, Numbers: v.Bin.Numbers,
			Challenges: challenges, AirValues: proof.AirValues, AirgroupValues: proof.AirgroupValues,
			OpeningPoints: v.Info.OpeningPoints, DomainSize: nExt,
		}

		qVal, err := runExpr(qExpr, params, idx)
		if err != nil {
			return err
		}
		qRecombined := src.quotientAt(idx)
		if !qVal.Equal(qRecombined) {
			return newErr(ErrQuotientMismatch, "query %d: quotient recombined from revealed chunks does not match the constraint composition", idx)
		}

		friParams := &RunParams{
			Trace: src, ConstPols: v.ConstPols, Publics: publics, Numbers: v.Bin.Numbers,
			Challenges: challenges, AirValues: proof.AirValues, AirgroupValues: proof.AirgroupValues,
			EvalValues: proof.Evals, XDivXSub: xDivXSub, OpeningPoints: v.Info.OpeningPoints, DomainSize: nExt,
		}
		friVal, err := runExpr(friExpr, friParams, idx)
		if err != nil {
			return err
		}
		friExpected, err := firstFriValue(proof, q, idx, v.Info.Struct.FoldingFactors, bits)
		if err != nil {
			return err
		}
		if !friVal.Equal(friExpected) {
			return newErr(ErrFriFoldMismatch, "query %d: fri polynomial re-evaluation does not match its revealed first-step value", idx)
		}
	}
	return nil
}

// firstFriValue returns the pre-fold FRI-polynomial value the proof
// revealed for idx: the first fold step's own group entry if there is at
// least one fold step, otherwise the final polynomial directly (spec §4.7
// step 5's "or the final polynomial, if there is no intermediate step").
func firstFriValue(proof *Proof, q QueryProof, idx int, foldingFactors, bits []int) (core.ExtElement, error) {
	if len(foldingFactors) == 0 {
		if idx >= len(proof.FinalPoly) {
			return core.ExtElement{}, newErr(ErrShape, "query %d: final polynomial index out of range", idx)
		}
		return proof.FinalPoly[idx], nil
	}
	arity0 := 1 << foldingFactors[0]
	groups0 := 1 << bits[1]
	k0 := idx / groups0
	if arity0 > len(q.FriLeaves) || k0 >= arity0 {
		return core.ExtElement{}, newErr(ErrShape, "query %d: fri step 0 leaf slice too short", idx)
	}
	return q.FriLeaves[k0], nil
}

// verifyFrame checks one revealed row's leaf slice (every witness stage in
// turn, then the qDeg quotient chunks) against its claimed authentication
// path, the generalization of spec §4.7 step 1's per-query check to every
// row a windowed operand can touch (step 4).
func (v *Verifier) verifyFrame(proof *Proof, leaves []core.GLElement, proofs []*core.MerkleProof, row int) error {
	offset := 0
	for stage := 1; stage <= v.Info.NStages; stage++ {
		width := v.Info.StageWidth(stage)
		if offset+width > len(leaves) {
			return newErr(ErrShape, "row %d: stage %d leaf slice out of range", row, stage)
		}
		leaf := leaves[offset : offset+width]
		offset += width
		proofIdx := stage - 1
		if proofIdx >= len(proofs) {
			return newErr(ErrShape, "row %d: missing stage %d merkle path", row, stage)
		}
		ok, err := core.VerifyMerkleProof(v.Info.Struct.Backend, proof.Roots[stage-1], leaf, proofs[proofIdx])
		if err != nil {
			return err
		}
		if !ok {
			return newErr(ErrMerkleProofInvalid, "row %d: stage %d merkle proof failed", row, stage)
		}
	}

	qWidth := qDegOf(v.Info) * 3
	if offset+qWidth > len(leaves) {
		return newErr(ErrShape, "row %d: quotient leaf slice out of range", row)
	}
	leaf := leaves[offset : offset+qWidth]
	proofIdx := v.Info.NStages
	if proofIdx >= len(proofs) {
		return newErr(ErrShape, "row %d: missing quotient merkle path", row)
	}
	ok, err := core.VerifyMerkleProof(v.Info.Struct.Backend, proof.Roots[v.Info.NStages], leaf, proofs[proofIdx])
	if err != nil {
		return err
	}
	if !ok {
		return newErr(ErrMerkleProofInvalid, "row %d: quotient merkle proof failed", row)
	}
	return nil
}

// queryTraceSource presents one query's revealed leaves as a TraceSource
// keyed by absolute extended-domain row, letting the verifier re-run
// CalculateExpression's machinery over exactly the data the proof
// revealed (spec §4.7 step 4). A lookup for StarkInfo.QuotientExprID
// recombines that row's revealed quotient chunks instead of reading a
// PolMap column, mirroring how the prover's columnSet stores the
// recombined quotient under the same id.
type queryTraceSource struct {
	info      *StarkInfo
	rowLeaves map[int][]core.GLElement
}

func newQueryTraceSource(info *StarkInfo, idx int, stageLeaves []core.GLElement, frameRows []int, frameLeaves [][]core.GLElement) *queryTraceSource {
	rows := map[int][]core.GLElement{idx: stageLeaves}
	for i, r := range frameRows {
		if i < len(frameLeaves) {
			rows[r] = frameLeaves[i]
		}
	}
	return &queryTraceSource{info: info, rowLeaves: rows}
}

func (qs *queryTraceSource) Base(colID, row int) core.GLElement {
	if colID == qs.info.QuotientExprID {
		return qs.quotientAt(row).A0
	}
	_, offset, dim, ok := qs.info.ColumnOffset(colID)
	leaves := qs.rowLeaves[row]
	if !ok || dim != 1 || offset >= len(leaves) {
		return core.GLZero
	}
	return leaves[offset]
}

func (qs *queryTraceSource) Ext(colID, row int) core.ExtElement {
	if colID == qs.info.QuotientExprID {
		return qs.quotientAt(row)
	}
	_, offset, dim, ok := qs.info.ColumnOffset(colID)
	leaves := qs.rowLeaves[row]
	if !ok || dim != 3 || offset+2 >= len(leaves) {
		return core.ExtZero
	}
	return core.NewExt(leaves[offset], leaves[offset+1], leaves[offset+2])
}

func (qs *queryTraceSource) Dim(colID int) int {
	if colID == qs.info.QuotientExprID {
		return 3
	}
	_, _, dim, _ := qs.info.ColumnOffset(colID)
	return dim
}

// quotientAt recombines row's revealed quotient chunks into the single
// value q(x_row) = sum_p x_row^(p*n) * Q_p(x_row) (spec §4.7 step 4's
// "recombine q-chunks").
func (qs *queryTraceSource) quotientAt(row int) core.ExtElement {
	leaves := qs.rowLeaves[row]
	qOffset := qs.info.TotalStageWidth()
	n := 1 << qs.info.Struct.NBits
	xBase := core.Shift.Mul(core.RootOfUnity(qs.info.Struct.NBitsExt).Exp(uint64(row)))
	xPowN := xBase.Exp(uint64(n))

	acc := core.ExtZero
	xp := core.GLOne
	for p := 0; p < qDegOf(qs.info); p++ {
		o := qOffset + p*3
		if o+2 >= len(leaves) {
			break
		}
		chunk := core.NewExt(leaves[o], leaves[o+1], leaves[o+2])
		acc = acc.Add(chunk.MulBase(xp))
		xp = xp.Mul(xPowN)
	}
	return acc
}

// verifyFriChain checks every fold step's Merkle path and that folding the
// revealed group at each step produces the exact value occupying the
// claimed position in the next step's revealed group (or, for the last
// step, in the proof's final polynomial) — the continuity check that
// makes FRI sound (spec §4.7 step 6).
func (v *Verifier) verifyFriChain(proof *Proof, q QueryProof, idx int, alphas []core.ExtElement, bits []int) error {
	foldingFactors := v.Info.Struct.FoldingFactors
	shiftInv, err := core.Shift.Inv()
	if err != nil {
		return err
	}

	pos := 0
	cur := idx
	var prevFolded core.ExtElement
	haveFolded := false
	for i, factor := range foldingFactors {
		arity := 1 << factor
		groups := 1 << bits[i+1]
		g := cur % groups
		k := cur / groups

		if pos+arity > len(q.FriLeaves) {
			return newErr(ErrShape, "query %d: fri step %d leaf slice out of range", idx, i)
		}
		group := q.FriLeaves[pos : pos+arity]
		pos += arity

		if i >= len(q.FriProofs) {
			return newErr(ErrShape, "query %d: missing fri step %d merkle path", idx, i)
		}
		leafRow := make([]core.GLElement, 0, arity*3)
		for _, e := range group {
			leafRow = append(leafRow, e.A0, e.A1, e.A2)
		}
		ok, err := core.VerifyMerkleProof(core.BackendGoldilocks, proof.FriRoots[i], leafRow, q.FriProofs[i])
		if err != nil {
			return err
		}
		if !ok {
			return newErr(ErrMerkleProofInvalid, "query %d: fri step %d merkle proof failed", idx, i)
		}

		if haveFolded {
			if !group[k].Equal(prevFolded) {
				return newErr(ErrFriFoldMismatch, "query %d: fri step %d group entry %d does not match previous fold", idx, i, k)
			}
		}

		sigmaG := shiftInv.Exp(uint64(g))
		folded, err := FoldGroup(group, sigmaG, alphas[i])
		if err != nil {
			return err
		}
		prevFolded, haveFolded = folded, true
		cur = g
	}

	if cur >= len(proof.FinalPoly) {
		return newErr(ErrShape, "query %d: final polynomial index %d out of range (len %d)", idx, cur, len(proof.FinalPoly))
	}
	if !prevFolded.Equal(proof.FinalPoly[cur]) {
		return newErr(ErrFriFoldMismatch, "query %d: last fold does not match final polynomial at index %d", idx, cur)
	}
	return nil
}

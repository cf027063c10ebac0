package protocols

import (
	"github.com/vybium/vybium-starks-vm/internal/core"
	"github.com/vybium/vybium-starks-vm/internal/utils"
)

// Witness supplies the externally-generated (non-intermediate) committed
// column values over the base trace domain. Intermediate (imPol) columns
// are instead computed in-process by the expression VM from earlier
// columns, per spec §4.6.2.
type Witness interface {
	Column(polID int) []core.GLElement
}

// Prover runs the Init -> S1..Sk -> SQ -> Sxi -> SF state machine of spec
// §4.6 for one StarkInfo-described air.
type Prover struct {
	Info      *StarkInfo
	Bin       *ExpressionsBin
	ConstPols TraceSource
}

// NewProver returns a Prover bound to a fixed air descriptor, bytecode
// blob, and constant-column source.
func NewProver(info *StarkInfo, bin *ExpressionsBin, constPols TraceSource) *Prover {
	return &Prover{Info: info, Bin: bin, ConstPols: constPols}
}

// columnSet holds every committed/intermediate column in two forms: the
// pre-LDE base-domain values (length n, what later stages' imPol
// expressions must read to see the actual trace) and the post-LDE
// extended-domain values (length nExt, what the quotient, opening, and
// FRI stages read). Columns are keyed by pmKey: a non-intermediate
// PolMap entry's position, or an intermediate entry's expression id.
type columnSet struct {
	preBase map[int][]core.GLElement
	preExt  map[int][]core.ExtElement
	base    map[int][]core.GLElement
	ext     map[int][]core.ExtElement
	dim     map[int]int
}

func newColumnSet() *columnSet {
	return &columnSet{
		preBase: map[int][]core.GLElement{}, preExt: map[int][]core.ExtElement{},
		base: map[int][]core.GLElement{}, ext: map[int][]core.ExtElement{},
		dim: map[int]int{},
	}
}

// baseDomainView presents a columnSet's pre-LDE values, the TraceSource
// imPol expressions in later stages read (spec §4.6.2: "sees the actual
// trace, not the extended evaluations").
type baseDomainView struct{ cs *columnSet }

func (v *baseDomainView) Base(colID, row int) core.GLElement { return v.cs.preBase[colID][row] }
func (v *baseDomainView) Ext(colID, row int) core.ExtElement { return v.cs.preExt[colID][row] }
func (v *baseDomainView) Dim(colID int) int                  { return v.cs.dim[colID] }

// extDomainView presents a columnSet's post-LDE extended-domain values,
// the TraceSource the quotient, opening, and FRI stages read.
type extDomainView struct{ cs *columnSet }

func (v *extDomainView) Base(colID, row int) core.GLElement { return v.cs.base[colID][row] }
func (v *extDomainView) Ext(colID, row int) core.ExtElement { return v.cs.ext[colID][row] }
func (v *extDomainView) Dim(colID int) int                  { return v.cs.dim[colID] }

// Prove produces a complete Proof for one execution of this air: it
// commits every witness/intermediate stage, the quotient, draws the
// opening challenge, evaluates every column there, then runs FRI over the
// resulting composition polynomial (spec §4.6.1-4.6.7).
func (pr *Prover) Prove(witness Witness, publics []core.GLElement, airValues, airgroupValues []core.ExtElement) (*Proof, error) {
	if err := pr.Info.Struct.Validate(); err != nil {
		return nil, err
	}
	n := 1 << pr.Info.Struct.NBits
	nExt := 1 << pr.Info.Struct.NBitsExt
	blowup := nExt / n

	transcript := utils.NewTranscript()
	transcript.Send(publics...)
	for _, v := range airValues {
		transcript.Send(v.A0, v.A1, v.A2)
	}
	for _, v := range airgroupValues {
		transcript.Send(v.A0, v.A1, v.A2)
	}

	cols := newColumnSet()
	proof := &Proof{AirValues: airValues, AirgroupValues: airgroupValues}
	challenges := make([]core.ExtElement, 0, pr.Info.NStages)
	var stageTrees []*core.MerkleTree
	var stageExtRows [][][]core.GLElement

	// S1..Sk: commit every witness/intermediate stage in turn, drawing a
	// fresh challenge after every stage but the last (spec §4.6.2).
	for stage := 1; stage <= pr.Info.NStages; stage++ {
		entries := entriesForStage(pr.Info, stage)
		tree, rows, err := pr.commitStage(entries, witness, cols, publics, airValues, challenges, airgroupValues, n, nExt, blowup)
		if err != nil {
			return nil, err
		}
		stageTrees = append(stageTrees, tree)
		stageExtRows = append(stageExtRows, rows)
		proof.Roots = append(proof.Roots, tree.Root())
		transcript.SendDigest(tree.Root())

		if stage < pr.Info.NStages {
			challenges = append(challenges, transcript.GetExtension())
		}
	}

	// SQ: evaluate the quotient expression over the extended domain and
	// commit it as its own stage (spec §4.6.3).
	qExpr, err := pr.Bin.Expr(pr.Info.QuotientExprID)
	if err != nil {
		return nil, err
	}
	qParams := &RunParams{
		Trace: &extDomainView{cols}, ConstPols: pr.ConstPols, Publics: publics, Numbers: pr.Bin.Numbers,
		AirValues: airValues, Challenges: challenges, AirgroupValues: airgroupValues,
		OpeningPoints: pr.Info.OpeningPoints, DomainSize: nExt,
	}
	qDest := &Dest{Expr: qExpr, Store: StorePerRow, ExtOut: make([]core.ExtElement, nExt)}
	if qExpr.DestDim == 1 {
		qDest.ExtOut = nil
		qDest.BaseOut = make([]core.GLElement, nExt)
	}
	if err := CalculateExpression(qDest, qParams); err != nil {
		return nil, err
	}
	var qEvals []core.ExtElement
	if qExpr.DestDim == 3 {
		qEvals = qDest.ExtOut
	} else {
		qEvals = make([]core.ExtElement, nExt)
		for i, v := range qDest.BaseOut {
			qEvals[i] = core.FromBase(v)
		}
	}
	qChunks, err := chunkQuotient(qEvals, qDegOf(pr.Info), n, nExt)
	if err != nil {
		return nil, err
	}
	qRows := make([][]core.GLElement, nExt)
	for i := range qRows {
		row := make([]core.GLElement, 0, len(qChunks)*3)
		for _, chunk := range qChunks {
			row = append(row, chunk[i].A0, chunk[i].A1, chunk[i].A2)
		}
		qRows[i] = row
	}
	qTree, err := core.NewMerkleTree(pr.Info.Struct.Backend, qRows)
	if err != nil {
		return nil, err
	}
	proof.Roots = append(proof.Roots, qTree.Root())
	transcript.SendDigest(qTree.Root())
	cols.ext[pr.Info.QuotientExprID] = qEvals
	cols.dim[pr.Info.QuotientExprID] = 3

	// Sxi: draw the opening challenge and evaluate every committed column
	// (plus the quotient) at xi * omega^o for every offset o in
	// StarkInfo.OpeningPoints (spec §4.6.4).
	xi := transcript.GetExtension()
	for _, ev := range pr.Info.EvMap {
		evals := cols.ext[ev.PolID]
		if cols.dim[ev.PolID] == 1 {
			evals = make([]core.ExtElement, len(cols.base[ev.PolID]))
			for i, v := range cols.base[ev.PolID] {
				evals[i] = core.FromBase(v)
			}
		}
		coeffs, err := CoeffsFromCosetEvals(evals)
		if err != nil {
			return nil, err
		}
		o := pr.Info.OpeningPoints[ev.Pos]
		shift := uint64(((o % n) + n) % n)
		point := xi.Mul(core.FromBase(core.RootOfUnity(pr.Info.Struct.NBits).Exp(shift)))
		proof.Evals = append(proof.Evals, EvaluatePoly(coeffs, point))
	}
	for _, e := range proof.Evals {
		transcript.Send(e.A0, e.A1, e.A2)
	}

	// SF: evaluate the FRI polynomial over the extended domain and fold.
	xDivXSub := BuildXDivXSub(pr.Info.Struct.NBitsExt, pr.Info.Struct.NBits, pr.Info.OpeningPoints, xi)
	friExpr, err := pr.Bin.Expr(pr.Info.FriExprID)
	if err != nil {
		return nil, err
	}
	friParams := &RunParams{
		Trace: &extDomainView{cols}, ConstPols: pr.ConstPols, Publics: publics, Numbers: pr.Bin.Numbers,
		AirValues: airValues, Challenges: challenges, AirgroupValues: airgroupValues,
		EvalValues: proof.Evals, XDivXSub: xDivXSub, OpeningPoints: pr.Info.OpeningPoints, DomainSize: nExt,
	}
	friDest := &Dest{Expr: friExpr, Store: StorePerRow, ExtOut: make([]core.ExtElement, nExt)}
	if err := CalculateExpression(friDest, friParams); err != nil {
		return nil, err
	}

	fp := &FriProver{Struct: pr.Info.Struct}
	steps, finalPoly, err := fp.RunFold(friDest.ExtOut, transcript)
	if err != nil {
		return nil, err
	}
	proof.FinalPoly = finalPoly
	for _, step := range steps {
		if step.Tree != nil {
			proof.FriRoots = append(proof.FriRoots, step.Tree.Root())
		}
	}

	indices, err := fp.QueryIndices(transcript)
	if err != nil {
		return nil, err
	}
	for _, idx := range indices {
		q := QueryProof{Index: idx}
		leaves, proofs, err := revealRow(idx, stageTrees, stageExtRows, qTree, qRows, nExt)
		if err != nil {
			return nil, err
		}
		q.StageLeaves, q.StageProofs = leaves, proofs

		// Reveal every other row the quotient/FRI expressions' windowed
		// operands can read at this query (spec §4.7 step 4's "synthetic
		// one-row trace" needs the whole frame, not just row idx).
		for _, r := range frameRowsFor(idx, pr.Info.OpeningPoints, nExt) {
			frame, frameProofs, err := revealRow(r, stageTrees, stageExtRows, qTree, qRows, nExt)
			if err != nil {
				return nil, err
			}
			q.FrameLeaves = append(q.FrameLeaves, frame)
			q.FrameProofs = append(q.FrameProofs, frameProofs)
		}

		friQueries, err := AnswerQuery(steps, pr.Info.Struct.FoldingFactors, idx)
		if err != nil {
			return nil, err
		}
		for _, fq := range friQueries {
			q.FriLeaves = append(q.FriLeaves, fq.FriLeaves...)
			q.FriProofs = append(q.FriProofs, fq.FriProofs...)
		}
		proof.Queries = append(proof.Queries, q)
	}

	return proof, nil
}

// commitStage computes every PolMap entry belonging to stage (pulling
// non-intermediate columns from witness, evaluating intermediate ones
// through the expression VM), extends each to the extended domain, and
// commits the stage's rows as one Merkle tree.
func (pr *Prover) commitStage(entries []PolMapEntry, witness Witness, cols *columnSet, publics []core.GLElement, airValues, challenges, airgroupValues []core.ExtElement, n, nExt, blowup int) (*core.MerkleTree, [][]core.GLElement, error) {
	extRows := make([][]core.GLElement, nExt)
	for i := range extRows {
		extRows[i] = make([]core.GLElement, 0, len(entries)*3)
	}

	for _, e := range entries {
		colID := pmKey(e)
		if e.ImPol {
			expr, err := pr.Bin.Expr(e.ExprID)
			if err != nil {
				return nil, nil, err
			}
			params := &RunParams{
				Trace: &baseDomainView{cols}, ConstPols: pr.ConstPols, Publics: publics, Numbers: pr.Bin.Numbers,
				AirValues: airValues, Challenges: challenges, AirgroupValues: airgroupValues,
				OpeningPoints: pr.Info.OpeningPoints, DomainSize: n,
			}
			dest := &Dest{Expr: expr, Store: StorePerRow}
			if e.Dim == 3 {
				dest.ExtOut = make([]core.ExtElement, n)
			} else {
				dest.BaseOut = make([]core.GLElement, n)
			}
			if err := CalculateExpression(dest, params); err != nil {
				return nil, nil, err
			}
			cols.dim[colID] = e.Dim
			if e.Dim == 3 {
				cols.preExt[colID] = dest.ExtOut
				extVals, err := ExtLDE(dest.ExtOut, blowup)
				if err != nil {
					return nil, nil, err
				}
				cols.ext[colID] = extVals
				appendExtToRows(extRows, extVals)
			} else {
				cols.preBase[colID] = dest.BaseOut
				extVals, err := core.LDE(dest.BaseOut, blowup)
				if err != nil {
					return nil, nil, err
				}
				cols.base[colID] = extVals
				appendBaseToRows(extRows, extVals)
			}
		} else if e.Dim == 3 {
			// An extension-dim witness column is 3n flattened limbs,
			// interleaved A0,A1,A2 per row.
			flat := witness.Column(colID)
			if len(flat) != 3*len(extRows)/blowup {
				return nil, nil, newErr(ErrShape, "witness column %d has %d limbs, want %d", colID, len(flat), 3*len(extRows)/blowup)
			}
			preVals := make([]core.ExtElement, len(flat)/3)
			for i := range preVals {
				preVals[i] = core.NewExt(flat[3*i], flat[3*i+1], flat[3*i+2])
			}
			cols.preExt[colID] = preVals
			cols.dim[colID] = 3
			extVals, err := ExtLDE(preVals, blowup)
			if err != nil {
				return nil, nil, err
			}
			cols.ext[colID] = extVals
			appendExtToRows(extRows, extVals)
		} else {
			baseVals := witness.Column(colID)
			cols.preBase[colID] = baseVals
			cols.dim[colID] = e.Dim
			extVals, err := core.LDE(baseVals, blowup)
			if err != nil {
				return nil, nil, err
			}
			cols.base[colID] = extVals
			appendBaseToRows(extRows, extVals)
		}
	}

	tree, err := core.NewMerkleTree(pr.Info.Struct.Backend, extRows)
	if err != nil {
		return nil, nil, err
	}
	return tree, extRows, nil
}

func appendBaseToRows(rows [][]core.GLElement, vals []core.GLElement) {
	for i, v := range vals {
		rows[i] = append(rows[i], v)
	}
}

func appendExtToRows(rows [][]core.GLElement, vals []core.ExtElement) {
	for i, v := range vals {
		rows[i] = append(rows[i], v.A0, v.A1, v.A2)
	}
}

// entriesForStage returns every PolMap entry belonging to stage, in
// PolMap order.
func entriesForStage(info *StarkInfo, stage int) []PolMapEntry {
	var out []PolMapEntry
	for _, e := range info.PolMap {
		if e.Stage == stage {
			out = append(out, e)
		}
	}
	return out
}

// pmKey is the columnSet key for a PolMap entry: its Pos field, or its
// ExprID for an intermediate (imPol) entry.
func pmKey(e PolMapEntry) int {
	if e.ImPol {
		return e.ExprID
	}
	return e.Pos
}

// qDegOf returns info.QDeg, defaulting to 1 (an unchunked quotient) for a
// StarkInfo that never set it.
func qDegOf(info *StarkInfo) int {
	if info.QDeg <= 0 {
		return 1
	}
	return info.QDeg
}

// chunkQuotient splits the quotient's nExt coset evaluations into qDeg
// degree-<n polynomials Q_p such that q(x) = sum_p x^(p*n) * Q_p(x), each
// re-expressed as its own coset evaluation over the full extended domain
// so it can be committed and revealed exactly like any other column (spec
// §4.6.1).
//
// The iNTT of q's coset evaluations yields coefficients of q(shift*x); at
// index p*n+k that coefficient equals Q_p's true coefficient k scaled by
// shift^(p*n+k). Scaling the whole p-th block by shift^(-p*n) leaves
// exactly Q_p's coefficient k scaled by shift^k — already in the form
// extend_pol's "scale coefficient j by shift^j, zero-pad, forward NTT"
// step expects, so zero-padding and a forward NTT alone recovers Q_p's own
// coset evaluation.
func chunkQuotient(qEvals []core.ExtElement, qDeg, n, nExt int) ([][]core.ExtElement, error) {
	if qDeg*n != nExt {
		return nil, newErr(ErrShape, "quotient chunking: qDeg %d * n %d != nExt %d", qDeg, n, nExt)
	}
	raw := make([]core.ExtElement, nExt)
	copy(raw, qEvals)
	if err := core.ExtINTT(raw); err != nil {
		return nil, err
	}

	shiftInv, err := core.Shift.Inv()
	if err != nil {
		return nil, err
	}

	chunks := make([][]core.ExtElement, qDeg)
	for p := 0; p < qDeg; p++ {
		scale := shiftInv.Exp(uint64(p * n))
		padded := make([]core.ExtElement, nExt)
		for k := 0; k < n; k++ {
			padded[k] = raw[p*n+k].MulBase(scale)
		}
		if err := core.ExtNTT(padded); err != nil {
			return nil, err
		}
		chunks[p] = padded
	}
	return chunks, nil
}

// revealRow gathers every committed tree's leaf and authentication path at
// row, in the same stage-then-quotient order verifyFrame expects.
func revealRow(row int, stageTrees []*core.MerkleTree, stageExtRows [][][]core.GLElement, qTree *core.MerkleTree, qRows [][]core.GLElement, nExt int) ([]core.GLElement, []*core.MerkleProof, error) {
	var leaves []core.GLElement
	var proofs []*core.MerkleProof
	for s, tree := range stageTrees {
		leafIdx := row % len(stageExtRows[s])
		leaf, err := tree.Proof(leafIdx)
		if err != nil {
			return nil, nil, err
		}
		leaves = append(leaves, stageExtRows[s][leafIdx]...)
		proofs = append(proofs, leaf)
	}
	qLeaf, err := qTree.Proof(row % nExt)
	if err != nil {
		return nil, nil, err
	}
	leaves = append(leaves, qRows[row%nExt]...)
	proofs = append(proofs, qLeaf)
	return leaves, proofs, nil
}

// frameRowsFor returns, in a fixed deterministic order, every absolute row
// besides idx itself that idx's opening offsets touch — the extra rows the
// verifier's constraint re-evaluation needs revealed alongside the query's
// own leaves (spec §4.7 step 4).
func frameRowsFor(idx int, openingPoints []int, domainSize int) []int {
	seen := map[int]bool{idx: true}
	var rows []int
	for oi := range openingPoints {
		r := resolveRow(idx, openingPoints, oi, domainSize)
		if seen[r] {
			continue
		}
		seen[r] = true
		rows = append(rows, r)
	}
	return rows
}

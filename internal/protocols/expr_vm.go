package protocols

import (
	"github.com/vybium/vybium-starks-vm/internal/core"
)

// TraceSource is how the VM reads committed/constant column values. Row is
// already resolved modulo the domain size; colID indexes into the
// corresponding StarkInfo.PolMap-ordered committed or constant column list.
type TraceSource interface {
	Base(colID, row int) core.GLElement
	Ext(colID, row int) core.ExtElement
	// Dim reports whether column colID is base (1) or extension (3).
	Dim(colID int) int
}

// RunParams bundles every run-time value family the VM's opcode pools can
// draw from (spec §4.5): committed/const columns (via Trace/ConstPols),
// publics, challenges, airgroup/air values, proof values and eval values.
// It also carries the xDivXSub table, which no opcode pool reads.
type RunParams struct {
	Trace     TraceSource
	ConstPols TraceSource

	Publics        []core.GLElement
	Numbers        []uint64
	AirValues      []core.ExtElement
	Challenges     []core.ExtElement
	AirgroupValues []core.ExtElement
	ProofValues    []core.ExtElement
	EvalValues     []core.ExtElement

	// XDivXSub[o] is a function of row producing x_i/(x_i-ξ_o) for
	// opening offset index o (spec §4.6.4); only populated when the
	// expression being evaluated is the FRI polynomial expression.
	XDivXSub []func(row int) core.ExtElement

	// OpeningPoints are the row-offsets (multiplied by the domain's
	// coset stride) a committed-column reference selects among; operand
	// indices into PoolCommittedBase/Ext/ConstCol encode
	// usedIndex*len(OpeningPoints)+openingIdx.
	OpeningPoints []int
	// DomainSize is the number of rows the expression is evaluated over.
	DomainSize int
}

// StoreMode names one of the VM's three destination modes (spec §4.5).
// CalculateExpressions does not read Dest.Store: every Dest receives one
// result per row in BaseOut or ExtOut, whatever its mode.
type StoreMode int

const (
	// StoreColumn names a trace-section column destination.
	StoreColumn StoreMode = iota
	// StoreFlatBuffer writes into a flat row/dim-indexed buffer (used for
	// the quotient and FRI polynomials).
	StoreFlatBuffer
	// StorePerRow produces one result per row in a plain slice, the mode
	// calculateExpressions uses for the general case.
	StorePerRow
)

// Dest describes one evaluation target. Each Dest passed to a
// CalculateExpressions call is evaluated on its own; no row-window state
// is shared between them.
type Dest struct {
	Expr    *Expression
	Store   StoreMode
	Inverse bool

	// BaseOut/ExtOut receive the per-row results; exactly one is used,
	// selected by Expr.DestDim.
	BaseOut []core.GLElement
	ExtOut  []core.ExtElement
}

// CalculateExpressions evaluates every Dest's expression at every row of
// params.DomainSize, one Dest after another; every Dest resolves its own
// operands row by row, with nothing shared between dests. When a Dest
// requests Inverse, its full
// output column is passed through BatchInverse before returning.
func CalculateExpressions(dests []*Dest, params *RunParams) error {
	for _, d := range dests {
		if err := evaluateOneExpression(d, params); err != nil {
			return err
		}
	}
	for _, d := range dests {
		if !d.Inverse {
			continue
		}
		if d.Expr.DestDim == 3 {
			return newErrExpr(ErrBytecode, d.Expr.ID, "inverse destination must be base-dimensional")
		}
		inv, err := core.BatchInverse(d.BaseOut)
		if err != nil {
			return wrapErr(ErrInverseOfZero, err, "batch_inverse over dest for expr %d", d.Expr.ID)
		}
		d.BaseOut = inv
	}
	return nil
}

// CalculateExpression evaluates a single expression at every row, the
// single-Dest convenience entrypoint spec §4.5 names alongside
// CalculateExpressions.
func CalculateExpression(d *Dest, params *RunParams) error {
	return CalculateExpressions([]*Dest{d}, params)
}

func evaluateOneExpression(d *Dest, params *RunParams) error {
	expr := d.Expr
	if expr.DestDim == 3 && d.ExtOut == nil {
		return newErrExpr(ErrShape, expr.ID, "extension-dimensional expression requires ExtOut")
	}
	if expr.DestDim == 1 && d.BaseOut == nil {
		return newErrExpr(ErrShape, expr.ID, "base-dimensional expression requires BaseOut")
	}

	for row := 0; row < params.DomainSize; row++ {
		val, err := runExpr(expr, params, row)
		if err != nil {
			return err
		}
		if expr.DestDim == 3 {
			d.ExtOut[row] = val
		} else {
			d.BaseOut[row] = val.A0
		}
	}
	return nil
}

// vmScratch holds the two temporary scratch arrays an expression's
// instruction stream reads and writes.
type vmScratch struct {
	base []core.GLElement
	ext  []core.ExtElement
}

func runExpr(expr *Expression, params *RunParams, row int) (core.ExtElement, error) {
	s := vmScratch{
		base: make([]core.GLElement, expr.NumBaseTemps),
		ext:  make([]core.ExtElement, expr.NumExtTemps),
	}

	for ip, instr := range expr.Instructions {
		opc, ok := Decode(instr.OpcodeID)
		if !ok {
			return core.ExtElement{}, newErrExpr(ErrBytecode, expr.ID, "unknown opcode %d at instruction %d", instr.OpcodeID, ip)
		}

		s0, err := resolveOperand(opc.Src0Pool, instr.Src0Idx, expr, params, row, s)
		if err != nil {
			return core.ExtElement{}, err
		}

		var result core.ExtElement
		if opc.Op == OpCopy {
			result = s0
		} else {
			s1, err := resolveOperand(opc.Src1Pool, instr.Src1Idx, expr, params, row, s)
			if err != nil {
				return core.ExtElement{}, err
			}
			switch opc.Op {
			case OpAdd:
				result = s0.Add(s1)
			case OpSub:
				result = s0.Sub(s1)
			case OpMul:
				result = s0.Mul(s1)
			default:
				return core.ExtElement{}, newErrExpr(ErrBytecode, expr.ID, "unknown op %d at instruction %d", opc.Op, ip)
			}
		}

		switch opc.DstPool {
		case PoolBaseTemp:
			if int(instr.DstIdx) >= len(s.base) {
				return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "base temp index %d out of range (have %d)", instr.DstIdx, len(s.base))
			}
			s.base[instr.DstIdx] = result.A0
		case PoolExtTemp:
			if int(instr.DstIdx) >= len(s.ext) {
				return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "ext temp index %d out of range (have %d)", instr.DstIdx, len(s.ext))
			}
			s.ext[instr.DstIdx] = result
		default:
			return core.ExtElement{}, newErrExpr(ErrBytecode, expr.ID, "invalid destination pool %d at instruction %d", opc.DstPool, ip)
		}
	}

	if expr.DestDim == 3 {
		if len(expr.Instructions) == 0 || Table[expr.Instructions[len(expr.Instructions)-1].OpcodeID].DstPool != PoolExtTemp {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "extension expression must end writing an ext temp")
		}
		return s.ext[expr.Instructions[len(expr.Instructions)-1].DstIdx], nil
	}
	if len(expr.Instructions) == 0 {
		return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "expression has no instructions")
	}
	last := expr.Instructions[len(expr.Instructions)-1]
	return core.FromBase(s.base[last.DstIdx]), nil
}

func resolveOperand(pool Pool, idx uint16, expr *Expression, params *RunParams, row int, s vmScratch) (core.ExtElement, error) {
	numOpenings := len(params.OpeningPoints)
	if numOpenings == 0 {
		numOpenings = 1
	}

	switch pool {
	case PoolCommittedBase:
		usedIdx, openingIdx := int(idx)/numOpenings, int(idx)%numOpenings
		if usedIdx >= len(expr.UsedCommittedCols) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "committed column operand %d out of range", usedIdx)
		}
		colID := expr.UsedCommittedCols[usedIdx]
		r := resolveRow(row, params.OpeningPoints, openingIdx, params.DomainSize)
		return core.FromBase(params.Trace.Base(colID, r)), nil
	case PoolCommittedExt:
		usedIdx, openingIdx := int(idx)/numOpenings, int(idx)%numOpenings
		if usedIdx >= len(expr.UsedCommittedCols) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "committed column operand %d out of range", usedIdx)
		}
		colID := expr.UsedCommittedCols[usedIdx]
		r := resolveRow(row, params.OpeningPoints, openingIdx, params.DomainSize)
		return params.Trace.Ext(colID, r), nil
	case PoolConstCol:
		usedIdx, openingIdx := int(idx)/numOpenings, int(idx)%numOpenings
		if usedIdx >= len(expr.UsedConstCols) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "const column operand %d out of range", usedIdx)
		}
		colID := expr.UsedConstCols[usedIdx]
		r := resolveRow(row, params.OpeningPoints, openingIdx, params.DomainSize)
		return core.FromBase(params.ConstPols.Base(colID, r)), nil
	case PoolPublic:
		if int(idx) >= len(params.Publics) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "public operand %d out of range", idx)
		}
		return core.FromBase(params.Publics[idx]), nil
	case PoolNumber:
		if int(idx) >= len(params.Numbers) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "number operand %d out of range", idx)
		}
		return core.FromBase(core.NewGL(params.Numbers[idx])), nil
	case PoolAirValue:
		if int(idx) >= len(params.AirValues) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "air-value operand %d out of range", idx)
		}
		return params.AirValues[idx], nil
	case PoolChallenge:
		if int(idx) >= len(params.Challenges) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "challenge operand %d out of range", idx)
		}
		return params.Challenges[idx], nil
	case PoolAirgroupValue:
		if int(idx) >= len(params.AirgroupValues) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "airgroup-value operand %d out of range", idx)
		}
		return params.AirgroupValues[idx], nil
	case PoolProofValue:
		if int(idx) >= len(params.ProofValues) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "proof-value operand %d out of range", idx)
		}
		return params.ProofValues[idx], nil
	case PoolEval:
		if int(idx) >= len(params.EvalValues) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "eval operand %d out of range", idx)
		}
		return params.EvalValues[idx], nil
	case PoolBaseTemp:
		if int(idx) >= len(s.base) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "base temp read %d out of range", idx)
		}
		return core.FromBase(s.base[idx]), nil
	case PoolExtTemp:
		if int(idx) >= len(s.ext) {
			return core.ExtElement{}, newErrExpr(ErrShape, expr.ID, "ext temp read %d out of range", idx)
		}
		return s.ext[idx], nil
	default:
		return core.ExtElement{}, newErrExpr(ErrBytecode, expr.ID, "invalid source pool %d", pool)
	}
}

// resolveRow maps a base row and an opening-point index to the absolute
// row the window loader must fetch, wrapping modulo the domain (spec
// §4.5's "value at row + o·β (mod domain size)").
func resolveRow(row int, openingPoints []int, openingIdx, domainSize int) int {
	if openingIdx >= len(openingPoints) {
		return row % domainSize
	}
	o := openingPoints[openingIdx]
	r := (row + o) % domainSize
	if r < 0 {
		r += domainSize
	}
	return r
}

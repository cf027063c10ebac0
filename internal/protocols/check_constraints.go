package protocols

import "fmt"

// ConstraintFailure is one row where a debug-mode constraint evaluated
// non-zero (spec §7: "ConstraintViolation ... carries up to ten
// offending row indices with their computed values").
type ConstraintFailure struct {
	ConstraintIndex int // index into ExpressionsBin.Constraints
	ExprID          int
	Row             int
	Value           string // the computed non-zero value, core.ExtElement.String() form
	Line            string
}

// ConstraintCheckContext bundles the bytecode (for its debug-only
// Constraints list) with the RunParams a constraint's expression needs
// to evaluate, over whichever domain params.DomainSize names.
type ConstraintCheckContext struct {
	Bin    *ExpressionsBin
	Params *RunParams
}

// CheckConstraints evaluates every ConstraintHeader in ctx.Bin over the
// row set its own Boundary names (everyRow, firstRow, lastRow, or the
// explicit [Min,Max] range of everyFrame) and returns one ConstraintFailure
// per row where the expression evaluated non-zero (spec §7's debug/
// constraint-check mode). It does not stop at the first failure: the
// point of this mode is to surface every violation in one pass.
func CheckConstraints(ctx *ConstraintCheckContext) []ConstraintFailure {
	var failures []ConstraintFailure
	n := ctx.Params.DomainSize
	for ci, ch := range ctx.Bin.Constraints {
		for _, row := range rowsForBoundary(ch.Boundary, n) {
			val, err := runExpr(&ch.Expression, ctx.Params, row)
			if err != nil {
				continue
			}
			if !val.IsZero() {
				failures = append(failures, ConstraintFailure{
					ConstraintIndex: ci,
					ExprID:          ch.Expression.ID,
					Row:             row,
					Value:           val.String(),
					Line:            ch.Line,
				})
			}
		}
	}
	return failures
}

// rowsForBoundary expands a Boundary into the concrete row indices it
// covers for a domain of size n.
func rowsForBoundary(b Boundary, n int) []int {
	switch b.Name {
	case "firstRow":
		return []int{0}
	case "lastRow":
		return []int{n - 1}
	case "everyFrame":
		rows := make([]int, 0, b.Max-b.Min+1)
		for r := b.Min; r <= b.Max; r++ {
			rows = append(rows, r)
		}
		return rows
	default: // "everyRow"
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
}

// ConstraintViolationError packages up to the first ten failures into the
// single ErrConstraintViolation the caller sees, per spec §7. Returns nil
// if failures is empty.
func ConstraintViolationError(failures []ConstraintFailure) error {
	if len(failures) == 0 {
		return nil
	}
	capped := failures
	if len(capped) > 10 {
		capped = capped[:10]
	}
	msg := fmt.Sprintf("%d constraint(s) violated", len(failures))
	for _, f := range capped {
		msg += fmt.Sprintf("; expr %d row %d = %s", f.ExprID, f.Row, f.Value)
	}
	return &ProtocolError{Kind: ErrConstraintViolation, Message: msg, ExprID: capped[0].ExprID}
}

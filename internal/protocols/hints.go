package protocols

import (
	"github.com/vybium/vybium-starks-vm/internal/core"
)

// HintFieldSource names which value family a hint field entry addresses
// (spec §6.3).
type HintFieldSource int

const (
	HintSourceColumn HintFieldSource = iota
	HintSourcePublic
	HintSourceNumber
	HintSourceAirValue
	HintSourceAirgroupValue
	HintSourceProofValue
	HintSourceExprID // an ext-temp expression evaluated on the base domain
	HintSourceString
)

// HintFieldValue is one addressed value inside a hint field.
type HintFieldValue struct {
	Source HintFieldSource
	ID     int // column id, public id, expression id, etc; unused for Number/String
	Number uint64
	Str    string
}

// HintField is a named, ordered list of addressed values.
type HintField struct {
	Name   string
	Values []HintFieldValue
}

// Hint is a named record addressing fields inside the prover so external
// witness-generation code can read/write them without knowing StarkInfo's
// layout (spec §6.3).
type Hint struct {
	ID     int
	Name   string
	Fields map[string]HintField
}

// HintFieldValues is the materialised result of GetHintField: one
// Goldilocks buffer per addressed value, each sized per spec §6.3 (N·dim
// for a column, 1 or 3 for a scalar, or the result of evaluating an
// expression on the base domain).
type HintFieldValues struct {
	Buffers [][]core.GLElement
}

// HintContext bundles the run-time state GetHintField/SetHintField need to
// materialise or write back a hint field: the trace source, an
// ExpressionsBin to evaluate ext-temp expressions against, and the
// run params those expressions evaluate with.
type HintContext struct {
	Bin    *ExpressionsBin
	Trace  TraceSource
	Params *RunParams
	// ColumnDim reports the dimension (1 or 3) of a given column id so
	// GetHintField can size a HintSourceColumn buffer correctly.
	ColumnDim func(colID int) int
}

// GetHintField materialises every value of the named field.
func GetHintField(h *Hint, fieldName string, ctx *HintContext) (*HintFieldValues, error) {
	field, ok := h.Fields[fieldName]
	if !ok {
		return nil, newErr(ErrShape, "hint %q has no field %q", h.Name, fieldName)
	}
	out := &HintFieldValues{Buffers: make([][]core.GLElement, len(field.Values))}
	for i, v := range field.Values {
		buf, err := materializeHintValue(v, ctx)
		if err != nil {
			return nil, err
		}
		out.Buffers[i] = buf
	}
	return out, nil
}

func materializeHintValue(v HintFieldValue, ctx *HintContext) ([]core.GLElement, error) {
	switch v.Source {
	case HintSourceColumn:
		dim := ctx.ColumnDim(v.ID)
		n := ctx.Params.DomainSize
		buf := make([]core.GLElement, n*dim)
		for row := 0; row < n; row++ {
			if dim == 1 {
				buf[row] = ctx.Trace.Base(v.ID, row)
			} else {
				e := ctx.Trace.Ext(v.ID, row)
				buf[row*3], buf[row*3+1], buf[row*3+2] = e.A0, e.A1, e.A2
			}
		}
		return buf, nil
	case HintSourcePublic:
		if v.ID >= len(ctx.Params.Publics) {
			return nil, newErr(ErrShape, "hint public operand %d out of range", v.ID)
		}
		return []core.GLElement{ctx.Params.Publics[v.ID]}, nil
	case HintSourceNumber:
		return []core.GLElement{core.NewGL(v.Number)}, nil
	case HintSourceAirValue:
		e := ctx.Params.AirValues[v.ID]
		return []core.GLElement{e.A0, e.A1, e.A2}, nil
	case HintSourceAirgroupValue:
		e := ctx.Params.AirgroupValues[v.ID]
		return []core.GLElement{e.A0, e.A1, e.A2}, nil
	case HintSourceProofValue:
		e := ctx.Params.ProofValues[v.ID]
		return []core.GLElement{e.A0, e.A1, e.A2}, nil
	case HintSourceExprID:
		expr, err := ctx.Bin.Expr(v.ID)
		if err != nil {
			return nil, err
		}
		n := ctx.Params.DomainSize
		if expr.DestDim == 3 {
			d := &Dest{Expr: expr, ExtOut: make([]core.ExtElement, n)}
			if err := CalculateExpression(d, ctx.Params); err != nil {
				return nil, err
			}
			buf := make([]core.GLElement, n*3)
			for row, e := range d.ExtOut {
				buf[row*3], buf[row*3+1], buf[row*3+2] = e.A0, e.A1, e.A2
			}
			return buf, nil
		}
		d := &Dest{Expr: expr, BaseOut: make([]core.GLElement, n)}
		if err := CalculateExpression(d, ctx.Params); err != nil {
			return nil, err
		}
		return d.BaseOut, nil
	default:
		return nil, newErr(ErrShape, "hint field has no numeric materialisation (source %d)", v.Source)
	}
}

// SetHintFieldTarget names where SetHintField writes its buffer back to.
type SetHintFieldTarget struct {
	Source HintFieldSource // Column, AirValue, AirgroupValue, or ProofValue
	ID     int
}

// SetHintField writes buf back into the addressed polynomial column,
// airgroup-value, air-value, or proof-value, returning the written
// column/value id.
func SetHintField(target SetHintFieldTarget, buf []core.GLElement, ctx *HintContext, writeBase func(colID, row int, v core.GLElement), writeExt func(colID, row int, v core.ExtElement)) (int, error) {
	switch target.Source {
	case HintSourceColumn:
		dim := ctx.ColumnDim(target.ID)
		n := ctx.Params.DomainSize
		if len(buf) != n*dim {
			return 0, newErr(ErrShape, "set_hint_field column %d expects %d elements, got %d", target.ID, n*dim, len(buf))
		}
		for row := 0; row < n; row++ {
			if dim == 1 {
				writeBase(target.ID, row, buf[row])
			} else {
				writeExt(target.ID, row, core.NewExt(buf[row*3], buf[row*3+1], buf[row*3+2]))
			}
		}
		return target.ID, nil
	case HintSourceAirValue, HintSourceAirgroupValue, HintSourceProofValue:
		if len(buf) != 1 && len(buf) != 3 {
			return 0, newErr(ErrShape, "set_hint_field scalar expects 1 or 3 elements, got %d", len(buf))
		}
		e := core.FromBase(buf[0])
		if len(buf) == 3 {
			e = core.NewExt(buf[0], buf[1], buf[2])
		}
		switch target.Source {
		case HintSourceAirValue:
			ctx.Params.AirValues[target.ID] = e
		case HintSourceAirgroupValue:
			ctx.Params.AirgroupValues[target.ID] = e
		case HintSourceProofValue:
			ctx.Params.ProofValues[target.ID] = e
		}
		return target.ID, nil
	default:
		return 0, newErr(ErrShape, "set_hint_field cannot target source %d", target.Source)
	}
}

// MulHintFields multiplies two hint-addressed field values element-wise
// over the base domain, the fused operator named in spec §6.3.
func MulHintFields(a, b HintFieldValue, ctx *HintContext) ([]core.GLElement, error) {
	av, err := materializeHintValue(a, ctx)
	if err != nil {
		return nil, err
	}
	bv, err := materializeHintValue(b, ctx)
	if err != nil {
		return nil, err
	}
	if len(av) != len(bv) {
		return nil, newErr(ErrShape, "mul_hint_fields operands have mismatched lengths %d and %d", len(av), len(bv))
	}
	out := make([]core.GLElement, len(av))
	for i := range av {
		out[i] = av[i].Mul(bv[i])
	}
	return out, nil
}

// AccumulateMode selects running-sum or running-product for the
// accumulate-family fused hint operators.
type AccumulateMode int

const (
	AccSum AccumulateMode = iota
	AccProduct
)

// AccHintField computes a running accumulator (sum or product) of a single
// hint-addressed value over the base domain. The full vector is the
// prefix-accumulator; the last element is the total, promoted to an
// airgroup-value by the caller (spec §6.3).
func AccHintField(v HintFieldValue, mode AccumulateMode, ctx *HintContext) ([]core.GLElement, error) {
	vals, err := materializeHintValue(v, ctx)
	if err != nil {
		return nil, err
	}
	return accumulate(vals, mode), nil
}

// AccMulHintFields multiplies a and b element-wise, then accumulates the
// product (spec §6.3's mul_hint_fields + acc_hint_field fusion).
func AccMulHintFields(a, b HintFieldValue, mode AccumulateMode, ctx *HintContext) ([]core.GLElement, error) {
	prod, err := MulHintFields(a, b, ctx)
	if err != nil {
		return nil, err
	}
	return accumulate(prod, mode), nil
}

// AccMulAddHintFields computes a*b+c element-wise, then accumulates the
// result (spec §6.3's third fused variant).
func AccMulAddHintFields(a, b, c HintFieldValue, mode AccumulateMode, ctx *HintContext) ([]core.GLElement, error) {
	av, err := materializeHintValue(a, ctx)
	if err != nil {
		return nil, err
	}
	bv, err := materializeHintValue(b, ctx)
	if err != nil {
		return nil, err
	}
	cv, err := materializeHintValue(c, ctx)
	if err != nil {
		return nil, err
	}
	if len(av) != len(bv) || len(av) != len(cv) {
		return nil, newErr(ErrShape, "acc_mul_add_hint_fields operands have mismatched lengths")
	}
	out := make([]core.GLElement, len(av))
	for i := range av {
		out[i] = av[i].Mul(bv[i]).Add(cv[i])
	}
	return accumulate(out, mode), nil
}

func accumulate(vals []core.GLElement, mode AccumulateMode) []core.GLElement {
	out := make([]core.GLElement, len(vals))
	acc := core.GLOne
	if mode == AccSum {
		acc = core.GLZero
	}
	for i, v := range vals {
		if mode == AccSum {
			acc = acc.Add(v)
		} else {
			acc = acc.Mul(v)
		}
		out[i] = acc
	}
	return out
}

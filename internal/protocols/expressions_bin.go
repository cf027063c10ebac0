package protocols

// Instruction is one decoded opcode-stream entry: a resolved Opcode plus
// the 16-bit operand indices into whichever pools it names.
type Instruction struct {
	OpcodeID uint8
	Src0Idx  uint16
	Src1Idx  uint16
	DstIdx   uint16
}

// Expression is one compiled bytecode unit: a destination dimension, the
// scratch-temporary counts the VM must allocate, the instruction stream,
// and the usage masks (which columns/challenges/etc it touches) used to
// build the row-window loader's column union (spec §4.5, §3).
type Expression struct {
	ID              int
	DestDim         int // 1 or 3
	NumBaseTemps    int
	NumExtTemps     int
	Instructions    []Instruction

	UsedConstCols       []int
	UsedCommittedCols   []int
	UsedChallenges      []int
	UsedPublics         []int
	UsedAirgroupValues  []int
	UsedAirValues       []int
}

// ConstraintHeader is a debug-only record: the same shape as Expression,
// plus the boundary it applies to and a source-line string for
// diagnostics (spec §3, used only by CheckConstraints).
type ConstraintHeader struct {
	Expression
	Boundary Boundary
	Line     string
}

// ExpressionsBin is the binary blob the bytecode producer emits: a shared
// number pool, the compiled expressions, debug-only constraint headers,
// and the hint list external witness-generation code addresses via §6.3.
type ExpressionsBin struct {
	Numbers     []uint64
	Expressions map[int]*Expression
	Constraints []ConstraintHeader
	Hints       []Hint
}

// NewExpressionsBin returns an empty, ready-to-populate blob.
func NewExpressionsBin() *ExpressionsBin {
	return &ExpressionsBin{Expressions: make(map[int]*Expression)}
}

// Expr looks up a compiled expression by id, returning a BytecodeError if
// absent (spec §4.6.7: "any bytecode opcode not in the table... is fatal").
func (eb *ExpressionsBin) Expr(id int) (*Expression, error) {
	e, ok := eb.Expressions[id]
	if !ok {
		return nil, newErrExpr(ErrBytecode, id, "no compiled expression with this id")
	}
	return e, nil
}

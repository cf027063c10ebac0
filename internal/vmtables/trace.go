// Package vmtables produces the witness trace a RISC-V zkVM execution
// leaves behind: one row per cycle, laid out as fixed-position columns a
// StarkInfo.PolMap can name directly.
package vmtables

import (
	"fmt"

	"github.com/vybium/vybium-starks-vm/internal/core"
)

// Column positions every row exposes, the fixed layout a StarkInfo built
// for this VM must agree with.
const (
	ColPC = iota
	ColInstruction
	ColClock
	ColRegBase // 32 consecutive columns, x0..x31
	ColMemAddr = ColRegBase + 32
	ColMemVal
	ColMemIsWrite
	ColPrecompileID
	ColPrecompileArg0
	ColPrecompileArg1
	ColPrecompileResult
	numColumns
)

// Row is one cycle's complete machine state, the unit ExecutionTrace
// records every step (grounded on the teacher's VMState snapshot, narrowed
// from a stack machine's operational/jump stacks to a RISC-V register file
// plus a single load/store slot per cycle).
type Row struct {
	PC          uint64
	Instruction uint32
	Clock       uint64
	Regs        [32]uint64

	MemAddr    uint64
	MemVal     uint64
	MemIsWrite bool

	// PrecompileID is zero when no free-call precompile fired this cycle;
	// otherwise it names the dispatch-table entry (spec §6.5) and Arg0/
	// Arg1/Result hold its packed operands, matching one lane of whatever
	// field-width the call used.
	PrecompileID uint64
	PrecompileArg0, PrecompileArg1, PrecompileResult uint64
}

// ExecutionTrace is the full cycle-by-cycle record of a RISC-V program run,
// the external witness protocols.Prover.Prove consumes via the Witness
// interface.
type ExecutionTrace struct {
	Rows []Row
}

// NewExecutionTrace returns an empty trace.
func NewExecutionTrace() *ExecutionTrace {
	return &ExecutionTrace{}
}

// Record appends one cycle's row.
func (t *ExecutionTrace) Record(r Row) {
	t.Rows = append(t.Rows, r)
}

// Column implements protocols.Witness: it returns column polID's value at
// every row, zero-padded up to the next power of two (the domain size
// every other committed column shares).
func (t *ExecutionTrace) Column(polID int) []core.GLElement {
	n := nextPowerOfTwo(len(t.Rows))
	out := make([]core.GLElement, n)
	for i, row := range t.Rows {
		out[i] = columnValue(row, polID)
	}
	return out
}

func columnValue(row Row, polID int) core.GLElement {
	switch {
	case polID == ColPC:
		return core.NewGL(row.PC)
	case polID == ColInstruction:
		return core.NewGL(uint64(row.Instruction))
	case polID == ColClock:
		return core.NewGL(row.Clock)
	case polID >= ColRegBase && polID < ColRegBase+32:
		return core.NewGL(row.Regs[polID-ColRegBase])
	case polID == ColMemAddr:
		return core.NewGL(row.MemAddr)
	case polID == ColMemVal:
		return core.NewGL(row.MemVal)
	case polID == ColMemIsWrite:
		if row.MemIsWrite {
			return core.GLOne
		}
		return core.GLZero
	case polID == ColPrecompileID:
		return core.NewGL(row.PrecompileID)
	case polID == ColPrecompileArg0:
		return core.NewGL(row.PrecompileArg0)
	case polID == ColPrecompileArg1:
		return core.NewGL(row.PrecompileArg1)
	case polID == ColPrecompileResult:
		return core.NewGL(row.PrecompileResult)
	default:
		panic(fmt.Sprintf("vmtables: unknown column id %d", polID))
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

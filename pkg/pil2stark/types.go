package vybiumstarksvm

import (
	"github.com/vybium/vybium-starks-vm/internal/core"
	"github.com/vybium/vybium-starks-vm/internal/protocols"
	"github.com/vybium/vybium-starks-vm/internal/utils"
	"github.com/vybium/vybium-starks-vm/internal/vmtables"
)

// FieldElement is an element of the Goldilocks base field used throughout
// the prover/verifier pipeline.
type FieldElement = core.GLElement

// ExtElement is an element of the cubic extension field used for
// Fiat-Shamir challenges and out-of-domain evaluations.
type ExtElement = core.ExtElement

// Proof is the canonical STARK proof produced by Prove and consumed by
// Verify.
type Proof = protocols.Proof

// StarkInfo is the immutable per-air descriptor a setup is bound to:
// stage layout, polynomial map, and the quotient/FRI expression ids.
type StarkInfo = protocols.StarkInfo

// ExpressionsBin is the compiled bytecode blob a setup is built from: the
// constraints, the quotient and FRI combining expressions, and the
// witness-generation hints.
type ExpressionsBin = protocols.ExpressionsBin

// StarkStruct holds the trace-size, blow-up, query-count, and FRI
// folding-schedule parameters a setup is built from.
type StarkStruct = utils.StarkStruct

// TraceSource is how the setup's constant (non-witness) columns are read
// during proving and constraint checking.
type TraceSource = protocols.TraceSource

// Claim is the public information a proof attests to: the program's
// public inputs plus the airgroup/air values carried across stages.
type Claim struct {
	Publics        []FieldElement
	AirgroupValues []ExtElement
	AirValues      []ExtElement
}

// Program is a RISC-V RV32I program for the VM to execute, one encoded
// instruction word per entry.
type Program struct {
	Words []uint32
}

// VMConfig bounds one Execute call: the cycle budget the interpreter
// enforces and the free-call dispatch precompile calls resolve through.
type VMConfig struct {
	// MaxCycles caps how many instructions Execute runs before giving
	// up; a program that has not halted by then is an execution error.
	MaxCycles int

	// Precompiles resolves ecall-style free calls a program issues
	// (spec §6.5). Left nil, any ecall instruction is an execution
	// error.
	Precompiles *vmtables.PrecompileDispatch
}

// ExecutionTrace is the column-major witness a program's execution
// leaves behind. It satisfies protocols.Witness directly: the prover
// reads Column(polID) to commit the base trace.
type ExecutionTrace = vmtables.ExecutionTrace

// AirSetup bundles everything a Prove or Verify call needs for one air:
// the descriptor, the compiled bytecode, and the constant-column source.
type AirSetup struct {
	Info      *StarkInfo
	Bin       *ExpressionsBin
	ConstPols TraceSource
}

// ProofVerificationResult reports the outcome of a Verify call alongside
// how long it took, for callers that want to log or export timing.
type ProofVerificationResult struct {
	Valid              bool
	Error              string
	VerificationTimeMs int64
}

package vybiumstarksvm

import (
	"github.com/vybium/vybium-starks-vm/internal/vmtables"
)

// VM is the public interface to the RISC-V zkVM interpreter: it executes
// a Program and returns the execution trace the prover commits as
// witness.
type VM interface {
	// Execute runs program to completion or until the configured cycle
	// budget is reached, seeding memory with publicInput before the
	// first cycle.
	Execute(program *Program, publicInput []FieldElement) (*ExecutionTrace, error)

	// State returns a snapshot of the VM's register file and program
	// counter as of the most recent Execute call.
	State() VMState
}

// VMState is a read-only snapshot of the VM's register file, program
// counter, and cycle count.
type VMState struct {
	PC    uint64
	Clock uint64
	Regs  [32]uint64
}

type vmImpl struct {
	config   *VMConfig
	executor *vmtables.Executor
}

// NewVM creates a VM bound to the given configuration. A nil config uses
// DefaultVMConfig.
func NewVM(config *VMConfig) (VM, error) {
	if config == nil {
		config = DefaultVMConfig()
	}
	if config.MaxCycles <= 0 {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "MaxCycles must be positive"}
	}
	return &vmImpl{config: config}, nil
}

// Execute runs program to completion or until MaxCycles is reached. The
// public input is laid out at consecutive 8-byte-aligned memory
// addresses starting at zero, the convention the RISC-V zkVM precompile
// examples assume for reading their operands.
func (v *vmImpl) Execute(program *Program, publicInput []FieldElement) (*ExecutionTrace, error) {
	if program == nil || len(program.Words) == 0 {
		return nil, &VMError{Code: ErrInvalidInput, Message: "program has no instructions"}
	}

	exec := vmtables.NewExecutor(program.Words, v.config.Precompiles)
	for i, p := range publicInput {
		exec.Mem[uint64(i)*8] = uint64(p)
	}

	if err := exec.Run(v.config.MaxCycles); err != nil {
		return nil, &VMError{Code: ErrVMExecution, Message: "VM execution failed", Cause: err}
	}

	v.executor = exec
	return exec.Trace, nil
}

// State returns the zero VMState if Execute has not yet run.
func (v *vmImpl) State() VMState {
	if v.executor == nil {
		return VMState{}
	}
	return VMState{
		PC:    v.executor.PC,
		Clock: v.executor.Clock,
		Regs:  v.executor.Regs,
	}
}

// DefaultVMConfig returns a VM configuration with a generous cycle budget
// and no precompile dispatch configured; callers whose program issues
// ecalls must set Precompiles explicitly.
func DefaultVMConfig() *VMConfig {
	return &VMConfig{MaxCycles: 1 << 20}
}

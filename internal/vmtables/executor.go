package vmtables

import "fmt"

// Executor runs a flat RISC-V RV32I program (plus precompile ecall
// dispatch, spec §6.4-6.5) over a byte-addressed memory, recording one Row
// per cycle into an ExecutionTrace. It is a teaching-scale interpreter:
// enough of RV32I to drive the precompile free-call convention end to end,
// not a full ISA implementation.
type Executor struct {
	Mem   map[uint64]uint64
	Regs  [32]uint64
	PC    uint64
	Clock uint64

	Precompiles *PrecompileDispatch

	Trace *ExecutionTrace

	code map[uint64]uint32
}

// PrecompileDispatch is how an ecall-style instruction reaches outside the
// base ISA (spec §6.5's free-call dispatch table); the free-call
// implementation itself lives in internal/precompiles.
type PrecompileDispatch struct {
	Call func(id, arg0, arg1 uint64) (uint64, error)
}

// NewExecutor returns an executor over program (a flat word-addressed
// instruction memory starting at PC 0) and an initially-empty data memory.
func NewExecutor(program []uint32, precompiles *PrecompileDispatch) *Executor {
	code := make(map[uint64]uint32, len(program))
	for i, instr := range program {
		code[uint64(i)*4] = instr
	}
	return &Executor{Mem: make(map[uint64]uint64), code: code, Precompiles: precompiles, Trace: NewExecutionTrace()}
}

// Run executes until PC runs past the program or maxCycles is reached,
// recording every cycle into e.Trace.
func (e *Executor) Run(maxCycles int) error {
	for i := 0; i < maxCycles; i++ {
		instr, ok := e.code[e.PC]
		if !ok {
			return nil // fell off the end of the program: halt
		}
		row := Row{PC: e.PC, Instruction: instr, Clock: e.Clock}

		if err := e.step(instr, &row); err != nil {
			return fmt.Errorf("vmtables: cycle %d at pc %d: %w", e.Clock, e.PC, err)
		}

		row.Regs = e.Regs
		e.Trace.Record(row)
		e.Clock++
	}
	return fmt.Errorf("vmtables: exceeded %d cycles without halting", maxCycles)
}

// step decodes and executes one RV32I instruction, advancing e.PC (or
// leaving it unchanged on a taken branch target already written) and
// filling in row's memory/precompile fields when applicable.
func (e *Executor) step(instr uint32, row *Row) error {
	opcode := instr & 0x7f
	rd := (instr >> 7) & 0x1f
	funct3 := (instr >> 12) & 0x7
	rs1 := (instr >> 15) & 0x1f
	rs2 := (instr >> 20) & 0x1f
	imm := signExtend(instr>>20, 12)

	nextPC := e.PC + 4

	switch opcode {
	case 0x13: // OP-IMM
		switch funct3 {
		case 0x0: // ADDI
			e.setReg(rd, e.Regs[rs1]+uint64(imm))
		case 0x7: // ANDI
			e.setReg(rd, e.Regs[rs1]&uint64(imm))
		case 0x6: // ORI
			e.setReg(rd, e.Regs[rs1]|uint64(imm))
		case 0x4: // XORI
			e.setReg(rd, e.Regs[rs1]^uint64(imm))
		default:
			return fmt.Errorf("unsupported OP-IMM funct3 %#x", funct3)
		}
	case 0x33: // OP
		funct7 := instr >> 25
		switch {
		case funct3 == 0x0 && funct7 == 0x00: // ADD
			e.setReg(rd, e.Regs[rs1]+e.Regs[rs2])
		case funct3 == 0x0 && funct7 == 0x20: // SUB
			e.setReg(rd, e.Regs[rs1]-e.Regs[rs2])
		case funct3 == 0x7: // AND
			e.setReg(rd, e.Regs[rs1]&e.Regs[rs2])
		case funct3 == 0x6: // OR
			e.setReg(rd, e.Regs[rs1]|e.Regs[rs2])
		case funct3 == 0x4: // XOR
			e.setReg(rd, e.Regs[rs1]^e.Regs[rs2])
		default:
			return fmt.Errorf("unsupported OP funct3/funct7 %#x/%#x", funct3, funct7)
		}
	case 0x03: // LOAD (only LW supported)
		addr := e.Regs[rs1] + uint64(imm)
		val := e.Mem[addr]
		e.setReg(rd, val)
		row.MemAddr, row.MemVal = addr, val
	case 0x23: // STORE (only SW supported): imm is split across bits 31:25 and 11:7
		sImmHigh := (instr >> 25) & 0x7f
		sImmLow := (instr >> 7) & 0x1f
		sImm := signExtend(sImmHigh<<5|sImmLow, 12)
		addr := e.Regs[rs1] + uint64(sImm)
		val := e.Regs[rs2]
		e.Mem[addr] = val
		row.MemAddr, row.MemVal, row.MemIsWrite = addr, val, true
	case 0x6f: // JAL: simplified contiguous 20-bit offset at bits 31:12, not
		// real RV32I's scattered J-immediate encoding
		jImm := signExtend(instr>>12, 20)
		e.setReg(rd, nextPC)
		nextPC = e.PC + uint64(jImm)
	case 0x73: // ECALL-style precompile free call: rd <- dispatch(rs1, rs2, funct7-as-id)
		if e.Precompiles == nil {
			return fmt.Errorf("ecall with no precompile dispatch configured")
		}
		id := uint64(instr >> 25) // R-type funct7 slot, disjoint from rs2's bits
		res, err := e.Precompiles.Call(id, e.Regs[rs1], e.Regs[rs2])
		if err != nil {
			return err
		}
		e.setReg(rd, res)
		row.PrecompileID = id
		row.PrecompileArg0, row.PrecompileArg1, row.PrecompileResult = e.Regs[rs1], e.Regs[rs2], res
	default:
		return fmt.Errorf("unsupported opcode %#x", opcode)
	}

	e.PC = nextPC
	return nil
}

func (e *Executor) setReg(r uint32, v uint64) {
	if r == 0 {
		return // x0 is hardwired to zero
	}
	e.Regs[r] = v
}

func signExtend(v uint32, bits int) int64 {
	shift := 32 - bits
	return int64(int32(v<<shift)) >> shift
}

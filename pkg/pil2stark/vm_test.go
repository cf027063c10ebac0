package vybiumstarksvm

import (
	"testing"

	"github.com/vybium/vybium-starks-vm/internal/vmtables"
)

func encodeIType(opcode, rd, funct3, rs1 uint32, imm int32) uint32 {
	return (uint32(imm)&0xfff)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encodeRType(opcode, rd, funct3, rs1, rs2, funct7 uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func addi(rd, rs1 uint32, imm int32) uint32 { return encodeIType(0x13, rd, 0x0, rs1, imm) }
func add(rd, rs1, rs2 uint32) uint32        { return encodeRType(0x33, rd, 0x0, rs1, rs2, 0x00) }

func TestNewVMRejectsInvalidConfig(t *testing.T) {
	_, err := NewVM(&VMConfig{MaxCycles: 0})
	if err == nil {
		t.Fatal("expected an error for a non-positive MaxCycles")
	}
}

func TestNewVMUsesDefaultConfig(t *testing.T) {
	vm, err := NewVM(nil)
	if err != nil {
		t.Fatalf("NewVM(nil) failed: %v", err)
	}
	if vm == nil {
		t.Fatal("NewVM(nil) returned a nil VM")
	}
}

func TestExecuteRejectsEmptyProgram(t *testing.T) {
	vm, err := NewVM(nil)
	if err != nil {
		t.Fatalf("NewVM failed: %v", err)
	}
	if _, err := vm.Execute(&Program{}, nil); err == nil {
		t.Fatal("expected an error for a program with no instructions")
	}
}

func TestExecuteRunsProgramAndExposesState(t *testing.T) {
	program := &Program{Words: []uint32{
		addi(1, 0, 10),
		addi(2, 0, 32),
		add(3, 1, 2),
	}}

	vm, err := NewVM(&VMConfig{MaxCycles: 8})
	if err != nil {
		t.Fatalf("NewVM failed: %v", err)
	}

	trace, err := vm.Execute(program, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(trace.Rows) != 3 {
		t.Fatalf("recorded %d rows, want 3", len(trace.Rows))
	}

	state := vm.State()
	if state.Regs[3] != 42 {
		t.Errorf("x3 = %d, want 42", state.Regs[3])
	}
	if state.Clock != 3 {
		t.Errorf("Clock = %d, want 3", state.Clock)
	}
}

func TestExecuteSeedsPublicInputIntoMemory(t *testing.T) {
	program := &Program{Words: []uint32{addi(1, 0, 0)}}
	vm, err := NewVM(&VMConfig{MaxCycles: 4})
	if err != nil {
		t.Fatalf("NewVM failed: %v", err)
	}
	if _, err := vm.Execute(program, []FieldElement{7, 9}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	impl := vm.(*vmImpl)
	if impl.executor.Mem[0] != 7 || impl.executor.Mem[8] != 9 {
		t.Errorf("public input not seeded at addresses 0 and 8: mem[0]=%d mem[8]=%d",
			impl.executor.Mem[0], impl.executor.Mem[8])
	}
}

func TestExecuteWiresPrecompileDispatch(t *testing.T) {
	var called bool
	dispatch := &vmtables.PrecompileDispatch{
		Call: func(id, arg0, arg1 uint64) (uint64, error) {
			called = true
			return arg0 + arg1, nil
		},
	}
	program := &Program{Words: []uint32{
		addi(1, 0, 2),
		addi(2, 0, 3),
		encodeRType(0x73, 3, 0x0, 1, 2, 1),
	}}

	vm, err := NewVM(&VMConfig{MaxCycles: 8, Precompiles: dispatch})
	if err != nil {
		t.Fatalf("NewVM failed: %v", err)
	}
	if _, err := vm.Execute(program, nil); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !called {
		t.Error("configured precompile dispatch was never invoked")
	}
}

package integration_test

import (
	"fmt"
	"testing"

	"github.com/vybium/vybium-starks-vm/internal/precompiles"
	"github.com/vybium/vybium-starks-vm/internal/vmtables"
	vybiumstarksvm "github.com/vybium/vybium-starks-vm/pkg/pil2stark"
)

func ecall(rd, rs1, rs2, id uint32) uint32 { return encodeRType(0x73, rd, 0x0, rs1, rs2, id) }

const fcallMultiply = 100

// Test03_FactorialExecution computes 5! = 120 by chaining the
// precompile multiply free call across four ecalls. RV32I has no MUL and
// no conditional branch, so the multiply chain is unrolled and routed
// through a PrecompileDispatch backed by internal/precompiles.Arith256.
func Test03_FactorialExecution(t *testing.T) {
	t.Log("=== Test 03: Factorial via Precompile Dispatch ===")

	program := &vybiumstarksvm.Program{Words: []uint32{
		addi(1, 0, 1),
		addi(2, 0, 2),
		addi(3, 0, 3),
		addi(4, 0, 4),
		addi(5, 0, 5),
		ecall(6, 1, 2, fcallMultiply),
		ecall(7, 6, 3, fcallMultiply),
		ecall(8, 7, 4, fcallMultiply),
		ecall(9, 8, 5, fcallMultiply),
	}}

	dispatch := &vmtables.PrecompileDispatch{
		Call: func(id, arg0, arg1 uint64) (uint64, error) {
			if id != fcallMultiply {
				return 0, fmt.Errorf("unsupported fcall id %d", id)
			}
			lo, _ := precompiles.Arith256([4]uint64{arg0}, [4]uint64{arg1}, [4]uint64{})
			return lo[0], nil
		},
	}

	vm, err := vybiumstarksvm.NewVM(&vybiumstarksvm.VMConfig{MaxCycles: 16, Precompiles: dispatch})
	if err != nil {
		t.Fatalf("NewVM failed: %v", err)
	}

	trace, err := vm.Execute(program, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(trace.Rows) != 9 {
		t.Fatalf("recorded %d rows, want 9", len(trace.Rows))
	}

	result := vm.State().Regs[9]
	if result != 120 {
		t.Fatalf("x9 = %d, want 120", result)
	}
}

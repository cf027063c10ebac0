package integration_test

import (
	"testing"

	vybiumstarksvm "github.com/vybium/vybium-starks-vm/pkg/pil2stark"
)

func addi(rd, rs1 uint32, imm int32) uint32 { return encodeIType(0x13, rd, 0x0, rs1, imm) }

// Test02_PrivacyWithHiddenInput tests the separation between Execute's
// input and the Claim: Execute's publicInput parameter only
// seeds VM memory, it is not the Claim a verifier checks. A prover can
// run a program over a value it wants to keep hidden, then build a
// Claim that carries only the computed result.
//
// Program: secret x = 5, compute 5x via four chained ADDs (no MUL in
// this interpreter), claim the result 25 without ever including x.
func Test02_PrivacyWithHiddenInput(t *testing.T) {
	t.Log("=== Test 02: Hidden Input, Public Claim ===")

	secretX := uint64(5)
	program := &vybiumstarksvm.Program{Words: []uint32{
		lw(1, 0, 0),
		add(2, 1, 1),
		add(3, 2, 1),
		add(4, 3, 1),
		add(5, 4, 1),
	}}

	vm, err := vybiumstarksvm.NewVM(vybiumstarksvm.DefaultVMConfig())
	if err != nil {
		t.Fatalf("NewVM failed: %v", err)
	}

	trace, err := vm.Execute(program, []vybiumstarksvm.FieldElement{vybiumstarksvm.FieldElement(secretX)})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(trace.Rows) != 5 {
		t.Fatalf("recorded %d rows, want 5", len(trace.Rows))
	}

	state := vm.State()
	if state.Regs[5] != 5*secretX {
		t.Fatalf("x5 = %d, want %d", state.Regs[5], 5*secretX)
	}

	claim := vybiumstarksvm.Claim{Publics: []vybiumstarksvm.FieldElement{vybiumstarksvm.FieldElement(state.Regs[5])}}
	if len(claim.Publics) != 1 || claim.Publics[0] != 25 {
		t.Fatalf("claim.Publics = %v, want [25]", claim.Publics)
	}
	for _, p := range claim.Publics {
		if uint64(p) == secretX {
			t.Fatalf("secret value %d leaked into claim.Publics", secretX)
		}
	}
}

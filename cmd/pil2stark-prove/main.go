package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	vybiumstarksvm "github.com/vybium/vybium-starks-vm/pkg/pil2stark"
)

// ProgramInput is the CLI's input format: a flat RV32I word stream plus
// the public input laid out at consecutive memory addresses.
type ProgramInput struct {
	Words   []uint32 `json:"words"`
	Publics []uint64 `json:"publics"`
}

// ExecutionOutput reports the result of running a program, without
// proving it: turning the resulting trace into a Proof requires an
// AirSetup (a compiled StarkInfo/ExpressionsBin pair) this CLI does not
// build, since that compilation step is out of pkg/pil2stark's scope
// (see pkg/pil2stark's package doc).
type ExecutionOutput struct {
	CycleCount int      `json:"cycle_count"`
	FinalPC    uint64   `json:"final_pc"`
	Registers  [32]uint64 `json:"registers"`
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1<<20), 1<<20)

	if !scanner.Scan() {
		fatal("failed to read program input")
	}
	var input ProgramInput
	if err := json.Unmarshal(scanner.Bytes(), &input); err != nil {
		fatal(fmt.Sprintf("failed to parse program input: %v", err))
	}
	if len(input.Words) == 0 {
		fatal("program input has no words")
	}

	logStderr("creating VM...")
	vm, err := vybiumstarksvm.NewVM(vybiumstarksvm.DefaultVMConfig())
	if err != nil {
		fatal(fmt.Sprintf("failed to create VM: %v", err))
	}

	publics := make([]vybiumstarksvm.FieldElement, len(input.Publics))
	for i, v := range input.Publics {
		publics[i] = vybiumstarksvm.FieldElement(v)
	}

	logStderr("executing program...")
	trace, err := vm.Execute(&vybiumstarksvm.Program{Words: input.Words}, publics)
	if err != nil {
		fatal(fmt.Sprintf("execution failed: %v", err))
	}

	state := vm.State()
	logStderr(fmt.Sprintf("execution completed in %d cycles", len(trace.Rows)))

	out := ExecutionOutput{
		CycleCount: len(trace.Rows),
		FinalPC:    state.PC,
		Registers:  state.Regs,
	}
	outBytes, err := json.Marshal(out)
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize execution output: %v", err))
	}

	os.Stdout.Write(outBytes)
	os.Stdout.Write([]byte("\n"))
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "pil2stark-prove:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}

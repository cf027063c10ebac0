// Package vybiumstarksvm is the public façade over a PIL2-style STARK
// prover/verifier and a RISC-V RV32I zkVM.
//
// # Architecture
//
// The package wraps three internal layers:
//
//   - internal/core: the Goldilocks base field, its cubic extension, NTT,
//     and the Poseidon-Goldilocks / Poseidon-BN128 Merkle commitments.
//   - internal/protocols: the StarkInfo-driven generic AIR prover and
//     verifier (the Init -> S1..Sk -> SQ -> Sxi -> SF state machine), its
//     expression VM, and FRI folding; the Fiat-Shamir transcript lives in
//     internal/utils.
//   - internal/vmtables: a RISC-V RV32I interpreter that produces the
//     column-major execution trace the prover commits as witness.
//
// None of these are importable directly; this package is the only stable
// surface.
//
// # Quick start
//
// Executing a program and proving its trace:
//
//	vm, err := vybiumstarksvm.NewVM(vybiumstarksvm.DefaultVMConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	trace, err := vm.Execute(program, publicInput)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	prover, err := vybiumstarksvm.NewProver(setup)
//	if err != nil {
//		log.Fatal(err)
//	}
//	proof, err := prover.Prove(trace, vybiumstarksvm.Claim{Publics: publicInput})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Verifying a proof:
//
//	verifier, err := vybiumstarksvm.NewVerifier(setup)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result := verifier.Verify(proof, publicInput)
//	if !result.Valid {
//		log.Fatal(result.Error)
//	}
//
// setup is an AirSetup: the compiled StarkInfo/ExpressionsBin descriptor
// for the air being proven, plus its constant-column source. Building one
// from a PIL2 source file is out of scope for this package; it is
// produced by the bytecode/witness-generation tooling that targets
// internal/protocols directly.
//
// # Precompiles
//
// Programs that issue ecall-style free calls (big-int arithmetic,
// elliptic-curve operations, Keccak-f[1600], SHA-256 compression) resolve
// them through VMConfig.Precompiles, backed by the precompiles package's
// Fcall dispatch table.
package vybiumstarksvm

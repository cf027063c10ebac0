package vybiumstarksvm

import (
	"time"

	"github.com/vybium/vybium-starks-vm/internal/protocols"
	"github.com/vybium/vybium-starks-vm/internal/utils"
)

// Prover proves one air bound to a fixed AirSetup: the Init -> S1..Sk ->
// SQ -> Sxi -> SF pipeline of spec §4.6.
type Prover struct {
	inner *protocols.Prover
}

// NewProver binds a Prover to setup. Both Info and Bin must be non-nil.
func NewProver(setup AirSetup) (*Prover, error) {
	if setup.Info == nil || setup.Bin == nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "AirSetup requires Info and Bin"}
	}
	return &Prover{inner: protocols.NewProver(setup.Info, setup.Bin, setup.ConstPols)}, nil
}

// Prove commits trace as the base witness and produces a Proof attesting
// to claim's public inputs and airgroup/air values.
func (p *Prover) Prove(trace *ExecutionTrace, claim Claim) (*Proof, error) {
	proof, err := p.inner.Prove(trace, claim.Publics, claim.AirValues, claim.AirgroupValues)
	if err != nil {
		return nil, &VMError{Code: ErrProofGeneration, Message: "proof generation failed", Cause: err}
	}
	return proof, nil
}

// Verifier verifies proofs against one air's AirSetup.
type Verifier struct {
	inner *protocols.Verifier
}

// NewVerifier binds a Verifier to setup. Both Info and Bin must be
// non-nil.
func NewVerifier(setup AirSetup) (*Verifier, error) {
	if setup.Info == nil || setup.Bin == nil {
		return nil, &VMError{Code: ErrInvalidConfig, Message: "AirSetup requires Info and Bin"}
	}
	return &Verifier{inner: protocols.NewVerifier(setup.Info, setup.Bin, setup.ConstPols)}, nil
}

// Verify checks proof against publics, returning a result that always
// reports the elapsed time even when verification fails.
func (v *Verifier) Verify(proof *Proof, publics []FieldElement) *ProofVerificationResult {
	start := time.Now()
	err := v.inner.Verify(proof, publics)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		return &ProofVerificationResult{Valid: false, Error: err.Error(), VerificationTimeMs: elapsed}
	}
	return &ProofVerificationResult{Valid: true, VerificationTimeMs: elapsed}
}

// DefaultStarkStruct returns a conservative 100-bit-security Goldilocks
// parameter set, the one DefaultVMConfig's precompile-free programs are
// sized against.
func DefaultStarkStruct() *StarkStruct {
	return utils.DefaultStarkStruct()
}

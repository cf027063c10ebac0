package utils

import (
	"fmt"

	"github.com/vybium/vybium-starks-vm/internal/core"
)

// StarkStruct holds the public parameters a STARK setup is built from:
// trace size, blow-up factor, query count, Merkle hash backend, and the
// FRI folding schedule. It plays the role the teacher's Config did, widened
// from a single-prime toy config to the parameters spec §3/§6 names.
type StarkStruct struct {
	// NBits is log2 of the trace's subgroup size.
	NBits int
	// NBitsExt is log2 of the extended (LDE) domain size; must exceed
	// NBits by at least one blow-up bit.
	NBitsExt int
	// NQueries is the number of FRI query rounds.
	NQueries int
	// Backend selects the Merkle/Poseidon hash family for this setup.
	Backend core.MerkleBackend
	// FoldingFactors lists, per FRI step, log2 of how many evaluations
	// fold into one (the per-step arity of the FRI reduction).
	FoldingFactors []int
}

// DefaultStarkStruct returns a conservative 100-bit-security parameter set
// over the Goldilocks backend, matching the teacher's DefaultConfig shape.
func DefaultStarkStruct() *StarkStruct {
	return &StarkStruct{
		NBits:          20,
		NBitsExt:       23,
		NQueries:       64,
		Backend:        core.BackendGoldilocks,
		FoldingFactors: []int{4, 4, 4, 4, 2},
	}
}

// Validate checks internal consistency: positive sizes, a blow-up of at
// least 1 bit, a non-empty folding schedule that never asks FRI to fold
// past the extended domain.
func (s *StarkStruct) Validate() error {
	if s.NBits <= 0 {
		return fmt.Errorf("utils: NBits must be positive, got %d", s.NBits)
	}
	if s.NBitsExt <= s.NBits {
		return fmt.Errorf("utils: NBitsExt (%d) must exceed NBits (%d)", s.NBitsExt, s.NBits)
	}
	if s.NBitsExt > core.TwoAdicity {
		return fmt.Errorf("utils: NBitsExt %d exceeds field two-adicity %d", s.NBitsExt, core.TwoAdicity)
	}
	if s.NQueries <= 0 {
		return fmt.Errorf("utils: NQueries must be positive, got %d", s.NQueries)
	}
	if len(s.FoldingFactors) == 0 {
		return fmt.Errorf("utils: FoldingFactors must be non-empty")
	}
	sum := 0
	for i, f := range s.FoldingFactors {
		if f <= 0 {
			return fmt.Errorf("utils: FoldingFactors[%d] must be positive, got %d", i, f)
		}
		sum += f
	}
	if sum > s.NBitsExt {
		return fmt.Errorf("utils: folding schedule folds %d bits, more than the %d-bit extended domain", sum, s.NBitsExt)
	}
	return nil
}

// WithNQueries returns a copy with NQueries replaced.
func (s *StarkStruct) WithNQueries(n int) *StarkStruct {
	c := s.Clone()
	c.NQueries = n
	return c
}

// WithBackend returns a copy with Backend replaced.
func (s *StarkStruct) WithBackend(b core.MerkleBackend) *StarkStruct {
	c := s.Clone()
	c.Backend = b
	return c
}

// WithFoldingFactors returns a copy with FoldingFactors replaced.
func (s *StarkStruct) WithFoldingFactors(factors []int) *StarkStruct {
	c := s.Clone()
	c.FoldingFactors = append([]int(nil), factors...)
	return c
}

// Clone returns a deep copy.
func (s *StarkStruct) Clone() *StarkStruct {
	c := *s
	c.FoldingFactors = append([]int(nil), s.FoldingFactors...)
	return &c
}

// BlowupBits reports the extension's blow-up factor in bits.
func (s *StarkStruct) BlowupBits() int {
	return s.NBitsExt - s.NBits
}

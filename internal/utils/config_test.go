package utils

import (
	"testing"

	"github.com/vybium/vybium-starks-vm/internal/core"
)

func TestDefaultStarkStruct(t *testing.T) {
	s := DefaultStarkStruct()
	if err := s.Validate(); err != nil {
		t.Fatalf("DefaultStarkStruct() failed validation: %v", err)
	}
	if s.Backend != core.BackendGoldilocks {
		t.Errorf("default backend = %v, want BackendGoldilocks", s.Backend)
	}
}

func TestStarkStructValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StarkStruct)
		wantErr bool
	}{
		{"valid default", func(s *StarkStruct) {}, false},
		{"zero NBits", func(s *StarkStruct) { s.NBits = 0 }, true},
		{"NBitsExt not greater", func(s *StarkStruct) { s.NBitsExt = s.NBits }, true},
		{"NBitsExt exceeds two-adicity", func(s *StarkStruct) { s.NBitsExt = core.TwoAdicity + 1 }, true},
		{"zero queries", func(s *StarkStruct) { s.NQueries = 0 }, true},
		{"empty folding factors", func(s *StarkStruct) { s.FoldingFactors = nil }, true},
		{"negative folding factor", func(s *StarkStruct) { s.FoldingFactors = []int{4, -1} }, true},
		{"folding schedule too deep", func(s *StarkStruct) { s.FoldingFactors = []int{30, 30} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStarkStruct()
			tt.mutate(s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStarkStructBuilders(t *testing.T) {
	base := DefaultStarkStruct()
	withQ := base.WithNQueries(32)
	if withQ.NQueries != 32 {
		t.Errorf("WithNQueries did not set NQueries, got %d", withQ.NQueries)
	}
	if base.NQueries == 32 {
		t.Errorf("WithNQueries mutated the receiver")
	}

	withB := base.WithBackend(core.BackendBN128)
	if withB.Backend != core.BackendBN128 {
		t.Errorf("WithBackend did not set Backend")
	}

	withF := base.WithFoldingFactors([]int{2, 2})
	if len(withF.FoldingFactors) != 2 {
		t.Errorf("WithFoldingFactors did not replace factors, got %v", withF.FoldingFactors)
	}
	withF.FoldingFactors[0] = 99
	if base.FoldingFactors[0] == 99 {
		t.Errorf("WithFoldingFactors aliased the receiver's slice")
	}
}

func TestStarkStructClone(t *testing.T) {
	s := DefaultStarkStruct()
	c := s.Clone()
	c.FoldingFactors[0] = 999
	if s.FoldingFactors[0] == 999 {
		t.Errorf("Clone aliased FoldingFactors with the original")
	}
}

func TestBlowupBits(t *testing.T) {
	s := DefaultStarkStruct()
	if got := s.BlowupBits(); got != s.NBitsExt-s.NBits {
		t.Errorf("BlowupBits() = %d, want %d", got, s.NBitsExt-s.NBits)
	}
}

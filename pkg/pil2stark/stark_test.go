package vybiumstarksvm

import (
	"testing"

	"github.com/vybium/vybium-starks-vm/internal/protocols"
)

func TestNewProverRejectsIncompleteSetup(t *testing.T) {
	if _, err := NewProver(AirSetup{}); err == nil {
		t.Error("expected an error for an AirSetup with no Info or Bin")
	}
	if _, err := NewProver(AirSetup{Info: &StarkInfo{}}); err == nil {
		t.Error("expected an error for an AirSetup with no Bin")
	}
}

func TestNewVerifierRejectsIncompleteSetup(t *testing.T) {
	if _, err := NewVerifier(AirSetup{}); err == nil {
		t.Error("expected an error for an AirSetup with no Info or Bin")
	}
	if _, err := NewVerifier(AirSetup{Bin: protocols.NewExpressionsBin()}); err == nil {
		t.Error("expected an error for an AirSetup with no Info")
	}
}

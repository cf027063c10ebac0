package core

import "testing"

// Merkle soundness (spec §8 scenario 3): 4 leaves of width 4, build the
// tree, prove index 2, verify, then flip one sibling and expect failure.
func TestMerkleProofVerifyAndFlipSibling(t *testing.T) {
	leaves := [][]GLElement{
		{NewGL(1), GLZero, GLZero, GLZero},
		{NewGL(2), GLZero, GLZero, GLZero},
		{NewGL(3), GLZero, GLZero, GLZero},
		{NewGL(4), GLZero, GLZero, GLZero},
	}
	tree, err := NewMerkleTree(BackendGoldilocks, leaves)
	if err != nil {
		t.Fatalf("NewMerkleTree: %v", err)
	}
	root := tree.Root()

	proof, err := tree.Proof(2)
	if err != nil {
		t.Fatalf("Proof: %v", err)
	}
	ok, err := VerifyMerkleProof(BackendGoldilocks, root, leaves[2], proof)
	if err != nil {
		t.Fatalf("VerifyMerkleProof: %v", err)
	}
	if !ok {
		t.Fatal("VerifyMerkleProof(honest proof) = false, want true")
	}

	// Flip one sibling digest: verification must fail, not panic.
	tampered := *proof
	tampered.Siblings = make([][]Digest, len(proof.Siblings))
	for i, sibs := range proof.Siblings {
		tampered.Siblings[i] = append([]Digest(nil), sibs...)
	}
	tampered.Siblings[0][0][0] = tampered.Siblings[0][0][0].Add(GLOne)
	ok, err = VerifyMerkleProof(BackendGoldilocks, root, leaves[2], &tampered)
	if err != nil {
		t.Fatalf("VerifyMerkleProof(tampered sibling): %v", err)
	}
	if ok {
		t.Error("VerifyMerkleProof(tampered sibling) = true, want false")
	}
}

func TestMerkleFlipLeafElementFails(t *testing.T) {
	leaves := [][]GLElement{
		{NewGL(1), GLZero, GLZero, GLZero},
		{NewGL(2), GLZero, GLZero, GLZero},
		{NewGL(3), GLZero, GLZero, GLZero},
		{NewGL(4), GLZero, GLZero, GLZero},
	}
	tree, err := NewMerkleTree(BackendGoldilocks, leaves)
	if err != nil {
		t.Fatalf("NewMerkleTree: %v", err)
	}
	proof, err := tree.Proof(2)
	if err != nil {
		t.Fatalf("Proof: %v", err)
	}

	tamperedLeaf := append([]GLElement(nil), leaves[2]...)
	tamperedLeaf[0] = tamperedLeaf[0].Add(GLOne)
	ok, err := VerifyMerkleProof(BackendGoldilocks, tree.Root(), tamperedLeaf, proof)
	if err != nil {
		t.Fatalf("VerifyMerkleProof: %v", err)
	}
	if ok {
		t.Error("VerifyMerkleProof(tampered leaf) = true, want false")
	}
}

func TestMerkleFlipIndexFails(t *testing.T) {
	leaves := [][]GLElement{
		{NewGL(1), GLZero, GLZero, GLZero},
		{NewGL(2), GLZero, GLZero, GLZero},
		{NewGL(3), GLZero, GLZero, GLZero},
		{NewGL(4), GLZero, GLZero, GLZero},
	}
	tree, err := NewMerkleTree(BackendGoldilocks, leaves)
	if err != nil {
		t.Fatalf("NewMerkleTree: %v", err)
	}
	proof, err := tree.Proof(2)
	if err != nil {
		t.Fatalf("Proof: %v", err)
	}
	tampered := *proof
	tampered.Index = proof.Index + 1
	ok, err := VerifyMerkleProof(BackendGoldilocks, tree.Root(), leaves[2], &tampered)
	if err != nil {
		t.Fatalf("VerifyMerkleProof: %v", err)
	}
	if ok {
		t.Error("VerifyMerkleProof(flipped index) = true, want false")
	}
}

func TestMerkleProofRejectsOutOfRangeIndex(t *testing.T) {
	leaves := [][]GLElement{{NewGL(1)}, {NewGL(2)}}
	tree, err := NewMerkleTree(BackendGoldilocks, leaves)
	if err != nil {
		t.Fatalf("NewMerkleTree: %v", err)
	}
	if _, err := tree.Proof(5); err == nil {
		t.Error("Proof(5) on a 2-leaf tree: want error, got nil")
	}
}

func TestMerkleTreePadsToNextPowerOfArity(t *testing.T) {
	leaves := [][]GLElement{{NewGL(1)}, {NewGL(2)}, {NewGL(3)}}
	tree, err := NewMerkleTree(BackendGoldilocks, leaves)
	if err != nil {
		t.Fatalf("NewMerkleTree: %v", err)
	}
	// 3 leaves pad to 4 (next power of 2); the padding duplicates the
	// last row, so a proof for the padded slot must still verify.
	proof, err := tree.Proof(3)
	if err != nil {
		t.Fatalf("Proof(3): %v", err)
	}
	ok, err := VerifyMerkleProof(BackendGoldilocks, tree.Root(), leaves[2], proof)
	if err != nil {
		t.Fatalf("VerifyMerkleProof: %v", err)
	}
	if !ok {
		t.Error("VerifyMerkleProof(padded slot) = false, want true")
	}
}

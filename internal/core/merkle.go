package core

import "fmt"

// MerkleBackend selects which hash family backs a commitment tree: arity-2
// Poseidon-Goldilocks (native field digests) or arity-16 Poseidon-BN128
// (SNARK-friendly, single scalar-field element per digest).
type MerkleBackend int

const (
	// BackendGoldilocks commits with Poseidon over the base field, arity 2.
	BackendGoldilocks MerkleBackend = iota
	// BackendBN128 commits with Poseidon over BN254's scalar field, arity 16.
	BackendBN128
)

// Digest is an opaque Merkle node value. For BackendGoldilocks it holds 4
// field elements; for BackendBN128 it holds a single packed element
// (encoded as 4 GLElement limbs so both backends share one tree shape).
type Digest [glDigestWidth]GLElement

// MerkleTree commits to a list of leaves, each a row of field elements
// (e.g. one row across every committed polynomial), and supports
// authentication-path proofs for individual leaves.
type MerkleTree struct {
	backend MerkleBackend
	arity   int
	leaves  [][]GLElement
	levels  [][]Digest
}

// NewMerkleTree builds a commitment over rows, padding the leaf count up
// to the next power of the tree's arity by repeating the last row (the
// same "duplicate the tail" convention the teacher's MerkleTree uses).
func NewMerkleTree(backend MerkleBackend, rows [][]GLElement) (*MerkleTree, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("core: merkle tree over zero rows")
	}
	arity := 2
	if backend == BackendBN128 {
		arity = bn128Width
	}

	n := len(rows)
	padded := nextPow(n, arity)
	leaves := make([][]GLElement, padded)
	copy(leaves, rows)
	for i := n; i < padded; i++ {
		leaves[i] = rows[n-1]
	}

	t := &MerkleTree{backend: backend, arity: arity, leaves: leaves}
	if err := t.build(); err != nil {
		return nil, err
	}
	return t, nil
}

func nextPow(n, base int) int {
	p := 1
	for p < n {
		p *= base
	}
	return p
}

func (t *MerkleTree) build() error {
	level := make([]Digest, len(t.leaves))
	parallelForBlocks(len(t.leaves), func(i int) {
		level[i] = t.hashLeaf(t.leaves[i])
	})
	t.levels = [][]Digest{level}

	for len(level) > 1 {
		if len(level)%t.arity != 0 {
			return fmt.Errorf("core: merkle level size %d not divisible by arity %d", len(level), t.arity)
		}
		next := make([]Digest, len(level)/t.arity)
		parallelForBlocks(len(next), func(i int) {
			next[i] = t.compress(level[i*t.arity : (i+1)*t.arity])
		})
		t.levels = append(t.levels, next)
		level = next
	}
	return nil
}

func (t *MerkleTree) hashLeaf(row []GLElement) Digest {
	switch t.backend {
	case BackendGoldilocks:
		return Digest(HashGL(row))
	default:
		// Serialize every limb little-endian into one byte string and hash
		// it with HashCustomBN128 (SHA3-256 reduced into the scalar field).
		// Every BN128 leaf takes this path whatever its width; no
		// Poseidon-BN128 hash is applied to leaf contents.
		buf := make([]byte, 0, len(row)*8)
		for _, e := range row {
			v := e.Uint64()
			buf = append(buf,
				byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
				byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
		}
		frElem := HashCustomBN128(buf)
		return frToDigest(frElem)
	}
}

func (t *MerkleTree) compress(children []Digest) Digest {
	switch t.backend {
	case BackendGoldilocks:
		if len(children) != 2 {
			panic("core: goldilocks merkle compress expects arity 2")
		}
		return Digest(CompressGL([glDigestWidth]GLElement(children[0]), [glDigestWidth]GLElement(children[1])))
	default:
		var frChildren [bn128Width]feElement
		for i, c := range children {
			frChildren[i] = digestToFr(c)
		}
		out := compressBN128Elements(frChildren)
		return frToDigest(out)
	}
}

// Root returns the tree's top commitment.
func (t *MerkleTree) Root() Digest {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// MerkleProof is an authentication path: one sibling group per level, from
// leaf level to just below the root.
type MerkleProof struct {
	Siblings [][]Digest
	Index    int
}

// Proof returns the authentication path for leaf index idx.
func (t *MerkleTree) Proof(idx int) (*MerkleProof, error) {
	if idx < 0 || idx >= len(t.leaves) {
		return nil, fmt.Errorf("core: merkle proof index %d out of range [0,%d)", idx, len(t.leaves))
	}
	proof := &MerkleProof{Index: idx}
	cur := idx
	for lvl := 0; lvl < len(t.levels)-1; lvl++ {
		level := t.levels[lvl]
		group := cur / t.arity
		start := group * t.arity
		sibs := make([]Digest, 0, t.arity-1)
		for i := start; i < start+t.arity; i++ {
			if i != cur {
				sibs = append(sibs, level[i])
			}
		}
		proof.Siblings = append(proof.Siblings, sibs)
		cur = group
	}
	return proof, nil
}

// VerifyMerkleProof recomputes the path from leaf to root and checks it
// against the expected root.
func VerifyMerkleProof(backend MerkleBackend, root Digest, leaf []GLElement, proof *MerkleProof) (bool, error) {
	arity := 2
	if backend == BackendBN128 {
		arity = bn128Width
	}
	tmp := &MerkleTree{backend: backend, arity: arity}
	cur := tmp.hashLeaf(leaf)
	idx := proof.Index
	for _, sibs := range proof.Siblings {
		if len(sibs) != arity-1 {
			return false, fmt.Errorf("core: merkle proof sibling group size %d, want %d", len(sibs), arity-1)
		}
		pos := idx % arity
		group := make([]Digest, arity)
		si := 0
		for i := 0; i < arity; i++ {
			if i == pos {
				group[i] = cur
			} else {
				group[i] = sibs[si]
				si++
			}
		}
		cur = tmp.compress(group)
		idx /= arity
	}
	return cur == root, nil
}

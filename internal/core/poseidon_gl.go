package core

// Poseidon-Goldilocks parameters: state width 12 (rate 8, capacity 4),
// producing a 4-element digest. Round counts and the S-box power follow
// the standard Poseidon2 parameterization for a 128-bit security target
// over a 64-bit field.
const (
	glWidth        = 12
	glRate         = 8
	glCapacity     = glWidth - glRate
	glDigestWidth  = 4
	glFullRounds   = 8
	glPartialRound = 22
	glSBoxPower    = 7
)

var (
	glRoundConstants = genRoundConstants(glWidth*(glFullRounds+glPartialRound), 0x9e3779b97f4a7c15)
	glMDS            = genMDSMatrix(glWidth, 0xc0ffee1234567891)
)

// genRoundConstants derives deterministic round constants from a
// splitmix64 stream so every build produces the identical transcript
// without needing to vendor a constants table.
func genRoundConstants(n int, seed uint64) []GLElement {
	out := make([]GLElement, n)
	s := seed
	for i := 0; i < n; i++ {
		s = splitmix64(s)
		out[i] = NewGL(s)
	}
	return out
}

// genMDSMatrix builds a Cauchy matrix, which is always MDS: M[i][j] =
// 1/(x_i - y_j) for disjoint sequences x, y.
func genMDSMatrix(width int, seed uint64) [][]GLElement {
	s := seed
	xs := make([]GLElement, width)
	ys := make([]GLElement, width)
	for i := 0; i < width; i++ {
		s = splitmix64(s)
		xs[i] = NewGL(s)
	}
	for i := 0; i < width; i++ {
		s = splitmix64(s)
		ys[i] = NewGL(s).Add(NewGL(uint64(width) + 1))
	}
	m := make([][]GLElement, width)
	for i := 0; i < width; i++ {
		m[i] = make([]GLElement, width)
		for j := 0; j < width; j++ {
			diff := xs[i].Sub(ys[j])
			inv, err := diff.Inv()
			if err != nil {
				// Extremely unlikely collision in the generated sequences;
				// perturb deterministically and retry once.
				ys[j] = ys[j].Add(GLOne)
				diff = xs[i].Sub(ys[j])
				inv, _ = diff.Inv()
			}
			m[i][j] = inv
		}
	}
	return m
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// PoseidonGLPermute applies the Poseidon permutation in place to a
// width-12 state.
func PoseidonGLPermute(state *[glWidth]GLElement) {
	round := 0
	halfFull := glFullRounds / 2

	applyFull := func() {
		addRoundConstants(state, round)
		for i := range state {
			state[i] = sbox(state[i])
		}
		mdsMultiply(state, glMDS)
		round++
	}
	applyPartial := func() {
		addRoundConstants(state, round)
		state[0] = sbox(state[0])
		mdsMultiply(state, glMDS)
		round++
	}

	for i := 0; i < halfFull; i++ {
		applyFull()
	}
	for i := 0; i < glPartialRound; i++ {
		applyPartial()
	}
	for i := 0; i < halfFull; i++ {
		applyFull()
	}
}

func addRoundConstants(state *[glWidth]GLElement, round int) {
	base := round * glWidth
	for i := range state {
		state[i] = state[i].Add(glRoundConstants[base+i])
	}
}

func sbox(x GLElement) GLElement {
	return x.Exp(glSBoxPower)
}

func mdsMultiply(state *[glWidth]GLElement, mds [][]GLElement) {
	var out [glWidth]GLElement
	for i := 0; i < glWidth; i++ {
		acc := GLZero
		for j := 0; j < glWidth; j++ {
			acc = acc.Add(mds[i][j].Mul(state[j]))
		}
		out[i] = acc
	}
	*state = out
}

// PoseidonGLSponge is a duplex sponge over the Poseidon-Goldilocks
// permutation used both for Merkle tree compression (arity 2, two
// 4-element children packed into the rate) and for hashing arbitrary
// witness columns into a single 4-element digest.
type PoseidonGLSponge struct {
	state     [glWidth]GLElement
	buf       []GLElement
	squeezing bool
	outBuf    []GLElement
}

// NewPoseidonGLSponge returns a fresh sponge in absorbing mode.
func NewPoseidonGLSponge() *PoseidonGLSponge {
	return &PoseidonGLSponge{}
}

// Absorb appends field elements to the sponge, permuting every time a full
// rate-sized block accumulates.
func (s *PoseidonGLSponge) Absorb(elems ...GLElement) {
	if s.squeezing {
		s.squeezing = false
		s.outBuf = nil
	}
	s.buf = append(s.buf, elems...)
	for len(s.buf) >= glRate {
		for i := 0; i < glRate; i++ {
			s.state[i] = s.state[i].Add(s.buf[i])
		}
		PoseidonGLPermute(&s.state)
		s.buf = s.buf[glRate:]
	}
}

// Squeeze returns n field elements. On the first squeeze after absorbing,
// any partially filled block is added into the state (without padding)
// and the state is permuted once.
func (s *PoseidonGLSponge) Squeeze(n int) []GLElement {
	if !s.squeezing {
		for i, v := range s.buf {
			s.state[i] = s.state[i].Add(v)
		}
		PoseidonGLPermute(&s.state)
		s.buf = nil
		s.squeezing = true
		s.outBuf = append([]GLElement(nil), s.state[:glRate]...)
	}
	out := make([]GLElement, 0, n)
	for len(out) < n {
		if len(s.outBuf) == 0 {
			PoseidonGLPermute(&s.state)
			s.outBuf = append([]GLElement(nil), s.state[:glRate]...)
		}
		take := n - len(out)
		if take > len(s.outBuf) {
			take = len(s.outBuf)
		}
		out = append(out, s.outBuf[:take]...)
		s.outBuf = s.outBuf[take:]
	}
	return out
}

// HashGL hashes a slice of field elements down to a glDigestWidth-element
// Merkle leaf digest.
func HashGL(elems []GLElement) [glDigestWidth]GLElement {
	s := NewPoseidonGLSponge()
	s.Absorb(elems...)
	out := s.Squeeze(glDigestWidth)
	var digest [glDigestWidth]GLElement
	copy(digest[:], out)
	return digest
}

// CompressGL is the arity-2 Merkle node compression function: absorb both
// children's digests and squeeze a fresh digest.
func CompressGL(left, right [glDigestWidth]GLElement) [glDigestWidth]GLElement {
	s := NewPoseidonGLSponge()
	s.Absorb(left[:]...)
	s.Absorb(right[:]...)
	out := s.Squeeze(glDigestWidth)
	var digest [glDigestWidth]GLElement
	copy(digest[:], out)
	return digest
}

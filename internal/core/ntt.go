package core

import "fmt"

// NTT computes the in-place radix-2 Number-Theoretic Transform of values,
// whose length must be a power of two. The butterfly visitation order is
// fixed (bit-reversal permutation followed by iterative Cooley-Tukey
// stages processed low-stage-first) so the result is bit-identical
// regardless of how many goroutines ntt uses internally.
func NTT(values []GLElement) error {
	return nttCore(values, false)
}

// INTT computes the inverse NTT in place.
func INTT(values []GLElement) error {
	return nttCore(values, true)
}

func nttCore(values []GLElement, inverse bool) error {
	n := len(values)
	if n == 0 {
		return nil
	}
	if n&(n-1) != 0 {
		return fmt.Errorf("core: ntt length %d is not a power of two", n)
	}
	logN := bitLen(uint64(n)) - 1
	if logN > TwoAdicity {
		return fmt.Errorf("core: ntt length %d exceeds field's two-adicity", n)
	}

	bitReversePermute(values)

	root := RootOfUnity(logN)
	if inverse {
		var err error
		root, err = root.Inv()
		if err != nil {
			return err
		}
	}

	// Iterative Cooley-Tukey, stage by stage; each stage's twiddle table is
	// derived from the stage root so concurrent workers never race on
	// shared mutable twiddle state.
	for stageLen := 2; stageLen <= n; stageLen <<= 1 {
		stageRoot := root.Exp(uint64(n / stageLen))
		twiddles := powersOf(stageRoot, stageLen/2)
		half := stageLen / 2
		parallelForBlocks(n/stageLen, func(blockIdx int) {
			start := blockIdx * stageLen
			for j := 0; j < half; j++ {
				w := twiddles[j]
				u := values[start+j]
				v := values[start+j+half].Mul(w)
				values[start+j] = u.Add(v)
				values[start+j+half] = u.Sub(v)
			}
		})
	}

	if inverse {
		nInv, err := NewGL(uint64(n)).Inv()
		if err != nil {
			return err
		}
		parallelForBlocks(n, func(i int) {
			values[i] = values[i].Mul(nInv)
		})
	}
	return nil
}

// ExtNTT computes the in-place radix-2 NTT of a column of cubic-extension
// elements, the F_p^3 counterpart spec §4.2/C2 names alongside the
// base-field NTT. Twiddle factors stay base-field scalars (MulBase), so
// the same butterfly ordering as NTT determines the result.
func ExtNTT(values []ExtElement) error {
	return extNTTCore(values, false)
}

// ExtINTT computes the inverse NTT of a column of extension elements.
func ExtINTT(values []ExtElement) error {
	return extNTTCore(values, true)
}

func extNTTCore(values []ExtElement, inverse bool) error {
	n := len(values)
	if n == 0 {
		return nil
	}
	if n&(n-1) != 0 {
		return fmt.Errorf("core: ext_ntt length %d is not a power of two", n)
	}
	logN := bitLen(uint64(n)) - 1
	if logN > TwoAdicity {
		return fmt.Errorf("core: ext_ntt length %d exceeds field's two-adicity", n)
	}

	extBitReversePermute(values)

	root := RootOfUnity(logN)
	if inverse {
		var err error
		root, err = root.Inv()
		if err != nil {
			return err
		}
	}

	for stageLen := 2; stageLen <= n; stageLen <<= 1 {
		stageRoot := root.Exp(uint64(n / stageLen))
		twiddles := powersOf(stageRoot, stageLen/2)
		half := stageLen / 2
		parallelForBlocks(n/stageLen, func(blockIdx int) {
			start := blockIdx * stageLen
			for j := 0; j < half; j++ {
				w := twiddles[j]
				u := values[start+j]
				v := values[start+j+half].MulBase(w)
				values[start+j] = u.Add(v)
				values[start+j+half] = u.Sub(v)
			}
		})
	}

	if inverse {
		nInv, err := NewGL(uint64(n)).Inv()
		if err != nil {
			return err
		}
		parallelForBlocks(n, func(i int) {
			values[i] = values[i].MulBase(nInv)
		})
	}
	return nil
}

func extBitReversePermute(values []ExtElement) {
	n := len(values)
	logN := bitLen(uint64(n)) - 1
	for i := 1; i < n; i++ {
		j := reverseBits(uint64(i), logN)
		if j := int(j); i < j {
			values[i], values[j] = values[j], values[i]
		}
	}
}

func powersOf(base GLElement, count int) []GLElement {
	out := make([]GLElement, count)
	cur := GLOne
	for i := 0; i < count; i++ {
		out[i] = cur
		cur = cur.Mul(base)
	}
	return out
}

func bitReversePermute(values []GLElement) {
	n := len(values)
	logN := bitLen(uint64(n)) - 1
	for i := 1; i < n; i++ {
		j := reverseBits(uint64(i), logN)
		if j := int(j); i < j {
			values[i], values[j] = values[j], values[i]
		}
	}
}

func reverseBits(x uint64, bits int) uint64 {
	var r uint64
	for i := 0; i < bits; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

func bitLen(x uint64) int {
	n := 0
	for x > 0 {
		n++
		x >>= 1
	}
	return n
}

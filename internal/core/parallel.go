package core

import (
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"
)

// packWidth is the SIMD lane width detected for the host CPU (8 with
// AVX-512, 4 with AVX2 or ASIMD, else 1). It is only reported through
// PackWidth; no loop in this package reads it, so it has no bearing on how
// work is batched or on proof determinism.
var packWidth = detectPackWidth()

func detectPackWidth() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 8
	case cpu.X86.HasAVX2, cpu.ARM64.HasASIMD:
		return 4
	default:
		return 1
	}
}

// PackWidth reports the SIMD lane width detected for this host.
func PackWidth() int { return packWidth }

// parallelForBlocks runs fn(i) for i in [0, n) across a worker pool sized to
// runtime.NumCPU(). Each index is independent (used for NTT butterfly
// stages and row-parallel Merkle leaf hashing) so the split never changes
// output values, only wall-clock time.
func parallelForBlocks(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

package ipa

import (
	"runtime"
	"sync"

	"github.com/go-snarkpack/aggregate/curve"
)

// pointOps is the small arithmetic surface Key's operations need from a
// curve point type. curve.G1Ops and curve.G2Ops implement it, so VKey and
// WKey share one implementation of scale/split/compress/first instead of
// gnark-crypto's concrete point types being made to satisfy a generic
// method-set constraint they don't naturally expose.
type pointOps[P any] interface {
	Add(a, b P) P
	ScalarMul(a P, s curve.Scalar) P
	MultiExp(points []P, scalars []curve.Scalar, nbTasks int) (P, error)
}

// Key is a pair of equal-length point vectors: VKey's points live in G2,
// WKey's in G1. Both are folded, split, and compressed identically by GIPA.
type Key[P any] struct {
	A []P
	B []P
}

// VKey is the commitment key paired against G1 data (the A-side of a
// Groth16 proof and, for MIPP, the C-side).
type VKey = Key[curve.G2]

// WKey is the commitment key paired against G2 data (the B-side of a
// Groth16 proof). MIPP has no W-key.
type WKey = Key[curve.G1]

func hasCorrectLen[P any](k Key[P], n int) bool {
	return len(k.A) == n && len(k.B) == n
}

// scale returns the entrywise-exponentiated key (a_i^(s_i), b_i^(s_i)),
// additive notation (s_i*a_i, s_i*b_i).
func scale[P any](ops pointOps[P], k Key[P], s []curve.Scalar) (Key[P], error) {
	if len(k.A) != len(s) || len(k.B) != len(s) {
		return Key[P]{}, ErrInvalidKeyLength
	}
	a := make([]P, len(s))
	b := make([]P, len(s))
	eachChunk(len(s), func(start, end int) {
		for i := start; i < end; i++ {
			a[i] = ops.ScalarMul(k.A[i], s[i])
			b[i] = ops.ScalarMul(k.B[i], s[i])
		}
	})
	return Key[P]{A: a, B: b}, nil
}

// ScaleWKey rescales a W-key entrywise: entry i of both streams is raised to
// s[i]. The prover uses this to push the inverse powers of the batching
// scalar onto the key paired against the rescaled B vector.
func ScaleWKey(k WKey, s []curve.Scalar) (WKey, error) {
	return scale(curve.G1Ops{}, k, s)
}

// split divides k into its left and right halves; n must be even.
func split[P any](k Key[P]) (left, right Key[P]) {
	m := len(k.A) / 2
	left = Key[P]{A: k.A[:m], B: k.B[:m]}
	right = Key[P]{A: k.A[m:], B: k.B[m:]}
	return left, right
}

// compress folds left and right into a single half-length key:
// result[i] = left[i] + x*right[i] (entrywise, additive notation).
func compress[P any](ops pointOps[P], left, right Key[P], x curve.Scalar) (Key[P], error) {
	if len(left.A) != len(left.B) || len(right.A) != len(right.B) || len(left.A) != len(right.A) {
		return Key[P]{}, ErrInvalidKeyLength
	}
	n := len(left.A)
	a := make([]P, n)
	b := make([]P, n)
	eachChunk(n, func(start, end int) {
		for i := start; i < end; i++ {
			a[i] = ops.Add(left.A[i], ops.ScalarMul(right.A[i], x))
			b[i] = ops.Add(left.B[i], ops.ScalarMul(right.B[i], x))
		}
	})
	return Key[P]{A: a, B: b}, nil
}

// eachChunk fans f out over contiguous index ranges of [0,n), one goroutine
// per chunk, and waits for all of them. Entrywise key arithmetic has no
// failure path, so a bare WaitGroup suffices where ip.go needs errgroup.
func eachChunk(n int, f func(start, end int)) {
	chunks := chunkRanges(n, runtime.GOMAXPROCS(0))
	if len(chunks) <= 1 {
		if n > 0 {
			f(0, n)
		}
		return
	}
	var wg sync.WaitGroup
	for _, c := range chunks {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			f(c.start, c.end)
		}()
	}
	wg.Wait()
}

// first returns the single-element key obtained once GIPA has folded k down
// to length one.
func first[P any](k Key[P]) (Key[P], error) {
	if len(k.A) != 1 || len(k.B) != 1 {
		return Key[P]{}, ErrInvalidKeyLength
	}
	return k, nil
}

type chunkRange struct{ start, end int }

// chunkRanges splits [0,n) into at most workers contiguous ranges of
// roughly equal size, used to fan parallel entrywise work out deterministically.
func chunkRanges(n, workers int) []chunkRange {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return nil
	}
	base := n / workers
	rem := n % workers
	ranges := make([]chunkRange, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		ranges = append(ranges, chunkRange{start: start, end: start + size})
		start += size
	}
	return ranges
}

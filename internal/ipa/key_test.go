package ipa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-snarkpack/aggregate/curve"
)

func sampleVKey(n int) VKey {
	h := curve.G2Generator()
	ops := curve.G2Ops{}
	a := make([]curve.G2, n)
	b := make([]curve.G2, n)
	for i := 0; i < n; i++ {
		a[i] = ops.ScalarMul(h, curve.ScalarFromUint64(uint64(2*i+1)))
		b[i] = ops.ScalarMul(h, curve.ScalarFromUint64(uint64(3*i+2)))
	}
	return VKey{A: a, B: b}
}

func TestHasCorrectLen(t *testing.T) {
	k := sampleVKey(4)
	require.True(t, hasCorrectLen(k, 4))
	require.False(t, hasCorrectLen(k, 3))
}

func TestSplit(t *testing.T) {
	k := sampleVKey(4)
	left, right := split(k)
	require.Equal(t, 2, len(left.A))
	require.Equal(t, 2, len(right.A))
	require.True(t, left.A[0].Equal(&k.A[0]))
	require.True(t, right.A[0].Equal(&k.A[2]))
}

func TestScaleExponentiatesEntrywise(t *testing.T) {
	k := sampleVKey(4)
	s := []curve.Scalar{
		curve.ScalarFromUint64(2), curve.ScalarFromUint64(3),
		curve.ScalarFromUint64(5), curve.ScalarFromUint64(7),
	}

	ops := curve.G2Ops{}
	got, err := scale(ops, k, s)
	require.NoError(t, err)
	require.Equal(t, 4, len(got.A))

	for i := range got.A {
		wantA := ops.ScalarMul(k.A[i], s[i])
		wantB := ops.ScalarMul(k.B[i], s[i])
		require.True(t, wantA.Equal(&got.A[i]))
		require.True(t, wantB.Equal(&got.B[i]))
	}
}

func TestScaleRejectsLengthMismatch(t *testing.T) {
	k := sampleVKey(4)
	_, err := scale(curve.G2Ops{}, k, []curve.Scalar{curve.ScalarFromUint64(1)})
	require.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestCompressHalvesLengthAndMatchesFoldLaw(t *testing.T) {
	k := sampleVKey(4)
	left, right := split(k)
	x := curve.ScalarFromUint64(7)

	ops := curve.G2Ops{}
	got, err := compress(ops, left, right, x)
	require.NoError(t, err)
	require.Equal(t, 2, len(got.A))

	// i-th entry must equal left[i] + right[i]*x (additive notation for the
	// group GIPA calls "left[i] . right[i]^x").
	for i := range got.A {
		want := ops.Add(left.A[i], ops.ScalarMul(right.A[i], x))
		require.True(t, want.Equal(&got.A[i]))
	}
}

func TestCompressRejectsLengthMismatch(t *testing.T) {
	left := sampleVKey(2)
	right := sampleVKey(3)
	_, err := compress(curve.G2Ops{}, left, right, curve.ScalarFromUint64(1))
	require.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestFirstAcceptsOnlyLengthOne(t *testing.T) {
	k := sampleVKey(1)
	got, err := first(k)
	require.NoError(t, err)
	require.True(t, got.A[0].Equal(&k.A[0]))

	_, err = first(sampleVKey(2))
	require.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestChunkRangesCoversEveryIndexExactlyOnce(t *testing.T) {
	for _, tc := range []struct{ n, workers int }{
		{10, 3}, {1, 1}, {7, 7}, {7, 16}, {100, 4},
	} {
		seen := make([]bool, tc.n)
		for _, c := range chunkRanges(tc.n, tc.workers) {
			for i := c.start; i < c.end; i++ {
				require.False(t, seen[i], "index %d covered twice (n=%d,workers=%d)", i, tc.n, tc.workers)
				seen[i] = true
			}
		}
		for i, ok := range seen {
			require.True(t, ok, "index %d never covered (n=%d,workers=%d)", i, tc.n, tc.workers)
		}
	}
}

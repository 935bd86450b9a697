package srs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-snarkpack/aggregate/curve"
	"github.com/go-snarkpack/aggregate/randsrc"
)

func TestNewGenericSRSRejectsOversizedRequest(t *testing.T) {
	_, err := NewGenericSRS(MaxSRSSize+1, randsrc.ChaCha(1))
	require.ErrorIs(t, err, ErrSRSTooLarge)
}

func TestNewGenericSRSHasExpectedShape(t *testing.T) {
	g, err := NewGenericSRS(4, randsrc.ChaCha(1))
	require.NoError(t, err)
	require.Equal(t, 4, g.Len())
	require.Len(t, g.GAlphaU, 8)
	require.Len(t, g.GAlphaV, 8)
	require.Len(t, g.HAlphaU, 8)
	require.Len(t, g.HAlphaV, 8)

	one := curve.ScalarFromUint64(1)
	var zeroPower curve.G1
	ops := curve.G1Ops{}
	zeroPower = ops.ScalarMul(g.G, one)
	require.True(t, zeroPower.Equal(&g.GAlphaU[0]))
}

func TestSpecializeRejectsNonPowerOfTwo(t *testing.T) {
	g, err := NewGenericSRS(8, randsrc.ChaCha(1))
	require.NoError(t, err)

	_, _, err = Specialize(g, 3)
	require.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestSpecializeRejectsTooSmallOrTooLarge(t *testing.T) {
	g, err := NewGenericSRS(8, randsrc.ChaCha(1))
	require.NoError(t, err)

	_, _, err = Specialize(g, 1)
	require.ErrorIs(t, err, ErrBatchTooLarge)

	_, _, err = Specialize(g, 16)
	require.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestSpecializeProducesMatchingProverAndVerifierViews(t *testing.T) {
	g, err := NewGenericSRS(8, randsrc.ChaCha(1))
	require.NoError(t, err)

	prover, verifier, err := Specialize(g, 4)
	require.NoError(t, err)

	require.Equal(t, 4, prover.N)
	require.Equal(t, 4, verifier.N)
	require.Len(t, prover.VKeyA, 4)
	require.Len(t, prover.WKeyA, 4)
	require.Len(t, prover.WOpeningU, 7)

	require.True(t, prover.VKeyA[0].Equal(&g.HAlphaU[0]))
	require.True(t, prover.WKeyA[0].Equal(&g.GAlphaU[4]))
	require.True(t, prover.WOpeningU[0].Equal(&g.GAlphaU[0]))
	require.True(t, prover.WOpeningU[6].Equal(&g.GAlphaU[6]))

	require.True(t, verifier.GAlphaU.Equal(&g.GAlphaU[1]))
	require.True(t, verifier.HAlphaU.Equal(&g.HAlphaU[1]))
}

func TestSpecializeIsDeterministicAcrossCalls(t *testing.T) {
	g, err := NewGenericSRS(8, randsrc.ChaCha(1))
	require.NoError(t, err)

	p1, _, err := Specialize(g, 4)
	require.NoError(t, err)
	p2, _, err := Specialize(g, 4)
	require.NoError(t, err)

	for i := range p1.VKeyA {
		require.True(t, p1.VKeyA[i].Equal(&p2.VKeyA[i]))
	}
}

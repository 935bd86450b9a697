package ipa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-snarkpack/aggregate/curve"
)

func samplePoints(n int) ([]curve.G1, []curve.G2) {
	g := curve.G1Generator()
	h := curve.G2Generator()
	g1Ops := curve.G1Ops{}
	g2Ops := curve.G2Ops{}
	a := make([]curve.G1, n)
	b := make([]curve.G2, n)
	for i := 0; i < n; i++ {
		a[i] = g1Ops.ScalarMul(g, curve.ScalarFromUint64(uint64(i+1)))
		b[i] = g2Ops.ScalarMul(h, curve.ScalarFromUint64(uint64(2*i+3)))
	}
	return a, b
}

func TestPairingProductEmptyIsIdentity(t *testing.T) {
	got, err := pairingProduct(nil, nil)
	require.NoError(t, err)
	one := curve.GTOne()
	require.True(t, curve.GTEqual(got, one))
}

func TestPairingProductRejectsLengthMismatch(t *testing.T) {
	a, b := samplePoints(3)
	_, err := pairingProduct(a, b[:2])
	require.ErrorIs(t, err, ErrInvalidIPVectorLength)
}

func TestPairingProductMatchesSingleMillerLoopPlusFinalExp(t *testing.T) {
	a, b := samplePoints(5)
	got, err := pairingProduct(a, b)
	require.NoError(t, err)

	ml, err := curve.MillerLoop(a, b)
	require.NoError(t, err)
	want := curve.FinalExponentiation(ml)
	require.True(t, curve.GTEqual(got, want))
}

func TestPairingProductIsDeterministic(t *testing.T) {
	a, b := samplePoints(9)
	got1, err := pairingProduct(a, b)
	require.NoError(t, err)
	got2, err := pairingProduct(a, b)
	require.NoError(t, err)
	require.True(t, curve.GTEqual(got1, got2))
}

func TestMSMEmptyIsIdentity(t *testing.T) {
	got, err := msm(nil, nil)
	require.NoError(t, err)
	var zero curve.G1
	require.True(t, got.Equal(&zero))
}

func TestMSMRejectsLengthMismatch(t *testing.T) {
	a, _ := samplePoints(3)
	_, err := msm(a, []curve.Scalar{curve.ScalarFromUint64(1)})
	require.ErrorIs(t, err, ErrInvalidIPVectorLength)
}

func TestMSMMatchesNaiveSum(t *testing.T) {
	a, _ := samplePoints(6)
	scalars := make([]curve.Scalar, len(a))
	for i := range scalars {
		scalars[i] = curve.ScalarFromUint64(uint64(i*i + 1))
	}

	got, err := msm(a, scalars)
	require.NoError(t, err)

	ops := curve.G1Ops{}
	var want curve.G1
	for i := range a {
		want = ops.Add(want, ops.ScalarMul(a[i], scalars[i]))
	}
	require.True(t, want.Equal(&got))
}

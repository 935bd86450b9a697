package groth16

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-snarkpack/aggregate/curve"
)

func sampleVerifyingKey() VerifyingKey {
	g := curve.G1Generator()
	h := curve.G2Generator()
	g1Ops := curve.G1Ops{}
	g2Ops := curve.G2Ops{}

	return VerifyingKey{
		Alpha: g1Ops.ScalarMul(g, curve.ScalarFromUint64(2)),
		Beta:  g2Ops.ScalarMul(h, curve.ScalarFromUint64(3)),
		Gamma: g2Ops.ScalarMul(h, curve.ScalarFromUint64(5)),
		Delta: g2Ops.ScalarMul(h, curve.ScalarFromUint64(7)),
		IC: []curve.G1{
			g1Ops.ScalarMul(g, curve.ScalarFromUint64(11)),
			g1Ops.ScalarMul(g, curve.ScalarFromUint64(13)),
		},
	}
}

func TestPrepareRejectsEmptyIC(t *testing.T) {
	vk := sampleVerifyingKey()
	vk.IC = nil
	_, err := Prepare(vk)
	require.ErrorIs(t, err, ErrEmptyIC)
}

func TestPrepareComputesAlphaBetaPairing(t *testing.T) {
	vk := sampleVerifyingKey()
	pvk, err := Prepare(vk)
	require.NoError(t, err)

	want, err := curve.Pairing([]curve.G1{vk.Alpha}, []curve.G2{vk.Beta})
	require.NoError(t, err)
	require.True(t, curve.GTEqual(pvk.AlphaBeta, want))
	require.Equal(t, vk, pvk.VK)
}

func TestInputCommitmentFoldsAgainstICBasis(t *testing.T) {
	vk := sampleVerifyingKey()
	inputs := []curve.Scalar{curve.ScalarFromUint64(9)}

	got, err := InputCommitment(vk, inputs)
	require.NoError(t, err)

	ops := curve.G1Ops{}
	want := ops.Add(vk.IC[0], ops.ScalarMul(vk.IC[1], inputs[0]))
	require.True(t, got.Equal(&want))
}

func TestInputCommitmentRejectsLengthMismatch(t *testing.T) {
	vk := sampleVerifyingKey()
	_, err := InputCommitment(vk, []curve.Scalar{curve.ScalarFromUint64(1), curve.ScalarFromUint64(2)})
	require.Error(t, err)
}

func TestInputCommitmentWithNoPublicInputsReturnsConstantTerm(t *testing.T) {
	vk := sampleVerifyingKey()
	vk.IC = vk.IC[:1]

	got, err := InputCommitment(vk, nil)
	require.NoError(t, err)
	require.True(t, got.Equal(&vk.IC[0]))
}

// Package groth16 defines the wire-level contract this module consumes from
// an external Groth16 circuit/proving implementation: proofs, verifying
// keys, and the precomputed form the aggregation verifier's final pairing
// check needs. It contains no circuit or proving logic of its own; callers
// populate these types from whatever Groth16 backend produced their proofs,
// and this package only names the shapes the aggregator's final check needs.
package groth16

import (
	"errors"

	"github.com/go-snarkpack/aggregate/curve"
)

// Proof is a single Groth16 proof over BN254: A, C in G1 and B in G2.
type Proof struct {
	A curve.G1
	B curve.G2
	C curve.G1
}

// VerifyingKey is the public verifying key shared by every proof in a batch.
// IC holds the input-commitment basis: IC[0] is the constant term and
// IC[1:] pair one-to-one with the circuit's public inputs.
type VerifyingKey struct {
	Alpha curve.G1
	Beta  curve.G2
	Gamma curve.G2
	Delta curve.G2
	IC    []curve.G1
}

// ErrEmptyIC is returned when a verifying key has no input-commitment basis
// at all (not even the constant term), which makes it unusable.
var ErrEmptyIC = errors.New("groth16: verifying key has an empty IC basis")

// PreparedVerifyingKey precomputes the parts of the Groth16 verification
// equation that don't depend on a specific proof or its public inputs, so
// the aggregated check in verify.go pays for them once per batch rather than
// once per proof.
type PreparedVerifyingKey struct {
	VK        VerifyingKey
	AlphaBeta curve.GT // e(Alpha, Beta)
}

// Prepare computes the PreparedVerifyingKey for vk.
func Prepare(vk VerifyingKey) (*PreparedVerifyingKey, error) {
	if len(vk.IC) == 0 {
		return nil, ErrEmptyIC
	}
	alphaBeta, err := curve.Pairing([]curve.G1{vk.Alpha}, []curve.G2{vk.Beta})
	if err != nil {
		return nil, err
	}
	return &PreparedVerifyingKey{VK: vk, AlphaBeta: alphaBeta}, nil
}

// InputCommitment folds a single proof's public inputs against the
// verifying key's IC basis: IC[0] + sum_j inputs[j]*IC[j+1].
func InputCommitment(vk VerifyingKey, inputs []curve.Scalar) (curve.G1, error) {
	if len(inputs) != len(vk.IC)-1 {
		return curve.G1{}, errors.New("groth16: public input count does not match IC basis")
	}
	ops := curve.G1Ops{}
	acc := vk.IC[0]
	for j, x := range inputs {
		acc = ops.Add(acc, ops.ScalarMul(vk.IC[j+1], x))
	}
	return acc, nil
}

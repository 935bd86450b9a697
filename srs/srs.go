// Package srs holds the structured reference string the aggregation protocol
// draws its commitment keys from: a generic (unspecialized) SRS produced once
// and shared by every batch size, and the prover/verifier views specialized
// to a concrete proof count.
package srs

import (
	"errors"
	"io"

	"github.com/go-snarkpack/aggregate/curve"
)

// MaxSRSSize bounds how large a generic SRS (and therefore the largest batch
// it can specialize to) this module will construct or accept.
const MaxSRSSize = 1 << 20

// ErrSRSTooLarge is returned by NewGenericSRS when the requested size exceeds
// MaxSRSSize or is not positive.
var ErrSRSTooLarge = errors.New("srs: requested size exceeds MaxSRSSize")

// ErrBatchTooLarge is returned when Specialize is asked for more proofs than
// the generic SRS was built to support; Specialize also returns it for a
// batch size below two or one that is not a power of two.
var ErrBatchTooLarge = errors.New("srs: batch size exceeds generic SRS capacity")

// GenericSRS holds the full, unspecialized structured reference string: two
// independent secrets u, v baked into power vectors over both groups, from
// degree 0 up to 2*n-1. Setting this up for real use requires a trusted
// ceremony this module deliberately does not implement; NewGenericSRS below
// is the insecure single-party toy generator used by tests and local
// experimentation.
type GenericSRS struct {
	G curve.G1
	H curve.G2

	GAlphaU []curve.G1 // g^(u^i), i = 0..2n-1
	GAlphaV []curve.G1 // g^(v^i)
	HAlphaU []curve.G2 // h^(u^i)
	HAlphaV []curve.G2 // h^(v^i)
}

// Len reports how many proofs this generic SRS can specialize up to (half
// the power-vector length, since the W-key occupies the upper half).
func (g *GenericSRS) Len() int {
	return len(g.GAlphaU) / 2
}

// NewGenericSRS builds a GenericSRS supporting batches of up to n proofs,
// drawing the two toxic-waste secrets u, v from r. This is the insecure,
// single-party construction used for tests; production deployments must
// replace it with the output of a real setup ceremony.
func NewGenericSRS(n int, r io.Reader) (*GenericSRS, error) {
	if n <= 0 || n > MaxSRSSize {
		return nil, ErrSRSTooLarge
	}
	u, err := randomNonzeroScalar(r)
	if err != nil {
		return nil, err
	}
	v, err := randomNonzeroScalar(r)
	if err != nil {
		return nil, err
	}

	total := 2 * n
	uPowers := curve.Powers(u, total)
	vPowers := curve.Powers(v, total)

	g1Ops := curve.G1Ops{}
	g2Ops := curve.G2Ops{}
	g := curve.G1Generator()
	h := curve.G2Generator()

	gAlphaU := make([]curve.G1, total)
	gAlphaV := make([]curve.G1, total)
	hAlphaU := make([]curve.G2, total)
	hAlphaV := make([]curve.G2, total)
	for i := 0; i < total; i++ {
		gAlphaU[i] = g1Ops.ScalarMul(g, uPowers[i])
		gAlphaV[i] = g1Ops.ScalarMul(g, vPowers[i])
		hAlphaU[i] = g2Ops.ScalarMul(h, uPowers[i])
		hAlphaV[i] = g2Ops.ScalarMul(h, vPowers[i])
	}

	return &GenericSRS{
		G: g, H: h,
		GAlphaU: gAlphaU, GAlphaV: gAlphaV,
		HAlphaU: hAlphaU, HAlphaV: hAlphaV,
	}, nil
}

// ProverSRS is the prover-facing view of a GenericSRS specialized to exactly
// n proofs: the V-key and W-key power vectors GIPA folds, plus the G1 power
// vectors needed to build the W-key's KZG opening. The W-key lives in the
// shifted range g^(u^(n+i)), so the polynomial its opening divides is
// X^n*f_w(X) of degree 2n-1, and the quotient's multi-exponentiation spans
// degrees 0..2n-2 — almost the full power range of the generic setup.
type ProverSRS struct {
	N int

	VKeyA, VKeyB []curve.G2 // h^(u^i), h^(v^i), i = 0..n-1
	WKeyA, WKeyB []curve.G1 // g^(u^(n+i)), g^(v^(n+i)), i = 0..n-1

	WOpeningU, WOpeningV []curve.G1 // g^(u^i), g^(v^i), i = 0..2n-2
}

// VerifierSRS is the verifier-facing view: the generators plus the four
// scalar-independent KZG anchors.
type VerifierSRS struct {
	N int

	G curve.G1
	H curve.G2

	GAlphaU curve.G1
	GAlphaV curve.G1
	HAlphaU curve.G2
	HAlphaV curve.G2
}

// Specialize slices a GenericSRS down to the views needed to aggregate or
// verify a batch of exactly n proofs. n must be a power of two and must not
// exceed the generic SRS's capacity.
func Specialize(g *GenericSRS, n int) (*ProverSRS, *VerifierSRS, error) {
	if n < 2 || n > g.Len() {
		return nil, nil, ErrBatchTooLarge
	}
	if n&(n-1) != 0 {
		return nil, nil, ErrBatchTooLarge
	}

	prover := &ProverSRS{
		N:           n,
		VKeyA:       append([]curve.G2(nil), g.HAlphaU[:n]...),
		VKeyB:       append([]curve.G2(nil), g.HAlphaV[:n]...),
		WKeyA:       append([]curve.G1(nil), g.GAlphaU[n:2*n]...),
		WKeyB:       append([]curve.G1(nil), g.GAlphaV[n:2*n]...),
		WOpeningU: append([]curve.G1(nil), g.GAlphaU[:2*n-1]...),
		WOpeningV: append([]curve.G1(nil), g.GAlphaV[:2*n-1]...),
	}

	verifier := &VerifierSRS{
		N:       n,
		G:       g.G,
		H:       g.H,
		GAlphaU: g.GAlphaU[1],
		GAlphaV: g.GAlphaV[1],
		HAlphaU: g.HAlphaU[1],
		HAlphaV: g.HAlphaV[1],
	}

	return prover, verifier, nil
}

func randomNonzeroScalar(r io.Reader) (curve.Scalar, error) {
	var buf [64]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return curve.Scalar{}, err
		}
		var s curve.Scalar
		s.SetBytes(buf[:])
		if !s.IsZero() {
			return s, nil
		}
	}
}

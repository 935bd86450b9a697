package ipa

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/go-snarkpack/aggregate/curve"
)

// PairingProduct computes prod_i e(a_i, b_i). Exported for the root
// package's prover/verifier, which need it directly for the Groth16-side
// batched pairing (ip_ab) in addition to the internal GIPA cross terms.
func PairingProduct(a []curve.G1, b []curve.G2) (curve.GT, error) {
	return pairingProduct(a, b)
}

// MSM computes sum_i scalars[i]*points[i]. Exported for the same reason as
// PairingProduct.
func MSM(points []curve.G1, scalars []curve.Scalar) (curve.G1, error) {
	return msm(points, scalars)
}

// pairingProduct computes prod_i e(a_i, b_i) by chunking the Miller loop
// across runtime.GOMAXPROCS(0) workers and reducing the partial GT values in
// fixed chunk order, so the result doesn't depend on goroutine scheduling.
func pairingProduct(a []curve.G1, b []curve.G2) (curve.GT, error) {
	if len(a) != len(b) {
		return curve.GT{}, ErrInvalidIPVectorLength
	}
	if len(a) == 0 {
		return curve.GTOne(), nil
	}

	chunks := chunkRanges(len(a), runtime.GOMAXPROCS(0))
	partials := make([]curve.GT, len(chunks))

	var g errgroup.Group
	for idx, c := range chunks {
		idx, c := idx, c
		g.Go(func() error {
			z, err := curve.MillerLoop(a[c.start:c.end], b[c.start:c.end])
			if err != nil {
				return ErrInvalidPairing
			}
			partials[idx] = z
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return curve.GT{}, err
	}

	acc := curve.GTOne()
	for _, p := range partials {
		acc = curve.GTMul(acc, p)
	}
	return curve.FinalExponentiation(acc), nil
}

// msm computes sum_i scalars[i]*points[i], chunking the multi-exponentiation
// across workers and reducing the partial sums in fixed chunk order.
func msm(points []curve.G1, scalars []curve.Scalar) (curve.G1, error) {
	if len(points) != len(scalars) {
		return curve.G1{}, ErrInvalidIPVectorLength
	}
	if len(points) == 0 {
		return curve.G1{}, nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunks := chunkRanges(len(points), workers)
	partials := make([]curve.G1, len(chunks))
	ops := curve.G1Ops{}

	var g errgroup.Group
	for idx, c := range chunks {
		idx, c := idx, c
		g.Go(func() error {
			z, err := ops.MultiExp(points[c.start:c.end], scalars[c.start:c.end], 1)
			if err != nil {
				return err
			}
			partials[idx] = z
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return curve.G1{}, err
	}

	acc := partials[0]
	for _, p := range partials[1:] {
		acc = ops.Add(acc, p)
	}
	return acc, nil
}

// Package curve is the thin adapter over the host pairing library. Every other
// package in this module reaches the curve only through the types and helpers
// declared here, so swapping the underlying library stays a one-package change.
package curve

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// G1, G2, GT and Scalar are the four algebraic objects the aggregation
// protocol operates on, fixed to BN254 (the curve used throughout the
// reference implementation this protocol is drawn from).
type (
	G1     = bn254.G1Affine
	G2     = bn254.G2Affine
	GT     = bn254.GT
	Scalar = fr.Element
)

// ErrPairingFailed signals that the underlying library rejected a pairing,
// Miller-loop or pairing-check computation (for example mismatched input
// lengths). A pairing-check equation that simply does not hold is reported
// by PairingCheck as false with a nil error, not as ErrPairingFailed.
var ErrPairingFailed = errors.New("curve: pairing computation failed")

// G1Generator and G2Generator return the fixed generators of G1 and G2.
func G1Generator() G1 {
	_, _, g1, _ := bn254.Generators()
	return g1
}

func G2Generator() G2 {
	_, _, _, g2 := bn254.Generators()
	return g2
}

// ScalarFromUint64 lifts a small integer into Fr.
func ScalarFromUint64(v uint64) Scalar {
	var s Scalar
	s.SetUint64(v)
	return s
}

// Powers returns (1, x, x^2, ..., x^(n-1)).
func Powers(x Scalar, n int) []Scalar {
	powers := make([]Scalar, n)
	if n == 0 {
		return powers
	}
	powers[0].SetOne()
	for i := 1; i < n; i++ {
		powers[i].Mul(&powers[i-1], &x)
	}
	return powers
}

// InvertAll batch-inverts every element of xs; every element must be nonzero.
func InvertAll(xs []Scalar) []Scalar {
	return fr.BatchInvert(xs)
}

// MultiExpConfig builds a gnark-crypto multi-exponentiation config pinned to
// nbTasks worker goroutines, so callers control parallelism explicitly rather
// than relying on the library's runtime.NumCPU() default.
func MultiExpConfig(nbTasks int) ecc.MultiExpConfig {
	return ecc.MultiExpConfig{NbTasks: nbTasks}
}

// Pairing computes e(p, q) via a single Miller loop plus final exponentiation.
func Pairing(p []G1, q []G2) (GT, error) {
	out, err := bn254.Pair(p, q)
	if err != nil {
		return GT{}, ErrPairingFailed
	}
	return out, nil
}

// MillerLoop computes the (pre-final-exponentiation) multi-Miller-loop value
// of p and q, so callers can accumulate several partial products and apply a
// single final exponentiation at the end.
func MillerLoop(p []G1, q []G2) (GT, error) {
	out, err := bn254.MillerLoop(p, q)
	if err != nil {
		return GT{}, ErrPairingFailed
	}
	return out, nil
}

// FinalExponentiation normalizes a Miller-loop accumulator into the
// cyclotomic-subgroup-canonical GT element.
func FinalExponentiation(z GT) GT {
	return bn254.FinalExponentiation(&z)
}

// PairingCheck reports whether prod_i e(p_i, q_i) == 1.
func PairingCheck(p []G1, q []G2) (bool, error) {
	ok, err := bn254.PairingCheck(p, q)
	if err != nil {
		return false, ErrPairingFailed
	}
	return ok, nil
}

// GTOne returns the GT multiplicative identity.
func GTOne() GT {
	var z GT
	z.SetOne()
	return z
}

// GTMul returns a*b.
func GTMul(a, b GT) GT {
	var z GT
	z.Mul(&a, &b)
	return z
}

// GTInverse returns a^-1.
func GTInverse(a GT) GT {
	var z GT
	z.Inverse(&a)
	return z
}

// GTExp returns a^s.
func GTExp(a GT, s Scalar) GT {
	var bi big.Int
	s.BigInt(&bi)
	var z GT
	z.Exp(a, &bi)
	return z
}

// GTEqual reports whether a == b.
func GTEqual(a, b GT) bool {
	return a.Equal(&b)
}

// ScalarNeg returns -s.
func ScalarNeg(s Scalar) Scalar {
	var z Scalar
	z.Neg(&s)
	return z
}

// G1Neg and G2Neg return -p.
func G1Neg(p G1) G1 {
	var z G1
	z.Neg(&p)
	return z
}

func G2Neg(p G2) G2 {
	var z G2
	z.Neg(&p)
	return z
}

// G1Ops and G2Ops bundle the group arithmetic the generic key and
// commitment code needs, letting it be written once as functions
// parametrized over the operation set instead of duplicated per curve.
type (
	G1Ops struct{}
	G2Ops struct{}
)

func (G1Ops) Add(a, b G1) G1 {
	var z G1
	z.Add(&a, &b)
	return z
}

func (G1Ops) ScalarMul(a G1, s Scalar) G1 {
	var bi big.Int
	s.BigInt(&bi)
	var z G1
	z.ScalarMultiplication(&a, &bi)
	return z
}

func (G1Ops) MultiExp(points []G1, scalars []Scalar, nbTasks int) (G1, error) {
	var z G1
	if _, err := z.MultiExp(points, scalars, MultiExpConfig(nbTasks)); err != nil {
		return G1{}, err
	}
	return z, nil
}

func (G2Ops) Add(a, b G2) G2 {
	var z G2
	z.Add(&a, &b)
	return z
}

func (G2Ops) ScalarMul(a G2, s Scalar) G2 {
	var bi big.Int
	s.BigInt(&bi)
	var z G2
	z.ScalarMultiplication(&a, &bi)
	return z
}

func (G2Ops) MultiExp(points []G2, scalars []Scalar, nbTasks int) (G2, error) {
	var z G2
	if _, err := z.MultiExp(points, scalars, MultiExpConfig(nbTasks)); err != nil {
		return G2{}, err
	}
	return z, nil
}

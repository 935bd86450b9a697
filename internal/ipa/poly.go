package ipa

import "github.com/go-snarkpack/aggregate/curve"

// FinalKeyPolynomial returns the coefficients (ascending degree) of
//
//	f(X) = prod_{k=0}^{L-1} (1 + challenges[k] * X^(2^(L-1-k)))
//
// the polynomial whose evaluation at a commitment key's original secret
// exponent equals the single residual element GIPA folding collapses that
// key's power-vector to. Folding a V-key's A-stream (h^(u^i)) with
// challenges[k]^-1 at level k yields f_v(u) with challenges built from the
// inverse challenges, and the MIPP Y-vector of powers of a scalar r folds
// the same way to f_v(r); folding a W-key follows the same shape with the
// challenges themselves. Callers
// pass whichever set (challenges or their inverses) matches the fold they
// performed.
func FinalKeyPolynomial(challenges []curve.Scalar) []curve.Scalar {
	l := len(challenges)
	coeffs := []curve.Scalar{curve.ScalarFromUint64(1)}
	length := 1
	for k := 0; k < l; k++ {
		t := 1 << (l - 1 - k)
		next := make([]curve.Scalar, length+t)
		copy(next, coeffs)
		for i := 0; i < length; i++ {
			var term curve.Scalar
			term.Mul(&coeffs[i], &challenges[k])
			next[i+t].Add(&next[i+t], &term)
		}
		coeffs = next
		length = len(next)
	}
	return coeffs
}

// RescaleCoefficients returns the coefficients of f(s*X): coefficient i is
// multiplied by s^i. Used to account for a key whose entries were rescaled
// by powers of a scalar before folding — the folded residual then evaluates
// the original polynomial at s times the secret.
func RescaleCoefficients(coeffs []curve.Scalar, s curve.Scalar) []curve.Scalar {
	out := make([]curve.Scalar, len(coeffs))
	pow := curve.ScalarFromUint64(1)
	for i := range coeffs {
		out[i].Mul(&coeffs[i], &pow)
		pow.Mul(&pow, &s)
	}
	return out
}

// EvaluatePolynomial evaluates coeffs (ascending degree) at x via Horner's
// method.
func EvaluatePolynomial(coeffs []curve.Scalar, x curve.Scalar) curve.Scalar {
	var acc curve.Scalar
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(&acc, &x)
		acc.Add(&acc, &coeffs[i])
	}
	return acc
}

// DivideByLinear returns the coefficients (ascending degree) of
// q(X) = (f(X) - f(z)) / (X - z), given f's coefficients and the evaluation
// point z. f must have degree at least 1.
func DivideByLinear(coeffs []curve.Scalar, z curve.Scalar) []curve.Scalar {
	n := len(coeffs)
	if n <= 1 {
		return nil
	}
	quotient := make([]curve.Scalar, n-1)
	quotient[n-2] = coeffs[n-1]
	for i := n - 2; i >= 1; i-- {
		var t curve.Scalar
		t.Mul(&z, &quotient[i])
		t.Add(&t, &coeffs[i])
		quotient[i-1] = t
	}
	return quotient
}

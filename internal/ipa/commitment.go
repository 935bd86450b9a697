package ipa

import "github.com/go-snarkpack/aggregate/curve"

// Output is the two-component value every commitment in this protocol
// produces: T pairs the data against the key's A-stream, U against its
// B-stream (the two independent KZG-opened secrets).
type Output struct {
	T curve.GT
	U curve.GT
}

// combineOutputs folds one GIPA level's (left, right) commitments back into
// an accumulator: next = cur . left^xInv . right^x.
func combineOutputs(cur, left, right Output, xInv, x curve.Scalar) Output {
	t := curve.GTMul(cur.T, curve.GTMul(curve.GTExp(left.T, xInv), curve.GTExp(right.T, x)))
	u := curve.GTMul(cur.U, curve.GTMul(curve.GTExp(left.U, xInv), curve.GTExp(right.U, x)))
	return Output{T: t, U: u}
}

// SingleG1 commits a G1 vector a against a VKey (MIPP's commitment scheme):
// T = prod e(a_i, vkey.A_i), U = prod e(a_i, vkey.B_i).
func SingleG1(vkey VKey, a []curve.G1) (Output, error) {
	if !hasCorrectLen(vkey, len(a)) {
		return Output{}, ErrInvalidKeyLength
	}
	t, err := pairingProduct(a, vkey.A)
	if err != nil {
		return Output{}, err
	}
	u, err := pairingProduct(a, vkey.B)
	if err != nil {
		return Output{}, err
	}
	return Output{T: t, U: u}, nil
}

// Pair commits an (a,b) proof-vector pair against a (vkey,wkey) pair
// (TIPP's commitment scheme):
// T = prod e(a_i, vkey.A_i) * e(wkey.A_i, b_i)
// U = prod e(a_i, vkey.B_i) * e(wkey.B_i, b_i)
func Pair(vkey VKey, wkey WKey, a []curve.G1, b []curve.G2) (Output, error) {
	n := len(a)
	if len(b) != n || !hasCorrectLen(vkey, n) || !hasCorrectLen(wkey, n) {
		return Output{}, ErrInvalidKeyLength
	}

	tAV, err := pairingProduct(a, vkey.A)
	if err != nil {
		return Output{}, err
	}
	tWB, err := pairingProduct(wkey.A, b)
	if err != nil {
		return Output{}, err
	}
	uAV, err := pairingProduct(a, vkey.B)
	if err != nil {
		return Output{}, err
	}
	uWB, err := pairingProduct(wkey.B, b)
	if err != nil {
		return Output{}, err
	}

	return Output{T: curve.GTMul(tAV, tWB), U: curve.GTMul(uAV, uWB)}, nil
}

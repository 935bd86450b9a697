package aggregate

import (
	"io"

	"github.com/go-snarkpack/aggregate/curve"
	"github.com/go-snarkpack/aggregate/internal/ipa"
	"github.com/go-snarkpack/aggregate/srs"
)

// buildKZGOpenings constructs the four KZG opening proofs (V-key at u and v,
// W-key at u and v) for the final-key polynomials at z, from the prover's
// SRS. fvCoeffs/fwCoeffs are the V-key/W-key final-key polynomial
// coefficients in ascending-degree order.
//
// The V-key's entries are h^(u^i) for i in [0, n), so its final residual is
// h^(f_v(u)) and the opened polynomial is f_v itself. The W-key's entries
// sit in the shifted range g^(u^(n+i)), so the polynomial actually opened
// is X^n*f_w(X) for whatever coefficient vector fwCoeffs describes the
// folded key (the prover passes coefficients already rescaled for the r^-i
// the key absorbed); its quotient by (X - z) has degree 2n-2 and is
// exponentiated against the prover SRS's WOpening power vectors.
func buildKZGOpenings(proverSRS *srs.ProverSRS, fvCoeffs, fwCoeffs []curve.Scalar, z curve.Scalar) (VKeyOpening, WKeyOpening, error) {
	qv := ipa.DivideByLinear(fvCoeffs, z)

	fwShifted := make([]curve.Scalar, proverSRS.N+len(fwCoeffs))
	copy(fwShifted[proverSRS.N:], fwCoeffs)
	qw := ipa.DivideByLinear(fwShifted, z)

	g1Ops := curve.G1Ops{}
	g2Ops := curve.G2Ops{}

	piVU, err := g2Ops.MultiExp(proverSRS.VKeyA[:len(qv)], qv, 1)
	if err != nil {
		return VKeyOpening{}, WKeyOpening{}, err
	}
	piVV, err := g2Ops.MultiExp(proverSRS.VKeyB[:len(qv)], qv, 1)
	if err != nil {
		return VKeyOpening{}, WKeyOpening{}, err
	}
	piWU, err := g1Ops.MultiExp(proverSRS.WOpeningU[:len(qw)], qw, 1)
	if err != nil {
		return VKeyOpening{}, WKeyOpening{}, err
	}
	piWV, err := g1Ops.MultiExp(proverSRS.WOpeningV[:len(qw)], qw, 1)
	if err != nil {
		return VKeyOpening{}, WKeyOpening{}, err
	}

	return VKeyOpening{ProofU: piVU, ProofV: piVV}, WKeyOpening{ProofU: piWU, ProofV: piWV}, nil
}

// verifyKZGOpenings checks the four opening equations (V-key at u and v,
// W-key at u and v) batched into one six-pairing PairingCheck. Each equation
// gets its own verifier-drawn random weight so no two can cancel against
// each other; the two V-key equations share a fixed G1 argument (the
// generator) and the two W-key equations share a fixed G2 argument, so each
// pair's fixed side folds into a single combined pairing term while the
// varying side (the opening proof, against its per-secret anchor) stays
// separate.
func verifyKZGOpenings(vsrs *srs.VerifierSRS, finalVKey [2]curve.G2, finalWKey [2]curve.G1, fvZ, fwZ, z curve.Scalar, vOpen VKeyOpening, wOpen WKeyOpening, rngSrc io.Reader) (bool, error) {
	rho1, err := randomScalar(rngSrc)
	if err != nil {
		return false, err
	}
	rho2, err := randomScalar(rngSrc)
	if err != nil {
		return false, err
	}
	rho3, err := randomScalar(rngSrc)
	if err != nil {
		return false, err
	}

	g1Ops := curve.G1Ops{}
	g2Ops := curve.G2Ops{}

	cu := g2Ops.Add(finalVKey[0], curve.G2Neg(g2Ops.ScalarMul(vsrs.H, fvZ)))
	cv := g2Ops.Add(finalVKey[1], curve.G2Neg(g2Ops.ScalarMul(vsrs.H, fvZ)))
	vkeyLHS := g2Ops.Add(cu, g2Ops.ScalarMul(cv, rho1))

	au := g1Ops.Add(vsrs.GAlphaU, curve.G1Neg(g1Ops.ScalarMul(vsrs.G, z)))
	av := g1Ops.Add(vsrs.GAlphaV, curve.G1Neg(g1Ops.ScalarMul(vsrs.G, z)))

	cu2 := g1Ops.Add(finalWKey[0], curve.G1Neg(g1Ops.ScalarMul(vsrs.G, fwZ)))
	cv2 := g1Ops.Add(finalWKey[1], curve.G1Neg(g1Ops.ScalarMul(vsrs.G, fwZ)))
	wkeyLHS := g1Ops.Add(g1Ops.ScalarMul(cu2, rho2), g1Ops.ScalarMul(cv2, rho3))

	bu := g2Ops.Add(vsrs.HAlphaU, curve.G2Neg(g2Ops.ScalarMul(vsrs.H, z)))
	bv := g2Ops.Add(vsrs.HAlphaV, curve.G2Neg(g2Ops.ScalarMul(vsrs.H, z)))

	g1s := []curve.G1{
		vsrs.G, curve.G1Neg(au), curve.G1Neg(g1Ops.ScalarMul(av, rho1)),
		wkeyLHS, curve.G1Neg(g1Ops.ScalarMul(wOpen.ProofU, rho2)), curve.G1Neg(g1Ops.ScalarMul(wOpen.ProofV, rho3)),
	}
	g2s := []curve.G2{
		vkeyLHS, vOpen.ProofU, vOpen.ProofV,
		vsrs.H, bu, bv,
	}

	return curve.PairingCheck(g1s, g2s)
}

// randomScalar draws a uniform scalar from r. Soundness of the pairing-check
// batching above holds over the verifier's own random choice, so r need not
// be tied to the proof transcript, but must not be predictable in advance to
// whoever produced the proof being checked.
func randomScalar(r io.Reader) (curve.Scalar, error) {
	var buf [64]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return curve.Scalar{}, err
	}
	var s curve.Scalar
	s.SetBytes(buf[:])
	return s, nil
}

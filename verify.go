package aggregate

import (
	"io"
	"math/big"

	"github.com/go-snarkpack/aggregate/curve"
	"github.com/go-snarkpack/aggregate/groth16"
	"github.com/go-snarkpack/aggregate/internal/ipa"
	"github.com/go-snarkpack/aggregate/srs"
	"github.com/go-snarkpack/aggregate/transcript"
)

// VerifyAggregateProof checks that proof correctly attests to n = NProofs
// independently-verifying Groth16 proofs against pvk, one set of public
// inputs per proof. tr is the caller's transcript, seeded identically to the
// one the prover used (same domain tag, same pre-protocol appends — e.g. a
// "public-inputs" binding — in the same order); this function never creates
// a transcript itself. rngSrc feeds the randomized batching step that folds
// the four KZG-opening pairing equations down to six pairings instead of
// eight; it need not be a cryptographic RNG tied to the proof (soundness for
// that step holds over the verifier's own random choice, not Fiat-Shamir),
// but must not be predictable to whoever produced proof.
func VerifyAggregateProof(verifierSRS *srs.VerifierSRS, pvk *groth16.PreparedVerifyingKey, publicInputs [][]curve.Scalar, proof *AggregateProof, rngSrc io.Reader, tr *transcript.Transcript) error {
	if err := proof.parsingCheck(); err != nil {
		return err
	}
	n := int(proof.TMIPP.Gipa.NProofs)
	if len(publicInputs) != n {
		return &ProofError{Reason: "public input count does not match proof count"}
	}
	if verifierSRS.N != n {
		return ErrInvalidSRS
	}

	gipaProof := proof.TMIPP.Gipa

	// 1. Replay the transcript exactly as the prover drove it, using the
	// proof's own recorded values instead of recomputing commitments. tr
	// must already carry whatever pre-protocol appends the prover's
	// transcript carried (domain tag, "public-inputs" binding, etc.).
	tr.AppendScalar("nproofs", curve.ScalarFromUint64(uint64(n)))
	tr.AppendGT("com-ab-t", proof.ComAB.T)
	tr.AppendGT("com-ab-u", proof.ComAB.U)
	tr.AppendGT("com-c-t", proof.ComC.T)
	tr.AppendGT("com-c-u", proof.ComC.U)

	r := tr.ChallengeScalar("r")
	tr.AppendGT("ip-ab", proof.IPAB)
	tr.AppendG1("agg-c", proof.AggC)

	challenges, err := ipa.ReDeriveChallenges(tr, gipaProof.CommsAB, gipaProof.CommsC, gipaProof.ZAB, gipaProof.ZC)
	if err != nil {
		return err
	}
	z := tr.ChallengeScalar("z")

	// 2. Evaluate the final-key polynomials at z (and, for the MIPP
	// residual, at r) from the re-derived challenges alone.
	fvCoeffs := ipa.FinalKeyPolynomial(curve.InvertAll(challenges))
	fvZ := ipa.EvaluatePolynomial(fvCoeffs, z)
	finalR := ipa.EvaluatePolynomial(fvCoeffs, r)

	// The W-key the prover folds is rescaled by inverse powers of r (see
	// AggregateProofs), so the opened polynomial is X^n*f_w(X/r): its value
	// at z carries both the r^-i coefficient rescale and the z^n shift from
	// the key's power range starting at u^n.
	var rInv curve.Scalar
	rInv.Inverse(&r)
	fwCoeffs := ipa.RescaleCoefficients(ipa.FinalKeyPolynomial(challenges), rInv)
	fwZ := ipa.EvaluatePolynomial(fwCoeffs, z)
	var zPowN curve.Scalar
	zPowN.Exp(z, big.NewInt(int64(n)))
	fwZ.Mul(&fwZ, &zPowN)

	// 3. Fold the outer commitments through every recorded GIPA level and
	// check the result matches what the length-one residuals commit to.
	fc := ipa.FoldCheck{
		ComAB: proof.ComAB,
		ComC:  proof.ComC,
		ZAB:   proof.IPAB,
		ZC:    proof.AggC,
		Proof: &ipa.GipaResult{
			CommsAB: gipaProof.CommsAB,
			CommsC:  gipaProof.CommsC,
			ZAB:     gipaProof.ZAB,
			ZC:      gipaProof.ZC,
		},
		Challenges: challenges,
	}
	expectedComAB, expectedComC, expectedZAB, expectedZC := ipa.Recombine(fc)

	finalVKey := ipa.VKey{A: []curve.G2{gipaProof.FinalVKey[0]}, B: []curve.G2{gipaProof.FinalVKey[1]}}
	finalWKey := ipa.WKey{A: []curve.G1{gipaProof.FinalWKey[0]}, B: []curve.G1{gipaProof.FinalWKey[1]}}

	wantComAB, err := ipa.Pair(finalVKey, finalWKey, []curve.G1{gipaProof.FinalA}, []curve.G2{gipaProof.FinalB})
	if err != nil {
		return err
	}
	wantZAB, err := ipa.PairingProduct([]curve.G1{gipaProof.FinalA}, []curve.G2{gipaProof.FinalB})
	if err != nil {
		return err
	}
	wantComC, err := ipa.SingleG1(finalVKey, []curve.G1{gipaProof.FinalC})
	if err != nil {
		return err
	}
	g1Ops := curve.G1Ops{}
	wantZC := g1Ops.ScalarMul(gipaProof.FinalC, finalR)

	if !curve.GTEqual(expectedComAB.T, wantComAB.T) || !curve.GTEqual(expectedComAB.U, wantComAB.U) {
		return ErrVerificationFailed
	}
	if !curve.GTEqual(expectedZAB, wantZAB) {
		return ErrVerificationFailed
	}
	if !curve.GTEqual(expectedComC.T, wantComC.T) || !curve.GTEqual(expectedComC.U, wantComC.U) {
		return ErrVerificationFailed
	}
	if !wantZC.Equal(&expectedZC) {
		return ErrVerificationFailed
	}

	// 4. Verify the KZG openings of the final V-key and W-key at z, batched
	// into a single six-pairing check.
	ok, err := verifyKZGOpenings(verifierSRS, gipaProof.FinalVKey, gipaProof.FinalWKey, fvZ, fwZ, z, proof.TMIPP.VKeyOpening, proof.TMIPP.WKeyOpening, rngSrc)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerificationFailed
	}

	// 5. Check the batched Groth16 verification equation itself.
	rVec := curve.Powers(r, n)
	var sumR curve.Scalar
	for _, x := range rVec {
		sumR.Add(&sumR, &x)
	}

	aggIC, err := aggregateInputCommitments(pvk.VK, publicInputs, rVec)
	if err != nil {
		return err
	}

	rhsPairing, err := ipa.PairingProduct([]curve.G1{aggIC, proof.AggC}, []curve.G2{pvk.VK.Gamma, pvk.VK.Delta})
	if err != nil {
		return err
	}
	rhs := curve.GTMul(curve.GTExp(pvk.AlphaBeta, sumR), rhsPairing)
	if !curve.GTEqual(proof.IPAB, rhs) {
		return ErrVerificationFailed
	}

	return nil
}

// aggregateInputCommitments folds n proofs' public inputs, weighted by
// rVec[i] = r^i, into the single G1 point the batched Groth16 equation's
// gamma-pairing term needs.
func aggregateInputCommitments(vk groth16.VerifyingKey, publicInputs [][]curve.Scalar, rVec []curve.Scalar) (curve.G1, error) {
	m := len(vk.IC) - 1
	weighted := make([]curve.Scalar, m)
	var sumR curve.Scalar
	for i, inputs := range publicInputs {
		if len(inputs) != m {
			return curve.G1{}, &ProofError{Reason: "public input length does not match verifying key"}
		}
		sumR.Add(&sumR, &rVec[i])
		for j, x := range inputs {
			var term curve.Scalar
			term.Mul(&x, &rVec[i])
			weighted[j].Add(&weighted[j], &term)
		}
	}
	g1Ops := curve.G1Ops{}
	acc, err := g1Ops.MultiExp(vk.IC[1:], weighted, 1)
	if err != nil {
		return curve.G1{}, err
	}
	acc = g1Ops.Add(acc, g1Ops.ScalarMul(vk.IC[0], sumR))
	return acc, nil
}


package aggregate

import (
	"github.com/go-snarkpack/aggregate/curve"
	"github.com/go-snarkpack/aggregate/groth16"
	"github.com/go-snarkpack/aggregate/internal/ipa"
	"github.com/go-snarkpack/aggregate/srs"
	"github.com/go-snarkpack/aggregate/transcript"
)

// AggregateProofs batches n independently-verifying Groth16 proofs into a
// single O(log n)-size proof. proverSRS must have been specialized to
// exactly n = len(proofs) proofs via srs.Specialize. tr is the caller's own
// transcript, already seeded with a domain tag and any pre-protocol appends
// (e.g. a "public-inputs" binding) the caller wants bound into the Fiat-
// Shamir challenges; this function only ever appends to it using its own
// fixed internal labels, never creates one itself, so the verifier's
// transcript must be seeded identically before VerifyAggregateProof runs.
func AggregateProofs(proverSRS *srs.ProverSRS, tr *transcript.Transcript, proofs []groth16.Proof) (*AggregateProof, error) {
	n := len(proofs)
	if n < 2 {
		return nil, &ProofError{Reason: "need at least two proofs to aggregate"}
	}
	if n > srs.MaxSRSSize {
		return nil, &ProofError{Reason: "proof count exceeds the maximum supported batch size"}
	}
	if _, ok := logTwo(uint32(n)); !ok {
		return nil, &ProofError{Reason: "proof count is not a power of two"}
	}
	if proverSRS.N != n {
		return nil, ErrInvalidSRS
	}

	// 1. Unpack the proof vectors.
	a := make([]curve.G1, n)
	b := make([]curve.G2, n)
	c := make([]curve.G1, n)
	for i, p := range proofs {
		a[i], b[i], c[i] = p.A, p.B, p.C
	}

	vkey := ipa.VKey{A: proverSRS.VKeyA, B: proverSRS.VKeyB}
	wkey := ipa.WKey{A: proverSRS.WKeyA, B: proverSRS.WKeyB}

	tr.AppendScalar("nproofs", curve.ScalarFromUint64(uint64(n)))

	// 2. Commit to the raw (A, B) and (C) vectors and bind the commitments
	// into the transcript before drawing any challenge from them.
	comAB, err := ipa.Pair(vkey, wkey, a, b)
	if err != nil {
		return nil, err
	}
	comC, err := ipa.SingleG1(vkey, c)
	if err != nil {
		return nil, err
	}
	tr.AppendGT("com-ab-t", comAB.T)
	tr.AppendGT("com-ab-u", comAB.U)
	tr.AppendGT("com-c-t", comC.T)
	tr.AppendGT("com-c-u", comC.U)

	// 3. Draw the random linear-combination scalar r and rescale B by its
	// powers, turning n independent pairing checks into one batched one.
	r := tr.ChallengeScalar("r")
	rVec := curve.Powers(r, n)
	var rInv curve.Scalar
	rInv.Inverse(&r)
	rInvVec := curve.Powers(rInv, n)

	g2Ops := curve.G2Ops{}
	bScaled := make([]curve.G2, n)
	for i := range b {
		bScaled[i] = g2Ops.ScalarMul(b[i], rVec[i])
	}

	// com_ab was committed to the unscaled B, and Pair matches the W-key
	// against the B side, so W must absorb the inverse rescale: pairing
	// w_i^(r^-i) against B_i^(r^i) leaves every per-entry product unchanged,
	// making com_ab a valid commitment to (A, B^r) under (V, W^(r^-1)).
	wkeyScaled, err := ipa.ScaleWKey(wkey, rInvVec)
	if err != nil {
		return nil, err
	}

	ipAB, err := ipa.PairingProduct(a, bScaled)
	if err != nil {
		return nil, err
	}
	aggC, err := ipa.MSM(c, rVec)
	if err != nil {
		return nil, err
	}
	tr.AppendGT("ip-ab", ipAB)
	tr.AppendG1("agg-c", aggC)

	// 4. Run the joint TIPP/MIPP GIPA reduction over (A, B^r, V, W^(r^-1))
	// and (C, r-powers, V), sharing one challenge per level across both.
	gipaResult, err := ipa.Prove(tr, vkey, wkeyScaled, a, bScaled, c, rVec)
	if err != nil {
		return nil, err
	}

	// 5. Open the final V-key and W-key against the setup's two secrets at
	// a fresh batching point z. Entry i of the rescaled W-key is
	// g^(u^(n+i)*r^-i), so the polynomial its fold collapses to is
	// X^n*f_w(X/r): coefficient i of f_w picks up r^-i.
	fvCoeffs := ipa.FinalKeyPolynomial(invertAll(gipaResult.Challenges))
	fwCoeffs := ipa.RescaleCoefficients(ipa.FinalKeyPolynomial(gipaResult.Challenges), rInv)
	z := tr.ChallengeScalar("z")

	vOpen, wOpen, err := buildKZGOpenings(proverSRS, fvCoeffs, fwCoeffs, z)
	if err != nil {
		return nil, err
	}

	proof := &AggregateProof{
		ComAB: comAB,
		ComC:  comC,
		IPAB:  ipAB,
		AggC:  aggC,
		TMIPP: TippMippProof{
			Gipa: GipaProof{
				NProofs:   gipaResult.NProofs,
				CommsAB:   gipaResult.CommsAB,
				CommsC:    gipaResult.CommsC,
				ZAB:       gipaResult.ZAB,
				ZC:        gipaResult.ZC,
				FinalA:    gipaResult.FinalA,
				FinalB:    gipaResult.FinalB,
				FinalC:    gipaResult.FinalC,
				FinalVKey: gipaResult.FinalVKey,
				FinalWKey: gipaResult.FinalWKey,
			},
			VKeyOpening: vOpen,
			WKeyOpening: wOpen,
		},
	}
	return proof, nil
}

func invertAll(xs []curve.Scalar) []curve.Scalar {
	return curve.InvertAll(xs)
}

package ipa

import (
	"fmt"

	"github.com/go-snarkpack/aggregate/curve"
	"github.com/go-snarkpack/aggregate/transcript"
)

// LevelPair is one GIPA level's pair of cross-commitments, recorded for both
// the TIPP (comms_ab) and MIPP (comms_c) branches of the joint reduction.
type LevelPair struct {
	Left  Output
	Right Output
}

// ZPairGT is one GIPA level's pair of cross inner-pairing-products, used by
// the TIPP branch (z_ab).
type ZPairGT struct {
	Left  curve.GT
	Right curve.GT
}

// ZPairG1 is one GIPA level's pair of cross multi-exponentiations, used by
// the MIPP branch (z_c).
type ZPairG1 struct {
	Left  curve.G1
	Right curve.G1
}

// GipaResult is everything a single joint TIPP+MIPP GIPA reduction produces:
// the recorded per-level cross-terms plus the length-one residuals both
// branches collapse to.
type GipaResult struct {
	NProofs uint32

	CommsAB []LevelPair
	CommsC  []LevelPair
	ZAB     []ZPairGT
	ZC      []ZPairG1

	FinalA    curve.G1
	FinalB    curve.G2
	FinalC    curve.G1
	FinalVKey [2]curve.G2
	FinalWKey [2]curve.G1

	// Challenges holds x_0..x_(L-1) in the order levels were processed; the
	// prover needs these to build the KZG opening, the verifier re-derives
	// the same values by replaying the proof's own recorded levels.
	Challenges []curve.Scalar
}

// Prove runs the joint TIPP/MIPP GIPA reduction: at every level it derives
// one challenge from the transcript and uses it to fold both the TIPP data
// (a, b paired against vkey, wkey) and the MIPP data (c, rVec paired against
// vkey alone) simultaneously, per the shared-challenge requirement. a, b, c
// and rVec must all have the same power-of-two length, matching vkey/wkey.
func Prove(tr *transcript.Transcript, vkey VKey, wkey WKey, a []curve.G1, b []curve.G2, c []curve.G1, rVec []curve.Scalar) (*GipaResult, error) {
	n := len(a)
	if len(b) != n || len(c) != n || len(rVec) != n || !hasCorrectLen(vkey, n) || !hasCorrectLen(wkey, n) {
		return nil, ErrInvalidIPVectorLength
	}

	res := &GipaResult{NProofs: uint32(n)}
	g1Ops := curve.G1Ops{}
	g2Ops := curve.G2Ops{}

	for level := 0; n > 1; level++ {
		m := n / 2
		aL, aR := a[:m], a[m:]
		bL, bR := b[:m], b[m:]
		cL, cR := c[:m], c[m:]
		rL, rR := rVec[:m], rVec[m:]
		vL, vR := split(vkey)
		wL, wR := split(wkey)

		zLeftAB, err := pairingProduct(aL, bR)
		if err != nil {
			return nil, err
		}
		zRightAB, err := pairingProduct(aR, bL)
		if err != nil {
			return nil, err
		}
		zLeftC, err := msm(cL, rR)
		if err != nil {
			return nil, err
		}
		zRightC, err := msm(cR, rL)
		if err != nil {
			return nil, err
		}

		cLeftAB, err := Pair(vR, wL, aL, bR)
		if err != nil {
			return nil, err
		}
		cRightAB, err := Pair(vL, wR, aR, bL)
		if err != nil {
			return nil, err
		}
		cLeftC, err := SingleG1(vR, cL)
		if err != nil {
			return nil, err
		}
		cRightC, err := SingleG1(vL, cR)
		if err != nil {
			return nil, err
		}

		appendLevel(tr, level, cLeftAB, cRightAB, cLeftC, cRightC, zLeftAB, zRightAB, zLeftC, zRightC)
		x := tr.ChallengeScalar(fmt.Sprintf("gipa-%d-challenge", level))
		xInv := invertScalar(x)

		aNew := make([]curve.G1, m)
		cNew := make([]curve.G1, m)
		bNew := make([]curve.G2, m)
		rNew := make([]curve.Scalar, m)
		for i := 0; i < m; i++ {
			aNew[i] = g1Ops.Add(aL[i], g1Ops.ScalarMul(aR[i], x))
			cNew[i] = g1Ops.Add(cL[i], g1Ops.ScalarMul(cR[i], x))
			bNew[i] = g2Ops.Add(bL[i], g2Ops.ScalarMul(bR[i], xInv))
			var term curve.Scalar
			term.Mul(&rR[i], &xInv)
			rNew[i].Add(&rL[i], &term)
		}
		vNew, err := compress(g2Ops, vL, vR, xInv)
		if err != nil {
			return nil, err
		}
		wNew, err := compress(g1Ops, wL, wR, x)
		if err != nil {
			return nil, err
		}

		res.CommsAB = append(res.CommsAB, LevelPair{Left: cLeftAB, Right: cRightAB})
		res.CommsC = append(res.CommsC, LevelPair{Left: cLeftC, Right: cRightC})
		res.ZAB = append(res.ZAB, ZPairGT{Left: zLeftAB, Right: zRightAB})
		res.ZC = append(res.ZC, ZPairG1{Left: zLeftC, Right: zRightC})
		res.Challenges = append(res.Challenges, x)

		a, b, c, rVec, vkey, wkey = aNew, bNew, cNew, rNew, vNew, wNew
		n = m
	}

	vkey, err := first(vkey)
	if err != nil {
		return nil, err
	}
	wkey, err = first(wkey)
	if err != nil {
		return nil, err
	}

	res.FinalA = a[0]
	res.FinalB = b[0]
	res.FinalC = c[0]
	res.FinalVKey = [2]curve.G2{vkey.A[0], vkey.B[0]}
	res.FinalWKey = [2]curve.G1{wkey.A[0], wkey.B[0]}
	return res, nil
}

// ReDeriveChallenges replays a proof's recorded per-level cross-terms
// through tr exactly as Prove did, returning the same challenge sequence
// without needing the original (A,B,C,rVec) vectors.
func ReDeriveChallenges(tr *transcript.Transcript, commsAB, commsC []LevelPair, zAB []ZPairGT, zC []ZPairG1) ([]curve.Scalar, error) {
	l := len(commsAB)
	if len(commsC) != l || len(zAB) != l || len(zC) != l {
		return nil, ErrInvalidIPVectorLength
	}
	challenges := make([]curve.Scalar, l)
	for level := 0; level < l; level++ {
		appendLevel(tr, level,
			commsAB[level].Left, commsAB[level].Right,
			commsC[level].Left, commsC[level].Right,
			zAB[level].Left, zAB[level].Right,
			zC[level].Left, zC[level].Right,
		)
		challenges[level] = tr.ChallengeScalar(fmt.Sprintf("gipa-%d-challenge", level))
	}
	return challenges, nil
}

// FoldCheck holds the per-branch recombination inputs the verifier needs to
// confirm a GipaResult's recorded levels actually connect the outer
// commitments to the final residuals.
type FoldCheck struct {
	ComAB      Output
	ComC       Output
	ZAB        curve.GT
	ZC         curve.G1
	Proof      *GipaResult
	Challenges []curve.Scalar
}

// Recombine folds a FoldCheck's outer commitments through every recorded
// level using the given challenges, returning the values the length-one
// residuals must equal for the proof to verify.
func Recombine(fc FoldCheck) (comAB, comC Output, zAB curve.GT, zC curve.G1) {
	comAB, comC = fc.ComAB, fc.ComC
	zAB, zC = fc.ZAB, fc.ZC
	g1Ops := curve.G1Ops{}
	for level, x := range fc.Challenges {
		xInv := invertScalar(x)
		comAB = combineOutputs(comAB, fc.Proof.CommsAB[level].Left, fc.Proof.CommsAB[level].Right, xInv, x)
		comC = combineOutputs(comC, fc.Proof.CommsC[level].Left, fc.Proof.CommsC[level].Right, xInv, x)
		zAB = curve.GTMul(zAB, curve.GTMul(curve.GTExp(fc.Proof.ZAB[level].Left, xInv), curve.GTExp(fc.Proof.ZAB[level].Right, x)))
		zC = g1Ops.Add(zC, g1Ops.Add(g1Ops.ScalarMul(fc.Proof.ZC[level].Left, xInv), g1Ops.ScalarMul(fc.Proof.ZC[level].Right, x)))
	}
	return comAB, comC, zAB, zC
}

func appendLevel(tr *transcript.Transcript, level int, cLeftAB, cRightAB, cLeftC, cRightC Output, zLeftAB, zRightAB curve.GT, zLeftC, zRightC curve.G1) {
	p := fmt.Sprintf("gipa-%d-", level)
	tr.AppendGT(p+"comm-ab-left-t", cLeftAB.T)
	tr.AppendGT(p+"comm-ab-left-u", cLeftAB.U)
	tr.AppendGT(p+"comm-ab-right-t", cRightAB.T)
	tr.AppendGT(p+"comm-ab-right-u", cRightAB.U)
	tr.AppendGT(p+"comm-c-left-t", cLeftC.T)
	tr.AppendGT(p+"comm-c-left-u", cLeftC.U)
	tr.AppendGT(p+"comm-c-right-t", cRightC.T)
	tr.AppendGT(p+"comm-c-right-u", cRightC.U)
	tr.AppendGT(p+"z-ab-left", zLeftAB)
	tr.AppendGT(p+"z-ab-right", zRightAB)
	tr.AppendG1(p+"z-c-left", zLeftC)
	tr.AppendG1(p+"z-c-right", zRightC)
}

func invertScalar(x curve.Scalar) curve.Scalar {
	var z curve.Scalar
	z.Inverse(&x)
	return z
}

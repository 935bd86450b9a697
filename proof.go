package aggregate

import (
	"math/bits"

	"github.com/go-snarkpack/aggregate/curve"
	"github.com/go-snarkpack/aggregate/internal/ipa"
	"github.com/go-snarkpack/aggregate/srs"
)

// KZGOpening is the pair of KZG opening proofs for one commitment key: one
// proof for each of the key's two independent secrets.
type KZGOpening[P any] struct {
	ProofU P
	ProofV P
}

// VKeyOpening opens a final V-key (which lives in G2).
type VKeyOpening = KZGOpening[curve.G2]

// WKeyOpening opens a final W-key (which lives in G1).
type WKeyOpening = KZGOpening[curve.G1]

// GipaProof is the transcript of a single joint TIPP/MIPP GIPA reduction:
// the recorded per-level cross-terms plus the length-one residuals.
type GipaProof struct {
	NProofs uint32

	CommsAB []ipa.LevelPair
	CommsC  []ipa.LevelPair
	ZAB     []ipa.ZPairGT
	ZC      []ipa.ZPairG1

	FinalA    curve.G1
	FinalB    curve.G2
	FinalC    curve.G1
	FinalVKey [2]curve.G2
	FinalWKey [2]curve.G1
}

// TippMippProof bundles a GipaProof with the KZG openings that tie its
// final V-key and W-key back to the trusted setup's secrets.
type TippMippProof struct {
	Gipa        GipaProof
	VKeyOpening VKeyOpening
	WKeyOpening WKeyOpening
}

// AggregateProof is a single proof attesting to the correctness of n
// independently-verifying Groth16 proofs.
type AggregateProof struct {
	ComAB ipa.Output
	ComC  ipa.Output
	IPAB  curve.GT
	AggC  curve.G1
	TMIPP TippMippProof
}

// logTwo returns log2(n) and whether n is an exact power of two.
func logTwo(n uint32) (int, bool) {
	if n == 0 || n&(n-1) != 0 {
		return 0, false
	}
	return bits.TrailingZeros32(n), true
}

// parsingCheck validates an AggregateProof's shape before any algebraic
// check runs: the proof count must be in [2, srs.MaxSRSSize], a power of
// two, and every GIPA-level vector must have exactly log2(n) entries.
func (p *AggregateProof) parsingCheck() error {
	n := p.TMIPP.Gipa.NProofs
	if n < 2 || n > srs.MaxSRSSize {
		return &ProofError{Reason: "proof count out of bounds"}
	}
	l, ok := logTwo(n)
	if !ok {
		return &ProofError{Reason: "proof count is not a power of two"}
	}
	g := p.TMIPP.Gipa
	if len(g.CommsAB) != l || len(g.CommsC) != l || len(g.ZAB) != l || len(g.ZC) != l {
		return &ProofError{Reason: "GIPA level vectors have unequal or incorrect length"}
	}
	return nil
}

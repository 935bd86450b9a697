// Package transcript implements the domain-separated Fiat-Shamir oracle the
// prover and verifier both drive in lock-step. It has no notion of the
// aggregation protocol itself: callers append canonically-serialized items
// under a label and draw scalar challenges, and identical (domain, appends)
// sequences always yield identical challenges.
package transcript

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/go-snarkpack/aggregate/curve"
)

// Transcript is a running cSHAKE-256 sponge keyed by a domain tag, with every
// appended item additionally customized by its label so that relabeling or
// reordering appends changes the derived challenges.
type Transcript struct {
	state sha3.ShakeHash
}

// New starts a fresh transcript under the given domain separation tag. Two
// transcripts started with different tags, or fed different appends, never
// agree on a challenge except with negligible probability.
func New(domainTag []byte) *Transcript {
	return &Transcript{state: sha3.NewCShake256(domainTag, []byte("snarkpack/v1"))}
}

// AppendBytes folds label-tagged data into the transcript state.
func (t *Transcript) AppendBytes(label string, data []byte) {
	_, _ = t.state.Write([]byte(label))
	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(data)))
	_, _ = t.state.Write(lenBuf[:])
	_, _ = t.state.Write(data)
}

// AppendScalar appends the canonical big-endian encoding of a scalar.
func (t *Transcript) AppendScalar(label string, s curve.Scalar) {
	b := s.Bytes()
	t.AppendBytes(label, b[:])
}

// AppendG1 appends the compressed encoding of a G1 point.
func (t *Transcript) AppendG1(label string, p curve.G1) {
	b := p.Bytes()
	t.AppendBytes(label, b[:])
}

// AppendG2 appends the compressed encoding of a G2 point.
func (t *Transcript) AppendG2(label string, p curve.G2) {
	b := p.Bytes()
	t.AppendBytes(label, b[:])
}

// AppendGT appends the canonical encoding of a target-group element.
func (t *Transcript) AppendGT(label string, z curve.GT) {
	b := z.Bytes()
	t.AppendBytes(label, b[:])
}

// ChallengeScalar squeezes a fresh nonzero field element labeled for this
// draw. A zero squeeze (negligible probability) is rejected by appending a
// counter byte and redrawing, per the protocol's fixed retry rule. The probe
// reads happen on a clone of the running sponge so a rejected attempt leaves
// the transcript's real state untouched; only the accepted draw is folded
// back in, via AppendBytes, so later challenges depend on it too.
func (t *Transcript) ChallengeScalar(label string) curve.Scalar {
	for attempt := 0; ; attempt++ {
		probe := t.state.Clone()
		_, _ = probe.Write([]byte(label))
		if attempt > 0 {
			_, _ = probe.Write([]byte("retry"))
			_, _ = probe.Write([]byte{byte(attempt)})
		}
		var wide [64]byte
		_, _ = probe.Read(wide[:])

		var s curve.Scalar
		s.SetBytes(wide[:])
		if !s.IsZero() {
			t.AppendBytes(label+"/challenge", wide[:])
			return s
		}
	}
}

// ChallengeBigInt is a convenience wrapper returning the challenge as a
// big.Int, used by components that need to exponentiate manually.
func (t *Transcript) ChallengeBigInt(label string) *big.Int {
	s := t.ChallengeScalar(label)
	var bi big.Int
	s.BigInt(&bi)
	return &bi
}

package aggregate

import (
	"encoding/binary"

	"github.com/go-snarkpack/aggregate/curve"
	"github.com/go-snarkpack/aggregate/internal/ipa"
)

// Fixed compressed-point sizes for gnark-crypto's BN254 implementation.
// There is no compressed form for GT, so GT elements serialize at full
// width (384 bytes, the full E12 tower encoding).
const (
	g1Size = 32
	g2Size = 64
	gtSize = 384
)

// MarshalBinary writes p in the canonical layout: first the outer fields
// com_ab (T, U), com_c (T, U), ip_ab and agg_c; then the GIPA proof as
// nproofs (u32 LE), the four level-indexed GIPA fields in order (comms_ab,
// comms_c, z_ab, z_c), each entry a (left, right) pair, and the seven
// residual points (final_a, final_b, final_c, final_vkey.0, final_vkey.1,
// final_wkey.0, final_wkey.1); then the V-key and W-key opening proofs. Every point is written in
// gnark-crypto's compressed form (32 bytes for G1, 64 for G2); GT elements
// have no compressed form in gnark-crypto and are written at full width
// (384 bytes).
func (p *AggregateProof) MarshalBinary() ([]byte, error) {
	g := p.TMIPP.Gipa
	l := len(g.CommsAB)

	size := 4 + l*4*gtSize /* comms_ab */ + l*4*gtSize /* comms_c */ + l*2*gtSize /* z_ab */ + l*2*g1Size /* z_c */
	size += g1Size + g2Size + g1Size + 2*g2Size + 2*g1Size // final_a..final_wkey
	size += 2 * g2Size                                     // vkey opening
	size += 2 * g1Size                                     // wkey opening
	size += 2*gtSize + 2*gtSize + gtSize + g1Size          // ComAB, ComC, IPAB, AggC

	buf := make([]byte, 0, size)
	buf = appendGT(buf, p.ComAB.T)
	buf = appendGT(buf, p.ComAB.U)
	buf = appendGT(buf, p.ComC.T)
	buf = appendGT(buf, p.ComC.U)
	buf = appendGT(buf, p.IPAB)
	buf = appendG1(buf, p.AggC)

	var nProofsBuf [4]byte
	binary.LittleEndian.PutUint32(nProofsBuf[:], g.NProofs)
	buf = append(buf, nProofsBuf[:]...)

	for _, lp := range g.CommsAB {
		buf = appendGT(buf, lp.Left.T)
		buf = appendGT(buf, lp.Left.U)
		buf = appendGT(buf, lp.Right.T)
		buf = appendGT(buf, lp.Right.U)
	}
	for _, lp := range g.CommsC {
		buf = appendGT(buf, lp.Left.T)
		buf = appendGT(buf, lp.Left.U)
		buf = appendGT(buf, lp.Right.T)
		buf = appendGT(buf, lp.Right.U)
	}
	for _, zp := range g.ZAB {
		buf = appendGT(buf, zp.Left)
		buf = appendGT(buf, zp.Right)
	}
	for _, zp := range g.ZC {
		buf = appendG1(buf, zp.Left)
		buf = appendG1(buf, zp.Right)
	}

	buf = appendG1(buf, g.FinalA)
	buf = appendG2(buf, g.FinalB)
	buf = appendG1(buf, g.FinalC)
	buf = appendG2(buf, g.FinalVKey[0])
	buf = appendG2(buf, g.FinalVKey[1])
	buf = appendG1(buf, g.FinalWKey[0])
	buf = appendG1(buf, g.FinalWKey[1])

	buf = appendG2(buf, p.TMIPP.VKeyOpening.ProofU)
	buf = appendG2(buf, p.TMIPP.VKeyOpening.ProofV)
	buf = appendG1(buf, p.TMIPP.WKeyOpening.ProofU)
	buf = appendG1(buf, p.TMIPP.WKeyOpening.ProofV)

	return buf, nil
}

// UnmarshalBinary re-derives L = ceil(log2(nproofs)) and reads exactly that
// many entries per level-indexed field; any trailing bytes are rejected.
func (p *AggregateProof) UnmarshalBinary(data []byte) error {
	r := &byteReader{buf: data}

	comABT, err := r.readGT()
	if err != nil {
		return err
	}
	comABU, err := r.readGT()
	if err != nil {
		return err
	}
	comCT, err := r.readGT()
	if err != nil {
		return err
	}
	comCU, err := r.readGT()
	if err != nil {
		return err
	}
	ipAB, err := r.readGT()
	if err != nil {
		return err
	}
	aggC, err := r.readG1()
	if err != nil {
		return err
	}

	nProofsBytes, err := r.take(4)
	if err != nil {
		return err
	}
	nProofs := binary.LittleEndian.Uint32(nProofsBytes)
	l, ok := logTwo(nProofs)
	if !ok {
		return &SerializationError{Detail: "nproofs is not a power of two"}
	}

	commsAB := make([]ipa.LevelPair, l)
	for i := range commsAB {
		lt, err := r.readGT()
		if err != nil {
			return err
		}
		lu, err := r.readGT()
		if err != nil {
			return err
		}
		rt, err := r.readGT()
		if err != nil {
			return err
		}
		ru, err := r.readGT()
		if err != nil {
			return err
		}
		commsAB[i] = ipa.LevelPair{Left: ipa.Output{T: lt, U: lu}, Right: ipa.Output{T: rt, U: ru}}
	}

	commsC := make([]ipa.LevelPair, l)
	for i := range commsC {
		lt, err := r.readGT()
		if err != nil {
			return err
		}
		lu, err := r.readGT()
		if err != nil {
			return err
		}
		rt, err := r.readGT()
		if err != nil {
			return err
		}
		ru, err := r.readGT()
		if err != nil {
			return err
		}
		commsC[i] = ipa.LevelPair{Left: ipa.Output{T: lt, U: lu}, Right: ipa.Output{T: rt, U: ru}}
	}

	zAB := make([]ipa.ZPairGT, l)
	for i := range zAB {
		left, err := r.readGT()
		if err != nil {
			return err
		}
		right, err := r.readGT()
		if err != nil {
			return err
		}
		zAB[i] = ipa.ZPairGT{Left: left, Right: right}
	}

	zC := make([]ipa.ZPairG1, l)
	for i := range zC {
		left, err := r.readG1()
		if err != nil {
			return err
		}
		right, err := r.readG1()
		if err != nil {
			return err
		}
		zC[i] = ipa.ZPairG1{Left: left, Right: right}
	}

	finalA, err := r.readG1()
	if err != nil {
		return err
	}
	finalB, err := r.readG2()
	if err != nil {
		return err
	}
	finalC, err := r.readG1()
	if err != nil {
		return err
	}
	finalVKey0, err := r.readG2()
	if err != nil {
		return err
	}
	finalVKey1, err := r.readG2()
	if err != nil {
		return err
	}
	finalWKey0, err := r.readG1()
	if err != nil {
		return err
	}
	finalWKey1, err := r.readG1()
	if err != nil {
		return err
	}

	vOpenU, err := r.readG2()
	if err != nil {
		return err
	}
	vOpenV, err := r.readG2()
	if err != nil {
		return err
	}
	wOpenU, err := r.readG1()
	if err != nil {
		return err
	}
	wOpenV, err := r.readG1()
	if err != nil {
		return err
	}

	if !r.exhausted() {
		return &SerializationError{Detail: "trailing bytes after a complete AggregateProof"}
	}

	p.ComAB = ipa.Output{T: comABT, U: comABU}
	p.ComC = ipa.Output{T: comCT, U: comCU}
	p.IPAB = ipAB
	p.AggC = aggC
	p.TMIPP = TippMippProof{
		Gipa: GipaProof{
			NProofs:   nProofs,
			CommsAB:   commsAB,
			CommsC:    commsC,
			ZAB:       zAB,
			ZC:        zC,
			FinalA:    finalA,
			FinalB:    finalB,
			FinalC:    finalC,
			FinalVKey: [2]curve.G2{finalVKey0, finalVKey1},
			FinalWKey: [2]curve.G1{finalWKey0, finalWKey1},
		},
		VKeyOpening: VKeyOpening{ProofU: vOpenU, ProofV: vOpenV},
		WKeyOpening: WKeyOpening{ProofU: wOpenU, ProofV: wOpenV},
	}
	return nil
}

func appendG1(buf []byte, p curve.G1) []byte {
	b := p.Bytes()
	return append(buf, b[:]...)
}

func appendG2(buf []byte, p curve.G2) []byte {
	b := p.Bytes()
	return append(buf, b[:]...)
}

func appendGT(buf []byte, z curve.GT) []byte {
	b := z.Bytes()
	return append(buf, b[:]...)
}

type byteReader struct {
	buf []byte
	pos int
}

func (r *byteReader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.buf) {
		return nil, &SerializationError{Detail: "unexpected end of input"}
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *byteReader) exhausted() bool { return r.pos == len(r.buf) }

func (r *byteReader) readG1() (curve.G1, error) {
	b, err := r.take(g1Size)
	if err != nil {
		return curve.G1{}, err
	}
	var p curve.G1
	var arr [g1Size]byte
	copy(arr[:], b)
	if _, err := p.SetBytes(arr[:]); err != nil {
		return curve.G1{}, &SerializationError{Detail: "invalid G1 point: " + err.Error()}
	}
	return p, nil
}

func (r *byteReader) readG2() (curve.G2, error) {
	b, err := r.take(g2Size)
	if err != nil {
		return curve.G2{}, err
	}
	var p curve.G2
	var arr [g2Size]byte
	copy(arr[:], b)
	if _, err := p.SetBytes(arr[:]); err != nil {
		return curve.G2{}, &SerializationError{Detail: "invalid G2 point: " + err.Error()}
	}
	return p, nil
}

func (r *byteReader) readGT() (curve.GT, error) {
	b, err := r.take(gtSize)
	if err != nil {
		return curve.GT{}, err
	}
	var z curve.GT
	var arr [gtSize]byte
	copy(arr[:], b)
	if err := z.SetBytes(arr[:]); err != nil {
		return curve.GT{}, &SerializationError{Detail: "invalid GT element: " + err.Error()}
	}
	return z, nil
}

package sm2

import "errors"

// ErrIdentityTooLong is returned when an identity string's bit length
// would overflow the 16-bit ENTL field.
var ErrIdentityTooLong = errors.New("sm2: identity string too long to encode ENTL")

// ComputeZA computes the SM2 identity-binding digest
// ZA = SM3(ENTL || ID || a || b || xG || yG || xA || yA)
// where ENTL is the 16-bit big-endian *bit* length of id, and every
// coordinate is serialized as 32 big-endian bytes.
func ComputeZA(cp *CurveParams, id []byte, pub AffinePoint) ([32]byte, error) {
	bitLen := uint64(len(id)) * 8
	if bitLen > 0xFFFF {
		return [32]byte{}, ErrIdentityTooLong
	}

	h := NewSM3()
	var entl [2]byte
	entl[0] = byte(bitLen >> 8)
	entl[1] = byte(bitLen)
	h.Write(entl[:])
	h.Write(id)

	aBytes := cp.A.Bytes()
	bBytes := cp.B.Bytes()
	gAffine := cp.ToAffine(cp.G)
	gx := gAffine.X.Bytes()
	gy := gAffine.Y.Bytes()
	px := pub.X.Bytes()
	py := pub.Y.Bytes()

	h.Write(aBytes[:])
	h.Write(bBytes[:])
	h.Write(gx[:])
	h.Write(gy[:])
	h.Write(px[:])
	h.Write(py[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}

package sm2

import "crypto/subtle"

// Encrypt produces an SM2 ciphertext C1 || C3 || C2 for msg under
// recipient public key pub, using the caller-supplied nonce k.
//
// C1 is serialized as the 64-byte uncompressed x||y pair with no 0x04
// prefix byte — matching the teacher's own uncompressed point wire
// format in the deleted group.go's toBytes/fromBytes, and explicitly
// documented here rather than silently diverging from implementations
// that do include the prefix.
func Encrypt(cp *CurveParams, pub AffinePoint, msg []byte, k Int256) ([]byte, error) {
	c1Point := cp.ScalarMul(k, cp.G)
	c1 := cp.ToAffine(c1Point)

	kp := cp.ScalarMul(k, FromAffine(pub))
	if kp.IsInfinity() {
		return nil, ErrProtocolAbort
	}
	kpAff := cp.ToAffine(kp)
	x2 := kpAff.X.Bytes()
	y2 := kpAff.Y.Bytes()

	t := make([]byte, len(msg))
	if !KDF(t, append(append([]byte{}, x2[:]...), y2[:]...)) {
		return nil, ErrProtocolAbort
	}

	c2 := make([]byte, len(msg))
	xorBytes(c2, msg, t)

	h := NewSM3()
	h.Write(x2[:])
	h.Write(msg)
	h.Write(y2[:])
	c3 := h.Sum(nil)

	x1 := c1.X.Bytes()
	y1 := c1.Y.Bytes()

	out := make([]byte, 0, 64+32+len(msg))
	out = append(out, x1[:]...)
	out = append(out, y1[:]...)
	out = append(out, c3...)
	out = append(out, c2...)
	return out, nil
}

// Decrypt recovers the plaintext from an SM2 ciphertext C1||C3||C2
// under private key d.
//
// Unlike the original C reference, this validates that C1 lies on the
// curve before using it — a decryption oracle that accepts off-curve
// points can leak information about d.
func Decrypt(cp *CurveParams, kp KeyPair, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 64+32 {
		return nil, ErrCiphertextTooShort
	}

	c1 := AffinePoint{
		X: Int256FromBytes(ciphertext[0:32]),
		Y: Int256FromBytes(ciphertext[32:64]),
	}
	if !cp.IsOnCurve(c1) {
		return nil, ErrPointNotOnCurve
	}
	c3 := ciphertext[64:96]
	c2 := ciphertext[96:]

	shared := cp.ScalarMul(kp.D, FromAffine(c1))
	if shared.IsInfinity() {
		return nil, ErrProtocolAbort
	}
	sharedAff := cp.ToAffine(shared)
	x2 := sharedAff.X.Bytes()
	y2 := sharedAff.Y.Bytes()

	t := make([]byte, len(c2))
	if !KDF(t, append(append([]byte{}, x2[:]...), y2[:]...)) {
		return nil, ErrProtocolAbort
	}

	msg := make([]byte, len(c2))
	xorBytes(msg, c2, t)

	h := NewSM3()
	h.Write(x2[:])
	h.Write(msg)
	h.Write(y2[:])
	u := h.Sum(nil)

	if subtle.ConstantTimeCompare(u, c3) != 1 {
		return nil, ErrIntegrityFailure
	}
	return msg, nil
}

package sm2

import "encoding/binary"

// KDF derives len(dst) bytes from z using SM3 in counter mode,
// H(z||1) || H(z||2) || ... truncated to len(dst), into dst directly
// (unlike the exported protocol functions, which allocate their own
// output, KDF writes into a caller-supplied buffer). The 32-bit
// big-endian counter starts at 1 and increments once per 32-byte block
// (not once per byte). It reports ok=false when the derived key would be
// all-zero, mirroring the teacher's "generate N bytes by incrementing a
// counter and hashing" loop shape in ecdh.go's HKDF, adapted from HKDF's
// algorithm to SM2's own counter-mode construction.
func KDF(dst, z []byte) (ok bool) {
	var ctr [4]byte
	ctr32 := uint32(1)

	written := 0
	nonZero := false
	for written < len(dst) {
		binary.BigEndian.PutUint32(ctr[:], ctr32)
		h := NewSM3()
		h.Write(z)
		h.Write(ctr[:])
		block := h.Sum(nil)

		n := copy(dst[written:], block)
		for _, b := range block[:n] {
			if b != 0 {
				nonZero = true
			}
		}
		written += n
		ctr32++
	}
	return nonZero
}

// xorBytes sets dst[i] = a[i] ^ b[i] for i in [0, len(dst)). dst may alias a.
func xorBytes(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}
